package games

import (
	"encoding/json"
	"fmt"
	"strings"
)

// GameState is the lifecycle bucket of a game. The declaration order is the sort priority.
type GameState int

const (
	StateLive GameState = iota
	StatePreview
	StateOther
	StateFinal
	StatePostponed
	StateTBD
)

var stateNames = [...]string{
	StateLive:      "live",
	StatePreview:   "preview",
	StateOther:     "other",
	StateFinal:     "final",
	StatePostponed: "postponed",
	StateTBD:       "tbd",
}

func (s GameState) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return fmt.Sprintf("GameState(%d)", int(s))
	}
	return stateNames[s]
}

func (s GameState) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *GameState) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	for i, name := range stateNames {
		if name == raw {
			*s = GameState(i)
			return nil
		}
	}
	return fmt.Errorf("unknown game state %q", raw)
}

// statusInput is what the classifier sees for one game.
type statusInput struct {
	texts        []string
	startTimeTBD bool
}

func (in statusInput) anyContains(needles ...string) bool {
	for _, text := range in.texts {
		for _, n := range needles {
			if strings.Contains(text, n) {
				return true
			}
		}
	}
	return false
}

type stateRule struct {
	state GameState
	match func(statusInput) bool
}

// stateRules is evaluated top to bottom; the first match wins.
var stateRules = []stateRule{
	{StatePostponed, func(in statusInput) bool { return in.anyContains("Postponed") }},
	{StateTBD, func(in statusInput) bool { return in.startTimeTBD || in.anyContains("TBD") }},
	{StateLive, func(in statusInput) bool { return in.anyContains("Live", "In Progress") }},
	{StatePreview, func(in statusInput) bool { return in.anyContains("Preview") }},
	{StateFinal, func(in statusInput) bool { return in.anyContains("Final") }},
}

// ClassifyState derives a GameState from the upstream abstract and detailed status strings.
func ClassifyState(abstractState, detailedState string, startTimeTBD bool) GameState {
	in := statusInput{
		texts:        []string{abstractState, detailedState},
		startTimeTBD: startTimeTBD,
	}
	for _, rule := range stateRules {
		if rule.match(in) {
			return rule.state
		}
	}
	return StateOther
}

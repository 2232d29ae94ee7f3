package normalize

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Upstream stats API shapes. NHL and MLB share one layout; each league reads the
// linescore fields and playback id field it owns.

type scheduleResponse struct {
	TotalItems int            `json:"totalItems"`
	Dates      []scheduleDate `json:"dates"`
}

type scheduleDate struct {
	Date  string         `json:"date"`
	Games []scheduleGame `json:"games"`
}

type scheduleGame struct {
	GamePk    int64       `json:"gamePk"`
	GameDate  string      `json:"gameDate"`
	Status    gameStatus  `json:"status"`
	Teams     gameTeams   `json:"teams"`
	Linescore linescore   `json:"linescore"`
	Content   gameContent `json:"content"`
}

type gameStatus struct {
	AbstractGameState string `json:"abstractGameState"`
	DetailedState     string `json:"detailedState"`
	StartTimeTBD      bool   `json:"startTimeTBD"`
}

type gameTeams struct {
	Away teamSide `json:"away"`
	Home teamSide `json:"home"`
}

type teamSide struct {
	Team struct {
		ID       int    `json:"id"`
		TeamName string `json:"teamName"`
	} `json:"team"`
}

type linescore struct {
	CurrentPeriodOrdinal       string `json:"currentPeriodOrdinal"`
	CurrentPeriodTimeRemaining string `json:"currentPeriodTimeRemaining"`
	CurrentInningOrdinal       string `json:"currentInningOrdinal"`
	InningHalf                 string `json:"inningHalf"`
}

type gameContent struct {
	Media struct {
		Epg []epgGroup `json:"epg"`
	} `json:"media"`
}

type epgGroup struct {
	Title string    `json:"title"`
	Items []epgItem `json:"items"`
}

type epgItem struct {
	ID              playbackID `json:"id"`
	MediaPlaybackID playbackID `json:"mediaPlaybackId"`
	MediaFeedType   string     `json:"mediaFeedType"`
	CallLetters     string     `json:"callLetters"`
	FeedName        string     `json:"feedName"`
}

// playbackID accepts a JSON number or a numeric string. A malformed value does not
// fail the payload decode; it is kept in err so only the affected feed is dropped.
type playbackID struct {
	value int64
	err   error
}

func (p *playbackID) UnmarshalJSON(data []byte) error {
	*p = playbackID{}
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			p.err = fmt.Errorf("playback id %s: %w", data, err)
			return nil
		}
		if s == "" {
			return nil
		}
		data = []byte(s)
	}
	n, err := strconv.ParseInt(string(data), 10, 64)
	if err != nil {
		p.err = fmt.Errorf("playback id %q: %w", data, err)
		return nil
	}
	p.value = n
	return nil
}

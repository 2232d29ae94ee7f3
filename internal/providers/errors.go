package providers

import (
	"errors"
	"fmt"
)

// FailureKind classifies why a schedule or stream operation failed.
type FailureKind string

const (
	KindNetwork           FailureKind = "network"
	KindEmptySchedule     FailureKind = "empty_schedule"
	KindParse             FailureKind = "parse"
	KindUnresolvedTeam    FailureKind = "unresolved_team"
	KindStreamUnavailable FailureKind = "stream_unavailable"
	KindStreamExpired     FailureKind = "stream_expired"
)

// Sentinels for errors.Is against a Failure of the matching kind.
var (
	ErrNetwork           = errors.New("network failure")
	ErrEmptySchedule     = errors.New("empty schedule")
	ErrParse             = errors.New("parse failure")
	ErrUnresolvedTeam    = errors.New("unresolved team")
	ErrStreamUnavailable = errors.New("stream unavailable")
	ErrStreamExpired     = errors.New("stream expired")
)

var kindSentinels = map[FailureKind]error{
	KindNetwork:           ErrNetwork,
	KindEmptySchedule:     ErrEmptySchedule,
	KindParse:             ErrParse,
	KindUnresolvedTeam:    ErrUnresolvedTeam,
	KindStreamUnavailable: ErrStreamUnavailable,
	KindStreamExpired:     ErrStreamExpired,
}

// User-facing messages.
const (
	MsgNoGames           = "There are no games today."
	MsgStreamsNotYet     = "No streams are available for this game yet. Check back later."
	MsgStreamError       = "Error getting game stream. The server may be down or the game may be currently unavailable."
	MsgStreamExpired     = "The stream has expired. Please report the game you are trying to play."
	MsgScheduleNetwork   = "Could not reach the schedule service."
	MsgScheduleMalformed = "The schedule service returned an unreadable response."
)

// Failure is the error type surfaced by fetchers, the normalizer and the stream resolver.
// Message is safe to show to a user; Err carries the underlying cause.
type Failure struct {
	Kind    FailureKind
	Message string
	Err     error
}

// NewFailure builds a Failure wrapping cause.
func NewFailure(kind FailureKind, msg string, cause error) *Failure {
	return &Failure{Kind: kind, Message: msg, Err: cause}
}

func (f *Failure) Error() string {
	msg := f.Message
	if msg == "" {
		msg = string(f.Kind)
	}
	if f.Err != nil {
		return fmt.Sprintf("%s: %v", msg, f.Err)
	}
	return msg
}

func (f *Failure) Unwrap() error { return f.Err }

// Is matches the sentinel for the failure's kind.
func (f *Failure) Is(target error) bool {
	sentinel, ok := kindSentinels[f.Kind]
	return ok && target == sentinel
}

// AsFailure attempts to unwrap an error into a Failure.
func AsFailure(err error) (*Failure, bool) {
	var f *Failure
	if errors.As(err, &f) {
		return f, true
	}
	return nil, false
}

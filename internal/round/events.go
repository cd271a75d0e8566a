package round

import (
	"time"

	"github.com/verte-zerg/moneydetectives/internal/commentary"
	"github.com/verte-zerg/moneydetectives/internal/sound"
)

// Event is an input to the state machine.
type Event interface {
	isEvent()
}

// Begin starts the session from IDLE.
type Begin struct{}

// TimerFired reports that a timer scheduled under Token expired.
type TimerFired struct {
	Token Token
}

// Guess is the player's pick of a slot.
type Guess struct {
	Slot int
}

// CommentaryArrived delivers the text requested under Token.
type CommentaryArrived struct {
	Token Token
	Text  string
}

// Teardown aborts the session; later events are ignored.
type Teardown struct{}

func (Begin) isEvent()             {}
func (TimerFired) isEvent()        {}
func (Guess) isEvent()             {}
func (CommentaryArrived) isEvent() {}
func (Teardown) isEvent()          {}

// Effect is work the host must perform on behalf of the engine.
type Effect interface {
	isEffect()
}

// ScheduleTimer asks for TimerFired{Token} after a delay.
type ScheduleTimer struct {
	Token Token
	After time.Duration
}

// RequestCommentary asks for an asynchronous comment, delivered back as
// CommentaryArrived{Token}.
type RequestCommentary struct {
	Token   Token
	Request commentary.Request
}

// PlayCue asks for a sound cue.
type PlayCue struct {
	Cue sound.Cue
}

// Finished reports the end of the session. It is emitted exactly once.
type Finished struct {
	FinalScore int
	Results    []Result
}

func (ScheduleTimer) isEffect()     {}
func (RequestCommentary) isEffect() {}
func (PlayCue) isEffect()           {}
func (Finished) isEffect()          {}

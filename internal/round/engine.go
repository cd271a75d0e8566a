// Package round runs one play session of the cup game as an explicit state
// machine. The engine never sleeps or spawns goroutines: timer expiry,
// guesses and commentary arrival are events fed to Advance, and the side
// effects it wants (timers, commentary, sounds) come back as Effect values
// for the host loop to carry out.
//
// An Engine is not safe for concurrent use; the host serializes events.
package round

import (
	"time"

	"github.com/google/uuid"

	"github.com/verte-zerg/moneydetectives/internal/commentary"
	"github.com/verte-zerg/moneydetectives/internal/sound"
)

const (
	// TotalRounds is the number of guesses in a session.
	TotalRounds = 5
	// Slots is the number of cups.
	Slots = 3
	// NoSlot marks an unselected slot.
	NoSlot = -1
)

// Status is the engine state.
type Status int

// Engine states.
const (
	StatusIdle Status = iota
	StatusShuffling
	StatusGuessing
	StatusRevealed
	StatusTransition
	StatusDone
	StatusAborted
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "IDLE"
	case StatusShuffling:
		return "SHUFFLING"
	case StatusGuessing:
		return "GUESSING"
	case StatusRevealed:
		return "REVEALED"
	case StatusTransition:
		return "TRANSITION"
	case StatusDone:
		return "DONE"
	case StatusAborted:
		return "ABORTED"
	default:
		return "UNKNOWN"
	}
}

// Terminal reports whether no further transitions can happen.
func (s Status) Terminal() bool {
	return s == StatusDone || s == StatusAborted
}

// Host messages shown while no commentary is available.
const (
	MessageReady      = "Ready to find the money?"
	MessageShuffling  = "Mixing up the cups! Watch closely..."
	MessageGuessing   = "Guess which cup has the money!"
	MessageFound      = "You found it!"
	MessageChecking   = "Checking..."
	MessageTransition = "Loading next round..."
)

// Timings holds the delays of the timed states.
type Timings struct {
	Start      time.Duration
	Shuffle    time.Duration
	Reveal     time.Duration
	Transition time.Duration
}

// DefaultTimings returns the reference delays.
func DefaultTimings() Timings {
	return Timings{
		Start:      1000 * time.Millisecond,
		Shuffle:    1500 * time.Millisecond,
		Reveal:     2500 * time.Millisecond,
		Transition: 1000 * time.Millisecond,
	}
}

// Token tags asynchronous work with the session and state it was issued in.
type Token struct {
	Session uuid.UUID
	Seq     int
}

// State is a read-only view of the round state.
type State struct {
	Round        int
	Score        int
	Status       Status
	WinningSlot  int
	SelectedSlot int
	Message      string
}

// Result records the outcome of one round.
type Result struct {
	Round        int
	WinningSlot  int
	SelectedSlot int
	Won          bool
}

// Engine is the round state machine.
type Engine struct {
	id      uuid.UUID
	timings Timings
	picker  Picker
	seq     int
	state   State
	results []Result
}

// New creates an engine in IDLE. A nil picker uses a time-seeded source.
func New(timings Timings, picker Picker) *Engine {
	if picker == nil {
		picker = NewPicker()
	}
	return &Engine{
		id:      uuid.New(),
		timings: timings,
		picker:  picker,
		state: State{
			Round:        1,
			Status:       StatusIdle,
			WinningSlot:  NoSlot,
			SelectedSlot: NoSlot,
			Message:      MessageReady,
		},
	}
}

// ID returns the session identifier.
func (e *Engine) ID() uuid.UUID {
	return e.id
}

// State returns the current state.
func (e *Engine) State() State {
	return e.state
}

// Results returns one entry per round played so far.
func (e *Engine) Results() []Result {
	out := make([]Result, len(e.results))
	copy(out, e.results)
	return out
}

// Start begins the session. It is shorthand for Advance(Begin{}).
func (e *Engine) Start() []Effect {
	return e.Advance(Begin{})
}

// Advance applies one event and returns the effects to perform. Events that
// are not valid in the current state, or that carry a superseded token, are
// ignored and yield no effects.
func (e *Engine) Advance(ev Event) []Effect {
	if e.state.Status.Terminal() {
		return nil
	}
	switch ev := ev.(type) {
	case Begin:
		return e.begin()
	case TimerFired:
		if !e.current(ev.Token) {
			return nil
		}
		return e.expire()
	case Guess:
		return e.guess(ev.Slot)
	case CommentaryArrived:
		if e.current(ev.Token) && ev.Text != "" {
			e.state.Message = ev.Text
		}
		return nil
	case Teardown:
		e.state.Status = StatusAborted
		e.bump()
		return nil
	default:
		return nil
	}
}

func (e *Engine) current(t Token) bool {
	return t.Session == e.id && t.Seq == e.seq
}

func (e *Engine) bump() Token {
	e.seq++
	return Token{Session: e.id, Seq: e.seq}
}

func (e *Engine) begin() []Effect {
	if e.state.Status != StatusIdle || e.seq != 0 {
		return nil
	}
	tok := e.bump()
	return []Effect{
		RequestCommentary{Token: tok, Request: commentary.Request{Kind: commentary.KindStart, Round: e.state.Round}},
		ScheduleTimer{Token: tok, After: e.timings.Start},
	}
}

func (e *Engine) expire() []Effect {
	switch e.state.Status {
	case StatusIdle, StatusTransition:
		return e.shuffle()
	case StatusShuffling:
		e.state.Status = StatusGuessing
		e.state.Message = MessageGuessing
		e.bump()
		return nil
	case StatusRevealed:
		if e.state.Round >= TotalRounds {
			e.state.Status = StatusDone
			e.bump()
			return []Effect{Finished{FinalScore: e.state.Score, Results: e.Results()}}
		}
		e.state.Status = StatusTransition
		e.state.Round++
		e.state.Message = MessageTransition
		tok := e.bump()
		return []Effect{ScheduleTimer{Token: tok, After: e.timings.Transition}}
	default:
		return nil
	}
}

func (e *Engine) shuffle() []Effect {
	e.state.Status = StatusShuffling
	e.state.WinningSlot = e.picker.Intn(Slots)
	e.state.SelectedSlot = NoSlot
	e.state.Message = MessageShuffling
	tok := e.bump()
	return []Effect{
		PlayCue{Cue: sound.CueShuffle},
		ScheduleTimer{Token: tok, After: e.timings.Shuffle},
	}
}

func (e *Engine) guess(slot int) []Effect {
	if e.state.Status != StatusGuessing || slot < 0 || slot >= Slots {
		return nil
	}
	won := slot == e.state.WinningSlot
	if won {
		e.state.Score++
	}
	e.state.Status = StatusRevealed
	e.state.SelectedSlot = slot
	e.results = append(e.results, Result{
		Round:        e.state.Round,
		WinningSlot:  e.state.WinningSlot,
		SelectedSlot: slot,
		Won:          won,
	})

	kind := commentary.KindLose
	cue := sound.CueLose
	e.state.Message = MessageChecking
	if won {
		kind = commentary.KindWin
		cue = sound.CueWin
		e.state.Message = MessageFound
	}
	tok := e.bump()
	return []Effect{
		PlayCue{Cue: sound.CuePop},
		PlayCue{Cue: cue},
		RequestCommentary{Token: tok, Request: commentary.Request{Kind: kind, Score: e.state.Score, Round: e.state.Round}},
		ScheduleTimer{Token: tok, After: e.timings.Reveal},
	}
}

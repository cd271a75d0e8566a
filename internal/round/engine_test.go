package round

import (
	"testing"

	"github.com/verte-zerg/moneydetectives/internal/commentary"
	"github.com/verte-zerg/moneydetectives/internal/sound"
)

type scriptedPicker struct {
	slots []int
	next  int
}

func (p *scriptedPicker) Intn(n int) int {
	slot := p.slots[p.next%len(p.slots)] % n
	p.next++
	return slot
}

func newEngine(slots ...int) *Engine {
	return New(DefaultTimings(), &scriptedPicker{slots: slots})
}

func timerIn(t *testing.T, effects []Effect) ScheduleTimer {
	t.Helper()
	for _, eff := range effects {
		if st, ok := eff.(ScheduleTimer); ok {
			return st
		}
	}
	t.Fatalf("expected a ScheduleTimer effect in %#v", effects)
	return ScheduleTimer{}
}

func commentaryIn(effects []Effect) (RequestCommentary, bool) {
	for _, eff := range effects {
		if rc, ok := eff.(RequestCommentary); ok {
			return rc, true
		}
	}
	return RequestCommentary{}, false
}

// fire advances the engine by expiring the timer found in effects.
func fire(t *testing.T, e *Engine, effects []Effect) []Effect {
	t.Helper()
	return e.Advance(TimerFired{Token: timerIn(t, effects).Token})
}

// toGuessing drives a fresh engine to the first GUESSING state.
func toGuessing(t *testing.T, e *Engine) {
	t.Helper()
	effects := fire(t, e, e.Start())
	fire(t, e, effects)
	if e.State().Status != StatusGuessing {
		t.Fatalf("expected GUESSING, got %s", e.State().Status)
	}
}

func TestFullSessionScoresWins(t *testing.T) {
	e := newEngine(0, 1, 2, 0, 1)
	guesses := []int{0, 0, 2, 1, 1}

	effects := e.Start()
	if e.State().Status != StatusIdle {
		t.Fatalf("expected IDLE after start, got %s", e.State().Status)
	}
	effects = fire(t, e, effects)

	var finished []Finished
	rounds := []int{}
	for i, slot := range guesses {
		if e.State().Status != StatusShuffling {
			t.Fatalf("round %d: expected SHUFFLING, got %s", i+1, e.State().Status)
		}
		fire(t, e, effects)
		if e.State().Status != StatusGuessing {
			t.Fatalf("round %d: expected GUESSING, got %s", i+1, e.State().Status)
		}
		rounds = append(rounds, e.State().Round)
		effects = e.Advance(Guess{Slot: slot})
		if e.State().Status != StatusRevealed || e.State().SelectedSlot != slot {
			t.Fatalf("round %d: expected REVEALED with slot %d, got %+v", i+1, slot, e.State())
		}
		effects = fire(t, e, effects)
		for _, eff := range effects {
			if f, ok := eff.(Finished); ok {
				finished = append(finished, f)
			}
		}
		if len(finished) == 0 {
			if e.State().Status != StatusTransition {
				t.Fatalf("round %d: expected TRANSITION, got %s", i+1, e.State().Status)
			}
			if e.State().SelectedSlot != slot {
				t.Fatalf("selected slot must survive into TRANSITION")
			}
			effects = fire(t, e, effects)
		}
	}

	for i, r := range rounds {
		if r != i+1 {
			t.Fatalf("expected rounds 1..5 in order, got %v", rounds)
		}
	}
	if len(finished) != 1 {
		t.Fatalf("expected exactly one Finished effect, got %d", len(finished))
	}
	if finished[0].FinalScore != 3 {
		t.Fatalf("expected final score 3, got %d", finished[0].FinalScore)
	}
	wins := 0
	for _, r := range finished[0].Results {
		if r.Won != (r.SelectedSlot == r.WinningSlot) {
			t.Fatalf("inconsistent result %+v", r)
		}
		if r.Won {
			wins++
		}
	}
	if wins != finished[0].FinalScore || len(finished[0].Results) != TotalRounds {
		t.Fatalf("results do not match score: %+v", finished[0])
	}
	if e.State().Status != StatusDone {
		t.Fatalf("expected DONE, got %s", e.State().Status)
	}
}

func TestGuessOutsideGuessingIsIgnored(t *testing.T) {
	e := newEngine(2)
	effects := e.Start()
	if got := e.Advance(Guess{Slot: 0}); got != nil {
		t.Fatalf("guess in IDLE must be ignored")
	}
	effects = fire(t, e, effects)
	before := e.State()
	if got := e.Advance(Guess{Slot: 2}); got != nil {
		t.Fatalf("guess in SHUFFLING must be ignored")
	}
	if e.State() != before {
		t.Fatalf("state changed on ignored guess: %+v -> %+v", before, e.State())
	}

	fire(t, e, effects)
	e.Advance(Guess{Slot: 2})
	before = e.State()
	if got := e.Advance(Guess{Slot: 1}); got != nil {
		t.Fatalf("second guess in REVEALED must be ignored")
	}
	if e.State() != before || before.Score != 1 {
		t.Fatalf("state changed on ignored guess: %+v -> %+v", before, e.State())
	}
}

func TestGuessOutOfRangeIgnored(t *testing.T) {
	e := newEngine(1)
	toGuessing(t, e)
	for _, slot := range []int{-1, Slots, 99} {
		if got := e.Advance(Guess{Slot: slot}); got != nil {
			t.Fatalf("guess %d must be ignored", slot)
		}
	}
	if e.State().Status != StatusGuessing {
		t.Fatalf("engine must stay in GUESSING")
	}
}

func TestStaleTimerIgnored(t *testing.T) {
	e := newEngine(0)
	startEffects := e.Start()
	shuffleEffects := fire(t, e, startEffects)

	if got := fire(t, e, startEffects); got != nil {
		t.Fatalf("replayed start timer must be ignored")
	}
	if e.State().Status != StatusShuffling {
		t.Fatalf("stale timer changed state to %s", e.State().Status)
	}

	other := newEngine(0)
	other.Start()
	foreign := TimerFired{Token: Token{Session: other.ID(), Seq: timerIn(t, shuffleEffects).Token.Seq}}
	if got := e.Advance(foreign); got != nil || e.State().Status != StatusShuffling {
		t.Fatalf("timer from another session must be ignored")
	}
}

func TestTeardownIgnoresPendingWork(t *testing.T) {
	e := newEngine(0)
	toGuessing(t, e)
	effects := e.Advance(Guess{Slot: 0})
	rc, ok := commentaryIn(effects)
	if !ok {
		t.Fatalf("expected commentary request on guess")
	}

	e.Advance(Teardown{})
	if e.State().Status != StatusAborted {
		t.Fatalf("expected ABORTED, got %s", e.State().Status)
	}
	before := e.State()
	if got := fire(t, e, effects); got != nil {
		t.Fatalf("timer after teardown must be ignored")
	}
	e.Advance(CommentaryArrived{Token: rc.Token, Text: "late"})
	e.Advance(Guess{Slot: 1})
	if e.State() != before {
		t.Fatalf("state changed after teardown: %+v -> %+v", before, e.State())
	}
}

func TestCommentaryAppliedOnlyWhileCurrent(t *testing.T) {
	e := newEngine(1)
	toGuessing(t, e)
	effects := e.Advance(Guess{Slot: 1})
	rc, _ := commentaryIn(effects)
	if rc.Request.Kind != commentary.KindWin || rc.Request.Score != 1 || rc.Request.Round != 1 {
		t.Fatalf("unexpected commentary request %+v", rc.Request)
	}
	if e.State().Message != MessageFound {
		t.Fatalf("expected placeholder message, got %q", e.State().Message)
	}
	e.Advance(CommentaryArrived{Token: rc.Token, Text: "Brilliant!"})
	if e.State().Message != "Brilliant!" {
		t.Fatalf("expected commentary applied, got %q", e.State().Message)
	}

	fire(t, e, effects)
	if e.State().Status != StatusTransition {
		t.Fatalf("expected TRANSITION, got %s", e.State().Status)
	}
	e.Advance(CommentaryArrived{Token: rc.Token, Text: "too late"})
	if e.State().Message != MessageTransition {
		t.Fatalf("stale commentary overwrote message: %q", e.State().Message)
	}
}

func TestLoseRequestsLoseCommentary(t *testing.T) {
	e := newEngine(2)
	toGuessing(t, e)
	effects := e.Advance(Guess{Slot: 0})
	rc, _ := commentaryIn(effects)
	if rc.Request.Kind != commentary.KindLose || e.State().Score != 0 {
		t.Fatalf("expected losing guess, got %+v %+v", rc.Request, e.State())
	}
	var cues []sound.Cue
	for _, eff := range effects {
		if pc, ok := eff.(PlayCue); ok {
			cues = append(cues, pc.Cue)
		}
	}
	if len(cues) != 2 || cues[0] != sound.CuePop || cues[1] != sound.CueLose {
		t.Fatalf("unexpected cues %v", cues)
	}
}

func TestWinningSlotRedrawnEachRound(t *testing.T) {
	e := newEngine(2, 2, 0)
	toGuessing(t, e)
	seen := []int{e.State().WinningSlot}
	for i := 0; i < 2; i++ {
		effects := e.Advance(Guess{Slot: 0})
		effects = fire(t, e, effects)
		effects = fire(t, e, effects)
		fire(t, e, effects)
		seen = append(seen, e.State().WinningSlot)
	}
	if seen[0] != 2 || seen[1] != 2 || seen[2] != 0 {
		t.Fatalf("expected independent draws 2,2,0 got %v", seen)
	}
}

func TestStartTwiceIgnored(t *testing.T) {
	e := newEngine(0)
	if len(e.Start()) == 0 {
		t.Fatalf("first start must schedule work")
	}
	if got := e.Start(); got != nil {
		t.Fatalf("second start must be ignored")
	}
}

func TestScoreBounded(t *testing.T) {
	e := newEngine(0)
	effects := fire(t, e, e.Start())
	for {
		effects = fire(t, e, effects)
		effects = e.Advance(Guess{Slot: 0})
		effects = fire(t, e, effects)
		if e.State().Status == StatusDone {
			break
		}
		effects = fire(t, e, effects)
	}
	if e.State().Score != TotalRounds {
		t.Fatalf("expected perfect score %d, got %d", TotalRounds, e.State().Score)
	}
}

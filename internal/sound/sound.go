// Package sound triggers advisory audio cues.
package sound

import (
	"io"
	"strings"
	"sync"
)

// Cue identifies a sound effect.
type Cue string

// Sound cues.
const (
	CueHover   Cue = "hover"
	CueClick   Cue = "click"
	CueShuffle Cue = "shuffle"
	CueWin     Cue = "win"
	CueLose    Cue = "lose"
	CuePop     Cue = "pop"
)

// Player plays cues. Implementations must not block and never report
// failures.
type Player interface {
	Play(cue Cue)
}

// Nop discards every cue.
type Nop struct{}

// Play implements Player.
func (Nop) Play(Cue) {}

// bells maps cues to the number of terminal bell characters rung. Cues that
// would be noise in a terminal stay silent.
var bells = map[Cue]int{
	CueWin:  2,
	CueLose: 1,
}

// Bell rings the terminal bell on an output stream.
type Bell struct {
	mu sync.Mutex
	w  io.Writer
}

// NewBell returns a Bell writing to w.
func NewBell(w io.Writer) *Bell {
	return &Bell{w: w}
}

// Play implements Player.
func (b *Bell) Play(cue Cue) {
	n := bells[cue]
	if n == 0 || b.w == nil {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, err := io.WriteString(b.w, strings.Repeat("\a", n)); err != nil {
		// Cues are advisory.
		_ = err
	}
}

package round

import (
	"math/rand"
	"time"
)

// Picker draws the winning slot. *rand.Rand satisfies it.
type Picker interface {
	Intn(n int) int
}

// NewPicker returns a Picker seeded with the current time. Each draw is
// independent, so the same cup may win twice in a row.
func NewPicker() *rand.Rand {
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}

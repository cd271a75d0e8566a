package sound

import (
	"bytes"
	"errors"
	"testing"
)

func TestBellRingsForOutcomeCues(t *testing.T) {
	var buf bytes.Buffer
	b := NewBell(&buf)
	b.Play(CueWin)
	b.Play(CueLose)
	b.Play(CueHover)
	if got := buf.String(); got != "\a\a\a" {
		t.Fatalf("unexpected bell output %q", got)
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("closed")
}

func TestBellIgnoresWriteErrors(t *testing.T) {
	b := NewBell(failingWriter{})
	b.Play(CueWin)
	Nop{}.Play(CueWin)
}

// Package commentary produces the game host's flavour text.
package commentary

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
)

// Kind is the game moment a comment is requested for.
type Kind string

// Comment kinds.
const (
	KindStart   Kind = "start"
	KindShuffle Kind = "shuffle"
	KindWin     Kind = "win"
	KindLose    Kind = "lose"
	KindEnd     Kind = "end"
)

var (
	// ErrNoCredentials is returned when no API key is configured.
	ErrNoCredentials = errors.New("commentary credentials are not configured")
	// ErrEmptyResponse is returned when the service answered without text.
	ErrEmptyResponse = errors.New("commentary response is empty")
)

// Request describes the comment wanted.
type Request struct {
	Kind  Kind
	Score int
	Round int
}

// Commentator fetches a short comment. Calls may be slow or fail.
type Commentator interface {
	Comment(ctx context.Context, req Request) (string, error)
}

// Fallback returns the fixed message used when the service fails.
func Fallback(kind Kind) string {
	switch kind {
	case KindWin:
		return "Yay! You found it!"
	case KindLose:
		return "Oh no! Try again next time."
	default:
		return "Welcome to Money Detectives!"
	}
}

// Static always answers with the fallback text.
type Static struct{}

// Comment implements Commentator.
func (Static) Comment(_ context.Context, req Request) (string, error) {
	return Fallback(req.Kind), nil
}

// Resolve asks c for a comment and substitutes the fallback on any failure.
// It never returns an empty string.
func Resolve(ctx context.Context, c Commentator, req Request) string {
	if c == nil {
		return Fallback(req.Kind)
	}
	text, err := c.Comment(ctx, req)
	if err == nil {
		text = strings.TrimSpace(text)
		if text == "" {
			err = ErrEmptyResponse
		}
	}
	if err != nil {
		if !errors.Is(err, context.Canceled) {
			log.Printf("commentary %s failed: %v", req.Kind, err)
		}
		return Fallback(req.Kind)
	}
	return text
}

const hostIntro = "You are the upbeat game show host of 'Money Detectives', a game for kids aged 5 to 10 where money hides under one of three rainbow cups."

// Prompt builds the instruction sent to the text service.
func Prompt(req Request) string {
	var task string
	switch req.Kind {
	case KindStart:
		task = "Welcome the player in one short, exciting sentence."
	case KindShuffle:
		task = "Say one short, energetic sentence about the cups being shuffled fast."
	case KindWin:
		task = fmt.Sprintf("The player just found the money in round %d. Cheer for them in one very short sentence.", req.Round)
	case KindLose:
		task = fmt.Sprintf("The player picked an empty cup in round %d. Encourage them kindly in one very short sentence.", req.Round)
	case KindEnd:
		task = fmt.Sprintf("The game is over and the player scored %d out of 5. Give one short, encouraging closing line that fits the score.", req.Score)
	default:
		task = "Say something cheerful in one short sentence."
	}
	return hostIntro + " " + task
}

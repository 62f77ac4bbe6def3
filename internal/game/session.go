// internal/game/session.go
//
// Solving sessions: one target (known or unknown), the guesses made so far,
// and the constraints they imply.
//
// Modes:
//   - "solve": the target is unknown; callers record feedback they observed.
//   - "play":  the target is held by the session and guesses are scored here.
//   - "daily": like play, with the target chosen by the daily rotation.

package game

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Mode selects how a session obtains feedback.
type Mode string

const (
	ModeSolve Mode = "solve"
	ModePlay  Mode = "play"
	ModeDaily Mode = "daily"
)

// ParseMode validates a mode name; the empty string means solve.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case "", ModeSolve:
		return ModeSolve, nil
	case ModePlay:
		return ModePlay, nil
	case ModeDaily:
		return ModeDaily, nil
	}
	return "", fmt.Errorf("unknown mode %q", s)
}

// Session holds the state of a single solving session.
type Session struct {
	ID          string           // Random UUID.
	Mode        Mode             // solve | play | daily.
	Target      string           // Upper-case target; empty in solve mode.
	Guesses     []GuessResult    // Results recorded so far, in order.
	Constraints *WordConstraints // Everything learned from Guesses.
	CreatedAt   time.Time
}

// NewSession starts a session with no guesses. target may be empty only in
// solve mode.
func NewSession(mode Mode, target string) (*Session, error) {
	target = normalize(target)
	if mode != ModeSolve && target == "" {
		return nil, ErrNoTarget
	}
	if mode == ModeSolve {
		target = ""
	}
	return &Session{
		ID:          uuid.NewString(),
		Mode:        mode,
		Target:      target,
		Guesses:     []GuessResult{},
		Constraints: NewWordConstraints(),
		CreatedAt:   time.Now().UTC(),
	}, nil
}

// Solved reports whether an all-correct result has been recorded.
func (s *Session) Solved() bool {
	n := len(s.Guesses)
	return n > 0 && s.Guesses[n-1].Solved()
}

// Guess scores word against the session target and records the result.
func (s *Session) Guess(word string) (GuessResult, error) {
	if s.Target == "" {
		return GuessResult{}, ErrNoTarget
	}
	if s.Solved() {
		return GuessResult{}, ErrSolved
	}
	res, err := ComputeFeedback(word, s.Target)
	if err != nil {
		return GuessResult{}, err
	}
	if err := s.Record(res); err != nil {
		return GuessResult{}, err
	}
	return res, nil
}

// Record merges an already-scored result. The guess is appended only if the
// merge succeeds, so Guesses and Constraints never disagree.
func (s *Session) Record(res GuessResult) error {
	if s.Solved() {
		return ErrSolved
	}
	if err := s.Constraints.Merge(res); err != nil {
		return err
	}
	s.Guesses = append(s.Guesses, res)
	return nil
}

// ReplaceGuess swaps the guess at index i (0-based) for res and rebuilds
// the constraints from the edited history. Only solve sessions can be
// edited. On error the session is unchanged.
func (s *Session) ReplaceGuess(i int, res GuessResult) error {
	if err := s.editable(i); err != nil {
		return err
	}
	next := append([]GuessResult(nil), s.Guesses...)
	next[i] = res
	return s.rebuild(next)
}

// RemoveGuess drops the guess at index i (0-based) and rebuilds the
// constraints. On error the session is unchanged.
func (s *Session) RemoveGuess(i int) error {
	if err := s.editable(i); err != nil {
		return err
	}
	next := make([]GuessResult, 0, len(s.Guesses)-1)
	next = append(next, s.Guesses[:i]...)
	next = append(next, s.Guesses[i+1:]...)
	return s.rebuild(next)
}

// ClearGuesses resets a solve session to no guesses and empty constraints.
func (s *Session) ClearGuesses() error {
	if s.Target != "" {
		return ErrNotEditable
	}
	s.Guesses = []GuessResult{}
	s.Constraints = NewWordConstraints()
	return nil
}

func (s *Session) editable(i int) error {
	if s.Target != "" {
		return ErrNotEditable
	}
	if i < 0 || i >= len(s.Guesses) {
		return fmt.Errorf("%w: %d of %d", ErrNoGuess, i+1, len(s.Guesses))
	}
	return nil
}

// rebuild replays guesses and installs them only if every merge succeeds.
// A solved result may only be the last one.
func (s *Session) rebuild(guesses []GuessResult) error {
	for i, g := range guesses[:max(len(guesses)-1, 0)] {
		if g.Solved() {
			return fmt.Errorf("guess %d (%s): %w", i+1, g.Word(), ErrSolved)
		}
	}
	c, err := Replay(guesses)
	if err != nil {
		return err
	}
	s.Guesses = guesses
	s.Constraints = c
	return nil
}

// Replay folds results, oldest first, into a fresh constraint set.
func Replay(results []GuessResult) (*WordConstraints, error) {
	c := NewWordConstraints()
	for i, r := range results {
		if err := c.Merge(r); err != nil {
			return nil, fmt.Errorf("guess %d (%s): %w", i+1, r.Word(), err)
		}
	}
	return c, nil
}

// internal/game/errors.go
//
// Error taxonomy for the engine.
//   - ErrInputShape:         malformed input (length mismatch, bad status).
//   - ErrConstraintConflict: new evidence contradicts accumulated constraints.
//     Returned as *ConflictError, which carries the offending letter.

package game

import (
	"errors"
	"fmt"
)

var (
	ErrInputShape         = errors.New("input shape")
	ErrConstraintConflict = errors.New("constraint conflict")

	// Session errors.
	ErrNoTarget    = errors.New("session has no target")
	ErrSolved      = errors.New("session already solved")
	ErrNoGuess     = errors.New("no such guess")
	ErrNotEditable = errors.New("guesses scored by the session cannot be edited")
)

// ConflictKind classifies a constraint conflict.
type ConflictKind string

const (
	// ConflictPosition: a position is pinned to two different letters.
	ConflictPosition ConflictKind = "position"
	// ConflictCount: exact/min occurrence counts disagree.
	ConflictCount ConflictKind = "count"
	// ConflictWrongPosition: a letter is both pinned at and excluded from a position.
	ConflictWrongPosition ConflictKind = "wrong_position"
)

// ConflictError describes a merge that contradicts earlier evidence.
type ConflictError struct {
	Kind     ConflictKind
	Letter   rune
	Position int // -1 when the conflict is not tied to a position
	Detail   string
}

func (e *ConflictError) Error() string {
	if e.Position >= 0 {
		return fmt.Sprintf("constraint conflict (%s) for %c at position %d: %s", e.Kind, e.Letter, e.Position, e.Detail)
	}
	return fmt.Sprintf("constraint conflict (%s) for %c: %s", e.Kind, e.Letter, e.Detail)
}

// Is lets errors.Is(err, ErrConstraintConflict) match any *ConflictError.
func (e *ConflictError) Is(target error) bool { return target == ErrConstraintConflict }

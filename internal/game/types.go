// internal/game/types.go
//
// Core type definitions for the solver engine.
// Defines:
//   - LetterStatus: per-letter feedback for a guess (correct/present/absent).
//   - GuessResult:  a scored guess, immutable once built.
//   - Occurrence:   one position of a letter inside a guess, used for grouping.

package game

import (
	"fmt"
	"strings"
)

// LetterStatus represents the feedback for a single letter in a guess.
// Possible values:
//   - "correct": letter is in the target at this exact position.
//   - "present": letter is in the target, but not at this position.
//   - "absent":  letter does not occur in the target beyond the
//     occurrences already claimed by correct/present marks.
type LetterStatus string

const (
	Correct LetterStatus = "correct"
	Present LetterStatus = "present"
	Absent  LetterStatus = "absent"
)

// Valid reports whether s is one of the three known statuses.
func (s LetterStatus) Valid() bool {
	switch s {
	case Correct, Present, Absent:
		return true
	}
	return false
}

// ParseLetterStatus accepts the wire names plus the usual tile colours
// (green/yellow/gray) and their one-letter shorthands.
func ParseLetterStatus(s string) (LetterStatus, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "correct", "green", "g":
		return Correct, nil
	case "present", "yellow", "y":
		return Present, nil
	case "absent", "gray", "grey", "b", "x":
		return Absent, nil
	}
	return "", fmt.Errorf("%w: unknown letter status %q", ErrInputShape, s)
}

// GuessResult is a guessed word paired with its per-position feedback.
// Fields are unexported so a result cannot change after construction;
// accessors hand out copies.
type GuessResult struct {
	word     []rune
	statuses []LetterStatus
}

// NewGuessResult builds a result from feedback observed outside the engine,
// e.g. read off a real game board. The word is upper-cased.
func NewGuessResult(word string, statuses []LetterStatus) (GuessResult, error) {
	w := []rune(normalize(word))
	if len(w) == 0 {
		return GuessResult{}, fmt.Errorf("%w: empty word", ErrInputShape)
	}
	if len(w) != len(statuses) {
		return GuessResult{}, fmt.Errorf("%w: word %q has %d letters but %d statuses",
			ErrInputShape, string(w), len(w), len(statuses))
	}
	st := make([]LetterStatus, len(statuses))
	for i, s := range statuses {
		if !s.Valid() {
			return GuessResult{}, fmt.Errorf("%w: invalid status %q at position %d", ErrInputShape, s, i)
		}
		st[i] = s
	}
	return GuessResult{word: w, statuses: st}, nil
}

// Word returns the guessed word (upper-case).
func (g GuessResult) Word() string { return string(g.word) }

// Len is the number of positions in the guess.
func (g GuessResult) Len() int { return len(g.word) }

// Statuses returns a copy of the per-position feedback.
func (g GuessResult) Statuses() []LetterStatus {
	out := make([]LetterStatus, len(g.statuses))
	copy(out, g.statuses)
	return out
}

// Status returns the feedback at position i.
func (g GuessResult) Status(i int) LetterStatus { return g.statuses[i] }

// Solved reports whether every position scored Correct.
func (g GuessResult) Solved() bool {
	if len(g.statuses) == 0 {
		return false
	}
	for _, s := range g.statuses {
		if s != Correct {
			return false
		}
	}
	return true
}

// String renders the result as WORD:GYB.. for logs.
func (g GuessResult) String() string {
	var b strings.Builder
	b.WriteString(string(g.word))
	b.WriteByte(':')
	for _, s := range g.statuses {
		switch s {
		case Correct:
			b.WriteByte('G')
		case Present:
			b.WriteByte('Y')
		default:
			b.WriteByte('.')
		}
	}
	return b.String()
}

// Occurrence is one position of a letter within a guess and its feedback.
type Occurrence struct {
	Position int
	Status   LetterStatus
}

// LetterGroup collects every occurrence of one letter in a guess.
type LetterGroup struct {
	Letter      rune
	Occurrences []Occurrence
}

// count returns how many occurrences carry status s.
func (lg LetterGroup) count(s LetterStatus) int {
	n := 0
	for _, o := range lg.Occurrences {
		if o.Status == s {
			n++
		}
	}
	return n
}

// GroupByLetter groups the guess's positions by letter, in order of each
// letter's first appearance in the word.
func (g GuessResult) GroupByLetter() []LetterGroup {
	idx := make(map[rune]int, len(g.word))
	var groups []LetterGroup
	for i, r := range g.word {
		j, ok := idx[r]
		if !ok {
			j = len(groups)
			idx[r] = j
			groups = append(groups, LetterGroup{Letter: r})
		}
		groups[j].Occurrences = append(groups[j].Occurrences, Occurrence{Position: i, Status: g.statuses[i]})
	}
	return groups
}

// normalize trims and upper-cases a word so comparisons are case-insensitive.
func normalize(w string) string {
	return strings.ToUpper(strings.TrimSpace(w))
}

// internal/game/feedback.go
//
// Feedback computation: scores a guess against a target.
//
// Notes:
//   - Inputs are compared case-insensitively (both are upper-cased first).
//   - Repeated letters are handled by consuming target letters at most once,
//     so a letter is never credited more times than the target contains it.

package game

import "fmt"

// ComputeFeedback implements the standard two-pass scoring algorithm.
//
// Pass 1:
//   - Mark exact matches as Correct.
//   - Count the remaining (non-correct) target letters.
//
// Pass 2:
//   - For each non-correct guess letter: if an unclaimed instance of that
//     letter remains, mark Present and consume it; otherwise mark Absent.
//
// Returns ErrInputShape if the words differ in length or are empty.
func ComputeFeedback(guess, target string) (GuessResult, error) {
	g := []rune(normalize(guess))
	t := []rune(normalize(target))
	if len(g) == 0 {
		return GuessResult{}, fmt.Errorf("%w: empty guess", ErrInputShape)
	}
	if len(g) != len(t) {
		return GuessResult{}, fmt.Errorf("%w: guess has %d letters, target has %d", ErrInputShape, len(g), len(t))
	}

	n := len(g)
	res := make([]LetterStatus, n)
	remaining := make(map[rune]int, n)

	// First pass: mark correct tiles and count what is left of the target.
	for i := 0; i < n; i++ {
		if g[i] == t[i] {
			res[i] = Correct
		} else {
			remaining[t[i]]++
		}
	}

	// Second pass: resolve present/absent for the rest.
	for i := 0; i < n; i++ {
		if res[i] == Correct {
			continue
		}
		if remaining[g[i]] > 0 {
			res[i] = Present
			remaining[g[i]]--
		} else {
			res[i] = Absent
		}
	}
	return GuessResult{word: g, statuses: res}, nil
}

// internal/game/filter.go
//
// Candidate validation and filtering against a WordConstraints.
// Both operations are read-only and safe to call concurrently with each
// other (but not with Merge on the same constraints).

package game

// IsValid reports whether word is consistent with every constraint in c.
// The comparison is case-insensitive. Checks short-circuit in order:
// length, pinned positions, present letters, absent letters, wrong
// positions, counts.
func (c *WordConstraints) IsValid(word string) bool {
	w := []rune(normalize(word))
	if c.length != 0 && len(w) != c.length {
		return false
	}

	for pos, letter := range c.correct {
		if pos >= len(w) || w[pos] != letter {
			return false
		}
	}

	freq := make(map[rune]int, len(w))
	for _, r := range w {
		freq[r]++
	}

	for letter := range c.present {
		if freq[letter] == 0 {
			return false
		}
	}
	for letter := range c.absent {
		if freq[letter] > 0 {
			return false
		}
	}
	for letter, positions := range c.wrong {
		for pos := range positions {
			if pos < len(w) && w[pos] == letter {
				return false
			}
		}
	}
	for letter, lc := range c.counts {
		if !lc.Allows(freq[letter]) {
			return false
		}
	}
	return true
}

// IsValid is the function form of (*WordConstraints).IsValid.
func IsValid(word string, c *WordConstraints) bool { return c.IsValid(word) }

// FilterWords returns the words that satisfy c, preserving input order.
// The input slice is not modified; the result is never nil.
func FilterWords(words []string, c *WordConstraints) []string {
	out := make([]string, 0, len(words))
	if c.Empty() {
		return append(out, words...)
	}
	for _, w := range words {
		if c.IsValid(w) {
			out = append(out, w)
		}
	}
	return out
}

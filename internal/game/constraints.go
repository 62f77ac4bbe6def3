// internal/game/constraints.go
//
// WordConstraints: everything learned so far about one unknown target.
//
// A WordConstraints is created empty at the start of a solving session,
// tightened once per guess by Merge, and read by IsValid/FilterWords.
// It has no internal locking; callers must not Merge into the same value
// from several goroutines at once.

package game

import (
	"encoding/json"
	"sort"
	"strconv"
)

// LetterCount is an occurrence constraint for one letter: either an exact
// count (Exact=true) or a lower bound (Exact=false). Never both.
type LetterCount struct {
	N     int
	Exact bool
}

// Allows reports whether a word containing n copies of the letter satisfies c.
func (c LetterCount) Allows(n int) bool {
	if c.Exact {
		return n == c.N
	}
	return n >= c.N
}

func (c LetterCount) String() string {
	if c.Exact {
		return "exact=" + strconv.Itoa(c.N)
	}
	return "min=" + strconv.Itoa(c.N)
}

// MarshalJSON encodes as {"exact":n} or {"min":n}.
func (c LetterCount) MarshalJSON() ([]byte, error) {
	if c.Exact {
		return json.Marshal(map[string]int{"exact": c.N})
	}
	return json.Marshal(map[string]int{"min": c.N})
}

// WordConstraints is the accumulated constraint set for one target.
type WordConstraints struct {
	length  int                   // word length fixed by the first merge; 0 until then
	correct map[int]rune          // position -> letter known to be there
	present map[rune]struct{}     // letters known to occur, position not pinned
	absent  map[rune]struct{}     // letters known to occur zero times
	wrong   map[rune]map[int]bool // letter -> positions it is known not to occupy
	counts  map[rune]LetterCount  // letter -> occurrence constraint
}

// NewWordConstraints returns an empty constraint set that admits every word.
func NewWordConstraints() *WordConstraints {
	return &WordConstraints{
		correct: make(map[int]rune),
		present: make(map[rune]struct{}),
		absent:  make(map[rune]struct{}),
		wrong:   make(map[rune]map[int]bool),
		counts:  make(map[rune]LetterCount),
	}
}

// Clone returns a deep copy.
func (c *WordConstraints) Clone() *WordConstraints {
	out := NewWordConstraints()
	out.length = c.length
	for p, r := range c.correct {
		out.correct[p] = r
	}
	for r := range c.present {
		out.present[r] = struct{}{}
	}
	for r := range c.absent {
		out.absent[r] = struct{}{}
	}
	for r, ps := range c.wrong {
		m := make(map[int]bool, len(ps))
		for p := range ps {
			m[p] = true
		}
		out.wrong[r] = m
	}
	for r, lc := range c.counts {
		out.counts[r] = lc
	}
	return out
}

// Empty reports whether nothing has been learned yet.
func (c *WordConstraints) Empty() bool {
	return c.length == 0 && len(c.correct) == 0 && len(c.present) == 0 && len(c.absent) == 0 &&
		len(c.wrong) == 0 && len(c.counts) == 0
}

// CorrectLetters returns a copy of the pinned positions.
func (c *WordConstraints) CorrectLetters() map[int]rune {
	out := make(map[int]rune, len(c.correct))
	for p, r := range c.correct {
		out[p] = r
	}
	return out
}

// PresentLetters returns the present-but-unpinned letters, sorted.
func (c *WordConstraints) PresentLetters() []rune { return sortedSet(c.present) }

// AbsentLetters returns the letters known not to occur, sorted.
func (c *WordConstraints) AbsentLetters() []rune { return sortedSet(c.absent) }

// WrongPositions returns, per letter, the sorted positions it cannot occupy.
func (c *WordConstraints) WrongPositions() map[rune][]int {
	out := make(map[rune][]int, len(c.wrong))
	for r, ps := range c.wrong {
		out[r] = sortedPositions(ps)
	}
	return out
}

// LetterCounts returns a copy of the occurrence constraints.
func (c *WordConstraints) LetterCounts() map[rune]LetterCount {
	out := make(map[rune]LetterCount, len(c.counts))
	for r, lc := range c.counts {
		out[r] = lc
	}
	return out
}

// WordLength is the length every merged result had, or 0 before the first merge.
func (c *WordConstraints) WordLength() int { return c.length }

// pinnedCount is how many positions are pinned to letter.
func (c *WordConstraints) pinnedCount(letter rune) int {
	n := 0
	for _, r := range c.correct {
		if r == letter {
			n++
		}
	}
	return n
}

type constraintsJSON struct {
	Length         int                    `json:"length"`
	Correct        map[string]string      `json:"correct"`
	Present        []string               `json:"present"`
	Absent         []string               `json:"absent"`
	WrongPositions map[string][]int       `json:"wrongPositions"`
	Counts         map[string]LetterCount `json:"counts"`
}

// MarshalJSON renders a stable snapshot keyed by position/letter strings.
func (c *WordConstraints) MarshalJSON() ([]byte, error) {
	v := constraintsJSON{
		Length:         c.length,
		Correct:        make(map[string]string, len(c.correct)),
		Present:        runesToStrings(c.PresentLetters()),
		Absent:         runesToStrings(c.AbsentLetters()),
		WrongPositions: make(map[string][]int, len(c.wrong)),
		Counts:         make(map[string]LetterCount, len(c.counts)),
	}
	for p, r := range c.correct {
		v.Correct[strconv.Itoa(p)] = string(r)
	}
	for r, ps := range c.wrong {
		v.WrongPositions[string(r)] = sortedPositions(ps)
	}
	for r, lc := range c.counts {
		v.Counts[string(r)] = lc
	}
	return json.Marshal(v)
}

func sortedSet(m map[rune]struct{}) []rune {
	out := make([]rune, 0, len(m))
	for r := range m {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func sortedPositions(m map[int]bool) []int {
	out := make([]int, 0, len(m))
	for p := range m {
		out = append(out, p)
	}
	sort.Ints(out)
	return out
}

func runesToStrings(rs []rune) []string {
	out := make([]string, len(rs))
	for i, r := range rs {
		out[i] = string(r)
	}
	return out
}

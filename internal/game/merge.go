// internal/game/merge.go
//
// Merge folds one guess's feedback into a WordConstraints.
//
// Per letter of the guess (in order of first appearance):
//  1. Pin positions scored Correct.
//  2. Record the letter as present when it scored Present but has no
//     pinned position yet.
//  3. Record positions the letter cannot occupy (Present tiles, plus Absent
//     tiles of a letter that still occurs elsewhere).
//  4. Tighten the occurrence count: any Absent tile fixes the count exactly
//     at correct+present; otherwise correct+present is only a lower bound.
//
// The first successful merge fixes the word length; results of any other
// length are rejected with ErrInputShape.
//
// Merge is atomic: on conflict the receiver is left exactly as it was.

package game

import "fmt"

// Merge applies g to c. It returns a *ConflictError when g contradicts
// what c already knows, or ErrInputShape for an empty result or one whose
// length differs from earlier merges.
func (c *WordConstraints) Merge(g GuessResult) error {
	if g.Len() == 0 {
		return fmt.Errorf("%w: empty guess result", ErrInputShape)
	}
	if c.length != 0 && g.Len() != c.length {
		return fmt.Errorf("%w: %s has %d letters, expected %d", ErrInputShape, g.Word(), g.Len(), c.length)
	}
	next := c.Clone()
	next.length = g.Len()
	for _, grp := range g.GroupByLetter() {
		if err := next.mergeLetter(grp); err != nil {
			return err
		}
	}
	next.prunePresent()
	*c = *next
	return nil
}

func (c *WordConstraints) mergeLetter(grp LetterGroup) error {
	letter := grp.Letter
	correctN := grp.count(Correct)
	presentN := grp.count(Present)
	absentN := grp.count(Absent)

	// 1. pin positions
	for _, o := range grp.Occurrences {
		if o.Status != Correct {
			continue
		}
		if prev, ok := c.correct[o.Position]; ok && prev != letter {
			return &ConflictError{Kind: ConflictPosition, Letter: letter, Position: o.Position,
				Detail: fmt.Sprintf("position already pinned to %c", prev)}
		}
		if c.wrong[letter][o.Position] {
			return &ConflictError{Kind: ConflictWrongPosition, Letter: letter, Position: o.Position,
				Detail: "letter was previously excluded from this position"}
		}
		c.correct[o.Position] = letter
	}

	// 2. presence
	if presentN > 0 && correctN == 0 && c.pinnedCount(letter) == 0 {
		c.present[letter] = struct{}{}
	}

	// 3. wrong positions
	exact := correctN + presentN
	for _, o := range grp.Occurrences {
		// An Absent tile of a letter that occurs elsewhere excludes this position too.
		if o.Status != Present && !(o.Status == Absent && exact > 0) {
			continue
		}
		if c.correct[o.Position] == letter {
			return &ConflictError{Kind: ConflictWrongPosition, Letter: letter, Position: o.Position,
				Detail: "letter is pinned to this position"}
		}
		if c.wrong[letter] == nil {
			c.wrong[letter] = make(map[int]bool)
		}
		c.wrong[letter][o.Position] = true
	}

	// 4. counts
	prev, hasPrev := c.counts[letter]
	if absentN > 0 {
		if hasPrev && !prev.Exact && prev.N > exact {
			return &ConflictError{Kind: ConflictCount, Letter: letter, Position: -1,
				Detail: fmt.Sprintf("previously %s, now exact=%d", prev, exact)}
		}
		if hasPrev && prev.Exact && prev.N != exact {
			return &ConflictError{Kind: ConflictCount, Letter: letter, Position: -1,
				Detail: fmt.Sprintf("previously %s, now exact=%d", prev, exact)}
		}
		if pinned := c.pinnedCount(letter); pinned > exact {
			return &ConflictError{Kind: ConflictCount, Letter: letter, Position: -1,
				Detail: fmt.Sprintf("%d positions pinned, now exactly %d", pinned, exact)}
		}
		c.counts[letter] = LetterCount{N: exact, Exact: true}
		if exact == 0 {
			c.absent[letter] = struct{}{}
		}
		return nil
	}

	minN := exact
	switch {
	case !hasPrev:
		c.counts[letter] = LetterCount{N: minN}
	case prev.Exact:
		if prev.N < minN {
			return &ConflictError{Kind: ConflictCount, Letter: letter, Position: -1,
				Detail: fmt.Sprintf("previously %s, now min=%d", prev, minN)}
		}
	default:
		if minN > prev.N {
			c.counts[letter] = LetterCount{N: minN}
		}
	}
	return nil
}

// prunePresent drops letters whose required occurrences are all pinned.
func (c *WordConstraints) prunePresent() {
	for letter := range c.present {
		need := 1
		if lc, ok := c.counts[letter]; ok && lc.N > need {
			need = lc.N
		}
		if c.pinnedCount(letter) >= need {
			delete(c.present, letter)
		}
	}
}

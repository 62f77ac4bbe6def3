package game

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var propertyWords = []string{
	"LEVEL", "LEVER", "LEAVE", "SPELL", "HELLO", "SLEEP", "SPEED", "SEEDS",
	"EERIE", "ABBEY", "CRANE", "CRATE", "SHADE", "BLAZE", "ABASE", "DEALS",
	"LLAMA", "MAMMA", "GEESE", "EMBER", "ERROR", "FJORD", "BLAST", "QUEEN",
	"TREES", "STEEL", "ELDER", "REBEL", "SKILL", "PAPER", "APPLE", "ALLEY",
}

// Every guess narrows (or keeps) the candidate set and never drops the target.
func TestProperty_MonotonicAndSound(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for _, target := range propertyWords {
		for round := 0; round < 5; round++ {
			c := NewWordConstraints()
			prev := len(propertyWords)
			for step := 0; step < 6; step++ {
				guess := propertyWords[rng.Intn(len(propertyWords))]
				require.NoError(t, c.Merge(mustFeedback(t, guess, target)), "%s vs %s", guess, target)

				got := FilterWords(propertyWords, c)
				assert.Contains(t, got, target, "target dropped after %s", guess)
				assert.LessOrEqual(t, len(got), prev)
				prev = len(got)
			}
		}
	}
}

// The candidates consistent with a guess are exactly the words that would
// have produced the same feedback.
func TestProperty_FilterMatchesFeedbackClasses(t *testing.T) {
	for _, target := range propertyWords {
		for _, guess := range propertyWords {
			res := mustFeedback(t, guess, target)
			c := NewWordConstraints()
			require.NoError(t, c.Merge(res))

			for _, w := range FilterWords(propertyWords, c) {
				other := mustFeedback(t, guess, w)
				assert.Equal(t, res.Statuses(), other.Statuses(), "guess %s: %s kept for target %s", guess, w, target)
			}
		}
	}
}

package game

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMode(t *testing.T) {
	m, err := ParseMode("")
	require.NoError(t, err)
	assert.Equal(t, ModeSolve, m)

	m, err = ParseMode("daily")
	require.NoError(t, err)
	assert.Equal(t, ModeDaily, m)

	_, err = ParseMode("hard")
	assert.Error(t, err)
}

func TestNewSession(t *testing.T) {
	s, err := NewSession(ModePlay, "level")
	require.NoError(t, err)
	assert.NotEmpty(t, s.ID)
	assert.Equal(t, "LEVEL", s.Target)
	assert.True(t, s.Constraints.Empty())

	_, err = NewSession(ModePlay, "")
	assert.ErrorIs(t, err, ErrNoTarget)

	s, err = NewSession(ModeSolve, "ignored")
	require.NoError(t, err)
	assert.Empty(t, s.Target)
}

func TestSession_PlayUntilSolved(t *testing.T) {
	s, err := NewSession(ModePlay, "LEVEL")
	require.NoError(t, err)

	res, err := s.Guess("sleep")
	require.NoError(t, err)
	assert.Equal(t, []LetterStatus{Absent, Present, Present, Correct, Absent}, res.Statuses())
	assert.False(t, s.Solved())

	_, err = s.Guess("LEVEL")
	require.NoError(t, err)
	assert.True(t, s.Solved())
	assert.Len(t, s.Guesses, 2)

	_, err = s.Guess("LEVER")
	assert.ErrorIs(t, err, ErrSolved)
	assert.Len(t, s.Guesses, 2)
}

func TestSession_GuessShapeError(t *testing.T) {
	s, err := NewSession(ModePlay, "LEVEL")
	require.NoError(t, err)
	_, err = s.Guess("LEVELS")
	assert.ErrorIs(t, err, ErrInputShape)
	assert.Empty(t, s.Guesses)
}

func TestSession_SolveModeRecord(t *testing.T) {
	s, err := NewSession(ModeSolve, "")
	require.NoError(t, err)

	_, err = s.Guess("CRANE")
	assert.ErrorIs(t, err, ErrNoTarget)

	require.NoError(t, s.Record(mustResult(t, "AXXXX", Correct, Absent, Absent, Absent, Absent)))
	err = s.Record(mustResult(t, "BYYYY", Correct, Absent, Absent, Absent, Absent))
	assert.ErrorIs(t, err, ErrConstraintConflict)
	assert.Len(t, s.Guesses, 1, "conflicting result must not be appended")
}

func TestSession_SolveModeRejectsOtherLength(t *testing.T) {
	s, err := NewSession(ModeSolve, "")
	require.NoError(t, err)
	require.NoError(t, s.Record(mustFeedback(t, "SLEEP", "LEVEL")))

	err = s.Record(mustResult(t, "SLEEPS", Absent, Present, Present, Correct, Absent, Correct))
	assert.ErrorIs(t, err, ErrInputShape)
	assert.Len(t, s.Guesses, 1)
	assert.Equal(t, []string{"LEVEL", "LEVER"}, FilterWords([]string{"LEVEL", "LEVER"}, s.Constraints))
}

func TestReplay_RejectsMixedLengths(t *testing.T) {
	_, err := Replay([]GuessResult{
		mustFeedback(t, "CRANE", "LEVEL"),
		mustFeedback(t, "LEVELS", "LEVELS"),
	})
	assert.ErrorIs(t, err, ErrInputShape)
	assert.Contains(t, err.Error(), "guess 2 (LEVELS)")
}

func TestReplay(t *testing.T) {
	c, err := Replay([]GuessResult{
		mustFeedback(t, "SLEEP", "LEVEL"),
		mustFeedback(t, "LEVER", "LEVEL"),
	})
	require.NoError(t, err)
	assert.NotEmpty(t, c.CorrectLetters())
	assert.NotEmpty(t, c.LetterCounts())
	assert.Equal(t, []string{"LEVEL", "LEVEE"}, FilterWords([]string{"LEVER", "LEVEL", "LEVEE"}, c))

	_, err = Replay([]GuessResult{
		mustResult(t, "AXXXX", Correct, Absent, Absent, Absent, Absent),
		mustResult(t, "BYYYY", Correct, Absent, Absent, Absent, Absent),
	})
	var ce *ConflictError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, ConflictPosition, ce.Kind)
	assert.Contains(t, err.Error(), "guess 2 (BYYYY)")

	empty, err := Replay(nil)
	require.NoError(t, err)
	assert.True(t, empty.Empty())
}

func solveSession(t *testing.T, results ...GuessResult) *Session {
	t.Helper()
	s, err := NewSession(ModeSolve, "")
	require.NoError(t, err)
	for _, r := range results {
		require.NoError(t, s.Record(r))
	}
	return s
}

func TestSession_ReplaceGuess(t *testing.T) {
	s := solveSession(t, mustFeedback(t, "SLEEP", "LEVEL"), mustFeedback(t, "CRANE", "LEVEL"))

	// Fix a mistyped first row: the second E was really absent.
	fixed := mustResult(t, "SLEEP", Absent, Present, Absent, Correct, Absent)
	require.NoError(t, s.ReplaceGuess(0, fixed))
	assert.Len(t, s.Guesses, 2)
	assert.Equal(t, fixed.Statuses(), s.Guesses[0].Statuses())
	lc := s.Constraints.LetterCounts()['E']
	assert.Equal(t, LetterCount{N: 1, Exact: true}, lc)
	want, err := Replay([]GuessResult{fixed, mustFeedback(t, "CRANE", "LEVEL")})
	require.NoError(t, err)
	assert.Equal(t, snapshot(t, want), snapshot(t, s.Constraints))

	// A replacement that conflicts with a later guess leaves everything as it was.
	before := snapshot(t, s.Constraints)
	err = s.ReplaceGuess(0, mustResult(t, "XXXXE", Absent, Absent, Absent, Absent, Correct))
	assert.ErrorIs(t, err, ErrConstraintConflict)
	assert.Equal(t, before, snapshot(t, s.Constraints))
	assert.Equal(t, "SLEEP", s.Guesses[0].Word())

	err = s.ReplaceGuess(0, mustResult(t, "SLEEPS", Absent, Absent, Absent, Absent, Absent, Absent))
	assert.ErrorIs(t, err, ErrInputShape)

	assert.ErrorIs(t, s.ReplaceGuess(2, mustFeedback(t, "LEVEL", "LEVEL")), ErrNoGuess)
	assert.ErrorIs(t, s.ReplaceGuess(0, mustFeedback(t, "LEVEL", "LEVEL")), ErrSolved)
}

func TestSession_RemoveGuess(t *testing.T) {
	s := solveSession(t, mustFeedback(t, "SLEEP", "LEVEL"), mustFeedback(t, "LEVER", "LEVEL"))

	require.NoError(t, s.RemoveGuess(1))
	require.Len(t, s.Guesses, 1)
	assert.Equal(t, "SLEEP", s.Guesses[0].Word())
	assert.Equal(t, []string{"LEVEL", "LEVER"}, FilterWords([]string{"LEVEL", "LEVER"}, s.Constraints))

	require.NoError(t, s.RemoveGuess(0))
	assert.Empty(t, s.Guesses)
	assert.True(t, s.Constraints.Empty())

	assert.ErrorIs(t, s.RemoveGuess(0), ErrNoGuess)
	assert.ErrorIs(t, s.RemoveGuess(-1), ErrNoGuess)
}

func TestSession_ClearGuesses(t *testing.T) {
	s := solveSession(t, mustFeedback(t, "SLEEP", "LEVEL"))
	require.NoError(t, s.ClearGuesses())
	assert.Empty(t, s.Guesses)
	assert.True(t, s.Constraints.Empty())

	// Length is free again after clearing.
	require.NoError(t, s.Record(mustFeedback(t, "LEVELS", "LEVELS")))
}

func TestSession_ScoredSessionsAreNotEditable(t *testing.T) {
	s, err := NewSession(ModePlay, "LEVEL")
	require.NoError(t, err)
	_, err = s.Guess("SLEEP")
	require.NoError(t, err)

	assert.ErrorIs(t, s.ReplaceGuess(0, mustFeedback(t, "LEVEL", "LEVEL")), ErrNotEditable)
	assert.ErrorIs(t, s.RemoveGuess(0), ErrNotEditable)
	assert.ErrorIs(t, s.ClearGuesses(), ErrNotEditable)
	assert.Len(t, s.Guesses, 1)
}

package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeFeedback(t *testing.T) {
	tests := []struct {
		name   string
		guess  string
		target string
		want   []LetterStatus
	}{
		{
			name:   "sleep against level",
			guess:  "SLEEP",
			target: "LEVEL",
			want:   []LetterStatus{Absent, Present, Present, Correct, Absent},
		},
		{
			name:   "repeated letters in guess and target",
			guess:  "SEEDS",
			target: "SPEED",
			want:   []LetterStatus{Correct, Present, Correct, Present, Absent},
		},
		{
			name:   "extra copy of a letter scores absent",
			guess:  "EERIE",
			target: "LEVEL",
			want:   []LetterStatus{Present, Correct, Absent, Absent, Absent},
		},
		{
			name:   "both copies present when target has two",
			guess:  "LLAMA",
			target: "HELLO",
			want:   []LetterStatus{Present, Present, Absent, Absent, Absent},
		},
		{
			name:   "no common letters",
			guess:  "FJORD",
			target: "BLAST",
			want:   []LetterStatus{Absent, Absent, Absent, Absent, Absent},
		},
		{
			name:   "case is ignored",
			guess:  "sleep",
			target: "Level",
			want:   []LetterStatus{Absent, Present, Present, Correct, Absent},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ComputeFeedback(tt.guess, tt.target)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Statuses())
			assert.Equal(t, normalize(tt.guess), got.Word())
		})
	}
}

func TestComputeFeedback_NeverOvercountsTargetLetters(t *testing.T) {
	res, err := ComputeFeedback("EERIE", "LEVEL")
	require.NoError(t, err)

	credited := 0
	for i, s := range res.Statuses() {
		if res.Word()[i] == 'E' && s != Absent {
			credited++
		}
	}
	assert.Equal(t, 2, credited)
}

func TestComputeFeedback_SelfGuessIsAllCorrect(t *testing.T) {
	for _, w := range []string{"LEVEL", "SPEED", "ABBEY", "CRANE", "MAMMA", "eerie"} {
		res, err := ComputeFeedback(w, w)
		require.NoError(t, err)
		assert.True(t, res.Solved(), w)
		for _, s := range res.Statuses() {
			assert.Equal(t, Correct, s, w)
		}
	}
}

func TestComputeFeedback_InputShape(t *testing.T) {
	_, err := ComputeFeedback("SLEEPY", "LEVEL")
	assert.ErrorIs(t, err, ErrInputShape)

	_, err = ComputeFeedback("", "")
	assert.ErrorIs(t, err, ErrInputShape)
}

func TestGuessResult_IsImmutable(t *testing.T) {
	res, err := ComputeFeedback("SLEEP", "LEVEL")
	require.NoError(t, err)

	st := res.Statuses()
	st[0] = Correct
	assert.Equal(t, Absent, res.Status(0))
	assert.Equal(t, "SLEEP:.YYG.", res.String())
}

func TestNewGuessResult(t *testing.T) {
	res, err := NewGuessResult("crate", []LetterStatus{Absent, Absent, Correct, Absent, Correct})
	require.NoError(t, err)
	assert.Equal(t, "CRATE", res.Word())

	_, err = NewGuessResult("crate", []LetterStatus{Absent})
	assert.ErrorIs(t, err, ErrInputShape)

	_, err = NewGuessResult("crate", []LetterStatus{Absent, Absent, "purple", Absent, Correct})
	assert.ErrorIs(t, err, ErrInputShape)
}

func TestParseLetterStatus(t *testing.T) {
	for in, want := range map[string]LetterStatus{
		"correct": Correct, "GREEN": Correct, "g": Correct,
		"present": Present, "yellow": Present,
		"absent": Absent, "grey": Absent, "x": Absent,
	} {
		got, err := ParseLetterStatus(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseLetterStatus("blue")
	assert.ErrorIs(t, err, ErrInputShape)
}

func TestGroupByLetter(t *testing.T) {
	res, err := ComputeFeedback("SLEEP", "LEVEL")
	require.NoError(t, err)

	groups := res.GroupByLetter()
	require.Len(t, groups, 4)
	assert.Equal(t, 'S', groups[0].Letter)
	assert.Equal(t, 'E', groups[2].Letter)
	assert.Equal(t, []Occurrence{{Position: 2, Status: Present}, {Position: 3, Status: Correct}}, groups[2].Occurrences)
}

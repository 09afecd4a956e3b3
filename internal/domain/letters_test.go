package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRollLetter_NoRepeatsUntilExhausted(t *testing.T) {
	r := NewRoom("TEST01", testConfig())

	seen := make(map[string]bool)
	for i := 0; i < len(AvailableLetters); i++ {
		letter := r.RollLetter()
		assert.False(t, seen[letter], "letter %q repeated before the pool ran out", letter)
		assert.Contains(t, AvailableLetters, letter)
		seen[letter] = true
	}
	assert.Len(t, seen, len(AvailableLetters))

	// The pool recycles rather than blocking
	letter := r.RollLetter()
	require.NotEmpty(t, letter)
	assert.Len(t, r.UsedLetters, 1)
}

func TestRollLetter_StampsRoundStart(t *testing.T) {
	r := NewRoom("TEST01", testConfig())
	require.True(t, r.RoundStartedAt.IsZero())

	r.RollLetter()
	assert.False(t, r.RoundStartedAt.IsZero())
	assert.Equal(t, r.CurrentLetter, r.UsedLetters[len(r.UsedLetters)-1])
}

func TestAvailableLetters_ExcludesRareStarters(t *testing.T) {
	for _, rare := range []string{"Q", "X", "Z"} {
		assert.False(t, strings.Contains(AvailableLetters, rare))
	}
}

package domain

import (
	"math/rand"
	"time"
)

// AvailableLetters is the draw pool for rounds. Letters that rarely start
// usable English words (Q, X, Z) are excluded.
const AvailableLetters = "ABCDEFGHIJKLMNOPRSTUVWY"

// RollLetter picks a letter not yet used in this room, recycling the pool
// when it is exhausted so progress never blocks. The chosen letter becomes
// the round's current letter and the round start time is stamped here,
// which is the reference point for the round timeout.
func (r *Room) RollLetter() string {
	available := make([]string, 0, len(AvailableLetters))
	for _, l := range AvailableLetters {
		if !r.letterUsed(string(l)) {
			available = append(available, string(l))
		}
	}
	if len(available) == 0 {
		r.UsedLetters = r.UsedLetters[:0]
		for _, l := range AvailableLetters {
			available = append(available, string(l))
		}
	}

	letter := available[rand.Intn(len(available))]
	r.CurrentLetter = letter
	r.UsedLetters = append(r.UsedLetters, letter)
	r.RoundStartedAt = time.Now()
	return letter
}

func (r *Room) letterUsed(letter string) bool {
	for _, l := range r.UsedLetters {
		if l == letter {
			return true
		}
	}
	return false
}

package domain

import (
	"strings"
	"time"
)

// Submission is one player's answers for the active round: one word per
// prompt, blanks permitted. At most one submission is ever recorded per
// player per round.
type Submission struct {
	PlayerID    string    `json:"playerId"`
	PlayerName  string    `json:"playerName"`
	Words       []string  `json:"words"`
	SubmittedAt time.Time `json:"submittedAt"`
}

// NewSubmission creates a submission stamped with the current time
func NewSubmission(playerID, playerName string, words []string) *Submission {
	return &Submission{
		PlayerID:    playerID,
		PlayerName:  playerName,
		Words:       words,
		SubmittedAt: time.Now(),
	}
}

// WordAt returns the normalized (lower-cased, trimmed) word for a prompt
// index, or "" when the entry is blank or missing.
func (s *Submission) WordAt(promptIndex int) string {
	if promptIndex < 0 || promptIndex >= len(s.Words) {
		return ""
	}
	return strings.ToLower(strings.TrimSpace(s.Words[promptIndex]))
}

// RawWordAt returns the word as typed, for display
func (s *Submission) RawWordAt(promptIndex int) string {
	if promptIndex < 0 || promptIndex >= len(s.Words) {
		return ""
	}
	return s.Words[promptIndex]
}

package domain

// PlayerScore is one player's standing at the end of a round
type PlayerScore struct {
	Name       string `json:"name"`
	RoundScore int    `json:"roundScore"`
	TotalScore int    `json:"totalScore"`
}

// RoundRecord is the immutable snapshot of a finished round, written once
// when voting is finalized and never mutated afterwards.
type RoundRecord struct {
	Round       int                    `json:"round"`
	Letter      string                 `json:"letter"`
	Submissions map[string]*Submission `json:"submissions"`
	Votes       map[string]*Ballot     `json:"votes"`
	Scores      []PlayerScore          `json:"scores"`
}

package domain

import "time"

// Player represents a player in a room. The ID is the player's connection
// identity and stays stable for the whole membership.
type Player struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Score      int       `json:"score"`
	RoundScore int       `json:"roundScore"`
	Submitted  bool      `json:"submitted"`
	Connected  bool      `json:"isConnected"`
	JoinedAt   time.Time `json:"joinedAt"`
}

// NewPlayer creates a new connected player with zeroed scores
func NewPlayer(id, name string) *Player {
	return &Player{
		ID:        id,
		Name:      name,
		Connected: true,
		JoinedAt:  time.Now(),
	}
}

// ResetForNewRound clears the player's per-round state
func (p *Player) ResetForNewRound() {
	p.RoundScore = 0
	p.Submitted = false
}

// ResetForNewGame clears all accumulated state
func (p *Player) ResetForNewGame() {
	p.Score = 0
	p.RoundScore = 0
	p.Submitted = false
}

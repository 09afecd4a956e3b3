package domain

import "time"

// ConfigState is the client-facing view of a room's game configuration
type ConfigState struct {
	Rounds       int `json:"rounds"`
	TimeLimit    int `json:"timeLimit"` // seconds
	PromptsCount int `json:"promptsCount"`
	MaxPlayers   int `json:"maxPlayers"`
}

// RoomState is the full client-facing snapshot of a room. It is a pure
// projection of internal state; nothing in the room depends on its shape.
type RoomState struct {
	ID               string                 `json:"id"`
	Players          []*Player              `json:"players"`
	HostID           string                 `json:"hostId"`
	Phase            Phase                  `json:"gameState"`
	Prompts          []string               `json:"prompts"`
	CurrentRound     int                    `json:"currentRound"`
	CurrentLetter    string                 `json:"currentLetter"`
	UsedLetters      []string               `json:"usedLetters"`
	RoundStartedAt   *time.Time             `json:"roundStartTime,omitempty"`
	Submissions      map[string]*Submission `json:"submissions"`
	SubmittedPlayers []string               `json:"submittedPlayers"`
	Votes            map[string]*Ballot     `json:"votes"`
	VotingAnswers    []*Answer              `json:"votingAnswers"`
	VoteResults      map[string]*VoteResult `json:"voteResults"`
	History          []*RoundRecord         `json:"roundHistory"`
	Config           ConfigState            `json:"gameConfig"`
	CreatedAt        time.Time              `json:"createdAt"`
}

// Snapshot projects the room into its client-facing shape. Players and
// ballots are copied by value; the live ones keep changing under the room
// lock after the snapshot is queued for broadcast. Submissions, answers,
// vote results and history entries are written once and never mutated, so
// sharing those pointers is safe.
func (r *Room) Snapshot() *RoomState {
	players := make([]*Player, len(r.Players))
	for i, p := range r.Players {
		clone := *p
		players[i] = &clone
	}

	submissions := make(map[string]*Submission, len(r.Submissions))
	submitted := make([]string, 0, len(r.Submissions))
	for id, sub := range r.Submissions {
		submissions[id] = sub
		submitted = append(submitted, id)
	}

	votes := make(map[string]*Ballot, len(r.Ballots))
	for id, b := range r.Ballots {
		votes[id] = b.Clone()
	}
	results := make(map[string]*VoteResult, len(r.VoteResults))
	for id, vr := range r.VoteResults {
		results[id] = vr
	}

	answers := make([]*Answer, len(r.Answers))
	copy(answers, r.Answers)

	var startedAt *time.Time
	if !r.RoundStartedAt.IsZero() {
		t := r.RoundStartedAt
		startedAt = &t
	}

	return &RoomState{
		ID:               r.ID,
		Players:          players,
		HostID:           r.HostID,
		Phase:            r.Phase,
		Prompts:          append([]string{}, r.Prompts...),
		CurrentRound:     r.CurrentRound,
		CurrentLetter:    r.CurrentLetter,
		UsedLetters:      append([]string{}, r.UsedLetters...),
		RoundStartedAt:   startedAt,
		Submissions:      submissions,
		SubmittedPlayers: submitted,
		Votes:            votes,
		VotingAnswers:    answers,
		VoteResults:      results,
		History:          append([]*RoundRecord{}, r.History...),
		Config: ConfigState{
			Rounds:       r.Config.Rounds,
			TimeLimit:    int(r.Config.TimeLimit.Seconds()),
			PromptsCount: r.Config.PromptsCount,
			MaxPlayers:   r.Config.MaxPlayers,
		},
		CreatedAt: r.CreatedAt,
	}
}

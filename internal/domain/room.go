package domain

import (
	"strings"
	"time"
)

// GameConfig holds the game parameters fixed into a room at creation
type GameConfig struct {
	Rounds        int           `json:"rounds"`
	TimeLimit     time.Duration `json:"-"`
	PromptsCount  int           `json:"promptsCount"`
	MaxPlayers    int           `json:"-"`
	MinNameLength int           `json:"-"`
}

// DefaultGameConfig returns the stock game setup
func DefaultGameConfig() GameConfig {
	return GameConfig{
		Rounds:        3,
		TimeLimit:     60 * time.Second,
		PromptsCount:  5,
		MaxPlayers:    10,
		MinNameLength: 2,
	}
}

// Room is one isolated game session. Players are kept in join order; the
// order is significant for host fallback.
type Room struct {
	ID             string                 `json:"id"`
	Players        []*Player              `json:"players"`
	HostID         string                 `json:"hostId"`
	Phase          Phase                  `json:"gameState"`
	Prompts        []string               `json:"prompts"`
	CurrentRound   int                    `json:"currentRound"`
	CurrentLetter  string                 `json:"currentLetter"`
	UsedLetters    []string               `json:"usedLetters"`
	RoundStartedAt time.Time              `json:"-"`
	Submissions    map[string]*Submission `json:"-"`
	Answers        []*Answer              `json:"-"`
	Ballots        map[string]*Ballot     `json:"-"`
	VoteResults    map[string]*VoteResult `json:"-"`
	History        []*RoundRecord         `json:"roundHistory"`
	Config         GameConfig             `json:"gameConfig"`
	CreatedAt      time.Time              `json:"createdAt"`
}

// NewRoom creates an empty room in the lobby phase
func NewRoom(id string, cfg GameConfig) *Room {
	return &Room{
		ID:          id,
		Players:     make([]*Player, 0, cfg.MaxPlayers),
		Phase:       PhaseLobby,
		Prompts:     []string{},
		UsedLetters: []string{},
		Submissions: make(map[string]*Submission),
		Ballots:     make(map[string]*Ballot),
		VoteResults: make(map[string]*VoteResult),
		History:     make([]*RoundRecord, 0),
		Config:      cfg,
		CreatedAt:   time.Now(),
	}
}

// AddPlayer validates and adds a player. The first player becomes host.
func (r *Room) AddPlayer(playerID, name string) (*Player, error) {
	if r.Phase != PhaseLobby {
		return nil, ErrGameInProgress
	}

	trimmed := strings.TrimSpace(name)
	if len(trimmed) < r.Config.MinNameLength {
		return nil, ErrInvalidName
	}
	for _, p := range r.Players {
		if strings.EqualFold(p.Name, trimmed) {
			return nil, ErrNameTaken
		}
	}
	if len(r.Players) >= r.Config.MaxPlayers {
		return nil, ErrRoomFull
	}

	player := NewPlayer(playerID, trimmed)
	r.Players = append(r.Players, player)
	if r.HostID == "" {
		r.HostID = playerID
	}
	return player, nil
}

// RemovePlayer removes a player and discards their submission for the
// active round. Returns the removed player, or nil if they were not here.
func (r *Room) RemovePlayer(playerID string) *Player {
	for i, p := range r.Players {
		if p.ID == playerID {
			r.Players = append(r.Players[:i], r.Players[i+1:]...)
			delete(r.Submissions, playerID)
			return p
		}
	}
	return nil
}

// Player returns a player by ID
func (r *Room) Player(playerID string) (*Player, bool) {
	for _, p := range r.Players {
		if p.ID == playerID {
			return p, true
		}
	}
	return nil, false
}

// IsHost checks if the given player currently holds host status
func (r *Room) IsHost(playerID string) bool {
	return playerID != "" && r.HostID == playerID
}

// IsEmpty reports whether the room has no players left
func (r *Room) IsEmpty() bool {
	return len(r.Players) == 0
}

// TransferHost promotes the first remaining player by join order
func (r *Room) TransferHost() *Player {
	if len(r.Players) == 0 {
		return nil
	}
	newHost := r.Players[0]
	r.HostID = newHost.ID
	return newHost
}

// SetPrompts replaces the room's prompt list
func (r *Room) SetPrompts(prompts []string) error {
	if len(prompts) != r.Config.PromptsCount {
		return ErrWrongPromptCount
	}
	r.Prompts = prompts
	return nil
}

// Start begins the game: resets all per-game state, advances to round 1
// and rolls the first letter.
func (r *Room) Start() error {
	if r.Phase != PhaseLobby {
		return ErrAlreadyStarted
	}
	if len(r.Prompts) != r.Config.PromptsCount {
		return ErrNoPrompts
	}
	if len(r.Players) == 0 {
		return ErrNoPlayers
	}

	r.Phase = PhasePlaying
	r.CurrentRound = 1
	r.Submissions = make(map[string]*Submission)
	r.UsedLetters = r.UsedLetters[:0]
	r.History = r.History[:0]
	for _, p := range r.Players {
		p.ResetForNewGame()
	}
	r.RollLetter()
	return nil
}

// SubmitWords records a player's answers for the active round. The write
// is idempotent: a second submit from the same player is a no-op, not an
// overwrite. Submissions outside the playing phase or from unknown players
// are dropped silently.
func (r *Room) SubmitWords(playerID string, words []string) (*Submission, bool) {
	if r.Phase != PhasePlaying {
		return nil, false
	}
	player, ok := r.Player(playerID)
	if !ok {
		return nil, false
	}
	if _, dup := r.Submissions[playerID]; dup {
		return nil, false
	}

	sub := NewSubmission(playerID, player.Name, words)
	r.Submissions[playerID] = sub
	player.Submitted = true
	return sub, true
}

// ConnectedCount returns the number of connected players
func (r *Room) ConnectedCount() int {
	count := 0
	for _, p := range r.Players {
		if p.Connected {
			count++
		}
	}
	return count
}

// AllSubmitted reports whether every connected player has a submission in
// for the active round. False when nobody is connected.
func (r *Room) AllSubmitted() bool {
	if r.ConnectedCount() == 0 {
		return false
	}
	for _, p := range r.Players {
		if p.Connected {
			if _, ok := r.Submissions[p.ID]; !ok {
				return false
			}
		}
	}
	return true
}

// BeginVoting builds the voting ledger from all qualifying answers and
// enters the voting phase. Each answer's ballot is seeded with an accept
// vote from its own submitter. A no-op unless the room is playing, which
// makes the transition safe against the timeout scan racing a
// full-submission completion.
func (r *Room) BeginVoting() bool {
	if r.Phase != PhasePlaying {
		return false
	}

	r.Phase = PhaseVoting
	r.Answers = r.Answers[:0]
	r.Ballots = make(map[string]*Ballot)
	r.VoteResults = make(map[string]*VoteResult)

	letter := strings.ToLower(r.CurrentLetter)
	for promptIndex, prompt := range r.Prompts {
		for _, p := range r.Players {
			sub, ok := r.Submissions[p.ID]
			if !ok {
				continue
			}
			word := sub.WordAt(promptIndex)
			if word == "" || !strings.HasPrefix(word, letter) {
				continue
			}
			id := AnswerID(sub.PlayerID, promptIndex)
			r.Answers = append(r.Answers, &Answer{
				ID:          id,
				PlayerID:    sub.PlayerID,
				PlayerName:  sub.PlayerName,
				PromptIndex: promptIndex,
				Prompt:      prompt,
				Word:        sub.RawWordAt(promptIndex),
				WordLower:   word,
			})
			r.Ballots[id] = NewBallot(sub.PlayerID)
		}
	}
	return true
}

// CastVote moves the voter onto one side of an answer's ballot, replacing
// any previous vote they held on it. Votes outside the voting phase, from
// unknown players, on unknown answers, or on the voter's own answer are
// dropped silently.
func (r *Room) CastVote(voterID, answerID string, choice VoteChoice) (*Ballot, bool) {
	if r.Phase != PhaseVoting || !choice.Valid() {
		return nil, false
	}
	if _, ok := r.Player(voterID); !ok {
		return nil, false
	}
	ballot, ok := r.Ballots[answerID]
	if !ok {
		return nil, false
	}
	if submitterID, _, ok := ParseAnswerID(answerID); ok && submitterID == voterID {
		return nil, false
	}

	ballot.Cast(voterID, choice)
	return ballot, true
}

// FinalizeVoting freezes all ballots, computes round scores, appends the
// round to history and enters review. No vote mutation is possible for
// this round afterwards. A no-op unless the room is voting.
func (r *Room) FinalizeVoting() bool {
	if r.Phase != PhaseVoting {
		return false
	}

	r.scoreRound(true)
	r.Phase = PhaseReview
	r.History = append(r.History, r.buildRoundRecord())
	return true
}

// ForceReview is the degenerate no-voting path for rounds completed by a
// departure: scores are computed directly from qualifying words without a
// vote gate and the room jumps straight to review.
func (r *Room) ForceReview() bool {
	if r.Phase != PhasePlaying {
		return false
	}
	r.scoreRound(false)
	r.Phase = PhaseReview
	return true
}

// CompleteReview advances past review: into the next round if rounds
// remain, otherwise into the finished state. Returns whether the game
// finished and whether the call had any effect.
func (r *Room) CompleteReview() (finished bool, ok bool) {
	if r.Phase != PhaseReview {
		return false, false
	}

	if r.CurrentRound >= r.Config.Rounds {
		r.Phase = PhaseFinished
		return true, true
	}

	r.CurrentRound++
	r.Submissions = make(map[string]*Submission)
	for _, p := range r.Players {
		p.ResetForNewRound()
	}
	r.RollLetter()
	r.Phase = PhasePlaying
	return false, true
}

// ResetForNewGame returns the room to its pre-game condition, preserving
// the player roster and connections but zeroing scores, history, prompts
// and all round state.
func (r *Room) ResetForNewGame() {
	r.Phase = PhaseLobby
	r.Prompts = []string{}
	r.CurrentRound = 0
	r.CurrentLetter = ""
	r.UsedLetters = r.UsedLetters[:0]
	r.RoundStartedAt = time.Time{}
	r.Submissions = make(map[string]*Submission)
	r.Answers = nil
	r.Ballots = make(map[string]*Ballot)
	r.VoteResults = make(map[string]*VoteResult)
	r.History = make([]*RoundRecord, 0)
	for _, p := range r.Players {
		p.ResetForNewGame()
	}
}

// RoundExpired reports whether the active round's time budget has elapsed
func (r *Room) RoundExpired(now time.Time) bool {
	if r.Phase != PhasePlaying || r.RoundStartedAt.IsZero() {
		return false
	}
	return now.Sub(r.RoundStartedAt) >= r.Config.TimeLimit
}

func (r *Room) buildRoundRecord() *RoundRecord {
	subs := make(map[string]*Submission, len(r.Submissions))
	for id, sub := range r.Submissions {
		subs[id] = sub
	}
	votes := make(map[string]*Ballot, len(r.Ballots))
	for id, b := range r.Ballots {
		votes[id] = b.Clone()
	}
	scores := make([]PlayerScore, 0, len(r.Players))
	for _, p := range r.Players {
		scores = append(scores, PlayerScore{
			Name:       p.Name,
			RoundScore: p.RoundScore,
			TotalScore: p.Score,
		})
	}
	return &RoundRecord{
		Round:       r.CurrentRound,
		Letter:      r.CurrentLetter,
		Submissions: subs,
		Votes:       votes,
		Scores:      scores,
	}
}

package app

import (
	"log/slog"
	"sync"
	"time"

	"github.com/Heyymant/Uncommon/internal/domain"
)

// submitVotingDelay is the short gap between the last submission landing
// and the voting phase starting, so the final submission update reaches
// clients first. The transition itself is idempotent, so the round timeout
// firing inside this window is harmless.
const submitVotingDelay = 500 * time.Millisecond

// ClientConnection represents a connected client
type ClientConnection interface {
	Send(message interface{}) error
	GetPlayerID() string
	Close() error
}

// RoomSession wraps a room with concurrency control and client management.
// Every inbound event runs to completion under the session mutex, which is
// what keeps the per-event invariants safe without finer locking.
type RoomSession struct {
	room      *domain.Room
	mu        sync.RWMutex
	clients   map[string]ClientConnection // playerID -> client
	clientsMu sync.RWMutex
	logger    *slog.Logger

	events    chan *domain.Event
	done      chan struct{}
	closeOnce sync.Once

	// onEmpty is called (outside the session lock) when the last player
	// leaves, so the registry can destroy the room immediately.
	onEmpty func(roomID string)
}

// NewRoomSession creates a session around a room and starts its broadcaster
func NewRoomSession(room *domain.Room, logger *slog.Logger, onEmpty func(roomID string)) *RoomSession {
	s := &RoomSession{
		room:    room,
		clients: make(map[string]ClientConnection),
		logger:  logger,
		events:  make(chan *domain.Event, 100),
		done:    make(chan struct{}),
		onEmpty: onEmpty,
	}

	go s.eventLoop()
	return s
}

// RoomCode returns the room's code
func (s *RoomSession) RoomCode() string {
	return s.room.ID
}

// CreatedAt returns when the room was created
func (s *RoomSession) CreatedAt() time.Time {
	return s.room.CreatedAt
}

// PlayerCount returns the number of players in the room
func (s *RoomSession) PlayerCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.room.Players)
}

// Phase returns the room's current phase
func (s *RoomSession) Phase() domain.Phase {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.room.Phase
}

// CanJoin checks whether a new player could join right now
func (s *RoomSession) CanJoin() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.room.Phase == domain.PhaseLobby && len(s.room.Players) < s.room.Config.MaxPlayers
}

// IsHost checks whether the given player holds host status
func (s *RoomSession) IsHost(playerID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.room.IsHost(playerID)
}

// Snapshot returns the client-facing room state
func (s *RoomSession) Snapshot() *domain.RoomState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.room.Snapshot()
}

// RegisterClient registers a client connection for a player
func (s *RoomSession) RegisterClient(playerID string, client ClientConnection) {
	s.clientsMu.Lock()
	defer s.clientsMu.Unlock()
	s.clients[playerID] = client
}

// UnregisterClient removes a client connection
func (s *RoomSession) UnregisterClient(playerID string) {
	s.clientsMu.Lock()
	defer s.clientsMu.Unlock()
	delete(s.clients, playerID)
}

// Join adds a player to the room and announces them
func (s *RoomSession) Join(playerID, name string) (*domain.Player, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	player, err := s.room.AddPlayer(playerID, name)
	if err != nil {
		return nil, err
	}

	s.queueEvent(domain.NewEvent(domain.EventRoomUpdated, s.room.ID, s.room.Snapshot()))
	s.queueEvent(domain.NewEvent(domain.EventPlayerJoined, s.room.ID, &domain.PlayerJoinedPayload{
		PlayerName:  player.Name,
		PlayerCount: len(s.room.Players),
	}))
	return player, nil
}

// Leave removes a player, migrating host status and destroying the room
// when it empties. A departure that completes the submission set jumps the
// round straight to review with directly-computed scores.
func (s *RoomSession) Leave(playerID string) {
	s.mu.Lock()

	wasHost := s.room.IsHost(playerID)
	player := s.room.RemovePlayer(playerID)
	if player == nil {
		s.mu.Unlock()
		return
	}

	if s.room.IsEmpty() {
		roomID := s.room.ID
		s.mu.Unlock()
		if s.onEmpty != nil {
			s.onEmpty(roomID)
		}
		return
	}

	if wasHost {
		if newHost := s.room.TransferHost(); newHost != nil {
			s.logger.Info("host transferred", "roomCode", s.room.ID, "newHost", newHost.Name)
			s.queueEvent(domain.NewEvent(domain.EventHostChanged, s.room.ID, &domain.HostChangedPayload{
				NewHostID:   newHost.ID,
				NewHostName: newHost.Name,
			}))
		}
	}

	s.queueEvent(domain.NewEvent(domain.EventRoomUpdated, s.room.ID, s.room.Snapshot()))
	s.queueEvent(domain.NewEvent(domain.EventPlayerLeft, s.room.ID, &domain.PlayerLeftPayload{
		PlayerName: player.Name,
		Reason:     "disconnected",
	}))

	// The departure may have completed the submission set
	if s.room.Phase == domain.PhasePlaying && s.room.AllSubmitted() {
		if s.room.ForceReview() {
			s.queueEvent(domain.NewEvent(domain.EventRoundReview, s.room.ID, s.room.Snapshot()))
		}
	}

	s.mu.Unlock()
}

// KickPlayer removes a player at the host's request
func (s *RoomSession) KickPlayer(hostID, targetID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.room.IsHost(hostID) {
		return domain.ErrNotHost
	}
	if targetID == s.room.HostID {
		return domain.ErrCannotKickSelf
	}

	kicked := s.room.RemovePlayer(targetID)
	if kicked == nil {
		return nil
	}

	// Deliver the kick notice directly before dropping the connection
	// registration, so it is not lost to the async broadcast.
	s.clientsMu.RLock()
	client, ok := s.clients[targetID]
	s.clientsMu.RUnlock()
	if ok {
		_ = client.Send(domain.NewPlayerEvent(domain.EventKicked, s.room.ID, targetID, &domain.KickedPayload{
			Message: "You have been removed from the room.",
		}))
	}
	s.UnregisterClient(targetID)

	s.queueEvent(domain.NewEvent(domain.EventRoomUpdated, s.room.ID, s.room.Snapshot()))
	s.queueEvent(domain.NewEvent(domain.EventPlayerLeft, s.room.ID, &domain.PlayerLeftPayload{
		PlayerName: kicked.Name,
		Reason:     "kicked",
	}))
	s.logger.Info("player kicked", "roomCode", s.room.ID, "player", kicked.Name)
	return nil
}

// SetPrompts replaces the room's prompts (host only)
func (s *RoomSession) SetPrompts(playerID string, prompts []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.room.IsHost(playerID) {
		return domain.ErrNotHost
	}
	if err := s.room.SetPrompts(prompts); err != nil {
		return err
	}

	s.queueEvent(domain.NewEvent(domain.EventRoomUpdated, s.room.ID, s.room.Snapshot()))
	return nil
}

// StartGame starts the game (host only)
func (s *RoomSession) StartGame(playerID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.room.IsHost(playerID) {
		return domain.ErrNotHost
	}
	if err := s.room.Start(); err != nil {
		return err
	}

	s.logger.Info("game started",
		"roomCode", s.room.ID,
		"players", len(s.room.Players),
		"letter", s.room.CurrentLetter,
	)
	s.queueEvent(domain.NewEvent(domain.EventGameStarted, s.room.ID, s.room.Snapshot()))
	return nil
}

// SubmitWords records a player's round answers. When the last connected
// player submits, the voting phase starts after a short delay.
func (s *RoomSession) SubmitWords(playerID string, words []string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sub, ok := s.room.SubmitWords(playerID, words)
	if !ok {
		return
	}

	allSubmitted := s.room.AllSubmitted()
	s.queueEvent(domain.NewEvent(domain.EventSubmissionReceived, s.room.ID, &domain.SubmissionReceivedPayload{
		PlayerName:     sub.PlayerName,
		PlayerID:       sub.PlayerID,
		SubmittedCount: len(s.room.Submissions),
		TotalPlayers:   s.room.ConnectedCount(),
		AllSubmitted:   allSubmitted,
	}))

	if allSubmitted {
		time.AfterFunc(submitVotingDelay, s.tryStartVoting)
	}
}

// CastVote moves a voter's ballot on one answer and broadcasts the change
func (s *RoomSession) CastVote(voterID, answerID string, choice domain.VoteChoice) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ballot, ok := s.room.CastVote(voterID, answerID, choice)
	if !ok {
		return
	}

	voter, _ := s.room.Player(voterID)
	s.queueEvent(domain.NewEvent(domain.EventVoteUpdated, s.room.ID, &domain.VoteUpdatedPayload{
		AnswerID:  answerID,
		Votes:     ballot.Clone(),
		VoterID:   voterID,
		VoterName: voter.Name,
	}))
}

// CompleteVoting finalizes all ballots and moves to review (host only)
func (s *RoomSession) CompleteVoting(playerID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.room.Phase != domain.PhaseVoting {
		return nil
	}
	if !s.room.IsHost(playerID) {
		return domain.ErrNotHost
	}

	s.room.FinalizeVoting()
	s.queueEvent(domain.NewEvent(domain.EventVotingComplete, s.room.ID, s.room.Snapshot()))
	s.queueEvent(domain.NewEvent(domain.EventRoundReview, s.room.ID, s.room.Snapshot()))
	return nil
}

// CompleteReview advances to the next round or finishes the game (host only)
func (s *RoomSession) CompleteReview(playerID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.room.IsHost(playerID) {
		return domain.ErrNotHost
	}

	finished, ok := s.room.CompleteReview()
	if !ok {
		return nil
	}

	if finished {
		s.logger.Info("game finished", "roomCode", s.room.ID)
		s.queueEvent(domain.NewEvent(domain.EventGameFinished, s.room.ID, s.room.Snapshot()))
	} else {
		s.logger.Info("round started",
			"roomCode", s.room.ID,
			"round", s.room.CurrentRound,
			"letter", s.room.CurrentLetter,
		)
		s.queueEvent(domain.NewEvent(domain.EventNextRound, s.room.ID, s.room.Snapshot()))
	}
	return nil
}

// PlayAgain resets the room to the lobby with scores wiped (host only)
func (s *RoomSession) PlayAgain(playerID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.room.IsHost(playerID) {
		return domain.ErrNotHost
	}

	s.room.ResetForNewGame()
	s.queueEvent(domain.NewEvent(domain.EventNewGame, s.room.ID, s.room.Snapshot()))
	return nil
}

// CheckRoundTimeout force-advances the room to voting when the active
// round's time budget has elapsed. A no-op in any other phase.
func (s *RoomSession) CheckRoundTimeout(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.room.RoundExpired(now) {
		return
	}
	s.logger.Info("round time expired", "roomCode", s.room.ID, "round", s.room.CurrentRound)
	s.startVotingLocked()
}

// tryStartVoting is the deferred all-submitted hop into voting
func (s *RoomSession) tryStartVoting() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.startVotingLocked()
}

// startVotingLocked enters voting if the room is still playing.
// Caller must hold the session lock.
func (s *RoomSession) startVotingLocked() {
	if !s.room.BeginVoting() {
		return
	}
	s.logger.Info("voting started", "roomCode", s.room.ID, "answers", len(s.room.Answers))
	s.queueEvent(domain.NewEvent(domain.EventVotingStarted, s.room.ID, s.room.Snapshot()))
}

// queueEvent adds an event to the broadcast queue
func (s *RoomSession) queueEvent(event *domain.Event) {
	select {
	case s.events <- event:
	default:
		s.logger.Warn("event queue full, dropping event", "type", event.Type)
	}
}

// eventLoop processes events and broadcasts them to clients
func (s *RoomSession) eventLoop() {
	for {
		select {
		case <-s.done:
			return
		case event := <-s.events:
			s.broadcastEvent(event)
		}
	}
}

// broadcastEvent sends an event to the room, or to one player when targeted
func (s *RoomSession) broadcastEvent(event *domain.Event) {
	s.clientsMu.RLock()
	defer s.clientsMu.RUnlock()

	if event.PlayerID != "" {
		if client, ok := s.clients[event.PlayerID]; ok {
			if err := client.Send(event); err != nil {
				s.logger.Debug("failed to send to client", "playerID", event.PlayerID, "error", err)
			}
		}
		return
	}

	for playerID, client := range s.clients {
		if err := client.Send(event); err != nil {
			s.logger.Debug("failed to send to client", "playerID", playerID, "error", err)
		}
	}
}

// Close shuts down the session and its client connections
func (s *RoomSession) Close() {
	s.closeOnce.Do(func() {
		close(s.done)

		s.clientsMu.Lock()
		for _, client := range s.clients {
			client.Close()
		}
		s.clients = make(map[string]ClientConnection)
		s.clientsMu.Unlock()
	})
}

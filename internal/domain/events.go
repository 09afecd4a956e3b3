package domain

import "time"

// EventType represents the type of room event
type EventType string

const (
	EventRoomCreated        EventType = "room-created"
	EventRoomUpdated        EventType = "room-updated"
	EventPlayerJoined       EventType = "player-joined"
	EventPlayerLeft         EventType = "player-left"
	EventGameStarted        EventType = "game-started"
	EventSubmissionReceived EventType = "submission-received"
	EventNextRound          EventType = "next-round"
	EventVotingStarted      EventType = "voting-started"
	EventVoteUpdated        EventType = "vote-updated"
	EventVotingComplete     EventType = "voting-complete"
	EventRoundReview        EventType = "round-review"
	EventGameFinished       EventType = "game-finished"
	EventHostChanged        EventType = "host-changed"
	EventKicked             EventType = "kicked"
	EventNewGame            EventType = "new-game"
	EventPromptsGenerated   EventType = "ai-prompts-generated"
	EventError              EventType = "error"
)

// Event is an outbound notification for a room. PlayerID, when set, targets
// the event at a single player instead of the whole room.
type Event struct {
	Type      EventType   `json:"type"`
	RoomID    string      `json:"roomId"`
	PlayerID  string      `json:"-"`
	Payload   interface{} `json:"payload,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

// NewEvent creates a room-wide event
func NewEvent(eventType EventType, roomID string, payload interface{}) *Event {
	return &Event{
		Type:      eventType,
		RoomID:    roomID,
		Payload:   payload,
		Timestamp: time.Now(),
	}
}

// NewPlayerEvent creates an event targeted at a single player
func NewPlayerEvent(eventType EventType, roomID, playerID string, payload interface{}) *Event {
	e := NewEvent(eventType, roomID, payload)
	e.PlayerID = playerID
	return e
}

// Payload types for the different events

// RoomCreatedPayload confirms room creation to its first player
type RoomCreatedPayload struct {
	RoomID string `json:"roomId"`
}

// PlayerJoinedPayload announces a new player
type PlayerJoinedPayload struct {
	PlayerName  string `json:"playerName"`
	PlayerCount int    `json:"playerCount"`
}

// PlayerLeftPayload announces a departure
type PlayerLeftPayload struct {
	PlayerName string `json:"playerName"`
	Reason     string `json:"reason"` // "disconnected" or "kicked"
}

// SubmissionReceivedPayload tracks round submission progress
type SubmissionReceivedPayload struct {
	PlayerName     string `json:"playerName"`
	PlayerID       string `json:"playerId"`
	SubmittedCount int    `json:"submittedCount"`
	TotalPlayers   int    `json:"totalPlayers"`
	AllSubmitted   bool   `json:"allSubmitted"`
}

// VoteUpdatedPayload broadcasts a single ballot change for live tallies
type VoteUpdatedPayload struct {
	AnswerID  string  `json:"answerId"`
	Votes     *Ballot `json:"votes"`
	VoterID   string  `json:"voterId"`
	VoterName string  `json:"voterName"`
}

// HostChangedPayload announces a host migration
type HostChangedPayload struct {
	NewHostID   string `json:"newHostId"`
	NewHostName string `json:"newHostName"`
}

// KickedPayload is sent to a removed player only
type KickedPayload struct {
	Message string `json:"message"`
}

// PromptsGeneratedPayload carries generated prompts back to the host.
// ReplaceIndex passes through untouched so the client can swap a single
// prompt instead of the whole list.
type PromptsGeneratedPayload struct {
	Success      bool     `json:"success"`
	Prompts      []string `json:"prompts"`
	AIGenerated  bool     `json:"aiGenerated"`
	Category     string   `json:"category"`
	ReplaceIndex *int     `json:"replaceIndex,omitempty"`
}

// ErrorPayload reports a validation or authorization failure to the
// offending connection only
type ErrorPayload struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

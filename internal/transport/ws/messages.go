package ws

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/Heyymant/Uncommon/internal/domain"
)

// MessageType represents the type of an inbound WebSocket message
type MessageType string

// Client → Server message types
const (
	MsgCreateRoom     MessageType = "create-room"
	MsgJoinRoom       MessageType = "join-room"
	MsgSetPrompts     MessageType = "set-prompts"
	MsgStartGame      MessageType = "start-game"
	MsgSubmitWords    MessageType = "submit-words"
	MsgCastVote       MessageType = "cast-vote"
	MsgCompleteVoting MessageType = "complete-voting"
	MsgCompleteReview MessageType = "complete-review"
	MsgPlayAgain      MessageType = "play-again"
	MsgKickPlayer     MessageType = "kick-player"
	MsgLeaveRoom      MessageType = "leave-room"
	MsgFetchAIPrompts MessageType = "fetch-ai-prompts"
	MsgPing           MessageType = "ping"
)

// ClientMessage is the envelope for messages from clients
type ClientMessage struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Inbound payloads

type CreateRoomPayload struct {
	Name string `json:"name"`
}

type JoinRoomPayload struct {
	RoomCode string `json:"roomCode"`
	Name     string `json:"name"`
}

type SetPromptsPayload struct {
	Prompts []string `json:"prompts"`
}

type SubmitWordsPayload struct {
	Words []string `json:"words"`
}

type CastVotePayload struct {
	AnswerID string `json:"answerId"`
	Vote     string `json:"vote"` // "accept" or "reject"
}

type KickPlayerPayload struct {
	PlayerID string `json:"playerId"`
}

type FetchAIPromptsPayload struct {
	Category     string `json:"category"`
	Count        int    `json:"count"`
	ReplaceIndex *int   `json:"replaceIndex,omitempty"`
}

// ServerMessage is the envelope for direct (non-event) replies like pong
type ServerMessage struct {
	Type      string      `json:"type"`
	Payload   interface{} `json:"payload,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

// NewServerMessage creates a server message stamped with the current time
func NewServerMessage(msgType string, payload interface{}) *ServerMessage {
	return &ServerMessage{
		Type:      msgType,
		Payload:   payload,
		Timestamp: time.Now(),
	}
}

// errorPayload maps a domain error onto the stable wire error taxonomy
func errorPayload(err error) *domain.ErrorPayload {
	switch {
	case errors.Is(err, domain.ErrRoomNotFound):
		return &domain.ErrorPayload{Type: "room_not_found", Message: "Room not found. Check the Room ID."}
	case errors.Is(err, domain.ErrGameInProgress):
		return &domain.ErrorPayload{Type: "game_in_progress", Message: "Game already in progress. Wait for the next game."}
	case errors.Is(err, domain.ErrNameTaken):
		return &domain.ErrorPayload{Type: "name_taken", Message: "That name is already taken. Choose another."}
	case errors.Is(err, domain.ErrInvalidName):
		return &domain.ErrorPayload{Type: "invalid_name", Message: "Name must be at least 2 characters."}
	case errors.Is(err, domain.ErrRoomFull):
		return &domain.ErrorPayload{Type: "room_full", Message: "Room is full."}
	case errors.Is(err, domain.ErrNotHost):
		return &domain.ErrorPayload{Type: "not_host", Message: "Only the host can perform this action."}
	case errors.Is(err, domain.ErrWrongPromptCount):
		return &domain.ErrorPayload{Type: "invalid_prompts", Message: "Wrong number of prompts."}
	case errors.Is(err, domain.ErrNoPrompts):
		return &domain.ErrorPayload{Type: "no_prompts", Message: "Please set prompts first."}
	case errors.Is(err, domain.ErrNoPlayers):
		return &domain.ErrorPayload{Type: "no_players", Message: "No players in room."}
	case errors.Is(err, domain.ErrAlreadyStarted):
		return &domain.ErrorPayload{Type: "already_started", Message: "Game has already started."}
	case errors.Is(err, domain.ErrCannotKickSelf):
		return &domain.ErrorPayload{Type: "cannot_kick", Message: "Cannot kick yourself."}
	default:
		return &domain.ErrorPayload{Type: "internal_error", Message: err.Error()}
	}
}

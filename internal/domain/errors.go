package domain

import "errors"

// Domain errors. Validation and authorization failures are reported to the
// offending connection only and never mutate room state. Phase-mismatch
// actions are not errors at all; the room methods drop them silently since
// they arise from ordinary client/server state skew.
var (
	ErrRoomNotFound     = errors.New("room not found")
	ErrGameInProgress   = errors.New("game already in progress")
	ErrNameTaken        = errors.New("name already taken")
	ErrInvalidName      = errors.New("name too short")
	ErrRoomFull         = errors.New("room is full")
	ErrNotHost          = errors.New("only the host can perform this action")
	ErrWrongPromptCount = errors.New("wrong number of prompts")
	ErrNoPrompts        = errors.New("prompts not set")
	ErrNoPlayers        = errors.New("no players in room")
	ErrAlreadyStarted   = errors.New("game already started")
	ErrCannotKickSelf   = errors.New("cannot kick yourself")
)

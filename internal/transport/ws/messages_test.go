package ws

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Heyymant/Uncommon/internal/domain"
)

func TestClientMessage_Decode(t *testing.T) {
	raw := []byte(`{"type":"cast-vote","payload":{"answerId":"p1-0","vote":"accept"}}`)

	var msg ClientMessage
	require.NoError(t, json.Unmarshal(raw, &msg))
	assert.Equal(t, MsgCastVote, msg.Type)

	var payload CastVotePayload
	require.NoError(t, json.Unmarshal(msg.Payload, &payload))
	assert.Equal(t, "p1-0", payload.AnswerID)
	assert.Equal(t, "accept", payload.Vote)
}

func TestErrorPayload_Mapping(t *testing.T) {
	tests := []struct {
		err      error
		wantType string
	}{
		{domain.ErrRoomNotFound, "room_not_found"},
		{domain.ErrGameInProgress, "game_in_progress"},
		{domain.ErrNameTaken, "name_taken"},
		{domain.ErrInvalidName, "invalid_name"},
		{domain.ErrRoomFull, "room_full"},
		{domain.ErrNotHost, "not_host"},
		{domain.ErrWrongPromptCount, "invalid_prompts"},
		{domain.ErrNoPrompts, "no_prompts"},
		{domain.ErrNoPlayers, "no_players"},
		{domain.ErrAlreadyStarted, "already_started"},
		{domain.ErrCannotKickSelf, "cannot_kick"},
		{errors.New("boom"), "internal_error"},
	}

	for _, tt := range tests {
		got := errorPayload(tt.err)
		assert.Equal(t, tt.wantType, got.Type)
		assert.NotEmpty(t, got.Message)
	}
}

func TestErrorPayload_WrappedErrors(t *testing.T) {
	wrapped := errors.Join(errors.New("context"), domain.ErrNotHost)
	assert.Equal(t, "not_host", errorPayload(wrapped).Type)
}

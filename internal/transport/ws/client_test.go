package ws

import (
	"encoding/json"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Heyymant/Uncommon/internal/app"
	"github.com/Heyymant/Uncommon/internal/config"
)

func testClient(t *testing.T, playerID string) (*Client, *app.RoomHub) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	hub := app.NewRoomHub(config.GameConfig{
		Rounds:         3,
		TimeLimit:      60 * time.Second,
		PromptsCount:   5,
		MaxPlayers:     10,
		MinNameLength:  2,
		RoomCodeLength: 6,
		StaleRoomTTL:   2 * time.Hour,
	}, logger)
	t.Cleanup(hub.Close)

	// The connection is never touched by the join/leave paths under test
	return NewClient(nil, hub, nil, playerID, logger), hub
}

func joinPayload(t *testing.T, roomCode, name string) json.RawMessage {
	t.Helper()
	raw, err := json.Marshal(JoinRoomPayload{RoomCode: roomCode, Name: name})
	require.NoError(t, err)
	return raw
}

func TestClient_RejectedJoinKeepsCurrentRoom(t *testing.T) {
	c, hub := testClient(t, "conn-1")

	home, err := hub.CreateRoom()
	require.NoError(t, err)
	other, err := hub.CreateRoom()
	require.NoError(t, err)
	_, err = other.Join("conn-2", "Bob")
	require.NoError(t, err)

	c.handleJoinRoom(joinPayload(t, home.RoomCode(), "Alice"))
	require.Same(t, home, c.currentSession())

	// The target room already has a Bob, so the join is refused and the
	// player stays where they were
	c.handleJoinRoom(joinPayload(t, other.RoomCode(), "Bob"))

	assert.Same(t, home, c.currentSession())
	assert.Equal(t, 1, home.PlayerCount())
	assert.Equal(t, 1, other.PlayerCount())
}

func TestClient_SuccessfulJoinLeavesOldRoom(t *testing.T) {
	c, hub := testClient(t, "conn-1")

	home, err := hub.CreateRoom()
	require.NoError(t, err)
	_, err = home.Join("conn-2", "Bob")
	require.NoError(t, err)
	other, err := hub.CreateRoom()
	require.NoError(t, err)

	c.handleJoinRoom(joinPayload(t, home.RoomCode(), "Alice"))
	c.handleJoinRoom(joinPayload(t, other.RoomCode(), "Alice"))

	assert.Same(t, other, c.currentSession())
	assert.Equal(t, 1, home.PlayerCount())
	assert.Equal(t, 1, other.PlayerCount())
}

func TestClient_JoinUnknownRoomKeepsCurrentRoom(t *testing.T) {
	c, hub := testClient(t, "conn-1")

	home, err := hub.CreateRoom()
	require.NoError(t, err)
	c.handleJoinRoom(joinPayload(t, home.RoomCode(), "Alice"))

	c.handleJoinRoom(joinPayload(t, "NOPE99", "Alice"))

	assert.Same(t, home, c.currentSession())
	assert.Equal(t, 1, home.PlayerCount())
}

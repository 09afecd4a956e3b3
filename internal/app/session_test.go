package app

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Heyymant/Uncommon/internal/domain"
)

// fakeClient records messages sent to it
type fakeClient struct {
	playerID string
	mu       sync.Mutex
	messages []interface{}
	closed   bool
}

func (c *fakeClient) Send(message interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.messages = append(c.messages, message)
	return nil
}

func (c *fakeClient) GetPlayerID() string { return c.playerID }

func (c *fakeClient) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	return nil
}

func (c *fakeClient) received(eventType domain.EventType) bool {
	return c.eventOf(eventType) != nil
}

func (c *fakeClient) eventOf(eventType domain.EventType) *domain.Event {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, m := range c.messages {
		if e, ok := m.(*domain.Event); ok && e.Type == eventType {
			return e
		}
	}
	return nil
}

func sessionConfig() domain.GameConfig {
	return domain.GameConfig{
		Rounds:        3,
		TimeLimit:     60 * time.Second,
		PromptsCount:  2,
		MaxPlayers:    10,
		MinNameLength: 2,
	}
}

func newTestSession(t *testing.T, onEmpty func(string)) *RoomSession {
	t.Helper()
	room := domain.NewRoom("TEST01", sessionConfig())
	s := NewRoomSession(room, testLogger(), onEmpty)
	t.Cleanup(s.Close)
	return s
}

// startedSession returns a playing session with the named players joined.
// The first player is host.
func startedSession(t *testing.T, names ...string) *RoomSession {
	t.Helper()
	s := newTestSession(t, nil)
	for i, name := range names {
		_, err := s.Join(pid(i), name)
		require.NoError(t, err)
	}
	require.NoError(t, s.SetPrompts(pid(0), []string{"A fruit", "An animal"}))
	require.NoError(t, s.StartGame(pid(0)))
	return s
}

func pid(i int) string {
	return string(rune('a'+i)) + "-id"
}

func TestSession_JoinErrors(t *testing.T) {
	s := newTestSession(t, nil)

	_, err := s.Join("p1", "Alice")
	require.NoError(t, err)
	assert.True(t, s.IsHost("p1"))

	_, err = s.Join("p2", "alice")
	assert.ErrorIs(t, err, domain.ErrNameTaken)

	_, err = s.Join("p3", "x")
	assert.ErrorIs(t, err, domain.ErrInvalidName)
}

func TestSession_HostOnlyOperations(t *testing.T) {
	s := newTestSession(t, nil)
	_, err := s.Join("host", "Alice")
	require.NoError(t, err)
	_, err = s.Join("guest", "Bob")
	require.NoError(t, err)

	prompts := []string{"A fruit", "An animal"}
	assert.ErrorIs(t, s.SetPrompts("guest", prompts), domain.ErrNotHost)
	assert.ErrorIs(t, s.StartGame("guest"), domain.ErrNotHost)
	assert.ErrorIs(t, s.KickPlayer("guest", "host"), domain.ErrNotHost)
	assert.ErrorIs(t, s.CompleteReview("guest"), domain.ErrNotHost)
	assert.ErrorIs(t, s.PlayAgain("guest"), domain.ErrNotHost)

	// None of the refused calls changed anything
	assert.Equal(t, domain.PhaseLobby, s.Phase())
	assert.Empty(t, s.Snapshot().Prompts)
}

func TestSession_CompleteVotingPhaseGate(t *testing.T) {
	s := startedSession(t, "Alice", "Bob")

	// Outside the voting phase the call is silently ignored, even for
	// players who are not the host
	assert.NoError(t, s.CompleteVoting("guest"))
	assert.Equal(t, domain.PhasePlaying, s.Phase())
}

func TestSession_LeaveMigratesHost(t *testing.T) {
	s := newTestSession(t, nil)
	for i, name := range []string{"Alice", "Bob", "Cara"} {
		_, err := s.Join(pid(i), name)
		require.NoError(t, err)
	}

	s.Leave(pid(0))
	assert.True(t, s.IsHost(pid(1)), "host passes by join order")
	assert.Equal(t, 2, s.PlayerCount())
}

func TestSession_LeaveEmptyingRoomCallsOnEmpty(t *testing.T) {
	var gotRoomID string
	s := newTestSession(t, func(roomID string) { gotRoomID = roomID })

	_, err := s.Join("p1", "Alice")
	require.NoError(t, err)

	s.Leave("p1")
	assert.Equal(t, "TEST01", gotRoomID)
}

func TestSession_LeaveUnknownPlayerIsNoop(t *testing.T) {
	called := false
	s := newTestSession(t, func(string) { called = true })

	_, err := s.Join("p1", "Alice")
	require.NoError(t, err)

	s.Leave("phantom")
	assert.False(t, called)
	assert.Equal(t, 1, s.PlayerCount())
}

func TestSession_LeaveCompletingSubmissionsForcesReview(t *testing.T) {
	s := startedSession(t, "Alice", "Bob")
	s.SubmitWords(pid(0), []string{"apple", "ant"})

	// Bob leaves without submitting, so every remaining player has
	// submitted and the round skips voting
	s.Leave(pid(1))
	assert.Equal(t, domain.PhaseReview, s.Phase())
	assert.Empty(t, s.Snapshot().History)
}

func TestSession_KickDeliversNoticeToTarget(t *testing.T) {
	s := startedSessionLobby(t, "Alice", "Bob")

	target := &fakeClient{playerID: pid(1)}
	s.RegisterClient(pid(1), target)

	require.NoError(t, s.KickPlayer(pid(0), pid(1)))
	assert.True(t, target.received(domain.EventKicked))
	assert.Equal(t, 1, s.PlayerCount())
}

func TestSession_KickGuards(t *testing.T) {
	s := startedSessionLobby(t, "Alice", "Bob")

	assert.ErrorIs(t, s.KickPlayer(pid(0), pid(0)), domain.ErrCannotKickSelf)
	assert.NoError(t, s.KickPlayer(pid(0), "phantom"), "kicking a missing player is harmless")
	assert.Equal(t, 2, s.PlayerCount())
}

func TestSession_KickDoesNotForceReview(t *testing.T) {
	s := startedSession(t, "Alice", "Bob")
	s.SubmitWords(pid(0), []string{"apple", "ant"})

	require.NoError(t, s.KickPlayer(pid(0), pid(1)))
	assert.Equal(t, domain.PhasePlaying, s.Phase(), "a kick never completes the round")
}

func TestSession_AllSubmittedEntersVoting(t *testing.T) {
	s := startedSession(t, "Alice", "Bob")

	s.SubmitWords(pid(0), []string{"apple", "ant"})
	s.SubmitWords(pid(1), []string{"berry", "bee"})
	assert.Equal(t, domain.PhasePlaying, s.Phase(), "the transition is deferred")

	// Drive the deferred hop directly instead of sleeping through it
	s.tryStartVoting()
	assert.Equal(t, domain.PhaseVoting, s.Phase())

	// The timer firing afterwards changes nothing
	s.CheckRoundTimeout(time.Now().Add(2 * time.Minute))
	assert.Equal(t, domain.PhaseVoting, s.Phase())
}

func TestSession_RoundTimeoutEntersVoting(t *testing.T) {
	s := startedSession(t, "Alice", "Bob")

	s.CheckRoundTimeout(time.Now().Add(time.Second))
	assert.Equal(t, domain.PhasePlaying, s.Phase(), "not yet expired")

	s.CheckRoundTimeout(time.Now().Add(2 * time.Minute))
	assert.Equal(t, domain.PhaseVoting, s.Phase())
}

func TestSession_VoteBroadcastDetachedFromLiveBallot(t *testing.T) {
	s := startedSession(t, "Alice", "Bob", "Cara")
	s.mu.Lock()
	s.room.CurrentLetter = "B"
	s.mu.Unlock()
	s.SubmitWords(pid(0), []string{"banana", "bee"})
	s.tryStartVoting()
	require.Equal(t, domain.PhaseVoting, s.Phase())

	observer := &fakeClient{playerID: pid(2)}
	s.RegisterClient(pid(2), observer)

	answerID := domain.AnswerID(pid(0), 0)
	s.CastVote(pid(1), answerID, domain.VoteReject)

	require.Eventually(t, func() bool {
		return observer.received(domain.EventVoteUpdated)
	}, time.Second, 5*time.Millisecond)
	payload := observer.eventOf(domain.EventVoteUpdated).Payload.(*domain.VoteUpdatedPayload)
	require.Equal(t, []string{pid(1)}, payload.Votes.Reject)

	// Later vote changes rewrite the live ballot in place; the payload
	// already handed to the broadcaster must not move with them
	s.CastVote(pid(1), answerID, domain.VoteAccept)
	s.CastVote(pid(2), answerID, domain.VoteReject)

	assert.Equal(t, []string{pid(1)}, payload.Votes.Reject)
	assert.Equal(t, []string{pid(0)}, payload.Votes.Accept)
}

func TestSession_SnapshotEventsDetachedFromPlayers(t *testing.T) {
	s := startedSessionLobby(t, "Alice", "Bob")

	observer := &fakeClient{playerID: pid(1)}
	s.RegisterClient(pid(1), observer)

	_, err := s.Join(pid(2), "Cara")
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		return observer.received(domain.EventRoomUpdated)
	}, time.Second, 5*time.Millisecond)
	state := observer.eventOf(domain.EventRoomUpdated).Payload.(*domain.RoomState)

	require.NoError(t, s.SetPrompts(pid(0), []string{"A fruit", "An animal"}))
	require.NoError(t, s.StartGame(pid(0)))
	s.SubmitWords(pid(0), []string{"apple", "ant"})

	// The queued snapshot reflects the lobby as it was, not the game the
	// room has since moved into
	assert.Equal(t, domain.PhaseLobby, state.Phase)
	for _, p := range state.Players {
		assert.False(t, p.Submitted)
	}
}

func TestSession_FullGameFlow(t *testing.T) {
	s := startedSession(t, "Alice", "Bob")

	for round := 1; round <= 3; round++ {
		s.SubmitWords(pid(0), []string{"apple", "ant"})
		s.SubmitWords(pid(1), []string{"berry", "bee"})
		s.tryStartVoting()
		require.Equal(t, domain.PhaseVoting, s.Phase())

		require.NoError(t, s.CompleteVoting(pid(0)))
		require.Equal(t, domain.PhaseReview, s.Phase())

		require.NoError(t, s.CompleteReview(pid(0)))
	}

	assert.Equal(t, domain.PhaseFinished, s.Phase())

	require.NoError(t, s.PlayAgain(pid(0)))
	assert.Equal(t, domain.PhaseLobby, s.Phase())
	assert.Equal(t, 2, s.PlayerCount(), "the roster survives a rematch reset")
}

// startedSessionLobby is like startedSession but stays in the lobby
func startedSessionLobby(t *testing.T, names ...string) *RoomSession {
	t.Helper()
	s := newTestSession(t, nil)
	for i, name := range names {
		_, err := s.Join(pid(i), name)
		require.NoError(t, err)
	}
	return s
}

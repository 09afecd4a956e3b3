package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnswerID_RoundTrip(t *testing.T) {
	id := AnswerID("player-uuid-123", 4)
	playerID, promptIndex, ok := ParseAnswerID(id)
	require.True(t, ok)
	assert.Equal(t, "player-uuid-123", playerID)
	assert.Equal(t, 4, promptIndex)
}

func TestParseAnswerID_Malformed(t *testing.T) {
	for _, id := range []string{"", "nodash", "-5", "trailing-", "abc-xyz"} {
		_, _, ok := ParseAnswerID(id)
		assert.False(t, ok, "id %q should not parse", id)
	}
}

func TestBallot_CastReplacesVote(t *testing.T) {
	b := NewBallot("submitter")

	b.Cast("v1", VoteAccept)
	b.Cast("v1", VoteReject)

	assert.Equal(t, []string{"submitter"}, b.Accept)
	assert.Equal(t, []string{"v1"}, b.Reject)

	b.Cast("v1", VoteAccept)
	assert.Equal(t, []string{"submitter", "v1"}, b.Accept)
	assert.Empty(t, b.Reject)
}

func TestBallot_Accepted(t *testing.T) {
	var nilBallot *Ballot
	assert.False(t, nilBallot.Accepted())

	b := &Ballot{}
	assert.False(t, b.Accepted(), "no votes at all fails")

	b = NewBallot("s")
	assert.True(t, b.Accepted(), "lone seeded accept passes")

	b.Cast("v1", VoteReject)
	assert.False(t, b.Accepted(), "a tie fails")

	b.Cast("v2", VoteAccept)
	assert.True(t, b.Accepted(), "majority accept passes")
}

func TestRoom_CastVoteGuards(t *testing.T) {
	r := votingRoom(t, map[int][]string{
		0: {"banana", "", ""},
	}, "Alice", "Bob")

	id := AnswerID(playerID(0), 0)

	_, ok := r.CastVote(playerID(0), id, VoteAccept)
	assert.False(t, ok, "voting on your own answer is refused")

	_, ok = r.CastVote("stranger", id, VoteAccept)
	assert.False(t, ok, "unknown voters are refused")

	_, ok = r.CastVote(playerID(1), "nope-0", VoteAccept)
	assert.False(t, ok, "unknown answers are refused")

	_, ok = r.CastVote(playerID(1), id, VoteChoice("maybe"))
	assert.False(t, ok, "unknown choices are refused")

	ballot, ok := r.CastVote(playerID(1), id, VoteReject)
	require.True(t, ok)
	assert.Contains(t, ballot.Reject, playerID(1))
}

func TestRoom_CastVoteOutsideVotingPhase(t *testing.T) {
	r := startedRoom(t, "Alice", "Bob")
	_, ok := r.CastVote(playerID(1), AnswerID(playerID(0), 0), VoteAccept)
	assert.False(t, ok)
}

func TestRoom_BeginVotingIdempotent(t *testing.T) {
	r := startedRoom(t, "Alice")
	r.CurrentLetter = "B"
	r.SubmitWords(playerID(0), []string{"banana", "", ""})

	require.True(t, r.BeginVoting())
	assert.False(t, r.BeginVoting(), "a second transition is a no-op")
	assert.Equal(t, PhaseVoting, r.Phase)
	assert.Len(t, r.Answers, 1)
}

func TestRoom_BeginVotingSeedsSubmitterAccept(t *testing.T) {
	r := votingRoom(t, map[int][]string{
		0: {"banana", "bear", ""},
	}, "Alice")

	require.Len(t, r.Answers, 2)
	for _, a := range r.Answers {
		ballot := r.Ballots[a.ID]
		require.NotNil(t, ballot)
		assert.Equal(t, []string{playerID(0)}, ballot.Accept)
		assert.Empty(t, ballot.Reject)
	}
}

func TestRoom_FinalizeVotingAppendsHistory(t *testing.T) {
	r := votingRoom(t, map[int][]string{
		0: {"banana", "", ""},
	}, "Alice")

	require.True(t, r.FinalizeVoting())
	assert.Equal(t, PhaseReview, r.Phase)
	require.Len(t, r.History, 1)

	record := r.History[0]
	assert.Equal(t, 1, record.Round)
	assert.Equal(t, "B", record.Letter)
	require.Len(t, record.Scores, 1)
	assert.Equal(t, "Alice", record.Scores[0].Name)
	assert.Equal(t, 1, record.Scores[0].RoundScore)

	assert.False(t, r.FinalizeVoting(), "already finalized")
}

package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// VoteChoice is the side of a ballot a voter lands on
type VoteChoice string

const (
	VoteAccept VoteChoice = "accept"
	VoteReject VoteChoice = "reject"
)

// Valid reports whether the choice is one of the two known sides
func (v VoteChoice) Valid() bool {
	return v == VoteAccept || v == VoteReject
}

// Answer is a single player-prompt answer eligible for voting: non-blank
// and starting with the round's letter.
type Answer struct {
	ID          string `json:"id"`
	PlayerID    string `json:"playerId"`
	PlayerName  string `json:"playerName"`
	PromptIndex int    `json:"promptIndex"`
	Prompt      string `json:"prompt"`
	Word        string `json:"word"` // original casing, for display
	WordLower   string `json:"wordLower"`
}

// AnswerID builds the stable composite key clients use to address votes
func AnswerID(playerID string, promptIndex int) string {
	return fmt.Sprintf("%s-%d", playerID, promptIndex)
}

// ParseAnswerID splits a composite answer id back into its parts
func ParseAnswerID(id string) (playerID string, promptIndex int, ok bool) {
	i := strings.LastIndex(id, "-")
	if i <= 0 || i == len(id)-1 {
		return "", 0, false
	}
	idx, err := strconv.Atoi(id[i+1:])
	if err != nil {
		return "", 0, false
	}
	return id[:i], idx, true
}

// Ballot holds the accept and reject voter sets for one answer. A voter
// appears in at most one of the two sets at a time.
type Ballot struct {
	Accept []string `json:"accept"`
	Reject []string `json:"reject"`
}

// NewBallot seeds a ballot with the submitter's own accept vote
func NewBallot(submitterID string) *Ballot {
	return &Ballot{
		Accept: []string{submitterID},
		Reject: []string{},
	}
}

// Cast records a vote, replacing any previous vote by the same voter
func (b *Ballot) Cast(voterID string, choice VoteChoice) {
	b.Accept = removeID(b.Accept, voterID)
	b.Reject = removeID(b.Reject, voterID)
	switch choice {
	case VoteAccept:
		b.Accept = append(b.Accept, voterID)
	case VoteReject:
		b.Reject = append(b.Reject, voterID)
	}
}

// Clone returns a detached copy. Ballots handed to broadcast payloads must
// be clones; the live ballot keeps mutating under the room lock while the
// broadcaster serializes without it.
func (b *Ballot) Clone() *Ballot {
	return &Ballot{
		Accept: append([]string{}, b.Accept...),
		Reject: append([]string{}, b.Reject...),
	}
}

// Accepted applies the majority rule: more accepts than rejects, or no
// rejections at all with at least one accept. An even split fails.
func (b *Ballot) Accepted() bool {
	if b == nil {
		return false
	}
	return len(b.Accept) > len(b.Reject) || (len(b.Reject) == 0 && len(b.Accept) >= 1)
}

// VoteResult is the finalized outcome for one answer, frozen when the
// host completes voting.
type VoteResult struct {
	Accepted    bool `json:"accepted"`
	AcceptCount int  `json:"acceptCount"`
	RejectCount int  `json:"rejectCount"`
	TotalVoters int  `json:"totalVoters"`
}

func removeID(ids []string, id string) []string {
	out := ids[:0]
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}

package domain

import "strings"

// scoreRound recomputes every player's round score and adds the earned
// points to their cumulative score. Each prompt is judged independently: a
// qualifying word scores +1 only when exactly one player submitted it
// (after lower-casing and trimming); duplicates cancel each other out.
//
// With useBallots set, a word must additionally have an accepted ballot to
// count, and the frozen outcome is recorded in VoteResults.
func (r *Room) scoreRound(useBallots bool) {
	for _, p := range r.Players {
		p.RoundScore = 0
	}

	letter := strings.ToLower(r.CurrentLetter)
	if letter == "" {
		return
	}
	totalVoters := len(r.Players)

	for promptIndex := range r.Prompts {
		// word -> player IDs that submitted it
		groups := make(map[string][]string)

		for _, sub := range r.Submissions {
			word := sub.WordAt(promptIndex)
			if word == "" || !strings.HasPrefix(word, letter) {
				continue
			}

			if useBallots {
				answerID := AnswerID(sub.PlayerID, promptIndex)
				ballot := r.Ballots[answerID]
				accepted := ballot.Accepted()
				r.VoteResults[answerID] = &VoteResult{
					Accepted:    accepted,
					AcceptCount: ballotLen(ballot, VoteAccept),
					RejectCount: ballotLen(ballot, VoteReject),
					TotalVoters: totalVoters,
				}
				if !accepted {
					continue
				}
			}

			groups[word] = append(groups[word], sub.PlayerID)
		}

		for _, playerIDs := range groups {
			if len(playerIDs) != 1 {
				continue
			}
			if p, ok := r.Player(playerIDs[0]); ok {
				p.RoundScore++
				p.Score++
			}
		}
	}
}

func ballotLen(b *Ballot, side VoteChoice) int {
	if b == nil {
		return 0
	}
	if side == VoteAccept {
		return len(b.Accept)
	}
	return len(b.Reject)
}

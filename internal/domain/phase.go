package domain

// Phase represents the current stage of a room's round lifecycle
type Phase string

const (
	PhaseLobby    Phase = "lobby"    // Waiting for players and prompts
	PhasePlaying  Phase = "playing"  // Players writing answers against the clock
	PhaseVoting   Phase = "voting"   // Players judging each other's answers
	PhaseReview   Phase = "review"   // Round results on display, host advances
	PhaseFinished Phase = "finished" // All rounds played
)

// String returns the string representation of the phase
func (p Phase) String() string {
	return string(p)
}

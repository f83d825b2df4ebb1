package domain

// Phase represents the screen the shared device is currently on
type Phase string

const (
	PhaseLobby    Phase = "lobby"    // Picking players, category and liar count
	PhaseReveal   Phase = "reveal"   // Device passed around, each player sees their role
	PhaseVote     Phase = "vote"     // Device passed around, each player casts one ballot
	PhaseOutcome  Phase = "outcome"  // Result of the last vote
	PhaseReady    Phase = "ready"    // Waiting to start the next voting round
	PhaseGameOver Phase = "gameover" // Game finished, winner shown
)

// String returns the string representation of the phase
func (p Phase) String() string {
	return string(p)
}

// IsActive reports whether a game is running in this phase
func (p Phase) IsActive() bool {
	return p != PhaseLobby && p != PhaseGameOver
}

// CanTransitionTo checks if a transition from current phase to target phase is valid
func (p Phase) CanTransitionTo(target Phase) bool {
	if target == PhaseGameOver {
		// Finishing is allowed from anywhere a game exists
		return p != PhaseLobby
	}

	validTransitions := map[Phase][]Phase{
		PhaseLobby:    {PhaseReveal},
		PhaseReveal:   {PhaseReveal, PhaseVote},
		PhaseVote:     {PhaseVote, PhaseOutcome},
		PhaseOutcome:  {PhaseReady},
		PhaseReady:    {PhaseVote},
		PhaseGameOver: {PhaseLobby},
	}

	allowed, ok := validTransitions[p]
	if !ok {
		return false
	}

	for _, phase := range allowed {
		if phase == target {
			return true
		}
	}
	return false
}

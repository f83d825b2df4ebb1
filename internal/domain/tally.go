package domain

// Tally is the count of one complete set of ballots
type Tally struct {
	Counts       map[string]int `json:"counts"`
	MaxVotes     int            `json:"maxVotes"`
	TopIDs       []string       `json:"topIds"`
	Tied         bool           `json:"tied"`
	EliminatedID string         `json:"eliminatedId,omitempty"`
}

// TallyVotes counts ballots per target. More than one target sharing the
// highest count is a tie and nobody is eliminated.
func TallyVotes(players []Player) Tally {
	counts := make(map[string]int)
	for _, p := range players {
		if p.VoteTarget != "" {
			counts[p.VoteTarget]++
		}
	}

	tally := Tally{Counts: counts}

	// Scan in seating order so TopIDs is deterministic
	for _, p := range players {
		count, ok := counts[p.ID]
		if !ok {
			continue
		}
		switch {
		case count > tally.MaxVotes:
			tally.MaxVotes = count
			tally.TopIDs = []string{p.ID}
		case count == tally.MaxVotes:
			tally.TopIDs = append(tally.TopIDs, p.ID)
		}
	}

	// MaxVotes <= 0 cannot happen once every player has voted
	tally.Tied = len(tally.TopIDs) != 1 || tally.MaxVotes <= 0
	if !tally.Tied {
		tally.EliminatedID = tally.TopIDs[0]
	}

	return tally
}

// VoteResult represents the voting results for display
type VoteResult struct {
	PlayerID  string   `json:"playerId"`
	Name      string   `json:"name"`
	VoteCount int      `json:"voteCount"`
	VotedBy   []string `json:"votedBy"` // Names of voters
	VotedFor  string   `json:"votedFor,omitempty"`
}

// VoteResults returns the per-player breakdown of the recorded ballots,
// in seating order
func (s RoundState) VoteResults() []VoteResult {
	names := make(map[string]string, len(s.Players))
	for _, p := range s.Players {
		names[p.ID] = p.Name
	}

	votedBy := make(map[string][]string)
	for _, p := range s.Players {
		if p.VoteTarget != "" {
			votedBy[p.VoteTarget] = append(votedBy[p.VoteTarget], p.Name)
		}
	}

	results := make([]VoteResult, 0, len(s.Players))
	for _, p := range s.Players {
		voters := votedBy[p.ID]
		if voters == nil {
			voters = []string{}
		}
		results = append(results, VoteResult{
			PlayerID:  p.ID,
			Name:      p.Name,
			VoteCount: len(voters),
			VotedBy:   voters,
			VotedFor:  names[p.VoteTarget],
		})
	}

	return results
}

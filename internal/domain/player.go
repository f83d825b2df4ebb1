package domain

// Player represents one person sitting around the shared device
type Player struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Role       Role   `json:"role,omitempty"`
	VoteTarget string `json:"voteTarget,omitempty"`
}

// HasVoted returns true if the player has a ballot recorded this round
func (p Player) HasVoted() bool {
	return p.VoteTarget != ""
}

// PlayerInfo is a safe view of player data (hides role and ballot)
type PlayerInfo struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	HasVoted bool   `json:"hasVoted"`
}

// ToInfo converts a Player to PlayerInfo (without role)
func (p Player) ToInfo() PlayerInfo {
	return PlayerInfo{
		ID:       p.ID,
		Name:     p.Name,
		HasVoted: p.HasVoted(),
	}
}

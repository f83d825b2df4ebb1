package domain

import "maps"

// Secret is the word every normal player sees for the whole game
type Secret struct {
	Text string         `json:"text"`
	Meta map[string]any `json:"meta,omitempty"`
}

// Image returns the image URL attached to the secret, or "" if none
func (s Secret) Image() string {
	return metaImage(s.Meta)
}

func metaImage(meta map[string]any) string {
	if img, ok := meta["image"].(string); ok {
		return img
	}
	return ""
}

// RoundState is the single game state owned by the controller.
// Transitions never mutate a RoundState in place: each one returns a fresh
// value that shares no slices with the previous one.
type RoundState struct {
	Phase           Phase          `json:"phase"`
	RoundNumber     int            `json:"roundNumber"`
	Category        string         `json:"category"`
	SecretWord      string         `json:"secretWord"`
	SecretMeta      map[string]any `json:"secretMeta,omitempty"`
	Players         []Player       `json:"players"`
	LiarIDs         []string       `json:"liarIds"`
	CurrentIndex    int            `json:"currentIndex"`
	HasRevealedOnce bool           `json:"hasRevealedOnce"`

	// Players voted out so far, in elimination order, with their roles
	Eliminated []Player `json:"eliminated,omitempty"`

	// Outcome of the last vote
	EliminatedID string `json:"eliminatedId,omitempty"`
	LiarFound    bool   `json:"liarFound"`
	Tied         bool   `json:"tied"`
}

// clone returns a deep copy of the mutable parts of the state.
// SecretMeta is never written after Start, so it is shared.
func (s RoundState) clone() RoundState {
	next := s
	next.Players = make([]Player, len(s.Players))
	copy(next.Players, s.Players)
	next.LiarIDs = make([]string, len(s.LiarIDs))
	copy(next.LiarIDs, s.LiarIDs)
	next.Eliminated = make([]Player, len(s.Eliminated))
	copy(next.Eliminated, s.Eliminated)
	return next
}

// Secret returns the secret word with its metadata
func (s RoundState) Secret() Secret {
	return Secret{Text: s.SecretWord, Meta: maps.Clone(s.SecretMeta)}
}

// SecretImage returns the image URL of the secret, if any
func (s RoundState) SecretImage() string {
	return metaImage(s.SecretMeta)
}

// PlayerCount returns the number of active players
func (s RoundState) PlayerCount() int {
	return len(s.Players)
}

// LiarCount returns the number of liars still in the game
func (s RoundState) LiarCount() int {
	return len(s.LiarIDs)
}

// NormalCount returns the number of normals still in the game
func (s RoundState) NormalCount() int {
	return len(s.Players) - len(s.LiarIDs)
}

// IsLiar checks if the given player currently holds the liar role
func (s RoundState) IsLiar(playerID string) bool {
	for _, id := range s.LiarIDs {
		if id == playerID {
			return true
		}
	}
	return false
}

// GetPlayer returns a player by ID
func (s RoundState) GetPlayer(playerID string) (Player, error) {
	if i := s.indexOf(playerID); i >= 0 {
		return s.Players[i], nil
	}
	return Player{}, ErrPlayerNotFound
}

// CurrentPlayer returns the player addressed by CurrentIndex
func (s RoundState) CurrentPlayer() (Player, bool) {
	if s.CurrentIndex < 0 || s.CurrentIndex >= len(s.Players) {
		return Player{}, false
	}
	return s.Players[s.CurrentIndex], true
}

// VotedCount returns the number of players with a ballot recorded
func (s RoundState) VotedCount() int {
	count := 0
	for _, p := range s.Players {
		if p.HasVoted() {
			count++
		}
	}
	return count
}

// RemainingLiars returns how many liars are left once the last vote's
// elimination is applied
func (s RoundState) RemainingLiars() int {
	if !s.Tied && s.EliminatedID != "" && s.IsLiar(s.EliminatedID) {
		return len(s.LiarIDs) - 1
	}
	return len(s.LiarIDs)
}

// CanFinish reports whether the outcome caught the last liar, in which
// case the game is ended with ForceGameOver instead of a new round
func (s RoundState) CanFinish() bool {
	return s.Phase == PhaseOutcome && !s.Tied && s.LiarFound && s.RemainingLiars() == 0
}

// UpcomingRound returns the number of the round the ready screen announces
func (s RoundState) UpcomingRound() int {
	return s.RoundNumber + 1
}

// Winner returns the winning side once the game is over
func (s RoundState) Winner() Role {
	if s.Phase != PhaseGameOver {
		return ""
	}
	if s.LiarFound {
		return RoleNormal
	}
	return RoleLiar
}

// AllLiars returns every liar of the game, caught ones first
func (s RoundState) AllLiars() []Player {
	liars := make([]Player, 0, len(s.LiarIDs)+len(s.Eliminated))
	for _, p := range s.Eliminated {
		if p.Role.IsLiar() {
			liars = append(liars, p)
		}
	}
	for _, id := range s.LiarIDs {
		if p, err := s.GetPlayer(id); err == nil {
			liars = append(liars, p)
		}
	}
	return liars
}

// liarsWinByHeadcount checks if liars are at least as many as normals
func (s RoundState) liarsWinByHeadcount() bool {
	return s.LiarCount() >= s.NormalCount()
}

func (s RoundState) indexOf(playerID string) int {
	for i, p := range s.Players {
		if p.ID == playerID {
			return i
		}
	}
	return -1
}

// rebuildRoles reassigns every role from LiarIDs and clears all ballots
func (s *RoundState) rebuildRoles() {
	for i := range s.Players {
		if s.IsLiar(s.Players[i].ID) {
			s.Players[i].Role = RoleLiar
		} else {
			s.Players[i].Role = RoleNormal
		}
		s.Players[i].VoteTarget = ""
	}
}

func (s *RoundState) clearVotes() {
	for i := range s.Players {
		s.Players[i].VoteTarget = ""
	}
}

package domain

import (
	"maps"
	"strings"
)

// MinPlayers is the smallest table a game can start with
const MinPlayers = 3

// Shuffler randomizes the order of n elements. *math/rand.Rand satisfies it.
type Shuffler interface {
	Shuffle(n int, swap func(i, j int))
}

// MaxLiars returns the largest liar count allowed for n players
func MaxLiars(n int) int {
	return (n - 1) / 2
}

// ClampLiars clamps a requested liar count into [1, MaxLiars(n)]
func ClampLiars(requested, n int) int {
	return max(1, min(requested, MaxLiars(n)))
}

// ValidateLineup checks the players and category a game is started with.
// It runs before the secret is fetched so bad input never costs a request.
func ValidateLineup(players []Player, category string) error {
	if strings.TrimSpace(category) == "" {
		return ErrEmptyCategory
	}

	if len(players) < MinPlayers {
		return ErrNotEnoughPlayers
	}

	seen := make(map[string]bool, len(players))
	for _, p := range players {
		if strings.TrimSpace(p.Name) == "" {
			return ErrEmptyPlayerName
		}
		if p.ID == "" || seen[p.ID] {
			return ErrDuplicatePlayer
		}
		seen[p.ID] = true
	}

	return nil
}

// NewRoundState starts a game: it picks the liars uniformly at random and
// returns the first state, in the reveal phase.
func NewRoundState(players []Player, category string, secret Secret, requestedLiars int, shuffler Shuffler) (RoundState, error) {
	if err := ValidateLineup(players, category); err != nil {
		return RoundState{}, err
	}

	if strings.TrimSpace(secret.Text) == "" {
		return RoundState{}, ErrEmptySecret
	}

	liarsCount := ClampLiars(requestedLiars, len(players))

	order := make([]int, len(players))
	for i := range order {
		order[i] = i
	}
	shuffler.Shuffle(len(order), func(i, j int) {
		order[i], order[j] = order[j], order[i]
	})

	isLiar := make(map[int]bool, liarsCount)
	for _, idx := range order[:liarsCount] {
		isLiar[idx] = true
	}

	state := RoundState{
		Phase:           PhaseReveal,
		RoundNumber:     1,
		Category:        category,
		SecretWord:      secret.Text,
		SecretMeta:      maps.Clone(secret.Meta),
		Players:         make([]Player, 0, len(players)),
		LiarIDs:         make([]string, 0, liarsCount),
		CurrentIndex:    0,
		HasRevealedOnce: false,
	}
	if state.SecretMeta == nil {
		state.SecretMeta = map[string]any{}
	}

	// Liar ids keep the seating order of the lineup
	for i, p := range players {
		role := RoleNormal
		if isLiar[i] {
			role = RoleLiar
			state.LiarIDs = append(state.LiarIDs, p.ID)
		}
		state.Players = append(state.Players, Player{
			ID:   p.ID,
			Name: strings.TrimSpace(p.Name),
			Role: role,
		})
	}

	return state, nil
}

// AdvanceReveal hands the device to the next player. After the last
// player it either starts the first vote or, if liars already match the
// normals, ends the game in the liars' favour.
func (s RoundState) AdvanceReveal() (RoundState, error) {
	if s.Phase != PhaseReveal {
		return s, ErrInvalidTransition
	}

	next := s.clone()
	next.CurrentIndex++

	if next.CurrentIndex < len(next.Players) {
		return next, nil
	}

	if next.liarsWinByHeadcount() {
		next.Phase = PhaseGameOver
		next.LiarFound = false
		return next, nil
	}

	next.Phase = PhaseVote
	next.CurrentIndex = 0
	next.HasRevealedOnce = true
	next.clearVotes()

	return next, nil
}

// SubmitVote records a ballot. Ballots are keyed by voter, so players may
// vote out of seating order; CurrentIndex follows the number of ballots
// cast. Once everyone has voted the ballots are tallied and the game moves
// to the outcome phase.
func (s RoundState) SubmitVote(voterID, targetID string) (RoundState, error) {
	if s.Phase != PhaseVote {
		return s, ErrInvalidTransition
	}

	if voterID == targetID {
		return s, ErrCannotVoteSelf
	}

	voterIdx := s.indexOf(voterID)
	if voterIdx < 0 || s.indexOf(targetID) < 0 {
		return s, ErrPlayerNotFound
	}

	next := s.clone()
	next.Players[voterIdx].VoteTarget = targetID

	voted := next.VotedCount()
	if voted < len(next.Players) {
		next.CurrentIndex = voted
		return next, nil
	}

	tally := TallyVotes(next.Players)

	next.Phase = PhaseOutcome
	next.CurrentIndex = 0
	next.Tied = tally.Tied
	next.EliminatedID = tally.EliminatedID
	next.LiarFound = tally.EliminatedID != "" && next.IsLiar(tally.EliminatedID)

	return next, nil
}

// ContinueSameSecret applies the last vote and prepares another round with
// the same secret and the surviving liars. The game ends when no liar is
// left or when liars reach the number of normals.
func (s RoundState) ContinueSameSecret() (RoundState, error) {
	if s.Phase != PhaseOutcome {
		return s, ErrInvalidTransition
	}

	next := s.clone()

	eliminatedID := ""
	if !s.Tied {
		eliminatedID = s.EliminatedID
	}

	if eliminatedID != "" {
		if p, err := s.GetPlayer(eliminatedID); err == nil {
			p.VoteTarget = ""
			next.Eliminated = append(next.Eliminated, p)
		}
		if s.IsLiar(eliminatedID) {
			next.LiarIDs = removeID(next.LiarIDs, eliminatedID)
		}
		next.Players = removePlayer(next.Players, eliminatedID)
	}

	next.rebuildRoles()
	next.CurrentIndex = 0

	if len(next.LiarIDs) == 0 {
		next.Phase = PhaseGameOver
		next.LiarFound = true
		return next, nil
	}

	if next.liarsWinByHeadcount() {
		next.Phase = PhaseGameOver
		next.LiarFound = false
		return next, nil
	}

	next.Phase = PhaseReady
	next.HasRevealedOnce = true
	next.Tied = false
	next.EliminatedID = ""
	next.LiarFound = false

	return next, nil
}

// BeginVoteAfterReady starts the next voting round without replaying the
// reveal: surviving players keep their roles.
func (s RoundState) BeginVoteAfterReady() (RoundState, error) {
	if s.Phase != PhaseReady {
		return s, ErrInvalidTransition
	}

	next := s.clone()

	if next.liarsWinByHeadcount() {
		next.Phase = PhaseGameOver
		next.LiarFound = false
		return next, nil
	}

	next.Phase = PhaseVote
	next.RoundNumber++
	next.CurrentIndex = 0
	next.clearVotes()

	return next, nil
}

// ForceGameOver ends the game in any phase, keeping LiarFound as is
func (s RoundState) ForceGameOver() RoundState {
	next := s.clone()
	next.Phase = PhaseGameOver
	return next
}

func removeID(ids []string, id string) []string {
	out := make([]string, 0, len(ids))
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}

func removePlayer(players []Player, id string) []Player {
	out := make([]Player, 0, len(players))
	for _, p := range players {
		if p.ID != id {
			out = append(out, p)
		}
	}
	return out
}

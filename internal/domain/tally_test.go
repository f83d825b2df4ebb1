package domain

import (
	"fmt"
	"testing"
)

func ballots(votes map[string]string, ids ...string) []Player {
	players := make([]Player, 0, len(ids))
	for _, id := range ids {
		players = append(players, Player{ID: id, Name: "Name " + id, VoteTarget: votes[id]})
	}
	return players
}

func TestTallyVotes(t *testing.T) {
	tests := []struct {
		name       string
		players    []Player
		wantTied   bool
		wantElim   string
		wantMax    int
		wantTopIDs []string
	}{
		{
			name:       "two-way tie",
			players:    ballots(map[string]string{"v1": "A", "v2": "A", "v3": "B", "A": "B", "B": "C"}, "A", "B", "C", "v1", "v2", "v3"),
			wantTied:   true,
			wantMax:    2,
			wantTopIDs: []string{"A", "B"},
		},
		{
			name:       "clear majority",
			players:    ballots(map[string]string{"v1": "A", "v2": "A", "B": "A", "A": "B", "C": "C"}, "A", "B", "C", "v1", "v2"),
			wantElim:   "A",
			wantMax:    3,
			wantTopIDs: []string{"A"},
		},
		{
			name:     "no ballots",
			players:  ballots(nil, "A", "B", "C"),
			wantTied: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tally := TallyVotes(tt.players)
			if tally.Tied != tt.wantTied {
				t.Errorf("Tied = %v, want %v", tally.Tied, tt.wantTied)
			}
			if tally.EliminatedID != tt.wantElim {
				t.Errorf("EliminatedID = %q, want %q", tally.EliminatedID, tt.wantElim)
			}
			if tally.MaxVotes != tt.wantMax {
				t.Errorf("MaxVotes = %d, want %d", tally.MaxVotes, tt.wantMax)
			}
			if fmt.Sprint(tally.TopIDs) != fmt.Sprint(tt.wantTopIDs) {
				t.Errorf("TopIDs = %v, want %v", tally.TopIDs, tt.wantTopIDs)
			}
		})
	}
}

func TestVoteResults(t *testing.T) {
	state := RoundState{
		Phase:   PhaseOutcome,
		Players: ballots(map[string]string{"a": "b", "b": "a", "c": "a"}, "a", "b", "c"),
	}

	results := state.VoteResults()
	if len(results) != 3 {
		t.Fatalf("len(results) = %d, want 3", len(results))
	}

	a := results[0]
	if a.PlayerID != "a" || a.VoteCount != 2 {
		t.Errorf("results[0] = %+v, want a with 2 votes", a)
	}
	if fmt.Sprint(a.VotedBy) != "[Name b Name c]" {
		t.Errorf("VotedBy = %v, want [Name b Name c]", a.VotedBy)
	}
	if a.VotedFor != "Name b" {
		t.Errorf("VotedFor = %q, want %q", a.VotedFor, "Name b")
	}
	if results[2].VoteCount != 0 || results[2].VotedBy == nil {
		t.Errorf("results[2] = %+v, want zero votes and empty voter list", results[2])
	}
}

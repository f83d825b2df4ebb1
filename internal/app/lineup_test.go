package app

import (
	"errors"
	"strings"
	"testing"

	"mentiroso/internal/domain"
	"mentiroso/internal/provider"
)

func TestStartRequestLineup(t *testing.T) {
	req := StartRequest{
		Players: []PlayerEntry{
			{ID: "ana", Name: "Ana"},
			{Name: "José María"},
			{Name: "ana"},
			{ID: "ana", Name: "Otra Ana"},
		},
	}

	players, err := req.Lineup()
	if err != nil {
		t.Fatalf("Lineup() error = %v", err)
	}
	if len(players) != 2 {
		t.Fatalf("len(players) = %d, want 2 after dropping repeats", len(players))
	}
	if !strings.HasPrefix(players[1].ID, "jose-maria-") {
		t.Errorf("generated ID = %q, want jose-maria- prefix", players[1].ID)
	}
}

func TestStartRequestLineupEmptyName(t *testing.T) {
	req := StartRequest{Players: []PlayerEntry{{Name: "Ana"}, {Name: "  "}}}

	if _, err := req.Lineup(); !errors.Is(err, domain.ErrEmptyPlayerName) {
		t.Errorf("Lineup() error = %v, want ErrEmptyPlayerName", err)
	}
}

func TestDescribeError(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{domain.ErrNotEnoughPlayers, ErrCodeInvalidPlayers},
		{domain.ErrUnknownCategory, ErrCodeUnknownCategory},
		{&provider.ProviderError{Op: "fetch secret", Category: "series", Err: domain.ErrUnknownCategory}, ErrCodeUnknownCategory},
		{&provider.ProviderError{Op: "fetch secret", Err: errors.New("timeout")}, ErrCodeProviderError},
		{domain.ErrStartInProgress, ErrCodeStartInProgress},
		{errors.New("boom"), ErrCodeInternalError},
	}

	for _, tt := range tests {
		got := DescribeError(tt.err)
		if got.Code != tt.want {
			t.Errorf("DescribeError(%v).Code = %q, want %q", tt.err, got.Code, tt.want)
		}
		if got.Message == "" {
			t.Errorf("DescribeError(%v) has no message", tt.err)
		}
	}
}

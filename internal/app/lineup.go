package app

import (
	"strings"

	"mentiroso/internal/domain"
)

// PlayerEntry is a player as the lobby submits it. ID is optional for
// players typed in by hand.
type PlayerEntry struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name"`
}

// StartRequest carries everything Start needs
type StartRequest struct {
	Players  []PlayerEntry `json:"players"`
	Category string        `json:"category"`
	Liars    int           `json:"liars"`
}

// Lineup turns the submitted entries into players. Repeated names or IDs
// are dropped the way the lobby does.
func (r StartRequest) Lineup() ([]domain.Player, error) {
	roster := domain.NewRoster()
	for _, entry := range r.Players {
		if strings.TrimSpace(entry.Name) == "" {
			return nil, domain.ErrEmptyPlayerName
		}
		roster.Add(domain.Player{ID: strings.TrimSpace(entry.ID), Name: entry.Name})
	}
	return roster.Players(), nil
}

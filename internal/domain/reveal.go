package domain

import "strings"

// RevealCard is what the current player sees when the device is handed over
type RevealCard struct {
	PlayerID      string `json:"playerId"`
	PlayerName    string `json:"playerName"`
	Position      int    `json:"position"` // 1-based
	Total         int    `json:"total"`
	Role          Role   `json:"role"`
	CategoryLabel string `json:"categoryLabel"`
	SecretWord    string `json:"secretWord,omitempty"` // Only for normals
	Image         string `json:"image,omitempty"`      // Only for normals
}

// RevealCard returns the card for the player at CurrentIndex
func (s RoundState) RevealCard() (RevealCard, bool) {
	if s.Phase != PhaseReveal {
		return RevealCard{}, false
	}

	player, ok := s.CurrentPlayer()
	if !ok {
		return RevealCard{}, false
	}

	card := RevealCard{
		PlayerID:      player.ID,
		PlayerName:    player.Name,
		Position:      s.CurrentIndex + 1,
		Total:         len(s.Players),
		Role:          RoleNormal,
		CategoryLabel: CategoryLabel(s.Category),
	}

	if s.IsLiar(player.ID) {
		card.Role = RoleLiar
		return card, true
	}

	card.SecretWord = s.SecretWord
	card.Image = s.SecretImage()

	return card, true
}

// CategoryLabel returns the singular form of a category name
func CategoryLabel(category string) string {
	lower := strings.ToLower(category)
	switch lower {
	case "peliculas":
		return "película"
	case "famosos":
		return "famoso"
	}
	return strings.TrimSuffix(lower, "s")
}

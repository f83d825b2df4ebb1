package domain

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/google/uuid"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var nonSlugChars = regexp.MustCompile(`[^a-z0-9]+`)

// Roster is the lineup picked in the lobby before a game starts
type Roster struct {
	players []Player
}

// NewRoster creates an empty roster
func NewRoster() *Roster {
	return &Roster{players: make([]Player, 0)}
}

// Add adds a player. Players without an ID get one derived from their
// name. Duplicate IDs and names (ignoring case) are skipped.
func (r *Roster) Add(p Player) (Player, bool) {
	p.Name = strings.TrimSpace(p.Name)
	if p.Name == "" {
		return Player{}, false
	}

	for _, existing := range r.players {
		if existing.ID == p.ID || strings.EqualFold(existing.Name, p.Name) {
			return existing, false
		}
	}

	if p.ID == "" {
		p.ID = MakePlayerID(p.Name)
	}

	r.players = append(r.players, Player{ID: p.ID, Name: p.Name})
	return r.players[len(r.players)-1], true
}

// Remove removes a player by ID
func (r *Roster) Remove(playerID string) bool {
	before := len(r.players)
	r.players = removePlayer(r.players, playerID)
	return len(r.players) != before
}

// Toggle adds the player if absent and removes it otherwise
func (r *Roster) Toggle(p Player) bool {
	if p.ID != "" && r.Remove(p.ID) {
		return false
	}
	_, added := r.Add(p)
	return added
}

// Players returns a copy of the lineup in selection order
func (r *Roster) Players() []Player {
	out := make([]Player, len(r.players))
	copy(out, r.players)
	return out
}

// Len returns the number of selected players
func (r *Roster) Len() int {
	return len(r.players)
}

// CanStart checks if the lineup is large enough to play
func (r *Roster) CanStart() bool {
	return len(r.players) >= MinPlayers
}

// MaxLiars returns the liar count the lobby should offer at most
func (r *Roster) MaxLiars() int {
	return max(1, MaxLiars(len(r.players)))
}

// MakePlayerID builds a readable unique ID from a player name
func MakePlayerID(name string) string {
	slug := strings.Trim(nonSlugChars.ReplaceAllString(foldName(name), "-"), "-")
	if slug == "" {
		slug = "p"
	}
	return slug + "-" + uuid.NewString()[:4]
}

// foldName lower-cases a name and strips its diacritics
func foldName(name string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, name)
	if err != nil {
		folded = name
	}
	return strings.ToLower(folded)
}

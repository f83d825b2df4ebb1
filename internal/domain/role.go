package domain

// Role represents a player's role in a game
type Role string

const (
	RoleLiar   Role = "LIAR"
	RoleNormal Role = "NORMAL"
)

// String returns the string representation of the role
func (r Role) String() string {
	return string(r)
}

// IsLiar returns true if this role is a liar
func (r Role) IsLiar() bool {
	return r == RoleLiar
}

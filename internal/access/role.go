package access

import "strings"

// Role determines visibility and mutation rights across the whole API.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleHR     Role = "hr"
	RoleTeam   Role = "team"
	RoleClient Role = "client"
)

var allRoles = []Role{RoleAdmin, RoleHR, RoleTeam, RoleClient}

// ParseRole normalizes and validates a stored role value. The zero Role is
// returned for anything unrecognized; callers must treat that as deny-all.
func ParseRole(s string) (Role, bool) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range allRoles {
		if r == known {
			return r, true
		}
	}
	return "", false
}

func (r Role) Valid() bool {
	_, ok := ParseRole(string(r))
	return ok
}

// IsStaff reports whether the role has back-office visibility (no row
// filtering on listings).
func (r Role) IsStaff() bool {
	return r == RoleAdmin || r == RoleHR
}

func (r Role) String() string {
	return string(r)
}

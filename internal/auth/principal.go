package auth

// Role is the closed set of caller roles. There is no third variant: a
// principal is either a regular user or the administrator.
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// Principal is the authenticated caller attached to a request. For the
// administrator UserID is zero; the admin principal is not a stored user.
type Principal struct {
	UserID   int64
	Username string
	Role     Role
}

func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}

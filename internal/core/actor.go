// AngelaMos | 2026
// actor.go

package core

const (
	RoleAdmin  = "admin"
	RoleAgent  = "agent"
	RoleClient = "client"
)

func IsValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleAgent, RoleClient:
		return true
	}
	return false
}

// Actor is the authenticated caller of a privileged operation. Services
// check it themselves instead of trusting route middleware alone.
type Actor struct {
	UserID string
	Role   string
}

func (a Actor) IsAdmin() bool {
	return a.UserID != "" && a.Role == RoleAdmin
}

func (a Actor) IsZero() bool {
	return a.UserID == ""
}

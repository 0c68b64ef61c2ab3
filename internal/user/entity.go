// AngelaMos | 2026
// entity.go

package user

import (
	"time"

	"github.com/aurafinsurance/insurance-backend/internal/core"
)

// User is a login identity joined with its single role assignment.
// Role is empty when no user_roles row exists.
type User struct {
	ID           string     `db:"id"`
	Email        string     `db:"email"`
	PasswordHash string     `db:"password_hash"`
	FullName     string     `db:"full_name"`
	Phone        *string    `db:"phone"`
	Role         *string    `db:"role"`
	TokenVersion int        `db:"token_version"`
	BannedAt     *time.Time `db:"banned_at"`
	CreatedAt    time.Time  `db:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at"`
}

func (u *User) IsBanned() bool {
	return u.BannedAt != nil
}

func (u *User) EffectiveRole() string {
	if u.Role == nil || *u.Role == "" {
		return core.RoleClient
	}
	return *u.Role
}

func (u *User) IsAdmin() bool {
	return u.EffectiveRole() == core.RoleAdmin
}

type Profile struct {
	ID        string    `db:"id"`
	UserID    string    `db:"user_id"`
	Email     string    `db:"email"`
	FullName  string    `db:"full_name"`
	Phone     *string   `db:"phone"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

type RoleAssignment struct {
	UserID string `db:"user_id"`
	Role   string `db:"role"`
}

// Account is a profile with its resolved role and ban state, as listed
// on the admin user roles screen.
type Account struct {
	Profile
	Role   string
	Banned bool
}

const (
	RoleAdmin  = core.RoleAdmin
	RoleAgent  = core.RoleAgent
	RoleClient = core.RoleClient
)

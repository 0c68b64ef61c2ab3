// AngelaMos | 2026
// entity.go

package auth

import (
	"time"
)

// RefreshToken is one link of a rotation family. Login starts a family
// and every refresh consumes the presented token and issues its
// successor under the same family id.
type RefreshToken struct {
	ID           string     `db:"id"`
	UserID       string     `db:"user_id"`
	TokenHash    string     `db:"token_hash"`
	FamilyID     string     `db:"family_id"`
	ExpiresAt    time.Time  `db:"expires_at"`
	CreatedAt    time.Time  `db:"created_at"`
	IsUsed       bool       `db:"is_used"`
	UsedAt       *time.Time `db:"used_at"`
	RevokedAt    *time.Time `db:"revoked_at"`
	ReplacedByID *string    `db:"replaced_by_id"`
	UserAgent    string     `db:"user_agent"`
	IPAddress    string     `db:"ip_address"`
}

func (t *RefreshToken) IsRevoked() bool {
	return t.RevokedAt != nil
}

// ActiveAt reports whether the token can still be exchanged at now.
func (t *RefreshToken) ActiveAt(now time.Time) bool {
	return t.RevokedAt == nil && !t.IsUsed && now.Before(t.ExpiresAt)
}

func (t *RefreshToken) Session() SessionInfo {
	return SessionInfo{
		ID:        t.ID,
		UserAgent: t.UserAgent,
		IPAddress: t.IPAddress,
		CreatedAt: t.CreatedAt,
		ExpiresAt: t.ExpiresAt,
	}
}

// RevokeScope selects which tokens a revocation touches.
type RevokeScope int

const (
	RevokeToken RevokeScope = iota
	RevokeFamily
	RevokeUser
)

func (s RevokeScope) column() string {
	switch s {
	case RevokeFamily:
		return "family_id"
	case RevokeUser:
		return "user_id"
	default:
		return "id"
	}
}

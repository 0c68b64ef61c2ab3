// AngelaMos | 2026
// entity.go

package quote

import (
	"time"
)

const (
	StatusPending   = "pending"
	StatusResponded = "responded"
)

type Quote struct {
	ID              string     `db:"id"`
	ServiceProvider string     `db:"service_provider"`
	InsuranceType   string     `db:"insurance_type"`
	PolicyID        *string    `db:"policy_id"`
	FullName        string     `db:"full_name"`
	Email           string     `db:"email"`
	Phone           string     `db:"phone"`
	Age             *int       `db:"age"`
	CoverageAmount  *string    `db:"coverage_amount"`
	Message         *string    `db:"message"`
	Status          string     `db:"status"`
	RespondedAt     *time.Time `db:"responded_at"`
	RespondedBy     *string    `db:"responded_by"`
	CreatedAt       time.Time  `db:"created_at"`
	UpdatedAt       time.Time  `db:"updated_at"`
}

// AngelaMos | 2026
// entity.go

package policy

import (
	"time"
)

type Policy struct {
	ID              string    `db:"id"`
	Name            string    `db:"name"`
	PolicyType      string    `db:"policy_type"`
	Provider        *string   `db:"provider"`
	PremiumRange    *string   `db:"premium_range"`
	Description     *string   `db:"description"`
	CoverageDetails *string   `db:"coverage_details"`
	FileURL         *string   `db:"file_url"`
	IsActive        bool      `db:"is_active"`
	CreatedBy       *string   `db:"created_by"`
	CreatedAt       time.Time `db:"created_at"`
	UpdatedAt       time.Time `db:"updated_at"`
}

func (p Policy) ProviderName() string {
	if p.Provider == nil {
		return ""
	}
	return *p.Provider
}

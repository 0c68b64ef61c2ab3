// AngelaMos | 2026
// analytics.go

package admin

import (
	"context"
	"fmt"

	"github.com/aurafinsurance/insurance-backend/internal/core"
)

type Analytics struct {
	AgentApplications     int `db:"agent_applications"      json:"agent_applications"`
	PendingApplications   int `db:"pending_applications"    json:"pending_applications"`
	InsurancePolicies     int `db:"insurance_policies"      json:"insurance_policies"`
	ActivePolicies        int `db:"active_policies"         json:"active_policies"`
	QuoteRequests         int `db:"quote_requests"          json:"quote_requests"`
	PendingQuoteRequests  int `db:"pending_quote_requests"  json:"pending_quote_requests"`
	ContactMessages       int `db:"contact_messages"        json:"contact_messages"`
	UnreadContactMessages int `db:"unread_contact_messages" json:"unread_contact_messages"`
	Users                 int `db:"users"                   json:"users"`
	DeactivatedUsers      int `db:"deactivated_users"       json:"deactivated_users"`
}

type AnalyticsRepository interface {
	Counts(ctx context.Context) (*Analytics, error)
}

type analyticsRepository struct {
	db core.DBTX
}

func NewAnalyticsRepository(db core.DBTX) AnalyticsRepository {
	return &analyticsRepository{db: db}
}

// Counts gathers every dashboard counter in a single round trip.
func (r *analyticsRepository) Counts(ctx context.Context) (*Analytics, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM agent_applications) AS agent_applications,
			(SELECT COUNT(*) FROM agent_applications WHERE status = 'pending') AS pending_applications,
			(SELECT COUNT(*) FROM insurance_policies) AS insurance_policies,
			(SELECT COUNT(*) FROM insurance_policies WHERE is_active) AS active_policies,
			(SELECT COUNT(*) FROM quote_requests) AS quote_requests,
			(SELECT COUNT(*) FROM quote_requests WHERE status = 'pending') AS pending_quote_requests,
			(SELECT COUNT(*) FROM contact_messages) AS contact_messages,
			(SELECT COUNT(*) FROM contact_messages WHERE status = 'pending') AS unread_contact_messages,
			(SELECT COUNT(*) FROM users) AS users,
			(SELECT COUNT(*) FROM users WHERE banned_at IS NOT NULL) AS deactivated_users`

	var a Analytics
	if err := r.db.GetContext(ctx, &a, query); err != nil {
		return nil, fmt.Errorf("load analytics: %w", err)
	}

	return &a, nil
}

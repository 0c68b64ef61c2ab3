// AngelaMos | 2026
// repository.go

package commission

import (
	"context"
	"fmt"

	"github.com/aurafinsurance/insurance-backend/internal/core"
)

type Repository interface {
	ListAll(ctx context.Context) ([]Commission, error)
	ListForAgent(ctx context.Context, agentUserID string) ([]Commission, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

const selectCommission = `
	SELECT c.id, c.agent_user_id, c.customer_name,
	       ROUND(c.commission_amount * 100)::BIGINT AS amount_cents,
	       ROUND(c.commission_percentage * 100)::BIGINT AS percentage_bp,
	       c.policy_id, p.name AS policy_name, c.status, c.paid_at, c.created_at
	FROM agent_commissions c
	LEFT JOIN insurance_policies p ON p.id = c.policy_id`

func (r *repository) ListAll(ctx context.Context) ([]Commission, error) {
	var cs []Commission
	query := selectCommission + ` ORDER BY c.created_at DESC`
	if err := r.db.SelectContext(ctx, &cs, query); err != nil {
		return nil, fmt.Errorf("list commissions: %w", err)
	}
	return cs, nil
}

func (r *repository) ListForAgent(ctx context.Context, agentUserID string) ([]Commission, error) {
	var cs []Commission
	query := selectCommission + ` WHERE c.agent_user_id = $1 ORDER BY c.created_at DESC`
	if err := r.db.SelectContext(ctx, &cs, query, agentUserID); err != nil {
		return nil, fmt.Errorf("list agent commissions: %w", err)
	}
	return cs, nil
}

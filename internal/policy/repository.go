// AngelaMos | 2026
// repository.go

package policy

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/aurafinsurance/insurance-backend/internal/audit"
	"github.com/aurafinsurance/insurance-backend/internal/core"
)

type Repository interface {
	Create(ctx context.Context, p *Policy) error
	GetByID(ctx context.Context, id string) (*Policy, error)
	ListAll(ctx context.Context) ([]Policy, error)
	ListActive(ctx context.Context) ([]Policy, error)
	SetActive(ctx context.Context, id string, active bool, actorID string) (*Policy, error)
}

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

const policyColumns = `
	id, name, policy_type, provider, premium_range, description,
	coverage_details, file_url, is_active, created_by, created_at, updated_at`

func (r *repository) Create(ctx context.Context, p *Policy) error {
	err := core.InTx(ctx, r.db, func(tx *sqlx.Tx) error {
		query := `
			INSERT INTO insurance_policies (
				id, name, policy_type, provider, premium_range, description,
				coverage_details, file_url, is_active, created_by
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			RETURNING created_at, updated_at`

		row := tx.QueryRowxContext(ctx, query,
			p.ID,
			p.Name,
			p.PolicyType,
			p.Provider,
			p.PremiumRange,
			p.Description,
			p.CoverageDetails,
			p.FileURL,
			p.IsActive,
			p.CreatedBy,
		)
		if err := row.Scan(&p.CreatedAt, &p.UpdatedAt); err != nil {
			return err
		}

		var actorID string
		if p.CreatedBy != nil {
			actorID = *p.CreatedBy
		}

		return audit.Record(ctx, tx, actorID,
			audit.ActionPolicyCreated, audit.TargetPolicy, p.ID,
			map[string]any{"name": p.Name, "policy_type": p.PolicyType},
		)
	})
	if err != nil {
		return fmt.Errorf("create policy: %w", err)
	}

	return nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*Policy, error) {
	query := `SELECT ` + policyColumns + ` FROM insurance_policies WHERE id = $1`

	var p Policy
	err := r.db.GetContext(ctx, &p, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get policy: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get policy: %w", err)
	}

	return &p, nil
}

func (r *repository) ListAll(ctx context.Context) ([]Policy, error) {
	query := `SELECT ` + policyColumns + `
		FROM insurance_policies
		ORDER BY created_at DESC`

	var policies []Policy
	if err := r.db.SelectContext(ctx, &policies, query); err != nil {
		return nil, fmt.Errorf("list policies: %w", err)
	}

	return policies, nil
}

func (r *repository) ListActive(ctx context.Context) ([]Policy, error) {
	query := `SELECT ` + policyColumns + `
		FROM insurance_policies
		WHERE is_active = TRUE
		ORDER BY created_at DESC`

	var policies []Policy
	if err := r.db.SelectContext(ctx, &policies, query); err != nil {
		return nil, fmt.Errorf("list active policies: %w", err)
	}

	return policies, nil
}

func (r *repository) SetActive(
	ctx context.Context,
	id string,
	active bool,
	actorID string,
) (*Policy, error) {
	var p Policy

	err := core.InTx(ctx, r.db, func(tx *sqlx.Tx) error {
		query := `
			UPDATE insurance_policies
			SET is_active = $2, updated_at = NOW()
			WHERE id = $1
			RETURNING ` + policyColumns

		if err := tx.GetContext(ctx, &p, query, id, active); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return core.ErrNotFound
			}
			return err
		}

		return audit.Record(ctx, tx, actorID,
			audit.ActionPolicyStatusChanged, audit.TargetPolicy, id,
			map[string]any{"is_active": active},
		)
	})
	if err != nil {
		return nil, fmt.Errorf("set policy active: %w", err)
	}

	return &p, nil
}

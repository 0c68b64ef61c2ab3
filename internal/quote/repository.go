// AngelaMos | 2026
// repository.go

package quote

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
	Create(ctx context.Context, q *Quote) error
	GetByID(ctx context.Context, id string) (*Quote, error)
	List(ctx context.Context) ([]Quote, error)
	Respond(ctx context.Context, id, actorID string) (*Quote, error)
}

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

const quoteColumns = `
	id, service_provider, insurance_type, policy_id, full_name, email, phone,
	age, coverage_amount, message, status, responded_at, responded_by,
	created_at, updated_at`

func (r *repository) Create(ctx context.Context, q *Quote) error {
	query := `
		INSERT INTO quote_requests (
			id, service_provider, insurance_type, policy_id, full_name,
			email, phone, age, coverage_amount, message
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING status, created_at, updated_at`

	row := r.db.QueryRowxContext(ctx, query,
		q.ID,
		q.ServiceProvider,
		q.InsuranceType,
		q.PolicyID,
		q.FullName,
		q.Email,
		q.Phone,
		q.Age,
		q.CoverageAmount,
		q.Message,
	)
	if err := row.Scan(&q.Status, &q.CreatedAt, &q.UpdatedAt); err != nil {
		if core.IsForeignKeyError(err) {
			return core.ValidationError("selected policy is not available")
		}
		return fmt.Errorf("create quote: %w", err)
	}

	return nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*Quote, error) {
	query := `SELECT ` + quoteColumns + ` FROM quote_requests WHERE id = $1`

	var q Quote
	err := r.db.GetContext(ctx, &q, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get quote: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get quote: %w", err)
	}

	return &q, nil
}

func (r *repository) List(ctx context.Context) ([]Quote, error) {
	query := `SELECT ` + quoteColumns + `
		FROM quote_requests
		ORDER BY created_at DESC`

	var quotes []Quote
	if err := r.db.SelectContext(ctx, &quotes, query); err != nil {
		return nil, fmt.Errorf("list quotes: %w", err)
	}

	return quotes, nil
}

// Respond marks the quote answered. A follow-up reply refreshes
// responded_at and responded_by.
func (r *repository) Respond(ctx context.Context, id, actorID string) (*Quote, error) {
	var q Quote

	err := core.InTx(ctx, r.db, func(tx *sqlx.Tx) error {
		query := `
			UPDATE quote_requests
			SET status = 'responded',
			    responded_at = NOW(),
			    responded_by = $2,
			    updated_at = NOW()
			WHERE id = $1
			RETURNING ` + quoteColumns

		if err := tx.GetContext(ctx, &q, query, id, actorID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return core.ErrNotFound
			}
			return err
		}

		return audit.Record(ctx, tx, actorID,
			audit.ActionQuoteResponded, audit.TargetQuote, id, nil,
		)
	})
	if err != nil {
		return nil, fmt.Errorf("respond to quote: %w", err)
	}

	return &q, nil
}

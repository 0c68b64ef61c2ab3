// AngelaMos | 2026
// repository.go

package agentapp

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
	Create(ctx context.Context, a *Application) error
	GetByID(ctx context.Context, id string) (*Application, error)
	List(ctx context.Context) ([]Application, error)
	Decide(ctx context.Context, id, status string, note *string, actorID string) (*Application, error)
	LinkAgentUser(ctx context.Context, id, userID string) error
	DocumentRefs(ctx context.Context) ([]string, error)
}

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

const applicationColumns = `
	id, full_name, email, phone, date_of_birth, address, city, state, pincode,
	experience_years, previous_company, license_number, pan_number, bank_name,
	account_number, ifsc_code, id_document_ref, status, approved_by,
	approved_at, decision_note, agent_user_id, created_at, updated_at`

func (r *repository) Create(ctx context.Context, a *Application) error {
	query := `
		INSERT INTO agent_applications (
			id, full_name, email, phone, date_of_birth, address, city, state,
			pincode, experience_years, previous_company, license_number,
			pan_number, bank_name, account_number, ifsc_code, id_document_ref
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15,
			$16, $17
		)
		RETURNING status, created_at, updated_at`

	row := r.db.QueryRowxContext(ctx, query,
		a.ID,
		a.FullName,
		a.Email,
		a.Phone,
		a.DateOfBirth,
		a.Address,
		a.City,
		a.State,
		a.Pincode,
		a.ExperienceYears,
		a.PreviousCompany,
		a.LicenseNumber,
		a.PANNumber,
		a.BankName,
		a.AccountNumber,
		a.IFSCCode,
		a.IDDocumentRef,
	)
	if err := row.Scan(&a.Status, &a.CreatedAt, &a.UpdatedAt); err != nil {
		return fmt.Errorf("create agent application: %w", err)
	}

	return nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*Application, error) {
	return getByID(ctx, r.db, id)
}

func getByID(ctx context.Context, db core.DBTX, id string) (*Application, error) {
	query := `SELECT ` + applicationColumns + ` FROM agent_applications WHERE id = $1`

	var a Application
	err := db.GetContext(ctx, &a, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get agent application: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get agent application: %w", err)
	}

	return &a, nil
}

func (r *repository) List(ctx context.Context) ([]Application, error) {
	query := `SELECT ` + applicationColumns + `
		FROM agent_applications
		ORDER BY created_at DESC`

	var apps []Application
	if err := r.db.SelectContext(ctx, &apps, query); err != nil {
		return nil, fmt.Errorf("list agent applications: %w", err)
	}

	return apps, nil
}

// Decide records the decision only while the application is pending, so
// concurrent reviewers cannot overwrite each other. A decided application
// yields ErrConflict.
func (r *repository) Decide(
	ctx context.Context,
	id, status string,
	note *string,
	actorID string,
) (*Application, error) {
	var a Application

	err := core.InTx(ctx, r.db, func(tx *sqlx.Tx) error {
		query := `
			UPDATE agent_applications
			SET status = $2,
			    approved_by = $3,
			    approved_at = NOW(),
			    decision_note = $4,
			    updated_at = NOW()
			WHERE id = $1 AND status = 'pending'
			RETURNING ` + applicationColumns

		err := tx.GetContext(ctx, &a, query, id, status, actorID, note)
		if errors.Is(err, sql.ErrNoRows) {
			if _, getErr := getByID(ctx, tx, id); getErr != nil {
				return getErr
			}
			return core.ErrConflict
		}
		if err != nil {
			return err
		}

		details := map[string]any{"status": status}
		if note != nil {
			details["note"] = *note
		}

		return audit.Record(ctx, tx, actorID,
			audit.ActionApplicationDecided, audit.TargetApplication, id, details,
		)
	})
	if err != nil {
		return nil, fmt.Errorf("decide agent application: %w", err)
	}

	return &a, nil
}

func (r *repository) LinkAgentUser(ctx context.Context, id, userID string) error {
	query := `
		UPDATE agent_applications
		SET agent_user_id = $2, updated_at = NOW()
		WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("link agent user: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("link agent user: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("link agent user: %w", core.ErrNotFound)
	}

	return nil
}

func (r *repository) DocumentRefs(ctx context.Context) ([]string, error) {
	query := `
		SELECT DISTINCT id_document_ref
		FROM agent_applications
		WHERE id_document_ref IS NOT NULL`

	var refs []string
	if err := r.db.SelectContext(ctx, &refs, query); err != nil {
		return nil, fmt.Errorf("list document refs: %w", err)
	}

	return refs, nil
}

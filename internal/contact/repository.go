// AngelaMos | 2026
// repository.go

package contact

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
	Create(ctx context.Context, m *Message) error
	GetByID(ctx context.Context, id string) (*Message, error)
	List(ctx context.Context) ([]Message, error)
	MarkRead(ctx context.Context, id, actorID string) (*Message, error)
	Respond(ctx context.Context, id, actorID string) (*Message, error)
}

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

const messageColumns = `
	id, name, email, phone, subject, message, status, read_at,
	responded_at, responded_by, created_at, updated_at`

func (r *repository) Create(ctx context.Context, m *Message) error {
	query := `
		INSERT INTO contact_messages (id, name, email, phone, subject, message)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING status, created_at, updated_at`

	row := r.db.QueryRowxContext(ctx, query,
		m.ID,
		m.Name,
		m.Email,
		m.Phone,
		m.Subject,
		m.Message,
	)
	if err := row.Scan(&m.Status, &m.CreatedAt, &m.UpdatedAt); err != nil {
		return fmt.Errorf("create contact message: %w", err)
	}

	return nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*Message, error) {
	return getByID(ctx, r.db, id)
}

func getByID(ctx context.Context, db core.DBTX, id string) (*Message, error) {
	query := `SELECT ` + messageColumns + ` FROM contact_messages WHERE id = $1`

	var m Message
	err := db.GetContext(ctx, &m, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get contact message: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get contact message: %w", err)
	}

	return &m, nil
}

func (r *repository) List(ctx context.Context) ([]Message, error) {
	query := `SELECT ` + messageColumns + `
		FROM contact_messages
		ORDER BY created_at DESC`

	var messages []Message
	if err := r.db.SelectContext(ctx, &messages, query); err != nil {
		return nil, fmt.Errorf("list contact messages: %w", err)
	}

	return messages, nil
}

// MarkRead moves a pending message to read. Messages already read or
// responded are returned unchanged.
func (r *repository) MarkRead(ctx context.Context, id, actorID string) (*Message, error) {
	var m *Message

	err := core.InTx(ctx, r.db, func(tx *sqlx.Tx) error {
		query := `
			UPDATE contact_messages
			SET status = 'read', read_at = NOW(), updated_at = NOW()
			WHERE id = $1 AND status = 'pending'
			RETURNING ` + messageColumns

		var updated Message
		err := tx.GetContext(ctx, &updated, query, id)
		if errors.Is(err, sql.ErrNoRows) {
			current, getErr := getByID(ctx, tx, id)
			if getErr != nil {
				return getErr
			}
			m = current
			return nil
		}
		if err != nil {
			return err
		}

		m = &updated
		return audit.Record(ctx, tx, actorID,
			audit.ActionContactRead, audit.TargetContact, id, nil,
		)
	})
	if err != nil {
		return nil, fmt.Errorf("mark contact message read: %w", err)
	}

	return m, nil
}

func (r *repository) Respond(ctx context.Context, id, actorID string) (*Message, error) {
	var m Message

	err := core.InTx(ctx, r.db, func(tx *sqlx.Tx) error {
		query := `
			UPDATE contact_messages
			SET status = 'responded',
			    read_at = COALESCE(read_at, NOW()),
			    responded_at = NOW(),
			    responded_by = $2,
			    updated_at = NOW()
			WHERE id = $1
			RETURNING ` + messageColumns

		if err := tx.GetContext(ctx, &m, query, id, actorID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return core.ErrNotFound
			}
			return err
		}

		return audit.Record(ctx, tx, actorID,
			audit.ActionContactResponded, audit.TargetContact, id, nil,
		)
	})
	if err != nil {
		return nil, fmt.Errorf("respond to contact message: %w", err)
	}

	return &m, nil
}

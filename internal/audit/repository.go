// AngelaMos | 2026
// repository.go

package audit

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/aurafinsurance/insurance-backend/internal/core"
)

const (
	defaultListLimit = 100
	maxListLimit     = 500
)

// Record inserts an audit row through db, which is usually the
// transaction that performed the audited write.
func Record(
	ctx context.Context,
	db core.DBTX,
	actorID, action, targetType, targetID string,
	details map[string]any,
) error {
	if details == nil {
		details = map[string]any{}
	}

	payload, err := json.Marshal(details)
	if err != nil {
		return fmt.Errorf("encode audit details: %w", err)
	}

	var actor *string
	if actorID != "" {
		actor = &actorID
	}

	query := `
		INSERT INTO audit_log (id, actor_id, action, target_type, target_id, details)
		VALUES ($1, $2, $3, $4, $5, $6)`

	if _, err := db.ExecContext(ctx, query,
		uuid.New().String(),
		actor,
		action,
		targetType,
		targetID,
		payload,
	); err != nil {
		return fmt.Errorf("record audit entry: %w", err)
	}

	return nil
}

type Repository interface {
	List(ctx context.Context, limit int) ([]Entry, error)
	ListForTarget(ctx context.Context, targetType, targetID string) ([]Entry, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) List(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}

	query := `
		SELECT id, actor_id, action, target_type, target_id, details, created_at
		FROM audit_log
		ORDER BY created_at DESC
		LIMIT $1`

	var entries []Entry
	if err := r.db.SelectContext(ctx, &entries, query, limit); err != nil {
		return nil, fmt.Errorf("list audit entries: %w", err)
	}

	return entries, nil
}

func (r *repository) ListForTarget(
	ctx context.Context,
	targetType, targetID string,
) ([]Entry, error) {
	query := `
		SELECT id, actor_id, action, target_type, target_id, details, created_at
		FROM audit_log
		WHERE target_type = $1 AND target_id = $2
		ORDER BY created_at DESC`

	var entries []Entry
	if err := r.db.SelectContext(ctx, &entries, query, targetType, targetID); err != nil {
		return nil, fmt.Errorf("list audit entries for target: %w", err)
	}

	return entries, nil
}

// AngelaMos | 2026
// repository.go

package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/aurafinsurance/insurance-backend/internal/audit"
	"github.com/aurafinsurance/insurance-backend/internal/core"
)

type Repository interface {
	Provision(ctx context.Context, user *User, role, actorID string) error
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	UpdateProfile(ctx context.Context, user *User) error
	UpdatePassword(ctx context.Context, id, passwordHash string) error
	IncrementTokenVersion(ctx context.Context, id string) error
	SetRole(ctx context.Context, userID, role, actorID string) error
	SetBanned(ctx context.Context, userID string, banned bool, actorID string) error
	ListProfiles(ctx context.Context) ([]Profile, error)
	ListRoles(ctx context.Context) ([]RoleAssignment, error)
	ListBannedIDs(ctx context.Context) ([]string, error)
}

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

const selectUser = `
	SELECT u.id, u.email, u.password_hash, u.full_name, p.phone, r.role,
	       u.token_version, u.banned_at, u.created_at, u.updated_at
	FROM users u
	LEFT JOIN profiles p ON p.user_id = u.id
	LEFT JOIN user_roles r ON r.user_id = u.id`

// Provision creates the identity, its profile and its role in one
// transaction so no identity exists without a role.
func (r *repository) Provision(
	ctx context.Context,
	user *User,
	role, actorID string,
) error {
	err := core.InTx(ctx, r.db, func(tx *sqlx.Tx) error {
		insertUser := `
			INSERT INTO users (id, email, password_hash, full_name)
			VALUES ($1, $2, $3, $4)
			RETURNING token_version, created_at, updated_at`

		row := tx.QueryRowxContext(ctx, insertUser,
			user.ID,
			user.Email,
			user.PasswordHash,
			user.FullName,
		)
		if err := row.Scan(&user.TokenVersion, &user.CreatedAt, &user.UpdatedAt); err != nil {
			return err
		}

		insertProfile := `
			INSERT INTO profiles (id, user_id, email, full_name, phone)
			VALUES ($1, $2, $3, $4, $5)`

		if _, err := tx.ExecContext(ctx, insertProfile,
			uuid.New().String(),
			user.ID,
			user.Email,
			user.FullName,
			user.Phone,
		); err != nil {
			return err
		}

		insertRole := `
			INSERT INTO user_roles (id, user_id, role)
			VALUES ($1, $2, $3)`

		if _, err := tx.ExecContext(ctx, insertRole,
			uuid.New().String(),
			user.ID,
			role,
		); err != nil {
			return err
		}

		return audit.Record(ctx, tx, actorID,
			audit.ActionUserProvisioned, audit.TargetUser, user.ID,
			map[string]any{"role": role},
		)
	})
	if err != nil {
		if core.IsDuplicateKeyError(err) {
			return fmt.Errorf("provision user: %w", core.ErrDuplicateKey)
		}
		return fmt.Errorf("provision user: %w", err)
	}

	user.Role = &role
	return nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*User, error) {
	var user User
	err := r.db.GetContext(ctx, &user, selectUser+` WHERE u.id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get user: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}

	return &user, nil
}

func (r *repository) GetByEmail(
	ctx context.Context,
	email string,
) (*User, error) {
	var user User
	err := r.db.GetContext(ctx, &user, selectUser+` WHERE u.email = $1`, email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get user by email: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get user by email: %w", err)
	}

	return &user, nil
}

func (r *repository) ExistsByEmail(
	ctx context.Context,
	email string,
) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`

	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, email); err != nil {
		return false, fmt.Errorf("check email exists: %w", err)
	}

	return exists, nil
}

func (r *repository) UpdateProfile(ctx context.Context, user *User) error {
	err := core.InTx(ctx, r.db, func(tx *sqlx.Tx) error {
		updateUser := `
			UPDATE users
			SET full_name = $2, updated_at = NOW()
			WHERE id = $1
			RETURNING updated_at`

		if err := tx.GetContext(ctx, &user.UpdatedAt, updateUser,
			user.ID,
			user.FullName,
		); err != nil {
			return err
		}

		updateProfile := `
			UPDATE profiles
			SET full_name = $2, phone = $3, updated_at = NOW()
			WHERE user_id = $1`

		_, err := tx.ExecContext(ctx, updateProfile, user.ID, user.FullName, user.Phone)
		return err
	})
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("update profile: %w", core.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("update profile: %w", err)
	}

	return nil
}

func (r *repository) UpdatePassword(
	ctx context.Context,
	id, passwordHash string,
) error {
	query := `
		UPDATE users
		SET password_hash = $2, updated_at = NOW()
		WHERE id = $1`

	return r.execOne(ctx, "update password", query, id, passwordHash)
}

func (r *repository) IncrementTokenVersion(
	ctx context.Context,
	id string,
) error {
	query := `
		UPDATE users
		SET token_version = token_version + 1, updated_at = NOW()
		WHERE id = $1`

	return r.execOne(ctx, "increment token version", query, id)
}

// SetRole replaces the user's role with a single upsert, so the user
// holds exactly one role row before and after.
func (r *repository) SetRole(
	ctx context.Context,
	userID, role, actorID string,
) error {
	err := core.InTx(ctx, r.db, func(tx *sqlx.Tx) error {
		query := `
			INSERT INTO user_roles (id, user_id, role)
			VALUES ($1, $2, $3)
			ON CONFLICT (user_id) DO UPDATE
			SET role = EXCLUDED.role, updated_at = NOW()`

		if _, err := tx.ExecContext(ctx, query, uuid.New().String(), userID, role); err != nil {
			return err
		}

		return audit.Record(ctx, tx, actorID,
			audit.ActionRoleChanged, audit.TargetUser, userID,
			map[string]any{"role": role},
		)
	})
	if err != nil {
		if core.IsForeignKeyError(err) {
			return fmt.Errorf("set role: %w", core.ErrNotFound)
		}
		return fmt.Errorf("set role: %w", err)
	}

	return nil
}

// SetBanned sets or clears the login block. Banning also bumps the token
// version so previously issued access tokens fail version checks.
func (r *repository) SetBanned(
	ctx context.Context,
	userID string,
	banned bool,
	actorID string,
) error {
	query := `
		UPDATE users
		SET banned_at = NULL, updated_at = NOW()
		WHERE id = $1`
	action := audit.ActionAccountUnbanned

	if banned {
		query = `
			UPDATE users
			SET banned_at = COALESCE(banned_at, NOW()),
			    token_version = token_version + 1,
			    updated_at = NOW()
			WHERE id = $1`
		action = audit.ActionAccountBanned
	}

	err := core.InTx(ctx, r.db, func(tx *sqlx.Tx) error {
		result, err := tx.ExecContext(ctx, query, userID)
		if err != nil {
			return err
		}

		rows, err := result.RowsAffected()
		if err != nil {
			return err
		}
		if rows == 0 {
			return core.ErrNotFound
		}

		return audit.Record(ctx, tx, actorID, action, audit.TargetUser, userID, nil)
	})
	if err != nil {
		return fmt.Errorf("set banned: %w", err)
	}

	return nil
}

func (r *repository) ListProfiles(ctx context.Context) ([]Profile, error) {
	query := `
		SELECT id, user_id, email, full_name, phone, created_at, updated_at
		FROM profiles
		ORDER BY created_at DESC`

	var profiles []Profile
	if err := r.db.SelectContext(ctx, &profiles, query); err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}

	return profiles, nil
}

func (r *repository) ListRoles(ctx context.Context) ([]RoleAssignment, error) {
	query := `SELECT user_id, role FROM user_roles`

	var roles []RoleAssignment
	if err := r.db.SelectContext(ctx, &roles, query); err != nil {
		return nil, fmt.Errorf("list roles: %w", err)
	}

	return roles, nil
}

func (r *repository) ListBannedIDs(ctx context.Context) ([]string, error) {
	query := `SELECT id FROM users WHERE banned_at IS NOT NULL`

	var ids []string
	if err := r.db.SelectContext(ctx, &ids, query); err != nil {
		return nil, fmt.Errorf("list banned users: %w", err)
	}

	return ids, nil
}

func (r *repository) execOne(ctx context.Context, op, query string, args ...any) error {
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if rows == 0 {
		return fmt.Errorf("%s: %w", op, core.ErrNotFound)
	}

	return nil
}

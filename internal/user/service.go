// AngelaMos | 2026
// service.go

package user

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/aurafinsurance/insurance-backend/internal/auth"
	"github.com/aurafinsurance/insurance-backend/internal/core"
)

// SessionRevoker ends every live session of a user.
type SessionRevoker interface {
	RevokeUser(ctx context.Context, userID string) error
}

type Service struct {
	repo    Repository
	revoker SessionRevoker
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// SetSessionRevoker installs the revoker used when a role changes. The
// auth service depends on this one, so it is wired after construction.
func (s *Service) SetSessionRevoker(revoker SessionRevoker) {
	s.revoker = revoker
}

func (s *Service) GetByID(
	ctx context.Context,
	id string,
) (*auth.UserInfo, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return toUserInfo(user), nil
}

func (s *Service) GetByEmail(
	ctx context.Context,
	email string,
) (*auth.UserInfo, error) {
	user, err := s.repo.GetByEmail(ctx, core.NormalizeEmail(email))
	if err != nil {
		return nil, err
	}

	return toUserInfo(user), nil
}

// Create registers a self-service client account.
func (s *Service) Create(
	ctx context.Context,
	identity auth.NewIdentity,
) (*auth.UserInfo, error) {
	user, err := s.Provision(ctx, NewAccount{
		Email:        identity.Email,
		FullName:     identity.FullName,
		Phone:        identity.Phone,
		PasswordHash: identity.PasswordHash,
		Role:         RoleClient,
	})
	if err != nil {
		return nil, err
	}

	return toUserInfo(user), nil
}

func (s *Service) IncrementTokenVersion(
	ctx context.Context,
	userID string,
) error {
	return s.repo.IncrementTokenVersion(ctx, userID)
}

func (s *Service) UpdatePassword(
	ctx context.Context,
	userID, passwordHash string,
) error {
	return s.repo.UpdatePassword(ctx, userID, passwordHash)
}

type NewAccount struct {
	Email        string
	FullName     string
	Phone        *string
	PasswordHash string
	Role         string
	ActorID      string
}

// Provision creates identity, profile and role atomically. The caller is
// responsible for authorizing the request.
func (s *Service) Provision(ctx context.Context, acct NewAccount) (*User, error) {
	if !core.IsValidRole(acct.Role) {
		return nil, fmt.Errorf(
			"provision: invalid role %q: %w",
			acct.Role,
			core.ErrInvalidInput,
		)
	}

	user := &User{
		ID:           uuid.New().String(),
		Email:        core.NormalizeEmail(acct.Email),
		PasswordHash: acct.PasswordHash,
		FullName:     strings.TrimSpace(acct.FullName),
		Phone:        acct.Phone,
	}

	if err := s.repo.Provision(ctx, user, acct.Role, acct.ActorID); err != nil {
		return nil, err
	}
	user.Role = &acct.Role

	return user, nil
}

func (s *Service) EmailExists(ctx context.Context, email string) (bool, error) {
	return s.repo.ExistsByEmail(ctx, core.NormalizeEmail(email))
}

func (s *Service) GetUser(ctx context.Context, id string) (*User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) GetMe(ctx context.Context, userID string) (*User, error) {
	if userID == "" {
		return nil, fmt.Errorf("get me: %w", core.ErrUnauthorized)
	}

	return s.repo.GetByID(ctx, userID)
}

func (s *Service) UpdateMe(
	ctx context.Context,
	userID string,
	req UpdateProfileRequest,
) (*User, error) {
	if userID == "" {
		return nil, fmt.Errorf("update me: %w", core.ErrUnauthorized)
	}

	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.FullName != nil {
		user.FullName = strings.TrimSpace(*req.FullName)
	}

	if req.Phone != nil {
		phone := strings.TrimSpace(*req.Phone)
		if phone == "" {
			user.Phone = nil
		} else {
			user.Phone = &phone
		}
	}

	if err := s.repo.UpdateProfile(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// ListAccounts returns every profile, newest first, with roles and ban
// state resolved from lookup maps. Profiles without a role row report
// the client role.
func (s *Service) ListAccounts(ctx context.Context, actor core.Actor) ([]Account, error) {
	if !actor.IsAdmin() {
		return nil, fmt.Errorf("list accounts: %w", core.ErrForbidden)
	}

	profiles, err := s.repo.ListProfiles(ctx)
	if err != nil {
		return nil, err
	}

	roles, err := s.repo.ListRoles(ctx)
	if err != nil {
		return nil, err
	}

	bannedIDs, err := s.repo.ListBannedIDs(ctx)
	if err != nil {
		return nil, err
	}

	roleByUser := make(map[string]string, len(roles))
	for _, r := range roles {
		roleByUser[r.UserID] = r.Role
	}

	banned := make(map[string]struct{}, len(bannedIDs))
	for _, id := range bannedIDs {
		banned[id] = struct{}{}
	}

	accounts := make([]Account, 0, len(profiles))
	for _, p := range profiles {
		role, ok := roleByUser[p.UserID]
		if !ok {
			role = RoleClient
		}
		_, isBanned := banned[p.UserID]

		accounts = append(accounts, Account{
			Profile: p,
			Role:    role,
			Banned:  isBanned,
		})
	}

	return accounts, nil
}

// SetRole reassigns a user's single role. Admins cannot change their own
// role, which keeps at least the acting admin in place.
func (s *Service) SetRole(
	ctx context.Context,
	actor core.Actor,
	userID, role string,
) (*User, error) {
	if !actor.IsAdmin() {
		return nil, fmt.Errorf("set role: %w", core.ErrForbidden)
	}

	if !core.IsValidRole(role) {
		return nil, fmt.Errorf(
			"set role: invalid role %q: %w",
			role,
			core.ErrInvalidInput,
		)
	}

	if actor.UserID == userID {
		return nil, fmt.Errorf("set role: cannot change own role: %w", core.ErrForbidden)
	}

	current, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := s.repo.SetRole(ctx, userID, role, actor.UserID); err != nil {
		return nil, err
	}

	// Tokens carry the role they were issued with, so a change must end
	// the sessions that still claim the old one.
	if current.EffectiveRole() != role && s.revoker != nil {
		if err := s.revoker.RevokeUser(ctx, userID); err != nil {
			return nil, fmt.Errorf("set role: revoke sessions: %w", err)
		}
	}

	return s.repo.GetByID(ctx, userID)
}

func (s *Service) SetBanned(
	ctx context.Context,
	userID string,
	banned bool,
	actorID string,
) error {
	return s.repo.SetBanned(ctx, userID, banned, actorID)
}

func toUserInfo(u *User) *auth.UserInfo {
	return &auth.UserInfo{
		ID:           u.ID,
		Email:        u.Email,
		FullName:     u.FullName,
		PasswordHash: u.PasswordHash,
		Role:         u.EffectiveRole(),
		TokenVersion: u.TokenVersion,
		Banned:       u.IsBanned(),
		CreatedAt:    u.CreatedAt,
	}
}

var _ auth.UserProvider = (*Service)(nil)

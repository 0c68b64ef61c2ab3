// AngelaMos | 2026
// service.go

package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/aurafinsurance/insurance-backend/internal/core"
	"github.com/aurafinsurance/insurance-backend/internal/middleware"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenReuse         = errors.New("token reuse detected")
	ErrEmailExists        = errors.New("email already exists")
)

const (
	blacklistKeyPrefix = "auth:blacklist:"
	blockedKeyPrefix   = "auth:blocked:"

	// purgeRetention keeps dead tokens around long enough for reuse
	// detection to still recognise a replayed token.
	purgeRetention = 24 * time.Hour
)

// UserInfo is the identity view auth needs. Role is already resolved,
// so an identity without a role row reports client.
type UserInfo struct {
	ID           string
	Email        string
	FullName     string
	PasswordHash string
	Role         string
	Banned       bool
	TokenVersion int
	CreatedAt    time.Time
}

type NewIdentity struct {
	Email        string
	PasswordHash string
	FullName     string
	Phone        *string
}

type UserProvider interface {
	GetByEmail(ctx context.Context, email string) (*UserInfo, error)
	GetByID(ctx context.Context, id string) (*UserInfo, error)
	Create(ctx context.Context, identity NewIdentity) (*UserInfo, error)
	IncrementTokenVersion(ctx context.Context, userID string) error
	UpdatePassword(ctx context.Context, userID, passwordHash string) error
}

type Service struct {
	repo         Repository
	jwt          *JWTManager
	userProvider UserProvider
	redis        *redis.Client
}

func NewService(
	repo Repository,
	jwt *JWTManager,
	userProvider UserProvider,
	redisClient *redis.Client,
) *Service {
	return &Service{
		repo:         repo,
		jwt:          jwt,
		userProvider: userProvider,
		redis:        redisClient,
	}
}

// Login checks the password before the ban so a wrong password never
// reveals whether an account is deactivated.
func (s *Service) Login(
	ctx context.Context,
	req LoginRequest,
	userAgent, ipAddress string,
) (*AuthResponse, error) {
	user, err := s.userProvider.GetByEmail(ctx, core.NormalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			//nolint:errcheck // equalizes timing for unknown emails
			_, _, _ = core.VerifyPasswordTimingSafe(req.Password, nil)
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	valid, newHash, err := core.VerifyPasswordTimingSafe(req.Password, &user.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("verify password: %w", err)
	}
	if !valid {
		return nil, ErrInvalidCredentials
	}

	if user.Banned {
		return nil, fmt.Errorf("login: %w", core.ErrAccountDisabled)
	}

	if newHash != "" {
		//nolint:errcheck // rehash upgrade is retried on the next login
		_ = s.userProvider.UpdatePassword(ctx, user.ID, newHash)
	}

	return s.issue(ctx, user, userAgent, ipAddress, "", "")
}

func (s *Service) Register(
	ctx context.Context,
	req RegisterRequest,
	userAgent, ipAddress string,
) (*AuthResponse, error) {
	passwordHash, err := core.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	var phone *string
	if req.Phone != nil {
		if p := strings.TrimSpace(*req.Phone); p != "" {
			phone = &p
		}
	}

	user, err := s.userProvider.Create(ctx, NewIdentity{
		Email:        core.NormalizeEmail(req.Email),
		PasswordHash: passwordHash,
		FullName:     strings.TrimSpace(req.FullName),
		Phone:        phone,
	})
	if err != nil {
		if errors.Is(err, core.ErrDuplicateKey) {
			return nil, ErrEmailExists
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	return s.issue(ctx, user, userAgent, ipAddress, "", "")
}

// Refresh exchanges a refresh token for a new pair. Presenting a token
// that was already exchanged revokes its whole family.
func (s *Service) Refresh(
	ctx context.Context,
	refreshToken, userAgent, ipAddress string,
) (*AuthResponse, error) {
	stored, err := s.repo.FindByHash(ctx, core.HashToken(refreshToken))
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return nil, fmt.Errorf("refresh: %w", core.ErrTokenInvalid)
		}
		return nil, fmt.Errorf("find token: %w", err)
	}

	if stored.IsUsed {
		//nolint:errcheck // the replay is rejected either way
		_, _ = s.repo.Revoke(ctx, RevokeFamily, stored.FamilyID)
		return nil, ErrTokenReuse
	}

	if !stored.ActiveAt(time.Now()) {
		if stored.IsRevoked() {
			return nil, fmt.Errorf("refresh: %w", core.ErrTokenRevoked)
		}
		return nil, fmt.Errorf("refresh: %w", core.ErrTokenExpired)
	}

	user, err := s.userProvider.GetByID(ctx, stored.UserID)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}

	if user.Banned {
		//nolint:errcheck // the refresh is rejected either way
		_, _ = s.repo.Revoke(ctx, RevokeFamily, stored.FamilyID)
		return nil, fmt.Errorf("refresh: %w", core.ErrAccountDisabled)
	}

	return s.issue(ctx, user, userAgent, ipAddress, stored.FamilyID, stored.ID)
}

func (s *Service) Logout(
	ctx context.Context,
	refreshToken, userID string,
	access *middleware.AccessTokenClaims,
) error {
	if access != nil {
		if err := s.RevokeAccessToken(ctx, access.JTI, access.ExpiresAt); err != nil {
			return err
		}
	}

	stored, err := s.repo.FindByHash(ctx, core.HashToken(refreshToken))
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("find token: %w", err)
	}

	if stored.UserID != userID {
		return fmt.Errorf("logout: %w", core.ErrForbidden)
	}

	if _, err := s.repo.Revoke(ctx, RevokeToken, stored.ID); err != nil &&
		!errors.Is(err, core.ErrNotFound) {
		return fmt.Errorf("revoke token: %w", err)
	}

	return nil
}

func (s *Service) LogoutAll(ctx context.Context, userID string) error {
	if _, err := s.repo.Revoke(ctx, RevokeUser, userID); err != nil {
		return err
	}

	if err := s.userProvider.IncrementTokenVersion(ctx, userID); err != nil {
		return fmt.Errorf("increment token version: %w", err)
	}

	return nil
}

func (s *Service) RevokeAccessToken(ctx context.Context, jti string, expiresAt time.Time) error {
	ttl := time.Until(expiresAt)
	if ttl <= 0 || s.redis == nil {
		return nil
	}

	if err := s.redis.Set(ctx, blacklistKeyPrefix+jti, "1", ttl).Err(); err != nil {
		return fmt.Errorf("blacklist token: %w", err)
	}

	return nil
}

func (s *Service) GetActiveSessions(ctx context.Context, userID string) ([]SessionInfo, error) {
	tokens, err := s.repo.ListActive(ctx, userID)
	if err != nil {
		return nil, err
	}

	sessions := make([]SessionInfo, 0, len(tokens))
	for i := range tokens {
		sessions = append(sessions, tokens[i].Session())
	}

	return sessions, nil
}

func (s *Service) RevokeSession(ctx context.Context, userID, sessionID string) error {
	token, err := s.repo.FindByID(ctx, sessionID)
	if err != nil {
		return err
	}

	if token.UserID != userID {
		return fmt.Errorf("revoke session: %w", core.ErrForbidden)
	}

	_, err = s.repo.Revoke(ctx, RevokeToken, sessionID)
	return err
}

// ChangePassword replaces the password and signs the user out
// everywhere, including the session making the change.
func (s *Service) ChangePassword(
	ctx context.Context,
	userID, currentPassword, newPassword string,
) error {
	user, err := s.userProvider.GetByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("get user: %w", err)
	}

	valid, _, err := core.VerifyPasswordWithRehash(currentPassword, user.PasswordHash)
	if err != nil {
		return fmt.Errorf("verify password: %w", err)
	}
	if !valid {
		return ErrInvalidCredentials
	}

	newHash, err := core.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	if err := s.userProvider.UpdatePassword(ctx, userID, newHash); err != nil {
		return fmt.Errorf("update password: %w", err)
	}

	return s.LogoutAll(ctx, userID)
}

// VerifyAccessToken checks the token signature and claims, then rejects
// tokens that were logged out or belong to a user blocked after issuance.
func (s *Service) VerifyAccessToken(
	ctx context.Context,
	tokenString string,
) (*middleware.AccessTokenClaims, error) {
	claims, err := s.jwt.VerifyAccessToken(ctx, tokenString)
	if err != nil {
		return nil, err
	}

	if s.redis == nil {
		return claims, nil
	}

	counts, err := s.redis.Exists(ctx, blacklistKeyPrefix+claims.JTI).Result()
	if err != nil {
		return nil, fmt.Errorf("check blacklist: %w", err)
	}
	if counts > 0 {
		return nil, fmt.Errorf("verify token: %w", core.ErrTokenRevoked)
	}

	blockedVersion, err := s.redis.Get(ctx, blockedKeyPrefix+claims.UserID).Int()
	if err != nil && !errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("check block list: %w", err)
	}
	if err == nil && claims.TokenVersion <= blockedVersion {
		return nil, fmt.Errorf("verify token: %w", core.ErrTokenRevoked)
	}

	return claims, nil
}

// RevokeUser ends every session of a user: refresh tokens are revoked,
// the token version is bumped and access tokens issued before now are
// refused until they would have expired anyway.
func (s *Service) RevokeUser(ctx context.Context, userID string) error {
	user, err := s.userProvider.GetByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("get user: %w", err)
	}
	blockedVersion := user.TokenVersion

	if err := s.LogoutAll(ctx, userID); err != nil {
		return err
	}

	if s.redis == nil {
		return nil
	}

	err = s.redis.Set(
		ctx,
		blockedKeyPrefix+userID,
		blockedVersion,
		s.jwt.AccessTokenTTL(),
	).Err()
	if err != nil {
		return fmt.Errorf("block access tokens: %w", err)
	}

	return nil
}

func (s *Service) PurgeExpiredTokens(ctx context.Context) (int64, error) {
	return s.repo.Purge(ctx, purgeRetention)
}

func (s *Service) GetCurrentUser(ctx context.Context, userID string) (*UserResponse, error) {
	user, err := s.userProvider.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	resp := toUserResponse(user)
	return &resp, nil
}

// issue mints an access token and the next refresh token of familyID,
// starting a new family when familyID is empty. A non-empty previousID
// is consumed in favour of the new refresh token.
func (s *Service) issue(
	ctx context.Context,
	user *UserInfo,
	userAgent, ipAddress, familyID, previousID string,
) (*AuthResponse, error) {
	accessToken, err := s.jwt.CreateAccessToken(AccessTokenClaims{
		UserID:       user.ID,
		Role:         user.Role,
		TokenVersion: user.TokenVersion,
	})
	if err != nil {
		return nil, fmt.Errorf("create access token: %w", err)
	}

	refreshData, err := s.jwt.CreateRefreshToken(familyID)
	if err != nil {
		return nil, fmt.Errorf("create refresh token: %w", err)
	}

	next := &RefreshToken{
		ID:        uuid.New().String(),
		UserID:    user.ID,
		TokenHash: refreshData.Hash,
		FamilyID:  refreshData.FamilyID,
		ExpiresAt: refreshData.ExpiresAt,
		UserAgent: userAgent,
		IPAddress: ipAddress,
	}

	if err := s.repo.Create(ctx, next); err != nil {
		return nil, fmt.Errorf("store refresh token: %w", err)
	}

	if previousID != "" {
		if err := s.repo.Rotate(ctx, previousID, next.ID); err != nil {
			//nolint:errcheck // the fresh token must not outlive a lost race
			_, _ = s.repo.Revoke(ctx, RevokeToken, next.ID)
			if errors.Is(err, core.ErrNotFound) {
				return nil, ErrTokenReuse
			}
			return nil, err
		}
	}

	return &AuthResponse{
		User: toUserResponse(user),
		Tokens: TokenResponse{
			AccessToken:  accessToken.Token,
			RefreshToken: refreshData.Token,
			TokenType:    "Bearer",
			ExpiresIn:    int(s.jwt.AccessTokenTTL() / time.Second),
			ExpiresAt:    accessToken.ExpiresAt,
		},
	}, nil
}

// AngelaMos | 2026
// service.go

package provisioning

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/aurafinsurance/insurance-backend/internal/core"
	"github.com/aurafinsurance/insurance-backend/internal/notify"
	"github.com/aurafinsurance/insurance-backend/internal/user"
)

const (
	ActionDeactivate = "deactivate"
	ActionActivate   = "activate"

	warnLinkFailed  = "Account created but it could not be linked to the application."
	warnEmailFailed = "Account created but the welcome email failed. Share the login details manually."
)

type Accounts interface {
	EmailExists(ctx context.Context, email string) (bool, error)
	Provision(ctx context.Context, acct user.NewAccount) (*user.User, error)
	GetUser(ctx context.Context, id string) (*user.User, error)
	SetBanned(ctx context.Context, userID string, banned bool, actorID string) error
}

type Applications interface {
	LinkAgentUser(ctx context.Context, id, userID string) error
}

type Mailer interface {
	Send(ctx context.Context, msg notify.Message) (string, error)
}

// SessionRevoker ends every live session of a user.
type SessionRevoker interface {
	RevokeUser(ctx context.Context, userID string) error
}

type Service struct {
	accounts     Accounts
	applications Applications
	mailer       Mailer
	revoker      SessionRevoker
	loginURL     string
	logger       *slog.Logger
}

func NewService(
	accounts Accounts,
	applications Applications,
	mailer Mailer,
	revoker SessionRevoker,
	loginURL string,
	logger *slog.Logger,
) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		accounts:     accounts,
		applications: applications,
		mailer:       mailer,
		revoker:      revoker,
		loginURL:     loginURL,
		logger:       logger,
	}
}

func (s *Service) CreateUser(
	ctx context.Context,
	actor core.Actor,
	req CreateUserRequest,
) (*Result, error) {
	if !actor.IsAdmin() {
		return nil, fmt.Errorf("create user: %w", core.ErrForbidden)
	}
	if !core.IsValidRole(req.Role) {
		return nil, core.ValidationError("Invalid role. Must be client, agent, or admin")
	}

	u, warning, err := s.create(ctx, actor, req.Email, req.FullName, req.Role)
	if err != nil {
		return nil, err
	}

	return &Result{
		Success:         true,
		UserID:          u.ID,
		Message:         "User created successfully",
		Warning:         warning,
		CredentialsSent: warning == "",
	}, nil
}

// CreateAgent provisions an agent account and links it to the agent
// application it came from, when one is given.
func (s *Service) CreateAgent(
	ctx context.Context,
	actor core.Actor,
	req CreateAgentRequest,
) (*Result, error) {
	if !actor.IsAdmin() {
		return nil, fmt.Errorf("create agent: %w", core.ErrForbidden)
	}

	u, warning, err := s.create(ctx, actor, req.Email, req.FullName, core.RoleAgent)
	if err != nil {
		return nil, err
	}
	credentialsSent := warning == ""

	if req.AgentApplicationID != "" {
		if err := s.applications.LinkAgentUser(ctx, req.AgentApplicationID, u.ID); err != nil {
			s.logger.ErrorContext(ctx, "link agent account to application",
				"application_id", req.AgentApplicationID,
				"user_id", u.ID,
				"error", err,
			)
			warning = joinWarnings(warnLinkFailed, warning)
		}
	}

	return &Result{
		Success:         true,
		UserID:          u.ID,
		Message:         "Agent account created successfully",
		Warning:         warning,
		CredentialsSent: credentialsSent,
	}, nil
}

func (s *Service) create(
	ctx context.Context,
	actor core.Actor,
	email, fullName, role string,
) (*user.User, string, error) {
	ctx, span := core.StartSpan(ctx, "provisioning.create")
	defer span.End()

	email = core.NormalizeEmail(email)
	fullName = strings.TrimSpace(fullName)

	if email == "" || fullName == "" {
		return nil, "", core.ValidationError("Missing required fields: email, fullName")
	}
	if !core.IsValidEmail(email) {
		return nil, "", core.ValidationError("email must be a valid email address")
	}

	exists, err := s.accounts.EmailExists(ctx, email)
	if err != nil {
		return nil, "", fmt.Errorf("check existing account: %w", err)
	}
	if exists {
		return nil, "", duplicateAccountError()
	}

	password, err := core.GenerateTemporaryPassword(core.TemporaryPasswordLength)
	if err != nil {
		return nil, "", fmt.Errorf("generate password: %w", err)
	}

	hash, err := core.HashPassword(password)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}

	u, err := s.accounts.Provision(ctx, user.NewAccount{
		Email:        email,
		FullName:     fullName,
		PasswordHash: hash,
		Role:         role,
		ActorID:      actor.UserID,
	})
	if err != nil {
		if errors.Is(err, core.ErrDuplicateKey) {
			return nil, "", duplicateAccountError()
		}
		core.SetSpanError(ctx, err)
		return nil, "", err
	}

	s.logger.InfoContext(ctx, "account provisioned",
		"user_id", u.ID,
		"role", role,
		"actor_id", actor.UserID,
	)

	msg, err := notify.CredentialsEmail(notify.Credentials{
		Email:    email,
		Name:     fullName,
		Password: password,
		Role:     role,
		LoginURL: s.loginURL,
	})
	if err == nil {
		_, err = s.mailer.Send(ctx, msg)
	}
	if err != nil {
		s.logger.WarnContext(ctx, "welcome email not delivered",
			"user_id", u.ID,
			"error", err,
		)
		return u, warnEmailFailed, nil
	}

	return u, "", nil
}

// SetAccountBanned bans or unbans a non-admin account. A ban also ends
// every live session of the target.
func (s *Service) SetAccountBanned(
	ctx context.Context,
	actor core.Actor,
	targetUserID string,
	banned bool,
) error {
	if !actor.IsAdmin() {
		return fmt.Errorf("set account banned: %w", core.ErrForbidden)
	}

	target, err := s.accounts.GetUser(ctx, targetUserID)
	if err != nil {
		return err
	}
	if target.IsAdmin() {
		return fmt.Errorf("set account banned: admin accounts cannot be deactivated: %w", core.ErrForbidden)
	}

	return s.setBanned(ctx, targetUserID, banned, actor.UserID)
}

// DeactivateSelf lets a client or agent close their own account.
func (s *Service) DeactivateSelf(ctx context.Context, actor core.Actor, userID string) error {
	if actor.IsZero() || actor.UserID != userID {
		return fmt.Errorf("deactivate self: %w", core.ErrForbidden)
	}
	if actor.IsAdmin() {
		return fmt.Errorf("deactivate self: admins cannot deactivate themselves: %w", core.ErrForbidden)
	}

	return s.setBanned(ctx, userID, true, actor.UserID)
}

func (s *Service) setBanned(ctx context.Context, userID string, banned bool, actorID string) error {
	if err := s.accounts.SetBanned(ctx, userID, banned, actorID); err != nil {
		return err
	}

	if !banned {
		return nil
	}

	if err := s.revoker.RevokeUser(ctx, userID); err != nil {
		return fmt.Errorf("revoke sessions: %w", err)
	}

	return nil
}

func duplicateAccountError() *core.AppError {
	return core.NewAppError(
		core.ErrDuplicateKey,
		"User with this email already exists",
		http.StatusConflict,
		"DUPLICATE",
	)
}

func joinWarnings(warnings ...string) string {
	var out []string
	for _, w := range warnings {
		if w != "" {
			out = append(out, w)
		}
	}
	return strings.Join(out, " ")
}

// AngelaMos | 2026
// service_test.go

package provisioning

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aurafinsurance/insurance-backend/internal/core"
	"github.com/aurafinsurance/insurance-backend/internal/notify"
	"github.com/aurafinsurance/insurance-backend/internal/user"
)

var (
	adminActor  = core.Actor{UserID: "admin-1", Role: core.RoleAdmin}
	clientActor = core.Actor{UserID: "client-1", Role: core.RoleClient}
)

type fakeAccounts struct {
	users       map[string]*user.User
	provisioned []user.NewAccount
	banCalls    int
}

func newFakeAccounts() *fakeAccounts {
	adminRole := core.RoleAdmin
	agentRole := core.RoleAgent
	return &fakeAccounts{users: map[string]*user.User{
		"admin-1": {ID: "admin-1", Email: "boss@auraf.in", Role: &adminRole},
		"agent-1": {ID: "agent-1", Email: "agent@auraf.in", Role: &agentRole},
	}}
}

func (f *fakeAccounts) EmailExists(_ context.Context, email string) (bool, error) {
	for _, u := range f.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeAccounts) Provision(_ context.Context, acct user.NewAccount) (*user.User, error) {
	f.provisioned = append(f.provisioned, acct)
	role := acct.Role
	u := &user.User{ID: "user-new", Email: acct.Email, FullName: acct.FullName, Role: &role}
	f.users[u.ID] = u
	return u, nil
}

func (f *fakeAccounts) GetUser(_ context.Context, id string) (*user.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, core.ErrNotFound
	}
	return u, nil
}

func (f *fakeAccounts) SetBanned(_ context.Context, userID string, banned bool, _ string) error {
	f.banCalls++
	u, ok := f.users[userID]
	if !ok {
		return core.ErrNotFound
	}
	if banned {
		now := time.Now()
		u.BannedAt = &now
	} else {
		u.BannedAt = nil
	}
	return nil
}

type fakeApplications struct {
	links map[string]string
	err   error
}

func (f *fakeApplications) LinkAgentUser(_ context.Context, id, userID string) error {
	if f.err != nil {
		return f.err
	}
	f.links[id] = userID
	return nil
}

type fakeMailer struct {
	sent []notify.Message
	err  error
}

func (f *fakeMailer) Send(_ context.Context, msg notify.Message) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.sent = append(f.sent, msg)
	return "id", nil
}

type fakeRevoker struct {
	revoked []string
}

func (f *fakeRevoker) RevokeUser(_ context.Context, userID string) error {
	f.revoked = append(f.revoked, userID)
	return nil
}

type fixture struct {
	svc      *Service
	accounts *fakeAccounts
	apps     *fakeApplications
	mailer   *fakeMailer
	revoker  *fakeRevoker
}

func newFixture() *fixture {
	f := &fixture{
		accounts: newFakeAccounts(),
		apps:     &fakeApplications{links: map[string]string{}},
		mailer:   &fakeMailer{},
		revoker:  &fakeRevoker{},
	}
	f.svc = NewService(
		f.accounts,
		f.apps,
		f.mailer,
		f.revoker,
		"https://auraf.in/auth",
		slog.New(slog.NewTextHandler(io.Discard, nil)),
	)
	return f
}

func TestCreateUserSendsCredentials(t *testing.T) {
	f := newFixture()

	res, err := f.svc.CreateUser(context.Background(), adminActor, CreateUserRequest{
		Email:    " New.Client@Example.com ",
		FullName: "New Client",
		Role:     core.RoleClient,
	})
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, "user-new", res.UserID)
	assert.Empty(t, res.Warning)

	require.Len(t, f.accounts.provisioned, 1)
	acct := f.accounts.provisioned[0]
	assert.Equal(t, "new.client@example.com", acct.Email)
	assert.Equal(t, adminActor.UserID, acct.ActorID)
	assert.NotEmpty(t, acct.PasswordHash)

	require.Len(t, f.mailer.sent, 1)
	assert.Equal(t, notify.SubjectAccountReady, f.mailer.sent[0].Subject)
	assert.Contains(t, f.mailer.sent[0].HTML, "new.client@example.com")
	assert.Contains(t, f.mailer.sent[0].HTML, "https://auraf.in/auth")
}

func TestCreateUserRejectsDuplicateEmail(t *testing.T) {
	f := newFixture()

	_, err := f.svc.CreateUser(context.Background(), adminActor, CreateUserRequest{
		Email:    "AGENT@auraf.in",
		FullName: "Someone",
		Role:     core.RoleAgent,
	})

	appErr, ok := core.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusConflict, appErr.StatusCode)
	assert.ErrorIs(t, err, core.ErrDuplicateKey)
	assert.Empty(t, f.accounts.provisioned)
	assert.Empty(t, f.mailer.sent)
}

func TestCreateUserValidation(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.svc.CreateUser(ctx, adminActor, CreateUserRequest{Email: "x@y.com", FullName: "X", Role: "owner"})
	require.ErrorIs(t, err, core.ErrInvalidInput)

	_, err = f.svc.CreateUser(ctx, adminActor, CreateUserRequest{Email: "", FullName: "X", Role: core.RoleClient})
	require.ErrorIs(t, err, core.ErrInvalidInput)

	_, err = f.svc.CreateUser(ctx, clientActor, CreateUserRequest{Email: "x@y.com", FullName: "X", Role: core.RoleClient})
	require.ErrorIs(t, err, core.ErrForbidden)

	assert.Empty(t, f.accounts.provisioned)
}

func TestCreateUserEmailFailureIsWarning(t *testing.T) {
	f := newFixture()
	f.mailer.err = errors.New("smtp timeout")

	res, err := f.svc.CreateUser(context.Background(), adminActor, CreateUserRequest{
		Email:    "c@example.com",
		FullName: "C",
		Role:     core.RoleClient,
	})
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.NotEmpty(t, res.Warning)
	assert.False(t, res.CredentialsSent)
}

func TestCreateAgentLinksApplication(t *testing.T) {
	f := newFixture()

	res, err := f.svc.CreateAgent(context.Background(), adminActor, CreateAgentRequest{
		Email:              "ravi@example.com",
		FullName:           "Ravi Kumar",
		AgentApplicationID: "app-1",
	})
	require.NoError(t, err)

	assert.Equal(t, res.UserID, f.apps.links["app-1"])
	assert.True(t, res.CredentialsSent)
	assert.Equal(t, core.RoleAgent, f.accounts.provisioned[0].Role)
	require.Len(t, f.mailer.sent, 1)
	assert.Equal(t, notify.SubjectAgentAccount, f.mailer.sent[0].Subject)
}

func TestCreateAgentLinkFailureIsWarning(t *testing.T) {
	f := newFixture()
	f.apps.err = errors.New("db down")

	res, err := f.svc.CreateAgent(context.Background(), adminActor, CreateAgentRequest{
		Email:              "ravi@example.com",
		FullName:           "Ravi Kumar",
		AgentApplicationID: "app-1",
	})
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Contains(t, res.Warning, "linked")
	assert.True(t, res.CredentialsSent)
}

func TestBanAgentRevokesSessions(t *testing.T) {
	f := newFixture()

	err := f.svc.SetAccountBanned(context.Background(), adminActor, "agent-1", true)
	require.NoError(t, err)

	assert.True(t, f.accounts.users["agent-1"].IsBanned())
	assert.Equal(t, []string{"agent-1"}, f.revoker.revoked)

	err = f.svc.SetAccountBanned(context.Background(), adminActor, "agent-1", false)
	require.NoError(t, err)
	assert.False(t, f.accounts.users["agent-1"].IsBanned())
	assert.Len(t, f.revoker.revoked, 1)
}

func TestBanRefusesAdminTarget(t *testing.T) {
	f := newFixture()

	err := f.svc.SetAccountBanned(context.Background(), adminActor, "admin-1", true)
	require.ErrorIs(t, err, core.ErrForbidden)
	assert.Zero(t, f.accounts.banCalls)
}

func TestBanRequiresAdminCaller(t *testing.T) {
	f := newFixture()

	err := f.svc.SetAccountBanned(context.Background(), clientActor, "agent-1", true)
	require.ErrorIs(t, err, core.ErrForbidden)
	assert.Zero(t, f.accounts.banCalls)
}

func TestDeactivateSelf(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	agent := core.Actor{UserID: "agent-1", Role: core.RoleAgent}

	require.ErrorIs(t, f.svc.DeactivateSelf(ctx, agent, "admin-1"), core.ErrForbidden)
	require.ErrorIs(t, f.svc.DeactivateSelf(ctx, adminActor, "admin-1"), core.ErrForbidden)

	require.NoError(t, f.svc.DeactivateSelf(ctx, agent, "agent-1"))
	assert.True(t, f.accounts.users["agent-1"].IsBanned())
	assert.Equal(t, []string{"agent-1"}, f.revoker.revoked)
}

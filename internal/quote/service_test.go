// AngelaMos | 2026
// service_test.go

package quote

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aurafinsurance/insurance-backend/internal/core"
	"github.com/aurafinsurance/insurance-backend/internal/policy"
)

const healthPolicyID = "6f1c2a7e-3b9d-4c55-8f0a-1d2e3f4a5b6c"

type fakeRepo struct {
	created []*Quote
	err     error
}

func (f *fakeRepo) Create(_ context.Context, q *Quote) error {
	if f.err != nil {
		return f.err
	}
	f.created = append(f.created, q)
	return nil
}

func (f *fakeRepo) GetByID(_ context.Context, _ string) (*Quote, error) {
	return nil, core.ErrNotFound
}

func (f *fakeRepo) List(_ context.Context) ([]Quote, error) {
	return nil, nil
}

func (f *fakeRepo) Respond(_ context.Context, _, _ string) (*Quote, error) {
	return nil, core.ErrNotFound
}

type fakeCatalog struct {
	policies []policy.Policy
}

func (f fakeCatalog) ListActive(_ context.Context) ([]policy.Policy, error) {
	return f.policies, nil
}

func strPtr(s string) *string { return &s }

func catalog() fakeCatalog {
	return fakeCatalog{policies: []policy.Policy{{
		ID:         healthPolicyID,
		Name:       "Family Floater Gold",
		PolicyType: "Health Insurance",
		Provider:   strPtr("Star Health"),
		IsActive:   true,
	}}}
}

func TestSubmitWithoutPolicyKeepsPlainMessage(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo, catalog())

	q, err := svc.Submit(context.Background(), SubmitRequest{
		ServiceProvider: "Star Health",
		InsuranceType:   "Health Insurance",
		FullName:        "Jane Doe",
		Email:           "jane@x.com",
		Phone:           "0712345678",
	})
	require.NoError(t, err)

	require.Len(t, repo.created, 1)
	assert.Nil(t, q.PolicyID)
	assert.Nil(t, repo.created[0].Message)
	assert.Equal(t, "jane@x.com", repo.created[0].Email)
}

func TestSubmitFoldsPolicyNameIntoMessage(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo, catalog())

	_, err := svc.Submit(context.Background(), SubmitRequest{
		ServiceProvider: "Star Health",
		InsuranceType:   "health insurance",
		PolicyID:        strPtr(healthPolicyID),
		FullName:        "Jane Doe",
		Email:           "Jane@X.com",
		Phone:           "0712345678",
		Message:         strPtr("  family of four "),
	})
	require.NoError(t, err)

	require.Len(t, repo.created, 1)
	stored := repo.created[0]
	require.NotNil(t, stored.Message)
	assert.Equal(t, "Policy: Family Floater Gold | family of four", *stored.Message)
	assert.Equal(t, "jane@x.com", stored.Email)
	require.NotNil(t, stored.PolicyID)
	assert.Equal(t, healthPolicyID, *stored.PolicyID)
}

func TestSubmitRejectsPolicyFromAnotherProvider(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo, catalog())

	_, err := svc.Submit(context.Background(), SubmitRequest{
		ServiceProvider: "Other Insurer",
		InsuranceType:   "Health Insurance",
		PolicyID:        strPtr(healthPolicyID),
		FullName:        "Jane Doe",
		Email:           "jane@x.com",
		Phone:           "0712345678",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrInvalidInput)
	assert.Empty(t, repo.created)
}

func TestSubmitRequiresContactFields(t *testing.T) {
	tests := []struct {
		name string
		req  SubmitRequest
		want string
	}{
		{
			name: "missing phone",
			req: SubmitRequest{
				ServiceProvider: "Star Health",
				InsuranceType:   "Health Insurance",
				FullName:        "Jane Doe",
				Email:           "jane@x.com",
			},
			want: "phone is required",
		},
		{
			name: "malformed email",
			req: SubmitRequest{
				ServiceProvider: "Star Health",
				InsuranceType:   "Health Insurance",
				FullName:        "Jane Doe",
				Email:           "jane at x",
				Phone:           "0712345678",
			},
			want: "email must be a valid email address",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeRepo{}
			_, err := NewService(repo, catalog()).Submit(context.Background(), tt.req)

			appErr, ok := core.AsAppError(err)
			require.True(t, ok)
			assert.Contains(t, appErr.Message, tt.want)
			assert.Empty(t, repo.created)
		})
	}
}

func TestSubmitSurfacesStoreError(t *testing.T) {
	repo := &fakeRepo{err: errors.New("connection refused")}

	_, err := NewService(repo, catalog()).Submit(context.Background(), SubmitRequest{
		ServiceProvider: "Star Health",
		InsuranceType:   "Health Insurance",
		FullName:        "Jane Doe",
		Email:           "jane@x.com",
		Phone:           "0712345678",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestComposeMessage(t *testing.T) {
	tests := []struct {
		name    string
		policy  string
		message string
		want    *string
	}{
		{name: "nothing", want: nil},
		{name: "whitespace only", message: "   ", want: nil},
		{name: "text only", message: " call me ", want: strPtr("call me")},
		{name: "policy only", policy: "Gold", want: strPtr("Policy: Gold")},
		{name: "both", policy: "Gold", message: "asap", want: strPtr("Policy: Gold | asap")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ComposeMessage(tt.policy, tt.message))
		})
	}
}

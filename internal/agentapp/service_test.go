// AngelaMos | 2026
// service_test.go

package agentapp

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aurafinsurance/insurance-backend/internal/core"
)

type fakeRepo struct {
	created []*Application
	refs    []string
	refsErr error
}

func (f *fakeRepo) Create(_ context.Context, a *Application) error {
	a.Status = StatusPending
	f.created = append(f.created, a)
	return nil
}

func (f *fakeRepo) GetByID(context.Context, string) (*Application, error) {
	return nil, core.ErrNotFound
}

func (f *fakeRepo) List(context.Context) ([]Application, error) { return nil, nil }

func (f *fakeRepo) Decide(context.Context, string, string, *string, string) (*Application, error) {
	return nil, core.ErrNotFound
}

func (f *fakeRepo) LinkAgentUser(context.Context, string, string) error { return nil }

func (f *fakeRepo) DocumentRefs(context.Context) ([]string, error) {
	return f.refs, f.refsErr
}

type knownDocuments map[string]bool

func (k knownDocuments) Exists(ref string) bool { return k[ref] }

const docRef = "3f2b8c1e-4d5a-4b6c-8d7e-9f0a1b2c3d4e.pdf"

func strPtr(s string) *string { return &s }

func TestSubmitApplication(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo, knownDocuments{docRef: true})

	years := 4
	a, err := svc.Submit(context.Background(), SubmitRequest{
		FullName:        " Ravi Kumar ",
		Email:           "RAVI@example.in",
		Phone:           " 9876543210 ",
		City:            strPtr(" Pune "),
		State:           strPtr(""),
		ExperienceYears: &years,
		IDDocumentRef:   strPtr(docRef),
	})
	require.NoError(t, err)
	require.Len(t, repo.created, 1)

	assert.Equal(t, "Ravi Kumar", a.FullName)
	assert.Equal(t, "ravi@example.in", a.Email)
	assert.Equal(t, "9876543210", a.Phone)
	assert.Equal(t, "Pune", *a.City)
	assert.Nil(t, a.State)
	assert.Equal(t, docRef, *a.IDDocumentRef)
	assert.Equal(t, StatusPending, a.Status)
	assert.False(t, a.IsDecided())
}

func TestSubmitApplicationValidation(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo, knownDocuments{})

	_, err := svc.Submit(context.Background(), SubmitRequest{FullName: "Ravi", Email: "ravi@example.in"})
	appErr, ok := core.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, "phone is required", appErr.Message)

	negative := -1
	_, err = svc.Submit(context.Background(), SubmitRequest{
		FullName: "Ravi", Email: "ravi@example.in", Phone: "1", ExperienceYears: &negative,
	})
	assert.ErrorIs(t, err, core.ErrInvalidInput)

	_, err = svc.Submit(context.Background(), SubmitRequest{
		FullName: "Ravi", Email: "ravi@example.in", Phone: "1", IDDocumentRef: strPtr(docRef),
	})
	appErr, ok = core.AsAppError(err)
	require.True(t, ok)
	assert.Contains(t, appErr.Message, "id_document_ref")

	assert.Empty(t, repo.created)
}

func TestReferencedDocuments(t *testing.T) {
	svc := NewService(&fakeRepo{refs: []string{docRef, docRef}}, nil)

	refs, err := svc.ReferencedDocuments(context.Background())
	require.NoError(t, err)
	assert.Len(t, refs, 1)
	assert.Contains(t, refs, docRef)

	svc = NewService(&fakeRepo{refsErr: errors.New("boom")}, nil)
	_, err = svc.ReferencedDocuments(context.Background())
	assert.Error(t, err)
}

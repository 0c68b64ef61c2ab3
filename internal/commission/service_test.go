// AngelaMos | 2026
// service_test.go

package commission

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aurafinsurance/insurance-backend/internal/core"
)

type fakeRepo struct {
	all       []Commission
	listedFor string
}

func (f *fakeRepo) ListAll(_ context.Context) ([]Commission, error) {
	return f.all, nil
}

func (f *fakeRepo) ListForAgent(_ context.Context, agentUserID string) ([]Commission, error) {
	f.listedFor = agentUserID
	var out []Commission
	for _, c := range f.all {
		if c.AgentUserID == agentUserID {
			out = append(out, c)
		}
	}
	return out, nil
}

func TestCentsFormatting(t *testing.T) {
	tests := []struct {
		in   Cents
		want string
	}{
		{0, "0.00"},
		{5, "0.05"},
		{125050, "1250.50"},
		{-199, "-1.99"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.in.String())
	}

	raw, err := json.Marshal(Summary{TotalEarned: 1500, Paid: 1000, Pending: 500, Count: 2})
	require.NoError(t, err)
	assert.JSONEq(t, `{"total_earned":"15.00","paid":"10.00","pending":"5.00","count":2}`, string(raw))
}

func TestSummarizeCountsEveryStatus(t *testing.T) {
	s := Summarize([]Commission{
		{Amount: 10000, Status: StatusPaid},
		{Amount: 2550, Status: StatusPending},
		{Amount: 450, Status: StatusPending},
	})

	assert.Equal(t, Cents(13000), s.TotalEarned)
	assert.Equal(t, Cents(10000), s.Paid)
	assert.Equal(t, Cents(3000), s.Pending)
	assert.Equal(t, 3, s.Count)
}

func TestPercentageRendering(t *testing.T) {
	bp := int64(1250)
	resp := ToCommissionResponse(Commission{ID: "c1", PercentageBasisPoint: &bp})
	require.NotNil(t, resp.Percentage)
	assert.Equal(t, "12.50", *resp.Percentage)

	assert.Nil(t, ToCommissionResponse(Commission{ID: "c2"}).Percentage)
}

func TestListMineScopesToActingAgent(t *testing.T) {
	repo := &fakeRepo{all: []Commission{
		{ID: "1", AgentUserID: "agent-1", Amount: 500, Status: StatusPaid},
		{ID: "2", AgentUserID: "agent-2", Amount: 900, Status: StatusPending},
	}}
	svc := NewService(repo)

	cs, summary, err := svc.ListMine(context.Background(), core.Actor{UserID: "agent-1", Role: core.RoleAgent})
	require.NoError(t, err)
	assert.Equal(t, "agent-1", repo.listedFor)
	require.Len(t, cs, 1)
	assert.Equal(t, Cents(500), summary.Paid)

	_, _, err = svc.ListMine(context.Background(), core.Actor{UserID: "c-1", Role: core.RoleClient})
	assert.ErrorIs(t, err, core.ErrForbidden)
}

func TestListAllRequiresAdmin(t *testing.T) {
	svc := NewService(&fakeRepo{all: []Commission{{ID: "1"}}})

	cs, err := svc.ListAll(context.Background(), core.Actor{UserID: "a", Role: core.RoleAdmin})
	require.NoError(t, err)
	assert.Len(t, cs, 1)

	_, err = svc.ListAll(context.Background(), core.Actor{UserID: "agent-1", Role: core.RoleAgent})
	assert.ErrorIs(t, err, core.ErrForbidden)
}

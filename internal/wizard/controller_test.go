// AngelaMos | 2026
// controller_test.go

package wizard

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aurafinsurance/insurance-backend/internal/policy"
)

const (
	goldID   = "11111111-1111-4111-8111-111111111111"
	silverID = "22222222-2222-4222-8222-222222222222"
)

func strPtr(s string) *string { return &s }

func testCatalog() []policy.Policy {
	return []policy.Policy{
		{ID: goldID, Name: "Health Gold", PolicyType: "Health", Provider: strPtr("A"), IsActive: true},
		{ID: silverID, Name: "Motor Silver", PolicyType: "Motor", Provider: strPtr("B"), IsActive: true},
	}
}

func newQuoteController() *Controller {
	return NewController(QuoteDefinition(testCatalog()), &State{ID: "draft", Wizard: QuoteWizard})
}

func mustSet(t *testing.T, c *Controller, field, value string) {
	t.Helper()
	require.NoError(t, c.Set(field, value))
}

func fillQuote(t *testing.T, c *Controller) {
	t.Helper()
	mustSet(t, c, FieldServiceProvider, "A")
	mustSet(t, c, FieldInsuranceType, "Health")
	mustSet(t, c, FieldSelectedPolicyID, goldID)
	mustSet(t, c, FieldFullName, "Jane Doe")
	mustSet(t, c, FieldEmail, "jane@x.com")
	mustSet(t, c, FieldPhone, "0712345678")
}

func TestAdvanceGatedOnStepCompleteness(t *testing.T) {
	c := newQuoteController()

	assert.False(t, c.CanAdvance())
	assert.False(t, c.Advance())
	assert.Equal(t, 0, c.State().Step)

	mustSet(t, c, FieldServiceProvider, "A")
	assert.True(t, c.Advance())
	assert.Equal(t, 1, c.State().Step)
	assert.Equal(t, KindType, c.Current().Kind)
}

func TestPolicyStepIsOptional(t *testing.T) {
	c := newQuoteController()
	mustSet(t, c, FieldServiceProvider, "A")
	require.True(t, c.Advance())
	mustSet(t, c, FieldInsuranceType, "Health")
	require.True(t, c.Advance())

	assert.Equal(t, KindPolicy, c.Current().Kind)
	assert.True(t, c.Advance())
	assert.Equal(t, KindDetails, c.Current().Kind)
}

func TestDetailsStepRequiresNameEmailPhone(t *testing.T) {
	c := newQuoteController()
	c.State().Step = 3
	mustSet(t, c, FieldFullName, "Jane Doe")
	mustSet(t, c, FieldEmail, "jane@x.com")
	assert.False(t, c.CanAdvance())

	mustSet(t, c, FieldPhone, "0712345678")
	assert.True(t, c.CanAdvance())
}

func TestAdvanceClampsAtLastStep(t *testing.T) {
	c := newQuoteController()
	fillQuote(t, c)

	for c.Advance() {
	}

	assert.True(t, c.IsLast())
	assert.Equal(t, 4, c.State().Step)
	assert.False(t, c.Advance())
	assert.Equal(t, 4, c.State().Step)
}

func TestRetreatStopsAtFirstStep(t *testing.T) {
	c := newQuoteController()
	mustSet(t, c, FieldServiceProvider, "A")
	require.True(t, c.Advance())

	c.Retreat()
	c.Retreat()
	assert.Equal(t, 0, c.State().Step)
}

func TestProviderChangeClearsDownstreamSelections(t *testing.T) {
	c := newQuoteController()
	fillQuote(t, c)
	require.Equal(t, "Health Gold", c.State().Fields.Get(FieldSelectedPolicyName))

	mustSet(t, c, FieldServiceProvider, "B")

	f := c.State().Fields
	assert.Equal(t, "B", f.Get(FieldServiceProvider))
	assert.False(t, f.Has(FieldInsuranceType))
	assert.False(t, f.Has(FieldSelectedPolicyID))
	assert.False(t, f.Has(FieldSelectedPolicyName))
	assert.Equal(t, "Jane Doe", f.Get(FieldFullName))
}

func TestTypeChangeClearsPolicyOnly(t *testing.T) {
	active := append(testCatalog(), policy.Policy{
		ID: "33333333-3333-4333-8333-333333333333", Name: "A Motor", PolicyType: "Motor", Provider: strPtr("A"),
	})
	c := NewController(QuoteDefinition(active), &State{Wizard: QuoteWizard})
	mustSet(t, c, FieldServiceProvider, "A")
	mustSet(t, c, FieldInsuranceType, "Health")
	mustSet(t, c, FieldSelectedPolicyID, goldID)

	mustSet(t, c, FieldInsuranceType, "Motor")

	f := c.State().Fields
	assert.Equal(t, "A", f.Get(FieldServiceProvider))
	assert.False(t, f.Has(FieldSelectedPolicyID))
	assert.False(t, f.Has(FieldSelectedPolicyName))
}

func TestSettingSameValueKeepsDownstream(t *testing.T) {
	c := newQuoteController()
	fillQuote(t, c)

	mustSet(t, c, FieldServiceProvider, " A ")
	assert.Equal(t, goldID, c.State().Fields.Get(FieldSelectedPolicyID))
}

func TestSetRejectsValuesOutsideCatalog(t *testing.T) {
	c := newQuoteController()

	err := c.Set(FieldServiceProvider, "Z")
	require.ErrorIs(t, err, ErrInvalidValue)

	mustSet(t, c, FieldServiceProvider, "A")
	require.ErrorIs(t, c.Set(FieldInsuranceType, "Motor"), ErrInvalidValue)

	mustSet(t, c, FieldInsuranceType, "Health")
	require.ErrorIs(t, c.Set(FieldSelectedPolicyID, silverID), ErrInvalidValue)
	assert.False(t, c.State().Fields.Has(FieldSelectedPolicyID))
}

func TestSetRejectsUnknownField(t *testing.T) {
	c := newQuoteController()
	require.ErrorIs(t, c.Set("favourite_colour", "blue"), ErrUnknownField)
	require.ErrorIs(t, c.Set(FieldSelectedPolicyName, "forged"), ErrUnknownField)
}

func TestApplySetsUpstreamFirst(t *testing.T) {
	c := newQuoteController()

	err := c.Apply(Patch{
		FieldSelectedPolicyID: strPtr(goldID),
		FieldInsuranceType:    strPtr("Health"),
		FieldServiceProvider:  strPtr("A"),
	})
	require.NoError(t, err)

	assert.Equal(t, "Health Gold", c.State().Fields.Get(FieldSelectedPolicyName))
}

func TestApplyNilClearsField(t *testing.T) {
	c := newQuoteController()
	fillQuote(t, c)

	require.NoError(t, c.Apply(Patch{FieldInsuranceType: nil}))

	f := c.State().Fields
	assert.False(t, f.Has(FieldInsuranceType))
	assert.False(t, f.Has(FieldSelectedPolicyID))
	assert.True(t, f.Has(FieldServiceProvider))
}

func TestSubmitOnlyFromTerminalStep(t *testing.T) {
	c := newQuoteController()
	fillQuote(t, c)

	calls := 0
	submit := func(_ context.Context, _ Fields) (string, error) {
		calls++
		return "quote-1", nil
	}

	require.ErrorIs(t, c.Submit(context.Background(), submit), ErrNotTerminal)
	assert.Zero(t, calls)

	for c.Advance() {
	}
	require.NoError(t, c.Submit(context.Background(), submit))
	assert.Equal(t, 1, calls)
	assert.True(t, c.State().Submitted)
	assert.Equal(t, "quote-1", c.State().RecordID)

	require.ErrorIs(t, c.Submit(context.Background(), submit), ErrSubmitted)
	require.ErrorIs(t, c.Set(FieldFullName, "Someone Else"), ErrSubmitted)
}

func TestSubmitRechecksEveryStep(t *testing.T) {
	c := newQuoteController()
	fillQuote(t, c)
	for c.Advance() {
	}

	// Clearing a required field after reaching review must block submit.
	mustSet(t, c, FieldPhone, "")

	err := c.Submit(context.Background(), func(_ context.Context, _ Fields) (string, error) {
		t.Fatal("submitter must not be called")
		return "", nil
	})
	require.ErrorIs(t, err, ErrIncomplete)
	assert.False(t, c.State().Submitted)
}

func TestSubmitFailurePreservesFields(t *testing.T) {
	c := newQuoteController()
	fillQuote(t, c)
	for c.Advance() {
	}
	before := c.State().Fields.Clone()

	err := c.Submit(context.Background(), func(_ context.Context, _ Fields) (string, error) {
		return "", errors.New("store unavailable")
	})
	require.ErrorIs(t, err, ErrSubmitFailed)
	assert.False(t, c.State().Submitted)
	assert.Equal(t, before, c.State().Fields)
}

func TestNewControllerClampsStep(t *testing.T) {
	c := NewController(AgentDefinition(), &State{Step: 42})
	assert.True(t, c.IsLast())

	c = NewController(AgentDefinition(), &State{Step: -3})
	assert.Equal(t, 0, c.State().Step)
	assert.NotNil(t, c.State().Fields)
}

func TestAgentWizardValidation(t *testing.T) {
	c := NewController(AgentDefinition(), &State{Wizard: AgentWizard})

	require.ErrorIs(t, c.Set(FieldEmail, "not-an-email"), ErrInvalidValue)
	require.ErrorIs(t, c.Set(FieldExperienceYears, "-1"), ErrInvalidValue)
	require.ErrorIs(t, c.Set(FieldIDDocumentRef, "../../etc/passwd"), ErrInvalidValue)

	mustSet(t, c, FieldFullName, "Ravi Kumar")
	mustSet(t, c, FieldEmail, "ravi@example.com")
	mustSet(t, c, FieldPhone, "9876543210")
	mustSet(t, c, FieldExperienceYears, "4")

	steps := 0
	for c.Advance() {
		steps++
	}
	assert.Equal(t, 3, steps)
	assert.Equal(t, KindReview, c.Current().Kind)

	req := BuildApplication(c.State().Fields)
	assert.Equal(t, "Ravi Kumar", req.FullName)
	require.NotNil(t, req.ExperienceYears)
	assert.Equal(t, 4, *req.ExperienceYears)
	assert.Nil(t, req.BankName)
}

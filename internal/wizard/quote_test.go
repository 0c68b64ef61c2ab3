// AngelaMos | 2026
// quote_test.go

package wizard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuoteOptionsFollowSelection(t *testing.T) {
	active := testCatalog()

	opts := QuoteOptionsFor(active, Fields{})
	assert.Equal(t, []string{"A", "B"}, opts.Providers)
	assert.Empty(t, opts.Types)
	assert.Empty(t, opts.Policies)

	opts = QuoteOptionsFor(active, Fields{FieldServiceProvider: "A"})
	assert.Equal(t, []string{"Health"}, opts.Types)

	opts = QuoteOptionsFor(active, Fields{
		FieldServiceProvider: "A",
		FieldInsuranceType:   "Health",
	})
	require.Len(t, opts.Policies, 1)
	assert.Equal(t, goldID, opts.Policies[0].ID)
}

func TestQuoteWizardAcceptsAnyProviderWithEmptyCatalog(t *testing.T) {
	c := NewController(QuoteDefinition(nil), &State{Wizard: QuoteWizard})

	mustSet(t, c, FieldServiceProvider, "Any Insurer")
	mustSet(t, c, FieldInsuranceType, "Health Insurance")

	opts := QuoteOptionsFor(nil, c.State().Fields)
	assert.Contains(t, opts.Types, "Health Insurance")
	assert.Empty(t, opts.Policies)
}

func TestBuildQuote(t *testing.T) {
	req := BuildQuote(Fields{
		FieldServiceProvider:  "A",
		FieldInsuranceType:    "Health",
		FieldSelectedPolicyID: goldID,
		FieldFullName:         "Jane Doe",
		FieldEmail:            "jane@x.com",
		FieldPhone:            "0712345678",
		FieldAge:              "34",
		FieldMessage:          "  ",
	})

	assert.Equal(t, "A", req.ServiceProvider)
	require.NotNil(t, req.PolicyID)
	assert.Equal(t, goldID, *req.PolicyID)
	require.NotNil(t, req.Age)
	assert.Equal(t, 34, *req.Age)
	assert.Nil(t, req.Message)
	assert.Nil(t, req.CoverageAmount)
}

// AngelaMos | 2026
// transition_test.go

package review

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		kind     Kind
		from, to string
		code     string
	}{
		{KindContact, "pending", "read", ""},
		{KindContact, "read", "responded", ""},
		{KindContact, "responded", "responded", ""},
		{KindContact, "read", "pending", "INVALID_TRANSITION"},
		{KindContact, "responded", "pending", "INVALID_TRANSITION"},
		{KindContact, "responded", "read", "INVALID_TRANSITION"},
		{KindQuote, "pending", "responded", ""},
		{KindQuote, "responded", "pending", "INVALID_TRANSITION"},
		{KindApplication, "pending", "approved", ""},
		{KindApplication, "pending", "rejected", ""},
		{KindApplication, "approved", "rejected", "ALREADY_DECIDED"},
		{KindApplication, "rejected", "approved", "ALREADY_DECIDED"},
		{Kind("policy"), "a", "b", "UNKNOWN_KIND"},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind)+"/"+tt.from+"->"+tt.to, func(t *testing.T) {
			err := CanTransition(tt.kind, tt.from, tt.to)
			if tt.code == "" {
				require.NoError(t, err)
				return
			}

			var transErr *TransitionError
			require.ErrorAs(t, err, &transErr)
			assert.Equal(t, tt.code, transErr.Code)
		})
	}
}

// AngelaMos | 2026
// message.go

package quote

import (
	"strings"
)

const policyPrefix = "Policy: "

// ComposeMessage folds a selected policy name into the free-text message
// stored on the quote. Without a policy the trimmed text is kept as is,
// and empty text becomes nil.
func ComposeMessage(policyName, message string) *string {
	policyName = strings.TrimSpace(policyName)
	message = strings.TrimSpace(message)

	if policyName != "" {
		composed := policyPrefix + policyName
		if message != "" {
			composed += " | " + message
		}
		return &composed
	}

	if message == "" {
		return nil
	}
	return &message
}

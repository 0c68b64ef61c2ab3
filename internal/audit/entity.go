// AngelaMos | 2026
// entity.go

package audit

import (
	"encoding/json"
	"time"
)

const (
	ActionRoleChanged         = "role_changed"
	ActionAccountBanned       = "account_banned"
	ActionAccountUnbanned     = "account_unbanned"
	ActionUserProvisioned     = "user_provisioned"
	ActionApplicationDecided  = "application_decided"
	ActionContactRead         = "contact_read"
	ActionContactResponded    = "contact_responded"
	ActionQuoteResponded      = "quote_responded"
	ActionPolicyCreated       = "policy_created"
	ActionPolicyStatusChanged = "policy_status_changed"
)

const (
	TargetUser        = "user"
	TargetApplication = "agent_application"
	TargetContact     = "contact_message"
	TargetQuote       = "quote_request"
	TargetPolicy      = "insurance_policy"
)

type Entry struct {
	ID         string          `db:"id"          json:"id"`
	ActorID    *string         `db:"actor_id"    json:"actor_id,omitempty"`
	Action     string          `db:"action"      json:"action"`
	TargetType string          `db:"target_type" json:"target_type"`
	TargetID   string          `db:"target_id"   json:"target_id"`
	Details    json.RawMessage `db:"details"     json:"details"`
	CreatedAt  time.Time       `db:"created_at"  json:"created_at"`
}

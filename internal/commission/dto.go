// AngelaMos | 2026
// dto.go

package commission

import (
	"fmt"
	"time"
)

type CommissionResponse struct {
	ID           string     `json:"id"`
	AgentUserID  string     `json:"agent_user_id"`
	CustomerName *string    `json:"customer_name"`
	Amount       Cents      `json:"commission_amount"`
	Percentage   *string    `json:"commission_percentage"`
	PolicyID     *string    `json:"policy_id"`
	PolicyName   *string    `json:"policy_name"`
	Status       string     `json:"status"`
	PaidAt       *time.Time `json:"paid_at"`
	CreatedAt    time.Time  `json:"created_at"`
}

type CommissionListResponse struct {
	Commissions []CommissionResponse `json:"commissions"`
	Summary     *Summary             `json:"summary,omitempty"`
}

func ToCommissionResponse(c Commission) CommissionResponse {
	resp := CommissionResponse{
		ID:           c.ID,
		AgentUserID:  c.AgentUserID,
		CustomerName: c.CustomerName,
		Amount:       c.Amount,
		PolicyID:     c.PolicyID,
		PolicyName:   c.PolicyName,
		Status:       c.Status,
		PaidAt:       c.PaidAt,
		CreatedAt:    c.CreatedAt,
	}

	if c.PercentageBasisPoint != nil {
		bp := *c.PercentageBasisPoint
		pct := fmt.Sprintf("%d.%02d", bp/100, bp%100)
		resp.Percentage = &pct
	}

	return resp
}

func ToCommissionListResponse(cs []Commission, summary *Summary) CommissionListResponse {
	out := make([]CommissionResponse, len(cs))
	for i, c := range cs {
		out[i] = ToCommissionResponse(c)
	}
	return CommissionListResponse{Commissions: out, Summary: summary}
}

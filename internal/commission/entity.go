// AngelaMos | 2026
// entity.go

package commission

import (
	"fmt"
	"time"
)

const (
	StatusPending = "pending"
	StatusPaid    = "paid"
)

// Cents is a money amount in hundredths of a rupee.
type Cents int64

func (c Cents) String() string {
	sign := ""
	if c < 0 {
		sign = "-"
		c = -c
	}
	return fmt.Sprintf("%s%d.%02d", sign, c/100, c%100)
}

func (c Cents) MarshalJSON() ([]byte, error) {
	return []byte(`"` + c.String() + `"`), nil
}

type Commission struct {
	ID                   string     `db:"id"`
	AgentUserID          string     `db:"agent_user_id"`
	CustomerName         *string    `db:"customer_name"`
	Amount               Cents      `db:"amount_cents"`
	PercentageBasisPoint *int64     `db:"percentage_bp"`
	PolicyID             *string    `db:"policy_id"`
	PolicyName           *string    `db:"policy_name"`
	Status               string     `db:"status"`
	PaidAt               *time.Time `db:"paid_at"`
	CreatedAt            time.Time  `db:"created_at"`
}

type Summary struct {
	TotalEarned Cents `json:"total_earned"`
	Paid        Cents `json:"paid"`
	Pending     Cents `json:"pending"`
	Count       int   `json:"count"`
}

// Summarize totals commissions. Total earned counts every commission
// regardless of payout status.
func Summarize(cs []Commission) Summary {
	s := Summary{Count: len(cs)}
	for _, c := range cs {
		s.TotalEarned += c.Amount
		if c.Status == StatusPaid {
			s.Paid += c.Amount
		} else {
			s.Pending += c.Amount
		}
	}
	return s
}

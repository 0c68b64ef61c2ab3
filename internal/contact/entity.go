// AngelaMos | 2026
// entity.go

package contact

import (
	"time"
)

const (
	StatusPending   = "pending"
	StatusRead      = "read"
	StatusResponded = "responded"
)

type Message struct {
	ID          string     `db:"id"`
	Name        string     `db:"name"`
	Email       string     `db:"email"`
	Phone       *string    `db:"phone"`
	Subject     *string    `db:"subject"`
	Message     string     `db:"message"`
	Status      string     `db:"status"`
	ReadAt      *time.Time `db:"read_at"`
	RespondedAt *time.Time `db:"responded_at"`
	RespondedBy *string    `db:"responded_by"`
	CreatedAt   time.Time  `db:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at"`
}

// AngelaMos | 2026
// entity.go

package agentapp

import (
	"time"
)

const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

type Application struct {
	ID              string     `db:"id"`
	FullName        string     `db:"full_name"`
	Email           string     `db:"email"`
	Phone           string     `db:"phone"`
	DateOfBirth     *string    `db:"date_of_birth"`
	Address         *string    `db:"address"`
	City            *string    `db:"city"`
	State           *string    `db:"state"`
	Pincode         *string    `db:"pincode"`
	ExperienceYears *int       `db:"experience_years"`
	PreviousCompany *string    `db:"previous_company"`
	LicenseNumber   *string    `db:"license_number"`
	PANNumber       *string    `db:"pan_number"`
	BankName        *string    `db:"bank_name"`
	AccountNumber   *string    `db:"account_number"`
	IFSCCode        *string    `db:"ifsc_code"`
	IDDocumentRef   *string    `db:"id_document_ref"`
	Status          string     `db:"status"`
	ApprovedBy      *string    `db:"approved_by"`
	ApprovedAt      *time.Time `db:"approved_at"`
	DecisionNote    *string    `db:"decision_note"`
	AgentUserID     *string    `db:"agent_user_id"`
	CreatedAt       time.Time  `db:"created_at"`
	UpdatedAt       time.Time  `db:"updated_at"`
}

func (a *Application) IsDecided() bool {
	return a.Status == StatusApproved || a.Status == StatusRejected
}

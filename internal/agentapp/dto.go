// AngelaMos | 2026
// dto.go

package agentapp

import (
	"time"
)

type SubmitRequest struct {
	FullName        string  `json:"full_name"        validate:"required,max=200"`
	Email           string  `json:"email"            validate:"required,contact_email,max=255"`
	Phone           string  `json:"phone"            validate:"required,max=30"`
	DateOfBirth     *string `json:"date_of_birth"    validate:"omitempty,max=20"`
	Address         *string `json:"address"          validate:"omitempty,max=500"`
	City            *string `json:"city"             validate:"omitempty,max=100"`
	State           *string `json:"state"            validate:"omitempty,max=100"`
	Pincode         *string `json:"pincode"          validate:"omitempty,max=20"`
	ExperienceYears *int    `json:"experience_years" validate:"omitempty,gte=0,max=80"`
	PreviousCompany *string `json:"previous_company" validate:"omitempty,max=200"`
	LicenseNumber   *string `json:"license_number"   validate:"omitempty,max=100"`
	PANNumber       *string `json:"pan_number"       validate:"omitempty,max=20"`
	BankName        *string `json:"bank_name"        validate:"omitempty,max=200"`
	AccountNumber   *string `json:"account_number"   validate:"omitempty,max=50"`
	IFSCCode        *string `json:"ifsc_code"        validate:"omitempty,max=20"`
	IDDocumentRef   *string `json:"id_document_ref"  validate:"omitempty,max=100"`
}

type SubmitResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

type ApplicationResponse struct {
	ID              string     `json:"id"`
	FullName        string     `json:"full_name"`
	Email           string     `json:"email"`
	Phone           string     `json:"phone"`
	DateOfBirth     *string    `json:"date_of_birth"`
	Address         *string    `json:"address"`
	City            *string    `json:"city"`
	State           *string    `json:"state"`
	Pincode         *string    `json:"pincode"`
	ExperienceYears *int       `json:"experience_years"`
	PreviousCompany *string    `json:"previous_company"`
	LicenseNumber   *string    `json:"license_number"`
	PANNumber       *string    `json:"pan_number"`
	BankName        *string    `json:"bank_name"`
	AccountNumber   *string    `json:"account_number"`
	IFSCCode        *string    `json:"ifsc_code"`
	HasIDDocument   bool       `json:"has_id_document"`
	Status          string     `json:"status"`
	Decided         bool       `json:"decided"`
	ApprovedBy      *string    `json:"approved_by"`
	ApprovedAt      *time.Time `json:"approved_at"`
	DecisionNote    *string    `json:"decision_note"`
	AgentUserID     *string    `json:"agent_user_id"`
	CreatedAt       time.Time  `json:"created_at"`
}

type ApplicationListResponse struct {
	Applications []ApplicationResponse `json:"applications"`
}

func ToApplicationResponse(a Application) ApplicationResponse {
	return ApplicationResponse{
		ID:              a.ID,
		FullName:        a.FullName,
		Email:           a.Email,
		Phone:           a.Phone,
		DateOfBirth:     a.DateOfBirth,
		Address:         a.Address,
		City:            a.City,
		State:           a.State,
		Pincode:         a.Pincode,
		ExperienceYears: a.ExperienceYears,
		PreviousCompany: a.PreviousCompany,
		LicenseNumber:   a.LicenseNumber,
		PANNumber:       a.PANNumber,
		BankName:        a.BankName,
		AccountNumber:   a.AccountNumber,
		IFSCCode:        a.IFSCCode,
		HasIDDocument:   a.IDDocumentRef != nil,
		Status:          a.Status,
		Decided:         a.IsDecided(),
		ApprovedBy:      a.ApprovedBy,
		ApprovedAt:      a.ApprovedAt,
		DecisionNote:    a.DecisionNote,
		AgentUserID:     a.AgentUserID,
		CreatedAt:       a.CreatedAt,
	}
}

func ToApplicationListResponse(apps []Application) ApplicationListResponse {
	out := make([]ApplicationResponse, len(apps))
	for i, a := range apps {
		out[i] = ToApplicationResponse(a)
	}
	return ApplicationListResponse{Applications: out}
}

// AngelaMos | 2026
// agent.go

package wizard

import (
	"fmt"
	"strconv"

	"github.com/aurafinsurance/insurance-backend/internal/agentapp"
	"github.com/aurafinsurance/insurance-backend/internal/core"
	"github.com/aurafinsurance/insurance-backend/internal/document"
)

const (
	AgentWizard = "agent"

	FieldDateOfBirth     = "date_of_birth"
	FieldAddress         = "address"
	FieldCity            = "city"
	FieldState           = "state"
	FieldPincode         = "pincode"
	FieldIDDocumentRef   = "id_document_ref"
	FieldExperienceYears = "experience_years"
	FieldPreviousCompany = "previous_company"
	FieldLicenseNumber   = "license_number"
	FieldPANNumber       = "pan_number"
	FieldBankName        = "bank_name"
	FieldAccountNumber   = "account_number"
	FieldIFSCCode        = "ifsc_code"
)

func AgentDefinition() *Definition {
	return &Definition{
		Name: AgentWizard,
		Steps: []Step{
			{
				Kind:     KindPersonal,
				Title:    "Personal Information",
				Required: []string{FieldFullName, FieldEmail, FieldPhone},
				Optional: []string{
					FieldDateOfBirth,
					FieldAddress,
					FieldCity,
					FieldState,
					FieldPincode,
					FieldIDDocumentRef,
				},
			},
			{
				Kind:  KindExperience,
				Title: "Experience",
				Optional: []string{
					FieldExperienceYears,
					FieldPreviousCompany,
					FieldLicenseNumber,
					FieldPANNumber,
				},
			},
			{
				Kind:     KindBank,
				Title:    "Bank Details",
				Optional: []string{FieldBankName, FieldAccountNumber, FieldIFSCCode},
			},
			{Kind: KindReview, Title: "Review"},
		},
		Validate: validateAgentField,
	}
}

func validateAgentField(field, value string, _ Fields) (map[string]string, error) {
	switch field {
	case FieldEmail:
		if !core.IsValidEmail(value) {
			return nil, fmt.Errorf("%w: email must be a valid email address", ErrInvalidValue)
		}
	case FieldExperienceYears:
		years, err := strconv.Atoi(value)
		if err != nil || years < 0 {
			return nil, fmt.Errorf("%w: experience_years must be a whole number", ErrInvalidValue)
		}
	case FieldIDDocumentRef:
		if !document.ValidRef(value) {
			return nil, fmt.Errorf("%w: id_document_ref is not a document reference", ErrInvalidValue)
		}
	}
	return nil, nil
}

func BuildApplication(f Fields) agentapp.SubmitRequest {
	req := agentapp.SubmitRequest{
		FullName:        f.Get(FieldFullName),
		Email:           f.Get(FieldEmail),
		Phone:           f.Get(FieldPhone),
		DateOfBirth:     optionalField(f, FieldDateOfBirth),
		Address:         optionalField(f, FieldAddress),
		City:            optionalField(f, FieldCity),
		State:           optionalField(f, FieldState),
		Pincode:         optionalField(f, FieldPincode),
		PreviousCompany: optionalField(f, FieldPreviousCompany),
		LicenseNumber:   optionalField(f, FieldLicenseNumber),
		PANNumber:       optionalField(f, FieldPANNumber),
		BankName:        optionalField(f, FieldBankName),
		AccountNumber:   optionalField(f, FieldAccountNumber),
		IFSCCode:        optionalField(f, FieldIFSCCode),
		IDDocumentRef:   optionalField(f, FieldIDDocumentRef),
	}

	if years, err := strconv.Atoi(f.Get(FieldExperienceYears)); err == nil {
		req.ExperienceYears = &years
	}

	return req
}

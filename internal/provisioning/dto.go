// AngelaMos | 2026
// dto.go

package provisioning

type CreateUserRequest struct {
	Email    string `json:"email"    validate:"required,max=255"`
	FullName string `json:"fullName" validate:"required,max=200"`
	Role     string `json:"role"     validate:"required,oneof=client agent admin"`
}

type CreateAgentRequest struct {
	Email              string `json:"email"              validate:"required,max=255"`
	FullName           string `json:"fullName"           validate:"required,max=200"`
	AgentApplicationID string `json:"agentApplicationId" validate:"omitempty,uuid"`
}

// DeactivateRequest carries either the admin form (target_user_id and
// action) or the self-service form (user_id).
type DeactivateRequest struct {
	TargetUserID string `json:"target_user_id" validate:"omitempty,uuid"`
	Action       string `json:"action"         validate:"omitempty,oneof=deactivate activate"`
	UserID       string `json:"user_id"        validate:"omitempty,uuid"`
}

type Result struct {
	Success         bool   `json:"success"`
	UserID          string `json:"userId"`
	Message         string `json:"message"`
	Warning         string `json:"warning,omitempty"`
	CredentialsSent bool   `json:"-"`
}

type DeactivateResponse struct {
	Success bool   `json:"success"`
	Action  string `json:"action"`
}

// AngelaMos | 2026
// dto.go

package review

type DecisionRequest struct {
	Decision string `json:"decision" validate:"required,oneof=approved rejected"`
	Note     string `json:"note"     validate:"max=2000"`
}

type ReplyRequest struct {
	Message string `json:"message" validate:"required,max=10000"`
}

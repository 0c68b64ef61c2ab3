// AngelaMos | 2026
// transition.go

package review

import (
	"fmt"
)

type Kind string

const (
	KindContact     Kind = "contact"
	KindQuote       Kind = "quote"
	KindApplication Kind = "application"
)

// transitions lists the allowed status moves per record kind. A contact
// or quote may be answered again after it was already answered.
var transitions = map[Kind]map[string][]string{
	KindContact: {
		"pending":   {"read", "responded"},
		"read":      {"responded"},
		"responded": {"responded"},
	},
	KindQuote: {
		"pending":   {"responded"},
		"responded": {"responded"},
	},
	KindApplication: {
		"pending": {"approved", "rejected"},
	},
}

type TransitionError struct {
	Code    string
	Message string
}

func (e *TransitionError) Error() string {
	return e.Message
}

// CanTransition reports whether a record of kind may move from one
// status to another.
func CanTransition(kind Kind, from, to string) error {
	byStatus, ok := transitions[kind]
	if !ok {
		return &TransitionError{
			Code:    "UNKNOWN_KIND",
			Message: fmt.Sprintf("unknown record kind %q", kind),
		}
	}

	for _, allowed := range byStatus[from] {
		if allowed == to {
			return nil
		}
	}

	if kind == KindApplication && from != "pending" {
		return &TransitionError{
			Code:    "ALREADY_DECIDED",
			Message: fmt.Sprintf("application has already been %s", from),
		}
	}

	return &TransitionError{
		Code:    "INVALID_TRANSITION",
		Message: fmt.Sprintf("cannot move %s from %s to %s", kind, from, to),
	}
}

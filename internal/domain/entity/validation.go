// internal/domain/entity/validation.go
package entity

import (
	"strings"
)

// ViolationKind classifies why a field failed validation
type ViolationKind string

const (
	ViolationMissing     ViolationKind = "missing"
	ViolationWrongType   ViolationKind = "wrong_type"
	ViolationInvalidEnum ViolationKind = "invalid_enum_value"
	ViolationOutOfRange  ViolationKind = "out_of_range"
)

// Violation is a single failed constraint on one payload field
type Violation struct {
	Field   string        `json:"field"`
	Kind    ViolationKind `json:"kind"`
	Message string        `json:"message"`
}

// ValidationErrors holds every violation found in a payload, in field order
type ValidationErrors []Violation

func (e ValidationErrors) Error() string {
	parts := make([]string, 0, len(e))
	for _, v := range e {
		parts = append(parts, v.Field+": "+v.Message)
	}
	return "mission validation failed: " + strings.Join(parts, "; ")
}

package schema

import (
	"fmt"
	"strings"
)

// DefinitionError reports a broken schema definition. It is only produced
// at construction time, never during resolution.
type DefinitionError struct {
	Field  string
	Reason string
}

func (e *DefinitionError) Error() string {
	return fmt.Sprintf("schema definition: field %s: %s", e.Field, e.Reason)
}

// ErrorKind identifies the class of a resolution failure.
type ErrorKind string

const (
	ErrMissingRequired ErrorKind = "missing_required"
	ErrTypeMismatch    ErrorKind = "type_mismatch"
)

// FieldError is one user-input problem found during resolution. Field is
// the dotted path of the offending field (e.g. "tls.clientKey").
type FieldError struct {
	Field  string    `json:"field"`
	Kind   ErrorKind `json:"kind"`
	Detail string    `json:"detail,omitempty"`
}

func (e FieldError) Error() string {
	if e.Kind == ErrMissingRequired {
		return fmt.Sprintf("%s is required", e.Field)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Detail)
}

// Errors aggregates every problem from one resolution pass so callers can
// report all of them at once.
type Errors []FieldError

func (e Errors) Error() string {
	msgs := make([]string, len(e))
	for i, fe := range e {
		msgs[i] = fe.Error()
	}
	return strings.Join(msgs, "; ")
}

// Messages returns the human-readable form of each error, in order.
func (e Errors) Messages() []string {
	msgs := make([]string, len(e))
	for i, fe := range e {
		msgs[i] = fe.Error()
	}
	return msgs
}

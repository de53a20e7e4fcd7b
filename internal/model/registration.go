package model

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// RegisterInput carries the untrusted fields of a registration
// submission. All values are caller-supplied strings.
type RegisterInput struct {
	Name                 string
	LastName             string
	Email                string
	Password             string
	PasswordConfirmation string
	AcceptTerms          bool
}

// RegistrationOutcome is returned on successful registration. The
// presentation layer decides how to render it.
type RegistrationOutcome struct {
	AccountID uuid.UUID
	Message   string
}

// Outward messages for the two registration variants.
const (
	MsgAccountCreatedConfirm = "Your account has been created. Check your email to confirm it."
	MsgAccountCreatedLogin   = "Your account has been created. You may now log in."
)

// ValidationFailure maps field names to ordered human-readable
// violation messages. It is user-correctable data, not a system fault.
type ValidationFailure struct {
	Fields map[string][]string
}

// Error implements the error interface.
func (v *ValidationFailure) Error() string {
	names := make([]string, 0, len(v.Fields))
	for field := range v.Fields {
		names = append(names, field)
	}
	return fmt.Sprintf("validation failed: %s", strings.Join(names, ", "))
}

// Add appends a violation message for a field.
func (v *ValidationFailure) Add(field, message string) {
	if v.Fields == nil {
		v.Fields = map[string][]string{}
	}
	v.Fields[field] = append(v.Fields[field], message)
}

// Empty reports whether no violations were collected.
func (v *ValidationFailure) Empty() bool {
	return len(v.Fields) == 0
}

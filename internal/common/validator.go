package common

import (
	"fmt"
	"unicode/utf8"

	"github.com/google/uuid"
)

type ValidationError struct {
	Errors map[string]string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("validation errors: %+v", e.Errors)
}

type Validator struct {
	Errors map[string]string
}

func NewValidator() *Validator {
	return &Validator{Errors: make(map[string]string)}
}

func (v *Validator) Valid() bool {
	return len(v.Errors) == 0
}

// AddError keeps the first message recorded for a field.
func (v *Validator) AddError(field, message string) {
	if _, ok := v.Errors[field]; !ok {
		v.Errors[field] = message
	}
}

func (v *Validator) Check(ok bool, field, message string) {
	if !ok {
		v.AddError(field, message)
	}
}

func (v *Validator) CheckStringLength(s string, min, max int) bool {
	n := utf8.RuneCountInString(s)
	return n >= min && n <= max
}

func (v *Validator) ValidationError() error {
	return ValidationError{Errors: v.Errors}
}

// ValidateID checks that id is a generated identifier.
func ValidateID(v *Validator, id, name string) {
	v.Check(id != "", name, "must be provided")
	_, err := uuid.Parse(id)
	v.Check(err == nil, name, "must be a valid id")
}

// NewID returns a fresh identifier. Identifiers are always generated by the writer,
// never by the store.
func NewID() string {
	return uuid.NewString()
}

// Package apperr holds the error categories shared by every domain.
package apperr

import (
	"errors"
	"sort"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// ErrValidation matches every *ValidationError through errors.Is
var ErrValidation = errors.New("validation failed")

// ValidationError carries human readable, field level messages.
// Nothing is persisted when one is returned.
type ValidationError struct {
	Messages []string
}

func NewValidationError(messages ...string) *ValidationError {
	return &ValidationError{Messages: messages}
}

func (e *ValidationError) Error() string {
	if len(e.Messages) == 0 {
		return ErrValidation.Error()
	}
	return strings.Join(e.Messages, " ")
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// AsValidation extracts the message list from err, if it is a validation error
func AsValidation(err error) ([]string, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Messages, true
	}
	return nil, false
}

// FromOzzo converts ozzo-validation output into a *ValidationError.
// validation.Errors is a map, so messages are emitted in the given field order
// (json names); fields not listed follow alphabetically.
func FromOzzo(err error, fieldOrder ...string) error {
	if err == nil {
		return nil
	}

	var errs validation.Errors
	if !errors.As(err, &errs) {
		// Internal rule error, not a user mistake
		return err
	}

	seen := make(map[string]bool, len(errs))
	messages := make([]string, 0, len(errs))

	for _, field := range fieldOrder {
		if fieldErr, ok := errs[field]; ok && fieldErr != nil {
			messages = append(messages, fieldErr.Error())
		}
		seen[field] = true
	}

	rest := make([]string, 0)
	for field := range errs {
		if !seen[field] {
			rest = append(rest, field)
		}
	}
	sort.Strings(rest)
	for _, field := range rest {
		if errs[field] != nil {
			messages = append(messages, errs[field].Error())
		}
	}

	return NewValidationError(messages...)
}

package serverutils

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

var validate = validator.New()

// ValidationError marks a request that failed validation; the error
// middleware maps it to 422.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func NewValidationError(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

func ValidateRequest(req interface{}) error {
	if err := validate.Struct(req); err != nil {
		var errs validator.ValidationErrors
		if errors.As(err, &errs) && len(errs) > 0 {
			field := errs[0]
			if field.Tag() == "required" {
				return NewValidationError("Missing required property: '%s'", lowerFirst(field.Field()))
			}
			return NewValidationError("Invalid value for property: '%s'", lowerFirst(field.Field()))
		}
		return NewValidationError("Invalid request body")
	}
	return nil
}

// ValidateSessionID checks the opaque session identifier for canonical
// UUIDv4 form.
func ValidateSessionID(sessionID string) error {
	id, err := uuid.Parse(sessionID)
	if err != nil || id.Version() != 4 || id.String() != strings.ToLower(sessionID) {
		return NewValidationError("Invalid session ID format")
	}
	return nil
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}

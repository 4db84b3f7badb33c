// Package validator wraps the go-playground/validator library for
// declarative struct validation with a stable sentinel error, so callers can
// detect validation failures with errors.Is regardless of which fields were
// at fault.
package validator

import (
	"errors"
	"fmt"

	gvalidator "github.com/go-playground/validator/v10"
)

// ErrValidationFailed is the root of every error chain returned for a failed
// validation.
var ErrValidationFailed = errors.New("struct validation failed")

var validate *gvalidator.Validate

func init() {
	validate = gvalidator.New(gvalidator.WithRequiredStructEnabled())
}

// formatError converts raw validator errors into a joined chain rooted at
// ErrValidationFailed, one formatted message per failing field. Non-validator
// errors pass through unchanged.
func formatError(err error) error {
	var validationErrors gvalidator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err
	}

	errs := []error{ErrValidationFailed}
	for _, fieldErr := range validationErrors {
		errs = append(errs, fmt.Errorf("field %q: value %q fails %q",
			fieldErr.Field(),
			fmt.Sprint(fieldErr.Value()),
			fieldErr.Tag(),
		))
	}

	return errors.Join(errs...)
}

// Validate checks the given struct against its validation tags, returning
// nil on success or a chain rooted at ErrValidationFailed otherwise.
func Validate(v any) error {
	if err := validate.Struct(v); err != nil {
		return formatError(err)
	}
	return nil
}

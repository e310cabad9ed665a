package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/velyralabs/landing/internal/errs"
)

// validate is shared: validator caches struct metadata, so one instance is
// both cheaper and safe for concurrent use.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report fields by their json name so messages and FieldError.Field match
	// what the client submitted, not the Go field name.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return strings.ToLower(fld.Name)
		}
		return name
	})

	return v
}

// Validatable is implemented by payload types that know how to validate themselves.
//
// Typical pattern:
//   - Define a struct with validator tags (`validate:"required,email"`)
//   - Implement Validate() error that calls validation.Struct(req)
//   - Return validator.ValidationErrors (or CustomValidationErrors for custom cases)
type Validatable interface {
	Validate() error
}

// Messenger is optionally implemented by a Validatable to override the generic
// messages below. Keys are "<field>.<tag>", e.g. "email.email".
type Messenger interface {
	ValidationMessages() map[string]string
}

// CustomValidationError represents a single validation issue for a specific field
// that cannot be expressed via validator tags.
type CustomValidationError struct {
	Field   string
	Message string
}

// CustomValidationErrors is a slice of custom validation errors that satisfies error.
type CustomValidationErrors []CustomValidationError

func (c CustomValidationErrors) Error() string {
	return "Validation failed"
}

// Struct runs the shared validator over a struct.
func Struct(s any) error {
	return validate.Struct(s)
}

// Check validates payload and returns a 400 *errs.HTTPError when it fails.
//
// The error's Errors hold every field error in struct declaration order and
// its Message is the first one, which is what a form shows to its user.
func Check(payload Validatable) error {
	err := payload.Validate()
	if err == nil {
		return nil
	}

	fieldErrors, ok := extractValidationError(payload, err)
	if !ok {
		// Not a validation failure (e.g. validator.InvalidValidationError): a programming error.
		return fmt.Errorf("validate %T: %w", payload, err)
	}

	first := "Validation failed"
	if len(fieldErrors) > 0 {
		first = fieldErrors[0].Error
	}
	return errs.NewBadRequestError(first, true, nil, fieldErrors)
}

func extractValidationError(payload Validatable, err error) ([]errs.FieldError, bool) {
	var custom CustomValidationErrors
	if errors.As(err, &custom) {
		fieldErrors := make([]errs.FieldError, 0, len(custom))
		for _, ce := range custom {
			fieldErrors = append(fieldErrors, errs.FieldError{Field: ce.Field, Error: ce.Message})
		}
		return fieldErrors, true
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return nil, false
	}

	var overrides map[string]string
	if m, ok := payload.(Messenger); ok {
		overrides = m.ValidationMessages()
	}

	fieldErrors := make([]errs.FieldError, 0, len(validationErrors))
	for _, fe := range validationErrors {
		field := fe.Field()

		msg, ok := overrides[field+"."+fe.Tag()]
		if !ok {
			msg = genericMessage(fe)
		}

		fieldErrors = append(fieldErrors, errs.FieldError{
			Field: field,
			Error: msg,
		})
	}

	return fieldErrors, true
}

// genericMessage is the fallback wording for a failed tag.
func genericMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"

	case "min":
		// For strings min is a length, for numbers a value.
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at least %s characters", fe.Param())
		}
		return fmt.Sprintf("must be at least %s", fe.Param())

	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must not exceed %s characters", fe.Param())
		}
		return fmt.Sprintf("must not exceed %s", fe.Param())

	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())

	case "email":
		return "must be a valid email address"

	default:
		if fe.Param() != "" {
			return fmt.Sprintf("%s: %s:%s", fe.Field(), fe.Tag(), fe.Param())
		}
		return fmt.Sprintf("%s: %s", fe.Field(), fe.Tag())
	}
}

// Normalize trims surrounding whitespace from a submitted value.
func Normalize(value string) string {
	return strings.TrimSpace(value)
}

package errors

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// Sentinel errors. Concrete errors are built with NewError/WithError and marked with one of these.
var (
	ErrNotFound           = new(ErrCodeNotFound, "resource not found")
	ErrValidation         = new(ErrCodeValidation, "validation error")
	ErrHTTPClient         = new(ErrCodeHTTPClient, "http client error")
	ErrDatabase           = new(ErrCodeDatabase, "database error")
	ErrSystem             = new(ErrCodeSystemError, "system error")
	ErrConfiguration      = new(ErrCodeConfiguration, "configuration error")
	ErrArithmetic         = new(ErrCodeArithmetic, "arithmetic error")
	ErrCustomerResolution = new(ErrCodeCustomerResolution, "customer resolution error")
)

const (
	ErrCodeHTTPClient         = "http_client_error"
	ErrCodeSystemError        = "system_error"
	ErrCodeNotFound           = "not_found"
	ErrCodeValidation         = "validation_error"
	ErrCodeDatabase           = "database_error"
	ErrCodeConfiguration      = "configuration_error"
	ErrCodeArithmetic         = "arithmetic_error"
	ErrCodeCustomerResolution = "customer_resolution_error"
)

// InternalError represents a domain error
type InternalError struct {
	Code    string // Machine-readable error code
	Message string // Human-readable error message
	Op      string // Logical operation name
	Err     error  // Underlying error
}

func (e *InternalError) Error() string {
	if e.Err == nil {
		return e.DisplayError()
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Err.Error())
}

func (e *InternalError) DisplayError() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *InternalError) Unwrap() error {
	return e.Err
}

// Is implements error matching for wrapped errors
func (e *InternalError) Is(target error) bool {
	if target == nil {
		return false
	}

	t, ok := target.(*InternalError)
	if !ok {
		return errors.Is(e.Err, target)
	}

	return e.Code == t.Code
}

func new(code string, message string) *InternalError {
	return &InternalError{
		Code:    code,
		Message: message,
	}
}

// New creates a standalone InternalError, mostly for typed errors that embed one.
func New(code string, message string) *InternalError {
	return new(code, message)
}

func As(err error, target any) bool {
	return errors.As(err, target)
}

func Is(err, reference error) bool {
	return errors.Is(err, reference)
}

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsValidation checks if an error is a validation error
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}

// IsHTTPClient checks if an error is an http client error
func IsHTTPClient(err error) bool {
	return errors.Is(err, ErrHTTPClient)
}

// IsConfiguration checks if an error is a configuration error
func IsConfiguration(err error) bool {
	return errors.Is(err, ErrConfiguration)
}

// IsArithmetic checks if an error comes from an undefined calculation
func IsArithmetic(err error) bool {
	return errors.Is(err, ErrArithmetic)
}

// IsCustomerResolution checks if an error is a failed payment customer resolution
func IsCustomerResolution(err error) bool {
	return errors.Is(err, ErrCustomerResolution)
}

// IsDomain reports whether err is one of the errors that abort a pipeline run
// before anything is sent.
func IsDomain(err error) bool {
	return IsArithmetic(err) || IsCustomerResolution(err)
}

// Code returns the machine-readable code of the first sentinel err is marked with.
func Code(err error) string {
	for _, ref := range []*InternalError{
		ErrArithmetic, ErrCustomerResolution, ErrConfiguration, ErrHTTPClient,
		ErrNotFound, ErrValidation, ErrDatabase, ErrSystem,
	} {
		if errors.Is(err, ref) {
			return ref.Code
		}
	}
	return ErrCodeSystemError
}

package errors

import (
	"errors"
	"fmt"
)

// Domain errors
var (
	ErrDoctorNotFound = errors.New("doctor not found")
	ErrBatchNotFound  = errors.New("payout batch not found")
	ErrDatabaseError  = errors.New("database operation failed")
)

// BusinessError represents a business logic error
type BusinessError struct {
	Code    string
	Message string
	Err     error
}

func (e *BusinessError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *BusinessError) Unwrap() error {
	return e.Err
}

// NewBusinessError creates a new business error
func NewBusinessError(code, message string, err error) *BusinessError {
	return &BusinessError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Error codes
const (
	ErrCodeDoctorNotFound = "DOCTOR_NOT_FOUND"
	ErrCodeBatchNotFound  = "BATCH_NOT_FOUND"
	ErrCodeDatabaseError  = "DATABASE_ERROR"
)

// Wrap common errors with business context
func WrapDoctorNotFound(doctorID string) *BusinessError {
	return NewBusinessError(
		ErrCodeDoctorNotFound,
		fmt.Sprintf("Doctor with ID %s not found", doctorID),
		ErrDoctorNotFound,
	)
}

func WrapBatchNotFound(batchID string) *BusinessError {
	return NewBusinessError(
		ErrCodeBatchNotFound,
		fmt.Sprintf("Payout batch with ID %s not found", batchID),
		ErrBatchNotFound,
	)
}

func WrapDatabaseError(err error) *BusinessError {
	return NewBusinessError(
		ErrCodeDatabaseError,
		"database operation failed",
		err,
	)
}

// IsNotFound reports whether err is one of the not-found domain errors.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrDoctorNotFound) || errors.Is(err, ErrBatchNotFound)
}

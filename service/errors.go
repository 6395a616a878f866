package service

import (
	"errors"
	"fmt"
)

const (
	// ErrInternalServerError means that an internal server error has occurred.
	ErrInternalServerError = "internal_server_error"
	// ErrBadParameter means that a required field is missing or malformed.
	ErrBadParameter = "bad_parameter"
	// ErrEntityNotFound means that the sheet, user or share target does not exist.
	ErrEntityNotFound = "entity_not_found"
	// ErrForbidden means a credential or cross-domain authorization failure.
	ErrForbidden = "forbidden"
	// ErrConflict means a duplicate id or an already-shared user.
	ErrConflict = "conflict"
	// ErrInvalidCellID means the textual cell address does not parse.
	ErrInvalidCellID = "invalid_cell_id"
	// ErrInvalidRange means the textual range does not parse.
	ErrInvalidRange = "invalid_range"
	// ErrRemoteUnavailable means all retries against a dependency were exhausted.
	ErrRemoteUnavailable = "remote_unavailable"
	// ErrCycleDetected means a formula references itself, directly or mutually.
	ErrCycleDetected = "cycle_detected"
)

// ServiceError represents an error within the context of the users and
// spreadsheets services.
type ServiceError struct {
	// Code is a machine-readable code.
	Code string `json:"code,omitempty"`
	// Message is a human-readable message.
	Message string `json:"message"`
	// Inner is a wrapped error that is never shown to API consumers.
	Inner error `json:"-"`
}

// NewServiceError creates a new ServiceError.
func NewServiceError(code string, message string, inner error) *ServiceError {
	return &ServiceError{
		Code:    code,
		Message: message,
		Inner:   inner,
	}
}

func (e ServiceError) Error() string {
	if e.Inner != nil {
		return fmt.Sprintf("%s %s: %v", e.Code, e.Message, e.Inner)
	}

	return fmt.Sprintf("%s %s", e.Code, e.Message)
}

// Unwrap the error returning the error's reason.
func (e ServiceError) Unwrap() error {
	return e.Inner
}

func NewInternalServerError(message string, inner error) *ServiceError {
	if svcInner := ToServiceError(inner); svcInner != nil {
		return svcInner
	}
	return NewServiceError(ErrInternalServerError, message, inner)
}

func NewBadParameterError(message string, inner error) *ServiceError {
	return NewServiceError(ErrBadParameter, message, inner)
}

func NewEntityNotFoundError(message string, inner error) *ServiceError {
	return NewServiceError(ErrEntityNotFound, message, inner)
}

func NewForbiddenError(message string, inner error) *ServiceError {
	return NewServiceError(ErrForbidden, message, inner)
}

func NewConflictError(message string, inner error) *ServiceError {
	return NewServiceError(ErrConflict, message, inner)
}

func NewInvalidCellIDError(message string, inner error) *ServiceError {
	return NewServiceError(ErrInvalidCellID, message, inner)
}

func NewInvalidRangeError(message string, inner error) *ServiceError {
	return NewServiceError(ErrInvalidRange, message, inner)
}

func NewRemoteUnavailableError(message string, inner error) *ServiceError {
	return NewServiceError(ErrRemoteUnavailable, message, inner)
}

func NewCycleDetectedError(message string, inner error) *ServiceError {
	return NewServiceError(ErrCycleDetected, message, inner)
}

// ToServiceError returns a pointer to a service error, or nil if err is not one.
func ToServiceError(err error) *ServiceError {
	var e *ServiceError
	if errors.As(err, &e) {
		return e
	}

	return nil
}

// ToServiceErrorCode returns the code of the error, if available.
func ToServiceErrorCode(err error) string {
	svcErr := ToServiceError(err)
	if svcErr != nil {
		return svcErr.Code
	}
	return ""
}

func IsServiceError(err error, code string) bool {
	svcErr := ToServiceError(err)
	if svcErr != nil {
		return svcErr.Code == code
	}
	return false
}

func IsInternalServerError(err error) bool { return IsServiceError(err, ErrInternalServerError) }

func IsBadParameterError(err error) bool { return IsServiceError(err, ErrBadParameter) }

func IsEntityNotFoundError(err error) bool { return IsServiceError(err, ErrEntityNotFound) }

func IsForbiddenError(err error) bool { return IsServiceError(err, ErrForbidden) }

func IsConflictError(err error) bool { return IsServiceError(err, ErrConflict) }

func IsInvalidCellIDError(err error) bool { return IsServiceError(err, ErrInvalidCellID) }

func IsInvalidRangeError(err error) bool { return IsServiceError(err, ErrInvalidRange) }

func IsRemoteUnavailableError(err error) bool { return IsServiceError(err, ErrRemoteUnavailable) }

func IsCycleDetectedError(err error) bool { return IsServiceError(err, ErrCycleDetected) }

// KnownErrorCode reports whether code belongs to the service taxonomy.
func KnownErrorCode(code string) bool {
	switch code {
	case ErrInternalServerError, ErrBadParameter, ErrEntityNotFound, ErrForbidden,
		ErrConflict, ErrInvalidCellID, ErrInvalidRange, ErrRemoteUnavailable, ErrCycleDetected:
		return true
	}
	return false
}

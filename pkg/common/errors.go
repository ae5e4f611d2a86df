package common

import (
	"errors"
	"net/http"
)

// Common error types
var (
	ErrNotFound           = errors.New("resource not found")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrBadRequest         = errors.New("bad request")
	ErrInternalServer     = errors.New("internal server error")
	ErrConflict           = errors.New("resource conflict")
	ErrValidation         = errors.New("validation error")
	ErrInvalidTransition  = errors.New("invalid status transition")
	ErrAlreadyCompleted   = errors.New("booking already completed")
	ErrDuplicateReview    = errors.New("booking already reviewed")
	ErrTargetMismatch     = errors.New("target does not belong to booking")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Machine-readable error codes surfaced to API clients.
const (
	CodeValidation        = "VALIDATION_ERROR"
	CodeNotFound          = "NOT_FOUND"
	CodeUnauthorized      = "UNAUTHORIZED"
	CodeForbidden         = "FORBIDDEN"
	CodeConflict          = "CONFLICT"
	CodeInvalidTransition = "INVALID_TRANSITION"
	CodeAlreadyCompleted  = "ALREADY_COMPLETED"
	CodeDuplicateReview   = "DUPLICATE_REVIEW"
	CodeTargetMismatch    = "TARGET_MISMATCH"
	CodeInternal          = "INTERNAL_ERROR"
)

// AppError represents an application error with HTTP status code
type AppError struct {
	Code      int    `json:"code"`
	ErrorCode string `json:"error_code"`
	Message   string `json:"message"`
	Err       error  `json:"-"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

// Unwrap exposes the wrapped sentinel for errors.Is checks
func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new AppError
func NewAppError(code int, errorCode, message string, err error) *AppError {
	return &AppError{
		Code:      code,
		ErrorCode: errorCode,
		Message:   message,
		Err:       err,
	}
}

// Common error constructors
func NewNotFoundError(message string, err error) *AppError {
	if err == nil {
		err = ErrNotFound
	}
	return &AppError{
		Code:      http.StatusNotFound,
		ErrorCode: CodeNotFound,
		Message:   message,
		Err:       err,
	}
}

func NewUnauthorizedError(message string) *AppError {
	return &AppError{
		Code:      http.StatusUnauthorized,
		ErrorCode: CodeUnauthorized,
		Message:   message,
		Err:       ErrUnauthorized,
	}
}

func NewForbiddenError(message string) *AppError {
	return &AppError{
		Code:      http.StatusForbidden,
		ErrorCode: CodeForbidden,
		Message:   message,
		Err:       ErrForbidden,
	}
}

func NewBadRequestError(message string, err error) *AppError {
	if err == nil {
		err = ErrBadRequest
	}
	return &AppError{
		Code:      http.StatusBadRequest,
		ErrorCode: CodeValidation,
		Message:   message,
		Err:       err,
	}
}

func NewInternalServerError(message string) *AppError {
	return &AppError{
		Code:      http.StatusInternalServerError,
		ErrorCode: CodeInternal,
		Message:   message,
		Err:       ErrInternalServer,
	}
}

func NewConflictError(message string) *AppError {
	return &AppError{
		Code:      http.StatusConflict,
		ErrorCode: CodeConflict,
		Message:   message,
		Err:       ErrConflict,
	}
}

func NewValidationError(message string) *AppError {
	return &AppError{
		Code:      http.StatusBadRequest,
		ErrorCode: CodeValidation,
		Message:   message,
		Err:       ErrValidation,
	}
}

// NewInvalidTransitionError signals a booking state machine violation
func NewInvalidTransitionError(message string) *AppError {
	return &AppError{
		Code:      http.StatusConflict,
		ErrorCode: CodeInvalidTransition,
		Message:   message,
		Err:       ErrInvalidTransition,
	}
}

// NewAlreadyCompletedError signals a repeated completion attempt
func NewAlreadyCompletedError(message string) *AppError {
	return &AppError{
		Code:      http.StatusConflict,
		ErrorCode: CodeAlreadyCompleted,
		Message:   message,
		Err:       ErrAlreadyCompleted,
	}
}

// NewDuplicateReviewError signals a second review attempt on a booking
func NewDuplicateReviewError(message string) *AppError {
	return &AppError{
		Code:      http.StatusConflict,
		ErrorCode: CodeDuplicateReview,
		Message:   message,
		Err:       ErrDuplicateReview,
	}
}

// NewTargetMismatchError signals a review target that is not part of the booking
func NewTargetMismatchError(message string) *AppError {
	return &AppError{
		Code:      http.StatusBadRequest,
		ErrorCode: CodeTargetMismatch,
		Message:   message,
		Err:       ErrTargetMismatch,
	}
}

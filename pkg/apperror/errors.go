package apperror

import (
	"fmt"
	"net/http"
)

// AppError is a structured error that maps to HTTP responses.
type AppError struct {
	Code       string `json:"error_code"`
	Message    string `json:"message"`
	HTTPStatus int    `json:"-"`
	Err        error  `json:"-"` // Wrapped internal error (not exposed to client)
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError.
func New(code string, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

// Wrap wraps an internal error with an AppError.
func Wrap(code string, message string, httpStatus int, err error) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Err:        err,
	}
}

// ---- Wallet Business Logic (WLT) ----

func ErrWalletNotFound() *AppError {
	return New("WLT_001", "Wallet not found", http.StatusNotFound)
}

// ErrTransactionConflict signals that a concurrent writer changed the
// wallet between read and commit, or that a racing first attempt with
// the same transaction id won the log insert. Nothing was recorded for
// this attempt; the caller must resubmit the identical request.
func ErrTransactionConflict() *AppError {
	return New("WLT_002", "Concurrent modification detected, retry the request", http.StatusPreconditionFailed)
}

func ErrInvalidAmount(message string) *AppError {
	return New("WLT_003", message, http.StatusBadRequest)
}

func ErrUnknownTransactionType(t string) *AppError {
	return New("WLT_004", fmt.Sprintf("Unknown transaction type %q", t), http.StatusBadRequest)
}

// ---- Player Registration (PLR) ----

func ErrPlayerNotFound() *AppError {
	return New("PLR_001", "Player not found", http.StatusNotFound)
}

func ErrPlayerNameConflict(name string) *AppError {
	return New("PLR_002", fmt.Sprintf("Conflicting player name value of %q", name), http.StatusConflict)
}

func ErrPlayerUnderage() *AppError {
	return New("PLR_003", "Player must be at least 18 years old", http.StatusBadRequest)
}

// ---- Authentication (AUTH) ----

func ErrInvalidCredentials() *AppError {
	return New("AUTH_001", "Invalid client credentials", http.StatusUnauthorized)
}

func ErrInvalidToken() *AppError {
	return New("AUTH_002", "Invalid or expired token", http.StatusUnauthorized)
}

// ---- System & Infrastructure (SYS) ----

// InternalError wraps an internal error as a SYS_001 error.
// Storage faults during commit take this path: the fault is reported
// to the caller, who retries and is answered by the idempotency guard.
func InternalError(err error) *AppError {
	return Wrap("SYS_001", "Internal server error", http.StatusInternalServerError, err)
}

// Validation returns a request validation error.
func Validation(message string) *AppError {
	return New("WLT_003", message, http.StatusBadRequest)
}

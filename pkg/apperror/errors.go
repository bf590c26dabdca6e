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

// ---- Settlement outcomes (LEDGER) ----
//
// Expected business outcomes, not failures: the operation boundary converts
// them into ledger entries and/or caller-visible descriptions, and processing
// of subsequent operations continues.

func ErrInsufficientFunds() *AppError {
	return New("LEDGER_001", "Insufficient funds", http.StatusPaymentRequired)
}

func ErrCardFrozen(message string) *AppError {
	return New("LEDGER_002", message, http.StatusForbidden)
}

func ErrCardNotFound() *AppError {
	return New("LEDGER_003", "Card not found", http.StatusNotFound)
}

func ErrNotSavingsAccount() *AppError {
	return New("LEDGER_004", "This is not a savings account", http.StatusBadRequest)
}

func ErrBalanceNotEmpty() *AppError {
	return New("LEDGER_005", "Account couldn't be deleted - there are funds remaining", http.StatusConflict)
}

func ErrNotAuthorized(message string) *AppError {
	return New("LEDGER_006", message, http.StatusForbidden)
}

func ErrUnsupportedOperation(message string) *AppError {
	return New("LEDGER_007", message, http.StatusBadRequest)
}

func ErrDowngradeRejected(plan string) *AppError {
	return New("LEDGER_008", fmt.Sprintf("You cannot downgrade your plan to %s", plan), http.StatusBadRequest)
}

func ErrNotFound(entity string) *AppError {
	return New("LEDGER_009", fmt.Sprintf("%s not found", entity), http.StatusNotFound)
}

// ---- Configuration (CFG) ----

// ErrNoCurrencyPath reports a currency pair with no resolvable exchange path.
// Fatal at initialization, never retried.
func ErrNoCurrencyPath(from, to string) *AppError {
	return New("CFG_001", fmt.Sprintf("no exchange path from %s to %s", from, to), http.StatusInternalServerError)
}

// ---- Authentication (AUTH) ----

func ErrInvalidCredentials() *AppError {
	return New("AUTH_001", "Invalid credentials", http.StatusUnauthorized)
}

func ErrInvalidToken() *AppError {
	return New("AUTH_002", "Invalid or expired token", http.StatusUnauthorized)
}

// ---- System (SYS) ----

// InternalError wraps an internal error as a SYS_001 error.
func InternalError(err error) *AppError {
	return Wrap("SYS_001", "Internal server error", http.StatusInternalServerError, err)
}

// Validation returns a request validation error.
func Validation(message string) *AppError {
	return New("VAL_001", message, http.StatusBadRequest)
}

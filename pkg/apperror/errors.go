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

// ---- Upstream Ledger (UPSTREAM) ----

// ErrUpstreamUnavailable covers roster or current-user fetches that failed.
// These abort the whole feed pass.
func ErrUpstreamUnavailable(err error) *AppError {
	return Wrap("UPSTREAM_001", "Wallet ledger is unavailable", http.StatusBadGateway, err)
}

// ErrUpstreamMalformed covers a ledger response body that does not parse.
func ErrUpstreamMalformed(err error) *AppError {
	return Wrap("UPSTREAM_002", "Wallet ledger returned a malformed response", http.StatusBadGateway, err)
}

// ---- Feed (FEED) ----

func ErrNotFound(entity string) *AppError {
	return New("FEED_001", fmt.Sprintf("%s not found", entity), http.StatusNotFound)
}

// Validation returns a FEED_002 validation error.
func Validation(message string) *AppError {
	return New("FEED_002", message, http.StatusBadRequest)
}

// ---- Zap Origination (ZAP) ----

func ErrInvalidAmount() *AppError {
	return New("ZAP_001", "Invalid amount", http.StatusBadRequest)
}

func ErrInsufficientBalance() *AppError {
	return New("ZAP_002", "Insufficient allowance balance", http.StatusPaymentRequired)
}

func ErrNoSourceWallet() *AppError {
	return New("ZAP_003", "Sender has no allowance wallet", http.StatusUnprocessableEntity)
}

func ErrNoDestinationWallet() *AppError {
	return New("ZAP_004", "Recipient has no private wallet", http.StatusUnprocessableEntity)
}

func ErrSelfZap() *AppError {
	return New("ZAP_005", "Cannot send a zap to yourself", http.StatusBadRequest)
}

// ---- Authentication (AUTH) ----

func ErrInvalidToken() *AppError {
	return New("AUTH_001", "Invalid or expired token", http.StatusUnauthorized)
}

func ErrUnknownIdentity() *AppError {
	return New("AUTH_002", "No ledger user matches this identity", http.StatusUnauthorized)
}

// ---- Rate Limiting (RATE) ----

func ErrRateLimitExceeded() *AppError {
	return New("RATE_001", "Rate limit exceeded", http.StatusTooManyRequests)
}

// ---- System & Infrastructure (SYS) ----

// InternalError wraps an internal error as a SYS_001 error.
func InternalError(err error) *AppError {
	return Wrap("SYS_001", "Internal server error", http.StatusInternalServerError, err)
}

package dto

import "net/http"

// Common error codes returned by the API
const (
	ErrCodeBadRequest    = "BAD_REQUEST"
	ErrCodeNotFound      = "NOT_FOUND"
	ErrCodeAlreadyExists = "ALREADY_EXISTS"
	ErrCodeConflict      = "CONFLICT"
	ErrCodeInternal      = "INTERNAL_ERROR"
)

// statusByCode maps domain error codes to HTTP status codes.
// Codes not listed map to 400 for validation-style codes and 500 for
// anything unknown; see GetHTTPStatus.
var statusByCode = map[string]int{
	ErrCodeBadRequest:    http.StatusBadRequest,
	ErrCodeNotFound:      http.StatusNotFound,
	ErrCodeAlreadyExists: http.StatusConflict,
	ErrCodeConflict:      http.StatusConflict,
	ErrCodeInternal:      http.StatusInternalServerError,

	// billing
	"EXCEEDS_OUTSTANDING": http.StatusUnprocessableEntity,
	"PAYMENT_VERIFIED":    http.StatusConflict,
	"ALREADY_VERIFIED":    http.StatusConflict,
	"HAS_PAYMENTS":        http.StatusConflict,

	// leasing
	"INSUFFICIENT_STOCK": http.StatusConflict,

	// shared
	"INVALID_STATE": http.StatusConflict,
}

// GetHTTPStatus returns the HTTP status for a domain error code
func GetHTTPStatus(code string) int {
	if status, ok := statusByCode[code]; ok {
		return status
	}
	// validation-style codes (INVALID_AMOUNT, INVALID_ITEMS, ...) are
	// client errors
	if len(code) > 8 && code[:8] == "INVALID_" {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

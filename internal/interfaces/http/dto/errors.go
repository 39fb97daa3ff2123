package dto

import (
	"net/http"
	"strings"
)

// Error codes originating at the HTTP layer
const (
	ErrCodeBadRequest   = "BAD_REQUEST"
	ErrCodeUnauthorized = "UNAUTHORIZED"
	ErrCodeForbidden    = "FORBIDDEN"
	ErrCodeNotFound     = "NOT_FOUND"
	ErrCodeInternal     = "INTERNAL_ERROR"
)

// errorCodeHTTPStatus maps domain error codes to HTTP status codes.
// Codes not listed fall back to the prefix rules in GetHTTPStatus.
var errorCodeHTTPStatus = map[string]int{
	ErrCodeBadRequest:   http.StatusBadRequest,
	ErrCodeUnauthorized: http.StatusUnauthorized,
	ErrCodeForbidden:    http.StatusForbidden,
	ErrCodeNotFound:     http.StatusNotFound,
	ErrCodeInternal:     http.StatusInternalServerError,

	// Resource conflicts
	"ALREADY_EXISTS":       http.StatusConflict,
	"CONCURRENCY_CONFLICT": http.StatusConflict,
	"DUPLICATE_PRODUCT":    http.StatusConflict,
	"CATEGORY_IN_USE":      http.StatusConflict,

	// Authentication
	"INVALID_CREDENTIALS": http.StatusUnauthorized,
	"TOKEN_EXPIRED":       http.StatusUnauthorized,
	"TOKEN_INVALID":       http.StatusUnauthorized,
	"TOKEN_REVOKED":       http.StatusUnauthorized,
	"TOKEN_MAX_REFRESH":   http.StatusUnauthorized,
	"ACCOUNT_LOCKED":      http.StatusForbidden,

	// Business rule violations -> 422 Unprocessable Entity
	"INVALID_TRANSITION": http.StatusUnprocessableEntity,
	"INVALID_STATE":      http.StatusUnprocessableEntity,
	"EMPTY_CART":         http.StatusUnprocessableEntity,
	"PAYMENT_INCOMPLETE": http.StatusUnprocessableEntity,

	// Upstream collaborators (payment gateway, object storage)
	"UPSTREAM_FAILURE":    http.StatusBadGateway,
	"STORAGE_UNAVAILABLE": http.StatusServiceUnavailable,
}

// GetHTTPStatus returns the HTTP status code for a domain error code.
// Validation codes (INVALID_*) map to 400 unless listed explicitly above;
// anything unknown is treated as an internal error.
func GetHTTPStatus(code string) int {
	if status, ok := errorCodeHTTPStatus[code]; ok {
		return status
	}
	if strings.HasPrefix(code, "INVALID_") {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

package dto

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetHTTPStatus(t *testing.T) {
	tests := []struct {
		code     string
		expected int
	}{
		{ErrCodeNotFound, http.StatusNotFound},
		{ErrCodeAlreadyExists, http.StatusConflict},
		{"EXCEEDS_OUTSTANDING", http.StatusUnprocessableEntity},
		{"INSUFFICIENT_STOCK", http.StatusConflict},
		{"INVALID_STATE", http.StatusConflict},
		{"PAYMENT_VERIFIED", http.StatusConflict},
		{"HAS_PAYMENTS", http.StatusConflict},
		// validation-style codes fall back via the INVALID_ prefix
		{"INVALID_AMOUNT", http.StatusBadRequest},
		{"INVALID_ITEMS", http.StatusBadRequest},
		{"UNKNOWN_CODE", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.expected, GetHTTPStatus(tt.code))
		})
	}
}

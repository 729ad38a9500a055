package httpapi

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gridironhq/gridiron/internal/usecase"
)

func TestMapError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantReason string
	}{
		{"invalid input", usecase.ErrInvalidInput, http.StatusBadRequest, "invalidInput"},
		{"unresolved team", usecase.ErrUnresolvedTeam, http.StatusBadRequest, "unresolvedTeam"},
		{"insufficient data", usecase.ErrInsufficientData, http.StatusBadRequest, "insufficientData"},
		{"unauthorized", usecase.ErrUnauthorized, http.StatusUnauthorized, "unauthorized"},
		{"quota exceeded", usecase.ErrQuotaExceeded, http.StatusPaymentRequired, "quotaExceeded"},
		{"not found", usecase.ErrNotFound, http.StatusNotFound, "notFound"},
		{"rate limited", usecase.ErrRateLimited, http.StatusTooManyRequests, "rateLimited"},
		{"configuration", usecase.ErrConfiguration, http.StatusInternalServerError, "modelConfiguration"},
		{"upstream fetch", usecase.ErrUpstreamFetch, http.StatusBadGateway, "upstreamFetch"},
		{"dependency unavailable", usecase.ErrDependencyUnavailable, http.StatusServiceUnavailable, "dependencyUnavailable"},
		{"unknown", fmt.Errorf("boom"), http.StatusInternalServerError, "internal"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mapped := mapError(tt.err)
			assert.Equal(t, tt.wantStatus, mapped.HTTPStatus)
			assert.Equal(t, tt.wantReason, mapped.Reason)
		})
	}
}

func TestMapErrorWrapped(t *testing.T) {
	err := fmt.Errorf("predict: %w", fmt.Errorf("%w: week range", usecase.ErrInvalidInput))
	mapped := mapError(err)
	assert.Equal(t, http.StatusBadRequest, mapped.HTTPStatus)
	assert.Equal(t, "INVALID_ARGUMENT", mapped.Status)
}

package controller

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	apperrors "playvault/internal/errors"
)

func TestRequestTraceID_PrefersRouterRequestID(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/orders", nil)
	req = req.WithContext(context.WithValue(req.Context(), middleware.RequestIDKey, "req-7"))

	assert.Equal(t, "req-7", requestTraceID(req))
}

func TestRequestTraceID_FallsBackWithoutMiddleware(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/orders", nil)

	assert.NotEmpty(t, requestTraceID(req))
}

func TestWriteError_MapsTaxonomy(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   string
	}{
		{
			name:       "validation",
			err:        apperrors.NewValidationError("invalid checkout request"),
			wantStatus: http.StatusBadRequest,
			wantBody:   "invalid checkout request",
		},
		{
			name:       "unauthorized",
			err:        apperrors.NewUnauthorizedError("operator role required"),
			wantStatus: http.StatusForbidden,
			wantBody:   "operator role required",
		},
		{
			name:       "not found",
			err:        apperrors.NewNotFoundError("order o-1 not found"),
			wantStatus: http.StatusNotFound,
			wantBody:   "order o-1 not found",
		},
		{
			name:       "conflict",
			err:        apperrors.NewConflictError("order state changed concurrently, re-fetch and retry"),
			wantStatus: http.StatusConflict,
			wantBody:   "order state changed concurrently, re-fetch and retry",
		},
		{
			name:       "internal hides the cause",
			err:        apperrors.NewInternalError("looking up product", errors.New("connection refused")),
			wantStatus: http.StatusInternalServerError,
			wantBody:   "internal server error",
		},
		{
			name:       "unknown",
			err:        errors.New("boom"),
			wantStatus: http.StatusInternalServerError,
			wantBody:   "internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			writeError(rec, "trace-1", tt.err, zap.NewNop())

			assert.Equal(t, tt.wantStatus, rec.Code)

			var body errorResponse
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
			assert.Equal(t, "trace-1", body.TraceID)
			assert.Equal(t, tt.wantBody, body.Error)
		})
	}
}

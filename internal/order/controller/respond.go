package controller

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"go.uber.org/zap"

	apperrors "playvault/internal/errors"
)

type errorResponse struct {
	TraceID string                       `json:"traceId"`
	Error   string                       `json:"error"`
	Details []apperrors.ValidationDetail `json:"details,omitempty"`
}

// requestTraceID reuses the request id stamped by the router middleware so
// log lines and error bodies share one identity per request. Outside the
// middleware a fresh uuid keeps responses traceable.
func requestTraceID(r *http.Request) string {
	if id := middleware.GetReqID(r.Context()); id != "" {
		return id
	}
	return uuid.New().String()
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, traceID string, err error, logger *zap.Logger) {
	if ve, ok := apperrors.IsValidationError(err); ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{TraceID: traceID, Error: ve.Message, Details: ve.Details})
		return
	}
	if ue, ok := apperrors.IsUnauthorizedError(err); ok {
		writeJSON(w, http.StatusForbidden, errorResponse{TraceID: traceID, Error: ue.Message})
		return
	}
	if nfe, ok := apperrors.IsNotFoundError(err); ok {
		writeJSON(w, http.StatusNotFound, errorResponse{TraceID: traceID, Error: nfe.Message})
		return
	}
	if ce, ok := apperrors.IsConflictError(err); ok {
		writeJSON(w, http.StatusConflict, errorResponse{TraceID: traceID, Error: ce.Message})
		return
	}
	if ie, ok := apperrors.IsInternalError(err); ok {
		// The cause stays in the logs; clients only get the trace id.
		logger.Error("internal error", zap.String("traceId", traceID), zap.Error(ie))
		writeJSON(w, http.StatusInternalServerError, errorResponse{TraceID: traceID, Error: "internal server error"})
		return
	}

	logger.Error("unhandled error", zap.String("traceId", traceID), zap.Error(err))
	writeJSON(w, http.StatusInternalServerError, errorResponse{TraceID: traceID, Error: "internal server error"})
}

package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"playvault/internal/auth"
	"playvault/internal/domain"
	"playvault/internal/dto"
	apperrors "playvault/internal/errors"
)

type RosterService interface {
	List(ctx context.Context) ([]domain.Fulfiller, error)
	Add(ctx context.Context, name, phone string) (*domain.Fulfiller, error)
	SetActive(ctx context.Context, id uint, active bool) (*domain.Fulfiller, error)
	Delete(ctx context.Context, id uint) error
}

type FulfillerController struct {
	roster RosterService
	logger *zap.Logger
}

func NewFulfillerController(roster RosterService, logger *zap.Logger) *FulfillerController {
	return &FulfillerController{
		roster: roster,
		logger: logger,
	}
}

func (c *FulfillerController) List(w http.ResponseWriter, r *http.Request) {
	traceID := requestTraceID(r)
	logger := c.logger.With(zap.String("traceId", traceID))

	if err := requireOperator(r); err != nil {
		writeError(w, traceID, err, logger)
		return
	}

	fulfillers, err := c.roster.List(r.Context())
	if err != nil {
		writeError(w, traceID, err, logger)
		return
	}

	views := make([]dto.FulfillerView, len(fulfillers))
	for i := range fulfillers {
		views[i] = dto.NewFulfillerView(&fulfillers[i])
	}
	writeJSON(w, http.StatusOK, views)
}

func (c *FulfillerController) Create(w http.ResponseWriter, r *http.Request) {
	traceID := requestTraceID(r)
	logger := c.logger.With(zap.String("traceId", traceID))

	if err := requireOperator(r); err != nil {
		writeError(w, traceID, err, logger)
		return
	}

	var req dto.CreateFulfillerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, traceID, apperrors.NewValidationError("invalid JSON body",
			apperrors.ValidationDetail{Field: "body", Message: "request body must be valid JSON"}), logger)
		return
	}

	fulfiller, err := c.roster.Add(r.Context(), req.Name, req.Phone)
	if err != nil {
		writeError(w, traceID, err, logger)
		return
	}

	writeJSON(w, http.StatusCreated, dto.NewFulfillerView(fulfiller))
}

func (c *FulfillerController) Update(w http.ResponseWriter, r *http.Request) {
	traceID := requestTraceID(r)
	logger := c.logger.With(zap.String("traceId", traceID))

	if err := requireOperator(r); err != nil {
		writeError(w, traceID, err, logger)
		return
	}

	id, err := parseFulfillerID(r)
	if err != nil {
		writeError(w, traceID, err, logger)
		return
	}

	var req dto.UpdateFulfillerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, traceID, apperrors.NewValidationError("invalid JSON body",
			apperrors.ValidationDetail{Field: "body", Message: "request body must be valid JSON"}), logger)
		return
	}
	if req.Active == nil {
		writeError(w, traceID, apperrors.NewValidationError("invalid fulfiller update",
			apperrors.ValidationDetail{Field: "active", Message: "active is required"}), logger)
		return
	}

	fulfiller, err := c.roster.SetActive(r.Context(), id, *req.Active)
	if err != nil {
		writeError(w, traceID, err, logger)
		return
	}

	writeJSON(w, http.StatusOK, dto.NewFulfillerView(fulfiller))
}

func (c *FulfillerController) Delete(w http.ResponseWriter, r *http.Request) {
	traceID := requestTraceID(r)
	logger := c.logger.With(zap.String("traceId", traceID))

	if err := requireOperator(r); err != nil {
		writeError(w, traceID, err, logger)
		return
	}

	id, err := parseFulfillerID(r)
	if err != nil {
		writeError(w, traceID, err, logger)
		return
	}

	if err := c.roster.Delete(r.Context(), id); err != nil {
		writeError(w, traceID, err, logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func requireOperator(r *http.Request) error {
	caller, ok := auth.CallerFromContext(r.Context())
	if !ok || !caller.IsOperator() {
		return apperrors.NewUnauthorizedError("operator role required")
	}
	return nil
}

func parseFulfillerID(r *http.Request) (uint, error) {
	raw := chi.URLParam(r, "fulfillerId")
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, apperrors.NewValidationError("invalid fulfillerId",
			apperrors.ValidationDetail{Field: "fulfillerId", Message: "fulfillerId must be a positive integer"})
	}
	return uint(id), nil
}

type errorResponse struct {
	TraceID string                       `json:"traceId"`
	Error   string                       `json:"error"`
	Details []apperrors.ValidationDetail `json:"details,omitempty"`
}

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
		logger.Error("internal error", zap.String("traceId", traceID), zap.Error(ie))
		writeJSON(w, http.StatusInternalServerError, errorResponse{TraceID: traceID, Error: "internal server error"})
		return
	}

	logger.Error("unhandled error", zap.String("traceId", traceID), zap.Error(err))
	writeJSON(w, http.StatusInternalServerError, errorResponse{TraceID: traceID, Error: "internal server error"})
}

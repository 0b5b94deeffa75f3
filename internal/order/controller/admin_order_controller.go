package controller

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"playvault/internal/auth"
	"playvault/internal/domain"
	"playvault/internal/dto"
	apperrors "playvault/internal/errors"
)

type OperatorActionUseCase interface {
	PerformAction(ctx context.Context, caller domain.Caller, id string, req dto.OperatorActionRequest) (*dto.OrderView, error)
	DeleteOrder(ctx context.Context, caller domain.Caller, id string) error
}

type AdminOrderController struct {
	actions OperatorActionUseCase
	logger  *zap.Logger
}

func NewAdminOrderController(actions OperatorActionUseCase, logger *zap.Logger) *AdminOrderController {
	return &AdminOrderController{
		actions: actions,
		logger:  logger,
	}
}

func (c *AdminOrderController) PerformAction(w http.ResponseWriter, r *http.Request) {
	traceID := requestTraceID(r)
	logger := c.logger.With(zap.String("traceId", traceID))

	caller, ok := auth.CallerFromContext(r.Context())
	if !ok {
		writeError(w, traceID, apperrors.NewUnauthorizedError("missing caller identity"), logger)
		return
	}

	var req dto.OperatorActionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, traceID, apperrors.NewValidationError("invalid JSON body",
			apperrors.ValidationDetail{Field: "body", Message: "request body must be valid JSON"}), logger)
		return
	}

	view, err := c.actions.PerformAction(r.Context(), caller, chi.URLParam(r, "orderId"), req)
	if err != nil {
		writeError(w, traceID, err, logger)
		return
	}

	writeJSON(w, http.StatusOK, view)
}

func (c *AdminOrderController) DeleteOrder(w http.ResponseWriter, r *http.Request) {
	traceID := requestTraceID(r)
	logger := c.logger.With(zap.String("traceId", traceID))

	caller, ok := auth.CallerFromContext(r.Context())
	if !ok {
		writeError(w, traceID, apperrors.NewUnauthorizedError("missing caller identity"), logger)
		return
	}

	if err := c.actions.DeleteOrder(r.Context(), caller, chi.URLParam(r, "orderId")); err != nil {
		writeError(w, traceID, err, logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

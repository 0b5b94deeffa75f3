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

type CheckoutUseCase interface {
	Checkout(ctx context.Context, caller domain.Caller, req dto.CheckoutRequest) (*dto.CheckoutResponse, error)
}

type CustomerOrderUseCase interface {
	GetOrder(ctx context.Context, caller domain.Caller, id string) (*dto.OrderView, error)
	ListOrders(ctx context.Context, caller domain.Caller, status, search string) ([]dto.OrderView, error)
	SelectPaymentMethod(ctx context.Context, caller domain.Caller, id, method string) (*dto.OrderView, error)
	ConfirmPayment(ctx context.Context, caller domain.Caller, id string) (*dto.OrderView, error)
	CancelOwnOrder(ctx context.Context, caller domain.Caller, id string) (*dto.OrderView, error)
}

type OrderController struct {
	checkout CheckoutUseCase
	orders   CustomerOrderUseCase
	logger   *zap.Logger
}

func NewOrderController(checkout CheckoutUseCase, orders CustomerOrderUseCase, logger *zap.Logger) *OrderController {
	return &OrderController{
		checkout: checkout,
		orders:   orders,
		logger:   logger,
	}
}

func (c *OrderController) Checkout(w http.ResponseWriter, r *http.Request) {
	traceID := requestTraceID(r)
	logger := c.logger.With(zap.String("traceId", traceID))

	caller, ok := auth.CallerFromContext(r.Context())
	if !ok {
		writeError(w, traceID, apperrors.NewUnauthorizedError("missing caller identity"), logger)
		return
	}

	var req dto.CheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid JSON body", zap.Error(err))
		writeError(w, traceID, apperrors.NewValidationError("invalid JSON body",
			apperrors.ValidationDetail{Field: "body", Message: "request body must be valid JSON"}), logger)
		return
	}

	resp, err := c.checkout.Checkout(r.Context(), caller, req)
	if err != nil {
		writeError(w, traceID, err, logger)
		return
	}

	writeJSON(w, http.StatusCreated, resp)
}

func (c *OrderController) GetOrder(w http.ResponseWriter, r *http.Request) {
	traceID := requestTraceID(r)
	logger := c.logger.With(zap.String("traceId", traceID))

	caller, ok := auth.CallerFromContext(r.Context())
	if !ok {
		writeError(w, traceID, apperrors.NewUnauthorizedError("missing caller identity"), logger)
		return
	}

	view, err := c.orders.GetOrder(r.Context(), caller, chi.URLParam(r, "orderId"))
	if err != nil {
		writeError(w, traceID, err, logger)
		return
	}

	writeJSON(w, http.StatusOK, view)
}

func (c *OrderController) ListOrders(w http.ResponseWriter, r *http.Request) {
	traceID := requestTraceID(r)
	logger := c.logger.With(zap.String("traceId", traceID))

	caller, ok := auth.CallerFromContext(r.Context())
	if !ok {
		writeError(w, traceID, apperrors.NewUnauthorizedError("missing caller identity"), logger)
		return
	}

	views, err := c.orders.ListOrders(r.Context(), caller,
		r.URL.Query().Get("status"), r.URL.Query().Get("q"))
	if err != nil {
		writeError(w, traceID, err, logger)
		return
	}

	if views == nil {
		views = []dto.OrderView{}
	}
	writeJSON(w, http.StatusOK, views)
}

func (c *OrderController) SelectPaymentMethod(w http.ResponseWriter, r *http.Request) {
	traceID := requestTraceID(r)
	logger := c.logger.With(zap.String("traceId", traceID))

	caller, ok := auth.CallerFromContext(r.Context())
	if !ok {
		writeError(w, traceID, apperrors.NewUnauthorizedError("missing caller identity"), logger)
		return
	}

	var req dto.SelectPaymentMethodRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, traceID, apperrors.NewValidationError("invalid JSON body",
			apperrors.ValidationDetail{Field: "body", Message: "request body must be valid JSON"}), logger)
		return
	}

	view, err := c.orders.SelectPaymentMethod(r.Context(), caller, chi.URLParam(r, "orderId"), req.Method)
	if err != nil {
		writeError(w, traceID, err, logger)
		return
	}

	writeJSON(w, http.StatusOK, view)
}

func (c *OrderController) ConfirmPayment(w http.ResponseWriter, r *http.Request) {
	traceID := requestTraceID(r)
	logger := c.logger.With(zap.String("traceId", traceID))

	caller, ok := auth.CallerFromContext(r.Context())
	if !ok {
		writeError(w, traceID, apperrors.NewUnauthorizedError("missing caller identity"), logger)
		return
	}

	view, err := c.orders.ConfirmPayment(r.Context(), caller, chi.URLParam(r, "orderId"))
	if err != nil {
		writeError(w, traceID, err, logger)
		return
	}

	writeJSON(w, http.StatusOK, view)
}

func (c *OrderController) CancelOrder(w http.ResponseWriter, r *http.Request) {
	traceID := requestTraceID(r)
	logger := c.logger.With(zap.String("traceId", traceID))

	caller, ok := auth.CallerFromContext(r.Context())
	if !ok {
		writeError(w, traceID, apperrors.NewUnauthorizedError("missing caller identity"), logger)
		return
	}

	view, err := c.orders.CancelOwnOrder(r.Context(), caller, chi.URLParam(r, "orderId"))
	if err != nil {
		writeError(w, traceID, err, logger)
		return
	}

	writeJSON(w, http.StatusOK, view)
}

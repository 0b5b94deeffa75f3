package usecase

import (
	"context"

	"go.uber.org/zap"

	"playvault/internal/domain"
	"playvault/internal/dto"
	apperrors "playvault/internal/errors"
	"playvault/internal/order/service"
)

type ProductCatalog interface {
	FindByID(ctx context.Context, id int) (*domain.Product, error)
}

type CheckoutService interface {
	Checkout(ctx context.Context, draft service.CheckoutDraft) (*domain.Order, error)
}

type CheckoutUseCase struct {
	catalog   ProductCatalog
	lifecycle CheckoutService
	logger    *zap.Logger
}

func NewCheckoutUseCase(catalog ProductCatalog, lifecycle CheckoutService, logger *zap.Logger) *CheckoutUseCase {
	return &CheckoutUseCase{
		catalog:   catalog,
		lifecycle: lifecycle,
		logger:    logger,
	}
}

func (uc *CheckoutUseCase) Checkout(ctx context.Context, caller domain.Caller, req dto.CheckoutRequest) (*dto.CheckoutResponse, error) {
	if req.ProductID <= 0 {
		return nil, apperrors.NewValidationError("invalid checkout request",
			apperrors.ValidationDetail{Field: "productId", Message: "productId must be a positive integer"})
	}

	// Catalog lookup happens once, here: the order carries a snapshot of the
	// product name and price from this moment on.
	product, err := uc.catalog.FindByID(ctx, req.ProductID)
	if err != nil {
		if _, ok := apperrors.IsNotFoundError(err); ok {
			return nil, apperrors.NewValidationError("invalid checkout request",
				apperrors.ValidationDetail{Field: "productId", Message: "product does not exist"})
		}
		return nil, apperrors.NewInternalError("looking up product", err)
	}

	order, err := uc.lifecycle.Checkout(ctx, service.CheckoutDraft{
		CustomerID:    caller.ID,
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
		Product:       product,
		Quantity:      req.Quantity,
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("checkout completed",
		zap.String("orderId", order.ID),
		zap.String("customerId", caller.ID),
	)

	return &dto.CheckoutResponse{
		OrderID:       order.ID,
		OrderNumber:   order.OrderNumber,
		Total:         order.TotalPrice,
		PaymentExpiry: order.PaymentExpiry,
	}, nil
}

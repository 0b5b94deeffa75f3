package usecase

import (
	"context"

	"playvault/internal/domain"
	"playvault/internal/dto"
	apperrors "playvault/internal/errors"
)

type OrderLifecycle interface {
	Get(ctx context.Context, id string) (*domain.Order, error)
	List(ctx context.Context, filter dto.OrderListFilter) ([]domain.Order, error)
	SelectPaymentMethod(ctx context.Context, id string, method domain.PaymentMethod) (*domain.Order, error)
	ConfirmPayment(ctx context.Context, id string) (*domain.Order, error)
	CancelByCustomer(ctx context.Context, id string) (*domain.Order, error)
}

// CustomerOrderUseCase fronts the customer-facing operations. Ownership is
// checked before any business-state guard, so acting on someone else's order
// fails with an authorization error rather than leaking state.
type CustomerOrderUseCase struct {
	lifecycle OrderLifecycle
}

func NewCustomerOrderUseCase(lifecycle OrderLifecycle) *CustomerOrderUseCase {
	return &CustomerOrderUseCase{lifecycle: lifecycle}
}

func (uc *CustomerOrderUseCase) authorize(caller domain.Caller, order *domain.Order) error {
	if caller.IsOperator() || order.CustomerID == caller.ID {
		return nil
	}
	return apperrors.NewUnauthorizedError("you may only act on your own orders")
}

func (uc *CustomerOrderUseCase) GetOrder(ctx context.Context, caller domain.Caller, id string) (*dto.OrderView, error) {
	order, err := uc.lifecycle.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := uc.authorize(caller, order); err != nil {
		return nil, err
	}

	withCredentials := caller.IsOperator() ||
		order.FulfillmentStatus == domain.FulfillmentCompleted
	view := dto.NewOrderView(order, withCredentials)
	return &view, nil
}

func (uc *CustomerOrderUseCase) ListOrders(ctx context.Context, caller domain.Caller, status, search string) ([]dto.OrderView, error) {
	filter := dto.OrderListFilter{Search: search}
	if !caller.IsOperator() {
		filter.CustomerID = caller.ID
	}
	if status != "" {
		fs := domain.FulfillmentStatus(status)
		switch fs {
		case domain.FulfillmentPending, domain.FulfillmentProcessing,
			domain.FulfillmentCompleted, domain.FulfillmentCancelled:
			filter.FulfillmentStatus = &fs
		default:
			return nil, apperrors.NewValidationError("invalid status filter",
				apperrors.ValidationDetail{Field: "status", Message: "unknown fulfillment status " + status})
		}
	}

	orders, err := uc.lifecycle.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	// Credentials never appear in list responses.
	views := make([]dto.OrderView, len(orders))
	for i := range orders {
		views[i] = dto.NewOrderView(&orders[i], false)
	}
	return views, nil
}

func (uc *CustomerOrderUseCase) SelectPaymentMethod(ctx context.Context, caller domain.Caller, id, method string) (*dto.OrderView, error) {
	order, err := uc.lifecycle.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := uc.authorize(caller, order); err != nil {
		return nil, err
	}

	parsed, err := domain.ParsePaymentMethod(method)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error(),
			apperrors.ValidationDetail{Field: "method", Message: err.Error()})
	}

	updated, err := uc.lifecycle.SelectPaymentMethod(ctx, id, parsed)
	if err != nil {
		return nil, err
	}

	view := dto.NewOrderView(updated, false)
	return &view, nil
}

func (uc *CustomerOrderUseCase) ConfirmPayment(ctx context.Context, caller domain.Caller, id string) (*dto.OrderView, error) {
	order, err := uc.lifecycle.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := uc.authorize(caller, order); err != nil {
		return nil, err
	}

	confirmed, err := uc.lifecycle.ConfirmPayment(ctx, id)
	if err != nil {
		return nil, err
	}

	view := dto.NewOrderView(confirmed, false)
	return &view, nil
}

// CancelOwnOrder lets a customer back out of an order that has not been
// picked up yet. Operators cancelling use the action endpoint instead, which
// also allows PROCESSING. The PENDING check here only produces the friendly
// rejection; the enforcement lives in the customer_cancel transition, whose
// guarded update also loses to a verification racing this call.
func (uc *CustomerOrderUseCase) CancelOwnOrder(ctx context.Context, caller domain.Caller, id string) (*dto.OrderView, error) {
	order, err := uc.lifecycle.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if order.CustomerID != caller.ID {
		return nil, apperrors.NewUnauthorizedError("you may only cancel your own orders")
	}
	if order.FulfillmentStatus != domain.FulfillmentPending {
		return nil, apperrors.NewConflictError("only PENDING orders can be cancelled by the customer")
	}

	cancelled, err := uc.lifecycle.CancelByCustomer(ctx, id)
	if err != nil {
		return nil, err
	}

	view := dto.NewOrderView(cancelled, false)
	return &view, nil
}

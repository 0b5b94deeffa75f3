package usecase

import (
	"context"

	"go.uber.org/zap"

	"playvault/internal/domain"
	"playvault/internal/dto"
	apperrors "playvault/internal/errors"
)

type OperatorLifecycle interface {
	VerifyPayment(ctx context.Context, id string) (*domain.Order, error)
	InputAccount(ctx context.Context, id string, email, password string) (*domain.Order, error)
	Deliver(ctx context.Context, id string, deliveryMethod string) (*domain.Order, error)
	Cancel(ctx context.Context, id string) (*domain.Order, error)
	Refund(ctx context.Context, id string) (*domain.Order, error)
	Delete(ctx context.Context, id string) error
}

// OperatorActionUseCase dispatches the fulfiller console actions onto the
// lifecycle state machine. The role check runs before anything touches
// business state.
type OperatorActionUseCase struct {
	lifecycle OperatorLifecycle
	logger    *zap.Logger
}

func NewOperatorActionUseCase(lifecycle OperatorLifecycle, logger *zap.Logger) *OperatorActionUseCase {
	return &OperatorActionUseCase{
		lifecycle: lifecycle,
		logger:    logger,
	}
}

func (uc *OperatorActionUseCase) PerformAction(ctx context.Context, caller domain.Caller, id string, req dto.OperatorActionRequest) (*dto.OrderView, error) {
	if !caller.IsOperator() {
		return nil, apperrors.NewUnauthorizedError("operator role required")
	}

	var (
		order *domain.Order
		err   error
	)
	switch domain.Action(req.Action) {
	case domain.ActionVerifyPayment:
		order, err = uc.lifecycle.VerifyPayment(ctx, id)
	case domain.ActionInputAccount:
		order, err = uc.lifecycle.InputAccount(ctx, id, req.AccountEmail, req.AccountPassword)
	case domain.ActionDeliver:
		order, err = uc.lifecycle.Deliver(ctx, id, req.DeliveryMethod)
	case domain.ActionCancel:
		order, err = uc.lifecycle.Cancel(ctx, id)
	case domain.ActionRefund:
		order, err = uc.lifecycle.Refund(ctx, id)
	default:
		return nil, apperrors.NewValidationError("unknown action",
			apperrors.ValidationDetail{Field: "action", Message: "action must be one of verify_payment, input_account, deliver, cancel, refund"})
	}
	if err != nil {
		return nil, err
	}

	uc.logger.Info("operator action applied",
		zap.String("orderId", id),
		zap.String("action", req.Action),
		zap.String("operatorId", caller.ID),
	)

	view := dto.NewOrderView(order, true)
	return &view, nil
}

func (uc *OperatorActionUseCase) DeleteOrder(ctx context.Context, caller domain.Caller, id string) error {
	if !caller.IsOperator() {
		return apperrors.NewUnauthorizedError("operator role required")
	}

	if err := uc.lifecycle.Delete(ctx, id); err != nil {
		return err
	}

	uc.logger.Info("order deleted",
		zap.String("orderId", id),
		zap.String("operatorId", caller.ID),
	)
	return nil
}

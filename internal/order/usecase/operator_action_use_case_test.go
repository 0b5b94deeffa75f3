package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"playvault/internal/domain"
	"playvault/internal/dto"
	apperrors "playvault/internal/errors"
)

type mockOperatorLifecycle struct {
	VerifyPaymentFunc func(ctx context.Context, id string) (*domain.Order, error)
	InputAccountFunc  func(ctx context.Context, id string, email, password string) (*domain.Order, error)
	DeliverFunc       func(ctx context.Context, id string, deliveryMethod string) (*domain.Order, error)
	CancelFunc        func(ctx context.Context, id string) (*domain.Order, error)
	RefundFunc        func(ctx context.Context, id string) (*domain.Order, error)
	DeleteFunc        func(ctx context.Context, id string) error
}

func (m *mockOperatorLifecycle) VerifyPayment(ctx context.Context, id string) (*domain.Order, error) {
	return m.VerifyPaymentFunc(ctx, id)
}

func (m *mockOperatorLifecycle) InputAccount(ctx context.Context, id string, email, password string) (*domain.Order, error) {
	return m.InputAccountFunc(ctx, id, email, password)
}

func (m *mockOperatorLifecycle) Deliver(ctx context.Context, id string, deliveryMethod string) (*domain.Order, error) {
	return m.DeliverFunc(ctx, id, deliveryMethod)
}

func (m *mockOperatorLifecycle) Cancel(ctx context.Context, id string) (*domain.Order, error) {
	return m.CancelFunc(ctx, id)
}

func (m *mockOperatorLifecycle) Refund(ctx context.Context, id string) (*domain.Order, error) {
	return m.RefundFunc(ctx, id)
}

func (m *mockOperatorLifecycle) Delete(ctx context.Context, id string) error {
	return m.DeleteFunc(ctx, id)
}

func TestPerformAction_RequiresOperatorRole(t *testing.T) {
	called := false
	lifecycle := &mockOperatorLifecycle{
		VerifyPaymentFunc: func(ctx context.Context, id string) (*domain.Order, error) {
			called = true
			return &domain.Order{}, nil
		},
	}
	uc := NewOperatorActionUseCase(lifecycle, zap.NewNop())

	_, err := uc.PerformAction(context.Background(), customer, "o-1",
		dto.OperatorActionRequest{Action: "verify_payment"})

	_, ok := apperrors.IsUnauthorizedError(err)
	assert.True(t, ok)
	assert.False(t, called, "role check must run before any lifecycle call")
}

func TestPerformAction_Dispatch(t *testing.T) {
	email := "acc@game.com"
	password := "hunter2"
	order := &domain.Order{
		ID:                "o-1",
		FulfillmentStatus: domain.FulfillmentProcessing,
		PaymentStatus:     domain.PaymentSuccess,
		AccountEmail:      &email,
		AccountPassword:   &password,
	}

	var got struct {
		action, email, password, method string
	}
	lifecycle := &mockOperatorLifecycle{
		VerifyPaymentFunc: func(ctx context.Context, id string) (*domain.Order, error) {
			got.action = "verify_payment"
			return order, nil
		},
		InputAccountFunc: func(ctx context.Context, id string, e, p string) (*domain.Order, error) {
			got.action, got.email, got.password = "input_account", e, p
			return order, nil
		},
		DeliverFunc: func(ctx context.Context, id string, m string) (*domain.Order, error) {
			got.action, got.method = "deliver", m
			return order, nil
		},
		CancelFunc: func(ctx context.Context, id string) (*domain.Order, error) {
			got.action = "cancel"
			return order, nil
		},
		RefundFunc: func(ctx context.Context, id string) (*domain.Order, error) {
			got.action = "refund"
			return order, nil
		},
	}
	uc := NewOperatorActionUseCase(lifecycle, zap.NewNop())
	ctx := context.Background()

	view, err := uc.PerformAction(ctx, operator, "o-1", dto.OperatorActionRequest{
		Action: "input_account", AccountEmail: "acc@game.com", AccountPassword: "hunter2",
	})
	require.NoError(t, err)
	assert.Equal(t, "input_account", got.action)
	assert.Equal(t, "acc@game.com", got.email)
	assert.Equal(t, "hunter2", got.password)
	// Operators see the staged credentials in the action response.
	require.NotNil(t, view.AccountEmail)

	_, err = uc.PerformAction(ctx, operator, "o-1", dto.OperatorActionRequest{
		Action: "deliver", DeliveryMethod: "email",
	})
	require.NoError(t, err)
	assert.Equal(t, "deliver", got.action)
	assert.Equal(t, "email", got.method)

	for _, action := range []string{"verify_payment", "cancel", "refund"} {
		_, err := uc.PerformAction(ctx, operator, "o-1", dto.OperatorActionRequest{Action: action})
		require.NoError(t, err)
		assert.Equal(t, action, got.action)
	}
}

func TestPerformAction_UnknownAction(t *testing.T) {
	uc := NewOperatorActionUseCase(&mockOperatorLifecycle{}, zap.NewNop())

	// Internal-only transitions are not reachable through the action endpoint.
	for _, action := range []string{"expire", "customer_cancel"} {
		_, err := uc.PerformAction(context.Background(), operator, "o-1",
			dto.OperatorActionRequest{Action: action})

		ve, ok := apperrors.IsValidationError(err)
		require.True(t, ok)
		assert.Contains(t, ve.Details[0].Message, "verify_payment")
	}
}

func TestDeleteOrder_RequiresOperatorRole(t *testing.T) {
	deleted := false
	lifecycle := &mockOperatorLifecycle{
		DeleteFunc: func(ctx context.Context, id string) error {
			deleted = true
			return nil
		},
	}
	uc := NewOperatorActionUseCase(lifecycle, zap.NewNop())
	ctx := context.Background()

	err := uc.DeleteOrder(ctx, customer, "o-1")
	_, ok := apperrors.IsUnauthorizedError(err)
	assert.True(t, ok)
	assert.False(t, deleted)

	require.NoError(t, uc.DeleteOrder(ctx, operator, "o-1"))
	assert.True(t, deleted)
}

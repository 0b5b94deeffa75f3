package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextState_LegalTransitions(t *testing.T) {
	tests := []struct {
		name   string
		from   OrderState
		action Action
		want   OrderState
	}{
		{
			name:   "select method from waiting",
			from:   OrderState{FulfillmentPending, PaymentWaiting},
			action: ActionSelectMethod,
			want:   OrderState{FulfillmentPending, PaymentPending},
		},
		{
			name:   "reselect method while pending",
			from:   OrderState{FulfillmentPending, PaymentPending},
			action: ActionSelectMethod,
			want:   OrderState{FulfillmentPending, PaymentPending},
		},
		{
			name:   "confirm is a no-op",
			from:   OrderState{FulfillmentPending, PaymentPending},
			action: ActionConfirmPayment,
			want:   OrderState{FulfillmentPending, PaymentPending},
		},
		{
			name:   "verify payment",
			from:   OrderState{FulfillmentPending, PaymentPending},
			action: ActionVerifyPayment,
			want:   OrderState{FulfillmentProcessing, PaymentSuccess},
		},
		{
			name:   "input account keeps state",
			from:   OrderState{FulfillmentProcessing, PaymentSuccess},
			action: ActionInputAccount,
			want:   OrderState{FulfillmentProcessing, PaymentSuccess},
		},
		{
			name:   "deliver completes",
			from:   OrderState{FulfillmentProcessing, PaymentSuccess},
			action: ActionDeliver,
			want:   OrderState{FulfillmentCompleted, PaymentSuccess},
		},
		{
			name:   "cancel pending keeps payment status",
			from:   OrderState{FulfillmentPending, PaymentWaiting},
			action: ActionCancel,
			want:   OrderState{FulfillmentCancelled, PaymentWaiting},
		},
		{
			name:   "cancel processing",
			from:   OrderState{FulfillmentProcessing, PaymentSuccess},
			action: ActionCancel,
			want:   OrderState{FulfillmentCancelled, PaymentSuccess},
		},
		{
			name:   "customer cancel pending",
			from:   OrderState{FulfillmentPending, PaymentWaiting},
			action: ActionCustomerCancel,
			want:   OrderState{FulfillmentCancelled, PaymentWaiting},
		},
		{
			name:   "customer cancel pending payment",
			from:   OrderState{FulfillmentPending, PaymentPending},
			action: ActionCustomerCancel,
			want:   OrderState{FulfillmentCancelled, PaymentPending},
		},
		{
			name:   "refund processing",
			from:   OrderState{FulfillmentProcessing, PaymentSuccess},
			action: ActionRefund,
			want:   OrderState{FulfillmentCancelled, PaymentSuccess},
		},
		{
			name:   "expire waiting",
			from:   OrderState{FulfillmentPending, PaymentWaiting},
			action: ActionExpire,
			want:   OrderState{FulfillmentCancelled, PaymentExpired},
		},
		{
			name:   "expire pending payment",
			from:   OrderState{FulfillmentPending, PaymentPending},
			action: ActionExpire,
			want:   OrderState{FulfillmentCancelled, PaymentExpired},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NextState(tt.from, tt.action)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNextState_IllegalTransitions(t *testing.T) {
	tests := []struct {
		name   string
		from   OrderState
		action Action
	}{
		{"verify before method selected", OrderState{FulfillmentPending, PaymentWaiting}, ActionVerifyPayment},
		{"verify already processing", OrderState{FulfillmentProcessing, PaymentSuccess}, ActionVerifyPayment},
		{"verify completed order", OrderState{FulfillmentCompleted, PaymentSuccess}, ActionVerifyPayment},
		{"deliver before verification", OrderState{FulfillmentPending, PaymentPending}, ActionDeliver},
		{"deliver twice", OrderState{FulfillmentCompleted, PaymentSuccess}, ActionDeliver},
		{"input account before verification", OrderState{FulfillmentPending, PaymentPending}, ActionInputAccount},
		{"confirm before method selected", OrderState{FulfillmentPending, PaymentWaiting}, ActionConfirmPayment},
		{"confirm after verification", OrderState{FulfillmentProcessing, PaymentSuccess}, ActionConfirmPayment},
		{"select method after verification", OrderState{FulfillmentProcessing, PaymentSuccess}, ActionSelectMethod},
		{"select method on cancelled order", OrderState{FulfillmentCancelled, PaymentExpired}, ActionSelectMethod},
		{"cancel completed order", OrderState{FulfillmentCompleted, PaymentSuccess}, ActionCancel},
		{"cancel cancelled order", OrderState{FulfillmentCancelled, PaymentExpired}, ActionCancel},
		{"customer cancel processing order", OrderState{FulfillmentProcessing, PaymentSuccess}, ActionCustomerCancel},
		{"customer cancel completed order", OrderState{FulfillmentCompleted, PaymentSuccess}, ActionCustomerCancel},
		{"refund before verification", OrderState{FulfillmentPending, PaymentPending}, ActionRefund},
		{"refund completed order", OrderState{FulfillmentCompleted, PaymentSuccess}, ActionRefund},
		{"expire processing order", OrderState{FulfillmentProcessing, PaymentSuccess}, ActionExpire},
		{"expire verified payment", OrderState{FulfillmentPending, PaymentSuccess}, ActionExpire},
		{"unknown action", OrderState{FulfillmentPending, PaymentWaiting}, Action("teleport")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NextState(tt.from, tt.action)
			assert.Error(t, err)
			assert.Contains(t, err.Error(), "not valid")
		})
	}
}

func TestOrder_PaymentExpired(t *testing.T) {
	now := time.Now()

	order := Order{
		FulfillmentStatus: FulfillmentPending,
		PaymentStatus:     PaymentWaiting,
		PaymentExpiry:     now.Add(-time.Minute),
	}
	assert.True(t, order.PaymentExpired(now))

	order.PaymentExpiry = now.Add(time.Minute)
	assert.False(t, order.PaymentExpired(now))

	// A verified payment never expires, however old.
	order.PaymentExpiry = now.Add(-time.Hour)
	order.PaymentStatus = PaymentSuccess
	assert.False(t, order.PaymentExpired(now))

	// Neither does an order already picked up or terminal.
	order.PaymentStatus = PaymentPending
	order.FulfillmentStatus = FulfillmentCancelled
	assert.False(t, order.PaymentExpired(now))
}

func TestOrder_HasCredentials(t *testing.T) {
	email := "acc@example.com"
	password := "hunter2"

	order := Order{}
	assert.False(t, order.HasCredentials())

	order.AccountEmail = &email
	assert.False(t, order.HasCredentials())

	order.AccountPassword = &password
	assert.True(t, order.HasCredentials())
}

func TestParsePaymentMethod(t *testing.T) {
	for _, valid := range []string{"BANK_TRANSFER", "EWALLET", "QRIS"} {
		method, err := ParsePaymentMethod(valid)
		require.NoError(t, err)
		assert.Equal(t, PaymentMethod(valid), method)
	}

	_, err := ParsePaymentMethod("CASH")
	assert.Error(t, err)
}

package domain

import (
	"fmt"
	"time"
)

type FulfillmentStatus string

const (
	FulfillmentPending    FulfillmentStatus = "PENDING"
	FulfillmentProcessing FulfillmentStatus = "PROCESSING"
	FulfillmentCompleted  FulfillmentStatus = "COMPLETED"
	FulfillmentCancelled  FulfillmentStatus = "CANCELLED"
)

type PaymentStatus string

const (
	PaymentWaiting PaymentStatus = "WAITING"
	PaymentPending PaymentStatus = "PENDING"
	PaymentSuccess PaymentStatus = "SUCCESS"
	PaymentFailed  PaymentStatus = "FAILED"
	PaymentExpired PaymentStatus = "EXPIRED"
)

type PaymentMethod string

const (
	MethodBankTransfer PaymentMethod = "BANK_TRANSFER"
	MethodEWallet      PaymentMethod = "EWALLET"
	MethodQRIS         PaymentMethod = "QRIS"
)

func ParsePaymentMethod(s string) (PaymentMethod, error) {
	switch PaymentMethod(s) {
	case MethodBankTransfer, MethodEWallet, MethodQRIS:
		return PaymentMethod(s), nil
	}
	return "", fmt.Errorf("unknown payment method %q", s)
}

// Order is a single customer transaction for one product line. Customer and
// product fields are snapshots taken at checkout time; later changes to the
// customer record or the catalog never alter an existing order.
type Order struct {
	ID          string
	OrderNumber uint64

	CustomerID    string
	CustomerName  string
	CustomerPhone string

	ProductID    int
	ProductName  string
	ProductPrice float64
	Quantity     int
	TotalPrice   float64

	FulfillmentStatus FulfillmentStatus
	PaymentStatus     PaymentStatus
	PaymentMethod     *PaymentMethod
	PaymentExpiry     time.Time

	AssignedFulfillerID *uint

	AccountEmail    *string
	AccountPassword *string
	DeliveryMethod  *string
	DeliveredAt     *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (o *Order) State() OrderState {
	return OrderState{Fulfillment: o.FulfillmentStatus, Payment: o.PaymentStatus}
}

func (o *Order) HasCredentials() bool {
	return o.AccountEmail != nil && o.AccountPassword != nil
}

// PaymentExpired reports whether the payment window has elapsed without a
// human confirming success or failure. Only orders still PENDING on the
// fulfillment side can expire.
func (o *Order) PaymentExpired(now time.Time) bool {
	if o.FulfillmentStatus != FulfillmentPending {
		return false
	}
	if o.PaymentStatus != PaymentWaiting && o.PaymentStatus != PaymentPending {
		return false
	}
	return now.After(o.PaymentExpiry)
}

// OrderState is the pair of parallel status fields the lifecycle state
// machine operates on.
type OrderState struct {
	Fulfillment FulfillmentStatus
	Payment     PaymentStatus
}

func (s OrderState) String() string {
	return fmt.Sprintf("(%s, %s)", s.Fulfillment, s.Payment)
}

type Action string

const (
	ActionSelectMethod   Action = "select_method"
	ActionConfirmPayment Action = "confirm_payment"
	ActionVerifyPayment  Action = "verify_payment"
	ActionInputAccount   Action = "input_account"
	ActionDeliver        Action = "deliver"
	ActionCancel         Action = "cancel"
	ActionCustomerCancel Action = "customer_cancel"
	ActionRefund         Action = "refund"
	ActionExpire         Action = "expire"
)

// NextState is the transition table of the order lifecycle. Any (state,
// action) pair not listed here is an illegal transition and returns an error;
// the only silent no-op is the advisory confirm step, which leaves the state
// unchanged.
func NextState(s OrderState, a Action) (OrderState, error) {
	switch a {
	case ActionSelectMethod:
		if s.Fulfillment == FulfillmentPending && (s.Payment == PaymentWaiting || s.Payment == PaymentPending) {
			return OrderState{FulfillmentPending, PaymentPending}, nil
		}
	case ActionConfirmPayment:
		if s.Fulfillment == FulfillmentPending && s.Payment == PaymentPending {
			return s, nil
		}
	case ActionVerifyPayment:
		if s.Fulfillment == FulfillmentPending && s.Payment == PaymentPending {
			return OrderState{FulfillmentProcessing, PaymentSuccess}, nil
		}
	case ActionInputAccount:
		if s.Fulfillment == FulfillmentProcessing && s.Payment == PaymentSuccess {
			return s, nil
		}
	case ActionDeliver:
		if s.Fulfillment == FulfillmentProcessing && s.Payment == PaymentSuccess {
			return OrderState{FulfillmentCompleted, PaymentSuccess}, nil
		}
	case ActionCancel:
		if s.Fulfillment == FulfillmentPending || s.Fulfillment == FulfillmentProcessing {
			return OrderState{FulfillmentCancelled, s.Payment}, nil
		}
	case ActionCustomerCancel:
		// Customers may only back out before a fulfiller picks the order up.
		// Keeping this as its own action puts the restriction inside the
		// guarded update, not just in a check-then-act at the caller.
		if s.Fulfillment == FulfillmentPending {
			return OrderState{FulfillmentCancelled, s.Payment}, nil
		}
	case ActionRefund:
		if s.Fulfillment == FulfillmentProcessing && s.Payment == PaymentSuccess {
			return OrderState{FulfillmentCancelled, s.Payment}, nil
		}
	case ActionExpire:
		if s.Fulfillment == FulfillmentPending && (s.Payment == PaymentWaiting || s.Payment == PaymentPending) {
			return OrderState{FulfillmentCancelled, PaymentExpired}, nil
		}
	}
	return OrderState{}, fmt.Errorf("action %s is not valid from state %s", a, s)
}

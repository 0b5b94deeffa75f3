package notification

import (
	"fmt"

	"playvault/internal/domain"
)

// Message rendering for the lifecycle transitions. Texts are intentionally
// plain; the gateway handles formatting quirks per channel.

func OrderCreatedForFulfiller(o *domain.Order) string {
	return fmt.Sprintf(
		"New order #%d: %s x%d for %s (%s). Total %.0f. Awaiting payment.",
		o.OrderNumber, o.ProductName, o.Quantity, o.CustomerName, o.CustomerPhone, o.TotalPrice,
	)
}

func PaymentSelectedForCustomer(o *domain.Order) string {
	method := ""
	if o.PaymentMethod != nil {
		method = string(*o.PaymentMethod)
	}
	return fmt.Sprintf(
		"Order #%d: complete your %s payment of %.0f before %s.",
		o.OrderNumber, method, o.TotalPrice, o.PaymentExpiry.Format("15:04 02 Jan 2006"),
	)
}

func PaymentConfirmedForFulfiller(o *domain.Order) string {
	method := "unknown method"
	if o.PaymentMethod != nil {
		method = string(*o.PaymentMethod)
	}
	return fmt.Sprintf(
		"Order #%d: customer reports payment via %s. Please verify.",
		o.OrderNumber, method,
	)
}

func PaymentVerifiedForCustomer(o *domain.Order) string {
	return fmt.Sprintf(
		"Your order #%d is confirmed and being processed. We will deliver your account shortly.",
		o.OrderNumber,
	)
}

func DeliveredForCustomer(o *domain.Order) string {
	return fmt.Sprintf(
		"Your order #%d is complete. Account details have been delivered via %s.",
		o.OrderNumber, derefOr(o.DeliveryMethod, "your chosen channel"),
	)
}

func CancelledForCustomer(o *domain.Order) string {
	return fmt.Sprintf("Your order #%d has been cancelled.", o.OrderNumber)
}

func RefundedForCustomer(o *domain.Order) string {
	return fmt.Sprintf("Your order #%d has been cancelled and will be refunded.", o.OrderNumber)
}

func ExpiredForCustomer(o *domain.Order) string {
	return fmt.Sprintf(
		"Your order #%d expired because payment was not received in time.",
		o.OrderNumber,
	)
}

func derefOr(s *string, fallback string) string {
	if s == nil {
		return fallback
	}
	return *s
}

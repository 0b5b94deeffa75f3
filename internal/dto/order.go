package dto

import (
	"time"

	"playvault/internal/domain"
)

type CheckoutRequest struct {
	CustomerName  string `json:"customerName"`
	CustomerPhone string `json:"customerPhone"`
	ProductID     int    `json:"productId"`
	Quantity      int    `json:"quantity"`
}

type CheckoutResponse struct {
	OrderID       string    `json:"orderId"`
	OrderNumber   uint64    `json:"orderNumber"`
	Total         float64   `json:"total"`
	PaymentExpiry time.Time `json:"paymentExpiry"`
}

type SelectPaymentMethodRequest struct {
	Method string `json:"method"`
}

type OperatorActionRequest struct {
	Action          string `json:"action"`
	AccountEmail    string `json:"accountEmail,omitempty"`
	AccountPassword string `json:"accountPassword,omitempty"`
	DeliveryMethod  string `json:"deliveryMethod,omitempty"`
}

type OrderListFilter struct {
	// CustomerID is filled by the usecase from the caller context, never from
	// client input.
	CustomerID        string
	FulfillmentStatus *domain.FulfillmentStatus
	Search            string
}

// OrderView is the externally visible projection of an order. Credentials
// appear only when the builder is told the caller may see them.
type OrderView struct {
	ID                  string     `json:"id"`
	OrderNumber         uint64     `json:"orderNumber"`
	CustomerID          string     `json:"customerId"`
	CustomerName        string     `json:"customerName"`
	CustomerPhone       string     `json:"customerPhone"`
	ProductID           int        `json:"productId"`
	ProductName         string     `json:"productName"`
	ProductPrice        float64    `json:"productPrice"`
	Quantity            int        `json:"quantity"`
	TotalPrice          float64    `json:"totalPrice"`
	FulfillmentStatus   string     `json:"fulfillmentStatus"`
	PaymentStatus       string     `json:"paymentStatus"`
	PaymentMethod       *string    `json:"paymentMethod"`
	PaymentExpiry       time.Time  `json:"paymentExpiry"`
	AssignedFulfillerID *uint      `json:"assignedFulfillerId"`
	AccountEmail        *string    `json:"accountEmail,omitempty"`
	AccountPassword     *string    `json:"accountPassword,omitempty"`
	DeliveryMethod      *string    `json:"deliveryMethod"`
	DeliveredAt         *time.Time `json:"deliveredAt"`
	CreatedAt           time.Time  `json:"createdAt"`
	UpdatedAt           time.Time  `json:"updatedAt"`
}

func NewOrderView(o *domain.Order, withCredentials bool) OrderView {
	view := OrderView{
		ID:                  o.ID,
		OrderNumber:         o.OrderNumber,
		CustomerID:          o.CustomerID,
		CustomerName:        o.CustomerName,
		CustomerPhone:       o.CustomerPhone,
		ProductID:           o.ProductID,
		ProductName:         o.ProductName,
		ProductPrice:        o.ProductPrice,
		Quantity:            o.Quantity,
		TotalPrice:          o.TotalPrice,
		FulfillmentStatus:   string(o.FulfillmentStatus),
		PaymentStatus:       string(o.PaymentStatus),
		PaymentExpiry:       o.PaymentExpiry,
		AssignedFulfillerID: o.AssignedFulfillerID,
		DeliveryMethod:      o.DeliveryMethod,
		DeliveredAt:         o.DeliveredAt,
		CreatedAt:           o.CreatedAt,
		UpdatedAt:           o.UpdatedAt,
	}
	if o.PaymentMethod != nil {
		m := string(*o.PaymentMethod)
		view.PaymentMethod = &m
	}
	if withCredentials {
		view.AccountEmail = o.AccountEmail
		view.AccountPassword = o.AccountPassword
	}
	return view
}

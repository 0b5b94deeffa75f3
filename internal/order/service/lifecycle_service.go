package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"playvault/internal/domain"
	"playvault/internal/dto"
	apperrors "playvault/internal/errors"
	"playvault/internal/notification"
)

type OrderRepository interface {
	Insert(ctx context.Context, order *domain.Order) error
	FindByID(ctx context.Context, id string) (*domain.Order, error)
	List(ctx context.Context, filter dto.OrderListFilter) ([]domain.Order, error)
	UpdateState(ctx context.Context, id string, from, to domain.OrderState) error
	SelectPaymentMethod(ctx context.Context, id string, from domain.OrderState, method domain.PaymentMethod) error
	SaveCredentials(ctx context.Context, id string, email, password string) error
	MarkDelivered(ctx context.Context, id string, deliveryMethod string, deliveredAt time.Time) error
	Delete(ctx context.Context, id string) error
}

type FulfillerDirectory interface {
	FindByID(ctx context.Context, id uint) (*domain.Fulfiller, error)
}

type PaymentMethodSource interface {
	ListEnabled(ctx context.Context) ([]domain.PaymentMethod, error)
}

type Assigner interface {
	NextFulfiller(ctx context.Context) *domain.Fulfiller
}

type Notifier interface {
	Notify(phone, text string)
}

// LifecycleService drives orders through the fulfillment/payment state
// machine. Every transition is validated against domain.NextState on a fresh
// read, then applied as a guarded update; notifications go out only after the
// write succeeded and never affect the outcome.
type LifecycleService struct {
	orders        OrderRepository
	fulfillers    FulfillerDirectory
	methods       PaymentMethodSource
	assigner      Assigner
	notifier      Notifier
	logger        *zap.Logger
	paymentWindow time.Duration
	now           func() time.Time
}

func NewLifecycleService(
	orders OrderRepository,
	fulfillers FulfillerDirectory,
	methods PaymentMethodSource,
	assigner Assigner,
	notifier Notifier,
	logger *zap.Logger,
	paymentWindow time.Duration,
) *LifecycleService {
	return &LifecycleService{
		orders:        orders,
		fulfillers:    fulfillers,
		methods:       methods,
		assigner:      assigner,
		notifier:      notifier,
		logger:        logger,
		paymentWindow: paymentWindow,
		now:           time.Now,
	}
}

type CheckoutDraft struct {
	CustomerID    string
	CustomerName  string
	CustomerPhone string
	Product       *domain.Product
	Quantity      int
}

func (s *LifecycleService) Checkout(ctx context.Context, draft CheckoutDraft) (*domain.Order, error) {
	var details []apperrors.ValidationDetail
	if draft.CustomerName == "" {
		details = append(details, apperrors.ValidationDetail{Field: "customerName", Message: "customerName is required"})
	}
	if draft.CustomerPhone == "" {
		details = append(details, apperrors.ValidationDetail{Field: "customerPhone", Message: "customerPhone is required"})
	}
	if draft.Quantity < 1 {
		details = append(details, apperrors.ValidationDetail{Field: "quantity", Message: "quantity must be at least 1"})
	}
	if draft.Product == nil {
		details = append(details, apperrors.ValidationDetail{Field: "productId", Message: "product is required"})
	} else if !draft.Product.IsActive {
		details = append(details, apperrors.ValidationDetail{Field: "productId", Message: "product is not available"})
	}
	if len(details) > 0 {
		return nil, apperrors.NewValidationError("invalid checkout request", details...)
	}

	now := s.now()
	order := &domain.Order{
		ID:                uuid.New().String(),
		CustomerID:        draft.CustomerID,
		CustomerName:      draft.CustomerName,
		CustomerPhone:     draft.CustomerPhone,
		ProductID:         draft.Product.ID,
		ProductName:       draft.Product.Name,
		ProductPrice:      draft.Product.Price,
		Quantity:          draft.Quantity,
		TotalPrice:        draft.Product.Price * float64(draft.Quantity),
		FulfillmentStatus: domain.FulfillmentPending,
		PaymentStatus:     domain.PaymentWaiting,
		PaymentExpiry:     now.Add(s.paymentWindow),
	}

	if fulfiller := s.assigner.NextFulfiller(ctx); fulfiller != nil {
		order.AssignedFulfillerID = &fulfiller.ID
	}

	if err := s.orders.Insert(ctx, order); err != nil {
		return nil, err
	}

	// The order is durable at this point; failing the read-back is an
	// infrastructure problem, not a rejected checkout.
	created, err := s.orders.FindByID(ctx, order.ID)
	if err != nil {
		return nil, apperrors.NewInternalError("reading back created order", err)
	}

	s.logger.Info("order created",
		zap.String("orderId", created.ID),
		zap.Uint64("orderNumber", created.OrderNumber),
		zap.Float64("total", created.TotalPrice),
	)
	s.notifyFulfiller(ctx, created, notification.OrderCreatedForFulfiller(created))

	return created, nil
}

func (s *LifecycleService) Get(ctx context.Context, id string) (*domain.Order, error) {
	order, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.sweepExpiry(ctx, order)
}

func (s *LifecycleService) List(ctx context.Context, filter dto.OrderListFilter) ([]domain.Order, error) {
	orders, err := s.orders.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	for i := range orders {
		swept, err := s.sweepExpiry(ctx, &orders[i])
		if err != nil {
			return nil, err
		}
		orders[i] = *swept
	}

	return orders, nil
}

func (s *LifecycleService) SelectPaymentMethod(ctx context.Context, id string, method domain.PaymentMethod) (*domain.Order, error) {
	order, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	enabled, err := s.methods.ListEnabled(ctx)
	if err != nil {
		return nil, err
	}
	if !containsMethod(enabled, method) {
		return nil, apperrors.NewValidationError("payment method " + string(method) + " is not currently enabled")
	}

	from := order.State()
	if _, err := domain.NextState(from, domain.ActionSelectMethod); err != nil {
		return nil, apperrors.NewConflictError(err.Error())
	}

	if err := s.orders.SelectPaymentMethod(ctx, id, from, method); err != nil {
		return nil, err
	}

	updated, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.notifier.Notify(updated.CustomerPhone, notification.PaymentSelectedForCustomer(updated))
	return updated, nil
}

// ConfirmPayment is the customer's advisory "I have paid" signal. It changes
// no state (verification is a human action) and is idempotent while the order
// sits in (PENDING, PENDING); the assigned fulfiller is nudged to verify.
func (s *LifecycleService) ConfirmPayment(ctx context.Context, id string) (*domain.Order, error) {
	order, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if _, err := domain.NextState(order.State(), domain.ActionConfirmPayment); err != nil {
		return nil, apperrors.NewConflictError(err.Error())
	}

	s.notifyFulfiller(ctx, order, notification.PaymentConfirmedForFulfiller(order))
	return order, nil
}

func (s *LifecycleService) VerifyPayment(ctx context.Context, id string) (*domain.Order, error) {
	order, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	from := order.State()
	to, err := domain.NextState(from, domain.ActionVerifyPayment)
	if err != nil {
		return nil, apperrors.NewConflictError(err.Error())
	}

	if err := s.orders.UpdateState(ctx, id, from, to); err != nil {
		return nil, err
	}

	updated, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.logger.Info("payment verified", zap.String("orderId", id))
	s.notifier.Notify(updated.CustomerPhone, notification.PaymentVerifiedForCustomer(updated))
	return updated, nil
}

func (s *LifecycleService) InputAccount(ctx context.Context, id string, email, password string) (*domain.Order, error) {
	var details []apperrors.ValidationDetail
	if email == "" {
		details = append(details, apperrors.ValidationDetail{Field: "accountEmail", Message: "accountEmail is required"})
	}
	if password == "" {
		details = append(details, apperrors.ValidationDetail{Field: "accountPassword", Message: "accountPassword is required"})
	}
	if len(details) > 0 {
		return nil, apperrors.NewValidationError("account credentials must be supplied together", details...)
	}

	order, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if _, err := domain.NextState(order.State(), domain.ActionInputAccount); err != nil {
		return nil, apperrors.NewConflictError(err.Error())
	}

	if err := s.orders.SaveCredentials(ctx, id, email, password); err != nil {
		return nil, err
	}

	return s.orders.FindByID(ctx, id)
}

func (s *LifecycleService) Deliver(ctx context.Context, id string, deliveryMethod string) (*domain.Order, error) {
	if deliveryMethod == "" {
		return nil, apperrors.NewValidationError("deliveryMethod is required",
			apperrors.ValidationDetail{Field: "deliveryMethod", Message: "deliveryMethod is required"})
	}

	order, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if _, err := domain.NextState(order.State(), domain.ActionDeliver); err != nil {
		return nil, apperrors.NewConflictError(err.Error())
	}
	if !order.HasCredentials() {
		return nil, apperrors.NewConflictError("account credentials must be entered before delivery")
	}

	if err := s.orders.MarkDelivered(ctx, id, deliveryMethod, s.now()); err != nil {
		return nil, err
	}

	updated, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.logger.Info("order delivered",
		zap.String("orderId", id),
		zap.String("deliveryMethod", deliveryMethod),
	)
	s.notifier.Notify(updated.CustomerPhone, notification.DeliveredForCustomer(updated))
	return updated, nil
}

func (s *LifecycleService) Cancel(ctx context.Context, id string) (*domain.Order, error) {
	return s.terminate(ctx, id, domain.ActionCancel)
}

// CancelByCustomer cancels on behalf of the order's owner. Unlike the
// operator path it only reaches PENDING orders, and because customer_cancel
// carries that restriction through the guarded update, a verification landing
// between the caller's read and this write makes the guard miss: the cancel
// is rejected instead of tearing down a verified order.
func (s *LifecycleService) CancelByCustomer(ctx context.Context, id string) (*domain.Order, error) {
	return s.terminate(ctx, id, domain.ActionCustomerCancel)
}

// Refund is the operator remediation path for a verified order whose
// fulfillment stalled.
func (s *LifecycleService) Refund(ctx context.Context, id string) (*domain.Order, error) {
	return s.terminate(ctx, id, domain.ActionRefund)
}

func (s *LifecycleService) terminate(ctx context.Context, id string, action domain.Action) (*domain.Order, error) {
	order, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	from := order.State()
	to, err := domain.NextState(from, action)
	if err != nil {
		return nil, apperrors.NewConflictError(err.Error())
	}

	if err := s.orders.UpdateState(ctx, id, from, to); err != nil {
		return nil, err
	}

	updated, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.logger.Info("order terminated",
		zap.String("orderId", id),
		zap.String("action", string(action)),
	)
	if action == domain.ActionRefund {
		s.notifier.Notify(updated.CustomerPhone, notification.RefundedForCustomer(updated))
	} else {
		s.notifier.Notify(updated.CustomerPhone, notification.CancelledForCustomer(updated))
	}
	return updated, nil
}

func (s *LifecycleService) Delete(ctx context.Context, id string) error {
	return s.orders.Delete(ctx, id)
}

// sweepExpiry applies the lazy payment-window check. There is no background
// timer: an overdue order is expired on the next read, with the guarded
// update ensuring exactly one writer wins the crossing. Losing the guard
// means someone else already expired it, so we just re-read.
func (s *LifecycleService) sweepExpiry(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	if !order.PaymentExpired(s.now()) {
		return order, nil
	}

	from := order.State()
	to, err := domain.NextState(from, domain.ActionExpire)
	if err != nil {
		return order, nil
	}

	if err := s.orders.UpdateState(ctx, order.ID, from, to); err != nil {
		if _, ok := apperrors.IsConflictError(err); ok {
			return s.orders.FindByID(ctx, order.ID)
		}
		return nil, err
	}

	expired, err := s.orders.FindByID(ctx, order.ID)
	if err != nil {
		return nil, err
	}

	s.logger.Info("order expired",
		zap.String("orderId", order.ID),
		zap.Time("paymentExpiry", order.PaymentExpiry),
	)
	s.notifier.Notify(expired.CustomerPhone, notification.ExpiredForCustomer(expired))
	return expired, nil
}

func (s *LifecycleService) notifyFulfiller(ctx context.Context, order *domain.Order, text string) {
	if order.AssignedFulfillerID == nil {
		s.logger.Debug("order has no assigned fulfiller, skipping notification", zap.String("orderId", order.ID))
		return
	}

	fulfiller, err := s.fulfillers.FindByID(ctx, *order.AssignedFulfillerID)
	if err != nil {
		s.logger.Warn("looking up assigned fulfiller failed",
			zap.String("orderId", order.ID),
			zap.Uint("fulfillerId", *order.AssignedFulfillerID),
			zap.Error(err),
		)
		return
	}

	s.notifier.Notify(fulfiller.Phone, text)
}

func containsMethod(methods []domain.PaymentMethod, m domain.PaymentMethod) bool {
	for _, candidate := range methods {
		if candidate == m {
			return true
		}
	}
	return false
}

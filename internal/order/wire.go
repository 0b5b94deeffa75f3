package order

import (
	"database/sql"

	"go.uber.org/zap"

	catalogrepo "playvault/internal/catalog/repository"
	"playvault/internal/config"
	fulfillerrepo "playvault/internal/fulfiller/repository"
	"playvault/internal/notification"
	"playvault/internal/order/controller"
	orderrepo "playvault/internal/order/repository"
	"playvault/internal/order/service"
	"playvault/internal/order/usecase"
	paymentrepo "playvault/internal/payment/repository"
)

func NewModule(db *sql.DB, cfg *config.Config, dispatcher *notification.Dispatcher, logger *zap.Logger) (*controller.OrderController, *controller.AdminOrderController) {
	orderRepo := orderrepo.NewMySQLOrderRepository(db)
	fulfillerRepo := fulfillerrepo.NewMySQLFulfillerRepository(db)
	productRepo := catalogrepo.NewMySQLProductRepository(db)
	methodRepo := paymentrepo.NewMySQLPaymentMethodRepository(db)

	assignmentSvc := service.NewAssignmentService(fulfillerRepo, orderRepo, logger)
	lifecycleSvc := service.NewLifecycleService(
		orderRepo,
		fulfillerRepo,
		methodRepo,
		assignmentSvc,
		dispatcher,
		logger,
		cfg.Order.PaymentWindow,
	)

	checkoutUC := usecase.NewCheckoutUseCase(productRepo, lifecycleSvc, logger)
	customerUC := usecase.NewCustomerOrderUseCase(lifecycleSvc)
	operatorUC := usecase.NewOperatorActionUseCase(lifecycleSvc, logger)

	orderCtrl := controller.NewOrderController(checkoutUC, customerUC, logger)
	adminCtrl := controller.NewAdminOrderController(operatorUC, logger)

	return orderCtrl, adminCtrl
}

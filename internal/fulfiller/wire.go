package fulfiller

import (
	"database/sql"

	"go.uber.org/zap"

	"playvault/internal/fulfiller/controller"
	fulfillerrepo "playvault/internal/fulfiller/repository"
	"playvault/internal/fulfiller/service"
	orderrepo "playvault/internal/order/repository"
)

func NewModule(db *sql.DB, logger *zap.Logger) *controller.FulfillerController {
	fulfillerRepo := fulfillerrepo.NewMySQLFulfillerRepository(db)
	orderRepo := orderrepo.NewMySQLOrderRepository(db)

	rosterSvc := service.NewRosterService(db, fulfillerRepo, orderRepo, logger)

	return controller.NewFulfillerController(rosterSvc, logger)
}

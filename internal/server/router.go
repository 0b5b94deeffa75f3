package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"playvault/internal/auth"
	fulfillerctrl "playvault/internal/fulfiller/controller"
	orderctrl "playvault/internal/order/controller"
)

func NewRouter(
	orderCtrl *orderctrl.OrderController,
	adminCtrl *orderctrl.AdminOrderController,
	fulfillerCtrl *fulfillerctrl.FulfillerController,
	logger *zap.Logger,
) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Route("/api", func(r chi.Router) {
		r.Use(auth.Middleware)

		r.Route("/orders", func(r chi.Router) {
			r.Post("/", orderCtrl.Checkout)
			r.Get("/", orderCtrl.ListOrders)
			r.Get("/{orderId}", orderCtrl.GetOrder)
			r.Post("/{orderId}/payment-method", orderCtrl.SelectPaymentMethod)
			r.Post("/{orderId}/confirm", orderCtrl.ConfirmPayment)
			r.Post("/{orderId}/cancel", orderCtrl.CancelOrder)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Post("/orders/{orderId}/actions", adminCtrl.PerformAction)
			r.Delete("/orders/{orderId}", adminCtrl.DeleteOrder)

			r.Get("/fulfillers", fulfillerCtrl.List)
			r.Post("/fulfillers", fulfillerCtrl.Create)
			r.Patch("/fulfillers/{fulfillerId}", fulfillerCtrl.Update)
			r.Delete("/fulfillers/{fulfillerId}", fulfillerCtrl.Delete)
		})
	})

	return r
}

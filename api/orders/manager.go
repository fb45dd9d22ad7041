package orders

import (
	"saraylidoener_server/services"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

type OrderRoutesManager struct {
	logger       *gecho.Logger
	orderService *services.OrderService
	storeService *services.StoreService
}

func NewOrderRoutesManager(logger *gecho.Logger, orderService *services.OrderService, storeService *services.StoreService) *OrderRoutesManager {
	return &OrderRoutesManager{
		logger:       logger,
		orderService: orderService,
		storeService: storeService,
	}
}

func (orm *OrderRoutesManager) RegisterRoutes(r chi.Router) {
	r.Route("/api", func(r chi.Router) {
		r.Post("/checkout", orm.Checkout)
		r.Get("/orders/{orderNumber}/status", orm.OrderStatus)
		r.Post("/orders/{orderNumber}/cancellation-request", orm.RequestCancellation)
	})
}

package admin

import (
	"saraylidoener_server/api/middleware"
	"saraylidoener_server/services"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

const orderPageSize = 25

type AdminRoutesManager struct {
	logger           *gecho.Logger
	mw               *middleware.Middleware
	sessionService   *services.SessionService
	orderService     *services.OrderService
	analyticsService *services.AnalyticsService
	storeService     *services.StoreService
}

func NewAdminRoutesManager(
	logger *gecho.Logger,
	mw *middleware.Middleware,
	sessionService *services.SessionService,
	orderService *services.OrderService,
	analyticsService *services.AnalyticsService,
	storeService *services.StoreService,
) *AdminRoutesManager {
	return &AdminRoutesManager{
		logger:           logger,
		mw:               mw,
		sessionService:   sessionService,
		orderService:     orderService,
		analyticsService: analyticsService,
		storeService:     storeService,
	}
}

func (arm *AdminRoutesManager) RegisterRoutes(r chi.Router) {
	r.Route("/admin", func(r chi.Router) {
		r.Post("/login", arm.Login)
		r.Post("/logout", arm.Logout)

		// Everything below requires a live session
		r.Group(func(r chi.Router) {
			r.Use(arm.mw.AdminAuthMiddleware)

			r.Get("/orders", arm.ListOrders)
			r.Get("/orders/{id}", arm.GetOrder)
			r.Put("/orders/{id}/status", arm.UpdateOrderStatus)
			r.Post("/orders/{id}/fulfill", arm.FulfillOrder)
			r.Post("/orders/{id}/refund", arm.RefundOrder)

			r.Get("/analytics", arm.GetAnalytics)
			r.Get("/visitors/{id}", arm.GetVisitor)
			r.Get("/stats", arm.GetStats)

			r.Get("/settings", arm.GetSettings)
			r.Put("/settings", arm.UpdateSettings)
			r.Put("/settings/shop", arm.UpdateShopEnabled)
		})
	})
}

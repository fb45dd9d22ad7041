package api

import (
	"saraylidoener_server/api/admin"
	"saraylidoener_server/api/events"
	"saraylidoener_server/api/health"
	"saraylidoener_server/api/middleware"
	"saraylidoener_server/api/orders"
	"saraylidoener_server/api/sitemap"
	"saraylidoener_server/api/store"
	"saraylidoener_server/api/webhooks"
	"saraylidoener_server/services"
	"saraylidoener_server/structs"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

type routerManager struct {
	orderRoutes   *orders.OrderRoutesManager
	webhookRoutes *webhooks.WebhookRoutesManager
	eventRoutes   *events.EventRoutesManager
	storeRoutes   *store.StoreRoutesManager
	adminRoutes   *admin.AdminRoutesManager
	sitemapRoutes *sitemap.SitemapRoutesManager
	healthRoutes  *health.HealthRoutesManager
}

func NewRouterManager(logger *gecho.Logger, cfg *structs.Config, sm *services.ServiceManager, mw *middleware.Middleware) *routerManager {
	return &routerManager{
		orderRoutes:   orders.NewOrderRoutesManager(logger, sm.OrderService, sm.StoreService),
		webhookRoutes: webhooks.NewWebhookRoutesManager(logger, sm.OrderService, sm.PaymentService),
		eventRoutes:   events.NewEventRoutesManager(logger, sm.TrackingService),
		storeRoutes:   store.NewStoreRoutesManager(logger, sm.StoreService, sm.MenuService),
		adminRoutes:   admin.NewAdminRoutesManager(logger, mw, sm.SessionService, sm.OrderService, sm.AnalyticsService, sm.StoreService),
		sitemapRoutes: sitemap.NewSitemapRoutesManager(cfg),
		healthRoutes:  health.NewHealthRoutesManager(sm.HealthService),
	}
}

func (rm *routerManager) RegisterRoutes(r chi.Router) {
	rm.orderRoutes.RegisterRoutes(r)
	rm.webhookRoutes.RegisterRoutes(r)
	rm.eventRoutes.RegisterRoutes(r)
	rm.storeRoutes.RegisterRoutes(r)
	rm.adminRoutes.RegisterRoutes(r)
	rm.sitemapRoutes.RegisterRoutes(r)
	rm.healthRoutes.RegisterRoutes(r)
}

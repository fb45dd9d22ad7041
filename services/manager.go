package services

import (
	"saraylidoener_server/database"
	"saraylidoener_server/structs"

	"github.com/MonkyMars/gecho"
)

type ServiceManager struct {
	CacheService     *CacheService
	SessionService   *SessionService
	EmailService     *EmailService
	HealthService    *HealthService
	MenuService      *MenuService
	PaymentService   *PaymentService
	OrderService     *OrderService
	TrackingService  *TrackingService
	StoreService     *StoreService
	AnalyticsService *AnalyticsService
}

func NewServiceManager(logger *gecho.Logger, cfg *structs.Config, db *database.DB) *ServiceManager {
	cacheService := NewCacheService(logger, cfg)
	sessionService := NewSessionService(logger, cfg, cacheService)
	emailService := NewEmailService(logger, cfg)
	healthService := NewHealthService(logger, db)
	menuService := NewMenuService()
	paymentService := NewPaymentService(logger, cfg)
	orderService := NewOrderService(logger, cfg, db, menuService, paymentService, emailService)
	trackingService := NewTrackingService(logger, db)
	storeService := NewStoreService(logger, cfg, db, cacheService, paymentService)
	analyticsService := NewAnalyticsService(logger, db)

	return &ServiceManager{
		CacheService:     cacheService,
		SessionService:   sessionService,
		EmailService:     emailService,
		HealthService:    healthService,
		MenuService:      menuService,
		PaymentService:   paymentService,
		OrderService:     orderService,
		TrackingService:  trackingService,
		StoreService:     storeService,
		AnalyticsService: analyticsService,
	}
}

package middleware

import (
	"saraylidoener_server/services"
	"saraylidoener_server/structs"

	"github.com/MonkyMars/gecho"
)

type Middleware struct {
	cfg             *structs.Config
	logger          *gecho.Logger
	cacheService    *services.CacheService
	sessionService  *services.SessionService
	trackingService *services.TrackingService
}

func NewMiddleware(
	cfg *structs.Config,
	logger *gecho.Logger,
	cacheService *services.CacheService,
	sessionService *services.SessionService,
	trackingService *services.TrackingService,
) *Middleware {
	return &Middleware{
		cfg:             cfg,
		logger:          logger,
		cacheService:    cacheService,
		sessionService:  sessionService,
		trackingService: trackingService,
	}
}

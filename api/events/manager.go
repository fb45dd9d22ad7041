package events

import (
	"saraylidoener_server/services"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

type EventRoutesManager struct {
	logger          *gecho.Logger
	trackingService *services.TrackingService
}

func NewEventRoutesManager(logger *gecho.Logger, trackingService *services.TrackingService) *EventRoutesManager {
	return &EventRoutesManager{
		logger:          logger,
		trackingService: trackingService,
	}
}

func (erm *EventRoutesManager) RegisterRoutes(r chi.Router) {
	r.Post("/api/events", erm.IngestEvents)
}

package webhooks

import (
	"saraylidoener_server/services"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

type WebhookRoutesManager struct {
	logger         *gecho.Logger
	orderService   *services.OrderService
	paymentService *services.PaymentService
}

func NewWebhookRoutesManager(logger *gecho.Logger, orderService *services.OrderService, paymentService *services.PaymentService) *WebhookRoutesManager {
	return &WebhookRoutesManager{
		logger:         logger,
		orderService:   orderService,
		paymentService: paymentService,
	}
}

func (wrm *WebhookRoutesManager) RegisterRoutes(r chi.Router) {
	r.Post("/api/webhooks/stripe", wrm.HandleStripeWebhook)
}

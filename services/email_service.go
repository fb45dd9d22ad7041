package services

import (
	"fmt"
	"strings"
	"sync"

	"saraylidoener_server/structs"
	"saraylidoener_server/structs/tables"

	"github.com/MonkyMars/gecho"
	"github.com/resend/resend-go/v3"
)

var (
	emailClient     *resend.Client
	emailClientOnce = sync.Once{}
)

// EmailService sends transactional mail through Resend. All sends are
// best-effort: an undelivered notification must never fail an order.
type EmailService struct {
	logger *gecho.Logger
	cfg    *structs.Config
	client *resend.Client
}

func NewEmailService(logger *gecho.Logger, cfg *structs.Config) *EmailService {
	return &EmailService{
		logger: logger,
		cfg:    cfg,
		client: getEmailClient(cfg.Email.ResendKey),
	}
}

func getEmailClient(apiKey string) *resend.Client {
	emailClientOnce.Do(func() {
		emailClient = resend.NewClient(apiKey)
	})
	return emailClient
}

func (es *EmailService) SendEmail(to []string, subject string, body string) error {
	params := &resend.SendEmailRequest{
		From:    es.cfg.Email.From,
		To:      to,
		Html:    body,
		Subject: subject,
	}

	_, err := es.client.Emails.Send(params)
	if err != nil {
		es.logger.Error("Failed to send email", gecho.Field("error", err), gecho.Field("to", to))
		return err
	}

	return nil
}

// SendOrderPaidNotification tells the restaurant a new order was paid.
// Skipped silently when no notification address or API key is configured.
func (es *EmailService) SendOrderPaidNotification(order *tables.Order) {
	if es.cfg.Email.ResendKey == "" || es.cfg.Email.OrderNotifyTo == "" {
		return
	}

	subject := fmt.Sprintf("Neue Bestellung %s", order.OrderNumber)

	var body strings.Builder
	body.WriteString(fmt.Sprintf("<h2>Bestellung %s</h2>", order.OrderNumber))
	body.WriteString(fmt.Sprintf("<p>Typ: %s</p>", order.OrderType))
	body.WriteString(fmt.Sprintf("<p>Name: %s</p>", order.CustomerName))
	body.WriteString(fmt.Sprintf("<p>Telefon: %s</p>", order.CustomerPhone))
	if order.PickupTime != nil {
		body.WriteString(fmt.Sprintf("<p>Abholzeit: %s</p>", *order.PickupTime))
	}
	if order.Notes != nil {
		body.WriteString(fmt.Sprintf("<p>Anmerkungen: %s</p>", *order.Notes))
	}
	body.WriteString(fmt.Sprintf("<p><strong>Summe: %.2f €</strong></p>", float64(order.TotalAmount)/100))

	if err := es.SendEmail([]string{es.cfg.Email.OrderNotifyTo}, subject, body.String()); err != nil {
		es.logger.Warn("Order notification email failed",
			gecho.Field("order_number", order.OrderNumber))
	}
}

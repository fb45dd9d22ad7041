package services

import (
	"fmt"
	"saraylidoener_server/structs"
	"saraylidoener_server/structs/tables"
	"strconv"

	"github.com/MonkyMars/gecho"
	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/checkout/session"
	"github.com/stripe/stripe-go/v82/refund"
	"github.com/stripe/stripe-go/v82/webhook"
)

// PaymentService wraps the Stripe API: hosted checkout sessions, refunds and
// webhook signature verification. Local order state never claims money moved
// unless the corresponding Stripe call succeeded first.
type PaymentService struct {
	logger *gecho.Logger
	cfg    *structs.Config
}

func NewPaymentService(logger *gecho.Logger, cfg *structs.Config) *PaymentService {
	if cfg.Stripe.SecretKey != "" {
		stripe.Key = cfg.Stripe.SecretKey
	}

	return &PaymentService{
		logger: logger,
		cfg:    cfg,
	}
}

// Configured reports whether all required Stripe credentials are present.
// Checkout is force-disabled when they are not.
func (ps *PaymentService) Configured() bool {
	return ps.cfg.Stripe.Configured()
}

// CreateCheckoutSession creates a hosted Stripe checkout session for the
// order. Line items carry the server-side price snapshot; the order id rides
// along as metadata so webhooks can find their way back.
func (ps *PaymentService) CreateCheckoutSession(order *tables.Order, items []tables.OrderItem) (*stripe.CheckoutSession, error) {
	lineItems := make([]*stripe.CheckoutSessionLineItemParams, 0, len(items))
	for _, item := range items {
		lineItems = append(lineItems, &stripe.CheckoutSessionLineItemParams{
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency: stripe.String(order.Currency),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name: stripe.String(item.ItemName),
				},
				UnitAmount: stripe.Int64(item.UnitPrice),
			},
			Quantity: stripe.Int64(int64(item.Quantity)),
		})
	}

	baseURL := ps.cfg.Server.PublicBaseURL
	params := &stripe.CheckoutSessionParams{
		Mode:               stripe.String(string(stripe.CheckoutSessionModePayment)),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		Currency:           stripe.String(order.Currency),
		LineItems:          lineItems,
		SuccessURL:         stripe.String(baseURL + "/checkout/success?session_id={CHECKOUT_SESSION_ID}"),
		CancelURL:          stripe.String(baseURL + "/checkout/cancel"),
	}
	params.AddMetadata("order_id", strconv.FormatInt(order.Id, 10))
	params.AddMetadata("order_number", order.OrderNumber)
	params.AddMetadata("order_type", string(order.OrderType))
	params.AddMetadata("customer_name", order.CustomerName)
	params.AddMetadata("customer_phone", order.CustomerPhone)

	sess, err := session.New(params)
	if err != nil {
		return nil, fmt.Errorf("failed to create checkout session: %w", err)
	}

	return sess, nil
}

// RefundPaymentIntent reverses the charge behind a payment intent. Callers
// must only mark the order refunded after this returns nil.
func (ps *PaymentService) RefundPaymentIntent(paymentIntentId string) error {
	_, err := refund.New(&stripe.RefundParams{
		PaymentIntent: stripe.String(paymentIntentId),
	})
	if err != nil {
		return fmt.Errorf("failed to create refund: %w", err)
	}

	return nil
}

// ConstructWebhookEvent verifies the stripe-signature header against the
// webhook secret and parses the event. Verification happens before any state
// is touched.
func (ps *PaymentService) ConstructWebhookEvent(payload []byte, sigHeader string) (stripe.Event, error) {
	return webhook.ConstructEvent(payload, sigHeader, ps.cfg.Stripe.WebhookSecret)
}

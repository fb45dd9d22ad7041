package webhooks

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"saraylidoener_server/handling"

	"github.com/MonkyMars/gecho"
	"github.com/stripe/stripe-go/v82"
)

const maxWebhookBodyBytes = 64 * 1024

// HandleStripeWebhook is the payment reconciliation entry point. The
// signature is verified before anything else is read or written; after that,
// unknown event types and unmatched orders acknowledge with 200 so Stripe
// stops retrying, while database failures return 500 so it retries later.
func (wrm *WebhookRoutesManager) HandleStripeWebhook(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(io.LimitReader(r.Body, maxWebhookBodyBytes))
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("Failed to read request body"), gecho.Send())
		return
	}

	event, err := wrm.paymentService.ConstructWebhookEvent(payload, r.Header.Get("Stripe-Signature"))
	if err != nil {
		wrm.logger.Warn("Rejected webhook with invalid signature", gecho.Field("error", err))
		gecho.BadRequest(w, gecho.WithMessage("Invalid signature"), gecho.Send())
		return
	}

	switch event.Type {
	case "checkout.session.completed":
		err = wrm.handleSessionCompleted(r, event)
	case "checkout.session.expired":
		err = wrm.handleSessionExpired(r, event)
	case "charge.refunded":
		err = wrm.handleChargeRefunded(r, event)
	default:
		wrm.logger.Debug("Ignoring webhook event", gecho.Field("type", string(event.Type)))
	}

	if err != nil {
		handling.HandleError(err, "Webhook processing failed", wrm.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithData(map[string]bool{"received": true}),
		gecho.Send(),
	)
}

// orderIdFromSession pulls the order id the checkout flow stored in the
// session metadata. A session without it was not created by us.
func (wrm *WebhookRoutesManager) orderIdFromSession(session *stripe.CheckoutSession) (int64, bool) {
	raw, ok := session.Metadata["order_id"]
	if !ok {
		wrm.logger.Warn("Webhook session without order_id metadata", gecho.Field("session", session.ID))
		return 0, false
	}

	orderId, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		wrm.logger.Warn("Webhook session with malformed order_id", gecho.Field("order_id", raw))
		return 0, false
	}

	return orderId, true
}

func (wrm *WebhookRoutesManager) handleSessionCompleted(r *http.Request, event stripe.Event) error {
	var session stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
		wrm.logger.Warn("Malformed checkout.session.completed payload", gecho.Field("error", err))
		return nil
	}

	orderId, ok := wrm.orderIdFromSession(&session)
	if !ok {
		return nil
	}

	paymentIntentId := ""
	if session.PaymentIntent != nil {
		paymentIntentId = session.PaymentIntent.ID
	}

	return wrm.orderService.MarkPaidBySession(r.Context(), orderId, paymentIntentId)
}

func (wrm *WebhookRoutesManager) handleSessionExpired(r *http.Request, event stripe.Event) error {
	var session stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
		wrm.logger.Warn("Malformed checkout.session.expired payload", gecho.Field("error", err))
		return nil
	}

	orderId, ok := wrm.orderIdFromSession(&session)
	if !ok {
		return nil
	}

	return wrm.orderService.MarkExpired(r.Context(), orderId)
}

func (wrm *WebhookRoutesManager) handleChargeRefunded(r *http.Request, event stripe.Event) error {
	var charge stripe.Charge
	if err := json.Unmarshal(event.Data.Raw, &charge); err != nil {
		wrm.logger.Warn("Malformed charge.refunded payload", gecho.Field("error", err))
		return nil
	}

	if charge.PaymentIntent == nil || charge.PaymentIntent.ID == "" {
		wrm.logger.Warn("charge.refunded without payment intent reference", gecho.Field("charge", charge.ID))
		return nil
	}

	return wrm.orderService.MarkRefundedByPaymentIntent(r.Context(), charge.PaymentIntent.ID)
}

package orders

import (
	"errors"
	"net/http"

	"saraylidoener_server/api/middleware"
	"saraylidoener_server/handling"
	"saraylidoener_server/lib"
	"saraylidoener_server/structs"

	"github.com/MonkyMars/gecho"
)

// Checkout validates the cart against the server-side menu, creates the
// pending order and redirects the customer to the hosted Stripe checkout.
func (orm *OrderRoutesManager) Checkout(w http.ResponseWriter, r *http.Request) {
	status, err := orm.storeService.Status(r.Context())
	if err != nil {
		handling.HandleError(err, "Failed to resolve store status", orm.logger, w)
		return
	}
	if !status.ShopEnabled {
		gecho.ServiceUnavailable(w,
			gecho.WithMessage("Online ordering is currently disabled"),
			gecho.Send(),
		)
		return
	}

	body, err := lib.ExtractAndValidateBody[structs.CheckoutRequest](r)
	if err != nil {
		gecho.BadRequest(w,
			gecho.WithMessage("Invalid checkout request"),
			gecho.WithData(err),
			gecho.Send(),
		)
		return
	}

	// Attribution is consent-gated like everything else in tracking
	var visitorId *string
	if middleware.ConsentGranted(r) {
		id := middleware.VisitorIDFromRequest(r)
		visitorId = &id
	}

	order, checkoutURL, err := orm.orderService.CreateOrderFromCheckout(r.Context(), body, visitorId)
	if err != nil {
		if errors.Is(err, lib.ErrUnknownMenuItem) {
			gecho.BadRequest(w,
				gecho.WithMessage("Unknown menu item in cart"),
				gecho.Send(),
			)
			return
		}

		orm.logger.Error("Checkout failed", gecho.Field("error", err))
		gecho.ServiceUnavailable(w,
			gecho.WithMessage("Checkout is temporarily unavailable, please try again"),
			gecho.Send(),
		)
		return
	}

	gecho.Success(w,
		gecho.WithData(structs.CheckoutResponse{
			URL:         checkoutURL,
			OrderNumber: order.OrderNumber,
		}),
		gecho.Send(),
	)
}

package orders

import (
	"errors"
	"net/http"

	"saraylidoener_server/handling"
	"saraylidoener_server/lib"
	"saraylidoener_server/structs/tables"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

// RequestCancellation lets a customer flag their order for cancellation. The
// status machine permits it only while the order is pending or paid; the
// actual cancellation stays an admin decision.
func (orm *OrderRoutesManager) RequestCancellation(w http.ResponseWriter, r *http.Request) {
	orderNumber := chi.URLParam(r, "orderNumber")

	order, err := orm.orderService.RequestCancellation(r.Context(), orderNumber)
	if err != nil {
		switch {
		case errors.Is(err, lib.ErrNotFound):
			gecho.NotFound(w,
				gecho.WithMessage("Order not found"),
				gecho.Send(),
			)
		case errors.Is(err, tables.ErrInvalidTransition), errors.Is(err, tables.ErrOrderRefunded):
			gecho.Conflict(w,
				gecho.WithMessage("Order can no longer be cancelled"),
				gecho.Send(),
			)
		default:
			handling.HandleError(err, "Failed to request cancellation", orm.logger, w)
		}
		return
	}

	gecho.Success(w,
		gecho.WithData(map[string]any{
			"order_number": order.OrderNumber,
			"status":       order.Status,
		}),
		gecho.Send(),
	)
}

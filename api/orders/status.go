package orders

import (
	"errors"
	"net/http"

	"saraylidoener_server/handling"
	"saraylidoener_server/lib"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

// OrderStatus is the customer-facing status lookup by public order number.
// Exposes only what the customer needs, never internal payment references.
func (orm *OrderRoutesManager) OrderStatus(w http.ResponseWriter, r *http.Request) {
	orderNumber := chi.URLParam(r, "orderNumber")

	order, err := orm.orderService.GetOrderByNumber(r.Context(), orderNumber)
	if err != nil {
		if errors.Is(err, lib.ErrNotFound) {
			gecho.NotFound(w,
				gecho.WithMessage("Order not found"),
				gecho.Send(),
			)
			return
		}
		handling.HandleError(err, "Failed to look up order", orm.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithData(map[string]any{
			"order_number": order.OrderNumber,
			"status":       order.Status,
			"order_type":   order.OrderType,
			"pickup_time":  order.PickupTime,
			"total_amount": order.TotalAmount,
			"currency":     order.Currency,
			"created_at":   order.CreatedAt,
		}),
		gecho.Send(),
	)
}

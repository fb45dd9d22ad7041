package admin

import (
	"errors"
	"net/http"
	"strconv"

	"saraylidoener_server/handling"
	"saraylidoener_server/lib"
	"saraylidoener_server/structs"
	"saraylidoener_server/structs/tables"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

func orderIdParam(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

// ListOrders returns one page of orders, filterable by status and creation
// date, newest first.
func (arm *AdminRoutesManager) ListOrders(w http.ResponseWriter, r *http.Request) {
	filter, page, err := handling.ParseOrderListOptions(r)
	if err != nil {
		gecho.BadRequest(w,
			gecho.WithMessage(err.Error()),
			gecho.Send(),
		)
		return
	}

	orders, total, err := arm.orderService.ListOrders(r.Context(), filter, orderPageSize, (page-1)*orderPageSize)
	if err != nil {
		handling.HandleError(err, "Failed to list orders", arm.logger, w)
		return
	}

	orderIds := make([]int64, 0, len(orders))
	for _, order := range orders {
		orderIds = append(orderIds, order.Id)
	}
	itemCounts, err := arm.orderService.GetItemCounts(r.Context(), orderIds)
	if err != nil {
		handling.HandleError(err, "Failed to count order items", arm.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithData(map[string]any{
			"orders":      orders,
			"item_counts": itemCounts,
			"pagination": structs.Pagination{
				Page:       page,
				PageSize:   orderPageSize,
				Total:      total,
				TotalPages: (total + orderPageSize - 1) / orderPageSize,
			},
		}),
		gecho.Send(),
	)
}

// GetOrder returns one order with its line items.
func (arm *AdminRoutesManager) GetOrder(w http.ResponseWriter, r *http.Request) {
	orderId, err := orderIdParam(r)
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("Invalid order id"), gecho.Send())
		return
	}

	order, err := arm.orderService.GetOrderById(r.Context(), orderId)
	if err != nil {
		if errors.Is(err, lib.ErrNotFound) {
			gecho.NotFound(w, gecho.WithMessage("Order not found"), gecho.Send())
			return
		}
		handling.HandleError(err, "Failed to load order", arm.logger, w)
		return
	}

	items, err := arm.orderService.GetOrderItems(r.Context(), orderId)
	if err != nil {
		handling.HandleError(err, "Failed to load order items", arm.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithData(map[string]any{
			"order": order,
			"items": items,
		}),
		gecho.Send(),
	)
}

// UpdateOrderStatus is the generic transition path. Requests that the status
// machine rejects come back as 409 with the reason.
func (arm *AdminRoutesManager) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	orderId, err := orderIdParam(r)
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("Invalid order id"), gecho.Send())
		return
	}

	body, err := lib.ExtractAndValidateBody[structs.UpdateOrderStatusRequest](r)
	if err != nil {
		gecho.BadRequest(w,
			gecho.WithMessage("Invalid status update request"),
			gecho.WithData(err),
			gecho.Send(),
		)
		return
	}

	arm.applyTransition(w, r, orderId, tables.OrderStatus(body.Status))
}

// FulfillOrder is a shortcut for the most common transition.
func (arm *AdminRoutesManager) FulfillOrder(w http.ResponseWriter, r *http.Request) {
	orderId, err := orderIdParam(r)
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("Invalid order id"), gecho.Send())
		return
	}

	arm.applyTransition(w, r, orderId, tables.OrderStatusFulfilled)
}

func (arm *AdminRoutesManager) applyTransition(w http.ResponseWriter, r *http.Request, orderId int64, status tables.OrderStatus) {
	order, err := arm.orderService.UpdateStatus(r.Context(), orderId, status)
	if err != nil {
		switch {
		case errors.Is(err, lib.ErrNotFound):
			gecho.NotFound(w, gecho.WithMessage("Order not found"), gecho.Send())
		case errors.Is(err, tables.ErrInvalidTransition), errors.Is(err, tables.ErrOrderRefunded):
			gecho.Conflict(w,
				gecho.WithMessage(err.Error()),
				gecho.Send(),
			)
		default:
			handling.HandleError(err, "Failed to update order status", arm.logger, w)
		}
		return
	}

	gecho.Success(w,
		gecho.WithData(order),
		gecho.Send(),
	)
}

// RefundOrder reverses the charge (or cancels a never-charged order) and
// reports which of the two happened.
func (arm *AdminRoutesManager) RefundOrder(w http.ResponseWriter, r *http.Request) {
	orderId, err := orderIdParam(r)
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("Invalid order id"), gecho.Send())
		return
	}

	outcome, order, err := arm.orderService.RefundOrder(r.Context(), orderId)
	if err != nil {
		switch {
		case errors.Is(err, lib.ErrNotFound):
			gecho.NotFound(w, gecho.WithMessage("Order not found"), gecho.Send())
		case errors.Is(err, tables.ErrOrderRefunded):
			gecho.Conflict(w, gecho.WithMessage("Order is already refunded"), gecho.Send())
		case errors.Is(err, tables.ErrInvalidTransition):
			gecho.Conflict(w, gecho.WithMessage(err.Error()), gecho.Send())
		default:
			arm.logger.Error("Refund failed", gecho.Field("error", err), gecho.Field("order_id", orderId))
			gecho.ServiceUnavailable(w,
				gecho.WithMessage("Refund could not be processed, order status unchanged"),
				gecho.Send(),
			)
		}
		return
	}

	gecho.Success(w,
		gecho.WithData(map[string]any{
			"outcome": outcome,
			"order":   order,
		}),
		gecho.Send(),
	)
}

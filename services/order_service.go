package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"saraylidoener_server/database"
	"saraylidoener_server/lib"
	"saraylidoener_server/structs"
	"saraylidoener_server/structs/tables"
	"time"

	"github.com/MonkyMars/gecho"
	"github.com/uptrace/bun"
)

const orderNumberMaxAttempts = 10

// RefundOutcome distinguishes a true refund from a cancellation of an order
// that was never charged.
type RefundOutcome string

const (
	RefundOutcomeRefunded  RefundOutcome = "refunded"
	RefundOutcomeCancelled RefundOutcome = "cancelled"
)

type OrderService struct {
	logger         *gecho.Logger
	cfg            *structs.Config
	db             *database.DB
	menuService    *MenuService
	paymentService *PaymentService
	emailService   *EmailService
}

func NewOrderService(
	logger *gecho.Logger,
	cfg *structs.Config,
	db *database.DB,
	menuService *MenuService,
	paymentService *PaymentService,
	emailService *EmailService,
) *OrderService {
	return &OrderService{
		logger:         logger,
		cfg:            cfg,
		db:             db,
		menuService:    menuService,
		paymentService: paymentService,
		emailService:   emailService,
	}
}

// ValidateCheckoutItems resolves client-submitted lines against the
// server-side menu. Quantities are clamped to [1,99]; prices always come from
// the menu table, never from the client. Returns the item snapshots and the
// order total in cents.
func (os *OrderService) ValidateCheckoutItems(items []structs.CheckoutItemInput) ([]tables.OrderItem, int64, error) {
	if len(items) == 0 {
		return nil, 0, fmt.Errorf("no items in checkout request")
	}

	validated := make([]tables.OrderItem, 0, len(items))
	var total int64

	for _, input := range items {
		menuItem, ok := os.menuService.Lookup(input.MenuItemId)
		if !ok {
			return nil, 0, fmt.Errorf("%w: %d", lib.ErrUnknownMenuItem, input.MenuItemId)
		}

		quantity := input.Quantity
		if quantity < 1 {
			quantity = 1
		}
		if quantity > 99 {
			quantity = 99
		}

		total += menuItem.PriceCents * int64(quantity)
		validated = append(validated, tables.OrderItem{
			MenuItemId: menuItem.Id,
			ItemName:   menuItem.Name,
			Quantity:   quantity,
			UnitPrice:  menuItem.PriceCents,
		})
	}

	return validated, total, nil
}

// generateOrderNumber produces a collision-checked public order code. After
// orderNumberMaxAttempts collisions (practically unreachable with 32^6
// combinations) it falls back to a timestamp suffix so the loop always
// terminates.
func (os *OrderService) generateOrderNumber(ctx context.Context) (string, error) {
	var code string
	for attempt := 0; attempt < orderNumberMaxAttempts; attempt++ {
		candidate, err := lib.GenerateOrderCode()
		if err != nil {
			return "", err
		}
		code = candidate

		exists, err := os.db.NewSelect().
			Model((*tables.Order)(nil)).
			Where("order_number = ?", candidate).
			Exists(ctx)
		if err != nil {
			return "", fmt.Errorf("failed to check order number: %w", err)
		}
		if !exists {
			return candidate, nil
		}
	}

	os.logger.Warn("Order number generation exhausted retries, using timestamp fallback")
	return lib.OrderCodeFallback(code), nil
}

// CreateOrderFromCheckout creates the order and its line items in one
// transaction, then opens a Stripe checkout session and records its id. The
// order never exists without its items and is never exposed to payment
// processing before the items are durably stored. A session-creation failure
// cancels the fresh order so no orphaned payable order survives.
func (os *OrderService) CreateOrderFromCheckout(ctx context.Context, req *structs.CheckoutRequest, visitorId *string) (*tables.Order, string, error) {
	items, total, err := os.ValidateCheckoutItems(req.Items)
	if err != nil {
		return nil, "", err
	}

	orderNumber, err := os.generateOrderNumber(ctx)
	if err != nil {
		return nil, "", err
	}

	order := &tables.Order{
		OrderNumber:   orderNumber,
		Status:        tables.OrderStatusPending,
		OrderType:     tables.OrderType(req.OrderType),
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
		CustomerEmail: optionalString(req.CustomerEmail),
		PickupTime:    optionalString(req.PickupTime),
		Notes:         optionalString(req.Notes),
		TotalAmount:   total,
		Currency:      "eur",
		VisitorId:     visitorId,
		CreatedAt:     time.Now(),
	}

	err = database.Transaction(ctx, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewInsert().Model(order).Returning("*").Exec(ctx); err != nil {
			return lib.MapPgError(err)
		}

		for i := range items {
			items[i].OrderId = order.Id
		}

		if _, err := tx.NewInsert().Model(&items).Exec(ctx); err != nil {
			return lib.MapPgError(err)
		}

		return nil
	})
	if err != nil {
		return nil, "", fmt.Errorf("failed to create order: %w", err)
	}

	sess, err := os.paymentService.CreateCheckoutSession(order, items)
	if err != nil {
		// Without a payment session the pending order can never be paid;
		// cancel it instead of leaving it dangling.
		if _, cancelErr := os.db.NewUpdate().
			Model((*tables.Order)(nil)).
			Set("status = ?", tables.OrderStatusCancelled).
			Where("id = ? AND status = ?", order.Id, tables.OrderStatusPending).
			Exec(ctx); cancelErr != nil {
			os.logger.Error("Failed to cancel order after session failure",
				gecho.Field("error", cancelErr),
				gecho.Field("order_id", order.Id))
		}
		return nil, "", fmt.Errorf("failed to create payment session: %w", err)
	}

	if _, err := os.db.NewUpdate().
		Model((*tables.Order)(nil)).
		Set("stripe_session_id = ?", sess.ID).
		Where("id = ?", order.Id).
		Exec(ctx); err != nil {
		return nil, "", fmt.Errorf("failed to store session id: %w", err)
	}
	order.StripeSessionId = &sess.ID

	return order, sess.URL, nil
}

// GetOrderById fetches one order, or lib.ErrNotFound.
func (os *OrderService) GetOrderById(ctx context.Context, orderId int64) (*tables.Order, error) {
	order := new(tables.Order)
	err := os.db.NewSelect().Model(order).Where("o.id = ?", orderId).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, lib.ErrNotFound
		}
		return nil, err
	}
	return order, nil
}

// GetOrderByNumber fetches one order by its public code, or lib.ErrNotFound.
func (os *OrderService) GetOrderByNumber(ctx context.Context, orderNumber string) (*tables.Order, error) {
	order := new(tables.Order)
	err := os.db.NewSelect().Model(order).Where("o.order_number = ?", orderNumber).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, lib.ErrNotFound
		}
		return nil, err
	}
	return order, nil
}

// GetOrderItems returns the line items of an order.
func (os *OrderService) GetOrderItems(ctx context.Context, orderId int64) ([]tables.OrderItem, error) {
	var items []tables.OrderItem
	err := os.db.NewSelect().Model(&items).Where("oi.order_id = ?", orderId).Order("oi.id ASC").Scan(ctx)
	if err != nil {
		return nil, err
	}
	return items, nil
}

// OrderListFilter narrows the admin order listing.
type OrderListFilter struct {
	Status   *tables.OrderStatus
	DateFrom *time.Time
	DateTo   *time.Time
}

// ListOrders returns one page of orders, newest first, plus the total count
// for the filter.
func (os *OrderService) ListOrders(ctx context.Context, filter OrderListFilter, limit, offset int) ([]tables.Order, int, error) {
	var orders []tables.Order

	query := os.db.NewSelect().Model(&orders)
	if filter.Status != nil {
		query = query.Where("o.status = ?", *filter.Status)
	}
	if filter.DateFrom != nil {
		query = query.Where("o.created_at >= ?", *filter.DateFrom)
	}
	if filter.DateTo != nil {
		// Inclusive end date: everything before the start of the following day
		query = query.Where("o.created_at < ?", filter.DateTo.AddDate(0, 0, 1))
	}

	total, err := query.Count(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count orders: %w", err)
	}

	err = query.Order("o.created_at DESC").Limit(limit).Offset(offset).Scan(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list orders: %w", err)
	}

	return orders, total, nil
}

// GetItemCounts returns order id -> line item count for a set of orders.
func (os *OrderService) GetItemCounts(ctx context.Context, orderIds []int64) (map[int64]int, error) {
	counts := make(map[int64]int, len(orderIds))
	if len(orderIds) == 0 {
		return counts, nil
	}

	var rows []struct {
		OrderId int64 `bun:"order_id"`
		Count   int   `bun:"count"`
	}

	err := os.db.NewSelect().
		Model((*tables.OrderItem)(nil)).
		ColumnExpr("oi.order_id AS order_id, count(*) AS count").
		Where("oi.order_id IN (?)", bun.In(orderIds)).
		GroupExpr("oi.order_id").
		Scan(ctx, &rows)
	if err != nil {
		return nil, fmt.Errorf("failed to count order items: %w", err)
	}

	for _, row := range rows {
		counts[row.OrderId] = row.Count
	}

	return counts, nil
}

// UpdateStatus drives the generic admin transition path through the status
// machine. The guarded UPDATE (WHERE status = current) is the serialization
// mechanism against concurrent webhook/admin writes: if the row moved under
// us, no rows are affected and the caller gets a transition error against the
// fresh state.
func (os *OrderService) UpdateStatus(ctx context.Context, orderId int64, newStatus tables.OrderStatus) (*tables.Order, error) {
	order, err := os.GetOrderById(ctx, orderId)
	if err != nil {
		return nil, err
	}

	if err := tables.ValidateTransition(order.Status, newStatus); err != nil {
		return nil, err
	}

	now := time.Now()
	query := os.db.NewUpdate().
		Model((*tables.Order)(nil)).
		Set("status = ?", newStatus).
		Where("id = ? AND status = ?", orderId, order.Status)

	switch newStatus {
	case tables.OrderStatusPaid:
		query = query.Set("paid_at = ?", now)
	case tables.OrderStatusFulfilled:
		query = query.Set("fulfilled_at = ?", now)
	case tables.OrderStatusCancellationRequested:
		query = query.Set("cancellation_requested_at = ?", now)
	}

	res, err := query.Exec(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to update order status: %w", err)
	}

	if affected, _ := res.RowsAffected(); affected == 0 {
		// Lost the race against a concurrent transition; re-validate against
		// whatever the order is now.
		current, fetchErr := os.GetOrderById(ctx, orderId)
		if fetchErr != nil {
			return nil, fetchErr
		}
		if err := tables.ValidateTransition(current.Status, newStatus); err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("%w: order %d changed concurrently", tables.ErrInvalidTransition, orderId)
	}

	return os.GetOrderById(ctx, orderId)
}

// RequestCancellation is the customer-initiated path, permitted only while
// the order is pending or paid.
func (os *OrderService) RequestCancellation(ctx context.Context, orderNumber string) (*tables.Order, error) {
	order, err := os.GetOrderByNumber(ctx, orderNumber)
	if err != nil {
		return nil, err
	}

	return os.UpdateStatus(ctx, order.Id, tables.OrderStatusCancellationRequested)
}

// RefundOrder is the only path to the refunded status. An order without a
// recorded payment intent was never charged: nothing to reverse, so it is
// marked cancelled and that outcome is reported distinctly. A true refund
// calls Stripe first and only marks the local record refunded after the
// charge reversal succeeded; on Stripe failure local state is untouched.
func (os *OrderService) RefundOrder(ctx context.Context, orderId int64) (RefundOutcome, *tables.Order, error) {
	order, err := os.GetOrderById(ctx, orderId)
	if err != nil {
		return "", nil, err
	}

	if order.Status == tables.OrderStatusRefunded {
		return "", nil, tables.ErrOrderRefunded
	}

	if order.StripePaymentIntentId == nil || *order.StripePaymentIntentId == "" {
		updated, err := os.UpdateStatus(ctx, orderId, tables.OrderStatusCancelled)
		if err != nil {
			return "", nil, err
		}
		return RefundOutcomeCancelled, updated, nil
	}

	if err := os.paymentService.RefundPaymentIntent(*order.StripePaymentIntentId); err != nil {
		os.logger.Error("Stripe refund failed, leaving order status unchanged",
			gecho.Field("error", err),
			gecho.Field("order_id", orderId))
		return "", nil, fmt.Errorf("refund failed: %w", err)
	}

	res, err := os.db.NewUpdate().
		Model((*tables.Order)(nil)).
		Set("status = ?", tables.OrderStatusRefunded).
		Where("id = ? AND status <> ?", orderId, tables.OrderStatusRefunded).
		Exec(ctx)
	if err != nil {
		return "", nil, fmt.Errorf("failed to mark order refunded: %w", err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return "", nil, tables.ErrOrderRefunded
	}

	updated, err := os.GetOrderById(ctx, orderId)
	if err != nil {
		return "", nil, err
	}
	return RefundOutcomeRefunded, updated, nil
}

// MarkPaidBySession applies a checkout.session.completed event. Idempotent: a
// replayed event finds the order no longer pending and becomes a no-op. An
// unknown order is also a no-op so the provider does not retry forever.
func (os *OrderService) MarkPaidBySession(ctx context.Context, orderId int64, paymentIntentId string) error {
	res, err := os.db.NewUpdate().
		Model((*tables.Order)(nil)).
		Set("status = ?", tables.OrderStatusPaid).
		Set("stripe_payment_intent_id = ?", paymentIntentId).
		Set("paid_at = ?", time.Now()).
		Where("id = ? AND status = ?", orderId, tables.OrderStatusPending).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to mark order paid: %w", err)
	}

	if affected, _ := res.RowsAffected(); affected == 0 {
		os.logger.Info("checkout.session.completed matched no pending order, skipping",
			gecho.Field("order_id", orderId))
		return nil
	}

	if order, err := os.GetOrderById(ctx, orderId); err == nil {
		go os.emailService.SendOrderPaidNotification(order)
	}

	return nil
}

// MarkExpired applies a checkout.session.expired event: the customer
// abandoned checkout. Only a still-pending order is cancelled; a stale
// expired event for an order that was paid in the meantime must not regress
// its status.
func (os *OrderService) MarkExpired(ctx context.Context, orderId int64) error {
	res, err := os.db.NewUpdate().
		Model((*tables.Order)(nil)).
		Set("status = ?", tables.OrderStatusCancelled).
		Where("id = ? AND status = ?", orderId, tables.OrderStatusPending).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to cancel expired order: %w", err)
	}

	if affected, _ := res.RowsAffected(); affected == 0 {
		os.logger.Info("checkout.session.expired matched no pending order, skipping",
			gecho.Field("order_id", orderId))
	}

	return nil
}

// MarkRefundedByPaymentIntent reconciles a charge.refunded event issued
// outside the admin UI (e.g. a refund from the Stripe dashboard).
func (os *OrderService) MarkRefundedByPaymentIntent(ctx context.Context, paymentIntentId string) error {
	res, err := os.db.NewUpdate().
		Model((*tables.Order)(nil)).
		Set("status = ?", tables.OrderStatusRefunded).
		Where("stripe_payment_intent_id = ? AND status <> ?", paymentIntentId, tables.OrderStatusRefunded).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to reconcile refund: %w", err)
	}

	if affected, _ := res.RowsAffected(); affected == 0 {
		os.logger.Info("charge.refunded matched no order, skipping",
			gecho.Field("payment_intent", paymentIntentId))
	}

	return nil
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

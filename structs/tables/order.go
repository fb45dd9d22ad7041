package tables

import (
	"errors"
	"fmt"
	"time"
)

// Transition errors, checked by handlers to map to client errors.
var (
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrOrderRefunded     = errors.New("order is refunded")
)

type Order struct {
	// Table Name and identifiers
	tableName   struct{} `bun:"table:orders,alias:o"`
	Id          int64    `bun:"id,pk,autoincrement" json:"id"`
	OrderNumber string   `bun:"order_number,notnull,unique" json:"order_number"`

	// Payment provider references, null until checkout begins/completes
	StripeSessionId       *string `bun:"stripe_session_id,unique,nullzero" json:"stripe_session_id,omitempty"`
	StripePaymentIntentId *string `bun:"stripe_payment_intent_id,nullzero" json:"stripe_payment_intent_id,omitempty"`

	// Order Data
	Status    OrderStatus `bun:"status,notnull,default:'pending'" json:"status"`
	OrderType OrderType   `bun:"order_type,notnull" json:"order_type"`

	// Customer Data
	CustomerName  string  `bun:"customer_name,notnull" json:"customer_name"`
	CustomerPhone string  `bun:"customer_phone,notnull" json:"customer_phone"`
	CustomerEmail *string `bun:"customer_email,nullzero" json:"customer_email,omitempty"`
	PickupTime    *string `bun:"pickup_time,nullzero" json:"pickup_time,omitempty"`
	Notes         *string `bun:"notes,nullzero" json:"notes,omitempty"`

	// Money, in integer cents
	TotalAmount int64  `bun:"total_amount,notnull" json:"total_amount"`
	Currency    string `bun:"currency,notnull,default:'eur'" json:"currency"`

	// Analytics linkage (derived, non-authoritative)
	VisitorId *string        `bun:"visitor_id,nullzero" json:"visitor_id,omitempty"`
	Metadata  map[string]any `bun:"metadata,type:jsonb,nullzero" json:"metadata,omitempty"`

	// Timestamps
	CreatedAt               time.Time  `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
	PaidAt                  *time.Time `bun:"paid_at,nullzero" json:"paid_at,omitempty"`
	FulfilledAt             *time.Time `bun:"fulfilled_at,nullzero" json:"fulfilled_at,omitempty"`
	CancellationRequestedAt *time.Time `bun:"cancellation_requested_at,nullzero" json:"cancellation_requested_at,omitempty"`
}

type OrderItem struct {
	tableName  struct{} `bun:"table:order_items,alias:oi"`
	Id         int64    `bun:"id,pk,autoincrement" json:"id"`
	OrderId    int64    `bun:"order_id,notnull" json:"order_id"`
	MenuItemId int      `bun:"menu_item_id,notnull" json:"menu_item_id"`

	// Snapshot of the menu at time of order; immutable after creation
	ItemName  string  `bun:"item_name,notnull" json:"item_name"`
	Quantity  int     `bun:"quantity,notnull" json:"quantity"`
	UnitPrice int64   `bun:"unit_price,notnull" json:"unit_price"` // cents
	Extras    *string `bun:"extras,nullzero" json:"extras,omitempty"`

	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
}

type OrderStatus string

const (
	OrderStatusPending               OrderStatus = "pending"
	OrderStatusPaid                  OrderStatus = "paid"
	OrderStatusInProcess             OrderStatus = "in_process"
	OrderStatusFulfilled             OrderStatus = "fulfilled"
	OrderStatusCancellationRequested OrderStatus = "cancellation_requested"
	OrderStatusCancelled             OrderStatus = "cancelled"
	OrderStatusRefunded              OrderStatus = "refunded"
)

type OrderType string

const (
	OrderTypePickup OrderType = "pickup"
	OrderTypeDineIn OrderType = "dine_in"
)

// IsValid reports whether s is a known order status.
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending, OrderStatusPaid, OrderStatusInProcess,
		OrderStatusFulfilled, OrderStatusCancellationRequested,
		OrderStatusCancelled, OrderStatusRefunded:
		return true
	}
	return false
}

// IsValid reports whether t is a known order type.
func (t OrderType) IsValid() bool {
	return t == OrderTypePickup || t == OrderTypeDineIn
}

// IsTerminal reports whether no further transition is permitted from s.
// Refunded is the only hard terminal state: fulfilled and cancelled orders
// keep a correction path (e.g. a late refund).
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusRefunded
}

// ValidateTransition is the single authority on the order status machine.
// Every mutating entry point (webhook handler, admin status update, admin
// refund, customer cancellation request) consults it; no call site carries
// its own allowed-transition table.
//
// Refunded can never be set through here. The dedicated refund operation is
// the only path to it, since the charge has to be reversed first.
func ValidateTransition(from, to OrderStatus) error {
	if !to.IsValid() {
		return fmt.Errorf("%w: unknown status %q", ErrInvalidTransition, string(to))
	}
	if from == OrderStatusRefunded {
		return ErrOrderRefunded
	}
	if to == OrderStatusRefunded {
		return fmt.Errorf("%w: refunds go through the refund operation, not a status update", ErrInvalidTransition)
	}
	if from == to {
		return fmt.Errorf("%w: order is already %s", ErrInvalidTransition, from)
	}

	switch to {
	case OrderStatusPending:
		return fmt.Errorf("%w: cannot move an order back to pending", ErrInvalidTransition)
	case OrderStatusPaid:
		if from != OrderStatusPending {
			return fmt.Errorf("%w: only pending orders can be marked paid (current: %s)", ErrInvalidTransition, from)
		}
	case OrderStatusInProcess:
		if from != OrderStatusPaid {
			return fmt.Errorf("%w: only paid orders can move to in_process (current: %s)", ErrInvalidTransition, from)
		}
	case OrderStatusCancellationRequested:
		if from != OrderStatusPending && from != OrderStatusPaid {
			return fmt.Errorf("%w: cancellation can only be requested while pending or paid (current: %s)", ErrInvalidTransition, from)
		}
	}

	// fulfilled and cancelled are reachable from any other non-refunded state.
	return nil
}

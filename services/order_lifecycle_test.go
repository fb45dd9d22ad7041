package services

import (
	"context"
	"testing"
	"time"

	"saraylidoener_server/database"
	"saraylidoener_server/structs"
	"saraylidoener_server/structs/tables"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/MonkyMars/gecho"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
)

// newMockOrderService wires an OrderService onto a mocked sql driver so the
// guarded UPDATE semantics can be exercised without a live database.
func newMockOrderService(t *testing.T) (*OrderService, sqlmock.Sqlmock) {
	t.Helper()

	sqldb, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqldb.Close() })

	logger := gecho.NewLogger(gecho.NewConfig(gecho.WithShowCaller(false), gecho.WithLogLevel(gecho.ParseLogLevel("info"))))
	cfg := &structs.Config{
		Server: &structs.ServerConfig{PublicBaseURL: "http://localhost:3000"},
		Stripe: &structs.StripeConfig{},
		Email:  &structs.EmailConfig{},
	}
	db := &database.DB{DB: bun.NewDB(sqldb, pgdialect.New())}

	return NewOrderService(logger, cfg, db, NewMenuService(), NewPaymentService(logger, cfg), NewEmailService(logger, cfg)), mock
}

func orderRow(status tables.OrderStatus, paymentIntent any) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "order_number", "stripe_payment_intent_id", "status", "order_type",
		"customer_name", "customer_phone", "total_amount", "currency", "created_at",
	}).AddRow(int64(7), "SD-ABC234", paymentIntent, string(status), "pickup",
		"Ayşe Test", "+4915112345678", int64(800), "eur", time.Now())
}

func TestMarkPaidBySessionUpdatesPendingOrder(t *testing.T) {
	os, mock := newMockOrderService(t)

	mock.ExpectExec(`UPDATE "orders".*SET status = 'paid', stripe_payment_intent_id = 'pi_123'.*WHERE \(id = 7 AND status = 'pending'\)`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`SELECT .* FROM "orders".*WHERE \(o\.id = 7\)`).
		WillReturnRows(orderRow(tables.OrderStatusPaid, "pi_123"))

	require.NoError(t, os.MarkPaidBySession(context.Background(), 7, "pi_123"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMarkPaidBySessionReplayIsNoOp(t *testing.T) {
	os, mock := newMockOrderService(t)

	// The order already left pending: the guarded update matches nothing and
	// the replayed event must change no state and trigger no follow-up reads.
	mock.ExpectExec(`UPDATE "orders".*WHERE \(id = 7 AND status = 'pending'\)`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, os.MarkPaidBySession(context.Background(), 7, "pi_123"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMarkExpiredLeavesNonPendingOrderAlone(t *testing.T) {
	os, mock := newMockOrderService(t)

	// A stale expiry event for an order that was paid in the meantime: the
	// pending-only guard matches nothing and the status must not regress.
	mock.ExpectExec(`UPDATE "orders".*SET status = 'cancelled'.*WHERE \(id = 7 AND status = 'pending'\)`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, os.MarkExpired(context.Background(), 7))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRefundOrderWithoutChargeCancels(t *testing.T) {
	os, mock := newMockOrderService(t)

	// No payment intent was ever recorded: nothing to reverse at Stripe, the
	// order is cancelled locally instead. A Stripe call would fail here since
	// no credentials are configured.
	mock.ExpectQuery(`SELECT .* FROM "orders".*WHERE \(o\.id = 7\)`).
		WillReturnRows(orderRow(tables.OrderStatusPending, nil))
	mock.ExpectQuery(`SELECT .* FROM "orders".*WHERE \(o\.id = 7\)`).
		WillReturnRows(orderRow(tables.OrderStatusPending, nil))
	mock.ExpectExec(`UPDATE "orders".*SET status = 'cancelled'.*WHERE \(id = 7 AND status = 'pending'\)`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`SELECT .* FROM "orders".*WHERE \(o\.id = 7\)`).
		WillReturnRows(orderRow(tables.OrderStatusCancelled, nil))

	outcome, order, err := os.RefundOrder(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, RefundOutcomeCancelled, outcome)
	assert.Equal(t, tables.OrderStatusCancelled, order.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListOrdersEndDateBound(t *testing.T) {
	os, mock := newMockOrderService(t)

	to := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)

	// The end date is inclusive for its whole day, but rows stamped exactly
	// at the next midnight stay out.
	mock.ExpectQuery(`SELECT count\(\*\).*FROM "orders".*o\.created_at < '2026-07-02 00:00:00`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(`SELECT .* FROM "orders".*o\.created_at < '2026-07-02 00:00:00.*DESC LIMIT 25`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	orders, total, err := os.ListOrders(context.Background(), OrderListFilter{DateTo: &to}, 25, 0)
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, orders)
	assert.NoError(t, mock.ExpectationsWereMet())
}

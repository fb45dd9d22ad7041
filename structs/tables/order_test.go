package tables

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateTransition(t *testing.T) {
	tests := []struct {
		name    string
		from    OrderStatus
		to      OrderStatus
		wantErr error
	}{
		{"pending to paid", OrderStatusPending, OrderStatusPaid, nil},
		{"paid to in_process", OrderStatusPaid, OrderStatusInProcess, nil},
		{"in_process to fulfilled", OrderStatusInProcess, OrderStatusFulfilled, nil},
		{"paid to fulfilled skips kitchen", OrderStatusPaid, OrderStatusFulfilled, nil},
		{"pending to cancelled", OrderStatusPending, OrderStatusCancelled, nil},
		{"pending to cancellation_requested", OrderStatusPending, OrderStatusCancellationRequested, nil},
		{"paid to cancellation_requested", OrderStatusPaid, OrderStatusCancellationRequested, nil},
		{"cancellation_requested to cancelled", OrderStatusCancellationRequested, OrderStatusCancelled, nil},
		{"cancellation_requested to fulfilled", OrderStatusCancellationRequested, OrderStatusFulfilled, nil},
		{"cancelled to fulfilled corrects a mis-click", OrderStatusCancelled, OrderStatusFulfilled, nil},
		{"fulfilled to cancelled corrects a mis-click", OrderStatusFulfilled, OrderStatusCancelled, nil},

		{"paid to paid", OrderStatusPaid, OrderStatusPaid, ErrInvalidTransition},
		{"paid back to pending", OrderStatusPaid, OrderStatusPending, ErrInvalidTransition},
		{"fulfilled to paid", OrderStatusFulfilled, OrderStatusPaid, ErrInvalidTransition},
		{"fulfilled to fulfilled", OrderStatusFulfilled, OrderStatusFulfilled, ErrInvalidTransition},
		{"pending to in_process skips payment", OrderStatusPending, OrderStatusInProcess, ErrInvalidTransition},
		{"in_process to cancellation_requested too late", OrderStatusInProcess, OrderStatusCancellationRequested, ErrInvalidTransition},
		{"unknown target", OrderStatusPending, OrderStatus("shipped"), ErrInvalidTransition},

		{"refund needs dedicated operation", OrderStatusPaid, OrderStatusRefunded, ErrInvalidTransition},
		{"refunded is terminal", OrderStatusRefunded, OrderStatusCancelled, ErrOrderRefunded},
		{"refunded even for fulfilled target", OrderStatusRefunded, OrderStatusFulfilled, ErrOrderRefunded},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTransition(tt.from, tt.to)
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestIsTerminal(t *testing.T) {
	assert.True(t, OrderStatusRefunded.IsTerminal())

	for _, status := range []OrderStatus{
		OrderStatusPending, OrderStatusPaid, OrderStatusInProcess,
		OrderStatusFulfilled, OrderStatusCancellationRequested, OrderStatusCancelled,
	} {
		assert.False(t, status.IsTerminal(), "status %s", status)
	}
}

func TestStatusAndTypeValidity(t *testing.T) {
	assert.True(t, OrderStatusCancellationRequested.IsValid())
	assert.False(t, OrderStatus("shipped").IsValid())
	assert.True(t, OrderTypePickup.IsValid())
	assert.True(t, OrderTypeDineIn.IsValid())
	assert.False(t, OrderType("delivery").IsValid())
}

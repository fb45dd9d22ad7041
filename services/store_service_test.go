package services

import (
	"testing"
	"time"

	"saraylidoener_server/structs"
	"saraylidoener_server/structs/tables"

	"github.com/MonkyMars/gecho"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStoreService() *StoreService {
	cfg := &structs.Config{
		Store: &structs.StoreConfig{
			Timezone:  "Europe/Berlin",
			OpenHour:  11,
			CloseHour: 22,
		},
		Stripe: &structs.StripeConfig{},
	}
	logger := gecho.NewLogger(gecho.NewConfig(gecho.WithShowCaller(false), gecho.WithLogLevel(gecho.ParseLogLevel("info"))))

	return &StoreService{
		cfg:            cfg,
		logger:         logger,
		paymentService: NewPaymentService(logger, cfg),
	}
}

func TestWithinOpeningHours(t *testing.T) {
	ss := newTestStoreService()
	berlin, err := time.LoadLocation("Europe/Berlin")
	require.NoError(t, err)

	tests := []struct {
		name string
		now  time.Time
		open bool
	}{
		{"before opening", time.Date(2026, 7, 15, 10, 59, 0, 0, berlin), false},
		{"opening hour inclusive", time.Date(2026, 7, 15, 11, 0, 0, 0, berlin), true},
		{"midday", time.Date(2026, 7, 15, 14, 30, 0, 0, berlin), true},
		{"last open minute", time.Date(2026, 7, 15, 21, 59, 0, 0, berlin), true},
		{"closing hour exclusive", time.Date(2026, 7, 15, 22, 0, 0, 0, berlin), false},
		{"midnight", time.Date(2026, 7, 15, 0, 0, 0, 0, berlin), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			open, err := ss.withinOpeningHours(tt.now)
			require.NoError(t, err)
			assert.Equal(t, tt.open, open)
		})
	}
}

func TestWithinOpeningHoursConvertsTimezone(t *testing.T) {
	ss := newTestStoreService()

	// 10:30 UTC in July is 12:30 in Berlin (CEST): open, even though the UTC
	// hour is before opening.
	open, err := ss.withinOpeningHours(time.Date(2026, 7, 15, 10, 30, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.True(t, open)

	// 21:30 UTC is 23:30 in Berlin: closed, even though the UTC hour is not.
	open, err = ss.withinOpeningHours(time.Date(2026, 7, 15, 21, 30, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.False(t, open)
}

func TestWithinOpeningHoursInvalidTimezone(t *testing.T) {
	ss := newTestStoreService()
	ss.cfg.Store.Timezone = "Mars/Olympus_Mons"

	_, err := ss.withinOpeningHours(time.Now())
	assert.Error(t, err)
}

func TestComposeStatusClosedMessage(t *testing.T) {
	ss := newTestStoreService()
	berlin, err := time.LoadLocation("Europe/Berlin")
	require.NoError(t, err)
	noon := time.Date(2026, 7, 15, 12, 0, 0, 0, berlin)
	msg := "Urlaub bis 15.08."

	t.Run("manual closed exposes the message", func(t *testing.T) {
		status, err := ss.composeStatus(&tables.StoreSettings{
			Mode:          tables.StoreModeManual,
			IsOpen:        false,
			ClosedMessage: &msg,
		}, noon)
		require.NoError(t, err)
		assert.False(t, status.Open)
		require.NotNil(t, status.ClosedMessage)
		assert.Equal(t, msg, *status.ClosedMessage)
	})

	t.Run("manual open hides a stale message", func(t *testing.T) {
		status, err := ss.composeStatus(&tables.StoreSettings{
			Mode:          tables.StoreModeManual,
			IsOpen:        true,
			ClosedMessage: &msg,
		}, noon)
		require.NoError(t, err)
		assert.True(t, status.Open)
		assert.Nil(t, status.ClosedMessage)
	})

	t.Run("auto mode hides a stale message", func(t *testing.T) {
		status, err := ss.composeStatus(&tables.StoreSettings{
			Mode:          tables.StoreModeAuto,
			ClosedMessage: &msg,
		}, noon)
		require.NoError(t, err)
		assert.True(t, status.Open)
		assert.Nil(t, status.ClosedMessage)
		require.NotNil(t, status.Schedule)
		assert.Equal(t, 11, status.Schedule.OpenHour)
	})
}

func TestComposeStatusShopEnabledRequiresStripeCredentials(t *testing.T) {
	ss := newTestStoreService()
	berlin, err := time.LoadLocation("Europe/Berlin")
	require.NoError(t, err)
	noon := time.Date(2026, 7, 15, 12, 0, 0, 0, berlin)

	settings := &tables.StoreSettings{Mode: tables.StoreModeAuto, ShopEnabled: true}

	// No Stripe credentials: the shop flag alone must not enable checkout.
	status, err := ss.composeStatus(settings, noon)
	require.NoError(t, err)
	assert.False(t, status.ShopEnabled)

	ss.cfg.Stripe.SecretKey = "sk_test"
	ss.cfg.Stripe.PublishableKey = "pk_test"
	ss.cfg.Stripe.WebhookSecret = "whsec_test"

	status, err = ss.composeStatus(settings, noon)
	require.NoError(t, err)
	assert.True(t, status.ShopEnabled)
}

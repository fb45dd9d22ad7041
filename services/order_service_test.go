package services

import (
	"testing"

	"saraylidoener_server/lib"
	"saraylidoener_server/structs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestOrderService() *OrderService {
	return &OrderService{
		menuService: NewMenuService(),
	}
}

func TestValidateCheckoutItems(t *testing.T) {
	os := newTestOrderService()

	items, total, err := os.ValidateCheckoutItems([]structs.CheckoutItemInput{
		{MenuItemId: 1, Quantity: 2},  // Döner Kebab, 800
		{MenuItemId: 12, Quantity: 1}, // Pommes Klein, 250
	})
	require.NoError(t, err)

	require.Len(t, items, 2)
	assert.Equal(t, "Döner Kebab", items[0].ItemName)
	assert.Equal(t, int64(800), items[0].UnitPrice)
	assert.Equal(t, 2, items[0].Quantity)
	assert.Equal(t, int64(2*800+250), total)
}

func TestValidateCheckoutItemsUnknownItem(t *testing.T) {
	os := newTestOrderService()

	_, _, err := os.ValidateCheckoutItems([]structs.CheckoutItemInput{
		{MenuItemId: 9999, Quantity: 1},
	})

	assert.ErrorIs(t, err, lib.ErrUnknownMenuItem)
}

func TestValidateCheckoutItemsEmpty(t *testing.T) {
	os := newTestOrderService()

	_, _, err := os.ValidateCheckoutItems(nil)
	assert.Error(t, err)
}

func TestValidateCheckoutItemsClampsQuantity(t *testing.T) {
	os := newTestOrderService()

	tests := []struct {
		name     string
		quantity int
		want     int
	}{
		{"zero becomes one", 0, 1},
		{"negative becomes one", -5, 1},
		{"within range untouched", 42, 42},
		{"above cap clamped", 500, 99},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items, total, err := os.ValidateCheckoutItems([]structs.CheckoutItemInput{
				{MenuItemId: 33, Quantity: tt.quantity}, // Çay, 150
			})
			require.NoError(t, err)
			assert.Equal(t, tt.want, items[0].Quantity)
			assert.Equal(t, int64(150*tt.want), total)
		})
	}
}

func TestValidateCheckoutItemsPriceFromMenuOnly(t *testing.T) {
	os := newTestOrderService()

	// The request carries no price field at all; the snapshot must come from
	// the menu table.
	items, _, err := os.ValidateCheckoutItems([]structs.CheckoutItemInput{
		{MenuItemId: 8, Quantity: 1}, // Saraylı Spezial Teller
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1800), items[0].UnitPrice)
	assert.Equal(t, 8, items[0].MenuItemId)
}

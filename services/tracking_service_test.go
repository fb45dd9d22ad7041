package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocaleFromPath(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/de/speisekarte", "de"},
		{"/en", "en"},
		{"/tr/iletisim", "tr"},
		{"/", "de"},
		{"", "de"},
		{"/speisekarte", "de"},
		{"/fr/menu", "de"}, // unsupported locale falls back to default
		{"/denmark", "de"}, // prefix match is on the full segment
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			locale := localeFromPath(tt.path)
			require.NotNil(t, locale)
			assert.Equal(t, tt.want, *locale)
		})
	}
}

func TestAllowedEventTypes(t *testing.T) {
	assert.True(t, allowedEventTypes["scroll_depth"])
	assert.True(t, allowedEventTypes["click"])
	assert.False(t, allowedEventTypes["pageview"])
	assert.False(t, allowedEventTypes[""])
}

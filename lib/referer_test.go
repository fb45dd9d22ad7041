package lib

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInferSourceFromReferer(t *testing.T) {
	tests := []struct {
		name       string
		referer    string
		wantSource string
		wantMedium string
		wantOk     bool
	}{
		{"tiktok", "https://www.tiktok.com/@doener/video/1", "tiktok", "social", true},
		{"instagram", "https://instagram.com/p/abc", "instagram", "social", true},
		{"facebook short", "https://fb.com/share/1", "facebook", "social", true},
		{"twitter via t.co", "https://t.co/abc123", "twitter", "social", true},
		{"youtube short link", "https://youtu.be/dQw4w9WgXcQ", "youtube", "social", true},
		{"whatsapp link", "https://wa.me/491701234567", "whatsapp", "social", true},
		{"google search", "https://www.google.com/search?q=d%C3%B6ner", "google", "organic", true},
		{"google germany", "https://www.google.de/search", "google", "organic", true},
		{"ecosia", "https://www.ecosia.org/search?q=kebab", "ecosia", "organic", true},
		{"google maps app link", "https://maps.app.goo.gl/xyz", "google_maps", "listing", true},
		{"yelp", "https://www.yelp.com/biz/sarayli", "yelp", "review", true},
		{"lieferando", "https://www.lieferando.de/sarayli-doener", "lieferando", "referral", true},
		{"uber eats", "https://www.uber.com/de/store/sarayli", "uber_eats", "referral", true},
		{"unknown host", "https://example.org/some/page", "", "", false},
		{"empty", "", "", "", false},
		{"no scheme or host", "just-text", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			source, medium, ok := InferSourceFromReferer(tt.referer)
			assert.Equal(t, tt.wantOk, ok)
			assert.Equal(t, tt.wantSource, source)
			assert.Equal(t, tt.wantMedium, medium)
		})
	}
}

func TestInferSourceFirstMatchWins(t *testing.T) {
	// maps.google.com matches both "google.com" and "maps.google"; the
	// earlier rule decides, so it counts as organic search. Only the goo.gl
	// share links classify as the maps listing.
	source, medium, ok := InferSourceFromReferer("https://maps.google.com/place/sarayli")
	assert.True(t, ok)
	assert.Equal(t, "google", source)
	assert.Equal(t, "organic", medium)
}

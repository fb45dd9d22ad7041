package middleware

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"saraylidoener_server/lib"

	"github.com/stretchr/testify/assert"
)

func TestIsTrackablePage(t *testing.T) {
	trackable := []string{"/", "/de", "/de/speisekarte", "/en/kontakt", "/tr"}
	for _, path := range trackable {
		assert.True(t, isTrackablePage(path), "path %q", path)
	}

	notTrackable := []string{
		"/api/checkout",
		"/api/events",
		"/admin/orders",
		"/health/server",
		"/metrics",
		"/sitemap.xml",
		"/favicon.ico",
		"/de/logo.png",
	}
	for _, path := range notTrackable {
		assert.False(t, isTrackablePage(path), "path %q", path)
	}
}

func TestConsentGranted(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/de", nil)
	assert.False(t, ConsentGranted(r))

	r.AddCookie(&http.Cookie{Name: lib.ConsentCookieName, Value: "denied"})
	assert.False(t, ConsentGranted(r))

	r = httptest.NewRequest(http.MethodGet, "/de", nil)
	r.AddCookie(&http.Cookie{Name: lib.ConsentCookieName, Value: "granted"})
	assert.True(t, ConsentGranted(r))
}

func TestVisitorIDFromRequestDeterministic(t *testing.T) {
	build := func() *http.Request {
		r := httptest.NewRequest(http.MethodGet, "/de", nil)
		r.Header.Set("User-Agent", "Mozilla/5.0")
		r.Header.Set("Accept-Language", "de-DE")
		r.RemoteAddr = "203.0.113.7:51234"
		return r
	}

	first := VisitorIDFromRequest(build())
	second := VisitorIDFromRequest(build())
	assert.Equal(t, first, second)
	assert.Len(t, first, 64)

	// A different fingerprint cookie changes the id
	withCookie := build()
	withCookie.AddCookie(&http.Cookie{Name: lib.FingerprintCookie, Value: url.QueryEscape(`{"sw":1920}`)})
	assert.NotEqual(t, first, VisitorIDFromRequest(withCookie))
}

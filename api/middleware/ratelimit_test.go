package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClientIP(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.RemoteAddr = "203.0.113.7:51234"
	assert.Equal(t, "203.0.113.7", ClientIP(r))

	r.Header.Set("X-Real-IP", "198.51.100.2")
	assert.Equal(t, "198.51.100.2", ClientIP(r))

	// X-Forwarded-For wins and only the first hop counts
	r.Header.Set("X-Forwarded-For", "192.0.2.1, 10.0.0.1")
	assert.Equal(t, "192.0.2.1", ClientIP(r))
}

func TestNormalizeEndpoint(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/admin/orders/123", "/admin/orders/:id"},
		{"/admin/orders/123/status", "/admin/orders/:id"},
		{"/admin/visitors/abcdef", "/admin/visitors/:id"},
		{"/api/orders/SD-ABC234/status", "/api/orders/:id"},
		{"/api/checkout", "/api/checkout"},
		{"/admin/orders", "/admin/orders"},
		{"/api/events/", "/api/events"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, normalizeEndpoint(tt.path), "path %q", tt.path)
	}
}

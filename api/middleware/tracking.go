package middleware

import (
	"context"
	"net/http"
	"saraylidoener_server/lib"
	"saraylidoener_server/services"
	"strings"
)

// ConsentGranted reports whether the visitor opted into tracking.
func ConsentGranted(r *http.Request) bool {
	value, err := lib.GetCookieValue(lib.ConsentCookieName, r)
	return err == nil && value == "granted"
}

// VisitorIDFromRequest derives the deterministic visitor id from the request
// headers and the fingerprint cookie.
func VisitorIDFromRequest(r *http.Request) string {
	fingerprint, _ := lib.GetCookieValue(lib.FingerprintCookie, r)

	return lib.GenerateVisitorID(lib.VisitorSignals{
		IP:             ClientIP(r),
		UserAgent:      r.UserAgent(),
		AcceptLanguage: r.Header.Get("Accept-Language"),
		Client:         lib.ParseClientFingerprint(fingerprint),
	})
}

// isTrackablePage filters out everything that is not a storefront page load:
// API and admin calls, operational endpoints, and asset requests (any path
// segment containing a dot).
func isTrackablePage(path string) bool {
	for _, prefix := range []string{"/api", "/admin", "/health", "/metrics", "/sitemap.xml"} {
		if strings.HasPrefix(path, prefix) {
			return false
		}
	}
	return !strings.Contains(path, ".")
}

// TrackingMiddleware records a page view for consenting visitors. The insert
// runs in a goroutine off the request path; tracking never adds latency and
// never fails a request.
func (mw *Middleware) TrackingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet && ConsentGranted(r) && isTrackablePage(r.URL.Path) {
			visitorId := VisitorIDFromRequest(r)

			input := services.PageViewInput{
				IP:        ClientIP(r),
				UserAgent: r.UserAgent(),
				Referer:   r.Referer(),
				URL:       r.URL.RequestURI(),
				VisitorId: &visitorId,
			}

			go mw.trackingService.RecordPageView(context.Background(), input)
		}

		next.ServeHTTP(w, r)
	})
}

package middleware

import (
	"net/http"
	"saraylidoener_server/lib"

	"github.com/MonkyMars/gecho"
)

// AdminAuthMiddleware protects the admin surface. Requests need a live
// session cookie; everything else is rejected before any handler runs.
func (mw *Middleware) AdminAuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, err := lib.GetCookieValue(lib.SessionCookieName, r)
		if err != nil || !mw.sessionService.Validate(token) {
			mw.logger.Warn("Rejected unauthenticated admin request",
				gecho.Field("path", r.URL.Path))
			gecho.Unauthorized(w, gecho.WithMessage("Authentication required"), gecho.Send())
			return
		}

		next.ServeHTTP(w, r)
	})
}

package lib

import (
	"net/http"
	"saraylidoener_server/config"
	"time"
)

const (
	SessionCookieName = "admin_session"
	ConsentCookieName = "tracking_consent"
	FingerprintCookie = "_vfp"
	sessionCookiePath = "/admin"
)

// SetSessionCookie sets the httpOnly admin session cookie, path-scoped to the
// admin surface.
func SetSessionCookie(token string, expiry time.Time, w http.ResponseWriter) {
	cookie := &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Expires:  expiry,
		MaxAge:   int(time.Until(expiry).Seconds()),
		Path:     sessionCookiePath,
		Secure:   config.IsProduction(),
		SameSite: http.SameSiteLaxMode,
		HttpOnly: true,
	}

	http.SetCookie(w, cookie)
}

// ClearSessionCookie removes the session cookie from the browser
func ClearSessionCookie(w http.ResponseWriter) {
	cookie := &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     sessionCookiePath,
		Expires:  time.Now().Add(-time.Hour),
		MaxAge:   -1,
		Secure:   config.IsProduction(),
		SameSite: http.SameSiteLaxMode,
		HttpOnly: true,
	}

	http.SetCookie(w, cookie)
}

func GetCookieValue(key string, r *http.Request) (string, error) {
	cookie, err := r.Cookie(key)
	if err != nil {
		return "", err
	}
	return cookie.Value, nil
}

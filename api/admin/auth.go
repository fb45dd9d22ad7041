package admin

import (
	"errors"
	"net/http"

	"saraylidoener_server/handling"
	"saraylidoener_server/lib"
	"saraylidoener_server/structs"

	"github.com/MonkyMars/gecho"
)

// Login verifies the admin password and issues the session cookie. The
// response body never distinguishes a wrong password from a missing hash.
func (arm *AdminRoutesManager) Login(w http.ResponseWriter, r *http.Request) {
	body, err := lib.ExtractAndValidateBody[structs.LoginRequest](r)
	if err != nil {
		gecho.BadRequest(w,
			gecho.WithMessage("Invalid login request"),
			gecho.Send(),
		)
		return
	}

	token, expiresAt, err := arm.sessionService.Login(body.Password)
	if err != nil {
		if errors.Is(err, lib.ErrInvalidCredentials) {
			gecho.Unauthorized(w,
				gecho.WithMessage("Invalid credentials"),
				gecho.Send(),
			)
			return
		}
		handling.HandleError(err, "Login failed", arm.logger, w)
		return
	}

	lib.SetSessionCookie(token, expiresAt, w)

	gecho.Success(w,
		gecho.WithData(map[string]any{"expires_at": expiresAt}),
		gecho.Send(),
	)
}

// Logout revokes the session server-side and clears the cookie. Always
// succeeds, even with no or an unknown session.
func (arm *AdminRoutesManager) Logout(w http.ResponseWriter, r *http.Request) {
	if token, err := lib.GetCookieValue(lib.SessionCookieName, r); err == nil {
		arm.sessionService.Logout(token)
	}

	lib.ClearSessionCookie(w)

	gecho.Success(w,
		gecho.WithMessage("Logged out"),
		gecho.Send(),
	)
}

package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// ctxClaims extracts the auth claims injected by the Auth middleware and
// fails fast when they are missing: both email and role must be set.
func ctxClaims(c echo.Context) (email, role string, err error) {
	email, _ = c.Get("email").(string)
	role, _ = c.Get("role").(string)
	if email == "" || role == "" {
		return "", "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return email, role, nil
}

package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/ecommerce_hub/pkg/logging"
	"github.com/Skotchmaster/ecommerce_hub/services/auth/internal/cookie"
	"github.com/Skotchmaster/ecommerce_hub/services/auth/internal/service"
	"github.com/Skotchmaster/ecommerce_hub/services/auth/internal/transport"
)

type AuthHTTP struct {
	Svc          *service.AuthService
	SecureCookie bool
}

func (h *AuthHTTP) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth_login")

	var req transport.LoginRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("login_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	res, err := h.Svc.Login(ctx, req)
	if err != nil {
		var fe *service.FieldError
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid credentials")
		case errors.As(err, &fe):
			l.Warn("login_error", "status", 400, "reason", fe.Reason)
			return echo.NewHTTPError(http.StatusBadRequest, fe.Reason)
		}
		l.Error("login_error", "status", 500, "reason", "cannot log in", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "authentication failed")
	}

	c.SetCookie(cookie.Create(cookie.AccessToken, res.AccessToken, "/", res.AccessExp, h.SecureCookie))

	return c.JSON(http.StatusOK, transport.LoginResponse{
		User:        transport.NewUserDTO(res.User),
		AccessToken: res.AccessToken,
		ExpiresAt:   res.AccessExp,
	})
}

package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	metricsmw "github.com/Skotchmaster/ecommerce_hub/pkg/middleware/metrics"
	"github.com/Skotchmaster/ecommerce_hub/pkg/middleware/ratelimit"
)

type Deps struct {
	AuthHandler  *AuthHTTP
	LoginLimiter *ratelimit.PerIP
	Metrics      *metricsmw.Metrics
	Ready        func() error
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error {
		if d.Ready != nil {
			if err := d.Ready(); err != nil {
				return echo.NewHTTPError(http.StatusServiceUnavailable, "not ready")
			}
		}
		return c.NoContent(http.StatusOK)
	})
	if d.Metrics != nil {
		e.GET("/metrics", d.Metrics.Handler())
	}

	var mws []echo.MiddlewareFunc
	if d.LoginLimiter != nil {
		mws = append(mws, d.LoginLimiter.Middleware)
	}

	auth := e.Group("/auth")
	auth.POST("/login", d.AuthHandler.Login, mws...)
}

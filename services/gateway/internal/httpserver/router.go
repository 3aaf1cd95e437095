package httpserver

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	metricsmw "github.com/Skotchmaster/ecommerce_hub/pkg/middleware/metrics"
	"github.com/Skotchmaster/ecommerce_hub/services/gateway/internal/middleware"
	"github.com/Skotchmaster/ecommerce_hub/services/gateway/internal/proxy"
)

const apiPrefix = "/api"

type Deps struct {
	AuthURL    string
	CatalogURL string

	Logger      *slog.Logger
	Metrics     *metricsmw.Metrics
	CORSOrigins []string
}

func Register(e *echo.Echo, d *Deps) error {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	if d.Metrics != nil {
		e.GET("/metrics", d.Metrics.Handler())
	}

	logger := d.Logger
	if logger == nil {
		logger = slog.Default()
	}
	e.Use(middleware.Common(logger, d.Metrics, d.CORSOrigins)...)

	authProxy, err := proxy.New(d.AuthURL, apiPrefix)
	if err != nil {
		return err
	}
	catalogProxy, err := proxy.New(d.CatalogURL, apiPrefix)
	if err != nil {
		return err
	}

	api := e.Group(apiPrefix)
	api.Any("/auth/*", authProxy)
	api.Any("/products", catalogProxy)
	api.Any("/products/*", catalogProxy)

	return nil
}

package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	middleware "github.com/Skotchmaster/ecommerce_hub/pkg/middleware/auth"
	metricsmw "github.com/Skotchmaster/ecommerce_hub/pkg/middleware/metrics"
)

type Deps struct {
	CatalogHandler *CatalogHTTP
	JWTSecret      []byte
	Metrics        *metricsmw.Metrics
	Ready          func() error
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

	authMW := middleware.NewBearerMiddleware(d.JWTSecret)

	products := e.Group("/products")
	products.GET("", d.CatalogHandler.GetProducts, authMW.Optional)
	products.GET("/search", d.CatalogHandler.SearchProducts, authMW.Optional)
	products.GET("/:sku", d.CatalogHandler.GetProduct, authMW.Optional)

	admin := products.Group("", authMW.RequireAdmin)
	admin.POST("", d.CatalogHandler.CreateProduct)
	admin.PUT("/:sku", d.CatalogHandler.UpdateProduct)
	admin.DELETE("/:sku", d.CatalogHandler.DeleteProduct)
}

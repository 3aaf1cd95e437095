package middleware

import (
	"log/slog"

	"github.com/labstack/echo/v4"
	ecM "github.com/labstack/echo/v4/middleware"

	loggingmw "github.com/Skotchmaster/ecommerce_hub/pkg/middleware/logging"
	metricsmw "github.com/Skotchmaster/ecommerce_hub/pkg/middleware/metrics"
)

func Common(logger *slog.Logger, metrics *metricsmw.Metrics, corsOrigins []string) []echo.MiddlewareFunc {
	mws := []echo.MiddlewareFunc{
		ecM.Recover(),
		ecM.RequestID(),
	}
	if metrics != nil {
		mws = append(mws, metrics.Middleware())
	}
	return append(mws,
		loggingmw.RequestLogger(logger),
		ecM.Secure(),
		ecM.CORSWithConfig(ecM.CORSConfig{AllowOrigins: corsOrigins}),
	)
}

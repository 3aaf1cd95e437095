package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/ecommerce_hub/pkg/httperror"
	"github.com/Skotchmaster/ecommerce_hub/pkg/logging"
	metricsmw "github.com/Skotchmaster/ecommerce_hub/pkg/middleware/metrics"
	"github.com/Skotchmaster/ecommerce_hub/services/gateway/internal/config"
	"github.com/Skotchmaster/ecommerce_hub/services/gateway/internal/httpserver"
)

func main() {
	if err := godotenv.Load("services/gateway/.env"); err != nil {
		log.Printf("warning: could not load .env: %v", err)
	}

	cfg := config.Load()

	logger := logging.New(cfg.LogLevel).With("service", cfg.ServiceName)
	slog.SetDefault(logger)

	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = httperror.Handler
	e.Server.ReadTimeout = 10 * time.Second
	e.Server.WriteTimeout = 30 * time.Second
	e.Server.ReadHeaderTimeout = 3 * time.Second

	if err := httpserver.Register(e, &httpserver.Deps{
		AuthURL:     cfg.AuthURL,
		CatalogURL:  cfg.CatalogURL,
		Logger:      logger,
		Metrics:     metricsmw.New(cfg.ServiceName),
		CORSOrigins: cfg.CORSOrigins,
	}); err != nil {
		log.Fatal(err)
	}

	go func() {
		logger.Info("gateway listening", "addr", cfg.Addr(), "auth", cfg.AuthURL, "catalog", cfg.CatalogURL)
		if err := e.Start(cfg.Addr()); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Fatalf("shutdown: %v", err)
	}
}

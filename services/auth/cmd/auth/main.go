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
	echomw "github.com/labstack/echo/v4/middleware"

	pkgdb "github.com/Skotchmaster/ecommerce_hub/pkg/db"
	"github.com/Skotchmaster/ecommerce_hub/pkg/httperror"
	"github.com/Skotchmaster/ecommerce_hub/pkg/logging"
	loggingmw "github.com/Skotchmaster/ecommerce_hub/pkg/middleware/logging"
	metricsmw "github.com/Skotchmaster/ecommerce_hub/pkg/middleware/metrics"
	"github.com/Skotchmaster/ecommerce_hub/pkg/middleware/ratelimit"

	authcfg "github.com/Skotchmaster/ecommerce_hub/services/auth/internal/config"
	"github.com/Skotchmaster/ecommerce_hub/services/auth/internal/httpserver"
	"github.com/Skotchmaster/ecommerce_hub/services/auth/internal/repo"
	"github.com/Skotchmaster/ecommerce_hub/services/auth/internal/service"
)

func main() {
	if err := godotenv.Load("services/auth/.env"); err != nil {
		log.Printf("warning: could not load .env: %v", err)
	}

	cfg := authcfg.Load()

	logger := logging.New(cfg.LogLevel).With("service", cfg.ServiceName)
	slog.SetDefault(logger)

	initCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	db, err := pkgdb.Open(initCtx, cfg.DatabaseURL)
	if err != nil {
		cancel()
		log.Fatalf("db open: %v", err)
	}

	r := &repo.GormRepo{DB: db}
	if err := r.Migrate(initCtx); err != nil {
		cancel()
		log.Fatalf("db migrate: %v", err)
	}

	svc := &service.AuthService{
		Repo:      r,
		JWTSecret: cfg.JWTSecret,
		AccessTTL: cfg.AccessTTL,
	}

	if cfg.SeedDemo {
		n, err := svc.Seed(initCtx)
		if err != nil {
			logger.Error("seed_failed", "error", err)
		} else if n > 0 {
			logger.Info("seeded_demo_users", "users", n)
		}
	}
	cancel()

	metrics := metricsmw.New(cfg.ServiceName)

	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = httperror.Handler
	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(metrics.Middleware())
	e.Use(loggingmw.RequestLogger(logger))
	e.Use(echomw.BodyLimit("64K"))

	httpserver.Register(e, &httpserver.Deps{
		AuthHandler:  &httpserver.AuthHTTP{Svc: svc, SecureCookie: cfg.SecureCookie},
		LoginLimiter: ratelimit.NewPerIP(cfg.LoginRPS, cfg.LoginBurst),
		Metrics:      metrics,
		Ready: func() error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.Ping()
		},
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           e,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		ReadHeaderTimeout: 3 * time.Second,
	}

	go func() {
		logger.Info("auth listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listen: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown_failed", "error", err)
	}
	if err := pkgdb.Close(db); err != nil {
		logger.Error("db_close_failed", "error", err)
	}

	logger.Info("auth stopped")
}

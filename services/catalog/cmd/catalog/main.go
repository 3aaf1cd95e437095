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

	catalogcfg "github.com/Skotchmaster/ecommerce_hub/services/catalog/internal/config"
	"github.com/Skotchmaster/ecommerce_hub/services/catalog/internal/events"
	"github.com/Skotchmaster/ecommerce_hub/services/catalog/internal/httpserver"
	"github.com/Skotchmaster/ecommerce_hub/services/catalog/internal/repo"
	"github.com/Skotchmaster/ecommerce_hub/services/catalog/internal/search"
	"github.com/Skotchmaster/ecommerce_hub/services/catalog/internal/service"
)

func main() {
	if err := godotenv.Load("services/catalog/.env"); err != nil {
		log.Printf("warning: could not load .env: %v", err)
	}

	cfg := catalogcfg.Load()

	logger := logging.New(cfg.LogLevel).With("service", cfg.ServiceName)
	slog.SetDefault(logger)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	db, err := pkgdb.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		cancel()
		log.Fatalf("db open: %v", err)
	}

	r := &repo.GormRepo{DB: db}
	if err := r.Migrate(ctx); err != nil {
		cancel()
		log.Fatalf("db migrate: %v", err)
	}

	svc := &service.CatalogService{Repo: r}

	var producer *events.Producer
	if len(cfg.KafkaBrokers) > 0 {
		producer = events.NewProducer(cfg.KafkaBrokers, cfg.KafkaTopic)
		svc.Events = producer
		logger.Info("kafka_enabled", "brokers", cfg.KafkaBrokers, "topic", cfg.KafkaTopic)
	}

	if cfg.ElasticURL != "" {
		idx, err := search.NewIndex(search.Config{
			URL:      cfg.ElasticURL,
			Username: cfg.ElasticUsername,
			Password: cfg.ElasticPassword,
			Index:    cfg.ElasticIndex,
		})
		if err != nil {
			logger.Error("elasticsearch_disabled", "error", err)
		} else {
			if perr := idx.Ping(ctx); perr != nil {
				logger.Warn("elasticsearch_unreachable", "url", cfg.ElasticURL, "error", perr)
			}
			svc.Search = idx
		}
	}

	if cfg.SeedDemo {
		n, err := svc.Seed(ctx)
		if err != nil {
			logger.Error("seed_failed", "error", err)
		} else if n > 0 {
			logger.Info("seeded_demo_catalog", "products", n)
		}
	}
	if n, err := svc.Reindex(ctx); err != nil {
		logger.Warn("reindex_failed", "indexed", n, "error", err)
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
	e.Use(echomw.CORS())

	httpserver.Register(e, &httpserver.Deps{
		CatalogHandler: &httpserver.CatalogHTTP{Svc: svc},
		JWTSecret:      cfg.JWTSecret,
		Metrics:        metrics,
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
		logger.Info("catalog listening", "addr", srv.Addr)
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
	if producer != nil {
		if err := producer.Close(); err != nil {
			logger.Error("kafka_close_failed", "error", err)
		}
	}
	if err := pkgdb.Close(db); err != nil {
		logger.Error("db_close_failed", "error", err)
	}

	logger.Info("catalog stopped")
}

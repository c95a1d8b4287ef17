package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/multierr"

	"github.com/pixelcart/pixelcart-backend/api/routes"
	"github.com/pixelcart/pixelcart-backend/internal/orders"
	"github.com/pixelcart/pixelcart-backend/pkg/config"
	"github.com/pixelcart/pixelcart-backend/pkg/db"
	"github.com/pixelcart/pixelcart-backend/pkg/logger"
	"github.com/pixelcart/pixelcart-backend/pkg/metrics"
	"github.com/pixelcart/pixelcart-backend/pkg/migrate"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "orders"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "orders",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
		Console:     cfg.App.LogConsole(),
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbClient, err := db.New(ctx, cfg.DB, cfg.FeatureFlags, logg)
	if err != nil {
		logg.Error(ctx, "failed to bootstrap database", err)
		os.Exit(1)
	}

	if cfg.FeatureFlags.UseSQLite {
		if err := dbClient.AutoMigrate(); err != nil {
			logg.Error(ctx, "failed to auto-migrate sqlite schema", err)
			os.Exit(1)
		}
	} else {
		sqlDB, err := dbClient.SQLDB()
		if err != nil {
			logg.Error(ctx, "failed to access sql database", err)
			os.Exit(1)
		}
		if err := migrate.RunWithRetry(ctx, sqlDB, "postgres", migrate.DefaultDir, cfg.Migrate, logg); err != nil {
			logg.Error(ctx, "failed to apply schema migrations", err)
			os.Exit(1)
		}
	}

	m := metrics.NewService("orders")
	svc, err := orders.NewService(orders.NewRepository(dbClient.DB()), dbClient, m)
	if err != nil {
		logg.Error(ctx, "failed to create order service", err)
		os.Exit(1)
	}

	addr := ":" + cfg.App.Port
	server := &http.Server{
		Addr:    addr,
		Handler: routes.NewOrdersRouter(logg, m, dbClient, svc),
	}

	runCtx := logg.WithFields(ctx, map[string]any{"env": cfg.App.Env, "addr": addr})
	logg.Info(runCtx, "starting orders server")

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			logg.Error(runCtx, "orders server stopped unexpectedly", err)
			os.Exit(1)
		}
	case <-ctx.Done():
		logg.Info(runCtx, "shutdown signal received")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		err := server.Shutdown(shutdownCtx)
		err = multierr.Append(err, dbClient.Close())
		if err != nil {
			logg.Error(runCtx, "shutdown finished with errors", err)
			os.Exit(1)
		}
		logg.Info(runCtx, "orders server stopped")
	}
}

package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"servicetrack-backend/config"
	"servicetrack-backend/controllers"
	"servicetrack-backend/routes"
	"servicetrack-backend/services"
	"servicetrack-backend/store"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger, err := config.NewLogger(cfg.LogLevel)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	if err := run(cfg, logger); err != nil {
		logger.Fatal("server exited", zap.Error(err))
	}
}

func run(cfg config.Config, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	st, err := openStore(cfg)
	if err != nil {
		return err
	}

	registry := services.NewRegistry(st,
		services.WithLocation(cfg.Location),
		services.WithLogger(logger.Named("registry")),
	)

	if cfg.SeedDemoData {
		if err := services.SeedDemoData(ctx, registry); err != nil {
			return fmt.Errorf("seed demo data: %w", err)
		}
		logger.Info("demo data loaded")
	}

	if cfg.IntegrityCheckSchedule != "" {
		job := services.NewIntegrityJob(registry, logger.Named("integrity"))
		scheduler, err := services.StartIntegrityScheduler(cfg.IntegrityCheckSchedule, job)
		if err != nil {
			return err
		}
		defer func() { <-scheduler.Stop().Done() }()
	}

	gin.SetMode(cfg.GinMode)
	r := routes.SetupRouter(cfg, controllers.NewHandler(registry, logger.Named("http")), logger)
	printRoutes(r, logger)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("listening", zap.String("addr", srv.Addr), zap.String("store", cfg.StoreDriver))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func openStore(cfg config.Config) (store.Store, error) {
	if cfg.StoreDriver != config.StoreSQLite {
		return store.NewMemory(), nil
	}
	db, err := config.OpenDatabase(cfg.SQLiteDSN)
	if err != nil {
		return nil, err
	}
	return store.NewGorm(db, cfg.Location)
}

func printRoutes(r *gin.Engine, logger *zap.Logger) {
	for _, route := range r.Routes() {
		logger.Debug("route", zap.String("method", route.Method), zap.String("path", route.Path))
	}
}

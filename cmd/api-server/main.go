package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"go.uber.org/zap"

	"modhome/internal/catalog"
	"modhome/internal/catalogdb"
	"modhome/internal/categorize"
	"modhome/internal/config"
	"modhome/internal/events"
	"modhome/internal/grpcserver"
	"modhome/internal/logging"
	"modhome/internal/observability"
	"modhome/internal/product"
	"modhome/internal/quote"
	"modhome/internal/store"
	"modhome/pkg/database"
	"modhome/pkg/models"
)

func main() {
	cfg := config.Load()
	logger := logging.Must(cfg.Debug)
	defer func() { _ = logger.Sync() }()

	if err := run(cfg, logger); err != nil {
		logger.Error("api server failed", zap.Error(err))
		os.Exit(1)
	}
}

// catalogLoader returns the configured catalog source and its cleanup.
func catalogLoader(cfg config.Config) (product.Loader, func(), error) {
	switch cfg.CatalogSource {
	case "", "json":
		return catalog.FileLoader{Path: cfg.CatalogPath}, func() {}, nil
	case "sqlite":
		db, err := database.Open(database.Config{Path: cfg.DBPath})
		if err != nil {
			return nil, nil, err
		}
		return catalogdb.NewRepo(db), func() { _ = db.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("unknown catalog source %q (want json or sqlite)", cfg.CatalogSource)
	}
}

func run(cfg config.Config, logger *zap.Logger) error {
	loader, closeLoader, err := catalogLoader(cfg)
	if err != nil {
		return err
	}
	defer closeLoader()

	var categorizer *categorize.Categorizer
	if cfg.Profile != "" {
		categorizer, err = categorize.Open(cfg.Profile, cfg.ProfilesFile)
		if err != nil {
			return err
		}
	} else {
		logger.Warn("no category profile selected; products without a category are rejected")
	}

	st := store.New()
	metrics := observability.New()
	hub := events.NewHub(logger)
	grpcSrv := grpcserver.New(logger)
	quotes := quote.NewHandler(quote.NewRepo(), st)
	quotes.OnCreate = func(models.Quote) { metrics.QuotesTotal.Inc() }

	products := product.NewHandler(st, loader)
	products.Categorizer = categorizer
	products.FeatureCap = cfg.FeatureCap
	products.Events = hub
	products.Logger = logger.Named("catalog")
	products.OnReload = func(n int, err error) {
		metrics.ObserveReload(n, err)
		grpcSrv.SetCatalogReady(err == nil)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if _, err := products.Reload(ctx); err != nil {
		// keep serving; /ready stays 503 until a reload succeeds
		logger.Warn("initial catalog load failed", zap.Error(err))
	}
	cancel()

	snapshot, _ := loader.(snapshotClock)
	router := newRouter(deps{
		Store:    st,
		Products: products,
		Quotes:   quotes,
		Hub:      hub,
		Metrics:  metrics,
		Logger:   logger.Named("http"),
		Source:   cfg.CatalogSource,
		Snapshot: snapshot,
	})

	httpSrv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           withCORS(router, cfg.CORSOrigins),
		ReadHeaderTimeout: 10 * time.Second,
	}

	grpcLis, err := net.Listen("tcp", cfg.GRPCAddr)
	if err != nil {
		return fmt.Errorf("grpc listen: %w", err)
	}

	errCh := make(chan error, 2)
	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := grpcSrv.Serve(grpcLis); err != nil {
			errCh <- err
		}
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		logger.Info("HTTP API server listening", zap.String("addr", cfg.HTTPAddr))
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	var runErr error
	select {
	case sig := <-sigCh:
		logger.Info("shutdown signal received", zap.String("signal", sig.String()))
	case runErr = <-errCh:
		logger.Error("server error", zap.Error(runErr))
	}

	logger.Info("shutting down servers")
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()

	grpcSrv.Stop()
	hub.Close()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		logger.Warn("http shutdown error", zap.Error(err))
	}

	wg.Wait()
	quotes.Repo.Clear()
	st.Close()
	logger.Info("servers stopped")
	return runErr
}

package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"geocatalog/internal/enrichment/countries"
	enrichmenthandler "geocatalog/internal/enrichment/handler"
	"geocatalog/internal/enrichment/weather"
	geohandler "geocatalog/internal/geo/handler"
	"geocatalog/internal/geo/service"
	"geocatalog/internal/geo/store"
	"geocatalog/internal/platform/config"
	"geocatalog/internal/platform/httpserver"
	"geocatalog/internal/platform/logger"
	"geocatalog/internal/platform/metrics"
	httptransport "geocatalog/internal/transport/http"
)

// main wires high-level dependencies and keeps the server lifecycle small.
// Business logic lives in the internal service packages.
func main() {
	if err := run(); err != nil {
		os.Stderr.WriteString("geocatalog: " + err.Error() + "\n")
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.FromEnv()
	if err != nil {
		return err
	}
	log := logger.New(cfg.LogLevel, cfg.LogFormat)
	m := metrics.New()

	st, closeStore, err := openStore(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeStore()

	geoService := service.New(st, log, service.WithMetrics(m))
	enrichment := enrichmenthandler.New(
		countries.NewClient(cfg.CountriesBaseURL, cfg.EnrichTimeout, log, m),
		weather.NewClient(cfg.WeatherBaseURL, cfg.EnrichTimeout, log, m),
		log,
	)

	router := httptransport.NewRouter(geohandler.New(geoService, log), enrichment, log)
	srv := httpserver.New(cfg.Addr, router)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting geocatalog", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		log.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// openStore picks the backing store from the environment. Without a
// DATABASE_URL the catalog runs on the in-memory store, which is enough for
// local development and tests.
func openStore(ctx context.Context, cfg config.Config, log *slog.Logger) (store.Store, func(), error) {
	if cfg.DatabaseURL == "" {
		log.Info("using in-memory store")
		return store.NewMemory(), func() {}, nil
	}

	pg, err := store.NewPostgres(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, nil, err
	}
	if err := pg.Migrate(ctx); err != nil {
		pg.Close()
		return nil, nil, err
	}
	log.Info("connected to postgres")
	return pg, pg.Close, nil
}

package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"prospectdash/internal/delivery"
	"prospectdash/internal/domain"
	"prospectdash/internal/infrastructure"
	"prospectdash/internal/usecase"
	"prospectdash/pkg/config"
	"prospectdash/pkg/logger"
	"prospectdash/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

type storage struct {
	prospects domain.ProspectRepository
	campaigns domain.CampaignRepository
	settings  domain.SettingsRepository
	checks    map[string]delivery.HealthCheck
	closers   []func() error
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Logging.Level)
	log.WithFields(map[string]any{
		"port":    cfg.Server.Port,
		"storage": cfg.Storage.Driver,
	}).Info("Starting server")

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.NewWithRegistry(registry)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := openStorage(ctx, cfg, log)
	if err != nil {
		log.WithError(err).Fatal("Failed to initialize storage")
	}
	defer func() {
		for _, closeFn := range store.closers {
			if err := closeFn(); err != nil {
				log.WithError(err).Warn("Failed to close storage")
			}
		}
	}()

	if err := seed(ctx, cfg, store, log); err != nil {
		log.WithError(err).Fatal("Failed to seed storage")
	}

	handlers := delivery.NewHTTPHandlers(
		usecase.NewProspectService(store.prospects, log, m),
		usecase.NewCampaignService(store.campaigns, log),
		usecase.NewSettingsService(store.settings, log),
		usecase.NewDashboardService(store.prospects, store.campaigns, log, m),
		log,
	)
	for name, check := range store.checks {
		handlers.AddHealthCheck(name, check)
	}

	router := delivery.NewHTTPRouter(handlers, log, m, delivery.RouterConfig{
		RequestTimeout: cfg.Server.RequestTimeout,
		CORSOrigins:    cfg.Server.CORSOrigins,
		Gatherer:       registry,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router.SetupRoutes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("Server failed")
		}
	}()
	log.WithField("addr", srv.Addr).Info("Server listening")

	<-ctx.Done()
	log.Info("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("Graceful shutdown failed")
	}
}

func openStorage(ctx context.Context, cfg *config.Config, log *logger.Logger) (*storage, error) {
	store := &storage{checks: make(map[string]delivery.HealthCheck)}

	switch cfg.Storage.Driver {
	case "postgres":
		db, err := infrastructure.OpenPostgres(ctx, cfg.Storage.DatabaseURL)
		if err != nil {
			return nil, err
		}
		if err := infrastructure.Migrate(ctx, db); err != nil {
			db.Close()
			return nil, err
		}
		store.prospects = infrastructure.NewPostgresProspectRepository(db, log)
		store.campaigns = infrastructure.NewPostgresCampaignRepository(db, log)
		store.checks["postgres"] = pingDB(db)
		store.closers = append(store.closers, db.Close)
	default:
		store.prospects = infrastructure.NewProspectRepository(log)
		store.campaigns = infrastructure.NewCampaignRepository(log)
	}

	if cfg.Storage.RedisURL == "" {
		store.settings = infrastructure.NewSettingsRepository()
		return store, nil
	}

	client, err := infrastructure.NewRedisClient(ctx, cfg.Storage.RedisURL)
	if err != nil {
		for _, closeFn := range store.closers {
			closeFn()
		}
		return nil, err
	}
	settings := infrastructure.NewRedisSettingsRepository(client, log)
	store.settings = settings
	store.checks["redis"] = settings.Ping
	store.closers = append(store.closers, client.Close)

	return store, nil
}

func pingDB(db *sql.DB) delivery.HealthCheck {
	return func(ctx context.Context) error {
		return db.PingContext(ctx)
	}
}

// seed loads SEED_FILE, or the built-in data set when the memory store is used.
func seed(ctx context.Context, cfg *config.Config, store *storage, log *logger.Logger) error {
	var data *infrastructure.Seed
	switch {
	case cfg.Storage.SeedFile != "":
		loaded, err := infrastructure.LoadSeed(cfg.Storage.SeedFile)
		if err != nil {
			return err
		}
		data = loaded
	case cfg.Storage.Driver == "memory":
		data = infrastructure.DefaultSeed(time.Now())
	default:
		return nil
	}

	if err := data.Apply(ctx, store.prospects, store.campaigns); err != nil {
		return err
	}
	log.WithFields(map[string]any{
		"prospects": len(data.Prospects),
		"campaigns": len(data.Campaigns),
	}).Info("Seeded storage")
	return nil
}

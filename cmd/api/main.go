// @title Pet Care Tracker API
// @version 1.0
// @description Seguimiento de mascotas por usuario: perfiles, salud, diario, paseos y recordatorios.
// @BasePath /
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pet-care-tracker/internal/adapters/auth/odin"
	mem "pet-care-tracker/internal/adapters/storage/memory"
	pg "pet-care-tracker/internal/adapters/storage/postgres"
	redisstore "pet-care-tracker/internal/adapters/storage/redis"
	"pet-care-tracker/internal/config"
	"pet-care-tracker/internal/platform/logger"
	"pet-care-tracker/internal/platform/metrics"
	"pet-care-tracker/internal/ports/auth"
	"pet-care-tracker/internal/ports/docstore"
	"pet-care-tracker/internal/router"
	"pet-care-tracker/internal/tracking"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.Logging.Level),
		Format: logger.ParseFormat(cfg.Logging.Format),
		App:    cfg.Logging.App,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync(log)

	if err := run(cfg, log); err != nil {
		log.Error("server stopped with error", map[string]any{"error": err.Error()})
		logger.Sync(log)
		os.Exit(1)
	}
}

func run(cfg *config.Config, log logger.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := openStore(ctx, cfg.Store, log)
	if err != nil {
		return err
	}

	m := metrics.New()

	var verifier auth.AuthVerifier // nil => modo dev
	if cfg.Auth.Odin.Enabled() {
		client, err := odin.NewClient(odin.Config{
			BaseURL:  cfg.Auth.Odin.BaseURL,
			APIKey:   cfg.Auth.Odin.APIKey,
			Timeout:  cfg.Auth.Odin.Timeout,
			Observer: m.UpstreamObserver("odin"),
		})
		if err != nil {
			closeStore()
			return err
		}
		verifier = client
	} else {
		log.Warn("odin not configured, accepting X-Debug-User-ID", nil)
	}

	mgr := tracking.NewManager(store, log, m)

	srv := &http.Server{
		Addr: cfg.Addr(),
		Handler: router.NewRouter(router.Options{
			AuthVerifier: verifier,
			Manager:      mgr,
			Logger:       log,
			Metrics:      m,
		}),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting server", map[string]any{"addr": srv.Addr, "store": cfg.Store.Driver})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	var serveErr error
	select {
	case <-ctx.Done():
		log.Info("shutting down", nil)
	case serveErr = <-errCh:
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("http shutdown failed", map[string]any{"error": err.Error()})
	}

	// Vacía las escrituras pendientes de cada sesión antes de soltar el store.
	mgr.Close()
	closeStore()
	return serveErr
}

// openStore arma el docstore según cfg.Driver. El cierre devuelto libera todo lo que abrió.
func openStore(ctx context.Context, cfg config.StoreConfig, log logger.Logger) (docstore.Store, func(), error) {
	switch cfg.Driver {
	case config.DriverRedis:
		s, err := redisstore.Open(ctx, redisstore.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			Prefix:   cfg.Redis.Prefix,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("redis: %w", err)
		}
		return s, func() {
			if err := s.Close(); err != nil {
				log.Warn("redis close failed", map[string]any{"error": err.Error()})
			}
		}, nil

	case config.DriverPostgres:
		db, err := pg.Open(cfg.Postgres.DSN)
		if err != nil {
			return nil, nil, fmt.Errorf("postgres: %w", err)
		}
		if err := pg.Migrate(ctx, db); err != nil {
			_ = db.Close()
			return nil, nil, fmt.Errorf("postgres migrate: %w", err)
		}
		src, err := pg.ListenPgx(ctx, cfg.Postgres.DSN)
		if err != nil {
			_ = db.Close()
			return nil, nil, fmt.Errorf("postgres listen: %w", err)
		}
		hub := pg.NewHub(src)
		s := pg.NewStore(db, hub)
		hub.Run(context.Background())
		return s, func() {
			_ = s.Close()
			cctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
			defer cancel()
			if err := hub.Close(cctx); err != nil {
				log.Warn("postgres listen close failed", map[string]any{"error": err.Error()})
			}
			_ = db.Close()
		}, nil

	default:
		s := mem.NewStore()
		return s, func() { _ = s.Close() }, nil
	}
}

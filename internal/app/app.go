package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/riskibarqy/college-baseball-live/external/espn"
	"github.com/riskibarqy/college-baseball-live/external/fangraphs"
	"github.com/riskibarqy/college-baseball-live/internal/config"
	"github.com/riskibarqy/college-baseball-live/internal/domain/notification"
	"github.com/riskibarqy/college-baseball-live/internal/infrastructure/kvstore"
	"github.com/riskibarqy/college-baseball-live/internal/infrastructure/notifier"
	"github.com/riskibarqy/college-baseball-live/internal/interfaces/httpapi"
	"github.com/riskibarqy/college-baseball-live/internal/platform/logging"
	"github.com/riskibarqy/college-baseball-live/internal/usecase"
)

const shutdownTimeout = 10 * time.Second

// App is the wired process: upstream clients, preference store, notifier
// backends, the sync engine and the HTTP server in front of it.
type App struct {
	cfg    config.Config
	logger *logging.Logger

	Engine *usecase.Engine
	Server *http.Server

	hub        *notifier.Hub
	dispatcher *notifier.Dispatcher
	closers    []func() error
}

func New(ctx context.Context, cfg config.Config, logger *logging.Logger) (*App, error) {
	logger = logging.OrDefault(logger)
	a := &App{cfg: cfg, logger: logger}

	if cfg.HTTPAddr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	espnClient := espn.NewClient(espn.ClientConfig{
		BaseURL:          cfg.ESPNBaseURL,
		StandingsBaseURL: cfg.ESPNStandingsBaseURL,
		Timeout:          cfg.ESPNTimeout,
		Logger:           logger,
		CircuitBreaker:   cfg.ESPNCircuit,
	})
	fangraphsClient := fangraphs.NewClient(fangraphs.ClientConfig{
		BaseURL:        cfg.FanGraphsBaseURL,
		Timeout:        cfg.FanGraphsTimeout,
		Logger:         logger,
		CircuitBreaker: cfg.FanGraphsCircuit,
	})

	store, closeStore, err := kvstore.Open(ctx, kvstore.Config{
		Backend:    cfg.KVBackend,
		SQLitePath: cfg.KVSQLitePath,
		Postgres: kvstore.PostgresConfig{
			URL:                         cfg.DBURL,
			DisablePreparedBinaryResult: cfg.DBDisablePreparedBinary,
			Migrate:                     cfg.DBMigrate,
		},
		CacheTTL: cfg.CacheTTL,
	})
	if err != nil {
		return nil, fmt.Errorf("open preference store: %w", err)
	}
	a.closers = append(a.closers, closeStore)
	logger.Info("preference store ready", "backend", cfg.KVBackend)

	backends := a.buildNotifiers()
	dispatcher, err := notifier.NewDispatcher(cfg.NotifyWorkers, logger, backends...)
	if err != nil {
		_ = a.Close()
		return nil, err
	}
	a.dispatcher = dispatcher
	logger.Info("notifier backends ready", "backends", dispatcher.Backends())

	a.Engine = usecase.NewEngine(usecase.EngineConfig{
		Sources: usecase.Sources{
			Scoreboard:  espnClient,
			Rankings:    espnClient,
			Standings:   espnClient,
			Teams:       espnClient,
			Schedules:   espnClient,
			Summaries:   espnClient,
			Leaderboard: fangraphsClient,
		},
		Store:                   store,
		Notifier:                dispatcher,
		FavoriteScheduleWorkers: cfg.FavoriteScheduleWorkers,
		CacheTTL:                cfg.CacheTTL,
		Options: usecase.Options{
			Logger:    logger,
			Location:  cfg.Location,
			Intervals: cfg.PollIntervals,
		},
	})

	var stream httpapi.StreamServer
	if a.hub != nil {
		stream = a.hub
	}
	handler := httpapi.NewHandler(a.Engine, stream, cfg.Location, logger)
	a.Server = &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      httpapi.NewRouter(handler, logger, cfg.CORSAllowedOrigins),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	return a, nil
}

// buildNotifiers returns the enabled backends. A backend that cannot connect
// is logged and left out so the rest keep delivering.
func (a *App) buildNotifiers() []notification.Notifier {
	cfg := a.cfg
	var out []notification.Notifier

	if cfg.NotifyLogEnabled {
		out = append(out, notifier.NewLogNotifier(a.logger))
	}
	if cfg.NotifyWSEnabled {
		a.hub = notifier.NewHub(notifier.HubConfig{
			AllowedOrigins: cfg.CORSAllowedOrigins,
			Logger:         a.logger,
		})
		out = append(out, a.hub)
	}
	if cfg.NATSEnabled {
		nc, err := notifier.NewNATSNotifier(notifier.NATSConfig{
			URL:     cfg.NATSURL,
			Subject: cfg.NATSSubject,
			Name:    cfg.ServiceName,
			Timeout: cfg.NATSTimeout,
			Logger:  a.logger,
		})
		if err != nil {
			a.logger.Warn("nats notifier disabled", "url", cfg.NATSURL, "error", err)
		} else {
			out = append(out, nc)
			a.closers = append(a.closers, func() error {
				nc.Close()
				return nil
			})
		}
	}
	if cfg.QStashEnabled {
		out = append(out, notifier.NewQStashNotifier(notifier.QStashConfig{
			BaseURL:        cfg.QStashBaseURL,
			Token:          cfg.QStashToken,
			TargetURL:      cfg.QStashTargetURL,
			Retries:        cfg.QStashRetries,
			ForwardToken:   cfg.QStashForwardToken,
			CircuitBreaker: cfg.QStashCircuit,
			Logger:         a.logger,
		}))
	}
	return out
}

// Run serves HTTP and runs the sync engine until ctx ends or either fails.
func (a *App) Run(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)

	if a.hub != nil {
		g.Go(func() error {
			a.hub.Run(gctx)
			return nil
		})
	}

	g.Go(func() error {
		return a.Engine.Run(gctx)
	})

	g.Go(func() error {
		a.logger.Info("http server starting", "addr", a.Server.Addr)
		if err := a.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(gctx), shutdownTimeout)
		defer cancel()
		if err := a.Server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("graceful shutdown: %w", err)
		}
		a.logger.Info("http server stopped")
		return nil
	})

	return g.Wait()
}

// Close releases the worker pool and every backend connection.
func (a *App) Close() error {
	if a.dispatcher != nil {
		a.dispatcher.Release()
	}
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/sgwessen/kalender/internal/app"
	"github.com/sgwessen/kalender/internal/config"
	"github.com/sgwessen/kalender/internal/observability"
	"github.com/sgwessen/kalender/internal/platform/logging"
)

// changesExitCode is set by `sync --detailed-exitcode` after a pass that
// created or updated records; main exits with it on success.
var changesExitCode int

var rootCmd = &cobra.Command{
	Use:   "kalender",
	Short: "Keeps the SG Wasserball Essen match calendar in sync with the DSV portal",
	Long: `kalender scrapes the club's league and cup pages from the DSV results
portal, merges the games with manually entered club events, stores everything
in a local database and publishes an iCalendar (.ics) file for subscribers.

Logs go to stderr; stdout carries listings, reports and exported calendars.

Examples:
  # One sync pass, rewrite the calendar only when something changed
  kalender sync

  # Run forever, syncing every six hours
  kalender sync --daemon

  # Show what is stored
  kalender list

  # Enter a friendly match by hand, then remove it again
  kalender add fixture --home "SGW Essen" --guest "SV Beispiel" --date 24.12.2025 --time 18:30
  kalender remove --no 12`,
	SilenceUsage: true,
}

// runtime bundles everything a subcommand needs beyond its own flags.
// close releases resources in reverse construction order.
type runtime struct {
	cfg    config.Config
	logger *logging.Logger
	app    *app.App

	pprofSrv       *http.Server
	stopProfiler   func() error
	shutdownTraces func(context.Context) error
}

// newRuntime loads configuration, bootstraps logging and the env-gated
// observability stack, and builds the composition root.
func newRuntime() (*runtime, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	var logger *logging.Logger
	if cfg.AppEnv == config.EnvDev {
		logger = logging.NewConsole(cfg.LogLevel)
	} else {
		logger = logging.NewJSON(cfg.LogLevel)
	}
	logging.SetDefault(logger)

	rt := &runtime{cfg: cfg, logger: logger}

	rt.shutdownTraces, err = observability.InitUptrace(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("init uptrace: %w", err)
	}
	rt.stopProfiler, err = observability.InitPyroscope(cfg, logger)
	if err != nil {
		rt.close()
		return nil, fmt.Errorf("init pyroscope: %w", err)
	}
	rt.pprofSrv, err = observability.StartPprofServer(cfg, logger)
	if err != nil {
		rt.close()
		return nil, fmt.Errorf("start pprof server: %w", err)
	}

	rt.app, err = app.New(cfg, logger)
	if err != nil {
		rt.close()
		return nil, fmt.Errorf("build app: %w", err)
	}

	return rt, nil
}

func (rt *runtime) close() {
	if rt == nil {
		return
	}
	if rt.app != nil {
		if err := rt.app.Close(); err != nil {
			rt.logger.Warn("close app", "error", err)
		}
	}
	if rt.pprofSrv != nil {
		if err := observability.StopPprofServer(rt.pprofSrv, rt.logger, 5*time.Second); err != nil {
			rt.logger.Warn("stop pprof server", "error", err)
		}
	}
	if rt.stopProfiler != nil {
		if err := rt.stopProfiler(); err != nil {
			rt.logger.Warn("stop profiler", "error", err)
		}
	}
	if rt.shutdownTraces != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := rt.shutdownTraces(ctx); err != nil {
			rt.logger.Warn("shutdown trace exporter", "error", err)
		}
	}
	_ = rt.logger.Sync()
}

// Command panelctl is the operator tool of the admin panel.
//
// "bootstrap" creates the first admin master directly in the configured
// store; every other command talks to a running server over HTTP.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/admin-panel/internal/adapter"
	"github.com/MKhiriev/admin-panel/internal/config"
	"github.com/MKhiriev/admin-panel/internal/logger"
	"github.com/MKhiriev/admin-panel/internal/service"
	"github.com/MKhiriev/admin-panel/internal/store"
	"github.com/MKhiriev/admin-panel/models"
	"github.com/caarlos0/env/v11"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	log := logger.NewConsoleLogger("panelctl", os.Stderr)

	c := &cli{
		out:       os.Stdout,
		prompt:    newTerminalPrompt(os.Stdin, os.Stderr),
		environ:   env.ToMap(os.Environ()),
		buildInfo: models.NewAppBuildInfo(buildVersion, buildDate, buildCommit),
		newAdapter: func(s settings) (adapter.APIAdapter, error) {
			return adapter.NewHTTPAPIAdapter(s.Server, s.Timeout, log)
		},
		openAuthService: func(ctx context.Context) (service.AuthService, func() error, error) {
			return openLocalAuthService(ctx, log)
		},
		logger: log,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := c.run(ctx, os.Args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(2)
		}
		fmt.Fprintln(os.Stderr, "panelctl:", describeError(err))
		os.Exit(1)
	}
}

// openLocalAuthService builds the auth service over the store named by the
// server configuration (environment, .env and CONFIG file).
func openLocalAuthService(ctx context.Context, log *logger.Logger) (service.AuthService, func() error, error) {
	cfg, err := config.LoadConfig(nil)
	if err != nil {
		return nil, nil, fmt.Errorf("error loading config: %w", err)
	}
	if err = logger.SetLevel(cfg.App.LogLevel, cfg.IsProduction()); err != nil {
		return nil, nil, err
	}

	storages, err := store.NewStorages(ctx, cfg.Storage, log)
	if err != nil {
		return nil, nil, fmt.Errorf("error opening user store: %w", err)
	}

	services, err := service.NewServices(storages, cfg, models.AppBuildInfo{}, log)
	if err != nil {
		_ = storages.Close()
		return nil, nil, err
	}

	return services.AuthService, storages.Close, nil
}

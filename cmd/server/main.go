package main

import (
	"context"
	"fmt"

	"github.com/MKhiriev/admin-panel/internal/config"
	"github.com/MKhiriev/admin-panel/internal/handler"
	"github.com/MKhiriev/admin-panel/internal/logger"
	"github.com/MKhiriev/admin-panel/internal/server"
	"github.com/MKhiriev/admin-panel/internal/service"
	"github.com/MKhiriev/admin-panel/internal/store"
	"github.com/MKhiriev/admin-panel/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	buildInfo := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
	printBuildInfo(buildInfo)

	log := logger.NewLogger("admin-panel-server")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	if err = logger.SetLevel(cfg.App.LogLevel, cfg.IsProduction()); err != nil {
		log.Fatal().Err(err).Msg("error setting log level")
	}

	log.Debug().
		Str("env", cfg.App.Env).
		Str("http_address", cfg.Server.HTTPAddress).
		Dur("access_token_ttl", cfg.Security.AccessTokenTTL).
		Dur("refresh_token_ttl", cfg.Security.RefreshTokenTTL).
		Int("max_login_attempts", cfg.Security.MaxLoginAttempts).
		Msg("received configs")

	if cfg.Security.InsecureSecret {
		log.Warn().Msg("SECRET_KEY is not set; using the built-in development secret, tokens are forgeable")
	}

	ctx := context.Background()
	storages, err := store.NewStorages(ctx, cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating storages")
	}
	defer func() {
		if err := storages.Close(); err != nil {
			log.Error().Err(err).Msg("error closing storages")
		}
	}()

	services, err := service.NewServices(storages, cfg, buildInfo, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating services")
	}

	handlers, err := handler.NewHandlers(services, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	srv, err := server.NewServer(handlers, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	srv.RunServer()
}

func printBuildInfo(info models.AppBuildInfo) {
	fmt.Printf("Build version: %s\n", info.BuildVersion())
	fmt.Printf("Build date: %s\n", info.BuildDate())
	fmt.Printf("Build commit: %s\n", info.BuildCommit())
}

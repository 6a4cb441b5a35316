package http

import (
	"time"

	"github.com/MKhiriev/admin-panel/internal/config"
	"github.com/MKhiriev/admin-panel/internal/logger"
	"github.com/MKhiriev/admin-panel/internal/service"
	"github.com/MKhiriev/admin-panel/internal/utils"
)

type Handler struct {
	services *service.Services

	corsOrigins    []string
	requestTimeout time.Duration
	traceIDs       *utils.UUIDGenerator

	logger *logger.Logger
}

func NewHandler(services *service.Services, cfg *config.StructuredConfig, logger *logger.Logger) *Handler {
	logger.Info().
		Strs("cors_origins", cfg.Security.CORSOrigins).
		Dur("request_timeout", cfg.Server.RequestTimeout).
		Msg("http handler created")

	return &Handler{
		services:       services,
		corsOrigins:    cfg.Security.CORSOrigins,
		requestTimeout: cfg.Server.RequestTimeout,
		traceIDs:       utils.NewUUIDGenerator(),
		logger:         logger,
	}
}

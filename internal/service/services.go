package service

import (
	"fmt"

	"github.com/MKhiriev/admin-panel/internal/config"
	"github.com/MKhiriev/admin-panel/internal/crypto"
	"github.com/MKhiriev/admin-panel/internal/logger"
	"github.com/MKhiriev/admin-panel/internal/store"
	"github.com/MKhiriev/admin-panel/internal/token"
	"github.com/MKhiriev/admin-panel/internal/validators"
	"github.com/MKhiriev/admin-panel/models"
)

// Services is the composition root of the business layer: one instance of
// each service, shared by every transport.
type Services struct {
	AuthService    AuthService
	AppInfoService AppInfoService
}

// NewServices builds the credential vault, token service and validators
// from cfg and wires them into the services.
func NewServices(storages *store.Storages, cfg *config.StructuredConfig, buildInfo models.AppBuildInfo, logger *logger.Logger) (*Services, error) {
	hasher, err := crypto.NewPasswordHasher(argon2Params(cfg.Hashing))
	if err != nil {
		return nil, fmt.Errorf("error creating password hasher: %w", err)
	}

	tokens, err := token.NewJWTService(token.Options{
		Secret: cfg.Security.SecretKey,
		Issuer: cfg.Security.TokenIssuer,
		Leeway: cfg.Security.TokenLeeway,
	})
	if err != nil {
		return nil, fmt.Errorf("error creating token service: %w", err)
	}

	authService := NewAuthService(
		storages.UserRepository,
		hasher,
		tokens,
		validators.NewPasswordValidator(PasswordPolicy(cfg.Policy)),
		validators.NewUserValidator(models.UsernamePolicy{
			MinLength: cfg.Policy.UsernameMinLength,
			MaxLength: cfg.Policy.UsernameMaxLength,
		}),
		AuthSettings{
			AccessTokenTTL:  cfg.Security.AccessTokenTTL,
			RefreshTokenTTL: cfg.Security.RefreshTokenTTL,
			Lockout: models.LockoutPolicy{
				MaxAttempts: cfg.Security.MaxLoginAttempts,
				Duration:    cfg.Security.LockoutDuration,
			},
		},
		logger,
	)

	return &Services{
		AuthService:    authService,
		AppInfoService: NewAppInfoService(buildInfo, logger),
	}, nil
}

// PasswordPolicy converts the configured policy into the form the password
// validator takes.
func PasswordPolicy(cfg config.Policy) models.PasswordPolicy {
	return models.PasswordPolicy{
		MinLength:        cfg.PasswordMinLength,
		MaxLength:        cfg.PasswordMaxLength,
		RequireUppercase: cfg.RequireUppercase,
		RequireLowercase: cfg.RequireLowercase,
		RequireNumbers:   cfg.RequireNumbers,
		RequireSpecial:   cfg.RequireSpecial,
	}
}

func argon2Params(cfg config.Hashing) crypto.Argon2Params {
	params := crypto.DefaultArgon2Params()
	params.Memory = cfg.MemoryKiB
	params.Iterations = cfg.Iterations
	params.Parallelism = cfg.Parallelism
	return params
}

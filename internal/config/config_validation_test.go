package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func validConfig() *StructuredConfig {
	return &StructuredConfig{
		App: App{Env: EnvDevelopment},
		Security: Security{
			SecretKey:        "secret",
			AccessTokenTTL:   15 * time.Minute,
			RefreshTokenTTL:  30 * time.Minute,
			MaxLoginAttempts: 5,
			LockoutDuration:  15 * time.Minute,
			CORSOrigins:      []string{"*"},
		},
		Policy: Policy{
			PasswordMinLength: 8,
			PasswordMaxLength: 64,
			UsernameMinLength: 3,
			UsernameMaxLength: 50,
		},
		Storage: Storage{DatabaseURL: "memory://"},
		Server:  Server{HTTPAddress: ":8080", RequestTimeout: 30 * time.Second},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *StructuredConfig)
		want   error
	}{
		{name: "valid", mutate: func(*StructuredConfig) {}},
		{name: "unknown env", mutate: func(c *StructuredConfig) { c.App.Env = "staging" }, want: ErrInvalidAppConfigs},
		{name: "unknown log level", mutate: func(c *StructuredConfig) { c.App.LogLevel = "loud" }, want: ErrInvalidAppConfigs},
		{name: "known log level", mutate: func(c *StructuredConfig) { c.App.LogLevel = "trace" }},
		{name: "empty secret", mutate: func(c *StructuredConfig) { c.Security.SecretKey = "" }, want: ErrInvalidSecurityConfigs},
		{name: "zero access ttl", mutate: func(c *StructuredConfig) { c.Security.AccessTokenTTL = 0 }, want: ErrInvalidSecurityConfigs},
		{name: "refresh equals access", mutate: func(c *StructuredConfig) { c.Security.RefreshTokenTTL = 15 * time.Minute }, want: ErrInvalidSecurityConfigs},
		{name: "refresh shorter than access", mutate: func(c *StructuredConfig) { c.Security.RefreshTokenTTL = time.Minute }, want: ErrInvalidSecurityConfigs},
		{name: "negative leeway", mutate: func(c *StructuredConfig) { c.Security.TokenLeeway = -time.Second }, want: ErrInvalidSecurityConfigs},
		{name: "leeway at limit", mutate: func(c *StructuredConfig) { c.Security.TokenLeeway = time.Minute }},
		{name: "leeway over limit", mutate: func(c *StructuredConfig) { c.Security.TokenLeeway = 61 * time.Second }, want: ErrInvalidSecurityConfigs},
		{name: "zero attempts", mutate: func(c *StructuredConfig) { c.Security.MaxLoginAttempts = 0 }, want: ErrInvalidSecurityConfigs},
		{name: "zero lockout", mutate: func(c *StructuredConfig) { c.Security.LockoutDuration = 0 }, want: ErrInvalidSecurityConfigs},
		{name: "password min zero", mutate: func(c *StructuredConfig) { c.Policy.PasswordMinLength = 0 }, want: ErrInvalidPolicyConfigs},
		{name: "password min over max", mutate: func(c *StructuredConfig) { c.Policy.PasswordMinLength = 65 }, want: ErrInvalidPolicyConfigs},
		{name: "password min equals max", mutate: func(c *StructuredConfig) { c.Policy.PasswordMinLength = 64 }},
		{name: "username min over max", mutate: func(c *StructuredConfig) { c.Policy.UsernameMinLength = 51 }, want: ErrInvalidPolicyConfigs},
		{name: "empty database url", mutate: func(c *StructuredConfig) { c.Storage.DatabaseURL = "" }, want: ErrInvalidStorageConfigs},
		{name: "empty address", mutate: func(c *StructuredConfig) { c.Server.HTTPAddress = "" }, want: ErrInvalidServerConfigs},
		{name: "zero request timeout", mutate: func(c *StructuredConfig) { c.Server.RequestTimeout = 0 }, want: ErrInvalidServerConfigs},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.validate()
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestApplyDevelopmentDefaults(t *testing.T) {
	dev := validConfig()
	dev.Security.SecretKey = ""
	dev.applyDevelopmentDefaults()
	assert.Equal(t, developmentSecret, dev.Security.SecretKey)
	assert.True(t, dev.Security.InsecureSecret)

	prod := validConfig()
	prod.App.Env = EnvProduction
	prod.Security.SecretKey = ""
	prod.applyDevelopmentDefaults()
	assert.Empty(t, prod.Security.SecretKey)
	assert.False(t, prod.Security.InsecureSecret)
}

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── build ─────────────────────────────────────────────────────────────────────

// TestBuild_PropagatesBuilderError verifies that a pre-set b.err is wrapped
// and returned, with nil config.
func TestBuild_PropagatesBuilderError(t *testing.T) {
	b := newConfigBuilder()
	b.err = assert.AnError

	cfg, err := b.build()
	assert.Nil(t, cfg)
	assert.ErrorIs(t, err, assert.AnError)
}

// TestBuild_LaterSourcesWin verifies that non-zero fields of later configs
// override earlier ones and zero fields leave them alone.
func TestBuild_LaterSourcesWin(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs,
		validConfig(),
		&StructuredConfig{Security: Security{TokenIssuer: "second", AccessTokenTTL: time.Minute}},
		&StructuredConfig{Security: Security{TokenIssuer: "third"}},
	)

	cfg, err := b.build()
	require.NoError(t, err)
	assert.Equal(t, "third", cfg.Security.TokenIssuer)
	assert.Equal(t, time.Minute, cfg.Security.AccessTokenTTL)
	assert.Equal(t, 30*time.Minute, cfg.Security.RefreshTokenTTL)
}

// ── LoadConfig ────────────────────────────────────────────────────────────────

func TestLoadConfig_DefaultsInDevelopment(t *testing.T) {
	isolateEnv(t)

	cfg, err := LoadConfig(nil)
	require.NoError(t, err)

	assert.False(t, cfg.IsProduction())
	assert.Equal(t, developmentSecret, cfg.Security.SecretKey)
	assert.True(t, cfg.Security.InsecureSecret)
	assert.Equal(t, "sqlite:///admin_panel.db", cfg.Storage.DatabaseURL)
}

func TestLoadConfig_ProductionRequiresSecret(t *testing.T) {
	isolateEnv(t)
	t.Setenv("APP_ENV", "production")

	_, err := LoadConfig(nil)
	assert.ErrorIs(t, err, ErrInvalidSecurityConfigs)

	t.Setenv("SECRET_KEY", "prod-secret")
	cfg, err := LoadConfig(nil)
	require.NoError(t, err)
	assert.Equal(t, "prod-secret", cfg.Security.SecretKey)
	assert.False(t, cfg.Security.InsecureSecret)
}

func TestLoadConfig_Precedence(t *testing.T) {
	isolateEnv(t)

	file := writeTempFile(t, "panel.yaml", "security:\n  token_issuer: from-file\nstorage:\n  database_url: memory://\n")

	t.Setenv("TOKEN_ISSUER", "from-env")
	t.Setenv("SECRET_KEY", "env-secret")
	t.Setenv("HTTP_ADDRESS", "127.0.0.1:7000")
	t.Setenv("CONFIG", file)

	cfg, err := LoadConfig([]string{"-k", "flag-secret", "-token-issuer", "from-flag"})
	require.NoError(t, err)

	assert.Equal(t, "from-file", cfg.Security.TokenIssuer)
	assert.Equal(t, "flag-secret", cfg.Security.SecretKey)
	assert.Equal(t, "memory://", cfg.Storage.DatabaseURL)
	assert.Equal(t, "127.0.0.1:7000", cfg.Server.HTTPAddress)
}

func TestLoadConfig_FlagConfigPathOverridesEnv(t *testing.T) {
	isolateEnv(t)

	envFile := writeTempFile(t, "env.json", `{"security": {"token_issuer": "env-file"}}`)
	flagFile := writeTempFile(t, "flag.json", `{"security": {"token_issuer": "flag-file"}}`)
	t.Setenv("CONFIG", envFile)

	cfg, err := LoadConfig([]string{"-c", flagFile})
	require.NoError(t, err)
	assert.Equal(t, "flag-file", cfg.Security.TokenIssuer)
}

func TestLoadConfig_DotEnv(t *testing.T) {
	isolateEnv(t)
	t.Setenv("ENV_FILE", writeTempFile(t, "panel.env", "MAX_LOGIN_ATTEMPTS=9\n"))

	cfg, err := LoadConfig(nil)
	require.NoError(t, err)
	assert.Equal(t, 9, cfg.Security.MaxLoginAttempts)
}

func TestLoadConfig_Errors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		args []string
		want error
	}{
		{name: "refresh not longer than access", env: map[string]string{"REFRESH_TOKEN_TTL": "15m"}, want: ErrInvalidSecurityConfigs},
		{name: "bad flag", args: []string{"-nope"}},
		{name: "missing config file", args: []string{"-c", "/nonexistent/panel.json"}},
		{name: "bad env duration", env: map[string]string{"LOCKOUT_DURATION": "long"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolateEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			cfg, err := LoadConfig(tt.args)
			assert.Nil(t, cfg)
			require.Error(t, err)
			if tt.want != nil {
				assert.ErrorIs(t, err, tt.want)
			}
		})
	}
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEnv_Defaults(t *testing.T) {
	isolateEnv(t)

	var cfg StructuredConfig
	require.NoError(t, parseEnv(&cfg))

	assert.Equal(t, EnvDevelopment, cfg.App.Env)
	assert.Empty(t, cfg.Security.SecretKey)
	assert.Equal(t, 15*time.Minute, cfg.Security.AccessTokenTTL)
	assert.Equal(t, 30*time.Minute, cfg.Security.RefreshTokenTTL)
	assert.Equal(t, time.Duration(0), cfg.Security.TokenLeeway)
	assert.Equal(t, 5, cfg.Security.MaxLoginAttempts)
	assert.Equal(t, 15*time.Minute, cfg.Security.LockoutDuration)
	assert.Equal(t, []string{"*"}, cfg.Security.CORSOrigins)

	assert.Equal(t, 8, cfg.Policy.PasswordMinLength)
	assert.Equal(t, 64, cfg.Policy.PasswordMaxLength)
	assert.Equal(t, 3, cfg.Policy.UsernameMinLength)
	assert.Equal(t, 50, cfg.Policy.UsernameMaxLength)
	assert.True(t, cfg.Policy.RequireUppercase)
	assert.True(t, cfg.Policy.RequireLowercase)
	assert.True(t, cfg.Policy.RequireNumbers)
	assert.True(t, cfg.Policy.RequireSpecial)

	assert.Equal(t, uint32(65536), cfg.Hashing.MemoryKiB)
	assert.Equal(t, uint32(3), cfg.Hashing.Iterations)
	assert.Equal(t, uint8(2), cfg.Hashing.Parallelism)

	assert.Equal(t, "sqlite:///admin_panel.db", cfg.Storage.DatabaseURL)
	assert.Equal(t, ":8080", cfg.Server.HTTPAddress)
	assert.Equal(t, 30*time.Second, cfg.Server.RequestTimeout)
}

func TestParseEnv_AllFields(t *testing.T) {
	isolateEnv(t)

	envVars := map[string]string{
		"CONFIG":              "/path/to/config.yaml",
		"APP_ENV":             "production",
		"LOG_LEVEL":           "warn",
		"SECRET_KEY":          "s3cr3t",
		"ACCESS_TOKEN_TTL":    "5m",
		"REFRESH_TOKEN_TTL":   "1h",
		"TOKEN_ISSUER":        "admin-panel",
		"TOKEN_LEEWAY":        "10s",
		"MAX_LOGIN_ATTEMPTS":  "3",
		"LOCKOUT_DURATION":    "30m",
		"CORS_ORIGINS":        "https://a.example,https://b.example",
		"PASSWORD_MIN_LENGTH": "10",
		"PASSWORD_MAX_LENGTH": "100",
		"USERNAME_MIN_LENGTH": "4",
		"USERNAME_MAX_LENGTH": "20",
		"REQUIRE_SPECIAL":     "false",
		"DATABASE_URL":        "postgres://u:p@localhost/panel",
		"HTTP_ADDRESS":        "127.0.0.1:9000",
		"REQUEST_TIMEOUT":     "5s",
	}
	for k, v := range envVars {
		t.Setenv(k, v)
	}

	var cfg StructuredConfig
	require.NoError(t, parseEnv(&cfg))

	assert.Equal(t, "/path/to/config.yaml", cfg.FilePath)
	assert.Equal(t, EnvProduction, cfg.App.Env)
	assert.Equal(t, "warn", cfg.App.LogLevel)
	assert.Equal(t, "s3cr3t", cfg.Security.SecretKey)
	assert.Equal(t, 5*time.Minute, cfg.Security.AccessTokenTTL)
	assert.Equal(t, time.Hour, cfg.Security.RefreshTokenTTL)
	assert.Equal(t, "admin-panel", cfg.Security.TokenIssuer)
	assert.Equal(t, 10*time.Second, cfg.Security.TokenLeeway)
	assert.Equal(t, 3, cfg.Security.MaxLoginAttempts)
	assert.Equal(t, 30*time.Minute, cfg.Security.LockoutDuration)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Security.CORSOrigins)
	assert.Equal(t, 10, cfg.Policy.PasswordMinLength)
	assert.Equal(t, 100, cfg.Policy.PasswordMaxLength)
	assert.Equal(t, 4, cfg.Policy.UsernameMinLength)
	assert.Equal(t, 20, cfg.Policy.UsernameMaxLength)
	assert.False(t, cfg.Policy.RequireSpecial)
	assert.True(t, cfg.Policy.RequireUppercase)
	assert.Equal(t, "postgres://u:p@localhost/panel", cfg.Storage.DatabaseURL)
	assert.Equal(t, "127.0.0.1:9000", cfg.Server.HTTPAddress)
	assert.Equal(t, 5*time.Second, cfg.Server.RequestTimeout)
}

func TestParseEnv_InvalidDuration(t *testing.T) {
	isolateEnv(t)
	t.Setenv("ACCESS_TOKEN_TTL", "fifteen minutes")

	var cfg StructuredConfig
	err := parseEnv(&cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error getting env configs")
}

func TestLoadDotEnv(t *testing.T) {
	isolateEnv(t)

	path := writeTempFile(t, "test.env", "SECRET_KEY=from-dotenv\nTOKEN_ISSUER=dotenv-issuer\n")
	t.Setenv("ENV_FILE", path)

	// already set variables win over the file
	t.Setenv("TOKEN_ISSUER", "from-process")

	require.NoError(t, loadDotEnv())
	assert.Equal(t, "from-dotenv", os.Getenv("SECRET_KEY"))
	assert.Equal(t, "from-process", os.Getenv("TOKEN_ISSUER"))
}

func TestLoadDotEnv_MissingFileIgnored(t *testing.T) {
	isolateEnv(t)
	assert.NoError(t, loadDotEnv())
}

func TestLoadDotEnv_Malformed(t *testing.T) {
	isolateEnv(t)
	t.Setenv("ENV_FILE", writeTempFile(t, "bad.env", "SECRET_KEY='unterminated\n"))

	assert.Error(t, loadDotEnv())
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"os"
	"time"
)

// StructuredConfig is the top-level configuration container of the admin
// panel. It is populated by merging values from environment variables (with
// defaults), command-line flags and an optional JSON or YAML file.
//
// Struct tags:
//   - env        environment variable name (caarlos0/env).
//   - envDefault value used when the variable is unset.
//   - json/yaml  key in the optional config file.
type StructuredConfig struct {
	// App holds the runtime environment and logging settings.
	App App `json:"app" yaml:"app"`

	// Security holds token and lockout settings.
	Security Security `json:"security" yaml:"security"`

	// Policy holds password and username rules.
	Policy Policy `json:"policy" yaml:"policy"`

	// Hashing holds the Argon2id cost for new password verifiers.
	Hashing Hashing `json:"hashing" yaml:"hashing"`

	// Storage holds the user store connection string.
	Storage Storage `json:"storage" yaml:"storage"`

	// Server holds the HTTP listener settings.
	Server Server `json:"server" yaml:"server"`

	// FilePath is the optional path to a JSON or YAML configuration file,
	// chosen by extension. Env: CONFIG, flags: -c / -config.
	FilePath string `env:"CONFIG" json:"-" yaml:"-"`

	// EnvFile is the dotenv file loaded before the environment is parsed.
	// A missing file is not an error. Env: ENV_FILE.
	EnvFile string `env:"ENV_FILE" envDefault:".env" json:"-" yaml:"-"`
}

// App holds process-level settings.
type App struct {
	// Env is "development" or "production".
	// Env: APP_ENV
	Env string `env:"APP_ENV" envDefault:"development" json:"env" yaml:"env"`

	// LogLevel is a zerolog level name. Empty means debug in development and
	// info in production.
	// Env: LOG_LEVEL
	LogLevel string `env:"LOG_LEVEL" json:"log_level" yaml:"log_level"`
}

// Security holds token and account-lockout settings.
type Security struct {
	// SecretKey signs every bearer token. Required in production.
	// Env: SECRET_KEY
	SecretKey string `env:"SECRET_KEY" json:"secret_key" yaml:"secret_key"`

	// AccessTokenTTL is the lifetime of access tokens.
	// Env: ACCESS_TOKEN_TTL
	AccessTokenTTL time.Duration `env:"ACCESS_TOKEN_TTL" envDefault:"15m" json:"access_token_ttl" yaml:"access_token_ttl"`

	// RefreshTokenTTL is the lifetime of refresh tokens. It must exceed
	// AccessTokenTTL.
	// Env: REFRESH_TOKEN_TTL
	RefreshTokenTTL time.Duration `env:"REFRESH_TOKEN_TTL" envDefault:"30m" json:"refresh_token_ttl" yaml:"refresh_token_ttl"`

	// TokenIssuer is written to and required in the "iss" claim when set.
	// Env: TOKEN_ISSUER
	TokenIssuer string `env:"TOKEN_ISSUER" json:"token_issuer" yaml:"token_issuer"`

	// TokenLeeway tolerates clock skew on "exp" and "iat"; at most one
	// minute.
	// Env: TOKEN_LEEWAY
	TokenLeeway time.Duration `env:"TOKEN_LEEWAY" json:"token_leeway" yaml:"token_leeway"`

	// MaxLoginAttempts is the number of consecutive failures that locks an
	// account.
	// Env: MAX_LOGIN_ATTEMPTS
	MaxLoginAttempts int `env:"MAX_LOGIN_ATTEMPTS" envDefault:"5" json:"max_login_attempts" yaml:"max_login_attempts"`

	// LockoutDuration is how long a locked account refuses logins.
	// Env: LOCKOUT_DURATION
	LockoutDuration time.Duration `env:"LOCKOUT_DURATION" envDefault:"15m" json:"lockout_duration" yaml:"lockout_duration"`

	// CORSOrigins lists the origins allowed by the HTTP layer.
	// Env: CORS_ORIGINS (comma separated)
	CORSOrigins []string `env:"CORS_ORIGINS" envDefault:"*" envSeparator:"," json:"cors_origins" yaml:"cors_origins"`

	// InsecureSecret is set by the loader when SecretKey was empty in
	// development and the built-in fallback is in use.
	InsecureSecret bool `json:"-" yaml:"-"`
}

// Policy holds the password and username rules applied on registration and
// password change.
//
// The Require* switches default to true and can only be changed through the
// environment: flags and config files never carry them, because a zero value
// there cannot be told apart from "not set".
type Policy struct {
	PasswordMinLength int  `env:"PASSWORD_MIN_LENGTH" envDefault:"8" json:"password_min_length" yaml:"password_min_length"`
	PasswordMaxLength int  `env:"PASSWORD_MAX_LENGTH" envDefault:"64" json:"password_max_length" yaml:"password_max_length"`
	UsernameMinLength int  `env:"USERNAME_MIN_LENGTH" envDefault:"3" json:"username_min_length" yaml:"username_min_length"`
	UsernameMaxLength int  `env:"USERNAME_MAX_LENGTH" envDefault:"50" json:"username_max_length" yaml:"username_max_length"`
	RequireUppercase  bool `env:"REQUIRE_UPPERCASE" envDefault:"true" json:"-" yaml:"-"`
	RequireLowercase  bool `env:"REQUIRE_LOWERCASE" envDefault:"true" json:"-" yaml:"-"`
	RequireNumbers    bool `env:"REQUIRE_NUMBERS" envDefault:"true" json:"-" yaml:"-"`
	RequireSpecial    bool `env:"REQUIRE_SPECIAL" envDefault:"true" json:"-" yaml:"-"`
}

// Hashing holds the Argon2id cost parameters.
type Hashing struct {
	// MemoryKiB is the memory cost in KiB.
	// Env: HASH_MEMORY_KIB
	MemoryKiB uint32 `env:"HASH_MEMORY_KIB" envDefault:"65536" json:"memory_kib" yaml:"memory_kib"`

	// Iterations is the time cost.
	// Env: HASH_ITERATIONS
	Iterations uint32 `env:"HASH_ITERATIONS" envDefault:"3" json:"iterations" yaml:"iterations"`

	// Parallelism is the number of lanes.
	// Env: HASH_PARALLELISM
	Parallelism uint8 `env:"HASH_PARALLELISM" envDefault:"2" json:"parallelism" yaml:"parallelism"`
}

// Storage holds the user store settings.
type Storage struct {
	// DatabaseURL selects and configures the backend:
	// sqlite:///path, sqlite:///:memory:, postgres://..., memory://.
	// Env: DATABASE_URL
	DatabaseURL string `env:"DATABASE_URL" envDefault:"sqlite:///admin_panel.db" json:"database_url" yaml:"database_url"`
}

// Server holds network and timeout settings for the HTTP listener.
type Server struct {
	// HTTPAddress is the TCP address in "host:port" form.
	// Env: HTTP_ADDRESS
	HTTPAddress string `env:"HTTP_ADDRESS" envDefault:":8080" json:"http_address" yaml:"http_address"`

	// RequestTimeout bounds the handling of a single request.
	// Env: REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" envDefault:"30s" json:"request_timeout" yaml:"request_timeout"`
}

// IsProduction reports whether APP_ENV selects production.
func (cfg *StructuredConfig) IsProduction() bool {
	return cfg.App.Env == EnvProduction
}

// GetStructuredConfig loads, merges, and validates the configuration of the
// server from all available sources using the process arguments.
func GetStructuredConfig() (*StructuredConfig, error) {
	return LoadConfig(os.Args[1:])
}

// LoadConfig loads, merges, and validates the configuration from the
// following sources, in priority order (later sources win for non-zero
// fields):
//  1. Environment variables, after loading the dotenv file, with defaults
//  2. Command-line flags parsed from args
//  3. JSON or YAML file (path resolved from sources 1 and 2)
func LoadConfig(args []string) (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags(args).
		withFile().
		build()
}

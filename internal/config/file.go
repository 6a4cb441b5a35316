package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// StructuredFileConfig mirrors [StructuredConfig] for JSON and YAML files,
// with durations accepted as strings like "15m".
type StructuredFileConfig struct {
	App struct {
		Env      string `json:"env" yaml:"env"`
		LogLevel string `json:"log_level" yaml:"log_level"`
	} `json:"app" yaml:"app"`

	Security struct {
		SecretKey        string   `json:"secret_key" yaml:"secret_key"`
		AccessTokenTTL   Duration `json:"access_token_ttl" yaml:"access_token_ttl"`
		RefreshTokenTTL  Duration `json:"refresh_token_ttl" yaml:"refresh_token_ttl"`
		TokenIssuer      string   `json:"token_issuer" yaml:"token_issuer"`
		TokenLeeway      Duration `json:"token_leeway" yaml:"token_leeway"`
		MaxLoginAttempts int      `json:"max_login_attempts" yaml:"max_login_attempts"`
		LockoutDuration  Duration `json:"lockout_duration" yaml:"lockout_duration"`
		CORSOrigins      []string `json:"cors_origins" yaml:"cors_origins"`
	} `json:"security" yaml:"security"`

	Policy struct {
		PasswordMinLength int `json:"password_min_length" yaml:"password_min_length"`
		PasswordMaxLength int `json:"password_max_length" yaml:"password_max_length"`
		UsernameMinLength int `json:"username_min_length" yaml:"username_min_length"`
		UsernameMaxLength int `json:"username_max_length" yaml:"username_max_length"`
	} `json:"policy" yaml:"policy"`

	Hashing struct {
		MemoryKiB   uint32 `json:"memory_kib" yaml:"memory_kib"`
		Iterations  uint32 `json:"iterations" yaml:"iterations"`
		Parallelism uint8  `json:"parallelism" yaml:"parallelism"`
	} `json:"hashing" yaml:"hashing"`

	Storage struct {
		DatabaseURL string `json:"database_url" yaml:"database_url"`
	} `json:"storage" yaml:"storage"`

	Server struct {
		HTTPAddress    string   `json:"http_address" yaml:"http_address"`
		RequestTimeout Duration `json:"request_timeout" yaml:"request_timeout"`
	} `json:"server" yaml:"server"`
}

// parseFile reads a config file, picking the decoder by extension:
// .json, .yaml or .yml.
func parseFile(path string) (*StructuredConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading a config file: %w", err)
	}

	var fileCfg StructuredFileConfig
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		if err = json.Unmarshal(data, &fileCfg); err != nil {
			return nil, fmt.Errorf("error decoding json configs: %w", err)
		}
	case ".yaml", ".yml":
		if err = yaml.Unmarshal(data, &fileCfg); err != nil {
			return nil, fmt.Errorf("error decoding yaml configs: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedConfigFile, ext)
	}

	return fileCfg.toStructured(), nil
}

func (f *StructuredFileConfig) toStructured() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			Env:      f.App.Env,
			LogLevel: f.App.LogLevel,
		},
		Security: Security{
			SecretKey:        f.Security.SecretKey,
			AccessTokenTTL:   time.Duration(f.Security.AccessTokenTTL),
			RefreshTokenTTL:  time.Duration(f.Security.RefreshTokenTTL),
			TokenIssuer:      f.Security.TokenIssuer,
			TokenLeeway:      time.Duration(f.Security.TokenLeeway),
			MaxLoginAttempts: f.Security.MaxLoginAttempts,
			LockoutDuration:  time.Duration(f.Security.LockoutDuration),
			CORSOrigins:      f.Security.CORSOrigins,
		},
		Policy: Policy{
			PasswordMinLength: f.Policy.PasswordMinLength,
			PasswordMaxLength: f.Policy.PasswordMaxLength,
			UsernameMinLength: f.Policy.UsernameMinLength,
			UsernameMaxLength: f.Policy.UsernameMaxLength,
		},
		Hashing: Hashing{
			MemoryKiB:   f.Hashing.MemoryKiB,
			Iterations:  f.Hashing.Iterations,
			Parallelism: f.Hashing.Parallelism,
		},
		Storage: Storage{
			DatabaseURL: f.Storage.DatabaseURL,
		},
		Server: Server{
			HTTPAddress:    f.Server.HTTPAddress,
			RequestTimeout: time.Duration(f.Server.RequestTimeout),
		},
	}
}

// Duration is a wrapper around time.Duration that supports unmarshaling
// from strings like "1h", "30s" in both JSON and YAML.
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

// UnmarshalYAML accepts a duration string or an integer count of
// nanoseconds.
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}

	if tmp, err := time.ParseDuration(s); err == nil {
		*d = Duration(tmp)
		return nil
	}

	var n int64
	if err := node.Decode(&n); err != nil {
		return fmt.Errorf("invalid duration %q", s)
	}
	*d = Duration(time.Duration(n))
	return nil
}

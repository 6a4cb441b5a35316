package config

import "errors"

// Validation errors returned by [StructuredConfig.validate]. Each is wrapped
// with the offending key.
var (
	// ErrInvalidSecurityConfigs indicates invalid token or lockout settings
	// (for example, a refresh TTL not longer than the access TTL).
	ErrInvalidSecurityConfigs = errors.New("invalid security configuration")
	// ErrInvalidPolicyConfigs indicates inconsistent password or username
	// bounds.
	ErrInvalidPolicyConfigs = errors.New("invalid policy configuration")
	// ErrInvalidStorageConfigs indicates an empty DATABASE_URL.
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
	// ErrInvalidAppConfigs indicates an unknown APP_ENV or LOG_LEVEL.
	ErrInvalidAppConfigs = errors.New("invalid app configuration")
	// ErrInvalidServerConfigs indicates a missing address or timeout.
	ErrInvalidServerConfigs = errors.New("invalid server configuration")
	// ErrUnsupportedConfigFile is returned for config files that are
	// neither JSON nor YAML.
	ErrUnsupportedConfigFile = errors.New("unsupported config file extension")
)

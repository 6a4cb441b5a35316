package config

import (
	"os"
	"path/filepath"
	"testing"
)

// configKeys lists every variable the loader reads.
var configKeys = []string{
	"CONFIG", "ENV_FILE",
	"APP_ENV", "LOG_LEVEL",
	"SECRET_KEY", "ACCESS_TOKEN_TTL", "REFRESH_TOKEN_TTL", "TOKEN_ISSUER", "TOKEN_LEEWAY",
	"MAX_LOGIN_ATTEMPTS", "LOCKOUT_DURATION", "CORS_ORIGINS",
	"PASSWORD_MIN_LENGTH", "PASSWORD_MAX_LENGTH", "USERNAME_MIN_LENGTH", "USERNAME_MAX_LENGTH",
	"REQUIRE_UPPERCASE", "REQUIRE_LOWERCASE", "REQUIRE_NUMBERS", "REQUIRE_SPECIAL",
	"HASH_MEMORY_KIB", "HASH_ITERATIONS", "HASH_PARALLELISM",
	"DATABASE_URL", "HTTP_ADDRESS", "REQUEST_TIMEOUT",
}

// isolateEnv unsets every config variable for the duration of the test and
// points ENV_FILE at a file that does not exist. Values are restored by the
// cleanup registered through t.Setenv.
func isolateEnv(t *testing.T) {
	t.Helper()
	for _, k := range configKeys {
		t.Setenv(k, "")
		_ = os.Unsetenv(k)
	}
	t.Setenv("ENV_FILE", filepath.Join(t.TempDir(), "missing.env"))
}

func writeTempFile(t *testing.T, name, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(p, []byte(body), 0o600); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return p
}

package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jefer15/debt-management-back/internal/config"
)

func writeYAML(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	path := writeYAML(t, `
jwt:
  secret: test-secret
`)
	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Server.Addr != ":8080" {
		t.Errorf("Addr = %q", cfg.Server.Addr)
	}
	if cfg.Cache.Kind != "memory" {
		t.Errorf("Cache.Kind = %q", cfg.Cache.Kind)
	}
	if cfg.AccessTTL().Hours() != 24 {
		t.Errorf("AccessTTL = %v", cfg.AccessTTL())
	}
	if cfg.Rate.Login.Limit != 10 {
		t.Errorf("Rate.Login.Limit = %d", cfg.Rate.Login.Limit)
	}
}

func TestMissingJWTSecretFails(t *testing.T) {
	path := writeYAML(t, `
server:
  addr: ":9999"
`)
	if _, err := config.Load(path); err == nil {
		t.Fatal("Load should fail without jwt.secret")
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "env-secret")
	t.Setenv("SERVER_ADDR", ":7777")
	t.Setenv("CACHE_KIND", "redis")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("JWT_ACCESS_TTL", "30m")

	cfg, err := config.LoadFromEnv()
	if err != nil {
		t.Fatalf("LoadFromEnv: %v", err)
	}
	if cfg.JWT.Secret != "env-secret" {
		t.Errorf("Secret = %q", cfg.JWT.Secret)
	}
	if cfg.Server.Addr != ":7777" {
		t.Errorf("Addr = %q", cfg.Server.Addr)
	}
	if cfg.Cache.Kind != "redis" || cfg.Cache.Redis.Addr != "localhost:6379" {
		t.Errorf("cache = %+v", cfg.Cache)
	}
	if cfg.AccessTTL().Minutes() != 30 {
		t.Errorf("AccessTTL = %v", cfg.AccessTTL())
	}
}

func TestInvalidCacheKindFails(t *testing.T) {
	t.Setenv("JWT_SECRET", "s")
	t.Setenv("CACHE_KIND", "memcached")

	if _, err := config.LoadFromEnv(); err == nil {
		t.Fatal("LoadFromEnv should reject unknown cache kind")
	}
}

func TestInvalidDurationFails(t *testing.T) {
	t.Setenv("JWT_SECRET", "s")
	t.Setenv("JWT_ACCESS_TTL", "not-a-duration")

	if _, err := config.LoadFromEnv(); err == nil {
		t.Fatal("LoadFromEnv should reject unparseable durations")
	}
}

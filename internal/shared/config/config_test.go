package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadConfigResolvesSections(t *testing.T) {
	path := writeConfig(t, `
database:
  host: db.internal
  port: 6432
  user: app
  password: secret
  database: rides
  sslmode: require

rabbitmq:
  host: mq.internal
  port: 5672

auth:
  jwt_secret: hunter2

service:
  port: 9000
  sql_dir: migrations
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if cfg.Database.Host != "db.internal" || cfg.Database.SSLMode != "require" {
		t.Errorf("database section: %+v", cfg.Database)
	}
	if cfg.RabbitMQ.Host != "mq.internal" {
		t.Errorf("rabbitmq host = %s", cfg.RabbitMQ.Host)
	}
	if cfg.Auth.JWTSecret != "hunter2" {
		t.Errorf("jwt_secret = %s", cfg.Auth.JWTSecret)
	}
	if cfg.Service.Port != "9000" || cfg.Service.SQLDir != "migrations" {
		t.Errorf("service section: %+v", cfg.Service)
	}
}

func TestLoadConfigEnvInterpolation(t *testing.T) {
	t.Setenv("TEST_DB_HOST", "from-env")
	os.Unsetenv("TEST_DB_PORT")

	path := writeConfig(t, `
database:
  host: ${TEST_DB_HOST:-fallback}
  port: ${TEST_DB_PORT:-5433}
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Database.Host != "from-env" {
		t.Errorf("host = %s, want env value", cfg.Database.Host)
	}
	if cfg.Database.Port != "5433" {
		t.Errorf("port = %s, want default 5433", cfg.Database.Port)
	}
}

func TestLoadConfigKeepsDefaultsForMissingKeys(t *testing.T) {
	path := writeConfig(t, `
service:
  port: 8080
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Database.Host != "localhost" || cfg.Database.Port != "5432" {
		t.Errorf("database defaults: %+v", cfg.Database)
	}
	if cfg.Service.Port != "8080" {
		t.Errorf("port = %s, want 8080", cfg.Service.Port)
	}
	if cfg.Service.SQLDir != "sql" {
		t.Errorf("sql_dir = %s, want sql", cfg.Service.SQLDir)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("want error for missing file")
	}
}

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

func TestLoadDefaults(t *testing.T) {
	path := writeConfig(t, "jwt:\n  secret: abc\n")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.HTTP.Host != "127.0.0.1" || cfg.HTTP.Port != 4000 {
		t.Errorf("http defaults = %s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
	}
	if cfg.DB.Driver != "sqlite" || cfg.DB.DSN != "data/attendance.db" {
		t.Errorf("db defaults = %s %s", cfg.DB.Driver, cfg.DB.DSN)
	}
	if cfg.JWT.ExpMin != 480 {
		t.Errorf("jwt exp_min = %d, want 480 (8 hours)", cfg.JWT.ExpMin)
	}
	if cfg.JWT.Secret != "abc" {
		t.Errorf("jwt secret = %q", cfg.JWT.Secret)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("log level = %q", cfg.LogLevel)
	}
}

func TestLoadOverrides(t *testing.T) {
	path := writeConfig(t, `
server:
  host: 0.0.0.0
  port: 8080
db:
  driver: mysql
  dsn: root:pw@tcp(127.0.0.1:3306)/attendance?parseTime=True
jwt:
  secret: s3cret
  exp_min: 60
log:
  level: debug
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.HTTP.Port != 8080 {
		t.Errorf("port = %d", cfg.HTTP.Port)
	}
	if cfg.DB.Driver != "mysql" {
		t.Errorf("driver = %q", cfg.DB.Driver)
	}
	if cfg.JWT.ExpMin != 60 {
		t.Errorf("exp_min = %d", cfg.JWT.ExpMin)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("log level = %q", cfg.LogLevel)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected error for a missing config file")
	}
}

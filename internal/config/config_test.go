package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

const testConfig = `# test config
database:
  host: localhost
  port: 5432
  user: dinehub
  password: secret
  database: dinehub
  max_conns: 40
  min_conns: 10

rabbitmq:
  host: localhost
  port: 5672
  user: guest
  password: guest

redis:
  addr: localhost:6379

service:
  service_duration_minutes: 120
  delivery_fee_cents: 200
  draft_ttl_minutes: 60
`

func writeTestConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	cfg, err := Load(writeTestConfig(t, testConfig))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.Database.Host != "localhost" {
		t.Errorf("database.host = %q, want localhost", cfg.Database.Host)
	}
	if cfg.Database.Port != 5432 {
		t.Errorf("database.port = %d, want 5432", cfg.Database.Port)
	}
	if cfg.Database.MaxConns != 40 {
		t.Errorf("database.max_conns = %d, want 40", cfg.Database.MaxConns)
	}
	if cfg.Database.MinConns != 10 {
		t.Errorf("database.min_conns = %d, want 10", cfg.Database.MinConns)
	}
	if cfg.RabbitMQ.User != "guest" {
		t.Errorf("rabbitmq.user = %q, want guest", cfg.RabbitMQ.User)
	}
	if cfg.Redis.Addr != "localhost:6379" {
		t.Errorf("redis.addr = %q, want localhost:6379", cfg.Redis.Addr)
	}
	if cfg.ServiceDuration() != 2*time.Hour {
		t.Errorf("service duration = %v, want 2h", cfg.ServiceDuration())
	}
	if cfg.Service.DeliveryFeeCents != 200 {
		t.Errorf("delivery_fee_cents = %d, want 200", cfg.Service.DeliveryFeeCents)
	}
	if cfg.DraftTTL() != time.Hour {
		t.Errorf("draft ttl = %v, want 1h", cfg.DraftTTL())
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(writeTestConfig(t, "database:\n  host: db\n"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.ServiceDuration() != 2*time.Hour {
		t.Errorf("default service duration = %v, want 2h", cfg.ServiceDuration())
	}
	if cfg.Database.MaxConns != 25 || cfg.Database.MinConns != 5 {
		t.Errorf("default pool sizing = %d/%d, want 25/5", cfg.Database.MaxConns, cfg.Database.MinConns)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("DINEHUB_DB_HOST", "db.internal")
	t.Setenv("DINEHUB_REDIS_ADDR", "cache.internal:6379")

	cfg, err := Load(writeTestConfig(t, testConfig))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Database.Host != "db.internal" {
		t.Errorf("database.host = %q, want env override db.internal", cfg.Database.Host)
	}
	if cfg.Redis.Addr != "cache.internal:6379" {
		t.Errorf("redis.addr = %q, want env override cache.internal:6379", cfg.Redis.Addr)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"bad port", "database:\n  port: nope\n"},
		{"unknown section", "mystery:\n  key: value\n"},
		{"zero duration", "service:\n  service_duration_minutes: 0\n"},
		{"negative fee", "service:\n  delivery_fee_cents: -5\n"},
		{"zero max conns", "database:\n  max_conns: 0\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load(writeTestConfig(t, tt.content)); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

package config

import (
	"os"
	"testing"
	"time"
)

func chdirTemp(t *testing.T) {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd() error = %v", err)
	}
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatalf("Chdir() error = %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

func TestLoadConfigWithoutEnvFile(t *testing.T) {
	chdirTemp(t)

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.App.Port != "8080" {
		t.Fatalf("App.Port = %q, want %q", cfg.App.Port, "8080")
	}
	if cfg.JWT.AccessExpiry != 15*time.Minute {
		t.Fatalf("JWT.AccessExpiry = %v, want 15m", cfg.JWT.AccessExpiry)
	}
	if cfg.RateLimit.Requests != 30 || cfg.RateLimit.Window != time.Minute {
		t.Fatalf("RateLimit = %+v, want 30 per 1m", cfg.RateLimit)
	}
	if len(cfg.Kafka.Brokers) != 0 {
		t.Fatalf("Kafka.Brokers = %v, want none", cfg.Kafka.Brokers)
	}
	if cfg.JWT.Issuer != "vet-clinic" {
		t.Fatalf("JWT.Issuer = %q, want vet-clinic", cfg.JWT.Issuer)
	}
	if cfg.DB.MaxOpenConns != 25 || cfg.DB.ConnMaxLifetime != 30*time.Minute {
		t.Fatalf("DB pool = %d conns, %v lifetime", cfg.DB.MaxOpenConns, cfg.DB.ConnMaxLifetime)
	}
}

func TestLoadConfigFromEnvironment(t *testing.T) {
	chdirTemp(t)
	t.Setenv("APP_PORT", "9090")
	t.Setenv("APP_TIMEZONE", "Europe/Warsaw")
	t.Setenv("JWT_ACCESS_EXPIRY", "30m")
	t.Setenv("KAFKA_BROKERS", "kafka-1:9092, kafka-2:9092,")
	t.Setenv("OTEL_ENABLED", "true")
	t.Setenv("OTEL_SAMPLING_RATIO", "7")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.App.Port != "9090" {
		t.Fatalf("App.Port = %q, want %q", cfg.App.Port, "9090")
	}
	if cfg.JWT.AccessExpiry != 30*time.Minute {
		t.Fatalf("JWT.AccessExpiry = %v, want 30m", cfg.JWT.AccessExpiry)
	}
	if len(cfg.Kafka.Brokers) != 2 || cfg.Kafka.Brokers[1] != "kafka-2:9092" {
		t.Fatalf("Kafka.Brokers = %v, want [kafka-1:9092 kafka-2:9092]", cfg.Kafka.Brokers)
	}
	if !cfg.Tracing.Enabled || cfg.Tracing.SampleRatio != 1 {
		t.Fatalf("Tracing = %+v, want enabled with ratio 1", cfg.Tracing)
	}
}

func TestLoadConfigReadsEnvFile(t *testing.T) {
	chdirTemp(t)
	if err := os.WriteFile(".env", []byte("DB_NAME=clinic\nREDIS_DB=2\n"), 0o600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.DB.Name != "clinic" || cfg.Redis.DB != 2 {
		t.Fatalf("DB.Name = %q, Redis.DB = %d, want clinic, 2", cfg.DB.Name, cfg.Redis.DB)
	}
}

func TestAppConfigLocation(t *testing.T) {
	loc, err := AppConfig{}.Location()
	if err != nil || loc != time.Local {
		t.Fatalf("Location() = %v, %v, want Local", loc, err)
	}

	if _, err := (AppConfig{TimeZone: "Not/AZone"}).Location(); err == nil {
		t.Fatalf("Location() with unknown zone: expected error")
	}
}

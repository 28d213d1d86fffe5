package config

import (
	"testing"
	"time"
)

func TestLoad(t *testing.T) {
	t.Run("uses defaults when environment is empty", func(t *testing.T) {
		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() returned unexpected error: %v", err)
		}

		if cfg.Server.Addr != "localhost:5001" {
			t.Errorf("Expected addr 'localhost:5001', got '%s'", cfg.Server.Addr)
		}
		if cfg.Cache.RedisAddr != "" {
			t.Errorf("Expected empty redis address, got '%s'", cfg.Cache.RedisAddr)
		}
		if cfg.Cache.TTL != time.Hour {
			t.Errorf("Expected cache TTL 1h, got %s", cfg.Cache.TTL)
		}
		if cfg.Retention.Days != 0 || cfg.Retention.Schedule != "@daily" {
			t.Errorf("Unexpected retention config: %+v", cfg.Retention)
		}
		if cfg.Simulation.BatchConcurrency != 4 {
			t.Errorf("Expected batch concurrency 4, got %d", cfg.Simulation.BatchConcurrency)
		}
	})

	t.Run("reads overrides", func(t *testing.T) {
		t.Setenv("SERVER_HOST", "0.0.0.0")
		t.Setenv("SERVER_PORT", "8080")
		t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example,")
		t.Setenv("CACHE_TTL", "15m")
		t.Setenv("RETENTION_DAYS", "30")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() returned unexpected error: %v", err)
		}

		if cfg.Server.Addr != "0.0.0.0:8080" {
			t.Errorf("Expected addr '0.0.0.0:8080', got '%s'", cfg.Server.Addr)
		}
		if len(cfg.CORS.AllowedOrigins) != 2 || cfg.CORS.AllowedOrigins[1] != "https://b.example" {
			t.Errorf("Unexpected origins: %v", cfg.CORS.AllowedOrigins)
		}
		if cfg.Cache.TTL != 15*time.Minute {
			t.Errorf("Expected cache TTL 15m, got %s", cfg.Cache.TTL)
		}
		if cfg.Retention.Days != 30 {
			t.Errorf("Expected 30 retention days, got %d", cfg.Retention.Days)
		}
	})

	t.Run("rejects malformed values", func(t *testing.T) {
		t.Setenv("BATCH_CONCURRENCY", "many")

		if _, err := Load(); err == nil {
			t.Error("Expected error for non-numeric BATCH_CONCURRENCY, got nil")
		}
	})

	t.Run("rejects zero batch concurrency", func(t *testing.T) {
		t.Setenv("BATCH_CONCURRENCY", "0")

		if _, err := Load(); err == nil {
			t.Error("Expected error for zero BATCH_CONCURRENCY, got nil")
		}
	})
}

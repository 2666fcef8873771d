package config_test

import (
	"testing"
	"time"

	"github.com/iho/finwise/internal/infrastructure/config"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DB_POOL_SIZE", "")
	t.Setenv("DB_TIMEOUT", "")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("unexpected error loading config: %v", err)
	}

	if cfg.DatabasePoolSize != 10 {
		t.Fatalf("expected default pool size 10, got %d", cfg.DatabasePoolSize)
	}

	if cfg.AcquireTimeout() != 30*time.Second {
		t.Fatalf("expected default timeout 30s, got %s", cfg.AcquireTimeout())
	}

	if cfg.ServerAddr() != "localhost:8080" {
		t.Fatalf("expected default server address localhost:8080, got %s", cfg.ServerAddr())
	}

	if cfg.LogLevel != "info" {
		t.Fatalf("expected default log level info, got %s", cfg.LogLevel)
	}

	if cfg.TransferMaxRetries != 3 || cfg.TransferRetryInitial != 50*time.Millisecond {
		t.Fatalf("expected default transfer retries, got %d / %s", cfg.TransferMaxRetries, cfg.TransferRetryInitial)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("TRANSFER_MAX_RETRIES", "5")
	t.Setenv("TRANSFER_RETRY_BUDGET", "2s")
	t.Setenv("DB_POOL_SIZE", "3")
	t.Setenv("DB_TIMEOUT", "5")
	t.Setenv("SERVER_HOST", "0.0.0.0")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("LOG_FILE", "/tmp/finwise.log")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("unexpected error loading config: %v", err)
	}

	if cfg.TransferMaxRetries != 5 || cfg.TransferRetryBudget != 2*time.Second {
		t.Fatalf("expected retry overrides, got %d / %s", cfg.TransferMaxRetries, cfg.TransferRetryBudget)
	}

	if cfg.DatabasePoolSize != 3 {
		t.Fatalf("expected pool size override, got %d", cfg.DatabasePoolSize)
	}

	if cfg.AcquireTimeout() != 5*time.Second {
		t.Fatalf("expected timeout override, got %s", cfg.AcquireTimeout())
	}

	if cfg.ServerAddr() != "0.0.0.0:9090" {
		t.Fatalf("expected server address override, got %s", cfg.ServerAddr())
	}

	if cfg.LogFile != "/tmp/finwise.log" {
		t.Fatalf("expected log file override, got %s", cfg.LogFile)
	}
}

func TestLoadInvalidPoolSize(t *testing.T) {
	t.Setenv("DB_POOL_SIZE", "not-a-number")

	if _, err := config.Load(); err == nil {
		t.Fatalf("expected error for invalid pool size")
	}
}

func TestLoadRejectsZeroPoolSize(t *testing.T) {
	t.Setenv("DB_POOL_SIZE", "0")

	if _, err := config.Load(); err == nil {
		t.Fatalf("expected error for zero pool size")
	}
}

func TestLoadRejectsOversizedPoolSize(t *testing.T) {
	t.Setenv("DB_POOL_SIZE", "4294967296")

	if _, err := config.Load(); err == nil {
		t.Fatalf("expected error for pool size beyond int32")
	}
}

func TestLoadRejectsNegativeRetries(t *testing.T) {
	t.Setenv("TRANSFER_MAX_RETRIES", "-1")

	if _, err := config.Load(); err == nil {
		t.Fatalf("expected error for negative retries")
	}
}

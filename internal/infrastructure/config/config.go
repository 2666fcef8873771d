package config

import (
	"fmt"
	"math"
	"net"
	"strconv"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	// Database. Credentials (DATABASE_URL, DATABASE_KEYFILE) are not read
	// here; the credential store resolves them.
	DatabasePoolSize int  `env:"DB_POOL_SIZE"     envDefault:"10"`
	DatabaseTimeout  int  `env:"DB_TIMEOUT"       envDefault:"30"`
	MigrateOnStart   bool `env:"MIGRATE_ON_START" envDefault:"false"`

	// Redis (optional - leave empty to disable transfer idempotency)
	RedisURL string `env:"REDIS_URL"`

	// HTTP Server
	ServerHost          string        `env:"SERVER_HOST"           envDefault:"localhost"`
	ServerPort          int           `env:"SERVER_PORT"           envDefault:"8080"`
	HTTPReadTimeout     time.Duration `env:"HTTP_READ_TIMEOUT"     envDefault:"30s"`
	HTTPWriteTimeout    time.Duration `env:"HTTP_WRITE_TIMEOUT"    envDefault:"30s"`
	HTTPShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" envDefault:"10s"`

	// Logging
	LogLevel  string `env:"LOG_LEVEL"  envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"console"`
	LogFile   string `env:"LOG_FILE"`

	// Idempotency
	IdempotencyTTL time.Duration `env:"IDEMPOTENCY_TTL" envDefault:"24h"`

	// Transfer retries on deadlock or serialization failure
	TransferMaxRetries       int           `env:"TRANSFER_MAX_RETRIES"        envDefault:"3"`
	TransferRetryInitial     time.Duration `env:"TRANSFER_RETRY_INITIAL"      envDefault:"50ms"`
	TransferRetryMaxInterval time.Duration `env:"TRANSFER_RETRY_MAX_INTERVAL" envDefault:"1s"`
	TransferRetryBudget      time.Duration `env:"TRANSFER_RETRY_BUDGET"       envDefault:"10s"`
}

// Load loads configuration from environment variables. A .env file in the
// working directory is read first when present; real environment variables
// win over its values.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks value ranges that struct tags cannot express.
func (c *Config) Validate() error {
	if c.DatabasePoolSize < 1 || c.DatabasePoolSize > math.MaxInt32 {
		return fmt.Errorf("DB_POOL_SIZE must be between 1 and %d, got %d", math.MaxInt32, c.DatabasePoolSize)
	}

	if c.DatabaseTimeout < 0 {
		return fmt.Errorf("DB_TIMEOUT must not be negative, got %d", c.DatabaseTimeout)
	}

	if c.TransferMaxRetries < 0 {
		return fmt.Errorf("TRANSFER_MAX_RETRIES must not be negative, got %d", c.TransferMaxRetries)
	}

	if c.ServerPort < 1 || c.ServerPort > 65535 {
		return fmt.Errorf("SERVER_PORT must be between 1 and 65535, got %d", c.ServerPort)
	}

	return nil
}

// AcquireTimeout is how long a checkout waits for a free connection.
func (c *Config) AcquireTimeout() time.Duration {
	return time.Duration(c.DatabaseTimeout) * time.Second
}

// ServerAddr returns the host:port the HTTP server listens on.
func (c *Config) ServerAddr() string {
	return net.JoinHostPort(c.ServerHost, strconv.Itoa(c.ServerPort))
}

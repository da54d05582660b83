package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string        `env:"PORT,       default=8080"`
	Env       string        `env:"ENV,        default=development"`
	JWTSecret string        `env:"JWT_SECRET, required"`
	JWTTTL    time.Duration `env:"JWT_TTL,    default=24h"`
	LogLevel  string        `env:"LOG_LEVEL,  default=info"`

	Mongo    MongoConfig
	Redis    RedisConfig
	Throttle ThrottleConfig
	Audit    AuditConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=institute"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// ThrottleConfig bounds failed login attempts per email.
type ThrottleConfig struct {
	MaxFailures int64         `env:"LOGIN_MAX_FAILURES,    default=5"`
	Window      time.Duration `env:"LOGIN_FAILURE_WINDOW,  default=15m"`
}

// AuditConfig sizes the audit trail worker pool.
type AuditConfig struct {
	Workers int `env:"AUDIT_WORKERS, default=4"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return &cfg, nil
}

package config

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string `env:"PORT,       default=8080"`
	Env       string `env:"ENV,        default=development"`
	JWTSecret string `env:"JWT_SECRET, required"`
	LogLevel  string `env:"LOG_LEVEL,  default=info"`
	PublicURL string `env:"PUBLIC_URL, default=http://localhost:3000"`

	Mongo  MongoConfig
	Redis  RedisConfig
	Mail   MailConfig
	Upload UploadConfig
	Sweep  SweepConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=content"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

type MailConfig struct {
	Domain      string `env:"MAILGUN_DOMAIN"`
	APIKey      string `env:"MAILGUN_API_KEY"`
	From        string `env:"MAIL_FROM,          default=no-reply@localhost"`
	AdminNotify string `env:"ADMIN_NOTIFY_EMAIL"`
	Workers     int    `env:"MAIL_WORKERS,       default=2"`
}

type UploadConfig struct {
	Dir       string `env:"UPLOAD_DIR,        default=public/uploads"`
	URLPrefix string `env:"UPLOAD_URL_PREFIX, default=images"`
	MaxBody   string `env:"UPLOAD_MAX_BODY,   default=50M"`
}

type SweepConfig struct {
	Interval time.Duration `env:"SWEEP_INTERVAL, default=24h"`
	LockTTL  time.Duration `env:"SWEEP_LOCK_TTL, default=1h"`
}

// IsProduction gates outbound mail and pretty logging.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Env, "production")
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	return LoadFrom(ctx, envconfig.OsLookuper())
}

// LoadFrom reads configuration through l; tests pass an envconfig.MapLookuper.
func LoadFrom(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if cfg.Sweep.Interval <= 0 {
		return nil, fmt.Errorf("config: SWEEP_INTERVAL must be positive")
	}
	// A successful sweep holds its lease until the TTL ends, so the TTL has to end
	// before the next run is due.
	if cfg.Sweep.LockTTL <= 0 || cfg.Sweep.LockTTL >= cfg.Sweep.Interval {
		return nil, fmt.Errorf("config: SWEEP_LOCK_TTL must be positive and shorter than SWEEP_INTERVAL")
	}
	return &cfg, nil
}

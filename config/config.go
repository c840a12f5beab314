package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v9"
	"github.com/joho/godotenv"
)

type Config struct {
	Env     string `env:"ENV" envDefault:"local"`
	Address string `env:"ADDRESS" envDefault:":8083"`
	// memory or postgres
	StoreBackend string `env:"STORE_BACKEND" envDefault:"postgres"`
	JWTSecret    string `env:"JWT_SECRET,notEmpty"`
	SentryDSN    string `env:"SENTRY_DSN"`
	RateLimit    int    `env:"RATE_LIMIT" envDefault:"10"`

	DB      DBConfig
	Broker  BrokerConfig
	Storage StorageConfig

	ProposalTTL time.Duration `env:"PROPOSAL_TTL" envDefault:"30m"`
}

type DBConfig struct {
	Username string `env:"DB_USERNAME"`
	Password string `env:"DB_PASSWORD"`
	Host     string `env:"DB_HOST" envDefault:"localhost"`
	Port     string `env:"DB_PORT" envDefault:"5432"`
	Name     string `env:"DB_NAME"`
}

func (c DBConfig) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s", c.Username, c.Password, c.Host, c.Port, c.Name)
}

type BrokerConfig struct {
	Address     string `env:"ASYNC_BROKER_ADDRESS" envDefault:"localhost:6379"`
	Concurrency int    `env:"WORKER_CONCURRENCY" envDefault:"10"`
}

type StorageConfig struct {
	AccountID       string `env:"R2_ACCOUNT_ID"`
	AccessKeyID     string `env:"R2_ACCESS_KEY_ID"`
	AccessKeySecret string `env:"R2_ACCESS_KEY_SECRET"`
	BucketName      string `env:"R2_BUCKET_NAME"`
}

func (c StorageConfig) Enabled() bool {
	return c.AccountID != "" && c.BucketName != ""
}

// Load reads .env when present and parses the environment into Config.
func Load() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.StoreBackend != "memory" && cfg.StoreBackend != "postgres" {
		return Config{}, fmt.Errorf("unknown STORE_BACKEND %q", cfg.StoreBackend)
	}
	return cfg, nil
}

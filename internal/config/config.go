package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds runtime configuration for the application. It is read
// once at startup and treated as immutable afterwards; components get
// the values they need at construction time.
type Config struct {
	AppAddr         string        `envconfig:"APP_ADDR" default:"0.0.0.0:8080"`
	AppReadTimeout  time.Duration `envconfig:"APP_READ_TIMEOUT" default:"15s"`
	AppWriteTimeout time.Duration `envconfig:"APP_WRITE_TIMEOUT" default:"15s"`

	AccessTokenSecret  string        `envconfig:"AT_SECRET" required:"true"`
	RefreshTokenSecret string        `envconfig:"RT_SECRET" required:"true"`
	AccessTokenTTL     time.Duration `envconfig:"ACCESS_TOKEN_TTL" default:"15m"`
	RefreshTokenTTL    time.Duration `envconfig:"REFRESH_TOKEN_TTL" default:"168h"`

	BcryptCost int `envconfig:"BCRYPT_COST" default:"10"`

	PostgresDB       string `envconfig:"POSTGRES_DB" default:"forum"`
	PostgresUser     string `envconfig:"POSTGRES_USER" default:"forum"`
	PostgresPassword string `envconfig:"POSTGRES_PASSWORD" default:"forum"`
	PostgresHost     string `envconfig:"POSTGRES_HOST" default:"localhost"`
	PostgresPort     string `envconfig:"POSTGRES_PORT" default:"5432"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// DSN builds the postgres connection string.
func (c *Config) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.PostgresUser, c.PostgresPassword, c.PostgresHost, c.PostgresPort, c.PostgresDB)
}

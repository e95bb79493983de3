package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	AppPort          uint16        `envconfig:"APP_PORT" required:"true"`
	DatabaseURL      string        `envconfig:"DATABASE_URL" required:"true"`
	DBMaxConns       int32         `envconfig:"DB_MAX_CONNS" default:"10"`
	DBConnectTimeout time.Duration `envconfig:"DB_CONNECT_TIMEOUT" default:"10s"`

	// Empty disables change events.
	AMQPURL string `envconfig:"AMQP_URL"`

	CORSAllowOrigins []string      `envconfig:"CORS_ALLOW_ORIGINS" default:"*"`
	LogLevel         string        `envconfig:"LOG_LEVEL" default:"info"`
	ShutdownTimeout  time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`
}

// Load reads an optional .env file and then the process environment.
func Load() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.AppPort == 0 {
		return errors.New("invalid APP_PORT: must be between 1 and 65535")
	}
	if c.DatabaseURL == "" {
		return errors.New("DATABASE_URL must be set")
	}
	if c.DBMaxConns <= 0 {
		return fmt.Errorf("invalid DB_MAX_CONNS %d: must be positive", c.DBMaxConns)
	}
	return nil
}

func (c Config) Addr() string {
	return fmt.Sprintf(":%d", c.AppPort)
}

func (c Config) EventsEnabled() bool {
	return c.AMQPURL != ""
}

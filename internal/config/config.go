package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
)

// Config holds all application configuration. It is loaded once at startup
// and passed explicitly to the components that need it.
type Config struct {
	Port    int    `env:"PORT" envDefault:"3000" validate:"gt=0,lt=65536"`
	GinMode string `env:"GIN_MODE" envDefault:"debug" validate:"oneof=debug release test"`

	Log       LogConfig
	Database  DatabaseConfig
	Auth      AuthConfig
	Telemetry TelemetryConfig

	RequestTimeout  time.Duration `env:"REQUEST_TIMEOUT" envDefault:"10s" validate:"gte=0"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"5s" validate:"gt=0"`
}

// LogConfig controls the structured logger.
type LogConfig struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info" validate:"oneof=debug info warn error"`
	Format string `env:"LOG_FORMAT" envDefault:"json" validate:"oneof=json text"`
}

// DatabaseConfig selects the SQL backend and its connection settings.
type DatabaseConfig struct {
	Driver     string `env:"DB_DRIVER" envDefault:"sqlite" validate:"oneof=sqlite postgres mysql"`
	Host       string `env:"DB_HOST" envDefault:"localhost"`
	Port       string `env:"DB_PORT" envDefault:"5432"`
	User       string `env:"DB_USER" envDefault:"taskuser"`
	Password   string `env:"DB_PASSWORD"`
	Name       string `env:"DB_NAME" envDefault:"task_tracker"`
	SQLitePath string `env:"SQLITE_PATH" envDefault:"task_tracker.db"`
}

// AuthConfig holds the token signing secret and password work factor.
type AuthConfig struct {
	JWTSecret  string        `env:"JWT_SECRET" validate:"required,min=32"`
	TokenTTL   time.Duration `env:"TOKEN_TTL" envDefault:"0s" validate:"gte=0"`
	BcryptCost int           `env:"BCRYPT_COST" envDefault:"10" validate:"gte=4,lte=31"`
}

// TelemetryConfig enables OTLP trace export.
type TelemetryConfig struct {
	Enabled     bool   `env:"OTEL_ENABLED" envDefault:"false"`
	Endpoint    string `env:"OTEL_ENDPOINT" validate:"required_if=Enabled true"`
	ServiceName string `env:"OTEL_SERVICE_NAME" envDefault:"task-tracker"`
}

// Load reads the configuration from environment variables and validates it.
func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	cfg.Database.Driver = strings.ToLower(strings.TrimSpace(cfg.Database.Driver))
	cfg.Log.Level = strings.ToLower(strings.TrimSpace(cfg.Log.Level))

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the configuration against its validation tags.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// Addr returns the listen address for the HTTP server.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

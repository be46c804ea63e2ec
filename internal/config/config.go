// Package config loads kicktable settings from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"time"

	"github.com/Sternrassler/kickstarter-table/pkg/dataset"
	"github.com/Sternrassler/kickstarter-table/pkg/logging"
	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds the CLI configuration.
type Config struct {
	DatasetURL  string        `env:"KICKTABLE_DATASET_URL"`
	UserAgent   string        `env:"KICKTABLE_USER_AGENT" envDefault:"kicktable/0.1.0"`
	HTTPTimeout time.Duration `env:"KICKTABLE_HTTP_TIMEOUT" envDefault:"30s"`

	LogLevel  string `env:"KICKTABLE_LOG_LEVEL" envDefault:"warn"`
	LogPretty bool   `env:"KICKTABLE_LOG_PRETTY" envDefault:"false"`

	// RedisURL enables the response cache when set, e.g. redis://localhost:6379/0.
	RedisURL string `env:"KICKTABLE_REDIS_URL"`

	// MetricsAddr serves /metrics when set, e.g. :9090.
	MetricsAddr string `env:"KICKTABLE_METRICS_ADDR"`
}

// Load reads an optional .env file, then parses the environment.
func Load(dotenvFiles ...string) (Config, error) {
	// A missing .env is normal; a malformed one is not.
	if err := godotenv.Load(dotenvFiles...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load dotenv: %w", err)
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.DatasetURL == "" {
		cfg.DatasetURL = dataset.DefaultURL
	}
	return cfg, nil
}

// Validate checks the configuration.
func (c Config) Validate() error {
	var errs []error

	u, err := url.Parse(c.DatasetURL)
	switch {
	case err != nil:
		errs = append(errs, fmt.Errorf("dataset url: %w", err))
	case u.Scheme != "http" && u.Scheme != "https":
		errs = append(errs, fmt.Errorf("dataset url must be http(s), got %q", c.DatasetURL))
	case u.Host == "":
		errs = append(errs, fmt.Errorf("dataset url has no host: %q", c.DatasetURL))
	}

	if c.UserAgent == "" {
		errs = append(errs, errors.New("user agent is required"))
	}
	if c.HTTPTimeout <= 0 {
		errs = append(errs, fmt.Errorf("http timeout must be positive, got %s", c.HTTPTimeout))
	}
	if err := logging.ValidateLevel(logging.LogLevel(c.LogLevel)); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

// LoaderConfig maps the configuration onto dataset.Config. The cache is
// attached separately.
func (c Config) LoaderConfig() dataset.Config {
	return dataset.Config{
		URL:       c.DatasetURL,
		UserAgent: c.UserAgent,
		Timeout:   c.HTTPTimeout,
	}
}

// LoggingConfig maps the configuration onto logging.Config.
func (c Config) LoggingConfig() logging.Config {
	cfg := logging.DefaultConfig()
	cfg.Level = logging.LogLevel(c.LogLevel)
	cfg.Pretty = c.LogPretty
	return cfg
}

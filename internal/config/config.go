// Package config loads storefront settings from STOREFRONT_* environment variables.
package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
)

const (
	CatalogSourceHTTP   = "http"
	CatalogSourceSQLite = "sqlite"
)

type Config struct {
	HTTPPort        string        `envconfig:"HTTP_PORT" default:"8080"`
	RequestTimeout  time.Duration `envconfig:"REQUEST_TIMEOUT" default:"30s"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`
	LogMode         string        `envconfig:"LOG_MODE" default:"development"`

	CatalogSource  string        `envconfig:"CATALOG_SOURCE" default:"http"`
	CatalogURL     string        `envconfig:"CATALOG_URL" default:"https://fakestoreapi.com"`
	CatalogTimeout time.Duration `envconfig:"CATALOG_TIMEOUT" default:"10s"`
	CatalogDBPath  string        `envconfig:"CATALOG_DB_PATH" default:"./catalog.db"`

	RedisAddr     string        `envconfig:"REDIS_ADDR"`
	RedisPassword string        `envconfig:"REDIS_PASSWORD"`
	CacheTTL      time.Duration `envconfig:"CACHE_TTL" default:"15m"`

	KafkaBrokers []string `envconfig:"KAFKA_BROKERS"`
	OrderTopic   string   `envconfig:"ORDER_TOPIC" default:"storefront-orders"`
}

const prefix = "STOREFRONT"

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(prefix, &cfg); err != nil {
		return nil, errors.Wrap(err, "failed to load config")
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.CatalogSource {
	case CatalogSourceHTTP, CatalogSourceSQLite:
	default:
		return errors.Errorf("unknown catalog source %q", c.CatalogSource)
	}
	if c.RequestTimeout <= 0 {
		return errors.New("request timeout must be positive")
	}
	return nil
}

// CacheEnabled reports whether a Redis address was configured.
func (c *Config) CacheEnabled() bool {
	return c.RedisAddr != ""
}

// KafkaEnabled reports whether orders go to Kafka instead of the log.
func (c *Config) KafkaEnabled() bool {
	return len(c.KafkaBrokers) > 0
}

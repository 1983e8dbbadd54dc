// Package config loads process configuration from environment variables.
package config

import (
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/vasapolrittideah/piggybank-api/shared/mailer"
)

// Config aggregates all process configuration.
type Config struct {
	ServiceName string `env:"SERVICE_NAME" envDefault:"piggybank-api"`
	HTTPAddr    string `env:"HTTP_ADDR"    envDefault:":8080"`

	Mongo    MongoConfig
	Token    TokenConfig
	Throttle ThrottleConfig
	SMTP     mailer.Config
	Consul   ConsulConfig
}

// MongoConfig holds the document store settings. Timeout bounds every
// single store operation.
type MongoConfig struct {
	URI      string        `env:"MONGO_URI"      envDefault:"mongodb://localhost:27017"`
	Database string        `env:"MONGO_DATABASE" envDefault:"piggybank"`
	Timeout  time.Duration `env:"MONGO_TIMEOUT"  envDefault:"5s"`
}

// TokenConfig holds access token signing settings.
type TokenConfig struct {
	Secret    string        `env:"TOKEN_SECRET"     envDefault:"insecure-dev-secret"`
	ExpiresIn time.Duration `env:"TOKEN_EXPIRES_IN" envDefault:"15m"`
	Issuer    string        `env:"TOKEN_ISSUER"     envDefault:"piggybank-api"`
}

// ThrottleConfig holds the login throttle settings.
type ThrottleConfig struct {
	Threshold     int           `env:"LOGIN_THROTTLE_THRESHOLD"      envDefault:"5"`
	TTL           time.Duration `env:"LOGIN_THROTTLE_TTL"            envDefault:"30m"`
	SweepInterval time.Duration `env:"LOGIN_THROTTLE_SWEEP_INTERVAL" envDefault:"5m"`
}

// ConsulConfig holds service registration settings. An empty Addr disables
// registration.
type ConsulConfig struct {
	Addr        string `env:"CONSUL_ADDR"`
	ServiceHost string `env:"CONSUL_SERVICE_HOST" envDefault:"127.0.0.1"`
	ServicePort int    `env:"CONSUL_SERVICE_PORT" envDefault:"8080"`
}

// Load parses the configuration from environment variables.
func Load() (*Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, err
	}

	return &cfg, nil
}

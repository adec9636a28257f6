package main

import (
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/kpango/glg"
	"github.com/pkg/errors"
)

// EnvConfig holds the deployment specific settings read from the environment.
type EnvConfig struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	Port        string `env:"PORT" envDefault:"8080"`
	SSLCertPath string `env:"SSL_CERT_PATH"`
	SSLKeyPath  string `env:"SSL_KEY_PATH"`
	AlexaAppID  string `env:"ALEXA_APP_ID"`

	HypixelAPIKey    string        `env:"HYPIXEL_API_KEY"`
	HypixelAPIURL    string        `env:"HYPIXEL_API_URL"`
	MojangAPIURL     string        `env:"MOJANG_API_URL"`
	MojangSessionURL string        `env:"MOJANG_SESSION_URL"`
	UpstreamTimeout  time.Duration `env:"UPSTREAM_TIMEOUT" envDefault:"5s"`

	DatabaseURL  string        `env:"DATABASE_URL"`
	RedisURL     string        `env:"REDIS_URL"`
	LinkCacheTTL time.Duration `env:"LINK_CACHE_TTL" envDefault:"24h"`

	SentryDSN   string `env:"SENTRY_DSN"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
	LogFilePath string `env:"LOG_FILE_PATH"`
}

// parseConfig reads the dotenv file at path into the environment, when there is
// one, and parses the result. Variables already set in the environment win.
func parseConfig(path string) (*EnvConfig, error) {

	if path != "" {
		if err := godotenv.Load(path); err != nil {
			return nil, errors.Wrapf(err, "loading config file %s", path)
		}
	} else if _, err := os.Stat(".env"); err == nil {
		if err = godotenv.Load(); err != nil {
			return nil, errors.Wrap(err, "loading .env")
		}
	}

	config := &EnvConfig{}
	if err := env.Parse(config); err != nil {
		return nil, errors.Wrap(err, "parsing environment")
	}

	return config, nil
}

func loadConfig(path *string) *EnvConfig {

	config, err := parseConfig(*path)
	if err != nil {
		glg.Fatalf("Failed to load the configuration: %s", err.Error())
	}

	if config.HypixelAPIKey == "" {
		glg.Warn("HYPIXEL_API_KEY is not set, every profile lookup will fail")
	}

	return config
}

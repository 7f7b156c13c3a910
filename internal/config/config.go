package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/shopspring/decimal"
)

type Config struct {
	App struct {
		Name     string `envconfig:"APP_NAME" default:"PeachTree"`
		LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
		LogFile  string `envconfig:"LOG_FILE" default:"peachtree.log"`
	}

	API struct {
		BaseURL string        `envconfig:"API_BASE_URL" default:"http://localhost:8000"`
		Prefix  string        `envconfig:"API_PREFIX" default:"/api/v1"`
		Timeout time.Duration `envconfig:"API_TIMEOUT" default:"30s"`
	}

	Credentials struct {
		// Backend selects the keyring backend: file, keychain, secret-service, kwallet, pass, wincred, keyctl.
		Backend    string `envconfig:"CREDENTIALS_BACKEND" default:"file"`
		Dir        string `envconfig:"CREDENTIALS_DIR" default:"~/.peachtree"`
		Passphrase string `envconfig:"CREDENTIALS_PASSPHRASE" default:"peachtree"`
	}

	Server struct {
		Port            int             `envconfig:"PORT" default:"8000"`
		Timeout         time.Duration   `envconfig:"SERVER_TIMEOUT" default:"30s"`
		SecretKey       string          `envconfig:"SECRET_KEY" default:"change-me"`
		TokenTTL        time.Duration   `envconfig:"ACCESS_TOKEN_TTL" default:"30m"`
		AllowedOrigins  []string        `envconfig:"ALLOWED_ORIGINS" default:"http://localhost:3000,http://127.0.0.1:3000"`
		StartingBalance decimal.Decimal `envconfig:"STARTING_BALANCE" default:"1000.00"`
	}
}

// APIURL is the base URL every remote path is appended to.
func (c *Config) APIURL() string {
	return strings.TrimSuffix(c.API.BaseURL, "/") + "/" + strings.Trim(c.API.Prefix, "/")
}

func (c *Config) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.App.LogLevel)); err != nil {
		return slog.LevelInfo
	}

	return level
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	return &cfg, nil
}

package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/Zachkp/portfolio/internal/github"
	"github.com/Zachkp/portfolio/internal/ledger"
	"github.com/Zachkp/portfolio/internal/visitor"
)

// Config is the runtime configuration. Values come from the environment
// (with .env loaded by godotenv) and may be overridden by command flags.
type Config struct {
	Port    string `validate:"required,numeric"`
	Env     string `validate:"oneof=development production"`
	SiteURL string `validate:"omitempty,url"`

	LedgerBackend string `validate:"oneof=file sqlite redis memory"`
	LedgerPath    string `validate:"required_if=LedgerBackend file"`
	SQLitePath    string `validate:"required_if=LedgerBackend sqlite"`
	WriteMode     string `validate:"oneof=serialized best-effort"`

	RedisURL      string `validate:"required_if=LedgerBackend redis"`
	RedisPassword string
	RedisDB       int `validate:"min=0,max=15"`
	RedisPrefix   string

	// VisitorHashSalt enables hashing of visitor identities when set.
	VisitorHashSalt string

	// GitHubUser enables the GitHub activity section when set.
	GitHubUser   string `validate:"omitempty,max=39"`
	GitHubToken  string
	GitHubAPIURL string `validate:"omitempty,url"`

	AdminUsername string `validate:"required"`
	AdminPassword string `validate:"required"`
	AdminToken    string

	// defaultAdminCredentials is set when the admin login fell back to the
	// built-in development credentials.
	defaultAdminCredentials bool
}

var validate = validator.New()

func getenv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

// loadConfig reads the environment, applying the defaults for development.
func loadConfig() (*Config, error) {
	redisDB, err := strconv.Atoi(getenv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("REDIS_DB: %w", err)
	}

	cfg := &Config{
		Port:    getenv("PORT", "8080"),
		Env:     strings.ToLower(getenv("APP_ENV", "production")),
		SiteURL: getenv("SITE_URL", ""),

		LedgerBackend: strings.ToLower(getenv("LEDGER_BACKEND", ledger.BackendFile)),
		LedgerPath:    getenv("LEDGER_PATH", "data/visits.json"),
		SQLitePath:    getenv("LEDGER_SQLITE_PATH", "data/visits.db"),
		WriteMode:     strings.ToLower(getenv("LEDGER_WRITE_MODE", string(ledger.Serialized))),

		RedisURL:      getenv("REDIS_URL", ""),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       redisDB,
		RedisPrefix:   getenv("REDIS_PREFIX", "portfolio:"),

		VisitorHashSalt: os.Getenv("VISITOR_HASH_SALT"),

		GitHubUser:   getenv("GITHUB_USER", "davidassef"),
		GitHubToken:  os.Getenv("GITHUB_TOKEN"),
		GitHubAPIURL: getenv("GITHUB_API_URL", github.DefaultBaseURL),

		AdminUsername: os.Getenv("ADMIN_USERNAME"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),
		AdminToken:    os.Getenv("ADMIN_TOKEN"),
	}
	if cfg.AdminUsername == "" || cfg.AdminPassword == "" {
		cfg.AdminUsername = getenv("ADMIN_USERNAME", "admin")
		cfg.AdminPassword = getenv("ADMIN_PASSWORD", "admin123")
		cfg.defaultAdminCredentials = true
	}
	return cfg, nil
}

// Validate checks the configuration and normalizes short env names.
func (c *Config) Validate() error {
	if c.Env == "dev" {
		c.Env = "development"
	}
	if c.Env == "prod" {
		c.Env = "production"
	}
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// Mode returns the identity derivation mode for this deployment.
func (c *Config) Mode() visitor.Mode {
	return visitor.ParseMode(c.Env)
}

// IsDevelopment reports whether the app runs in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Mode() == visitor.Development
}

// LedgerConfig maps the app configuration onto the ledger backend settings.
func (c *Config) LedgerConfig() ledger.Config {
	return ledger.Config{
		Backend:    c.LedgerBackend,
		FilePath:   c.LedgerPath,
		SQLitePath: c.SQLitePath,
		WriteMode:  ledger.WriteMode(c.WriteMode),
		Redis: ledger.RedisConfig{
			URL:      c.RedisURL,
			Password: c.RedisPassword,
			DB:       c.RedisDB,
			Prefix:   c.RedisPrefix,
		},
	}
}

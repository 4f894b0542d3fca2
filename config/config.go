package config

import (
	"log"
	"strings"
	"time"

	"didimdol_landing_go/services"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

// DefaultNotionAPIURL is the Notion REST base used when NOTION_API_URL is unset
const DefaultNotionAPIURL = "https://api.notion.com/v1"

type Config struct {
	ServerPort   string        `env:"SERVER_PORT" envDefault:"8080"`
	Environment  string        `env:"ENVIRONMENT" envDefault:"development"`
	AppURL       string        `env:"APP_URL" envDefault:"http://localhost:8080"`
	ReadTimeout  time.Duration `env:"SERVER_READ_TIMEOUT" envDefault:"10s"`
	WriteTimeout time.Duration `env:"SERVER_WRITE_TIMEOUT" envDefault:"30s"`
	// Comma separated, "*" allows every origin
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`

	// Notion (optional). Leaving either value empty switches the relay to log-only mode.
	NotionAPIKey     string `env:"NOTION_API_KEY"`
	NotionDatabaseID string `env:"NOTION_DATABASE_ID"`
	NotionAPIURL     string `env:"NOTION_API_URL" envDefault:"https://api.notion.com/v1"`

	// Outbound links on the contact section; empty renders a placeholder
	YouTubeURL string `env:"YOUTUBE_URL"`
	BlogURL    string `env:"BLOG_URL"`

	// Logging
	LoggerLevel      string `env:"LOGGER_LEVEL" envDefault:"info"`
	LoggerFormat     string `env:"LOGGER_FORMAT"` // json, console; empty picks by environment
	LoggerOutputPath string `env:"LOGGER_OUTPUT_PATH" envDefault:"stdout"`
}

func Load() *Config {
	// Load .env file (ignore error if not present - use system env vars)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	cfg, err := Parse()
	if err != nil {
		log.Fatalf("[CRITICAL] Invalid configuration: %v", err)
	}

	if !cfg.NotionConfigured() {
		log.Println("[WARNING] NOTION_API_KEY or NOTION_DATABASE_ID not set, consultation requests will only be logged")
	}

	return cfg
}

// Parse reads the configuration from the process environment without touching .env
func Parse() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	cfg.NotionAPIKey = strings.TrimSpace(cfg.NotionAPIKey)
	cfg.NotionDatabaseID = strings.TrimSpace(cfg.NotionDatabaseID)
	cfg.NotionAPIURL = strings.TrimRight(cfg.NotionAPIURL, "/")
	if cfg.NotionAPIURL == "" {
		cfg.NotionAPIURL = DefaultNotionAPIURL
	}
	cfg.AppURL = strings.TrimRight(cfg.AppURL, "/")
	cfg.YouTubeURL = strings.TrimSpace(cfg.YouTubeURL)
	cfg.BlogURL = strings.TrimSpace(cfg.BlogURL)

	return cfg, nil
}

// IsProduction reports whether the service runs with production settings
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// NotionConfigured reports whether both Notion credentials are present
func (c *Config) NotionConfigured() bool {
	return c.NotionAPIKey != "" && c.NotionDatabaseID != ""
}

// Relay returns the settings injected into the consultation relay at startup
func (c *Config) Relay() services.RelayConfig {
	return services.RelayConfig{
		APIKey:     c.NotionAPIKey,
		DatabaseID: c.NotionDatabaseID,
	}
}

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	CatalogBuiltin = "builtin"
	CatalogFile    = "file"
	CatalogDB      = "db"
)

type Config struct {
	Port        string
	GinMode     string
	DatabaseURL string
	EnableDB    bool

	OpenAIAPIKey  string
	OpenAIBaseURL string
	OpenAIModel   string
	LLMTimeout    time.Duration

	CatalogSource string
	CatalogPath   string
	FontDir       string

	LogLevel  string
	LogFormat string
}

// Load reads a .env file when present, then the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	timeout, err := time.ParseDuration(getEnv("LLM_TIMEOUT", "60s"))
	if err != nil || timeout <= 0 {
		return nil, fmt.Errorf("LLM_TIMEOUT must be a positive duration, got %q", os.Getenv("LLM_TIMEOUT"))
	}

	cfg := &Config{
		Port:          getEnv("PORT", "8080"),
		GinMode:       getEnv("GIN_MODE", "release"),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		EnableDB:      strings.EqualFold(getEnv("ENABLE_DB", "false"), "true"),
		OpenAIAPIKey:  os.Getenv("OPENAI_API_KEY"),
		OpenAIBaseURL: os.Getenv("OPENAI_BASE_URL"),
		OpenAIModel:   getEnv("OPENAI_MODEL", "gpt-3.5-turbo"),
		LLMTimeout:    timeout,
		CatalogSource: strings.ToLower(getEnv("CATALOG_SOURCE", CatalogBuiltin)),
		CatalogPath:   os.Getenv("CATALOG_PATH"),
		FontDir:       getEnv("FONT_DIR", "fonts"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		LogFormat:     getEnv("LOG_FORMAT", "json"),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.EnableDB && c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required when ENABLE_DB=true")
	}

	switch c.CatalogSource {
	case CatalogBuiltin:
	case CatalogFile:
		if c.CatalogPath == "" {
			return fmt.Errorf("CATALOG_PATH is required when CATALOG_SOURCE=file")
		}
	case CatalogDB:
		if !c.EnableDB {
			return fmt.Errorf("CATALOG_SOURCE=db requires ENABLE_DB=true")
		}
	default:
		return fmt.Errorf("unknown CATALOG_SOURCE %q", c.CatalogSource)
	}
	return nil
}

// LLMEnabled reports whether report generation can reach the model API.
func (c *Config) LLMEnabled() bool {
	return c.OpenAIAPIKey != ""
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

// Package config loads DialDish configuration from the environment,
// an optional .env file, and an optional YAML config file.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// LLM provider names.
const (
	ProviderNone      = ""
	ProviderOllama    = "ollama"
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
)

// Config holds all configuration values.
type Config struct {
	// SurrealDB connection
	SurrealDBURL       string `yaml:"surrealdb_url"`
	SurrealDBNamespace string `yaml:"surrealdb_namespace"`
	SurrealDBDatabase  string `yaml:"surrealdb_database"`
	SurrealDBUser      string `yaml:"surrealdb_user"`
	SurrealDBPass      string `yaml:"surrealdb_pass"`
	SurrealDBAuthLevel string `yaml:"surrealdb_auth_level"`

	// HTTP server
	ServerPort string `yaml:"server_port"`

	// Restaurant answered by the webhook when the request names none.
	DefaultRestaurantID string `yaml:"default_restaurant_id"`

	// Window inside which an identical repeated webhook delivery for the
	// same call is treated as a duplicate rather than a new turn.
	TurnDedupeWindow time.Duration `yaml:"turn_dedupe_window"`

	// Optional LLM fallback for unanswered questions
	LLMProvider     string `yaml:"llm_provider"`
	LLMModel        string `yaml:"llm_model"`
	OllamaHost      string `yaml:"ollama_host"`
	OpenAIAPIKey    string `yaml:"-"`
	AnthropicAPIKey string `yaml:"-"`

	// Logging
	LogFile  string     `yaml:"log_file"`
	LogLevel slog.Level `yaml:"-"`
}

// Load reads configuration from a .env file (if present), the optional YAML
// file named by DIALDISH_CONFIG, and environment variables. Environment
// variables win over the YAML file.
func Load() Config {
	// Best effort: a missing .env file is not an error.
	_ = godotenv.Load()

	cfg := Config{
		SurrealDBURL:       "ws://localhost:8000/rpc",
		SurrealDBNamespace: "dialdish",
		SurrealDBDatabase:  "voice",
		SurrealDBUser:      "root",
		SurrealDBPass:      "root",
		SurrealDBAuthLevel: "root",

		ServerPort:          "8080",
		DefaultRestaurantID: "demo",
		TurnDedupeWindow:    3 * time.Second,

		LLMProvider: ProviderNone,
		LLMModel:    "llama3.2",
		OllamaHost:  "http://localhost:11434",

		LogFile:  "/tmp/dialdish.log",
		LogLevel: slog.LevelInfo,
	}

	if path := os.Getenv("DIALDISH_CONFIG"); path != "" {
		if err := loadFile(path, &cfg); err != nil {
			slog.Warn("failed to load config file, using defaults", "file", path, "error", err)
		}
	}

	applyEnv(&cfg)
	return cfg
}

// loadFile overlays values from a YAML config file.
func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}
	return nil
}

func applyEnv(cfg *Config) {
	setEnv(&cfg.SurrealDBURL, "SURREALDB_URL")
	setEnv(&cfg.SurrealDBNamespace, "SURREALDB_NAMESPACE")
	setEnv(&cfg.SurrealDBDatabase, "SURREALDB_DATABASE")
	setEnv(&cfg.SurrealDBUser, "SURREALDB_USER")
	setEnv(&cfg.SurrealDBPass, "SURREALDB_PASS")
	setEnv(&cfg.SurrealDBAuthLevel, "SURREALDB_AUTH_LEVEL")

	setEnv(&cfg.ServerPort, "DIALDISH_SERVER_PORT")
	setEnv(&cfg.DefaultRestaurantID, "DIALDISH_RESTAURANT_ID")

	setEnv(&cfg.LLMProvider, "DIALDISH_LLM_PROVIDER")
	setEnv(&cfg.LLMModel, "DIALDISH_LLM_MODEL")
	setEnv(&cfg.OllamaHost, "OLLAMA_HOST")
	setEnv(&cfg.OpenAIAPIKey, "OPENAI_API_KEY")
	setEnv(&cfg.AnthropicAPIKey, "ANTHROPIC_API_KEY")

	setEnv(&cfg.LogFile, "DIALDISH_LOG_FILE")
	if v := os.Getenv("DIALDISH_LOG_LEVEL"); v != "" {
		cfg.LogLevel = parseLogLevel(v)
	}
	if v := os.Getenv("DIALDISH_TURN_DEDUPE_WINDOW"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.TurnDedupeWindow = d
		}
	}
}

func setEnv(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func parseLogLevel(s string) slog.Level {
	switch strings.ToUpper(s) {
	case "DEBUG":
		return slog.LevelDebug
	case "INFO":
		return slog.LevelInfo
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

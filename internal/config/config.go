package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

var ErrMissingEnvironmentVariables = errors.New("missing required environment variables")

// Config holds application configuration loaded from files and environment variables.
type Config struct {
	Env               string `mapstructure:"env"`                 // current application environment (local, dev, prod etc)
	GenAIAPIKey       string `mapstructure:"-"`                   // generative-AI provider key loaded from environment
	TelegramAPIToken  string `mapstructure:"-"`                   // Telegram API token loaded from environment (bot only)
	CountriesJSONPath string `mapstructure:"countries_json_path"` // path to the geography dataset
	HTTP              HTTP   `mapstructure:"http"`                // HTTP server section
	GenAI             GenAI  `mapstructure:"genai"`               // provider section
	DB                DB     `mapstructure:"database"`            // database configuration section
}

// HTTP contains the browser-facing server parameters.
type HTTP struct {
	Addr            string        `mapstructure:"addr"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// GenAI contains provider parameters.
type GenAI struct {
	Model           string        `mapstructure:"model"`
	PrefetchTimeout time.Duration `mapstructure:"prefetch_timeout"` // bound on one speculative enrichment fetch
}

// DB contains database-related configuration parameters.
type DB struct {
	URL             string        `mapstructure:"-"`                 // connection string loaded from environment
	MaxConnections  int           `mapstructure:"max_connections"`   // maximum number of open connections in the pool
	MaxConnLifetime time.Duration `mapstructure:"max_conn_lifetime"` // maximum lifetime of a single connection
}

// Load reads configuration from config files and environment variables.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")

	v.SetDefault("env", "local")
	v.SetDefault("countries_json_path", "assets/data/countries.json")
	v.SetDefault("http.addr", ":8080")
	v.SetDefault("http.shutdown_timeout", "10s")
	v.SetDefault("genai.model", "claude-sonnet-4-20250514")
	v.SetDefault("genai.prefetch_timeout", "45s")
	v.SetDefault("database.max_connections", 20)
	v.SetDefault("database.max_conn_lifetime", "30s")

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_")) // map nested keys to ENV style names
	v.AutomaticEnv()

	_ = v.BindEnv("genai_api_key", "GENAI_API_KEY")
	_ = v.BindEnv("telegram_api_token", "TELEGRAM_API_TOKEN")
	_ = v.BindEnv("database_url", "DATABASE_URL")
	_ = v.BindEnv("env", "APP_ENV")

	if err := v.ReadInConfig(); err != nil {
		var fileLookupErr viper.ConfigFileNotFoundError
		if !errors.As(err, &fileLookupErr) {
			return nil, fmt.Errorf("error loading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	// Sensitive values come only from the environment.
	cfg.GenAIAPIKey = v.GetString("genai_api_key")
	if cfg.GenAIAPIKey == "" {
		return nil, ErrMissingEnvironmentVariables
	}

	cfg.DB.URL = v.GetString("database_url")
	if cfg.DB.URL == "" {
		return nil, ErrMissingEnvironmentVariables
	}

	// The Telegram token is only needed by the bot binary, which checks it.
	cfg.TelegramAPIToken = v.GetString("telegram_api_token")

	return &cfg, nil
}

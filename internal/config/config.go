// Package config loads personad configuration from defaults, an optional
// .env file, and environment variables.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/subosito/gotenv"
)

type Config struct {
	Server  ServerConfig
	Reddit  RedditConfig
	LLM     LLMConfig
	Storage StorageConfig
	Log     LogConfig
}

type ServerConfig struct {
	Port     int
	APIToken string // optional; empty disables bearer auth
	// MaxExtractions bounds concurrent analyze requests at the API.
	MaxExtractions int
}

type RedditConfig struct {
	ClientID     string
	ClientSecret string
	Username     string
}

type LLMConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

type StorageConfig struct {
	DataDir   string
	ReportDir string
}

type LogConfig struct {
	Level string
}

func defaults() Config {
	return Config{
		Server: ServerConfig{
			Port:           8000,
			MaxExtractions: 4,
		},
		LLM: LLMConfig{
			Model: "gemini-2.0-flash",
			// Gemini's OpenAI-compatible endpoint; override for OpenAI proper.
			BaseURL: "https://generativelanguage.googleapis.com/v1beta/openai/",
		},
		Storage: StorageConfig{
			DataDir:   defaultDataDir(),
			ReportDir: "output",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

func defaultDataDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return dir + "/personad"
	}
	return ".personad"
}

// Load reads configuration from defaults, a .env file in the working
// directory (when present), and environment variables. Environment
// variables always win. Reddit credentials and the LLM API key are
// required.
func Load() (Config, error) {
	if err := gotenv.Load(); err != nil {
		slog.Debug("no .env file found, using OS environment")
	}

	cfg := defaults()
	applyEnvOverrides(&cfg)

	if cfg.Reddit.ClientID == "" || cfg.Reddit.ClientSecret == "" {
		return Config{}, fmt.Errorf("missing Reddit API credentials: set REDDIT_CLIENT_ID and REDDIT_CLIENT_SECRET")
	}
	if cfg.LLM.APIKey == "" {
		return Config{}, fmt.Errorf("missing LLM API key: set GEMINI_API_KEY (or PERSONAD_LLM_API_KEY)")
	}

	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	setString(&cfg.Reddit.ClientID, "REDDIT_CLIENT_ID")
	setString(&cfg.Reddit.ClientSecret, "REDDIT_CLIENT_SECRET")
	setString(&cfg.Reddit.Username, "REDDIT_USERNAME")

	setString(&cfg.LLM.APIKey, "GEMINI_API_KEY")
	setString(&cfg.LLM.APIKey, "PERSONAD_LLM_API_KEY")
	setString(&cfg.LLM.Model, "PERSONAD_LLM_MODEL")
	setString(&cfg.LLM.BaseURL, "PERSONAD_LLM_BASE_URL")

	setInt(&cfg.Server.Port, "PERSONAD_PORT")
	setInt(&cfg.Server.MaxExtractions, "PERSONAD_MAX_EXTRACTIONS")
	setString(&cfg.Server.APIToken, "PERSONAD_API_TOKEN")

	setString(&cfg.Storage.DataDir, "PERSONAD_DATA_DIR")
	setString(&cfg.Storage.ReportDir, "PERSONAD_REPORT_DIR")

	setString(&cfg.Log.Level, "PERSONAD_LOG_LEVEL")
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	v := os.Getenv(key)
	if v == "" {
		return
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		slog.Warn("ignoring invalid config value", "key", key, "value", v)
		return
	}
	*dst = n
}

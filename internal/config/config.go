package config

import (
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Database   DatabaseConfig   `yaml:"database"`
	Storage    StorageConfig    `yaml:"storage"`
	Auth       AuthConfig       `yaml:"auth"`
	Generation GenerationConfig `yaml:"generation"`
	Logging    LoggingConfig    `yaml:"logging"`
}

type ServerConfig struct {
	Host                string `yaml:"host"`
	Port                int    `yaml:"port"`
	ReadTimeoutSeconds  int    `yaml:"read_timeout_seconds"`
	WriteTimeoutSeconds int    `yaml:"write_timeout_seconds"`
}

type DatabaseConfig struct {
	Path string `yaml:"path"`
}

type StorageConfig struct {
	ImageDir   string `yaml:"image_dir"`
	PublicPath string `yaml:"public_path"`
}

// AuthConfig is the single dashboard operator. Password may be given as a
// bcrypt hash (preferred) or plaintext for local setups.
type AuthConfig struct {
	Email        string `yaml:"email"`
	Password     string `yaml:"password"`
	PasswordHash string `yaml:"password_hash"`
}

// GenerationConfig controls the content pipeline. Empty API keys disable
// the corresponding external call; every stage has a local fallback.
type GenerationConfig struct {
	// Mode selects the orchestration variant: "pipeline" runs the five
	// tools in a fixed sequence, "agent" hands them to a tool-calling
	// model and recovers structure from its transcript.
	Mode string `yaml:"mode"`

	TextProvider      string `yaml:"text_provider"` // "gemini" or "openai"
	GeminiAPIKey      string `yaml:"gemini_api_key"`
	OpenAIAPIKey      string `yaml:"openai_api_key"`
	OpenAIModel       string `yaml:"openai_model"`
	HuggingFaceAPIKey string `yaml:"huggingface_api_key"`

	TrendsGeo            string `yaml:"trends_geo"`
	TrendsWindowDays     int    `yaml:"trends_window_days"`
	SearchTimeoutSeconds int    `yaml:"search_timeout_seconds"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

func DefaultConfig() Config {
	return Config{
		Server: ServerConfig{
			Host:                "0.0.0.0",
			Port:                8080,
			ReadTimeoutSeconds:  30,
			WriteTimeoutSeconds: 300,
		},
		Database: DatabaseConfig{
			Path: "./scribe.db",
		},
		Storage: StorageConfig{
			ImageDir:   "./public/generated-images",
			PublicPath: "/generated-images",
		},
		Generation: GenerationConfig{
			Mode:                 "pipeline",
			TextProvider:         "gemini",
			OpenAIModel:          "gpt-4o-mini",
			TrendsGeo:            "US",
			TrendsWindowDays:     30,
			SearchTimeoutSeconds: 10,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load reads a YAML config file and merges it over defaults.
// If the file does not exist, defaults are returned without error.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			slog.Info("No config file found, using defaults", "path", path)
			applyEnvOverrides(&cfg)
			return cfg, nil
		}
		return cfg, err
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}

	applyEnvOverrides(&cfg)
	return cfg, nil
}

// applyEnvOverrides lets API credentials come from the environment so they
// can stay out of the config file.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("GOOGLE_AI_API_KEY"); v != "" {
		cfg.Generation.GeminiAPIKey = v
	}
	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		cfg.Generation.OpenAIAPIKey = v
	}
	if v := os.Getenv("HUGGINGFACE_API_KEY"); v != "" {
		cfg.Generation.HuggingFaceAPIKey = v
	}
}

package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config defines server configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Transport TransportConfig `yaml:"transport"`
	DB        DBConfig        `yaml:"db"`
	Templates TemplatesConfig `yaml:"templates"`
	Summary   SummaryConfig   `yaml:"summary"`
	OpenAI    OpenAIConfig    `yaml:"openai"`
	Log       LogConfig       `yaml:"log"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

type TransportConfig struct {
	Mode string `yaml:"mode"` // "stdio" or "http"
}

type DBConfig struct {
	Path string `yaml:"path"`
}

type TemplatesConfig struct {
	Dir string `yaml:"dir"`
}

// SummaryConfig controls the local extractive summarizer.
type SummaryConfig struct {
	Language      string `yaml:"language"`
	Method        string `yaml:"method"`
	SentenceCount int    `yaml:"sentence_count"`
	MaxKeyPoints  int    `yaml:"max_key_points"`
}

// OpenAIConfig configures the optional remote summarization backend.
// The backend is invoked only on explicit request, never auto-detected.
type OpenAIConfig struct {
	APIKey  string `yaml:"api_key"`
	Model   string `yaml:"model"`
	Enabled bool   `yaml:"enabled"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

// Load reads configuration from an optional YAML file and environment variables.
func Load() (Config, error) {
	cfg := Config{
		Server: ServerConfig{
			Host: "127.0.0.1",
			Port: 8080,
		},
		Transport: TransportConfig{
			Mode: "stdio",
		},
		DB: DBConfig{
			Path: "nippo.db",
		},
		Templates: TemplatesConfig{
			Dir: "templates",
		},
		Summary: SummaryConfig{
			Language:      "japanese",
			Method:        "centrality",
			SentenceCount: 5,
			MaxKeyPoints:  10,
		},
		OpenAI: OpenAIConfig{
			Model: "gpt-3.5-turbo",
		},
		Log: LogConfig{
			Level: "info",
		},
	}

	if path := os.Getenv("NIPPO_CONFIG_PATH"); path != "" {
		if err := loadFromFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if mode := os.Getenv("NIPPO_TRANSPORT_MODE"); mode != "" {
		cfg.Transport.Mode = mode
	}
	if host := os.Getenv("NIPPO_SERVER_HOST"); host != "" {
		cfg.Server.Host = host
	}
	if portStr := os.Getenv("NIPPO_SERVER_PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return Config{}, fmt.Errorf("invalid NIPPO_SERVER_PORT: %w", err)
		}
		cfg.Server.Port = port
	}
	if dbPath := os.Getenv("NIPPO_DB_PATH"); dbPath != "" {
		cfg.DB.Path = dbPath
	}
	if dir := os.Getenv("NIPPO_TEMPLATES_DIR"); dir != "" {
		cfg.Templates.Dir = dir
	}
	if lang := os.Getenv("NIPPO_SUMMARY_LANGUAGE"); lang != "" {
		cfg.Summary.Language = lang
	}
	if key := os.Getenv("NIPPO_OPENAI_API_KEY"); key != "" {
		cfg.OpenAI.APIKey = key
		cfg.OpenAI.Enabled = true
	}
	if model := os.Getenv("NIPPO_OPENAI_MODEL"); model != "" {
		cfg.OpenAI.Model = model
	}
	if level := os.Getenv("NIPPO_LOG_LEVEL"); level != "" {
		cfg.Log.Level = level
	}

	if cfg.Summary.SentenceCount <= 0 {
		cfg.Summary.SentenceCount = 5
	}
	if cfg.Summary.MaxKeyPoints <= 0 {
		cfg.Summary.MaxKeyPoints = 10
	}

	return cfg, nil
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

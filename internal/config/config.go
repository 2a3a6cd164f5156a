package config

import (
	"log"
	"log/slog"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	Server  Server  `yaml:"server"`
	Webhook Webhook `yaml:"webhook"`
	Demo    Demo    `yaml:"demo"`
	Log     Log     `yaml:"log"`
}

// Server holds HTTP server configuration
type Server struct {
	Host         string        `yaml:"host" env:"SERVER_HOST" env-default:"0.0.0.0"`
	Port         string        `yaml:"port" env:"SERVER_PORT" env-default:"8080"`
	ReadTimeout  time.Duration `yaml:"read_timeout" env:"SERVER_READ_TIMEOUT" env-default:"15s"`
	WriteTimeout time.Duration `yaml:"write_timeout" env:"SERVER_WRITE_TIMEOUT" env-default:"11m"`
	IdleTimeout  time.Duration `yaml:"idle_timeout" env:"SERVER_IDLE_TIMEOUT" env-default:"60s"`

	// Must exceed Webhook.Timeout so the upstream bound fires first
	RequestTimeout time.Duration `yaml:"request_timeout" env:"SERVER_REQUEST_TIMEOUT" env-default:"11m"`
}

// Address returns the full server address
func (s Server) Address() string {
	return s.Host + ":" + s.Port
}

// Webhook holds n8n workflow configuration
type Webhook struct {
	URL     string        `yaml:"url" env:"N8N_WEBHOOK_URL"`
	Timeout time.Duration `yaml:"timeout" env:"N8N_WEBHOOK_TIMEOUT" env-default:"10m"`
}

// Demo holds demo dataset configuration
type Demo struct {
	Usernames       []string `yaml:"usernames" env:"DEMO_USERNAMES" env-default:"demo,mock" env-separator:","`
	FallbackOnError bool     `yaml:"fallback_on_error" env:"DEMO_FALLBACK_ON_ERROR" env-default:"false"`
}

// Log holds logging configuration
type Log struct {
	Level string `yaml:"level" env:"LOG_LEVEL" env-default:"info"`
}

// SlogLevel parses Level, falling back to info for unknown values
func (l Log) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(l.Level))); err != nil {
		return slog.LevelInfo
	}
	return level
}

// MustLoad loads configuration from environment and panics on error
func MustLoad() Config {
	// Load .env file if exists (for development)
	_ = godotenv.Load()

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	return cfg
}

// LoadFromFile loads configuration from a YAML file
func LoadFromFile(path string) (Config, error) {
	var cfg Config
	if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

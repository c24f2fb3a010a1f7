package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

var ErrMissingAPIKey = errors.New("missing GOOGLE_API_KEY")

type Config struct {
	Port string

	GeminiAPIKey      string
	GeminiModel       string
	GeminiTimeout     time.Duration
	GeminiTemperature *float32

	// PromptFile optionally replaces the built-in prompt template.
	PromptFile string

	TelegramBotToken string
	WebhookURL       string

	LogJSON bool
	LogFile string
}

func getEnv(k, def string) string {
	if v := strings.TrimSpace(os.Getenv(k)); v != "" {
		return v
	}
	return def
}

// Load reads .env (if present) and the process environment.
// It fails when the Gemini API key is absent or a value cannot be parsed.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return fromEnv()
}

func fromEnv() (*Config, error) {
	cfg := &Config{
		Port:             getEnv("PORT", "3000"),
		GeminiAPIKey:     getEnv("GOOGLE_API_KEY", getEnv("GEMINI_API_KEY", "")),
		GeminiModel:      getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
		GeminiTimeout:    60 * time.Second,
		PromptFile:       getEnv("PROMPT_FILE", ""),
		TelegramBotToken: getEnv("TELEGRAM_BOT_TOKEN", ""),
		WebhookURL:       getEnv("WEBHOOK_URL", ""),
		LogFile:          getEnv("LOG_FILE", ""),
	}
	if cfg.GeminiAPIKey == "" {
		return nil, ErrMissingAPIKey
	}

	if v := getEnv("GEMINI_TIMEOUT", ""); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			return nil, fmt.Errorf("bad GEMINI_TIMEOUT %q", v)
		}
		cfg.GeminiTimeout = d
	}
	if v := getEnv("GEMINI_TEMPERATURE", ""); v != "" {
		f, err := strconv.ParseFloat(v, 32)
		if err != nil || f < 0 || f > 2 {
			return nil, fmt.Errorf("bad GEMINI_TEMPERATURE %q", v)
		}
		t := float32(f)
		cfg.GeminiTemperature = &t
	}
	if v := getEnv("LOG_JSON", ""); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("bad LOG_JSON %q", v)
		}
		cfg.LogJSON = b
	}
	return cfg, nil
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return "0.0.0.0:" + c.Port
}

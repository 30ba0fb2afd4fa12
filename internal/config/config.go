// Package config содержит логику чтения конфигурации фронтенда платформы заказов.
package config

import (
	"flag"
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config содержит параметры конфигурации фронтенда.
type Config struct {
	RunAddress    string `env:"RUN_ADDRESS"`
	APIBaseURL    string `env:"API_BASE_URL"`
	SessionSecret string `env:"SESSION_SECRET"`
	TemplatesDir  string `env:"TEMPLATES_DIR"`
	CookieSecure  bool   `env:"COOKIE_SECURE"`
}

// Parse считывает конфигурацию из .env-файла, переменных окружения и
// флагов командной строки. Переменные окружения имеют приоритет над флагами.
func Parse() (*Config, error) {
	// .env опционален: в продакшене конфигурация приходит из окружения.
	_ = godotenv.Load()

	cfg := &Config{}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	envRunAddress := cfg.RunAddress
	envAPIBaseURL := cfg.APIBaseURL
	envSessionSecret := cfg.SessionSecret
	envTemplatesDir := cfg.TemplatesDir

	flag.StringVar(&cfg.RunAddress, "a", "localhost:3000", "address and port for HTTP server")
	flag.StringVar(&cfg.APIBaseURL, "b", "http://localhost:8080", "base URL of the order platform API")
	flag.StringVar(&cfg.SessionSecret, "s", "", "secret key for session cookies")
	flag.StringVar(&cfg.TemplatesDir, "t", "web/templates", "directory with page templates")

	flag.Parse()

	if envRunAddress != "" {
		cfg.RunAddress = envRunAddress
	}
	if envAPIBaseURL != "" {
		cfg.APIBaseURL = envAPIBaseURL
	}
	if envSessionSecret != "" {
		cfg.SessionSecret = envSessionSecret
	}
	if envTemplatesDir != "" {
		cfg.TemplatesDir = envTemplatesDir
	}

	if cfg.RunAddress == "" {
		cfg.RunAddress = "localhost:3000"
	}

	return cfg, nil
}

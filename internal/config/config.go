package config

import (
	"log"
	"time"

	"github.com/caarlos0/env/v6"
)

type Config struct {
	BotToken     string  `env:"BOT_TOKEN,required,notEmpty"`
	AllowedUsers []int64 `env:"ALLOWED_USERS" envSeparator:":"`
	AdminUserID  int64   `env:"ADMIN_USER"`

	// Kinopoisk unofficial API
	KinopoiskToken string `env:"KINOPOISK_API_TOKEN"`
	KinopoiskURL   string `env:"KINOPOISK_URL" envDefault:"https://kinopoiskapiunofficial.tech/api/v2.1/films/search-by-keyword"`

	// Google Programmable Search
	GoogleAPIToken       string `env:"GOOGLE_API_TOKEN"`
	GoogleSearchEngineID string `env:"GOOGLE_SEARCH_ENGINE_ID"`
	GoogleSearchEndpoint string `env:"GOOGLE_SEARCH_ENDPOINT"`

	HTTPTimeout time.Duration `env:"HTTP_TIMEOUT" envDefault:"30s"`

	// Storage
	DatabasePath string `env:"DATABASE_PATH" envDefault:"data/cinema.db"`

	// Formatting
	MaxCaptionSize  int `env:"MAX_CAPTION_SIZE" envDefault:"1024"`
	MaxMessageSize  int `env:"MAX_MESSAGE_SIZE" envDefault:"4096"`
	DescriptionClip int `env:"DESCRIPTION_CLIP" envDefault:"500"`
	MaxLinks        int `env:"MAX_LINKS" envDefault:"5"`

	// Daily admin report, UTC
	ReportCron string `env:"REPORT_CRON" envDefault:"0 21 * * *"`
}

// Parse reads the configuration from the process environment.
func Parse() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func New() *Config {
	cfg, err := Parse()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	return cfg
}

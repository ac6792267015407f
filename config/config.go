package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

var (
	ErrInvalidPort        = errors.New("APP_PORT must be a number between 1 and 65535")
	ErrInvalidMaxItems    = errors.New("SEARCH_MAX_ITEMS must be between 1 and 100")
	ErrInvalidConcurrency = errors.New("RESOLVE_CONCURRENCY must be at least 1")
	ErrInvalidAttempts    = errors.New("WEATHER_ATTEMPTS must be at least 1")
	ErrInvalidTimeout     = errors.New("timeouts must be positive")
	ErrInvalidLogLevel    = errors.New("LOG_LEVEL must be one of: debug, info, warn, error")
)

type Config struct {
	AppPort        string
	Environment    string
	LogLevel       string
	AllowedOrigins []string

	NewsRSSBase     string
	NewsLanguage    string
	NewsRegion      string
	NewsEdition     string
	SearchMaxItems  int
	ResolveLinks    bool
	AggregatorHosts []string

	ResolveTimeout     time.Duration
	ResolveConcurrency int

	OpenMeteoBase      string
	ClimatempoBase     string
	ClimatempoToken    string
	ClimatempoLocaleID string
	WeatherTimeout     time.Duration
	WeatherAttempts    int
	WeatherRetryPause  time.Duration
	DefaultLat         string
	DefaultLon         string
	DefaultPlace       string
	DefaultCity        string
	DefaultState       string

	// CorStage is the raw COR_ESTAGIO value; clamping happens at read time.
	CorStage string
}

var defaultOrigins = []string{
	"http://localhost:3000",
	"http://localhost:5173",
	"http://127.0.0.1:5173",
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		if _, exists := os.Stat(".env"); exists == nil {
			log.Println("Warning: .env file exists but couldn't be loaded:", err)
		}
	}

	cfg := &Config{
		AppPort:        getEnv("APP_PORT", getEnv("PORT", "8080")),
		Environment:    getEnv("ENVIRONMENT", "development"),
		LogLevel:       strings.ToLower(getEnv("LOG_LEVEL", "info")),
		AllowedOrigins: getList("ALLOWED_ORIGINS", defaultOrigins),

		NewsRSSBase:     getEnv("NEWS_RSS_BASE", "https://news.google.com/rss/search"),
		NewsLanguage:    getEnv("NEWS_HL", "pt-BR"),
		NewsRegion:      getEnv("NEWS_GL", "BR"),
		NewsEdition:     getEnv("NEWS_CEID", "BR:pt-419"),
		SearchMaxItems:  getInt("SEARCH_MAX_ITEMS", 20),
		ResolveLinks:    getBool("RESOLVE_LINKS", true),
		AggregatorHosts: getList("AGGREGATOR_HOSTS", []string{"news.google.com"}),

		ResolveTimeout:     getMillis("RESOLVE_TIMEOUT_MS", 4500),
		ResolveConcurrency: getInt("RESOLVE_CONCURRENCY", 3),

		OpenMeteoBase:      getEnv("OPEN_METEO_BASE", "https://api.open-meteo.com/v1/forecast"),
		ClimatempoBase:     getEnv("CLIMATEMPO_BASE", "https://apiadvisor.climatempo.com.br"),
		ClimatempoToken:    getEnv("CLIMATEMPO_TOKEN", ""),
		ClimatempoLocaleID: getEnv("CLIMATEMPO_LOCALE_ID", ""),
		WeatherTimeout:     getMillis("WEATHER_TIMEOUT_MS", 8000),
		WeatherAttempts:    getInt("WEATHER_ATTEMPTS", 2),
		WeatherRetryPause:  getMillis("WEATHER_RETRY_PAUSE_MS", 250),
		DefaultLat:         getEnv("DEFAULT_LAT", "-22.9068"),
		DefaultLon:         getEnv("DEFAULT_LON", "-43.1729"),
		DefaultPlace:       getEnv("DEFAULT_PLACE", "Rio de Janeiro"),
		DefaultCity:        getEnv("DEFAULT_CITY", "Rio de Janeiro"),
		DefaultState:       getEnv("DEFAULT_STATE", "RJ"),

		CorStage: getEnv("COR_ESTAGIO", ""),
	}

	if path := getEnv("CONFIG_FILE", ""); path != "" {
		file, err := LoadFile(path)
		if err != nil {
			return nil, err
		}
		cfg.applyFile(file)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	log.Printf("Configuration loaded:")
	log.Printf("  Environment: %s", cfg.Environment)
	log.Printf("  APP_PORT: %s", cfg.AppPort)
	log.Printf("  Weather provider: %s", cfg.WeatherProvider())
	log.Printf("  Allowed origins: %s", strings.Join(cfg.AllowedOrigins, ", "))

	return cfg, nil
}

func (c *Config) Validate() error {
	port, err := strconv.Atoi(c.AppPort)
	if err != nil || port < 1 || port > 65535 {
		return ErrInvalidPort
	}
	if c.SearchMaxItems < 1 || c.SearchMaxItems > 100 {
		return ErrInvalidMaxItems
	}
	if c.ResolveConcurrency < 1 {
		return ErrInvalidConcurrency
	}
	if c.WeatherAttempts < 1 {
		return ErrInvalidAttempts
	}
	if c.ResolveTimeout <= 0 || c.WeatherTimeout <= 0 || c.WeatherRetryPause < 0 {
		return ErrInvalidTimeout
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return ErrInvalidLogLevel
	}
	return nil
}

// WeatherProvider names the provider selected by the presence of a token.
func (c *Config) WeatherProvider() string {
	if c.ClimatempoToken != "" {
		return "climatempo"
	}
	return "open-meteo"
}

// CorStageLevel returns the COR stage clamped to 1..5. Unset or non-numeric values read as 1.
func (c *Config) CorStageLevel() int {
	n, err := strconv.Atoi(strings.TrimSpace(c.CorStage))
	if err != nil {
		return 1
	}
	return min(max(n, 1), 5)
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getInt(key string, fallback int) int {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		log.Printf("Warning: %s=%q is not a number, using %d", key, value, fallback)
		return fallback
	}
	return n
}

func getBool(key string, fallback bool) bool {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	b, err := strconv.ParseBool(strings.TrimSpace(value))
	if err != nil {
		log.Printf("Warning: %s=%q is not a boolean, using %t", key, value, fallback)
		return fallback
	}
	return b
}

func getMillis(key string, fallback int) time.Duration {
	return time.Duration(getInt(key, fallback)) * time.Millisecond
}

func getList(key string, fallback []string) []string {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	return splitList(value)
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

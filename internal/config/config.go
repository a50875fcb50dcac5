package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	LogLevel    string
	Environment string
	CORSOrigins string

	ServiceName    string
	ServiceVersion string

	SheetID       string
	SheetName     string
	SheetsBaseURL string

	YouTubeAPIKey  string
	ChannelID      string
	YouTubeBaseURL string

	UpstreamTimeout time.Duration
	CacheTTL        time.Duration
	RedisURL        string

	RateLimitPerMinute int
	StrictDates        bool
}

// Load reads configuration from the environment. A .env file in the working
// directory is applied first when present; real environment variables win.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Port:        getEnv("PORT", "5000"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		Environment: getEnv("ENVIRONMENT", "development"),
		CORSOrigins: getEnv("CORS_ORIGINS", "*"),

		ServiceName:    getEnv("SERVICE_NAME", "youtube-dashboard"),
		ServiceVersion: getEnv("SERVICE_VERSION", "1.0"),

		SheetID:       getEnv("GOOGLE_SHEET_ID", ""),
		SheetName:     getEnv("SHEET_NAME", "Sheet1"),
		SheetsBaseURL: getEnv("SHEETS_BASE_URL", "https://docs.google.com"),

		YouTubeAPIKey:  getEnv("YOUTUBE_API_KEY", ""),
		ChannelID:      getEnv("YOUTUBE_CHANNEL_ID", ""),
		YouTubeBaseURL: getEnv("YOUTUBE_BASE_URL", "https://www.googleapis.com/youtube/v3"),

		UpstreamTimeout: getDuration("UPSTREAM_TIMEOUT", 10*time.Second),
		CacheTTL:        getDuration("CACHE_TTL", 300*time.Second),
		RedisURL:        getEnv("REDIS_URL", ""),

		RateLimitPerMinute: getInt("RATE_LIMIT_PER_MINUTE", 120),
		StrictDates:        getBool("STRICT_DATES", true),
	}
}

// Warnings lists settings that leave the dashboard without data. None of them
// stop the server: readers degrade to empty results.
func (c *Config) Warnings() []string {
	var w []string
	if c.SheetID == "" {
		w = append(w, "GOOGLE_SHEET_ID is not set, sheet rows will be empty")
	}
	if c.YouTubeAPIKey == "" {
		w = append(w, "YOUTUBE_API_KEY is not set, channel and view statistics will be zero")
	}
	if c.ChannelID == "" {
		w = append(w, "YOUTUBE_CHANNEL_ID is not set, channel statistics will be zero")
	}
	return w
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	n, err := strconv.Atoi(os.Getenv(key))
	if err != nil || n < 0 {
		return fallback
	}
	return n
}

func getBool(key string, fallback bool) bool {
	b, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return b
}

// getDuration accepts Go duration strings ("90s", "5m") or a bare number of seconds.
func getDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	if d, err := time.ParseDuration(v); err == nil && d > 0 {
		return d
	}
	if n, err := strconv.Atoi(v); err == nil && n > 0 {
		return time.Duration(n) * time.Second
	}
	return fallback
}

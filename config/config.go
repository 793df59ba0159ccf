package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	PostgresHost     string
	PostgresPort     string
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	PostgresSSLMode  string

	// MaxConcurrency bounds how many sources scrape at once. 1 (the
	// default) means strictly sequential, which also keeps headless
	// browser memory usage flat.
	MaxConcurrency int
	// SourceDelayMs is the minimum gap between source starts, to stay a
	// reasonable network citizen toward third-party sites.
	SourceDelayMs int

	StaticTimeout   time.Duration
	HeadlessTimeout time.Duration
	SettleDelay     time.Duration

	StaticUserAgent  string
	BrowserUserAgent string

	SourcesPath   string // optional sources.yaml overriding the built-in registry
	ChromeBin     string
	CSVOutputPath string // optional CSV export of each run's batch; empty disables
	FlushOnCancel bool
}

// Load reads the .env file and returns a populated Config struct.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] No .env file found, falling back to system env vars")
	}

	return &Config{
		PostgresHost:     getEnv("POSTGRES_HOST", "localhost"),
		PostgresPort:     getEnv("POSTGRES_PORT", "5432"),
		PostgresUser:     getEnv("POSTGRES_USER", "scraper"),
		PostgresPassword: getEnv("POSTGRES_PASSWORD", "scraper123"),
		PostgresDB:       getEnv("POSTGRES_DB", "huskykennel"),
		PostgresSSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),

		MaxConcurrency: getEnvInt("MAX_CONCURRENCY", 1),
		SourceDelayMs:  getEnvInt("SOURCE_DELAY_MS", 2000),

		StaticTimeout:   getEnvDuration("STATIC_TIMEOUT_MS", 15000),
		HeadlessTimeout: getEnvDuration("HEADLESS_TIMEOUT_MS", 30000),
		SettleDelay:     getEnvDuration("SETTLE_DELAY_MS", 2500),

		StaticUserAgent: getEnv("STATIC_USER_AGENT",
			"HuskyKennel-Bot/1.0 (Housing Scraper) - Contact: admin@huskykennel.com"),
		BrowserUserAgent: getEnv("BROWSER_USER_AGENT",
			"Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 "+
				"(KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"),

		SourcesPath:   getEnv("SOURCES_PATH", ""),
		ChromeBin:     getEnv("CHROME_BIN", ""),
		CSVOutputPath: getEnv("CSV_OUTPUT_PATH", ""),
		FlushOnCancel: getEnvBool("FLUSH_ON_CANCEL", false),
	}
}

// DSN returns the PostgreSQL connection string.
func (c *Config) DSN() string {
	return "host=" + c.PostgresHost +
		" port=" + c.PostgresPort +
		" user=" + c.PostgresUser +
		" password=" + c.PostgresPassword +
		" dbname=" + c.PostgresDB +
		" sslmode=" + c.PostgresSSLMode
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		n, err := strconv.Atoi(val)
		if err == nil {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if val := os.Getenv(key); val != "" {
		b, err := strconv.ParseBool(val)
		if err == nil {
			return b
		}
	}
	return fallback
}

func getEnvDuration(key string, fallbackMs int) time.Duration {
	return time.Duration(getEnvInt(key, fallbackMs)) * time.Millisecond
}

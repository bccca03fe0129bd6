package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port    string
	GinMode string

	Store    StoreConfig
	Database DatabaseConfig
	Redis    RedisConfig
	JWT      JWTConfig
	CORS     CORSConfig
	Log      LogConfig

	CSRFAuthKey string
	RateLimit   int
	RateWindow  time.Duration

	SignInDelay     time.Duration
	GuestDelay      time.Duration
	SeedSampleData  bool
	ReminderWorkers int
}

type StoreConfig struct {
	Engine string
	Path   string
	Secret string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type JWTConfig struct {
	Secret string
	TTL    time.Duration
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	File   string
	Level  string
	Stdout bool
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	return &Config{
		Port:    getEnv("PORT", "8080"),
		GinMode: getEnv("GIN_MODE", "release"),
		Store: StoreConfig{
			Engine: strings.ToLower(getEnv("STORE_ENGINE", "sqlite")),
			Path:   getEnv("STORE_PATH", "data/securestore.db"),
			Secret: getEnv("STORE_SECRET", ""),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			Name:     getEnv("DB_NAME", "nutritrack_db"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", ""),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		JWT: JWTConfig{
			Secret: getEnv("JWT_SECRET", "change-me-nutritrack-secret"),
			TTL:    getEnvDuration("JWT_TTL", 30*24*time.Hour),
		},
		CORS: CORSConfig{
			AllowedOrigins: splitList(getEnv("CORS_ORIGINS", "http://localhost:8081,http://localhost:19006")),
		},
		Log: LogConfig{
			File:   getEnv("LOG_FILE", "./logs/app.log"),
			Level:  getEnv("LOG_LEVEL", "info"),
			Stdout: getEnvBool("LOG_STDOUT", false),
		},
		CSRFAuthKey:     getEnv("CSRF_AUTH_KEY", ""),
		RateLimit:       getEnvInt("RATE_LIMIT", 120),
		RateWindow:      getEnvDuration("RATE_WINDOW", time.Minute),
		SignInDelay:     getEnvDuration("SIGNIN_DELAY", 1500*time.Millisecond),
		GuestDelay:      getEnvDuration("GUEST_DELAY", 500*time.Millisecond),
		SeedSampleData:  getEnvBool("SEED_SAMPLE_DATA", true),
		ReminderWorkers: getEnvInt("REMINDER_WORKERS", 3),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		log.Printf("invalid int for %s=%q, using %d", key, raw, defaultValue)
		return defaultValue
	}
	return value
}

func getEnvBool(key string, defaultValue bool) bool {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvDuration accepts Go durations ("90s") or plain milliseconds ("1500").
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	if ms, err := strconv.Atoi(raw); err == nil {
		return time.Duration(ms) * time.Millisecond
	}
	return defaultValue
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

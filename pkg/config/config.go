package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// defaultKeywords is the bilingual keyword set used for the innovation score.
// Overridable via INNOVATION_KEYWORDS (comma separated).
var defaultKeywords = []string{
	"smart", "inteligente", "interativo", "personalizado", "customized",
	"3d", "led", "tech", "digital", "inovador", "diferente", "moderno",
	"aumentada", "sustentável", "sustainable", "ecológico",
}

// Config holds all application configuration
type Config struct {
	Server       ServerConfig
	Database     DatabaseConfig
	Redis        RedisConfig
	Typesense    TypesenseConfig
	Gemini       GeminiConfig
	ScrapeWorker ScrapeWorkerConfig
	Scoring      ScoringConfig
	Ranking      RankingConfig
	Learning     LearningConfig
	OTEL         OTELConfig
	Environment  string
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Host string
	Port int
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// TypesenseConfig holds Typesense configuration
type TypesenseConfig struct {
	URL    string
	APIKey string
}

// GeminiConfig holds configuration for the Google generative model client
type GeminiConfig struct {
	APIKey         string
	Model          string
	RateLimitRPM   int
	RateLimitBurst int
}

// ScrapeWorkerConfig holds configuration for the external listing collector service
type ScrapeWorkerConfig struct {
	BaseURL         string
	IntervalSeconds int
	Keywords        []string
}

// ScoringConfig holds the innovation-score keyword set
type ScoringConfig struct {
	Keywords []string
}

// RankingConfig holds ranking parameters
type RankingConfig struct {
	ResultCap int
}

// LearningConfig holds the online weight-adjustment parameters
type LearningConfig struct {
	LearningRate float64
	ClampMin     float64
	ClampMax     float64
	ClearLedger  bool
}

// OTELConfig holds OpenTelemetry configuration
type OTELConfig struct {
	ServiceName    string
	ServiceVersion string
	Endpoint       string
	Enabled        bool
}

// Load loads configuration from environment variables. A .env file in the
// working directory is honored when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	return &Config{
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
			Port: getEnvAsInt("SERVER_PORT", 8080),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvAsInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Database: getEnv("DB_NAME", "trendia"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnvAsInt("REDIS_PORT", 6379),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		Typesense: TypesenseConfig{
			URL:    getEnv("TYPESENSE_URL", "http://localhost:8108"),
			APIKey: getEnv("TYPESENSE_API_KEY", "xyz"),
		},
		Gemini: GeminiConfig{
			APIKey:         getEnv("GEMINI_API_KEY", ""),
			Model:          getEnv("GEMINI_MODEL", "gemini-1.5-flash"),
			RateLimitRPM:   getEnvAsInt("GEMINI_RATE_LIMIT_RPM", 60),
			RateLimitBurst: getEnvAsInt("GEMINI_RATE_LIMIT_BURST", 5),
		},
		ScrapeWorker: ScrapeWorkerConfig{
			BaseURL:         getEnv("SCRAPE_WORKER_URL", ""),
			IntervalSeconds: getEnvAsInt("SCRAPE_INTERVAL_SECONDS", 21600),
			Keywords:        getEnvAsSlice("SCRAPE_KEYWORDS", []string{"presentes criativos", "lembrancinhas personalizadas"}),
		},
		Scoring: ScoringConfig{
			Keywords: getEnvAsSlice("INNOVATION_KEYWORDS", defaultKeywords),
		},
		Ranking: RankingConfig{
			ResultCap: getEnvAsInt("RANKING_RESULT_CAP", 10),
		},
		Learning: LearningConfig{
			LearningRate: getEnvAsFloat("LEARNING_RATE", 0.05),
			ClampMin:     getEnvAsFloat("LEARNING_CLAMP_MIN", 0.01),
			ClampMax:     getEnvAsFloat("LEARNING_CLAMP_MAX", 0.99),
			ClearLedger:  getEnvAsBool("LEARNING_CLEAR_LEDGER", true),
		},
		OTEL: OTELConfig{
			ServiceName:    getEnv("OTEL_SERVICE_NAME", "trendia"),
			ServiceVersion: getEnv("OTEL_SERVICE_VERSION", "1.0.0"),
			Endpoint:       getEnv("OTEL_ENDPOINT", ""),
			Enabled:        getEnvAsBool("OTEL_ENABLED", false),
		},
		Environment: getEnv("APP_ENV", "development"),
	}, nil
}

// DatabaseDSN returns the PostgreSQL connection string
func (c *DatabaseConfig) DatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode,
	)
}

// RedisAddr returns the Redis address
func (c *RedisConfig) RedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getEnvAsSlice(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		parts := strings.Split(value, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				out = append(out, trimmed)
			}
		}
		if len(out) > 0 {
			return out
		}
	}
	return defaultValue
}

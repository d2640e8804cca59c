package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	PostgreSQL PostgreSQLConfig
	Server     ServerConfig
	Auth       AuthConfig
	LLM        LLMConfig
	Cache      CacheConfig
	Match      MatchConfig
	Logging    LoggingConfig
}

// PostgreSQLConfig holds PostgreSQL database configuration
type PostgreSQLConfig struct {
	DSN                string
	Host               string
	Port               int
	User               string
	Password           string
	Database           string
	SSLMode            string
	MaxConnections     int
	MaxIdleConnections int
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port           int
	Host           string
	GinMode        string
	AllowedOrigins string
}

// AuthConfig holds JWT and password hashing configuration
type AuthConfig struct {
	JWTSecret       string
	TokenTTLHours   int
	BcryptCost      int
	CookieName      string
	SecureCookie    bool
	CookieMaxAgeSec int
}

// LLMConfig holds configuration for the OpenAI-compatible chat endpoint (Groq)
type LLMConfig struct {
	APIKey      string
	APIBase     string
	ChatModel   string
	Temperature float64
	MaxTokens   int
	Timeout     int
	Enabled     bool
}

// CacheConfig holds the extraction cache configuration
type CacheConfig struct {
	Path string
}

// MatchConfig holds matching/recommendation limits
type MatchConfig struct {
	DefaultTopN    int
	MaxTopN        int
	ReasonMaxChars int
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string
	Format string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file (optional)
	_ = godotenv.Load()

	cfg := &Config{
		PostgreSQL: PostgreSQLConfig{
			DSN:                getEnv("DATABASE_URL", getEnv("POSTGRESQL_URI", getEnv("PG_DSN", ""))),
			Host:               getEnv("PG_HOST", "localhost"),
			Port:               getEnvAsInt("PG_PORT", 5432),
			User:               getEnv("PG_USER", "postgres"),
			Password:           getEnv("PG_PASSWORD", ""),
			Database:           getEnv("PG_DATABASE", "flatwalay"),
			SSLMode:            getEnv("PG_SSLMODE", "disable"),
			MaxConnections:     getEnvAsInt("PG_MAX_CONNECTIONS", 25),
			MaxIdleConnections: getEnvAsInt("PG_MAX_IDLE_CONNECTIONS", 5),
		},
		Server: ServerConfig{
			Port:           getEnvAsInt("SERVER_PORT", 8080),
			Host:           getEnv("SERVER_HOST", "0.0.0.0"),
			GinMode:        getEnv("GIN_MODE", "release"),
			AllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000"),
		},
		Auth: AuthConfig{
			JWTSecret:       getEnv("SECRET_KEY", ""),
			TokenTTLHours:   getEnvAsInt("TOKEN_TTL_HOURS", 72),
			BcryptCost:      getEnvAsInt("BCRYPT_COST", 12),
			CookieName:      getEnv("AUTH_COOKIE_NAME", "access_token"),
			SecureCookie:    getEnvAsBool("AUTH_COOKIE_SECURE", false),
			CookieMaxAgeSec: getEnvAsInt("AUTH_COOKIE_MAX_AGE", 72*3600),
		},
		LLM: LLMConfig{
			APIKey:      getEnv("GROQ_API_KEY", ""),
			APIBase:     getEnv("GROQ_API_BASE", "https://api.groq.com/openai/v1"),
			ChatModel:   getEnv("GROQ_CHAT_MODEL", "openai/gpt-oss-120b"),
			Temperature: getEnvAsFloat("GROQ_CHAT_TEMPERATURE", 0.0),
			MaxTokens:   getEnvAsInt("GROQ_CHAT_MAX_TOKENS", 2048),
			Timeout:     getEnvAsInt("GROQ_TIMEOUT", 30),
			Enabled:     getEnv("GROQ_API_KEY", "") != "",
		},
		Cache: CacheConfig{
			Path: getEnv("PROFILE_CACHE_PATH", "profile_cache.db"),
		},
		Match: MatchConfig{
			DefaultTopN:    getEnvAsInt("MATCH_DEFAULT_TOP_N", 5),
			MaxTopN:        getEnvAsInt("MATCH_MAX_TOP_N", 50),
			ReasonMaxChars: getEnvAsInt("MATCH_REASON_MAX_CHARS", 500),
		},
		Logging: LoggingConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
	}

	if cfg.Auth.JWTSecret == "" {
		return nil, fmt.Errorf("SECRET_KEY is required")
	}
	if cfg.Auth.BcryptCost < 10 || cfg.Auth.BcryptCost > 14 {
		return nil, fmt.Errorf("bcrypt cost out of range: %d (must be 10-14)", cfg.Auth.BcryptCost)
	}

	return cfg, nil
}

// GetPostgreSQLDSN returns PostgreSQL connection string
func (c *Config) GetPostgreSQLDSN() string {
	if c.PostgreSQL.DSN != "" {
		return c.PostgreSQL.DSN
	}

	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.PostgreSQL.Host,
		c.PostgreSQL.Port,
		c.PostgreSQL.User,
		c.PostgreSQL.Password,
		c.PostgreSQL.Database,
		c.PostgreSQL.SSLMode,
	)
}

// Helper functions

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid integer value for %s, using default %d", key, defaultValue)
		return defaultValue
	}
	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		log.Printf("Warning: Invalid float value for %s, using default %f", key, defaultValue)
		return defaultValue
	}
	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid boolean value for %s, using default %v", key, defaultValue)
		return defaultValue
	}
	return value
}

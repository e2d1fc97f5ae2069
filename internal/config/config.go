// Package config provides configuration for the application
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Database DatabaseConfig
	Server   ServerConfig
	Logging  LoggingConfig
	CORS     CORSConfig
	JWT      JWTConfig
	AI       AIConfig
	Scoring  ScoringConfig
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
}

// ServerConfig holds server settings
type ServerConfig struct {
	Port int
}

// LoggingConfig holds logging settings
type LoggingConfig struct {
	Level string
}

// CORSConfig holds CORS settings
type CORSConfig struct {
	AllowedOrigins []string
}

// JWTConfig holds JWT settings for access token validation
type JWTConfig struct {
	Secret            string
	AccessTokenExpiry time.Duration
}

// AIConfig holds settings for the external AI judgment provider
type AIConfig struct {
	APIKey  string
	APIURL  string
	Model   string
	Timeout time.Duration
}

// ScoringConfig holds scoring engine settings
type ScoringConfig struct {
	// FallbackScore, when non-nil, substitutes missing linguistic
	// sub-scores instead of failing the submission. Disabled unless
	// SCORING_FALLBACK_SCORE is set.
	FallbackScore *int
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file (env vars may also be set directly)
	_ = godotenv.Load()

	cfg := &Config{}

	// Database configuration
	dbHost := os.Getenv("DB_HOST")
	if dbHost == "" {
		return nil, fmt.Errorf("DB_HOST is required")
	}
	cfg.Database.Host = dbHost

	dbPortStr := os.Getenv("DB_PORT")
	if dbPortStr == "" {
		return nil, fmt.Errorf("DB_PORT is required")
	}
	dbPort, err := strconv.Atoi(dbPortStr)
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}
	cfg.Database.Port = dbPort

	dbUser := os.Getenv("DB_USER")
	if dbUser == "" {
		return nil, fmt.Errorf("DB_USER is required")
	}
	cfg.Database.User = dbUser

	dbPassword := os.Getenv("DB_PASSWORD")
	if dbPassword == "" {
		return nil, fmt.Errorf("DB_PASSWORD is required")
	}
	cfg.Database.Password = dbPassword

	dbName := os.Getenv("DB_NAME")
	if dbName == "" {
		return nil, fmt.Errorf("DB_NAME is required")
	}
	cfg.Database.DBName = dbName

	// Server configuration
	serverPortStr := os.Getenv("SERVER_PORT")
	if serverPortStr == "" {
		serverPortStr = "8080" // default port
	}
	serverPort, err := strconv.Atoi(serverPortStr)
	if err != nil {
		return nil, fmt.Errorf("invalid SERVER_PORT: %w", err)
	}
	cfg.Server.Port = serverPort

	// Logging configuration
	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info" // default level
	}
	cfg.Logging.Level = logLevel

	// JWT configuration
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	cfg.JWT.Secret = jwtSecret

	accessExpiryStr := os.Getenv("JWT_ACCESS_TOKEN_EXPIRY")
	if accessExpiryStr == "" {
		accessExpiryStr = "15m"
	}
	accessExpiry, err := time.ParseDuration(accessExpiryStr)
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_ACCESS_TOKEN_EXPIRY: %w", err)
	}
	cfg.JWT.AccessTokenExpiry = accessExpiry

	// AI provider configuration
	aiKey := os.Getenv("AI_API_KEY")
	if aiKey == "" {
		return nil, fmt.Errorf("AI_API_KEY is required")
	}
	cfg.AI.APIKey = aiKey

	cfg.AI.APIURL = os.Getenv("AI_API_URL")
	if cfg.AI.APIURL == "" {
		cfg.AI.APIURL = "https://api.openai.com/v1/chat/completions"
	}

	cfg.AI.Model = os.Getenv("AI_MODEL")
	if cfg.AI.Model == "" {
		cfg.AI.Model = "gpt-4o-mini"
	}

	aiTimeoutStr := os.Getenv("AI_TIMEOUT")
	if aiTimeoutStr == "" {
		aiTimeoutStr = "30s"
	}
	aiTimeout, err := time.ParseDuration(aiTimeoutStr)
	if err != nil {
		return nil, fmt.Errorf("invalid AI_TIMEOUT: %w", err)
	}
	cfg.AI.Timeout = aiTimeout

	// Scoring configuration
	if fallbackStr := os.Getenv("SCORING_FALLBACK_SCORE"); fallbackStr != "" {
		fallback, err := strconv.Atoi(fallbackStr)
		if err != nil {
			return nil, fmt.Errorf("invalid SCORING_FALLBACK_SCORE: %w", err)
		}
		if fallback < 0 || fallback > 100 {
			return nil, fmt.Errorf("SCORING_FALLBACK_SCORE must be between 0 and 100")
		}
		cfg.Scoring.FallbackScore = &fallback
	}

	// CORS configuration
	corsOrigins := os.Getenv("CORS_ALLOWED_ORIGINS")
	if corsOrigins == "" {
		// Default to allow all origins if not specified (for development)
		cfg.CORS.AllowedOrigins = []string{"*"}
	} else {
		// Parse comma-separated origins
		origins := strings.Split(corsOrigins, ",")
		cfg.CORS.AllowedOrigins = make([]string, 0, len(origins))
		for _, origin := range origins {
			origin = strings.TrimSpace(origin)
			if origin != "" {
				cfg.CORS.AllowedOrigins = append(cfg.CORS.AllowedOrigins, origin)
			}
		}
		// If no valid origins found, default to allow all
		if len(cfg.CORS.AllowedOrigins) == 0 {
			cfg.CORS.AllowedOrigins = []string{"*"}
		}
	}

	return cfg, nil
}

// DSN returns the database connection string
func (c *Config) DSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true&charset=utf8mb4",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.DBName,
	)
}

package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App       AppConfig
	API       APIConfig
	Interview InterviewConfig
	Session   SessionConfig
	Database  DatabaseConfig
	Redis     RedisConfig
}

// AppConfig holds application configuration
type AppConfig struct {
	Port             int
	Env              string
	LogLevel         string
	AllowedOrigins   []string
	AuditGateEnabled bool
}

// APIConfig describes the HR REST backend
type APIConfig struct {
	BaseURL string
	Retries int
	Timeout time.Duration
}

// InterviewConfig describes the independently hosted recruitment API
type InterviewConfig struct {
	BaseURL string
	Retries int
	Timeout time.Duration
}

// SessionConfig controls the portal session cookie and token persistence
type SessionConfig struct {
	Secret          string
	Store           string // memory, postgres, redis
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
	CookieSecure    bool
	PurgeInterval   time.Duration
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	Prefix   string
}

const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"
	StoreRedis    = "redis"
)

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Warn("No .env file loaded, using process environment")
	}

	config := &Config{}

	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}
	auditGate, err := strconv.ParseBool(getEnv("AUDIT_GATE_ENABLED", "false"))
	if err != nil {
		return nil, fmt.Errorf("invalid AUDIT_GATE_ENABLED: %w", err)
	}
	config.App = AppConfig{
		Port:             appPort,
		Env:              getEnv("APP_ENV", "development"),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		AllowedOrigins:   getEnvSlice("CORS_ALLOWED_ORIGINS", "http://localhost:3000"),
		AuditGateEnabled: auditGate,
	}

	// Backend API configuration
	apiRetries, err := strconv.Atoi(getEnv("API_RETRIES", "2"))
	if err != nil {
		return nil, fmt.Errorf("invalid API_RETRIES: %w", err)
	}
	apiTimeout, err := time.ParseDuration(getEnv("API_TIMEOUT", "30s"))
	if err != nil {
		return nil, fmt.Errorf("invalid API_TIMEOUT: %w", err)
	}
	config.API = APIConfig{
		BaseURL: getEnv("API_BASE_URL", "http://localhost:5000"),
		Retries: apiRetries,
		Timeout: apiTimeout,
	}

	interviewRetries, err := strconv.Atoi(getEnv("INTERVIEW_API_RETRIES", "1"))
	if err != nil {
		return nil, fmt.Errorf("invalid INTERVIEW_API_RETRIES: %w", err)
	}
	config.Interview = InterviewConfig{
		BaseURL: getEnv("INTERVIEW_API_BASE_URL", "https://ai-interviewer-py.onrender.com/"),
		Retries: interviewRetries,
		Timeout: apiTimeout,
	}

	// Session configuration
	accessTTL, err := time.ParseDuration(getEnv("ACCESS_TOKEN_TTL", "168h"))
	if err != nil {
		return nil, fmt.Errorf("invalid ACCESS_TOKEN_TTL: %w", err)
	}
	refreshTTL, err := time.ParseDuration(getEnv("REFRESH_TOKEN_TTL", "720h"))
	if err != nil {
		return nil, fmt.Errorf("invalid REFRESH_TOKEN_TTL: %w", err)
	}
	purgeInterval, err := time.ParseDuration(getEnv("SESSION_PURGE_INTERVAL", "1h"))
	if err != nil {
		return nil, fmt.Errorf("invalid SESSION_PURGE_INTERVAL: %w", err)
	}
	config.Session = SessionConfig{
		Secret:          getEnv("SESSION_SECRET", ""),
		Store:           getEnv("TOKEN_STORE", StoreMemory),
		AccessTokenTTL:  accessTTL,
		RefreshTokenTTL: refreshTTL,
		CookieSecure:    config.App.Env == "production",
		PurgeInterval:   purgeInterval,
	}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}
	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "hris_portal"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	// Redis configuration
	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}
	config.Redis = RedisConfig{
		Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
		Password: getEnv("REDIS_PASSWORD", ""),
		DB:       redisDB,
		Prefix:   getEnv("REDIS_PREFIX", "portal:session:"),
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Session.Secret == "" {
		return fmt.Errorf("SESSION_SECRET is required")
	}
	if c.API.BaseURL == "" {
		return fmt.Errorf("API_BASE_URL is required")
	}
	if c.API.Retries < 0 || c.Interview.Retries < 0 {
		return fmt.Errorf("retry counts must not be negative")
	}
	switch c.Session.Store {
	case StoreMemory, StoreRedis:
	case StorePostgres:
		if c.Database.Password == "" {
			return fmt.Errorf("DB_PASSWORD is required when TOKEN_STORE=postgres")
		}
	default:
		return fmt.Errorf("unsupported TOKEN_STORE %q", c.Session.Store)
	}
	if c.Session.AccessTokenTTL <= 0 || c.Session.RefreshTokenTTL <= 0 {
		return fmt.Errorf("token TTLs must be positive")
	}
	return nil
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// SlogLevel maps LOG_LEVEL to a slog level
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.App.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvSlice(env, fallback string) []string {
	value := getEnv(env, fallback)
	if value == "" {
		return []string{}
	}
	var result []string
	for _, part := range strings.Split(value, ",") {
		if p := strings.TrimSpace(part); p != "" {
			result = append(result, p)
		}
	}
	return result
}

package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration loaded from environment variables.
// It is the single source of truth for runtime parameters.
type Config struct {
	Port string
	Env  string

	Mongo    MongoConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Keycloak KeycloakConfig
	CORS     CORSConfig
}

// MongoConfig contains MongoDB connection parameters.
type MongoConfig struct {
	URI      string
	Database string
	Timeout  time.Duration
}

// RedisConfig contains Redis connection parameters.
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// JWTConfig contains bearer-token validation parameters. Tokens are verified
// as HS256 against Secret with matching Issuer and Audience claims. Because
// login proxies tokens issued by Keycloak, the realm client must be configured
// to sign access tokens with HS256 using this same secret and to emit the same
// issuer and audience, or every proxied token will fail validation.
type JWTConfig struct {
	Secret   string
	Issuer   string
	Audience string
	TTL      time.Duration
}

// KeycloakConfig contains credentials for the external identity provider.
type KeycloakConfig struct {
	BaseURL      string
	Realm        string
	ClientID     string
	ClientSecret string
}

// CORSConfig contains the allowed origins for browser clients.
type CORSConfig struct {
	AllowedOrigins []string
}

// Load reads configuration from environment variables. If a .env file exists
// in the working directory, it will be loaded first. It returns a populated
// Config or an error with a human-friendly message.
func Load() (*Config, error) {
	// Load .env if present; ignore error if file is missing so that production
	// environments relying solely on real environment variables keep working.
	_ = godotenv.Load()

	cfg := &Config{}

	// Server
	cfg.Port = getEnv("PORT", "8080")
	cfg.Env = getEnv("ENV", "development")

	// MongoDB
	cfg.Mongo = MongoConfig{
		URI:      getEnv("MONGO_URI", ""),
		Database: getEnv("MONGO_DATABASE", "catalog"),
	}
	var err error
	if cfg.Mongo.Timeout, err = parseDurationEnv("MONGO_TIMEOUT", "10s"); err != nil {
		return nil, fmt.Errorf("invalid MONGO_TIMEOUT: %w", err)
	}

	// Redis
	cfg.Redis = RedisConfig{
		Host:     getEnv("REDIS_HOST", ""),
		Port:     getEnv("REDIS_PORT", "6379"),
		Password: getEnv("REDIS_PASSWORD", ""),
		DB:       getEnvInt("REDIS_DB", 0),
	}

	// JWT
	cfg.JWT = JWTConfig{
		Secret:   getEnv("JWT_SECRET", ""),
		Issuer:   getEnv("JWT_ISSUER", "catalog-api"),
		Audience: getEnv("JWT_AUDIENCE", "catalog-admin"),
	}
	if cfg.JWT.TTL, err = parseDurationEnv("JWT_TTL", "1h"); err != nil {
		return nil, fmt.Errorf("invalid JWT_TTL: %w", err)
	}

	// Keycloak
	cfg.Keycloak = KeycloakConfig{
		BaseURL:      getEnv("KEYCLOAK_BASE_URL", ""),
		Realm:        getEnv("KEYCLOAK_REALM", "shopgrid"),
		ClientID:     getEnv("KEYCLOAK_CLIENT_ID", ""),
		ClientSecret: getEnv("KEYCLOAK_CLIENT_SECRET", ""),
	}

	// CORS
	cfg.CORS = CORSConfig{
		AllowedOrigins: splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000")),
	}

	// Basic validation for required parameters.
	if cfg.Mongo.URI == "" {
		return nil, errors.New("mongo configuration incomplete: ensure MONGO_URI is set")
	}
	if cfg.JWT.Secret == "" {
		return nil, errors.New("JWT_SECRET must be set for authentication")
	}
	if cfg.Keycloak.BaseURL == "" || cfg.Keycloak.ClientID == "" {
		return nil, errors.New("keycloak configuration incomplete: ensure KEYCLOAK_BASE_URL and KEYCLOAK_CLIENT_ID are set")
	}

	return cfg, nil
}

// getEnv returns the value of an environment variable or a default if empty.
func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// getEnvInt returns the value of an environment variable as an integer or a default if empty/invalid.
func getEnvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return i
}

// parseDurationEnv reads an environment variable and parses it as time.Duration.
// If the variable is empty, it falls back to the provided default value.
func parseDurationEnv(key, def string) (time.Duration, error) {
	raw := getEnv(key, def)
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, err
	}
	if d < 0 {
		return 0, fmt.Errorf("duration must be >= 0")
	}
	return d, nil
}

// splitCSV splits a comma-separated value, trimming whitespace and dropping empties.
func splitCSV(raw string) []string {
	var out []string
	for _, p := range strings.Split(raw, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

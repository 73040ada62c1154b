package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Store driver names.
const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"
	StoreRedis    = "redis"
)

// Sync transport names.
const (
	TransportEnvelope = "envelope"
	TransportKafka    = "kafka"
	TransportLoopback = "loopback"
	TransportRedis    = "redis"
)

// Config holds all application configuration loaded from environment
// variables. It is the single source of truth for runtime parameters.
type Config struct {
	Port      string
	Env       string
	JWTSecret string

	Auth   AuthConfig
	Store  StoreConfig
	DB     DatabaseConfig
	Redis  RedisConfig
	Kafka  KafkaConfig
	Worker WorkerConfig
}

// AuthConfig contains the static login credentials. Credentials are compared
// in plaintext; there is deliberately no real security model here.
type AuthConfig struct {
	AdminUsername    string
	AdminPassword    string
	CustomerUsername string
	CustomerPassword string
}

// StoreConfig selects the durable store backend and the sync transports.
type StoreConfig struct {
	Driver     string
	Transports []string
}

// DatabaseConfig contains PostgreSQL connection parameters for the postgres
// store driver.
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

// DSN returns the postgres connection string.
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		url.QueryEscape(c.User), url.QueryEscape(c.Password), c.Host, c.Port, c.Name, c.SSLMode,
	)
}

// RedisConfig contains Redis connection parameters.
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// KafkaConfig contains broker addresses for the optional kafka transport.
type KafkaConfig struct {
	Brokers []string
}

// WorkerConfig contains interval configuration for background workers.
type WorkerConfig struct {
	PromoExpiryInterval time.Duration
	LowStockInterval    time.Duration
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
	cfg.JWTSecret = getEnv("JWT_SECRET", "")

	// Static credentials
	cfg.Auth = AuthConfig{
		AdminUsername:    getEnv("ADMIN_USERNAME", "admin"),
		AdminPassword:    getEnv("ADMIN_PASSWORD", "admin123"),
		CustomerUsername: getEnv("CUSTOMER_USERNAME", "customer"),
		CustomerPassword: getEnv("CUSTOMER_PASSWORD", "customer123"),
	}

	// Store backend and sync transports
	cfg.Store = StoreConfig{
		Driver:     getEnv("STORE_DRIVER", StoreMemory),
		Transports: splitList(getEnv("SYNC_TRANSPORTS", defaultTransports(getEnv("STORE_DRIVER", StoreMemory)))),
	}
	switch cfg.Store.Driver {
	case StoreMemory, StorePostgres, StoreRedis:
	default:
		return nil, fmt.Errorf("unknown STORE_DRIVER %q", cfg.Store.Driver)
	}
	for _, t := range cfg.Store.Transports {
		switch t {
		case TransportEnvelope, TransportKafka, TransportLoopback, TransportRedis:
		default:
			return nil, fmt.Errorf("unknown sync transport %q", t)
		}
	}

	// Database (postgres store driver)
	cfg.DB = DatabaseConfig{
		Host:     getEnv("DB_HOST", ""),
		Port:     getEnv("DB_PORT", "5432"),
		User:     getEnv("DB_USER", ""),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", ""),
		SSLMode:  getEnv("DB_SSLMODE", "disable"),
	}

	// Redis
	cfg.Redis = RedisConfig{
		Host:     getEnv("REDIS_HOST", "redis"),
		Port:     getEnv("REDIS_PORT", "6379"),
		Password: getEnv("REDIS_PASSWORD", ""),
		DB:       getEnvInt("REDIS_DB", 0),
	}

	// Kafka
	cfg.Kafka = KafkaConfig{
		Brokers: splitList(getEnv("KAFKA_BROKERS", "localhost:9092")),
	}

	// Workers (durations)
	var err error
	if cfg.Worker.PromoExpiryInterval, err = parseDurationEnv("PROMO_EXPIRY_INTERVAL", "1h"); err != nil {
		return nil, fmt.Errorf("invalid PROMO_EXPIRY_INTERVAL: %w", err)
	}
	if cfg.Worker.LowStockInterval, err = parseDurationEnv("LOW_STOCK_INTERVAL", "15m"); err != nil {
		return nil, fmt.Errorf("invalid LOW_STOCK_INTERVAL: %w", err)
	}

	if cfg.Store.Driver == StorePostgres && (cfg.DB.Host == "" || cfg.DB.User == "" || cfg.DB.Name == "") {
		return nil, errors.New("database configuration incomplete: ensure DB_HOST, DB_USER, and DB_NAME are set")
	}

	// Validate JWT_SECRET
	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET must be set for authentication")
	}

	return cfg, nil
}

// defaultTransports picks sensible sync paths per store backend: redis gets
// both redundant cross-process paths, everything else stays in-process.
func defaultTransports(driver string) string {
	switch driver {
	case StoreRedis:
		return "redis,envelope"
	case StorePostgres:
		return "envelope"
	default:
		return "loopback"
	}
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

// splitList splits a comma-separated env value, trimming blanks.
func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
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

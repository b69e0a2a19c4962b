package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config aggregates runtime configuration for the service.
type Config struct {
	App       AppConfig
	Postgres  PostgresConfig
	Redis     RedisConfig
	Logger    LoggerConfig
	Auth      AuthConfig
	Directory DirectoryConfig
	Blob      BlobConfig
}

// AppConfig controls server level behavior.
type AppConfig struct {
	Name                  string
	Env                   string
	Host                  string
	Port                  string
	Version               string
	RequestTimeoutSeconds int
}

// PostgresConfig holds DB connection values.
type PostgresConfig struct {
	DSN            string
	MaxConns       int32
	MinConns       int32
	EnsureSchema   bool
	ConnMaxIdleSec int32
	ConnMaxLifeSec int32
}

// RedisConfig holds Redis connection values.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	// UseCache switches the table cache backend from the in-process map
	// to Redis.
	UseCache bool
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string
}

// AuthConfig defines authentication parameters.
type AuthConfig struct {
	JWTSecret             string
	AccessTokenTTLMinutes int
	BcryptCost            int
}

// DirectoryConfig carries workflow tunables for the supplier directory.
type DirectoryConfig struct {
	// CacheTTLSeconds is the read-through table cache lifetime.
	CacheTTLSeconds int
	// PresenceThrottleSeconds is the minimum gap between remote heartbeat
	// writes for one session.
	PresenceThrottleSeconds int
	// PresenceWindowSeconds is the liveness window for the online set.
	PresenceWindowSeconds int
	// RequiredDocuments lists mandatory attachment slots for supplier
	// submissions. Empty disables the attachment requirement.
	RequiredDocuments []string
	// DeleteConfirmPhrase must accompany bulk supplier deletion requests.
	DeleteConfirmPhrase string
}

// BlobConfig configures uploaded-document storage.
type BlobConfig struct {
	Dir     string
	BaseURL string
}

// Load reads configuration from environment variables, applying defaults where possible.
func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	maxConns := int32(getEnvAsInt("POSTGRES_MAX_CONNS", 10))
	minConns := int32(getEnvAsInt("POSTGRES_MIN_CONNS", 2))
	ensureSchema := getEnvAsBool("POSTGRES_ENSURE_SCHEMA", true)
	connMaxIdle := int32(getEnvAsInt("POSTGRES_CONN_MAX_IDLE_SECONDS", 30))
	connMaxLife := int32(getEnvAsInt("POSTGRES_CONN_MAX_LIFE_SECONDS", 300))

	cfg := &Config{
		App: AppConfig{
			Name:                  getEnv("APP_NAME", "supplier-directory"),
			Env:                   getEnv("APP_ENV", "development"),
			Host:                  getEnv("APP_HOST", "0.0.0.0"),
			Port:                  getEnv("APP_PORT", "8080"),
			Version:               getEnv("APP_VERSION", "dev"),
			RequestTimeoutSeconds: getEnvAsInt("HTTP_REQUEST_TIMEOUT_SECONDS", 30),
		},
		Postgres: PostgresConfig{
			DSN:            os.Getenv("POSTGRES_DSN"),
			MaxConns:       maxConns,
			MinConns:       minConns,
			EnsureSchema:   ensureSchema,
			ConnMaxIdleSec: connMaxIdle,
			ConnMaxLifeSec: connMaxLife,
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "127.0.0.1:6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       redisDB,
			UseCache: getEnvAsBool("REDIS_USE_CACHE", false),
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Auth: AuthConfig{
			JWTSecret:             getEnv("AUTH_JWT_SECRET", "dev-secret"),
			AccessTokenTTLMinutes: getEnvAsInt("AUTH_ACCESS_TOKEN_TTL_MINUTES", 60),
			BcryptCost:            getEnvAsInt("AUTH_BCRYPT_COST", 12),
		},
		Directory: DirectoryConfig{
			CacheTTLSeconds:         getEnvAsInt("DIRECTORY_CACHE_TTL_SECONDS", 300),
			PresenceThrottleSeconds: getEnvAsInt("DIRECTORY_PRESENCE_THROTTLE_SECONDS", 60),
			PresenceWindowSeconds:   getEnvAsInt("DIRECTORY_PRESENCE_WINDOW_SECONDS", 300),
			RequiredDocuments:       getEnvAsList("DIRECTORY_REQUIRED_DOCUMENTS", nil),
			DeleteConfirmPhrase:     getEnv("DIRECTORY_DELETE_CONFIRM_PHRASE", "DELETE"),
		},
		Blob: BlobConfig{
			Dir:     getEnv("BLOB_DIR", "uploads"),
			BaseURL: getEnv("BLOB_BASE_URL", "/files"),
		},
	}

	return cfg, nil
}

// Addr returns the HTTP bind address.
func (a AppConfig) Addr() string {
	return fmt.Sprintf("%s:%s", a.Host, a.Port)
}

// RequestTimeout returns the configured request timeout duration.
func (a AppConfig) RequestTimeout() time.Duration {
	if a.RequestTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(a.RequestTimeoutSeconds) * time.Second
}

// CacheTTL returns the table cache lifetime.
func (d DirectoryConfig) CacheTTL() time.Duration {
	return time.Duration(d.CacheTTLSeconds) * time.Second
}

// PresenceThrottle returns the heartbeat throttle interval.
func (d DirectoryConfig) PresenceThrottle() time.Duration {
	return time.Duration(d.PresenceThrottleSeconds) * time.Second
}

// PresenceWindow returns the liveness window for the online set.
func (d DirectoryConfig) PresenceWindow() time.Duration {
	return time.Duration(d.PresenceWindowSeconds) * time.Second
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvAsBool(key string, fallback bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvAsList(key string, fallback []string) []string {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parts := strings.Split(val, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	localDBURL     = "postgres://postgres:postgres@db:5432/jala_match?sslmode=disable"
	localJWTSecret = "local-jwt-secret"
)

type Config struct {
	HTTPAddr    string
	DBURL       string
	Migrate     bool
	Environment string
	LogLevel    string

	DBMaxConns        int
	DBMinConns        int
	DBMaxConnLifetime time.Duration
	DBMaxConnIdleTime time.Duration

	JWTSecret string
	JWTTTL    time.Duration

	AIServiceURL     string
	AIServiceTimeout time.Duration

	RedisAddr     string
	RedisPassword string
	CacheTTL      time.Duration

	RateLimitRPS   int
	RateLimitBurst int

	CatalogSeedPath string
	AdminEmail      string
	AdminPassword   string

	DeletionSchedule      string
	NotificationQueueSize int
}

// Load reads the environment, after an optional .env file in the working directory.
// DB_URL and JWT_SECRET only fall back to development values when ENVIRONMENT is local.
func Load() Config {
	_ = godotenv.Load()

	env := getEnv("ENVIRONMENT", "local")
	local := env == "local"

	cfg := Config{
		HTTPAddr:    getEnv("HTTP_ADDR", ":8080"),
		DBURL:       getRequired("DB_URL", localDBURL, local),
		Migrate:     getEnv("RUN_MIGRATIONS", "true") == "true",
		Environment: env,
		LogLevel:    getEnv("LOG_LEVEL", "info"),

		DBMaxConns:        getInt("DB_MAX_CONNS", 10),
		DBMinConns:        getInt("DB_MIN_CONNS", 2),
		DBMaxConnLifetime: getDuration("DB_MAX_CONN_LIFETIME", 30*time.Minute),
		DBMaxConnIdleTime: getDuration("DB_MAX_CONN_IDLE_TIME", 5*time.Minute),

		JWTSecret: getRequired("JWT_SECRET", localJWTSecret, local),
		JWTTTL:    getDuration("JWT_TTL", 24*time.Hour),

		AIServiceURL:     getEnv("AI_SERVICE_URL", "http://localhost:8000"),
		AIServiceTimeout: getDuration("AI_SERVICE_TIMEOUT", 30*time.Second),

		RedisAddr:     getEnv("REDIS_ADDR", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		CacheTTL:      getDuration("CACHE_TTL", 10*time.Minute),

		RateLimitRPS:   getInt("RATE_LIMIT_RPS", 20),
		RateLimitBurst: getInt("RATE_LIMIT_BURST", 40),

		CatalogSeedPath: getEnv("CATALOG_SEED_PATH", "db/seed/catalog.yaml"),
		AdminEmail:      getEnv("ADMIN_EMAIL", "admin@jalamatch.local"),
		AdminPassword:   getEnv("ADMIN_PASSWORD", "Admin123!"),

		DeletionSchedule:      getEnv("DELETION_SCHEDULE", "@every 1h"),
		NotificationQueueSize: getInt("NOTIFICATION_QUEUE_SIZE", 1000),
	}
	return cfg
}

// Validate reports the required settings that are missing.
func (c Config) Validate() error {
	var missing []string
	if c.DBURL == "" {
		missing = append(missing, "DB_URL")
	}
	if c.JWTSecret == "" {
		missing = append(missing, "JWT_SECRET")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required settings for environment %q: %s", c.Environment, strings.Join(missing, ", "))
	}
	if c.DBMinConns > c.DBMaxConns {
		return fmt.Errorf("DB_MIN_CONNS (%d) exceeds DB_MAX_CONNS (%d)", c.DBMinConns, c.DBMaxConns)
	}
	return nil
}

func (c Config) IsLocal() bool {
	return c.Environment == "local"
}

func getEnv(key, def string) string {
	value := os.Getenv(key)
	if value == "" {
		return def
	}
	return value
}

func getRequired(key, localDef string, local bool) string {
	if local {
		return getEnv(key, localDef)
	}
	return os.Getenv(key)
}

func getInt(key string, def int) int {
	value, err := strconv.Atoi(os.Getenv(key))
	if err != nil || value <= 0 {
		return def
	}
	return value
}

func getDuration(key string, def time.Duration) time.Duration {
	value, err := time.ParseDuration(os.Getenv(key))
	if err != nil || value <= 0 {
		return def
	}
	return value
}

package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App       AppConfig
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Models    ModelsConfig
	Recommend RecommendConfig
}

type AppConfig struct {
	Name        string
	Environment string
}

type ServerConfig struct {
	Port string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
}

// DSN builds the go-sql-driver MySQL connection string.
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		c.User, c.Password, c.Host, c.Port, c.Name)
}

// RedisConfig enables the engagement cache. An empty Addr disables it.
type RedisConfig struct {
	Addr string
	DB   int
	TTL  time.Duration
}

type ModelsConfig struct {
	Dir string
}

type RecommendConfig struct {
	// Deadline is the per-request budget; signals still pending at expiry
	// are skipped, the request itself succeeds with what it has.
	Deadline time.Duration

	// FilterExpr is an optional CEL expression; candidates it evaluates
	// true for are excluded before the global cap.
	FilterExpr string

	// Serialize names the signals whose model implementations are not
	// reentrant; scoring for each is guarded by a per-signal mutex.
	Serialize []string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	cacheTTL, err := time.ParseDuration(getEnv("ENGAGEMENT_CACHE_TTL", "1m"))
	if err != nil {
		return nil, fmt.Errorf("invalid ENGAGEMENT_CACHE_TTL: %w", err)
	}

	deadline, err := time.ParseDuration(getEnv("RECOMMEND_DEADLINE", "2s"))
	if err != nil {
		return nil, fmt.Errorf("invalid RECOMMEND_DEADLINE: %w", err)
	}

	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "recserve"),
			Environment: getEnv("APP_ENV", "development"),
		},
		Server: ServerConfig{
			Port: getEnv("PORT", "8080"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "3306"),
			User:     getEnv("DB_USER", "root"),
			Password: getEnv("DB_PASSWORD", ""),
			Name:     getEnv("DB_NAME", "ecommerce_recommendation"),
		},
		Redis: RedisConfig{
			Addr: getEnv("REDIS_ADDR", ""),
			DB:   redisDB,
			TTL:  cacheTTL,
		},
		Models: ModelsConfig{
			Dir: getEnv("MODEL_DIR", "models"),
		},
		Recommend: RecommendConfig{
			Deadline:   deadline,
			FilterExpr: getEnv("RECOMMEND_FILTER", ""),
			Serialize:  splitList(getEnv("RECOMMEND_SERIALIZE", "")),
		},
	}

	return cfg, nil
}

// splitList parses a comma-separated env value, trimming blanks.
func splitList(val string) []string {
	if val == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(val, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

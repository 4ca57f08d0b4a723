package utils

import (
	"errors"
	"io/fs"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Auth     AuthConfig
	Redis    RedisConfig
	Queue    QueueConfig
}

type AppConfig struct {
	Name            string
	Port            string
	Debug           bool
	LogPath         string
	ShutdownTimeout time.Duration
	// CORSAllowedOrigins is empty when any origin may call the API.
	CORSAllowedOrigins []string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	MaxConns int32
	Migrate  bool
}

type AuthConfig struct {
	SessionExpiryHours int
}

// RedisConfig leaves Addr empty to disable the screening list cache.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	CacheTTL time.Duration
}

// QueueConfig leaves URL empty to disable order event publishing.
type QueueConfig struct {
	URL             string
	OrderEventQueue string
}

func LoadConfig() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")

	// Set defaults
	v.SetDefault("APP_NAME", "cinema-reservation")
	v.SetDefault("PORT", "8080")
	v.SetDefault("DEBUG", false)
	v.SetDefault("LOG_PATH", "logs/")
	v.SetDefault("SHUTDOWN_TIMEOUT", "15s")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_MAX_CONNS", 10)
	v.SetDefault("DB_MIGRATE", true)
	v.SetDefault("SESSION_EXPIRY_HOURS", 24)
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("CACHE_TTL", "30s")
	v.SetDefault("ORDER_EVENTS_QUEUE", "order.created")

	// .env is optional; plain environment variables are enough in containers
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	v.AutomaticEnv()

	config := &Config{
		App: AppConfig{
			Name:               v.GetString("APP_NAME"),
			Port:               v.GetString("PORT"),
			Debug:              v.GetBool("DEBUG"),
			LogPath:            v.GetString("LOG_PATH"),
			ShutdownTimeout:    v.GetDuration("SHUTDOWN_TIMEOUT"),
			CORSAllowedOrigins: splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
		},
		Database: DatabaseConfig{
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetString("DB_PORT"),
			Name:     v.GetString("DB_NAME"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASS"),
			MaxConns: v.GetInt32("DB_MAX_CONNS"),
			Migrate:  v.GetBool("DB_MIGRATE"),
		},
		Auth: AuthConfig{
			SessionExpiryHours: v.GetInt("SESSION_EXPIRY_HOURS"),
		},
		Redis: RedisConfig{
			Addr:     v.GetString("REDIS_ADDR"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
			CacheTTL: v.GetDuration("CACHE_TTL"),
		},
		Queue: QueueConfig{
			URL:             v.GetString("AMQP_URL"),
			OrderEventQueue: v.GetString("ORDER_EVENTS_QUEUE"),
		},
	}

	return config, nil
}

// splitList reads a comma separated env value, dropping blanks.
func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

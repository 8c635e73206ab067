package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config - структура для хранения конфигураций приложения
type Config struct {
	ServerAddress      string        `mapstructure:"SERVER_ADDRESS"`
	RequestTimeout     time.Duration `mapstructure:"REQUEST_TIMEOUT"`
	SessionTTL         time.Duration `mapstructure:"SESSION_TTL"`
	BackendURL         string        `mapstructure:"BACKEND_URL"`
	BackendTimeout     time.Duration `mapstructure:"BACKEND_TIMEOUT"`
	PostgresConn       string        `mapstructure:"POSTGRES_CONN"`
	PostgresUser       string        `mapstructure:"POSTGRES_USERNAME"`
	PostgresPass       string        `mapstructure:"POSTGRES_PASSWORD"`
	PostgresHost       string        `mapstructure:"POSTGRES_HOST"`
	PostgresPort       string        `mapstructure:"POSTGRES_PORT"`
	PostgresDB         string        `mapstructure:"POSTGRES_DATABASE"`
	MigrationURL       string        `mapstructure:"MIGRATION_URL"`
	RedisAddr          string        `mapstructure:"REDIS_ADDR"`
	RedisPassword      string        `mapstructure:"REDIS_PASSWORD"`
	RedisDB            int           `mapstructure:"REDIS_DB"`
	CacheTTL           time.Duration `mapstructure:"CACHE_TTL"`
	LogLevel           string        `mapstructure:"LOG_LEVEL"`
	LogFormat          string        `mapstructure:"LOG_FORMAT"`
	CORSAllowedOrigins []string      `mapstructure:"CORS_ALLOWED_ORIGINS"`
}

var defaults = map[string]interface{}{
	"SERVER_ADDRESS":       "0.0.0.0:8080",
	"REQUEST_TIMEOUT":      "10s",
	"SESSION_TTL":          "2h",
	"BACKEND_URL":          "",
	"BACKEND_TIMEOUT":      "15s",
	"POSTGRES_CONN":        "",
	"POSTGRES_USERNAME":    "",
	"POSTGRES_PASSWORD":    "",
	"POSTGRES_HOST":        "",
	"POSTGRES_PORT":        "5432",
	"POSTGRES_DATABASE":    "",
	"MIGRATION_URL":        "file://migrations",
	"REDIS_ADDR":           "",
	"REDIS_PASSWORD":       "",
	"REDIS_DB":             0,
	"CACHE_TTL":            "30s",
	"LOG_LEVEL":            "info",
	"LOG_FORMAT":           "json",
	"CORS_ALLOWED_ORIGINS": "*",
}

// LoadConfig загружает конфигурацию из app.env, переменные окружения имеют приоритет
func LoadConfig(path string) (cfg Config, err error) {
	// .env необязателен
	_ = godotenv.Load(filepath.Join(path, ".env"))

	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("app")
	v.SetConfigType("env")
	v.AutomaticEnv()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	if err = v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return cfg, fmt.Errorf("read config: %w", err)
		}
	}
	if err = v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("decode config: %w", err)
	}
	if cfg.BackendURL == "" {
		return cfg, fmt.Errorf("BACKEND_URL is required")
	}
	return cfg, nil
}

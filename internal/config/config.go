package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Хранилища сессий
const (
	SessionStorePostgres = "postgres"
	SessionStoreRedis    = "redis"
)

type Config struct {
	TelegramToken string `mapstructure:"TELEGRAM_TOKEN"`
	Environment   string `mapstructure:"ENV"`

	APIBaseURL string        `mapstructure:"API_BASE_URL"`
	APITimeout time.Duration `mapstructure:"API_TIMEOUT"`

	SessionStore   string `mapstructure:"SESSION_STORE"`
	DBDSN          string `mapstructure:"DB_DSN"`
	MigrationsPath string `mapstructure:"MIGRATIONS_PATH"`

	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisDB       int    `mapstructure:"REDIS_DB"`

	RoomRefreshInterval time.Duration `mapstructure:"ROOM_REFRESH_INTERVAL"`
	MetricsAddr         string        `mapstructure:"METRICS_ADDR"`
	RabbitMQURL         string        `mapstructure:"RABBITMQ_URL"`
}

func Load() (*Config, error) {
	// Пытаемся загрузить .env файл (игнорируем ошибку, если файла нет)
	if err := godotenv.Load(".env"); err != nil {
		log.Println("⚠️  No .env file found, using environment variables")
	} else {
		log.Println("✅ Loaded configuration from .env file")
	}

	return fromEnv()
}

// fromEnv читает конфигурацию из переменных окружения
func fromEnv() (*Config, error) {
	cfg := &Config{
		TelegramToken:  os.Getenv("TELEGRAM_TOKEN"),
		Environment:    getEnv("ENV", "development"),
		APIBaseURL:     getEnv("API_BASE_URL", "http://localhost:5000/api"),
		SessionStore:   getEnv("SESSION_STORE", SessionStorePostgres),
		DBDSN:          os.Getenv("DB_DSN"),
		MigrationsPath: getEnv("MIGRATIONS_PATH", "migrations"),
		RedisAddr:      getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:  os.Getenv("REDIS_PASSWORD"),
		MetricsAddr:    getEnv("METRICS_ADDR", ":9090"),
		RabbitMQURL:    os.Getenv("RABBITMQ_URL"),
	}

	var err error
	if cfg.APITimeout, err = getDuration("API_TIMEOUT", 10*time.Second); err != nil {
		return nil, err
	}
	if cfg.RoomRefreshInterval, err = getDuration("ROOM_REFRESH_INTERVAL", time.Minute); err != nil {
		return nil, err
	}
	if raw := os.Getenv("REDIS_DB"); raw != "" {
		if cfg.RedisDB, err = strconv.Atoi(raw); err != nil {
			return nil, fmt.Errorf("REDIS_DB must be a number: %w", err)
		}
	}

	// Проверяем обязательные поля
	if cfg.TelegramToken == "" {
		return nil, fmt.Errorf("TELEGRAM_TOKEN is required but not set")
	}

	switch cfg.SessionStore {
	case SessionStorePostgres:
		if cfg.DBDSN == "" {
			return nil, fmt.Errorf("DB_DSN is required but not set")
		}
	case SessionStoreRedis:
	default:
		return nil, fmt.Errorf("unknown SESSION_STORE %q", cfg.SessionStore)
	}

	log.Printf("Config loaded\n")

	return cfg, nil
}

func (c *Config) GetDBDSN() string {
	return c.DBDSN
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	raw, ok := os.LookupEnv(key)
	if !ok || raw == "" {
		return fallback, nil
	}
	if raw == "0" {
		return 0, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be a duration: %w", key, err)
	}
	return d, nil
}

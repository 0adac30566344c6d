package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const sessionKeyPrefix = "easestay:session:"

// RedisConfig параметры подключения к Redis
type RedisConfig struct {
	Address  string
	Password string
	DB       int
	PoolSize int
}

// NewRedisClient создает новый клиент Redis на основе конфигурации
func NewRedisClient(cfg RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
		PoolSize: cfg.PoolSize,
	})
}

// Ping проверяет соединение с Redis
func Ping(ctx context.Context, client *redis.Client) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	if _, err := client.Ping(ctx).Result(); err != nil {
		return fmt.Errorf("failed to ping Redis: %w", err)
	}
	return nil
}

// RedisSessionRepository хранит сессии в Redis, ttl == 0 - без срока жизни
type RedisSessionRepository struct {
	client redis.Cmdable
	ttl    time.Duration
}

func NewRedisSessionRepository(client redis.Cmdable, ttl time.Duration) *RedisSessionRepository {
	return &RedisSessionRepository{client: client, ttl: ttl}
}

func sessionKey(telegramID int64) string {
	return sessionKeyPrefix + strconv.FormatInt(telegramID, 10)
}

func (r *RedisSessionRepository) Save(ctx context.Context, telegramID int64, payload []byte) error {
	if err := r.client.Set(ctx, sessionKey(telegramID), payload, r.ttl).Err(); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (r *RedisSessionRepository) Load(ctx context.Context, telegramID int64) ([]byte, error) {
	payload, err := r.client.Get(ctx, sessionKey(telegramID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("load session: %w", err)
	}
	return payload, nil
}

func (r *RedisSessionRepository) Delete(ctx context.Context, telegramID int64) error {
	if err := r.client.Del(ctx, sessionKey(telegramID)).Err(); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

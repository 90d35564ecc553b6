package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/Beliver-247/sliit-choir-backend/pkg/config"
)

var (
	ErrCacheNotFound   = errors.New("cache: key not found")
	ErrCacheConnection = errors.New("cache: connection error")
)

const keyPrefix = "choir:"

// RedisClient wraps the Redis client with JSON helpers and OTP storage
type RedisClient struct {
	client *redis.Client
}

// NewRedisClient creates a new Redis client from application config
func NewRedisClient(cfg *config.Config) (*RedisClient, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.DB,
		PoolSize:     100,
		MinIdleConns: 10,
		MaxRetries:   3,
		DialTimeout:  5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCacheConnection, err)
	}

	return &RedisClient{client: client}, nil
}

// Client exposes the underlying redis client for components that need it
// directly, such as the rate limiter.
func (r *RedisClient) Client() *redis.Client {
	return r.client
}

// Set stores a JSON-encoded value under key with a TTL
func (r *RedisClient) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache: failed to marshal value: %w", err)
	}
	return r.client.Set(ctx, keyPrefix+key, data, ttl).Err()
}

// Get fetches and JSON-decodes the value under key into dest
func (r *RedisClient) Get(ctx context.Context, key string, dest interface{}) error {
	data, err := r.client.Get(ctx, keyPrefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return ErrCacheNotFound
		}
		return err
	}
	return json.Unmarshal(data, dest)
}

// Delete removes keys from the cache
func (r *RedisClient) Delete(ctx context.Context, keys ...string) error {
	prefixed := make([]string, len(keys))
	for i, k := range keys {
		prefixed[i] = keyPrefix + k
	}
	return r.client.Del(ctx, prefixed...).Err()
}

// DeletePattern removes all keys matching a glob pattern
func (r *RedisClient) DeletePattern(ctx context.Context, pattern string) error {
	iter := r.client.Scan(ctx, 0, keyPrefix+pattern, 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	return r.client.Del(ctx, keys...).Err()
}

// StoreOTP stores a one-time verification code for a student ID
func (r *RedisClient) StoreOTP(ctx context.Context, studentID, code string, ttl time.Duration) error {
	return r.client.Set(ctx, keyPrefix+"otp:"+studentID, code, ttl).Err()
}

// GetOTP fetches the pending verification code for a student ID
func (r *RedisClient) GetOTP(ctx context.Context, studentID string) (string, error) {
	code, err := r.client.Get(ctx, keyPrefix+"otp:"+studentID).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrCacheNotFound
		}
		return "", err
	}
	return code, nil
}

// DeleteOTP removes a consumed verification code
func (r *RedisClient) DeleteOTP(ctx context.Context, studentID string) error {
	return r.client.Del(ctx, keyPrefix+"otp:"+studentID).Err()
}

// HealthCheck pings the Redis server
func (r *RedisClient) HealthCheck(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// Close closes the underlying connection pool
func (r *RedisClient) Close() error {
	return r.client.Close()
}

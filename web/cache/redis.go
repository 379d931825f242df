// Package cache wraps the Redis client used by the panel for short-lived
// data: login rate-limit counters and the public product detail cache.
// Without an external address an embedded miniredis is started.
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/inventaris/panel/logger"
	"github.com/redis/go-redis/v9"
)

// ErrMiss is returned when a key does not exist.
var ErrMiss = errors.New("cache: miss")

var errNotInitialized = errors.New("cache: redis client not initialized")

var (
	client     *redis.Client
	miniRedis  *miniredis.Miniredis
	isEmbedded = true
)

// InitRedis connects to redisAddr, or starts an embedded server when it is empty.
func InitRedis(redisAddr string) error {
	if redisAddr == "" {
		mr, err := miniredis.Run()
		if err != nil {
			return fmt.Errorf("failed to start embedded Redis: %w", err)
		}
		miniRedis = mr
		client = redis.NewClient(&redis.Options{Addr: mr.Addr()})
		isEmbedded = true
		logger.Info("Embedded Redis started on", mr.Addr())
		return nil
	}

	client = redis.NewClient(&redis.Options{Addr: redisAddr})
	isEmbedded = false

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("failed to connect to Redis at %s: %w", redisAddr, err)
	}
	logger.Info("Connected to external Redis at", redisAddr)
	return nil
}

func GetClient() *redis.Client {
	return client
}

func IsEmbedded() bool {
	return isEmbedded
}

// Close closes the client and stops the embedded server if running.
func Close() error {
	var err error
	if client != nil {
		err = client.Close()
		client = nil
	}
	if miniRedis != nil {
		miniRedis.Close()
		miniRedis = nil
	}
	return err
}

func Set(ctx context.Context, key string, value any, expiration time.Duration) error {
	if client == nil {
		return errNotInitialized
	}
	return client.Set(ctx, key, value, expiration).Err()
}

// Get returns ErrMiss when the key is absent.
func Get(ctx context.Context, key string) (string, error) {
	if client == nil {
		return "", errNotInitialized
	}
	result, err := client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrMiss
	}
	return result, err
}

func Delete(ctx context.Context, keys ...string) error {
	if client == nil {
		return errNotInitialized
	}
	return client.Del(ctx, keys...).Err()
}

// IncrWindow increments key and starts its expiry on the first hit.
// It returns the counter value and the remaining lifetime of the window.
func IncrWindow(ctx context.Context, key string, window time.Duration) (int64, time.Duration, error) {
	if client == nil {
		return 0, 0, errNotInitialized
	}
	n, err := client.Incr(ctx, key).Result()
	if err != nil {
		return 0, 0, err
	}
	if n == 1 {
		if err := client.PExpire(ctx, key, window).Err(); err != nil {
			return n, 0, err
		}
		return n, window, nil
	}
	ttl, err := client.PTTL(ctx, key).Result()
	if err != nil {
		return n, 0, err
	}
	if ttl < 0 {
		// counter lost its expiry; restart the window
		if err := client.PExpire(ctx, key, window).Err(); err != nil {
			return n, 0, err
		}
		ttl = window
	}
	return n, ttl, nil
}

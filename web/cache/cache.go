package cache

import (
	"context"
	"errors"
	"time"

	"github.com/goccy/go-json"
	"github.com/inventaris/panel/logger"
	"golang.org/x/sync/singleflight"
)

const (
	TTLProductDetail = 5 * time.Minute
)

const (
	KeyProductDetailPrefix = "product:detail:"
	KeyLoginLimitPrefix    = "ratelimit:login:"
)

var loads singleflight.Group

func ProductDetailKey(uuid string) string {
	return KeyProductDetailPrefix + uuid
}

func GetJSON(ctx context.Context, key string, dest any) error {
	val, err := Get(ctx, key)
	if err != nil {
		return err
	}
	return json.Unmarshal([]byte(val), dest)
}

func SetJSON(ctx context.Context, key string, value any, expiration time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return Set(ctx, key, data, expiration)
}

// GetOrLoad reads key into dest, or runs load once per key across concurrent
// callers and caches its result. Cache failures degrade to calling load.
// load gets a context detached from the first caller's cancellation, since
// other callers may be waiting on the same result.
func GetOrLoad[T any](ctx context.Context, key string, ttl time.Duration, load func(ctx context.Context) (T, error)) (T, error) {
	var cached T
	err := GetJSON(ctx, key, &cached)
	if err == nil {
		logger.Debugf("Cache hit for key: %s", key)
		return cached, nil
	}
	if !errors.Is(err, ErrMiss) {
		logger.Warningf("cache read %s failed: %v", key, err)
	}

	shared := context.WithoutCancel(ctx)
	v, err, _ := loads.Do(key, func() (any, error) {
		value, err := load(shared)
		if err != nil {
			return value, err
		}
		if err := SetJSON(shared, key, value, ttl); err != nil {
			logger.Warningf("Failed to set cache for key %s: %v", key, err)
		}
		return value, nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return v.(T), nil
}

// Invalidate drops keys, logging instead of failing the caller.
func Invalidate(ctx context.Context, keys ...string) {
	if client == nil || len(keys) == 0 {
		return
	}
	if err := Delete(ctx, keys...); err != nil {
		logger.Warningf("cache invalidate %v failed: %v", keys, err)
	}
}

package database

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"deckbuilder/config"
	"deckbuilder/metrics"

	"github.com/redis/go-redis/v9"
)

var REDIS *redis.Client

// DefaultCacheDuration is used by SetToCache
const DefaultCacheDuration = 10 * time.Minute

// InitRedis creates the client and checks the server answers.
// REDIS stays nil when the server is unreachable so callers fall back to the database.
func InitRedis(ctx context.Context) error {
	client := redis.NewClient(&redis.Options{
		Addr:         config.RedisHost + ":" + config.RedisPort,
		Password:     config.RedisPassword,
		DB:           0,
		MaxRetries:   3,
		PoolSize:     50,
		MinIdleConns: 5,
		PoolTimeout:  30 * time.Second,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return err
	}
	REDIS = client
	return nil
}

// GetFromCache decodes the JSON stored under key into dest.
// found is false on a miss or when the cached payload cannot be decoded.
func GetFromCache(ctx context.Context, key string, dest interface{}) (bool, error) {
	if REDIS == nil {
		return false, nil
	}
	raw, err := REDIS.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		metrics.CacheMisses.Inc()
		return false, nil
	}
	if err != nil {
		metrics.CacheMisses.Inc()
		return false, err
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		metrics.CacheMisses.Inc()
		return false, err
	}
	metrics.CacheHits.Inc()
	return true, nil
}

// SetToCache stores value as JSON under key for DefaultCacheDuration
func SetToCache(ctx context.Context, key string, value interface{}) error {
	return SetToCacheWithTTL(ctx, key, value, DefaultCacheDuration)
}

// SetToCacheWithTTL stores value as JSON under key
func SetToCacheWithTTL(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if REDIS == nil {
		return nil
	}
	payload, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return REDIS.Set(ctx, key, payload, ttl).Err()
}

// DeleteByPrefix removes every key starting with prefix
func DeleteByPrefix(ctx context.Context, prefix string) error {
	if REDIS == nil {
		return nil
	}
	iter := REDIS.Scan(ctx, 0, prefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		if err := REDIS.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}

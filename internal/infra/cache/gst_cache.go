package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"marketplace/internal/domain/model"

	"github.com/go-redis/redis/v8"
)

// GST照会結果のキャッシュ
type RedisGSTCache struct {
	client *redis.Client
	ttl    time.Duration
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

func NewRedisClient(cfg RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
}

func NewRedisGSTCache(client *redis.Client, ttl time.Duration) *RedisGSTCache {
	return &RedisGSTCache{client: client, ttl: ttl}
}

func gstKey(gstin string) string {
	return fmt.Sprintf("gst:%s", gstin)
}

// 見つからなければ ok=false
func (c *RedisGSTCache) Get(ctx context.Context, gstin string) (model.GSTDetails, bool, error) {
	data, err := c.client.Get(ctx, gstKey(gstin)).Bytes()
	if errors.Is(err, redis.Nil) {
		return model.GSTDetails{}, false, nil
	}
	if err != nil {
		return model.GSTDetails{}, false, err
	}

	var d model.GSTDetails
	if err := json.Unmarshal(data, &d); err != nil {
		return model.GSTDetails{}, false, err
	}
	return d, true, nil
}

func (c *RedisGSTCache) Set(ctx context.Context, gstin string, d model.GSTDetails) error {
	data, err := json.Marshal(d)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, gstKey(gstin), data, c.ttl).Err()
}

// REDIS_ADDRが無いとき用
type NoopGSTCache struct{}

func (NoopGSTCache) Get(context.Context, string) (model.GSTDetails, bool, error) {
	return model.GSTDetails{}, false, nil
}

func (NoopGSTCache) Set(context.Context, string, model.GSTDetails) error { return nil }

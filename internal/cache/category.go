// Package cache holds the Redis-backed read caches.
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/redis/go-redis/v9"

	"github.com/deppfellow/go-quizbank/internal/model"
)

// CategoriesKey is the Redis key holding the encoded category list.
const CategoriesKey = "quizbank:categories"

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// CategoryCache caches the category list. A CategoryCache with a nil client
// always misses and ignores writes.
type CategoryCache struct {
	client redis.Cmdable
	ttl    time.Duration
}

func NewCategoryCache(client redis.Cmdable, ttl time.Duration) *CategoryCache {
	return &CategoryCache{client: client, ttl: ttl}
}

func (c *CategoryCache) enabled() bool {
	return c != nil && c.client != nil
}

// Get returns the cached list. ok is false on a miss.
func (c *CategoryCache) Get(ctx context.Context) (categories []model.Category, ok bool, err error) {
	if !c.enabled() {
		return nil, false, nil
	}

	raw, err := c.client.Get(ctx, CategoriesKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get %s: %w", CategoriesKey, err)
	}

	categories, err = decodeCategories(raw)
	if err != nil {
		return nil, false, err
	}
	return categories, true, nil
}

// Set stores categories with the configured TTL.
func (c *CategoryCache) Set(ctx context.Context, categories []model.Category) error {
	if !c.enabled() {
		return nil
	}

	raw, err := encodeCategories(categories)
	if err != nil {
		return err
	}
	if err := c.client.Set(ctx, CategoriesKey, raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("set %s: %w", CategoriesKey, err)
	}
	return nil
}

// Invalidate drops the cached list.
func (c *CategoryCache) Invalidate(ctx context.Context) error {
	if !c.enabled() {
		return nil
	}
	return c.client.Del(ctx, CategoriesKey).Err()
}

func encodeCategories(categories []model.Category) ([]byte, error) {
	raw, err := json.Marshal(categories)
	if err != nil {
		return nil, fmt.Errorf("encode categories: %w", err)
	}
	return raw, nil
}

func decodeCategories(raw []byte) ([]model.Category, error) {
	var out []model.Category
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("decode categories: %w", err)
	}
	return out, nil
}

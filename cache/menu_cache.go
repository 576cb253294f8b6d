package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"food-ordering-api/models"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// MenuCache holds restaurant menus between edits. Failures are logged and
// treated as misses so the database stays the source of truth.
type MenuCache interface {
	GetMenu(ctx context.Context, restaurantID uint) ([]models.FoodItem, bool)
	SetMenu(ctx context.Context, restaurantID uint, items []models.FoodItem)
	Invalidate(ctx context.Context, restaurantID uint)
}

// Menus is the cache the handlers use; main swaps in Redis when configured.
var Menus MenuCache = NoopMenuCache{}

type NoopMenuCache struct{}

func (NoopMenuCache) GetMenu(context.Context, uint) ([]models.FoodItem, bool) { return nil, false }
func (NoopMenuCache) SetMenu(context.Context, uint, []models.FoodItem)       {}
func (NoopMenuCache) Invalidate(context.Context, uint)                       {}

type RedisMenuCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisMenuCache(ctx context.Context, addr, password string, ttl time.Duration) (*RedisMenuCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", addr, err)
	}
	return &RedisMenuCache{client: client, ttl: ttl}, nil
}

func menuKey(restaurantID uint) string {
	return fmt.Sprintf("menu:%d:items", restaurantID)
}

func (r *RedisMenuCache) GetMenu(ctx context.Context, restaurantID uint) ([]models.FoodItem, bool) {
	raw, err := r.client.Get(ctx, menuKey(restaurantID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false
	}
	if err != nil {
		log.Warn().Err(err).Uint("restaurant_id", restaurantID).Msg("menu cache get failed")
		return nil, false
	}
	var items []models.FoodItem
	if err := json.Unmarshal(raw, &items); err != nil {
		log.Warn().Err(err).Uint("restaurant_id", restaurantID).Msg("menu cache payload corrupt")
		r.Invalidate(ctx, restaurantID)
		return nil, false
	}
	return items, true
}

func (r *RedisMenuCache) SetMenu(ctx context.Context, restaurantID uint, items []models.FoodItem) {
	raw, err := json.Marshal(items)
	if err != nil {
		return
	}
	if err := r.client.Set(ctx, menuKey(restaurantID), raw, r.ttl).Err(); err != nil {
		log.Warn().Err(err).Uint("restaurant_id", restaurantID).Msg("menu cache set failed")
	}
}

func (r *RedisMenuCache) Invalidate(ctx context.Context, restaurantID uint) {
	if err := r.client.Del(ctx, menuKey(restaurantID)).Err(); err != nil {
		log.Warn().Err(err).Uint("restaurant_id", restaurantID).Msg("menu cache invalidate failed")
	}
}

func (r *RedisMenuCache) Close() error {
	return r.client.Close()
}

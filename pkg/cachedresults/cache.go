package cachedresults

import (
	"context"
	"encoding/json"
	"time"

	"github.com/eko/gocache/lib/v4/cache"
	"github.com/eko/gocache/lib/v4/store"
	redisstore "github.com/eko/gocache/store/redis/v4"
	"github.com/rs/zerolog/log"
	"github.com/travigo/railresched/pkg/redis_client"
)

const defaultExpiration = 90 * time.Minute

// Store is the part of the gocache interface the results cache relies on
type Store interface {
	Get(ctx context.Context, key any) (string, error)
	Set(ctx context.Context, key any, object string, options ...store.Option) error
	Delete(ctx context.Context, key any) error
}

// Cache holds JSON encoded documents keyed by their natural identifier.
// A nil Cache, or one without a store, behaves as an always-missing cache.
type Cache struct {
	Cache  Store
	Prefix string
}

func (c *Cache) Setup() {
	redisStore := redisstore.NewRedis(redis_client.Client, store.WithExpiration(defaultExpiration))

	c.Cache = cache.New[string](redisStore)
}

// NewRedisCache returns a redis backed cache, or nil when redis is not connected
func NewRedisCache(prefix string) *Cache {
	if !redis_client.Configured() {
		return nil
	}

	c := &Cache{Prefix: prefix}
	c.Setup()

	return c
}

func (c *Cache) enabled() bool {
	return c != nil && c.Cache != nil
}

func (c *Cache) key(identifier string) string {
	return c.Prefix + ":" + identifier
}

// Get decodes the cached document for identifier into value and reports whether it was found
func (c *Cache) Get(ctx context.Context, identifier string, value interface{}) bool {
	if !c.enabled() {
		return false
	}

	cached, err := c.Cache.Get(ctx, c.key(identifier))
	if err != nil || cached == "" {
		return false
	}

	if err := json.Unmarshal([]byte(cached), value); err != nil {
		log.Error().Err(err).Str("key", c.key(identifier)).Msg("Failed to decode cached result")
		return false
	}

	return true
}

func (c *Cache) Set(ctx context.Context, identifier string, value interface{}) {
	if !c.enabled() {
		return
	}

	encoded, err := json.Marshal(value)
	if err != nil {
		log.Error().Err(err).Str("key", c.key(identifier)).Msg("Failed to encode result for cache")
		return
	}

	if err := c.Cache.Set(ctx, c.key(identifier), string(encoded)); err != nil {
		log.Error().Err(err).Str("key", c.key(identifier)).Msg("Failed to store cached result")
	}
}

func (c *Cache) Invalidate(ctx context.Context, identifier string) {
	if !c.enabled() {
		return
	}

	if err := c.Cache.Delete(ctx, c.key(identifier)); err != nil {
		log.Debug().Err(err).Str("key", c.key(identifier)).Msg("Failed to invalidate cached result")
	}
}

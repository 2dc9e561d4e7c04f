package trackcache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	redislib "github.com/redis/go-redis/v9"
	spotifyapi "github.com/zmb3/spotify/v2"

	"github.com/hxnx/jukebot/internal/spotify"
)

const (
	keyPrefix = "track:"
	// Track metadata is immutable, the TTL only bounds memory.
	entryTTL = 24 * time.Hour
)

type Config struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// Cache stores normalized track metadata by track id so the play path
// can skip a second remote lookup. A nil Cache is a no-op; the bot runs
// fine without redis.
type Cache struct {
	client *redislib.Client
}

func Open(cfg Config) (*Cache, error) {
	client := redislib.NewClient(&redislib.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	var lastErr error
	attempts := 5
	backoff := 200 * time.Millisecond

	for attempt := 1; attempt <= attempts; attempt++ {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		lastErr = client.Ping(ctx).Err()
		cancel()

		if lastErr == nil {
			return &Cache{client: client}, nil
		}
		if attempt < attempts {
			time.Sleep(backoff)
			backoff *= 2
		}
	}

	_ = client.Close()
	return nil, lastErr
}

func (c *Cache) Get(ctx context.Context, id spotifyapi.ID) (spotify.StandardItem, bool) {
	if c == nil || c.client == nil || id == "" {
		return spotify.StandardItem{}, false
	}

	raw, err := c.client.Get(ctx, keyPrefix+string(id)).Bytes()
	if err != nil {
		return spotify.StandardItem{}, false
	}

	var item spotify.StandardItem
	if err := json.Unmarshal(raw, &item); err != nil {
		return spotify.StandardItem{}, false
	}
	return item, true
}

func (c *Cache) Put(ctx context.Context, item spotify.StandardItem) {
	if c == nil || c.client == nil || item.ID == "" {
		return
	}

	raw, err := json.Marshal(item)
	if err != nil {
		return
	}
	_ = c.client.Set(ctx, keyPrefix+string(item.ID), raw, entryTTL).Err()
}

func (c *Cache) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}

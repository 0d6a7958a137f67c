package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// Listing is a short-TTL read-through cache in front of the storefront
// listing endpoints. A nil *Listing is a valid no-op cache, so callers can
// skip wiring Redis entirely.
type Listing struct {
	client *redis.Client
	ttl    time.Duration
}

func New(addr string, ttl time.Duration) *Listing {
	if addr == "" {
		return nil
	}
	return &Listing{
		client: redis.NewClient(&redis.Options{Addr: addr}),
		ttl:    ttl,
	}
}

// NewWithClient wraps an existing client. Used by tests with miniredis.
func NewWithClient(client *redis.Client, ttl time.Duration) *Listing {
	return &Listing{client: client, ttl: ttl}
}

// Get loads a cached listing payload into dest. A miss or a decode failure
// both report false; cache errors never fail the request path.
func (l *Listing) Get(ctx context.Context, key string, dest interface{}) bool {
	if l == nil {
		return false
	}

	raw, err := l.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false
	}
	if err != nil {
		log.Println("[CACHE] [WARN] get failed:", err)
		return false
	}

	if err := json.Unmarshal(raw, dest); err != nil {
		log.Println("[CACHE] [WARN] decode failed:", err)
		return false
	}
	return true
}

// Set stores a listing payload under the derived key. Failures are logged
// and swallowed.
func (l *Listing) Set(ctx context.Context, key string, value interface{}) {
	if l == nil {
		return
	}

	raw, err := json.Marshal(value)
	if err != nil {
		log.Println("[CACHE] [WARN] encode failed:", err)
		return
	}

	if err := l.client.Set(ctx, key, raw, l.ttl).Err(); err != nil {
		log.Println("[CACHE] [WARN] set failed:", err)
	}
}

// Invalidate removes listing keys after a product write so the storefront
// never serves a deleted or retagged product for a full TTL.
func (l *Listing) Invalidate(ctx context.Context, pattern string) {
	if l == nil {
		return
	}

	iter := l.client.Scan(ctx, 0, pattern, 100).Iterator()
	for iter.Next(ctx) {
		if err := l.client.Del(ctx, iter.Val()).Err(); err != nil {
			log.Println("[CACHE] [WARN] del failed:", err)
		}
	}
	if err := iter.Err(); err != nil {
		log.Println("[CACHE] [WARN] scan failed:", err)
	}
}

// internal/consensus/cache.go
package consensus

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ResponseCache memoizes consensus responses in Redis so identical
// prompts within the TTL window skip the provider ensemble entirely.
// A zero TTL disables the cache.
type ResponseCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewResponseCache(client *redis.Client, ttl time.Duration) *ResponseCache {
	return &ResponseCache{client: client, ttl: ttl}
}

func (c *ResponseCache) enabled() bool {
	return c != nil && c.client != nil && c.ttl > 0
}

// Get returns the cached response for a call, or ok=false on miss. A
// Redis failure reads as a miss; the cache never fails a consensus call.
func (c *ResponseCache) Get(ctx context.Context, call ProviderCall) (ProviderResponse, bool) {
	if !c.enabled() {
		return ProviderResponse{}, false
	}

	raw, err := c.client.Get(ctx, cacheKey(call)).Result()
	if err != nil {
		return ProviderResponse{}, false
	}

	var response ProviderResponse
	if err := json.Unmarshal([]byte(raw), &response); err != nil {
		return ProviderResponse{}, false
	}
	return response, true
}

// Set stores a response; errors are swallowed for the same reason.
func (c *ResponseCache) Set(ctx context.Context, call ProviderCall, response ProviderResponse) {
	if !c.enabled() {
		return
	}

	payload, err := json.Marshal(response)
	if err != nil {
		return
	}
	c.client.Set(ctx, cacheKey(call), payload, c.ttl)
}

// cacheKey hashes the call identity. Prompt is hashed rather than
// embedded so keys stay bounded regardless of prompt size.
func cacheKey(call ProviderCall) string {
	sum := sha256.Sum256([]byte(call.Prompt))
	return fmt.Sprintf("consensus:%s:%s:%s", call.Agent, call.Engine, hex.EncodeToString(sum[:]))
}

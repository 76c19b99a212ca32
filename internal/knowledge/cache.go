// internal/knowledge/cache.go
package knowledge

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// WarmCache serializes every registered domain context into Redis at
// startup so sidecar consumers (dashboards, prompt tooling) can read
// the same knowledge the workers analyze against. The keys are
// overwritten on every boot; the in-process Store stays the source of
// truth and never reads them back.
func WarmCache(ctx context.Context, client *redis.Client, store *Store) error {
	for _, domain := range store.Domains() {
		dc, err := store.GetContext(domain)
		if err != nil {
			return err
		}

		payload, err := json.Marshal(dc)
		if err != nil {
			return fmt.Errorf("marshal domain context %s: %w", domain, err)
		}

		key := fmt.Sprintf("knowledge:context:%s", domain)
		if err := client.Set(ctx, key, payload, 0).Err(); err != nil {
			return fmt.Errorf("warm knowledge cache for %s: %w", domain, err)
		}
	}
	return nil
}

package repository

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// PreferenceRepository stores per-client UI preferences in Redis. It is the
// server-side analog of the original client's localStorage locale key.
type PreferenceRepository struct {
	client *redis.Client
	prefix string
}

// NewPreferenceRepository constructs a preference repository.
func NewPreferenceRepository(client *redis.Client, prefix string) *PreferenceRepository {
	if prefix == "" {
		prefix = "preferences:locale:"
	}
	return &PreferenceRepository{client: client, prefix: prefix}
}

// GetLocale returns the stored locale for a client id, or "" when unset.
func (r *PreferenceRepository) GetLocale(ctx context.Context, clientID string) (string, error) {
	locale, err := r.client.Get(ctx, r.prefix+clientID).Result()
	if err != nil {
		if err == redis.Nil {
			return "", nil
		}
		return "", fmt.Errorf("redis get locale for %s: %w", clientID, err)
	}
	return locale, nil
}

// SetLocale persists the locale choice. No TTL: the preference survives until
// changed, like the browser storage it replaces.
func (r *PreferenceRepository) SetLocale(ctx context.Context, clientID, locale string) error {
	if err := r.client.Set(ctx, r.prefix+clientID, locale, 0).Err(); err != nil {
		return fmt.Errorf("redis set locale for %s: %w", clientID, err)
	}
	return nil
}

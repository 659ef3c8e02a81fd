package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/travelintrips/registration-api/internal/models"
	appErrors "github.com/travelintrips/registration-api/pkg/errors"
)

// DraftRepository persists registration drafts in Redis for the lifetime of
// one registration attempt.
type DraftRepository struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewDraftRepository constructs a draft repository.
func NewDraftRepository(client *redis.Client, prefix string, ttl time.Duration) *DraftRepository {
	if prefix == "" {
		prefix = "registration:draft:"
	}
	return &DraftRepository{client: client, prefix: prefix, ttl: ttl}
}

// Get loads a draft by id. Expired or unknown ids yield ErrDraftNotFound.
func (r *DraftRepository) Get(ctx context.Context, id string) (*models.RegistrationDraft, error) {
	raw, err := r.client.Get(ctx, r.key(id)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, appErrors.ErrDraftNotFound
		}
		return nil, fmt.Errorf("redis get draft %s: %w", id, err)
	}

	var draft models.RegistrationDraft
	if err := json.Unmarshal(raw, &draft); err != nil {
		return nil, fmt.Errorf("unmarshal draft %s: %w", id, err)
	}
	if draft.Files == nil {
		draft.Files = make(map[models.FileSlot]*models.StagedFile)
	}
	return &draft, nil
}

// Save stores the draft and refreshes its TTL.
func (r *DraftRepository) Save(ctx context.Context, draft *models.RegistrationDraft) error {
	draft.UpdatedAt = time.Now().UTC()
	payload, err := json.Marshal(draft)
	if err != nil {
		return fmt.Errorf("marshal draft %s: %w", draft.ID, err)
	}
	if err := r.client.Set(ctx, r.key(draft.ID), payload, r.ttl).Err(); err != nil {
		return fmt.Errorf("redis set draft %s: %w", draft.ID, err)
	}
	return nil
}

// Delete discards a draft.
func (r *DraftRepository) Delete(ctx context.Context, id string) error {
	if err := r.client.Del(ctx, r.key(id)).Err(); err != nil {
		return fmt.Errorf("redis delete draft %s: %w", id, err)
	}
	return nil
}

func (r *DraftRepository) key(id string) string {
	return r.prefix + id
}

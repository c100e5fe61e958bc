package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"dinehub/internal/models"
)

// draftKey is the Redis key for a session's saved cart draft.
const draftKey = "cart:draft:%s"

// DraftStore saves and loads cart snapshots so a session can resume an
// unfinished order later. It is an opaque collaborator: the cart state
// machine never calls it, the application layer does.
type DraftStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewDraftStore creates a draft store on an existing Redis client.
func NewDraftStore(client *redis.Client, ttl time.Duration) *DraftStore {
	return &DraftStore{
		client: client,
		ttl:    ttl,
	}
}

// Save stores a JSON snapshot of the cart under the session key with
// the configured TTL.
func (d *DraftStore) Save(ctx context.Context, sessionID string, state models.CartState) error {
	body, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to marshal cart draft: %w", err)
	}

	if err := d.client.Set(ctx, fmt.Sprintf(draftKey, sessionID), body, d.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save cart draft: %w", err)
	}
	return nil
}

// Load returns the saved snapshot for a session, or ErrDraftNotFound.
func (d *DraftStore) Load(ctx context.Context, sessionID string) (models.CartState, error) {
	body, err := d.client.Get(ctx, fmt.Sprintf(draftKey, sessionID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return models.CartState{}, ErrDraftNotFound
		}
		return models.CartState{}, fmt.Errorf("failed to load cart draft: %w", err)
	}

	var state models.CartState
	if err := json.Unmarshal(body, &state); err != nil {
		return models.CartState{}, fmt.Errorf("failed to unmarshal cart draft: %w", err)
	}
	return state, nil
}

// Delete removes a session's draft. Missing drafts are not an error.
func (d *DraftStore) Delete(ctx context.Context, sessionID string) error {
	if err := d.client.Del(ctx, fmt.Sprintf(draftKey, sessionID)).Err(); err != nil {
		return fmt.Errorf("failed to delete cart draft: %w", err)
	}
	return nil
}

// AngelaMos | 2026
// drafts.go

package wizard

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/aurafinsurance/insurance-backend/internal/core"
)

const draftKeyPrefix = "wizard:"

// DraftStore persists wizard progress between requests.
type DraftStore interface {
	Load(ctx context.Context, wizard, id string) (*State, error)
	Save(ctx context.Context, state *State) error
}

type RedisDraftStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisDraftStore(client *redis.Client, ttl time.Duration) *RedisDraftStore {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &RedisDraftStore{client: client, ttl: ttl}
}

func draftKey(wizard, id string) string {
	return draftKeyPrefix + wizard + ":" + id
}

func (s *RedisDraftStore) Load(ctx context.Context, wizard, id string) (*State, error) {
	data, err := s.client.Get(ctx, draftKey(wizard, id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("load draft: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("load draft: %w", err)
	}

	var state State
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("decode draft: %w", err)
	}

	return &state, nil
}

// Save writes the whole draft and refreshes its TTL. Concurrent writers
// of the same draft resolve by last write.
func (s *RedisDraftStore) Save(ctx context.Context, state *State) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encode draft: %w", err)
	}

	key := draftKey(state.Wizard, state.ID)
	if err := s.client.Set(ctx, key, data, s.ttl).Err(); err != nil {
		return fmt.Errorf("save draft: %w", err)
	}

	return nil
}

package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	domainlocale "github.com/syed-arham-coder/Pak-Turk-sub001/internal/domain/locale"
	apperrors "github.com/syed-arham-coder/Pak-Turk-sub001/internal/errors"
)

// PreferenceStore persists locale preferences in Redis. Preferences have no
// TTL; a stale language choice is still the user's choice.
type PreferenceStore struct {
	client redis.UniversalClient
	prefix string
}

// NewPreferenceStore creates a new Redis-based locale preference store.
func NewPreferenceStore(client redis.UniversalClient) *PreferenceStore {
	return &PreferenceStore{
		client: client,
		prefix: "locale:",
	}
}

func (s *PreferenceStore) SaveLocale(ctx context.Context, key string, st domainlocale.State) error {
	if key == "" {
		return errors.New("preference key cannot be empty")
	}

	data, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("marshal locale state: %w", err)
	}

	return s.client.Set(ctx, s.prefix+key, data, 0).Err()
}

func (s *PreferenceStore) LoadLocale(ctx context.Context, key string) (domainlocale.State, error) {
	if key == "" {
		return domainlocale.State{}, errors.New("preference key cannot be empty")
	}

	data, err := s.client.Get(ctx, s.prefix+key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return domainlocale.State{}, apperrors.NotFoundf("no locale preference for %q", key)
		}
		return domainlocale.State{}, apperrors.Wrapf(err, apperrors.ErrCodeNetwork, "redis get")
	}

	var st domainlocale.State
	if unmarshalErr := json.Unmarshal([]byte(data), &st); unmarshalErr != nil {
		return domainlocale.State{}, fmt.Errorf("unmarshal locale state: %w", unmarshalErr)
	}

	return st, nil
}

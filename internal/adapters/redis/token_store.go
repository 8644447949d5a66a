package redis

// Package redis provides Redis-based adapters for the dashboard backend.

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	domainsession "github.com/syed-arham-coder/Pak-Turk-sub001/internal/domain/session"
	apperrors "github.com/syed-arham-coder/Pak-Turk-sub001/internal/errors"
)

// TokenStore is a Redis-based session token store for production use.
// It handles TTL semantics automatically based on token ExpiresAt.
type TokenStore struct {
	client redis.UniversalClient
	prefix string
}

// NewTokenStore creates a new Redis-based token store.
func NewTokenStore(client redis.UniversalClient) *TokenStore {
	return &TokenStore{
		client: client,
		prefix: "token:",
	}
}

// NewTokenStoreWithPrefix creates a Redis token store with a custom key prefix.
func NewTokenStoreWithPrefix(client redis.UniversalClient, prefix string) *TokenStore {
	return &TokenStore{
		client: client,
		prefix: prefix,
	}
}

func (s *TokenStore) Save(ctx context.Context, tok domainsession.Token) error {
	if tok.ID == "" {
		return errors.New("token ID cannot be empty")
	}

	data, err := json.Marshal(tok)
	if err != nil {
		return fmt.Errorf("marshal token: %w", err)
	}

	key := s.prefix + tok.ID
	ttl := time.Until(tok.ExpiresAt)
	if ttl <= 0 {
		return errors.New("token is expired")
	}

	return s.client.Set(ctx, key, data, ttl).Err()
}

func (s *TokenStore) Get(ctx context.Context, id string) (domainsession.Token, error) {
	if id == "" {
		return domainsession.Token{}, apperrors.NotFound("token not found")
	}

	key := s.prefix + id
	data, err := s.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return domainsession.Token{}, apperrors.NotFoundf("token %s not found", id)
		}
		return domainsession.Token{}, apperrors.Wrapf(err, apperrors.ErrCodeNetwork, "redis get")
	}

	var tok domainsession.Token
	if unmarshalErr := json.Unmarshal([]byte(data), &tok); unmarshalErr != nil {
		return domainsession.Token{}, fmt.Errorf("unmarshal token: %w", unmarshalErr)
	}

	// Double-check expiration (Redis TTL should handle this, but be defensive)
	if time.Now().After(tok.ExpiresAt) {
		if deleteErr := s.Delete(ctx, id); deleteErr != nil {
			return domainsession.Token{}, fmt.Errorf("cleanup expired token: %w", deleteErr)
		}
		return domainsession.Token{}, apperrors.NotFoundf("token %s not found", id)
	}

	return tok, nil
}

func (s *TokenStore) Delete(ctx context.Context, id string) error {
	if id == "" {
		return nil // Nothing to delete
	}

	key := s.prefix + id
	return s.client.Del(ctx, key).Err()
}

package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/openshelf/shelfd/internal/domain"
	"github.com/openshelf/shelfd/internal/store"
)

// Store persists the governance state, catalog entries and access credentials
// in Redis. Records are permanent (no TTL) and JSON-encoded; keys are derived
// from the fixed namespace tags in keys.go.
//
// The core serializes all mutating calls, so the WATCH blocks below guard
// against concurrent writers outside this process, not within it.
type Store struct {
	client *redis.Client
}

// NewStore creates a Redis-backed store.
func NewStore(client *redis.Client) *Store {
	return &Store{client: client}
}

var _ store.Store = (*Store)(nil)

func (s *Store) LoadState(ctx context.Context) (*domain.State, error) {
	data, err := s.client.Get(ctx, KeyState).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("failed to load state: %w", err)
	}
	var state domain.State
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("failed to unmarshal state: %w", err)
	}
	return &state, nil
}

func (s *Store) SaveState(ctx context.Context, state *domain.State) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}
	if err := s.client.Set(ctx, KeyState, data, 0).Err(); err != nil {
		return fmt.Errorf("failed to save state: %w", err)
	}
	return nil
}

func (s *Store) CreateEntry(ctx context.Context, entry *domain.Entry, state *domain.State) error {
	entryData, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to marshal entry: %w", err)
	}
	stateData, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}

	key := EntryKey(entry.ID)
	err = s.client.Watch(ctx, func(tx *redis.Tx) error {
		exists, err := tx.Exists(ctx, key).Result()
		if err != nil {
			return err
		}
		if exists > 0 {
			return store.ErrAlreadyExists
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, entryData, 0)
			pipe.Set(ctx, KeyState, stateData, 0)
			return nil
		})
		return err
	}, key)
	if err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return store.ErrAlreadyExists
		}
		return fmt.Errorf("failed to create entry: %w", err)
	}
	return nil
}

func (s *Store) GetEntry(ctx context.Context, id domain.EntryID) (*domain.Entry, error) {
	data, err := s.client.Get(ctx, EntryKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get entry: %w", err)
	}
	var entry domain.Entry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, fmt.Errorf("failed to unmarshal entry: %w", err)
	}
	return &entry, nil
}

func (s *Store) PutEntry(ctx context.Context, entry *domain.Entry) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to marshal entry: %w", err)
	}
	// XX: only overwrite an existing record.
	set, err := s.client.SetXX(ctx, EntryKey(entry.ID), data, 0).Result()
	if err != nil {
		return fmt.Errorf("failed to update entry: %w", err)
	}
	if !set {
		return store.ErrNotFound
	}
	return nil
}

func (s *Store) DeleteEntry(ctx context.Context, id domain.EntryID, state *domain.State) error {
	stateData, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}

	key := EntryKey(id)
	err = s.client.Watch(ctx, func(tx *redis.Tx) error {
		exists, err := tx.Exists(ctx, key).Result()
		if err != nil {
			return err
		}
		if exists == 0 {
			return store.ErrNotFound
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Del(ctx, key)
			pipe.Set(ctx, KeyState, stateData, 0)
			return nil
		})
		return err
	}, key)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return store.ErrNotFound
		}
		return fmt.Errorf("failed to delete entry: %w", err)
	}
	return nil
}

func (s *Store) CreateCredential(ctx context.Context, cred *domain.Credential) error {
	data, err := json.Marshal(cred)
	if err != nil {
		return fmt.Errorf("failed to marshal credential: %w", err)
	}
	// NX: the per-principal slot enforces one credential per principal.
	set, err := s.client.SetNX(ctx, CredentialKey(cred.Owner), data, 0).Result()
	if err != nil {
		return fmt.Errorf("failed to create credential: %w", err)
	}
	if !set {
		return store.ErrAlreadyExists
	}
	return nil
}

func (s *Store) GetCredential(ctx context.Context, owner domain.Principal) (*domain.Credential, error) {
	data, err := s.client.Get(ctx, CredentialKey(owner)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get credential: %w", err)
	}
	var cred domain.Credential
	if err := json.Unmarshal(data, &cred); err != nil {
		return nil, fmt.Errorf("failed to unmarshal credential: %w", err)
	}
	return &cred, nil
}

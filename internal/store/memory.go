package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/openshelf/shelfd/internal/domain"
)

// Memory is an in-process Store used by tests and local development. Records
// are deep-copied on the way in and out so callers observe snapshot
// semantics, matching the persistent implementations.
type Memory struct {
	mu          sync.RWMutex
	state       *domain.State
	entries     map[domain.EntryID]*domain.Entry
	credentials map[domain.Principal]*domain.Credential
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		entries:     make(map[domain.EntryID]*domain.Entry),
		credentials: make(map[domain.Principal]*domain.Credential),
	}
}

func (m *Memory) LoadState(_ context.Context) (*domain.State, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.state == nil {
		return nil, ErrNotFound
	}
	return copyState(m.state)
}

func (m *Memory) SaveState(_ context.Context, state *domain.State) error {
	snapshot, err := copyState(state)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = snapshot
	return nil
}

func (m *Memory) CreateEntry(_ context.Context, entry *domain.Entry, state *domain.State) error {
	stateCopy, err := copyState(state)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.entries[entry.ID]; ok {
		return ErrAlreadyExists
	}
	e := *entry
	m.entries[entry.ID] = &e
	m.state = stateCopy
	return nil
}

func (m *Memory) GetEntry(_ context.Context, id domain.EntryID) (*domain.Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	entry, ok := m.entries[id]
	if !ok {
		return nil, ErrNotFound
	}
	e := *entry
	return &e, nil
}

func (m *Memory) PutEntry(_ context.Context, entry *domain.Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.entries[entry.ID]; !ok {
		return ErrNotFound
	}
	e := *entry
	m.entries[entry.ID] = &e
	return nil
}

func (m *Memory) DeleteEntry(_ context.Context, id domain.EntryID, state *domain.State) error {
	stateCopy, err := copyState(state)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.entries[id]; !ok {
		return ErrNotFound
	}
	delete(m.entries, id)
	m.state = stateCopy
	return nil
}

func (m *Memory) CreateCredential(_ context.Context, cred *domain.Credential) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.credentials[cred.Owner]; ok {
		return ErrAlreadyExists
	}
	c := *cred
	m.credentials[cred.Owner] = &c
	return nil
}

func (m *Memory) GetCredential(_ context.Context, owner domain.Principal) (*domain.Credential, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	cred, ok := m.credentials[owner]
	if !ok {
		return nil, ErrNotFound
	}
	c := *cred
	return &c, nil
}

// copyState round-trips through JSON, the same representation the persistent
// stores use, so memory and Redis agree on what survives a save/load cycle.
func copyState(state *domain.State) (*domain.State, error) {
	data, err := json.Marshal(state)
	if err != nil {
		return nil, fmt.Errorf("failed to copy state: %w", err)
	}
	var out domain.State
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("failed to copy state: %w", err)
	}
	return &out, nil
}

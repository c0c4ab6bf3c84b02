package store

import (
	"context"
	"errors"

	"github.com/openshelf/shelfd/internal/domain"
)

// Storage-boundary errors. The core translates these into its own taxonomy
// (duplicate identifier, duplicate credential, not found).
var (
	ErrNotFound      = errors.New("store: record not found")
	ErrAlreadyExists = errors.New("store: record already exists")
)

// Store persists the three record kinds: the governance state singleton, one
// catalog entry per identifier, one access credential per principal. Each
// record is located by deterministic derivation from a fixed namespace tag
// plus the identifying field; there is no separate index.
//
// Multi-record methods (CreateEntry, DeleteEntry) commit the record and the
// state together; a failure must leave both unchanged.
type Store interface {
	// LoadState returns the governance state, or ErrNotFound before
	// initialization. Implementations return a snapshot the caller may
	// mutate freely without affecting stored data.
	LoadState(ctx context.Context) (*domain.State, error)
	SaveState(ctx context.Context, state *domain.State) error

	// CreateEntry writes a new entry and the updated state in one commit.
	// Returns ErrAlreadyExists if the identifier is already in use, in which
	// case the state is not written either.
	CreateEntry(ctx context.Context, entry *domain.Entry, state *domain.State) error
	GetEntry(ctx context.Context, id domain.EntryID) (*domain.Entry, error)
	// PutEntry overwrites an existing entry. Returns ErrNotFound if absent.
	PutEntry(ctx context.Context, entry *domain.Entry) error
	// DeleteEntry removes an entry and writes the updated state in one
	// commit. Returns ErrNotFound if the entry is absent.
	DeleteEntry(ctx context.Context, id domain.EntryID, state *domain.State) error

	// CreateCredential writes a new credential. Returns ErrAlreadyExists if
	// the owner already holds one; uniqueness comes from the per-principal
	// slot, not from a registry.
	CreateCredential(ctx context.Context, cred *domain.Credential) error
	GetCredential(ctx context.Context, owner domain.Principal) (*domain.Credential, error)
}

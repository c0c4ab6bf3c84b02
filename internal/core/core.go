// Package core implements the governance and state-integrity state machine of
// the shared catalog. Every external call is one atomic transition: it either
// fully applies or leaves state and records byte-for-byte unchanged.
package core

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/openshelf/shelfd/internal/domain"
	"github.com/openshelf/shelfd/internal/logger"
	"github.com/openshelf/shelfd/internal/store"
)

// Core serializes all operations on the governance state behind a single
// mutex, giving the single-threaded state-machine semantics the protocols
// rely on. Mutations are applied to an in-memory snapshot and only persisted
// on success, so a failing call never leaves a partial update.
type Core struct {
	mu    sync.Mutex
	store store.Store
	log   logger.Logger
	now   func() time.Time
}

// New creates a Core. The clock is mandatory: time-based logic must fail
// rather than proceed with an assumed value, so a nil clock is a
// construction error instead of a silent fallback.
func New(st store.Store, log logger.Logger, now func() time.Time) (*Core, error) {
	if st == nil {
		return nil, errors.New("core: store is required")
	}
	if log == nil {
		return nil, errors.New("core: logger is required")
	}
	if now == nil {
		return nil, errors.New("core: clock is required")
	}
	return &Core{store: st, log: log, now: now}, nil
}

// Bootstrap seeds the governance state with the deploy-time super admin and
// optional initial role members. It is idempotent: if a state already exists
// it is left untouched, so a restart never re-seeds or overwrites governance.
func (c *Core) Bootstrap(ctx context.Context, superAdmin domain.Principal, admins, curators []domain.Principal) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if superAdmin.IsZero() {
		return domain.ErrInvalidSuperAdmin
	}

	_, err := c.store.LoadState(ctx)
	if err == nil {
		c.log.Info("governance state already initialized, skipping bootstrap")
		return nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("failed to check governance state: %w", err)
	}

	state := domain.NewState(superAdmin)
	for _, p := range admins {
		if err := state.AddAdmin(p); err != nil {
			return fmt.Errorf("genesis admin %s: %w", p.Short(), err)
		}
	}
	for _, p := range curators {
		if err := state.AddCurator(p); err != nil {
			return fmt.Errorf("genesis curator %s: %w", p.Short(), err)
		}
	}

	if err := c.store.SaveState(ctx, state); err != nil {
		return fmt.Errorf("failed to save genesis state: %w", err)
	}
	c.log.Info("governance state initialized",
		logger.String("super_admin", superAdmin.Short()),
		logger.Int("admins", len(admins)),
		logger.Int("curators", len(curators)))
	return nil
}

// loadState fetches the current governance snapshot for one transition.
func (c *Core) loadState(ctx context.Context) (*domain.State, error) {
	state, err := c.store.LoadState(ctx)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, errors.New("governance state not initialized")
		}
		return nil, fmt.Errorf("failed to load governance state: %w", err)
	}
	return state, nil
}

// unix returns the trusted clock reading for this call.
func (c *Core) unix() int64 {
	return c.now().Unix()
}

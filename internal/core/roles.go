package core

import (
	"context"
	"fmt"

	"github.com/openshelf/shelfd/internal/domain"
	"github.com/openshelf/shelfd/internal/logger"
)

// AddAdmin grants the admin role. The super admin may delegate this to
// existing admins.
func (c *Core) AddAdmin(ctx context.Context, caller, newAdmin domain.Principal) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	state, err := c.loadState(ctx)
	if err != nil {
		return err
	}
	if !state.CanManageRoles(caller) {
		return domain.ErrInsufficientPermissions
	}
	if err := state.AddAdmin(newAdmin); err != nil {
		return err
	}
	if err := c.store.SaveState(ctx, state); err != nil {
		return fmt.Errorf("failed to save state: %w", err)
	}

	c.log.Info("admin added",
		logger.String("admin", newAdmin.Short()),
		logger.String("by", caller.Short()))
	return nil
}

// RemoveAdmin revokes the admin role (super admin only).
func (c *Core) RemoveAdmin(ctx context.Context, caller, admin domain.Principal) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	state, err := c.loadState(ctx)
	if err != nil {
		return err
	}
	if !state.IsSuperAdmin(caller) {
		return domain.ErrOnlySuperAdmin
	}
	if err := state.RemoveAdmin(admin); err != nil {
		return err
	}
	if err := c.store.SaveState(ctx, state); err != nil {
		return fmt.Errorf("failed to save state: %w", err)
	}

	c.log.Info("admin removed",
		logger.String("admin", admin.Short()),
		logger.String("by", caller.Short()))
	return nil
}

// AddCurator grants the curator role (super admin or admin).
func (c *Core) AddCurator(ctx context.Context, caller, newCurator domain.Principal) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	state, err := c.loadState(ctx)
	if err != nil {
		return err
	}
	if !state.CanManageRoles(caller) {
		return domain.ErrInsufficientPermissions
	}
	if err := state.AddCurator(newCurator); err != nil {
		return err
	}
	if err := c.store.SaveState(ctx, state); err != nil {
		return fmt.Errorf("failed to save state: %w", err)
	}

	c.log.Info("curator added",
		logger.String("curator", newCurator.Short()),
		logger.String("by", caller.Short()))
	return nil
}

// RemoveCurator revokes the curator role (super admin or admin).
func (c *Core) RemoveCurator(ctx context.Context, caller, curator domain.Principal) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	state, err := c.loadState(ctx)
	if err != nil {
		return err
	}
	if !state.CanManageRoles(caller) {
		return domain.ErrInsufficientPermissions
	}
	if err := state.RemoveCurator(curator); err != nil {
		return err
	}
	if err := c.store.SaveState(ctx, state); err != nil {
		return fmt.Errorf("failed to save state: %w", err)
	}

	c.log.Info("curator removed",
		logger.String("curator", curator.Short()),
		logger.String("by", caller.Short()))
	return nil
}

// Pause halts catalog writes and credential minting (super admin only).
// Transfer/recovery operations and reads stay available: they are the remedy
// path when normal operation is intentionally halted.
func (c *Core) Pause(ctx context.Context, caller domain.Principal) error {
	return c.setPaused(ctx, caller, true)
}

// Unpause resumes normal operation (super admin only).
func (c *Core) Unpause(ctx context.Context, caller domain.Principal) error {
	return c.setPaused(ctx, caller, false)
}

func (c *Core) setPaused(ctx context.Context, caller domain.Principal, paused bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	state, err := c.loadState(ctx)
	if err != nil {
		return err
	}
	if !state.IsSuperAdmin(caller) {
		return domain.ErrOnlySuperAdmin
	}
	state.Paused = paused
	if err := c.store.SaveState(ctx, state); err != nil {
		return fmt.Errorf("failed to save state: %w", err)
	}

	c.log.Warn("SECURITY_EVENT pause state changed",
		logger.Bool("paused", paused),
		logger.String("by", caller.Short()))
	return nil
}

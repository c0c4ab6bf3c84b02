package core

import (
	"context"
	"fmt"

	"github.com/openshelf/shelfd/internal/domain"
	"github.com/openshelf/shelfd/internal/logger"
)

// InitiateTransfer starts the two-phase, time-locked super-admin handover
// (super admin only).
func (c *Core) InitiateTransfer(ctx context.Context, caller, candidate domain.Principal) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	state, err := c.loadState(ctx)
	if err != nil {
		return err
	}
	if !state.IsSuperAdmin(caller) {
		return domain.ErrOnlySuperAdmin
	}

	now := c.unix()
	if err := state.InitiateTransfer(candidate, now); err != nil {
		return err
	}
	if err := c.store.SaveState(ctx, state); err != nil {
		return fmt.Errorf("failed to save state: %w", err)
	}

	c.log.Warn("SECURITY_EVENT super admin transfer initiated",
		logger.String("by", caller.Short()),
		logger.String("candidate", candidate.Short()),
		logger.Int64("initiated_at", now),
		logger.Int64("confirmable_at", now+domain.TransferTimelockSeconds))
	return nil
}

// ConfirmTransfer completes a pending transfer after the timelock (super
// admin only).
func (c *Core) ConfirmTransfer(ctx context.Context, caller domain.Principal) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	state, err := c.loadState(ctx)
	if err != nil {
		return err
	}
	if !state.IsSuperAdmin(caller) {
		return domain.ErrOnlySuperAdmin
	}

	next, err := state.ConfirmTransfer(c.unix())
	if err != nil {
		return err
	}
	if err := c.store.SaveState(ctx, state); err != nil {
		return fmt.Errorf("failed to save state: %w", err)
	}

	c.log.Warn("SECURITY_EVENT super admin transfer completed",
		logger.String("previous", caller.Short()),
		logger.String("new", next.Short()))
	return nil
}

// CancelTransfer aborts a pending transfer (super admin only). Cancellation
// is never time-locked.
func (c *Core) CancelTransfer(ctx context.Context, caller domain.Principal) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	state, err := c.loadState(ctx)
	if err != nil {
		return err
	}
	if !state.IsSuperAdmin(caller) {
		return domain.ErrOnlySuperAdmin
	}

	cancelled, err := state.CancelTransfer()
	if err != nil {
		return err
	}
	if err := c.store.SaveState(ctx, state); err != nil {
		return fmt.Errorf("failed to save state: %w", err)
	}

	c.log.Warn("SECURITY_EVENT super admin transfer cancelled",
		logger.String("by", caller.Short()),
		logger.String("candidate", cancelled.Short()))
	return nil
}

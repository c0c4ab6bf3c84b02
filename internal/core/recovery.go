package core

import (
	"context"
	"fmt"

	"github.com/openshelf/shelfd/internal/domain"
	"github.com/openshelf/shelfd/internal/logger"
)

// InitiateRecovery starts the multi-party emergency handover (admin only).
// The initiator's vote is counted immediately.
func (c *Core) InitiateRecovery(ctx context.Context, caller, candidate domain.Principal) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	state, err := c.loadState(ctx)
	if err != nil {
		return err
	}
	if !state.IsAdmin(caller) {
		return domain.ErrInsufficientPermissions
	}

	if err := state.InitiateRecovery(caller, candidate); err != nil {
		return err
	}
	if err := c.store.SaveState(ctx, state); err != nil {
		return fmt.Errorf("failed to save state: %w", err)
	}

	c.log.Warn("SECURITY_EVENT emergency recovery initiated",
		logger.String("by", caller.Short()),
		logger.String("candidate", candidate.Short()),
		logger.Int("votes", 1),
		logger.Int("threshold", domain.RecoveryThreshold))
	return nil
}

// VoteRecovery adds an admin vote. Reaching the threshold executes the
// handover atomically within this same call; there is no separate
// confirmation step.
func (c *Core) VoteRecovery(ctx context.Context, caller domain.Principal) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	state, err := c.loadState(ctx)
	if err != nil {
		return err
	}
	if !state.IsAdmin(caller) {
		return domain.ErrInsufficientPermissions
	}

	completed, err := state.VoteRecovery(caller)
	if err != nil {
		return err
	}
	if err := c.store.SaveState(ctx, state); err != nil {
		return fmt.Errorf("failed to save state: %w", err)
	}

	if completed {
		c.log.Warn("SECURITY_EVENT emergency recovery executed",
			logger.String("final_vote_by", caller.Short()),
			logger.String("new_super_admin", state.SuperAdmin.Short()))
	} else {
		c.log.Warn("SECURITY_EVENT emergency recovery vote added",
			logger.String("by", caller.Short()),
			logger.Int("votes", len(state.EmergencyVotes)),
			logger.Int("threshold", domain.RecoveryThreshold))
	}
	return nil
}

// CancelRecovery clears a pending recovery. Only the current super admin,
// old or newly installed, may cancel.
func (c *Core) CancelRecovery(ctx context.Context, caller domain.Principal) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	state, err := c.loadState(ctx)
	if err != nil {
		return err
	}
	if !state.IsSuperAdmin(caller) {
		return domain.ErrOnlySuperAdmin
	}

	cancelled, err := state.CancelRecovery()
	if err != nil {
		return err
	}
	if err := c.store.SaveState(ctx, state); err != nil {
		return fmt.Errorf("failed to save state: %w", err)
	}

	c.log.Warn("SECURITY_EVENT emergency recovery cancelled",
		logger.String("by", caller.Short()),
		logger.String("candidate", cancelled.Short()))
	return nil
}

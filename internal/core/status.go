package core

import (
	"context"

	"github.com/openshelf/shelfd/internal/domain"
)

// TransferStatus describes a pending time-locked handover.
type TransferStatus struct {
	Candidate     domain.Principal `json:"candidate"`
	InitiatedAt   int64            `json:"initiated_at"`
	ConfirmableAt int64            `json:"confirmable_at"`
}

// RecoveryStatus describes a pending emergency recovery.
type RecoveryStatus struct {
	Candidate domain.Principal   `json:"candidate"`
	Votes     []domain.Principal `json:"votes"`
	Threshold int                `json:"threshold"`
}

// Status is the public read-only governance snapshot.
type Status struct {
	SuperAdmin   domain.Principal   `json:"super_admin"`
	Admins       []domain.Principal `json:"admins"`
	Curators     []domain.Principal `json:"curators"`
	CatalogCount uint64             `json:"catalog_count"`
	Version      uint8              `json:"version"`
	Paused       bool               `json:"paused"`
	Transfer     *TransferStatus    `json:"pending_transfer,omitempty"`
	Recovery     *RecoveryStatus    `json:"pending_recovery,omitempty"`
}

// Status reports the governance snapshot. Read-only: available while paused.
func (c *Core) Status(ctx context.Context) (*Status, error) {
	state, err := c.loadState(ctx)
	if err != nil {
		return nil, err
	}

	st := &Status{
		SuperAdmin:   state.SuperAdmin,
		Admins:       state.Admins,
		Curators:     state.Curators,
		CatalogCount: state.CatalogCount,
		Version:      state.Version,
		Paused:       state.Paused,
	}
	if state.HasPendingTransfer() {
		st.Transfer = &TransferStatus{
			Candidate:     *state.PendingSuperAdmin,
			InitiatedAt:   state.TransferInitiatedAt,
			ConfirmableAt: state.TransferInitiatedAt + domain.TransferTimelockSeconds,
		}
	}
	if state.HasPendingRecovery() {
		st.Recovery = &RecoveryStatus{
			Candidate: *state.EmergencyCandidate,
			Votes:     state.EmergencyVotes,
			Threshold: domain.RecoveryThreshold,
		}
	}
	return st, nil
}

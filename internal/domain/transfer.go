package domain

// TransferTimelockSeconds is the mandatory delay between initiating and
// confirming a super-admin transfer. The delay creates an observation window
// to detect and react to an erroneous or coerced transfer before it takes
// effect.
const TransferTimelockSeconds = 7 * secondsPerDay

// validateHandoverCandidate applies the shared candidate checks for both
// handover protocols: the candidate must not be the zero principal, not the
// current super admin, and not an existing admin.
func (s *State) validateHandoverCandidate(candidate Principal) error {
	if candidate.IsZero() {
		return ErrInvalidSuperAdmin
	}
	if candidate == s.SuperAdmin {
		return ErrSelfTransferNotAllowed
	}
	if s.IsAdmin(candidate) {
		return ErrInvalidSuperAdmin
	}
	return nil
}

// InitiateTransfer records a pending time-locked transfer to candidate.
// The two handover protocols are mutually exclusive: a pending emergency
// recovery blocks initiating a transfer.
func (s *State) InitiateTransfer(candidate Principal, now int64) error {
	if err := s.validateHandoverCandidate(candidate); err != nil {
		return err
	}
	if s.HasPendingTransfer() {
		return ErrTransferAlreadyPending
	}
	if s.HasPendingRecovery() {
		return ErrRecoveryAlreadyPending
	}
	pending := candidate
	s.PendingSuperAdmin = &pending
	s.TransferInitiatedAt = now
	return nil
}

// ConfirmTransfer completes a pending transfer once the timelock has expired
// (elapsed time of exactly the timelock is sufficient). On success the
// pending fields are cleared and the new super admin is returned.
func (s *State) ConfirmTransfer(now int64) (Principal, error) {
	if !s.HasPendingTransfer() {
		return Principal{}, ErrNoPendingTransfer
	}
	if now-s.TransferInitiatedAt < TransferTimelockSeconds {
		return Principal{}, ErrTimelockNotExpired
	}
	next := *s.PendingSuperAdmin
	s.SuperAdmin = next
	s.PendingSuperAdmin = nil
	s.TransferInitiatedAt = 0
	return next, nil
}

// CancelTransfer clears a pending transfer unconditionally; cancellation is
// never time-locked. Returns the candidate that was cancelled.
func (s *State) CancelTransfer() (Principal, error) {
	if !s.HasPendingTransfer() {
		return Principal{}, ErrNoPendingTransfer
	}
	cancelled := *s.PendingSuperAdmin
	s.PendingSuperAdmin = nil
	s.TransferInitiatedAt = 0
	return cancelled, nil
}

package domain

// RecoveryThreshold is the number of distinct admin votes required to execute
// an emergency recovery. This path has no time lock (a lost key cannot wait
// out a delay), so it substitutes corroboration from a quorum of distinct
// admins instead.
const RecoveryThreshold = 2

// InitiateRecovery records a pending emergency recovery toward candidate,
// with the initiator's vote counted. Only callable by an admin (enforced by
// the core); requires enough admins to ever reach the threshold. A pending
// transfer blocks initiating a recovery (the protocols are mutually
// exclusive).
func (s *State) InitiateRecovery(initiator, candidate Principal) error {
	if len(s.Admins) < RecoveryThreshold {
		return ErrInsufficientAdminsForRecovery
	}
	if err := s.validateHandoverCandidate(candidate); err != nil {
		return err
	}
	if s.HasPendingRecovery() {
		return ErrRecoveryAlreadyPending
	}
	if s.HasPendingTransfer() {
		return ErrTransferAlreadyPending
	}
	pending := candidate
	s.EmergencyCandidate = &pending
	s.EmergencyVotes = []Principal{initiator}
	return nil
}

// VoteRecovery adds voter to the pending recovery. When the vote count
// reaches the threshold the handover executes within this same call: the
// super admin is replaced and the recovery sub-state is cleared. Reports
// whether the recovery completed.
func (s *State) VoteRecovery(voter Principal) (bool, error) {
	if !s.HasPendingRecovery() {
		return false, ErrNoRecoveryPending
	}
	if containsPrincipal(s.EmergencyVotes, voter) {
		return false, ErrAlreadyVotedForRecovery
	}
	s.EmergencyVotes = append(s.EmergencyVotes, voter)
	if len(s.EmergencyVotes) < RecoveryThreshold {
		return false, nil
	}
	s.SuperAdmin = *s.EmergencyCandidate
	s.EmergencyCandidate = nil
	s.EmergencyVotes = nil
	return true, nil
}

// CancelRecovery clears a pending recovery unconditionally. Returns the
// candidate that was cancelled.
func (s *State) CancelRecovery() (Principal, error) {
	if !s.HasPendingRecovery() {
		return Principal{}, ErrNoRecoveryPending
	}
	cancelled := *s.EmergencyCandidate
	s.EmergencyCandidate = nil
	s.EmergencyVotes = nil
	return cancelled, nil
}

package domain

// Role set capacities. The moderator set is reserved for future use; no
// operation reads or writes it beyond initialization.
const (
	MaxAdmins     = 3
	MaxCurators   = 10
	MaxModerators = 5
)

// State is the governance aggregate. Exactly one instance exists; it is
// loaded, mutated and saved by the core, never held as a package global.
// All mutating operations go through the core so that each external call is
// one atomic transition.
type State struct {
	SuperAdmin Principal   `json:"super_admin"`
	Admins     []Principal `json:"admins"`
	Curators   []Principal `json:"curators"`
	Moderators []Principal `json:"moderators"`

	CatalogCount uint64 `json:"catalog_count"`
	Version      uint8  `json:"version"`
	Paused       bool   `json:"paused"`

	// Rate-limiter bookkeeping for catalog additions.
	LastAdditionTimestamp int64 `json:"last_addition_timestamp"`
	LastAdditionDay       int64 `json:"last_addition_day"`
	AdditionsToday        int   `json:"additions_today"`

	// Time-locked super-admin transfer sub-state.
	PendingSuperAdmin   *Principal `json:"pending_super_admin,omitempty"`
	TransferInitiatedAt int64      `json:"transfer_initiated_at,omitempty"`

	// Emergency-recovery sub-state.
	EmergencyCandidate *Principal  `json:"emergency_candidate,omitempty"`
	EmergencyVotes     []Principal `json:"emergency_votes,omitempty"`
}

// NewState builds the initial aggregate for a deploy-time super admin.
func NewState(superAdmin Principal) *State {
	return &State{
		SuperAdmin: superAdmin,
		Admins:     []Principal{},
		Curators:   []Principal{},
		Moderators: []Principal{},
		Version:    1,
	}
}

func (s *State) IsSuperAdmin(p Principal) bool { return s.SuperAdmin == p }

func (s *State) IsAdmin(p Principal) bool { return containsPrincipal(s.Admins, p) }

func (s *State) IsCurator(p Principal) bool { return containsPrincipal(s.Curators, p) }

// HasAdminPrivileges reports whether p is the super admin or an admin.
func (s *State) HasAdminPrivileges(p Principal) bool {
	return s.IsSuperAdmin(p) || s.IsAdmin(p)
}

// CanManageRoles reports whether p may add admins/curators.
func (s *State) CanManageRoles(p Principal) bool {
	return s.HasAdminPrivileges(p)
}

// CanCurate reports whether p may add or update catalog entries.
func (s *State) CanCurate(p Principal) bool {
	return s.HasAdminPrivileges(p) || s.IsCurator(p)
}

// HasPendingTransfer reports whether a time-locked transfer is recorded.
func (s *State) HasPendingTransfer() bool { return s.PendingSuperAdmin != nil }

// HasPendingRecovery reports whether an emergency recovery is recorded.
func (s *State) HasPendingRecovery() bool { return s.EmergencyCandidate != nil }

// AddAdmin adds p to the admin set, enforcing capacity and uniqueness.
func (s *State) AddAdmin(p Principal) error {
	if len(s.Admins) >= MaxAdmins {
		return ErrRoleLimitExceeded
	}
	if s.IsAdmin(p) {
		return ErrDuplicateAdmin
	}
	s.Admins = append(s.Admins, p)
	return nil
}

// RemoveAdmin removes p from the admin set.
func (s *State) RemoveAdmin(p Principal) error {
	next, ok := removePrincipal(s.Admins, p)
	if !ok {
		return ErrAdminNotFound
	}
	s.Admins = next
	return nil
}

// AddCurator adds p to the curator set, enforcing capacity and uniqueness.
func (s *State) AddCurator(p Principal) error {
	if len(s.Curators) >= MaxCurators {
		return ErrRoleLimitExceeded
	}
	if s.IsCurator(p) {
		return ErrDuplicateCurator
	}
	s.Curators = append(s.Curators, p)
	return nil
}

// RemoveCurator removes p from the curator set.
func (s *State) RemoveCurator(p Principal) error {
	next, ok := removePrincipal(s.Curators, p)
	if !ok {
		return ErrCuratorNotFound
	}
	s.Curators = next
	return nil
}

func containsPrincipal(set []Principal, p Principal) bool {
	for _, member := range set {
		if member == p {
			return true
		}
	}
	return false
}

func removePrincipal(set []Principal, p Principal) ([]Principal, bool) {
	for i, member := range set {
		if member == p {
			return append(set[:i], set[i+1:]...), true
		}
	}
	return set, false
}

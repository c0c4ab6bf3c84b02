package domain

import "errors"

// Error is a terminal core error. Every operation that fails with an Error
// leaves the global state and all records untouched; the Tag is stable and
// safe to expose to callers.
type Error struct {
	Tag string
	msg string
}

func (e *Error) Error() string { return e.msg }

func newErr(tag, msg string) *Error { return &Error{Tag: tag, msg: msg} }

// Validation errors.
var (
	ErrFieldEmpty            = newErr("FIELD_EMPTY", "field must not be empty")
	ErrFieldTooLong          = newErr("FIELD_TOO_LONG", "field exceeds maximum length")
	ErrInvalidCharacter      = newErr("INVALID_CHARACTER", "field contains non-printable or non-ASCII characters")
	ErrInvalidIdentifier     = newErr("INVALID_IDENTIFIER", "identifier is not a structurally valid v4 UUID")
	ErrInvalidContentPointer = newErr("INVALID_CONTENT_POINTER", "content pointer is not a valid CIDv0 or CIDv1 string")
)

// Authorization errors.
var (
	ErrOnlySuperAdmin          = newErr("ONLY_SUPER_ADMIN", "only the super admin can perform this action")
	ErrInsufficientPermissions = newErr("INSUFFICIENT_PERMISSIONS", "caller lacks the required role")
	ErrRoleLimitExceeded       = newErr("ROLE_LIMIT_EXCEEDED", "role set is at capacity")
	ErrDuplicateAdmin          = newErr("DUPLICATE_ADMIN", "principal is already an admin")
	ErrDuplicateCurator        = newErr("DUPLICATE_CURATOR", "principal is already a curator")
	ErrAdminNotFound           = newErr("ADMIN_NOT_FOUND", "principal is not an admin")
	ErrCuratorNotFound         = newErr("CURATOR_NOT_FOUND", "principal is not a curator")
)

// Lifecycle errors.
var (
	ErrDuplicateCredential = newErr("DUPLICATE_CREDENTIAL", "a credential already exists for this principal")
	ErrDuplicateIdentifier = newErr("DUPLICATE_IDENTIFIER", "an entry with this identifier already exists")
	ErrNotFound            = newErr("NOT_FOUND", "record not found")
)

// Availability errors.
var (
	ErrPaused = newErr("PROGRAM_PAUSED", "catalog operations are paused")
)

// Rate errors.
var (
	ErrCooldownActive  = newErr("RATE_LIMIT_COOLDOWN", "addition cooldown has not elapsed")
	ErrDailyCapReached = newErr("RATE_LIMIT_DAILY_CAP", "daily addition cap reached")
)

// Protocol errors (super-admin transfer and emergency recovery).
var (
	ErrInvalidSuperAdmin             = newErr("INVALID_SUPER_ADMIN", "candidate is not a valid super admin")
	ErrSelfTransferNotAllowed        = newErr("SELF_TRANSFER_NOT_ALLOWED", "cannot transfer to the current super admin")
	ErrTransferAlreadyPending        = newErr("TRANSFER_ALREADY_PENDING", "a super admin transfer is already pending")
	ErrNoPendingTransfer             = newErr("NO_PENDING_TRANSFER", "no super admin transfer is pending")
	ErrTimelockNotExpired            = newErr("TIMELOCK_NOT_EXPIRED", "transfer timelock has not expired")
	ErrRecoveryAlreadyPending        = newErr("RECOVERY_ALREADY_PENDING", "an emergency recovery is already pending")
	ErrNoRecoveryPending             = newErr("NO_RECOVERY_PENDING", "no emergency recovery is pending")
	ErrAlreadyVotedForRecovery       = newErr("ALREADY_VOTED_FOR_RECOVERY", "caller has already voted for this recovery")
	ErrInsufficientAdminsForRecovery = newErr("INSUFFICIENT_ADMINS_FOR_RECOVERY", "not enough admins to reach the recovery threshold")
)

// TagOf extracts the stable error tag from err, unwrapping as needed.
// Returns the empty string for non-core errors.
func TagOf(err error) string {
	var ce *Error
	if errors.As(err, &ce) {
		return ce.Tag
	}
	return ""
}

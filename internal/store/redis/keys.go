package redis

import (
	"github.com/openshelf/shelfd/internal/domain"
)

const (
	// KeyState is the key of the governance state singleton.
	KeyState = "shelf:state"
	// KeyPrefixEntry is the prefix for catalog entry keys.
	KeyPrefixEntry = "shelf:entry:"
	// KeyPrefixCredential is the prefix for access credential keys.
	KeyPrefixCredential = "shelf:card:"
)

// EntryKey returns the Redis key for a catalog entry.
func EntryKey(id domain.EntryID) string {
	return KeyPrefixEntry + id.String()
}

// CredentialKey returns the Redis key for a principal's access credential.
func CredentialKey(owner domain.Principal) string {
	return KeyPrefixCredential + owner.String()
}

package domain

import (
	"encoding/hex"
	"fmt"
)

// PrincipalSize is the size in bytes of a principal identifier.
const PrincipalSize = 32

// Principal is an opaque fixed-size identity value representing a caller.
//
// The calling boundary is responsible for authenticating that the caller
// actually controls the principal (signature verification, sessions, ...).
// The core only compares principals for equality and membership.
type Principal [PrincipalSize]byte

// ParsePrincipal decodes a hex-encoded principal.
func ParsePrincipal(s string) (Principal, error) {
	var p Principal
	raw, err := hex.DecodeString(s)
	if err != nil {
		return p, fmt.Errorf("invalid principal encoding: %w", err)
	}
	if len(raw) != PrincipalSize {
		return p, fmt.Errorf("invalid principal length: got %d bytes, want %d", len(raw), PrincipalSize)
	}
	copy(p[:], raw)
	return p, nil
}

// String returns the hex encoding of the principal.
func (p Principal) String() string {
	return hex.EncodeToString(p[:])
}

// Short returns a truncated form suitable for log fields.
func (p Principal) Short() string {
	return hex.EncodeToString(p[:4])
}

// IsZero reports whether the principal is the all-zero (invalid) value.
func (p Principal) IsZero() bool {
	return p == Principal{}
}

// MarshalText implements encoding.TextMarshaler so principals round-trip
// through JSON as hex strings instead of byte arrays.
func (p Principal) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Principal) UnmarshalText(text []byte) error {
	parsed, err := ParsePrincipal(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

package domain

import (
	"fmt"
	"strings"
)

// Text field bounds shared by the catalog operations.
const (
	TitleMinLen    = 1
	TitleMaxLen    = 100
	AuthorMinLen   = 1
	AuthorMaxLen   = 50
	CategoryMinLen = 1
	CategoryMaxLen = 30
)

// base58Alphabet is the Bitcoin base58 alphabet: digits 1-9 and letters
// excluding 0, O, I and l.
const base58Alphabet = "123456789ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz"

// ValidateText checks that value has a length in [min, max] and contains only
// printable ASCII (0x20-0x7E). The field name is carried in the wrapped error.
func ValidateText(field, value string, min, max int) error {
	if len(value) < min {
		return fmt.Errorf("%s: %w", field, ErrFieldEmpty)
	}
	if len(value) > max {
		return fmt.Errorf("%s: %w (max %d)", field, ErrFieldTooLong, max)
	}
	for _, b := range []byte(value) {
		if b < 0x20 || b > 0x7e {
			return fmt.Errorf("%s: %w", field, ErrInvalidCharacter)
		}
	}
	return nil
}

// ValidateEntryID performs the structural v4 UUID check on an entry
// identifier: not all-zero, version nibble 0x4 in byte 6, variant bits 10 in
// byte 8. It is not a randomness or uniqueness guarantee.
func ValidateEntryID(id EntryID) error {
	if id == (EntryID{}) {
		return ErrInvalidIdentifier
	}
	if (id[6]>>4)&0x0f != 4 {
		return ErrInvalidIdentifier
	}
	if (id[8]>>6)&0x03 != 2 {
		return ErrInvalidIdentifier
	}
	return nil
}

// ValidateContentPointer accepts two shapes of content-addressed locators:
//
//   - CIDv0: "Qm" followed by exactly 44 base58 characters (total length 46)
//   - CIDv1: "baf" followed by lowercase RFC 4648 base32 (a-z, 2-7), total
//     length at least 32
//
// Anything else is rejected.
func ValidateContentPointer(value string) error {
	switch {
	case strings.HasPrefix(value, "Qm"):
		if len(value) != 46 {
			return ErrInvalidContentPointer
		}
		for _, r := range value[2:] {
			if !strings.ContainsRune(base58Alphabet, r) {
				return ErrInvalidContentPointer
			}
		}
		return nil
	case strings.HasPrefix(value, "baf"):
		if len(value) < 32 {
			return ErrInvalidContentPointer
		}
		for _, b := range []byte(value[3:]) {
			if (b < 'a' || b > 'z') && (b < '2' || b > '7') {
				return ErrInvalidContentPointer
			}
		}
		return nil
	default:
		return ErrInvalidContentPointer
	}
}

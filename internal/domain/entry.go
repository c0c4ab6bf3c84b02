package domain

import "github.com/google/uuid"

// EntryID is the 128-bit identifier of a catalog entry. Clients supply it; the
// core only checks its v4 structure (see ValidateEntryID).
type EntryID [16]byte

// ParseEntryID parses the canonical UUID text form.
func ParseEntryID(s string) (EntryID, error) {
	u, err := uuid.Parse(s)
	if err != nil {
		return EntryID{}, err
	}
	return EntryID(u), nil
}

// String returns the canonical UUID text form.
func (id EntryID) String() string {
	return uuid.UUID(id).String()
}

// MarshalText implements encoding.TextMarshaler.
func (id EntryID) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (id *EntryID) UnmarshalText(text []byte) error {
	parsed, err := ParseEntryID(string(text))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

// Entry is a validated metadata record pointing to externally-stored content.
// The catalog never stores the content itself, only the pointer.
type Entry struct {
	ID             EntryID `json:"id"`
	Title          string  `json:"title"`
	Author         string  `json:"author"`
	ContentPointer string  `json:"content_pointer"`
	Category       string  `json:"category"`
	// PublicationYear is optional; 0 means unknown.
	PublicationYear uint16    `json:"publication_year,omitempty"`
	CreatedAt       int64     `json:"created_at"`
	CreatedBy       Principal `json:"created_by"`
}

// Credential is a one-per-principal record granting read access.
// It is created once and never revoked.
type Credential struct {
	Owner    Principal `json:"owner"`
	IssuedAt int64     `json:"issued_at"`
}

package core

import (
	"context"
	"errors"
	"fmt"

	"github.com/openshelf/shelfd/internal/domain"
	"github.com/openshelf/shelfd/internal/logger"
	"github.com/openshelf/shelfd/internal/store"
)

// NewEntry carries the client-supplied fields of a catalog addition.
type NewEntry struct {
	ID              domain.EntryID
	Title           string
	Author          string
	ContentPointer  string
	Category        string
	PublicationYear uint16 // 0 = unknown
}

// EntryUpdate carries a partial update; nil fields are left unchanged.
type EntryUpdate struct {
	Title           *string
	Author          *string
	ContentPointer  *string
	Category        *string
	PublicationYear *uint16
}

// MintCredential issues the one-time access credential for caller.
func (c *Core) MintCredential(ctx context.Context, caller domain.Principal) (*domain.Credential, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	state, err := c.loadState(ctx)
	if err != nil {
		return nil, err
	}
	if state.Paused {
		return nil, domain.ErrPaused
	}

	cred := &domain.Credential{Owner: caller, IssuedAt: c.unix()}
	if err := c.store.CreateCredential(ctx, cred); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return nil, domain.ErrDuplicateCredential
		}
		return nil, fmt.Errorf("failed to create credential: %w", err)
	}

	c.log.Info("credential minted", logger.String("owner", caller.Short()))
	return cred, nil
}

// VerifyCredential returns the credential held by owner, or NotFound.
// Read-only: available while paused.
func (c *Core) VerifyCredential(ctx context.Context, owner domain.Principal) (*domain.Credential, error) {
	cred, err := c.store.GetCredential(ctx, owner)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get credential: %w", err)
	}
	return cred, nil
}

// AddEntry creates a catalog entry. Validation runs to completion before any
// write; the rate-limiter state commits together with the entry.
func (c *Core) AddEntry(ctx context.Context, caller domain.Principal, in NewEntry) (*domain.Entry, error) {
	if err := validateEntryFields(in); err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	state, err := c.loadState(ctx)
	if err != nil {
		return nil, err
	}
	if state.Paused {
		return nil, domain.ErrPaused
	}
	if !state.CanCurate(caller) {
		return nil, domain.ErrInsufficientPermissions
	}

	now := c.unix()
	if err := state.ApplyAdditionRate(now); err != nil {
		return nil, err
	}

	entry := &domain.Entry{
		ID:              in.ID,
		Title:           in.Title,
		Author:          in.Author,
		ContentPointer:  in.ContentPointer,
		Category:        in.Category,
		PublicationYear: in.PublicationYear,
		CreatedAt:       now,
		CreatedBy:       caller,
	}
	state.CatalogCount++

	if err := c.store.CreateEntry(ctx, entry, state); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return nil, domain.ErrDuplicateIdentifier
		}
		return nil, fmt.Errorf("failed to create entry: %w", err)
	}

	c.log.Info("entry added",
		logger.String("id", entry.ID.String()),
		logger.String("title", entry.Title),
		logger.String("by", caller.Short()))
	return entry, nil
}

// UpdateEntry applies a partial update. Admins may update any entry; a
// curator only entries it created.
func (c *Core) UpdateEntry(ctx context.Context, caller domain.Principal, id domain.EntryID, upd EntryUpdate) (*domain.Entry, error) {
	if err := validateUpdateFields(upd); err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	state, err := c.loadState(ctx)
	if err != nil {
		return nil, err
	}
	if state.Paused {
		return nil, domain.ErrPaused
	}

	entry, err := c.store.GetEntry(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get entry: %w", err)
	}

	allowed := state.HasAdminPrivileges(caller) ||
		(state.IsCurator(caller) && entry.CreatedBy == caller)
	if !allowed {
		return nil, domain.ErrInsufficientPermissions
	}

	if upd.Title != nil {
		entry.Title = *upd.Title
	}
	if upd.Author != nil {
		entry.Author = *upd.Author
	}
	if upd.ContentPointer != nil {
		entry.ContentPointer = *upd.ContentPointer
	}
	if upd.Category != nil {
		entry.Category = *upd.Category
	}
	if upd.PublicationYear != nil {
		entry.PublicationYear = *upd.PublicationYear
	}

	if err := c.store.PutEntry(ctx, entry); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to update entry: %w", err)
	}

	c.log.Info("entry updated",
		logger.String("id", entry.ID.String()),
		logger.String("by", caller.Short()))
	return entry, nil
}

// RemoveEntry deletes a catalog entry (admin only) and decrements the catalog
// count with saturating subtraction.
func (c *Core) RemoveEntry(ctx context.Context, caller domain.Principal, id domain.EntryID) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	state, err := c.loadState(ctx)
	if err != nil {
		return err
	}
	if state.Paused {
		return domain.ErrPaused
	}
	if !state.HasAdminPrivileges(caller) {
		return domain.ErrInsufficientPermissions
	}

	if state.CatalogCount > 0 {
		state.CatalogCount--
	}

	if err := c.store.DeleteEntry(ctx, id, state); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("failed to delete entry: %w", err)
	}

	c.log.Info("entry removed",
		logger.String("id", id.String()),
		logger.String("by", caller.Short()))
	return nil
}

// GetEntry returns a catalog entry. Read-only: available while paused.
func (c *Core) GetEntry(ctx context.Context, id domain.EntryID) (*domain.Entry, error) {
	entry, err := c.store.GetEntry(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get entry: %w", err)
	}
	return entry, nil
}

func validateEntryFields(in NewEntry) error {
	if err := domain.ValidateEntryID(in.ID); err != nil {
		return err
	}
	if err := domain.ValidateText("title", in.Title, domain.TitleMinLen, domain.TitleMaxLen); err != nil {
		return err
	}
	if err := domain.ValidateText("author", in.Author, domain.AuthorMinLen, domain.AuthorMaxLen); err != nil {
		return err
	}
	if err := domain.ValidateText("category", in.Category, domain.CategoryMinLen, domain.CategoryMaxLen); err != nil {
		return err
	}
	return domain.ValidateContentPointer(in.ContentPointer)
}

func validateUpdateFields(upd EntryUpdate) error {
	if upd.Title != nil {
		if err := domain.ValidateText("title", *upd.Title, domain.TitleMinLen, domain.TitleMaxLen); err != nil {
			return err
		}
	}
	if upd.Author != nil {
		if err := domain.ValidateText("author", *upd.Author, domain.AuthorMinLen, domain.AuthorMaxLen); err != nil {
			return err
		}
	}
	if upd.Category != nil {
		if err := domain.ValidateText("category", *upd.Category, domain.CategoryMinLen, domain.CategoryMaxLen); err != nil {
			return err
		}
	}
	if upd.ContentPointer != nil {
		if err := domain.ValidateContentPointer(*upd.ContentPointer); err != nil {
			return err
		}
	}
	return nil
}

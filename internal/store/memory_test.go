package store

import (
	"context"
	"errors"
	"testing"

	"github.com/openshelf/shelfd/internal/domain"
)

func testPrincipal(b byte) domain.Principal {
	var p domain.Principal
	for i := range p {
		p[i] = b
	}
	return p
}

func TestMemoryStateSnapshot(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	if _, err := m.LoadState(ctx); !errors.Is(err, ErrNotFound) {
		t.Fatalf("LoadState() on empty store = %v, want %v", err, ErrNotFound)
	}

	state := domain.NewState(testPrincipal(1))
	if err := m.SaveState(ctx, state); err != nil {
		t.Fatalf("SaveState() = %v", err)
	}

	// Mutating the saved value must not leak into the store.
	state.CatalogCount = 99

	got, err := m.LoadState(ctx)
	if err != nil {
		t.Fatalf("LoadState() = %v", err)
	}
	if got.CatalogCount != 0 {
		t.Errorf("CatalogCount = %d, want 0 (snapshot isolation)", got.CatalogCount)
	}

	// Nor must mutating a loaded value.
	got.Paused = true
	again, err := m.LoadState(ctx)
	if err != nil {
		t.Fatalf("LoadState() = %v", err)
	}
	if again.Paused {
		t.Error("Paused = true, want false (snapshot isolation)")
	}
}

func TestMemoryEntryLifecycle(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()
	state := domain.NewState(testPrincipal(1))

	entry := &domain.Entry{
		ID:    domain.EntryID{0x3b, 0x2a, 0x1c, 0x4d, 0x5e, 0x6f, 0x4a, 0x7b, 0x8c, 0x9d, 0x0e, 0x1f, 0x2a, 0x3b, 0x4c, 0x5d},
		Title: "A Title",
	}

	state.CatalogCount = 1
	if err := m.CreateEntry(ctx, entry, state); err != nil {
		t.Fatalf("CreateEntry() = %v", err)
	}

	t.Run("create commits the state alongside", func(t *testing.T) {
		got, err := m.LoadState(ctx)
		if err != nil {
			t.Fatalf("LoadState() = %v", err)
		}
		if got.CatalogCount != 1 {
			t.Errorf("CatalogCount = %d, want 1", got.CatalogCount)
		}
	})

	t.Run("duplicate create leaves state untouched", func(t *testing.T) {
		dupState := domain.NewState(testPrincipal(1))
		dupState.CatalogCount = 42
		if err := m.CreateEntry(ctx, entry, dupState); !errors.Is(err, ErrAlreadyExists) {
			t.Fatalf("CreateEntry() = %v, want %v", err, ErrAlreadyExists)
		}
		got, err := m.LoadState(ctx)
		if err != nil {
			t.Fatalf("LoadState() = %v", err)
		}
		if got.CatalogCount != 1 {
			t.Errorf("CatalogCount = %d, want 1 after failed create", got.CatalogCount)
		}
	})

	t.Run("put requires existence", func(t *testing.T) {
		missing := *entry
		missing.ID[0] ^= 0xff
		if err := m.PutEntry(ctx, &missing); !errors.Is(err, ErrNotFound) {
			t.Errorf("PutEntry() = %v, want %v", err, ErrNotFound)
		}
	})

	t.Run("delete missing leaves state untouched", func(t *testing.T) {
		missingID := entry.ID
		missingID[0] ^= 0xff
		delState := domain.NewState(testPrincipal(1))
		delState.CatalogCount = 42
		if err := m.DeleteEntry(ctx, missingID, delState); !errors.Is(err, ErrNotFound) {
			t.Fatalf("DeleteEntry() = %v, want %v", err, ErrNotFound)
		}
		got, err := m.LoadState(ctx)
		if err != nil {
			t.Fatalf("LoadState() = %v", err)
		}
		if got.CatalogCount != 1 {
			t.Errorf("CatalogCount = %d, want 1 after failed delete", got.CatalogCount)
		}
	})

	t.Run("delete commits the state alongside", func(t *testing.T) {
		state.CatalogCount = 0
		if err := m.DeleteEntry(ctx, entry.ID, state); err != nil {
			t.Fatalf("DeleteEntry() = %v", err)
		}
		if _, err := m.GetEntry(ctx, entry.ID); !errors.Is(err, ErrNotFound) {
			t.Errorf("GetEntry() = %v, want %v", err, ErrNotFound)
		}
		got, err := m.LoadState(ctx)
		if err != nil {
			t.Fatalf("LoadState() = %v", err)
		}
		if got.CatalogCount != 0 {
			t.Errorf("CatalogCount = %d, want 0", got.CatalogCount)
		}
	})
}

package catalog

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"uchet/internal/core"
	"uchet/internal/storage"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	repo, err := storage.NewSQLiteRepository(filepath.Join(t.TempDir(), "uchet.db"))
	if err != nil {
		t.Fatalf("open repository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return NewStore(repo)
}

func TestResolveSeedsFallback(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	name, err := store.Resolve(ctx, "taxi")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if name != FallbackName {
		t.Fatalf("resolve = %q, want fallback", name)
	}

	entries, err := store.Entries(ctx)
	if err != nil {
		t.Fatalf("entries after seed: %v", err)
	}
	if len(entries) != 1 || entries[0].Name != FallbackName {
		t.Fatalf("seeded catalog = %+v", entries)
	}
}

func TestResolveAliasLookup(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if _, err := store.Add(ctx, "taxi", []string{"taxi", "cab"}); err != nil {
		t.Fatalf("add: %v", err)
	}

	for _, token := range []string{"taxi", "TAXI", "Cab"} {
		name, err := store.Resolve(ctx, token)
		if err != nil || name != "Taxi" {
			t.Fatalf("Resolve(%q) = %q, %v", token, name, err)
		}
	}

	name, err := store.Resolve(ctx, "pizza")
	if err != nil || name != FallbackName {
		t.Fatalf("unmatched token = %q, %v", name, err)
	}
}

func TestAddSeedsFallbackFirst(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	added, err := store.Add(ctx, "food", []string{"food"})
	if err != nil || added != "Food" {
		t.Fatalf("add = %q, %v", added, err)
	}

	entries, err := store.Entries(ctx)
	if err != nil {
		t.Fatalf("entries: %v", err)
	}
	if len(entries) != 2 || entries[0].Name != FallbackName || entries[1].Name != "Food" {
		t.Fatalf("entries = %+v", entries)
	}
}

func TestDeleteErrors(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if _, err := store.Delete(ctx, "taxi"); !errors.Is(err, core.ErrCatalogNotFound) {
		t.Fatalf("no catalog: error = %v", err)
	}

	if _, err := store.Add(ctx, "taxi", []string{"taxi"}); err != nil {
		t.Fatalf("add: %v", err)
	}
	if _, err := store.Delete(ctx, "pizza"); !errors.Is(err, core.ErrCategoryNotFound) {
		t.Fatalf("missing entry: error = %v", err)
	}

	name, err := store.Delete(ctx, "TAXI")
	if err != nil || name != "Taxi" {
		t.Fatalf("delete = %q, %v", name, err)
	}
}

func TestCacheInvalidatedOnMutation(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if _, err := store.Add(ctx, "taxi", []string{"taxi"}); err != nil {
		t.Fatalf("add: %v", err)
	}
	if name, _ := store.Resolve(ctx, "taxi"); name != "Taxi" {
		t.Fatalf("resolve before delete = %q", name)
	}
	if _, err := store.Delete(ctx, "taxi"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if name, _ := store.Resolve(ctx, "taxi"); name != FallbackName {
		t.Fatalf("resolve after delete = %q, want fallback", name)
	}
}

func TestNames(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if _, err := store.Names(ctx); !errors.Is(err, core.ErrCatalogNotFound) {
		t.Fatalf("fresh catalog: error = %v", err)
	}

	if _, err := store.Add(ctx, "taxi", []string{"taxi"}); err != nil {
		t.Fatalf("add: %v", err)
	}
	names, err := store.Names(ctx)
	if err != nil {
		t.Fatalf("names: %v", err)
	}
	if len(names) != 2 || names[0] != FallbackName || names[1] != "Taxi" {
		t.Fatalf("names = %v", names)
	}
}

// Package catalog maintains the category catalog: canonical names, their
// aliases, and the always-present "Other" fallback.
package catalog

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"uchet/internal/command"
	"uchet/internal/core"
	"uchet/internal/storage"
)

// FallbackName is the default category every catalog is created with. It is
// returned whenever no alias matches.
const FallbackName = "Other"

var fallbackAliases = []string{"other"}

// Repository is the slice of storage the catalog needs.
type Repository interface {
	LoadCategories(ctx context.Context) ([]storage.CategoryRow, error)
	SaveCategory(ctx context.Context, name string, aliases []string) error
	DeleteCategory(ctx context.Context, name string) (bool, error)
}

// Store resolves and mutates the catalog. Entries are cached in memory and
// the cache is dropped on every mutation, so lookups do not re-read storage.
type Store struct {
	repo Repository

	mu      sync.Mutex
	entries []storage.CategoryRow
	loaded  bool
}

func NewStore(repo Repository) *Store {
	return &Store{repo: repo}
}

// Resolve maps a free-text token to a canonical category name. The scan is
// case-insensitive over all aliases in entry order; the first match wins and
// no match falls back to FallbackName. A catalog that does not exist yet is
// created here with only the fallback entry.
func (s *Store) Resolve(ctx context.Context, token string) (string, error) {
	entries, err := s.load(ctx)
	if err != nil {
		return "", err
	}
	if len(entries) == 0 {
		if err := s.seedFallback(ctx); err != nil {
			return "", err
		}
		return FallbackName, nil
	}

	token = strings.ToLower(token)
	for _, entry := range entries {
		for _, alias := range entry.Aliases {
			if token == strings.ToLower(alias) {
				return entry.Name, nil
			}
		}
	}
	return FallbackName, nil
}

// Add stores or overwrites an entry under the normalized name. A catalog
// that does not exist yet is created pre-seeded with the fallback entry.
func (s *Store) Add(ctx context.Context, name string, aliases []string) (string, error) {
	name = command.NormalizeCategory(name)
	if name == "" {
		return "", core.ErrInvalidCategory
	}

	entries, err := s.load(ctx)
	if err != nil {
		return "", err
	}
	if len(entries) == 0 && name != FallbackName {
		if err := s.seedFallback(ctx); err != nil {
			return "", err
		}
	}

	if err := s.repo.SaveCategory(ctx, name, aliases); err != nil {
		return "", err
	}
	s.invalidate()
	return name, nil
}

// Delete removes an entry by normalized name. Transactions that reference
// the deleted category keep their stored string.
func (s *Store) Delete(ctx context.Context, name string) (string, error) {
	name = command.NormalizeCategory(name)
	if name == "" {
		return "", core.ErrInvalidCategory
	}

	entries, err := s.load(ctx)
	if err != nil {
		return "", err
	}
	if len(entries) == 0 {
		return "", core.ErrCatalogNotFound
	}

	existed, err := s.repo.DeleteCategory(ctx, name)
	if err != nil {
		return "", err
	}
	if !existed {
		return "", core.ErrCategoryNotFound
	}
	s.invalidate()
	return name, nil
}

// Entries returns all catalog entries in insertion order, or
// ErrCatalogNotFound before first use.
func (s *Store) Entries(ctx context.Context) ([]storage.CategoryRow, error) {
	entries, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, core.ErrCatalogNotFound
	}
	return entries, nil
}

// Names returns the current canonical name set, used by the statistics
// aggregator for zero-filling.
func (s *Store) Names(ctx context.Context) ([]string, error) {
	entries, err := s.Entries(ctx)
	if err != nil {
		return nil, err
	}
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name
	}
	return names, nil
}

func (s *Store) load(ctx context.Context) ([]storage.CategoryRow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loaded {
		return s.entries, nil
	}
	entries, err := s.repo.LoadCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	s.entries = entries
	s.loaded = true
	return entries, nil
}

func (s *Store) seedFallback(ctx context.Context) error {
	if err := s.repo.SaveCategory(ctx, FallbackName, fallbackAliases); err != nil {
		return fmt.Errorf("seed fallback category: %w", err)
	}
	s.invalidate()
	return nil
}

func (s *Store) invalidate() {
	s.mu.Lock()
	s.loaded = false
	s.entries = nil
	s.mu.Unlock()
}

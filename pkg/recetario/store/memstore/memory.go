package memstore

import (
	"context"
	"sort"
	"sync"

	"github.com/cognicore/recetario/pkg/recetario/internalerr"
	"github.com/cognicore/recetario/pkg/recetario/store"
)

// Store is an in-memory implementation of store.Store for tests.
type Store struct {
	mu       sync.RWMutex
	recipes  map[string]store.Recipe
	urlIndex map[string]string
	order    []string
}

// New creates a new in-memory store.
func New() *Store {
	return &Store{
		recipes:  make(map[string]store.Recipe),
		urlIndex: make(map[string]string),
	}
}

// Close implements store.Store.
func (s *Store) Close() error { return nil }

// UpsertRecipe inserts or updates a recipe. Recipes with a known
// source URL are keyed by it, so re-ingesting the same source updates
// in place; URL-less recipes are keyed by ID only.
func (s *Store) UpsertRecipe(ctx context.Context, r store.Recipe) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if r.ID == "" {
		return internalerr.ErrInvalidInput
	}

	if existingID, ok := s.urlIndex[r.SourceURL]; ok && r.SourceURL != "" {
		r.ID = existingID
	} else {
		if _, exists := s.recipes[r.ID]; !exists {
			s.order = append(s.order, r.ID)
		}
		if r.SourceURL != "" {
			s.urlIndex[r.SourceURL] = r.ID
		}
	}

	s.recipes[r.ID] = copyRecipe(r)
	return nil
}

// GetRecipe returns a recipe by ID.
func (s *Store) GetRecipe(ctx context.Context, id string) (store.Recipe, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if r, ok := s.recipes[id]; ok {
		return copyRecipe(r), nil
	}
	return store.Recipe{}, internalerr.ErrNotFound
}

// GetRecipeByURL returns a recipe by source URL.
func (s *Store) GetRecipeByURL(ctx context.Context, url string) (store.Recipe, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if id, ok := s.urlIndex[url]; ok {
		if r, found := s.recipes[id]; found {
			return copyRecipe(r), true, nil
		}
	}
	return store.Recipe{}, false, nil
}

// ListRecipes returns recipes in insertion order, up to limit (0 means
// no limit).
func (s *Store) ListRecipes(ctx context.Context, limit int) ([]store.Recipe, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, len(s.order))
	copy(ids, s.order)
	sort.SliceStable(ids, func(i, j int) bool {
		return s.recipes[ids[i]].IngestedAt.Before(s.recipes[ids[j]].IngestedAt)
	})

	out := make([]store.Recipe, 0, len(ids))
	for _, id := range ids {
		if limit > 0 && len(out) >= limit {
			break
		}
		out = append(out, copyRecipe(s.recipes[id]))
	}
	return out, nil
}

func copyRecipe(r store.Recipe) store.Recipe {
	out := r
	out.Ingredients = make([]store.Ingredient, len(r.Ingredients))
	copy(out.Ingredients, r.Ingredients)
	out.Steps = make([]string, len(r.Steps))
	copy(out.Steps, r.Steps)
	return out
}

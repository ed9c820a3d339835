package store

import (
	"context"
	"time"
)

// Store is the main interface for persisting and querying normalized
// recipes
type Store interface {
	Close() error

	// UpsertRecipe inserts a recipe, or updates it in place when a
	// recipe with the same source URL already exists.
	UpsertRecipe(ctx context.Context, r Recipe) error
	GetRecipe(ctx context.Context, id string) (Recipe, error)
	GetRecipeByURL(ctx context.Context, url string) (Recipe, bool, error)
	ListRecipes(ctx context.Context, limit int) ([]Recipe, error)
}

// Recipe is a stored normalized recipe record
type Recipe struct {
	ID          string
	Name        string
	SourceURL   string
	Servings    int
	Calories    int
	Ingredients []Ingredient
	Steps       []string
	IngestedAt  time.Time
}

// Ingredient is one stored ingredient row
type Ingredient struct {
	Name     string
	Quantity float64
	Unit     string
}

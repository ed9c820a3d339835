package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/cognicore/recetario/pkg/recetario/internalerr"
	"github.com/cognicore/recetario/pkg/recetario/store"
)

// sqliteStore implements the Store interface using SQLite
type sqliteStore struct {
	db *sql.DB
}

// OpenSQLite opens a SQLite database with WAL mode enabled and the
// recipe schema initialized.
func OpenSQLite(ctx context.Context, path string) (store.Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	// Enable WAL mode for better concurrency
	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, err
	}

	// Enable foreign keys
	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, err
	}

	if err := initSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	return &sqliteStore{db: db}, nil
}

// Close closes the database connection
func (s *sqliteStore) Close() error {
	return s.db.Close()
}

// initSchema creates tables if they don't exist
func initSchema(ctx context.Context, db *sql.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS recipes (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	source_url TEXT,
	servings INTEGER DEFAULT 0,
	calories INTEGER DEFAULT 0,
	ingested_at TEXT
);

CREATE TABLE IF NOT EXISTS recipe_ingredients (
	recipe_id TEXT NOT NULL,
	pos INTEGER NOT NULL,
	name TEXT NOT NULL,
	quantity REAL NOT NULL DEFAULT 0,
	unit TEXT NOT NULL DEFAULT '',
	PRIMARY KEY(recipe_id, pos),
	FOREIGN KEY(recipe_id) REFERENCES recipes(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS recipe_steps (
	recipe_id TEXT NOT NULL,
	pos INTEGER NOT NULL,
	step TEXT NOT NULL,
	PRIMARY KEY(recipe_id, pos),
	FOREIGN KEY(recipe_id) REFERENCES recipes(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_recipes_url ON recipes(source_url);
`
	_, err := db.ExecContext(ctx, schema)
	return err
}

// UpsertRecipe inserts or updates a recipe. Recipes with a non-empty
// source URL are keyed by it; re-ingesting the same source replaces
// the record in place under its original ID.
func (s *sqliteStore) UpsertRecipe(ctx context.Context, r store.Recipe) error {
	if r.ID == "" {
		return internalerr.ErrInvalidInput
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if r.SourceURL != "" {
		var existing string
		err := tx.QueryRowContext(ctx,
			"SELECT id FROM recipes WHERE source_url = ?", r.SourceURL).Scan(&existing)
		switch {
		case err == nil:
			r.ID = existing
		case err != sql.ErrNoRows:
			return err
		}
	}

	_, err = tx.ExecContext(ctx, `
INSERT INTO recipes (id, name, source_url, servings, calories, ingested_at)
VALUES (?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
	name = excluded.name,
	source_url = excluded.source_url,
	servings = excluded.servings,
	calories = excluded.calories,
	ingested_at = excluded.ingested_at`,
		r.ID, r.Name, r.SourceURL, r.Servings, r.Calories,
		r.IngestedAt.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("upsert recipe: %w", err)
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM recipe_ingredients WHERE recipe_id = ?", r.ID); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM recipe_steps WHERE recipe_id = ?", r.ID); err != nil {
		return err
	}

	for i, ing := range r.Ingredients {
		if _, err := tx.ExecContext(ctx, `
INSERT INTO recipe_ingredients (recipe_id, pos, name, quantity, unit)
VALUES (?, ?, ?, ?, ?)`, r.ID, i, ing.Name, ing.Quantity, ing.Unit); err != nil {
			return fmt.Errorf("insert ingredient: %w", err)
		}
	}
	for i, step := range r.Steps {
		if _, err := tx.ExecContext(ctx, `
INSERT INTO recipe_steps (recipe_id, pos, step)
VALUES (?, ?, ?)`, r.ID, i, step); err != nil {
			return fmt.Errorf("insert step: %w", err)
		}
	}

	return tx.Commit()
}

// GetRecipe returns a recipe by ID.
func (s *sqliteStore) GetRecipe(ctx context.Context, id string) (store.Recipe, error) {
	row := s.db.QueryRowContext(ctx, `
SELECT id, name, source_url, servings, calories, ingested_at
FROM recipes WHERE id = ?`, id)

	r, err := scanRecipe(row)
	if err == sql.ErrNoRows {
		return store.Recipe{}, internalerr.ErrNotFound
	}
	if err != nil {
		return store.Recipe{}, err
	}
	if err := s.loadChildren(ctx, &r); err != nil {
		return store.Recipe{}, err
	}
	return r, nil
}

// GetRecipeByURL returns a recipe by source URL.
func (s *sqliteStore) GetRecipeByURL(ctx context.Context, url string) (store.Recipe, bool, error) {
	row := s.db.QueryRowContext(ctx, `
SELECT id, name, source_url, servings, calories, ingested_at
FROM recipes WHERE source_url = ? LIMIT 1`, url)

	r, err := scanRecipe(row)
	if err == sql.ErrNoRows {
		return store.Recipe{}, false, nil
	}
	if err != nil {
		return store.Recipe{}, false, err
	}
	if err := s.loadChildren(ctx, &r); err != nil {
		return store.Recipe{}, false, err
	}
	return r, true, nil
}

// ListRecipes returns recipes ordered by ingestion time, up to limit
// (0 means no limit).
func (s *sqliteStore) ListRecipes(ctx context.Context, limit int) ([]store.Recipe, error) {
	query := `
SELECT id, name, source_url, servings, calories, ingested_at
FROM recipes ORDER BY ingested_at, id`
	args := []interface{}{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []store.Recipe
	for rows.Next() {
		r, err := scanRecipe(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range out {
		if err := s.loadChildren(ctx, &out[i]); err != nil {
			return nil, err
		}
	}
	return out, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanRecipe(row rowScanner) (store.Recipe, error) {
	var r store.Recipe
	var url sql.NullString
	var ingested sql.NullString
	if err := row.Scan(&r.ID, &r.Name, &url, &r.Servings, &r.Calories, &ingested); err != nil {
		return store.Recipe{}, err
	}
	r.SourceURL = url.String
	if ingested.Valid {
		if t, err := time.Parse(time.RFC3339Nano, ingested.String); err == nil {
			r.IngestedAt = t
		}
	}
	return r, nil
}

func (s *sqliteStore) loadChildren(ctx context.Context, r *store.Recipe) error {
	rows, err := s.db.QueryContext(ctx, `
SELECT name, quantity, unit FROM recipe_ingredients
WHERE recipe_id = ? ORDER BY pos`, r.ID)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var ing store.Ingredient
		if err := rows.Scan(&ing.Name, &ing.Quantity, &ing.Unit); err != nil {
			return err
		}
		r.Ingredients = append(r.Ingredients, ing)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	stepRows, err := s.db.QueryContext(ctx, `
SELECT step FROM recipe_steps WHERE recipe_id = ? ORDER BY pos`, r.ID)
	if err != nil {
		return err
	}
	defer stepRows.Close()
	for stepRows.Next() {
		var step string
		if err := stepRows.Scan(&step); err != nil {
			return err
		}
		r.Steps = append(r.Steps, step)
	}
	return stepRows.Err()
}

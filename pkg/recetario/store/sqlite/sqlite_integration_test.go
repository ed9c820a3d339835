package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/cognicore/recetario/pkg/recetario/internalerr"
	"github.com/cognicore/recetario/pkg/recetario/store"
)

func openTestStore(t *testing.T) store.Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "recetas.db")
	s, err := OpenSQLite(context.Background(), path)
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func sample(id, url string) store.Recipe {
	return store.Recipe{
		ID:        id,
		Name:      "Pasta al Ajo",
		SourceURL: url,
		Servings:  4,
		Calories:  520,
		Ingredients: []store.Ingredient{
			{Name: "pasta", Quantity: 200, Unit: "g"},
			{Name: "ajo", Quantity: 2, Unit: "diente"},
		},
		Steps:      []string{"Hervir agua", "Cocinar pasta"},
		IngestedAt: time.Now(),
	}
}

func TestUpsertAndGetRoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	r := sample("01A", "https://example.com/pasta")
	if err := s.UpsertRecipe(ctx, r); err != nil {
		t.Fatalf("UpsertRecipe: %v", err)
	}

	got, err := s.GetRecipe(ctx, "01A")
	if err != nil {
		t.Fatalf("GetRecipe: %v", err)
	}
	if got.Name != r.Name || got.Servings != 4 || got.Calories != 520 {
		t.Errorf("scalar fields mismatch: %+v", got)
	}
	if len(got.Ingredients) != 2 || got.Ingredients[0].Name != "pasta" || got.Ingredients[1].Unit != "diente" {
		t.Errorf("ingredients mismatch: %+v", got.Ingredients)
	}
	if len(got.Steps) != 2 || got.Steps[0] != "Hervir agua" {
		t.Errorf("steps mismatch: %+v", got.Steps)
	}
}

func TestGetMissingRecipe(t *testing.T) {
	s := openTestStore(t)

	_, err := s.GetRecipe(context.Background(), "missing")
	if !errors.Is(err, internalerr.ErrNotFound) {
		t.Errorf("GetRecipe error = %v, want ErrNotFound", err)
	}
}

func TestUpsertKeyedBySourceURL(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if err := s.UpsertRecipe(ctx, sample("01A", "https://example.com/pasta")); err != nil {
		t.Fatal(err)
	}

	updated := sample("01B", "https://example.com/pasta")
	updated.Name = "Pasta al Ajo y Guindilla"
	updated.Ingredients = updated.Ingredients[:1]
	if err := s.UpsertRecipe(ctx, updated); err != nil {
		t.Fatal(err)
	}

	got, found, err := s.GetRecipeByURL(ctx, "https://example.com/pasta")
	if err != nil || !found {
		t.Fatalf("GetRecipeByURL: found=%v err=%v", found, err)
	}
	if got.ID != "01A" {
		t.Errorf("re-ingest minted a new ID: %s", got.ID)
	}
	if got.Name != "Pasta al Ajo y Guindilla" {
		t.Errorf("record not updated in place: %q", got.Name)
	}
	if len(got.Ingredients) != 1 {
		t.Errorf("stale child rows after upsert: %+v", got.Ingredients)
	}

	all, err := s.ListRecipes(ctx, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 1 {
		t.Errorf("ListRecipes returned %d, want 1", len(all))
	}
}

func TestListRecipesOrderAndLimit(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	for i, id := range []string{"01A", "01B", "01C"} {
		r := sample(id, "")
		r.IngestedAt = base.Add(time.Duration(i) * time.Minute)
		if err := s.UpsertRecipe(ctx, r); err != nil {
			t.Fatal(err)
		}
	}

	got, err := s.ListRecipes(ctx, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got[0].ID != "01A" || got[1].ID != "01B" {
		t.Errorf("ListRecipes(2) = %+v", got)
	}
	if len(got[0].Ingredients) == 0 {
		t.Error("ListRecipes should hydrate ingredients")
	}
}

func TestEmptyURLsDoNotCollide(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if err := s.UpsertRecipe(ctx, sample("01A", "")); err != nil {
		t.Fatal(err)
	}
	if err := s.UpsertRecipe(ctx, sample("01B", "")); err != nil {
		t.Fatal(err)
	}

	all, err := s.ListRecipes(ctx, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 2 {
		t.Errorf("URL-less recipes must stay distinct, got %d", len(all))
	}
}

func TestReupsertSameIDWithoutURL(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	r := sample("01A", "")
	if err := s.UpsertRecipe(ctx, r); err != nil {
		t.Fatal(err)
	}
	r.Name = "Pasta al Ajo v2"
	if err := s.UpsertRecipe(ctx, r); err != nil {
		t.Fatal(err)
	}

	all, err := s.ListRecipes(ctx, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 1 {
		t.Fatalf("ListRecipes returned %d records for one ID, want 1", len(all))
	}
	if all[0].Name != "Pasta al Ajo v2" {
		t.Errorf("re-upsert did not update in place: %q", all[0].Name)
	}
}

func TestUpsertRejectsEmptyID(t *testing.T) {
	s := openTestStore(t)

	err := s.UpsertRecipe(context.Background(), store.Recipe{Name: "x"})
	if !errors.Is(err, internalerr.ErrInvalidInput) {
		t.Errorf("UpsertRecipe error = %v, want ErrInvalidInput", err)
	}
}

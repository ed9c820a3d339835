package recetario

import (
	"reflect"
	"strings"
	"testing"
)

const pastaText = `Pasta al Ajo
https://example.com/pasta
Ingredientes para 4 porciones
200 g pasta
2 dientes de ajo
Preparación:
1. Hervir agua
2. Cocinar pasta
`

func TestNormalizeEndToEnd(t *testing.T) {
	n := NewNormalizer(Options{})

	got := n.Normalize(pastaText)

	if got.Name != "Pasta al Ajo" {
		t.Errorf("name = %q", got.Name)
	}
	if got.SourceURL != "https://example.com/pasta" {
		t.Errorf("source URL = %q", got.SourceURL)
	}
	if got.Servings != 4 {
		t.Errorf("servings = %d, want 4", got.Servings)
	}
	if len(got.Ingredients) != 2 {
		t.Fatalf("ingredients = %+v, want 2 entries", got.Ingredients)
	}
	first := got.Ingredients[0]
	if first.Quantity != 200 || first.Unit != "g" || first.Name != "pasta" {
		t.Errorf("first ingredient = %+v, want 200 g pasta", first)
	}
	if len(got.Steps) != 2 || got.Steps[0] != "Hervir agua" || got.Steps[1] != "Cocinar pasta" {
		t.Errorf("steps = %v", got.Steps)
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	n := NewNormalizer(Options{})

	a := n.Normalize(pastaText)
	b := n.Normalize(pastaText)
	if !reflect.DeepEqual(a, b) {
		t.Errorf("Normalize is not idempotent:\n%+v\n%+v", a, b)
	}
}

func TestNormalizeLineEndings(t *testing.T) {
	n := NewNormalizer(Options{})
	want := n.Normalize(pastaText)

	crlf := strings.ReplaceAll(pastaText, "\n", "\r\n")
	if got := n.Normalize(crlf); !reflect.DeepEqual(got, want) {
		t.Errorf("CRLF endings changed the result:\n%+v\n%+v", got, want)
	}

	// Bare CR endings, as in old OCR dumps.
	cr := strings.ReplaceAll(pastaText, "\n", "\r")
	if got := n.Normalize(cr); !reflect.DeepEqual(got, want) {
		t.Errorf("CR endings changed the result:\n%+v\n%+v", got, want)
	}
}

func TestNormalizeEmptyInput(t *testing.T) {
	n := NewNormalizer(Options{})

	for _, raw := range []string{"", "   \n\t\n"} {
		got := n.Normalize(raw)
		if got.Name != Unknown {
			t.Errorf("name = %q, want %q", got.Name, Unknown)
		}
		if got.SourceURL != Unknown {
			t.Errorf("source URL = %q, want %q", got.SourceURL, Unknown)
		}
		if got.Servings != 0 || got.Calories != 0 {
			t.Errorf("numeric sentinels wrong: %+v", got)
		}
		if got.Ingredients == nil || len(got.Ingredients) != 0 {
			t.Errorf("ingredients = %#v, want empty non-nil list", got.Ingredients)
		}
		if got.Steps == nil || len(got.Steps) != 0 {
			t.Errorf("steps = %#v, want empty non-nil list", got.Steps)
		}
	}
}

func TestNormalizeIngredientsDoNotSpill(t *testing.T) {
	n := NewNormalizer(Options{})

	raw := "Receta\nIngredientes\n200 g pasta\n2 huevos\nsal\nPreparación\n1. Cocinar"
	got := n.Normalize(raw)
	if len(got.Ingredients) != 3 {
		t.Errorf("ingredients = %+v, want exactly 3 (no spill into preparation)", got.Ingredients)
	}
}

func TestNormalizeNoSections(t *testing.T) {
	n := NewNormalizer(Options{})

	got := n.Normalize("Título suelto\nprosa sin estructura reconocible")
	if got.Name != "Título suelto" {
		t.Errorf("name = %q", got.Name)
	}
	if len(got.Ingredients) != 0 || len(got.Steps) != 0 {
		t.Errorf("sectionless text should yield empty lists: %+v", got)
	}
}

func TestNormalizeCalories(t *testing.T) {
	n := NewNormalizer(Options{})

	got := n.Normalize("Bizcocho\nCalorías: 410\nIngredientes\n2 huevos")
	if got.Calories != 410 {
		t.Errorf("calories = %d, want 410", got.Calories)
	}
}

func TestToStoredAndBack(t *testing.T) {
	n := NewNormalizer(Options{})
	rec := n.Normalize(pastaText)

	stored := ToStored(rec)
	if stored.SourceURL != "https://example.com/pasta" {
		t.Errorf("stored URL = %q", stored.SourceURL)
	}
	back := FromStored(stored)
	if !reflect.DeepEqual(rec, back) {
		t.Errorf("round trip changed the record:\n%+v\n%+v", rec, back)
	}

	// The URL sentinel maps to an empty stored URL and back.
	anon := n.Normalize("Receta sin enlace")
	stored = ToStored(anon)
	if stored.SourceURL != "" {
		t.Errorf("sentinel URL should store as empty, got %q", stored.SourceURL)
	}
	if FromStored(stored).SourceURL != Unknown {
		t.Error("empty stored URL should restore the sentinel")
	}
}

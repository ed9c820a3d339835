package extract

import "testing"

func TestName(t *testing.T) {
	if got := Name("Pasta al Ajo\nmás texto"); got != "Pasta al Ajo" {
		t.Errorf("Name = %q", got)
	}
	if got := Name("\n\n  Tarta de Manzana  \n"); got != "Tarta de Manzana" {
		t.Errorf("Name = %q, leading blanks should be skipped", got)
	}
	if got := Name("   \n\t\n"); got != Unknown {
		t.Errorf("Name on blank text = %q, want %q", got, Unknown)
	}
}

func TestSourceURL(t *testing.T) {
	text := "Receta\nhttps://example.com/pasta\nmás"
	if got := SourceURL(text); got != "https://example.com/pasta" {
		t.Errorf("SourceURL = %q", got)
	}
	if got := SourceURL("ver en http://cocina.example.org/p?id=2."); got != "http://cocina.example.org/p?id=2" {
		t.Errorf("SourceURL = %q, trailing punctuation should be dropped", got)
	}
	if got := SourceURL("sin enlaces"); got != Unknown {
		t.Errorf("SourceURL = %q, want %q", got, Unknown)
	}
}

func TestSourceURLParentheses(t *testing.T) {
	wiki := "https://en.wikipedia.org/wiki/Tortilla_(dish)"
	if got := SourceURL("fuente: " + wiki); got != wiki {
		t.Errorf("SourceURL = %q, balanced parenthesis belongs to the URL", got)
	}
	if got := SourceURL("fuente: " + wiki + "."); got != wiki {
		t.Errorf("SourceURL = %q, sentence dot after the URL should be dropped", got)
	}
	if got := SourceURL("(ver https://example.com/pasta)"); got != "https://example.com/pasta" {
		t.Errorf("SourceURL = %q, unmatched closing parenthesis should be dropped", got)
	}
}

func TestServings(t *testing.T) {
	cases := map[string]int{
		"Ingredientes para 4 porciones": 4,
		"PARA 2 PORCIONES":              2,
		"rinde 6 porciones":             6,
		"Porciones: 8":                  8,
		"serves 3":                      3,
		"4 servings":                    4,
		"sin dato":                      0,
		"":                              0,
	}
	for in, want := range cases {
		if got := Servings(in); got != want {
			t.Errorf("Servings(%q) = %d, want %d", in, got, want)
		}
	}
}

func TestCalories(t *testing.T) {
	cases := map[string]int{
		"Calorías: 520":       520,
		"calorias 300":        300,
		"Calories:450":        450,
		"kcal: 610":           610,
		"sin información":     0,
		"calorías: muchísima": 0,
	}
	for in, want := range cases {
		if got := Calories(in); got != want {
			t.Errorf("Calories(%q) = %d, want %d", in, got, want)
		}
	}
}

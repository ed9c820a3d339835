package ingredient

import (
	"testing"

	"github.com/cognicore/recetario/pkg/recetario/units"
)

func TestParseLineQuantityUnitName(t *testing.T) {
	p := NewParser(nil)

	cases := []struct {
		line string
		want Ingredient
	}{
		{"2 tazas de harina", Ingredient{Name: "harina", Quantity: 2, Unit: "taza"}},
		{"200 g pasta", Ingredient{Name: "pasta", Quantity: 200, Unit: "g"}},
		{"200g pasta", Ingredient{Name: "pasta", Quantity: 200, Unit: "g"}},
		{"2 dientes de ajo", Ingredient{Name: "ajo", Quantity: 2, Unit: "diente"}},
		{"1 1/2 cdas de aceite", Ingredient{Name: "aceite", Quantity: 1.5, Unit: "cda"}},
		{"½ taza de azúcar", Ingredient{Name: "azúcar", Quantity: 0.5, Unit: "taza"}},
		{"3 huevos", Ingredient{Name: "huevos", Quantity: 3, Unit: units.Count}},
		{"- 1 kg de tomates", Ingredient{Name: "tomates", Quantity: 1, Unit: "kg"}},
		{"* 250 ml leche", Ingredient{Name: "leche", Quantity: 250, Unit: "ml"}},
	}
	for _, c := range cases {
		got, ok := p.ParseLine(c.line)
		if !ok {
			t.Errorf("ParseLine(%q) returned no ingredient", c.line)
			continue
		}
		if got != c.want {
			t.Errorf("ParseLine(%q) = %+v, want %+v", c.line, got, c.want)
		}
	}
}

func TestParseLineNoQuantity(t *testing.T) {
	p := NewParser(nil)

	got, ok := p.ParseLine("Sal al gusto")
	if !ok {
		t.Fatal("a line without a quantity is still an ingredient")
	}
	if got.Quantity != 0 {
		t.Errorf("quantity = %v, want 0", got.Quantity)
	}
	if got.Unit != "" {
		t.Errorf("unit = %q, want empty when no quantity is stated", got.Unit)
	}
	if got.Name != "Sal al gusto" {
		t.Errorf("name = %q, want %q", got.Name, "Sal al gusto")
	}
}

func TestParseLineRangeTakesLowerBound(t *testing.T) {
	p := NewParser(nil)

	got, ok := p.ParseLine("2-3 tomates maduros")
	if !ok {
		t.Fatal("range line should parse")
	}
	if got.Quantity != 2 {
		t.Errorf("quantity = %v, want 2 (lower bound)", got.Quantity)
	}
	if got.Name != "tomates maduros" {
		t.Errorf("name = %q, want %q", got.Name, "tomates maduros")
	}

	got, _ = p.ParseLine("2 o 3 zanahorias")
	if got.Quantity != 2 || got.Name != "zanahorias" {
		t.Errorf("disjunction parse = %+v", got)
	}
}

func TestParseLineTabularRow(t *testing.T) {
	p := NewParser(nil)

	// OCR output sometimes glues the unit to the name. The parser must
	// still produce a usable name even if it cannot split the unit off.
	got, ok := p.ParseLine("100gchocolate troceado")
	if !ok {
		t.Fatal("tabular row should still yield an ingredient")
	}
	if got.Quantity != 100 {
		t.Errorf("quantity = %v, want 100", got.Quantity)
	}
	if got.Name == "" {
		t.Error("name must not be empty for tabular rows")
	}
}

func TestParseLineDoubleConnector(t *testing.T) {
	p := NewParser(nil)

	got, ok := p.ParseLine("2 tazas de de harina")
	if !ok || got.Name != "harina" {
		t.Errorf("double connector not stripped: %+v ok=%v", got, ok)
	}
}

func TestParseLineEmpty(t *testing.T) {
	p := NewParser(nil)

	for _, line := range []string{"", "   ", "- ", "2", "1/2", "- 3 "} {
		if got, ok := p.ParseLine(line); ok {
			t.Errorf("ParseLine(%q) = %+v, want no ingredient", line, got)
		}
	}
}

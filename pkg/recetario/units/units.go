// Package units maps the many surface spellings of kitchen measurement
// units onto canonical tags, and formats tags back for display.
package units

import "strings"

// Count is the canonical tag for unit-less counted ingredients
// ("2 huevos" is 2 Count of huevo).
const Count = "u"

// Table is a read-only lookup from lowercase surface forms to canonical
// unit tags. It holds no cross-call state, so one Table may be shared
// by any number of goroutines.
type Table struct {
	forms map[string]string
}

// NewTable builds a Table from canonical tag → surface form lists. The
// canonical tag itself is always accepted as a surface form.
func NewTable(entries map[string][]string) *Table {
	forms := make(map[string]string)
	for tag, surfaces := range entries {
		forms[strings.ToLower(tag)] = tag
		for _, s := range surfaces {
			forms[strings.ToLower(s)] = tag
		}
	}
	return &Table{forms: forms}
}

// DefaultTable returns the built-in Spanish/English unit table.
func DefaultTable() *Table {
	return NewTable(map[string][]string{
		"g":       {"gr", "gr.", "grs", "gramo", "gramos", "gram", "grams"},
		"kg":      {"kg.", "kilo", "kilos", "kilogramo", "kilogramos"},
		"mg":      {"mg.", "miligramo", "miligramos"},
		"ml":      {"ml.", "cc", "mililitro", "mililitros"},
		"l":       {"l.", "lt", "lts", "litro", "litros", "liter", "liters"},
		"cda":     {"cdas", "cda.", "cucharada", "cucharadas", "tbsp", "tablespoon", "tablespoons"},
		"cdta":    {"cdtas", "cdta.", "cucharadita", "cucharaditas", "tsp", "teaspoon", "teaspoons"},
		"taza":    {"tazas", "cup", "cups"},
		"pizca":   {"pizcas", "pinch"},
		"diente":  {"dientes", "clove", "cloves"},
		"rama":    {"ramas", "ramita", "ramitas", "sprig", "sprigs"},
		"hoja":    {"hojas", "leaf", "leaves"},
		"lata":    {"latas", "can", "cans"},
		"paquete": {"paquetes", "package", "packages", "pack"},
		"sobre":   {"sobres", "sachet", "sachets"},
		Count:     {"ud", "ud.", "uds", "unidad", "unidades", "pieza", "piezas", "piece", "pieces"},
	})
}

// Normalize resolves a single token to its canonical unit tag. The
// lookup is case-insensitive and context-free: the same token always
// resolves the same way. ok is false when the token is not a known
// unit, in which case callers treat it as part of the ingredient name.
func (t *Table) Normalize(token string) (tag string, ok bool) {
	tag, ok = t.forms[strings.ToLower(strings.TrimSpace(token))]
	return tag, ok
}

// longForms holds singular/plural display names for tags whose
// canonical form is an abbreviation. Tags not listed display as-is.
var longForms = map[string][2]string{
	"cda":  {"cucharada", "cucharadas"},
	"cdta": {"cucharadita", "cucharaditas"},
}

// pluralizable tags take a trailing "s" when the quantity is plural.
var pluralizable = map[string]bool{
	"taza":    true,
	"pizca":   true,
	"diente":  true,
	"rama":    true,
	"hoja":    true,
	"lata":    true,
	"paquete": true,
	"sobre":   true,
}

// Format renders a canonical tag for display next to a quantity,
// pluralizing spelled-out units when qty > 1. Metric abbreviations
// (g, kg, ml, l) are invariant. The Count tag renders as nothing:
// counted ingredients read "2 huevos", not "2 u huevos".
func (t *Table) Format(tag string, qty float64) string {
	if tag == "" || tag == Count {
		return ""
	}
	plural := qty > 1
	if lf, ok := longForms[tag]; ok {
		if plural {
			return lf[1]
		}
		return lf[0]
	}
	if plural && pluralizable[tag] {
		return tag + "s"
	}
	return tag
}

// Package render serializes normalized recipes to Markdown and JSON.
package render

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/cognicore/recetario/pkg/recetario"
	"github.com/cognicore/recetario/pkg/recetario/quantity"
	"github.com/cognicore/recetario/pkg/recetario/units"
)

// Markdown renders a recipe as a Markdown document: title, metadata,
// an Ingredientes bullet list with quantities recombined through the
// unit formatter, and a numbered Preparación list.
func Markdown(r recetario.Recipe, table *units.Table) string {
	if table == nil {
		table = units.DefaultTable()
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "# %s\n\n", r.Name)

	if r.SourceURL != "" && r.SourceURL != recetario.Unknown {
		fmt.Fprintf(&buf, "Fuente: %s\n\n", r.SourceURL)
	}
	if r.Servings > 0 {
		fmt.Fprintf(&buf, "Porciones: %d\n\n", r.Servings)
	}
	if r.Calories > 0 {
		fmt.Fprintf(&buf, "Calorías totales: %d\n\n", r.Calories)
	}

	buf.WriteString("## Ingredientes\n\n")
	if len(r.Ingredients) == 0 {
		buf.WriteString("(sin ingredientes)\n")
	}
	for _, ing := range r.Ingredients {
		fmt.Fprintf(&buf, "- %s\n", IngredientLine(ing, table))
	}

	buf.WriteString("\n## Preparación\n\n")
	if len(r.Steps) == 0 {
		buf.WriteString("(sin pasos)\n")
	}
	for i, step := range r.Steps {
		fmt.Fprintf(&buf, "%d. %s\n", i+1, step)
	}

	return buf.String()
}

// IngredientLine recombines quantity, unit and name for display:
// "200 g de pasta", "1 1/2 cucharadas de aceite", "Sal al gusto".
func IngredientLine(ing recetario.Ingredient, table *units.Table) string {
	parts := make([]string, 0, 3)
	if q := quantity.Display(ing.Quantity); q != "" {
		parts = append(parts, q)
	}
	if u := table.Format(ing.Unit, ing.Quantity); u != "" {
		parts = append(parts, u, "de")
	}
	parts = append(parts, ing.Name)
	return strings.Join(parts, " ")
}

// JSON renders a recipe as indented UTF-8 JSON without HTML escaping,
// matching the serialized layout consumed downstream.
func JSON(r recetario.Recipe) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

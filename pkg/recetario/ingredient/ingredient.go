// Package ingredient parses single lines of ingredient text into a
// quantified record.
package ingredient

import (
	"regexp"
	"strings"

	"github.com/cognicore/recetario/pkg/recetario/quantity"
	"github.com/cognicore/recetario/pkg/recetario/units"
)

// Ingredient is one parsed ingredient line. Quantity 0 means the text
// stated no amount ("sal al gusto"); Unit is units.Count for counted
// ingredients and empty when no quantity was stated.
type Ingredient struct {
	Name     string  `json:"nombre"`
	Quantity float64 `json:"cantidad"`
	Unit     string  `json:"unidad"`
}

// numToken is one numeric token: mixed number, fraction, decimal or
// integer, in that match order.
const numToken = `\d+\s+\d+\s*/\s*\d+|\d+\s*/\s*\d+|\d+[.,]\d+|\d+`

// leadingQty matches a quantity at the start of a line, optionally
// continued by a range or disjunction whose tail is discarded.
var leadingQty = regexp.MustCompile(`^(` + numToken + `)(\s*(?:–|-|\s[oO]r?\s)\s*(?:` + numToken + `))?`)

// Parser splits ingredient lines against a unit table.
type Parser struct {
	table *units.Table
}

// NewParser creates a Parser. A nil table falls back to the default
// unit table.
func NewParser(table *units.Table) *Parser {
	if table == nil {
		table = units.DefaultTable()
	}
	return &Parser{table: table}
}

// ParseLine parses one line of ingredient text. ok is false only when
// the line carries no identifiable ingredient name after stripping;
// lines without a quantity are still valid ingredients.
func (p *Parser) ParseLine(line string) (Ingredient, bool) {
	rest := stripListMarkers(line)
	rest = quantity.NormalizeGlyphs(rest)

	var ing Ingredient
	if m := leadingQty.FindString(rest); m != "" {
		ing.Quantity = quantity.Parse(m)
		rest = rest[len(m):]
	}
	rest = stripConnector(strings.TrimSpace(rest))

	fields := strings.Fields(rest)
	if len(fields) > 0 {
		if tag, ok := p.table.Normalize(fields[0]); ok {
			ing.Unit = tag
			rest = strings.TrimSpace(rest[len(fields[0]):])
		}
	}
	if ing.Unit == "" && ing.Quantity > 0 {
		ing.Unit = units.Count
	}

	// Malformed lines can carry a second connector ("2 tazas de de
	// harina" after OCR); strip once more.
	ing.Name = stripConnector(strings.TrimSpace(rest))
	if ing.Name == "" {
		return Ingredient{}, false
	}
	return ing, true
}

// stripListMarkers removes leading bullet markers and whitespace.
func stripListMarkers(line string) string {
	return strings.TrimLeft(line, "-*•· \t")
}

// stripConnector drops leading "de "/"of " connector words. OCR output
// sometimes doubles the connector, so it strips until none remain.
func stripConnector(s string) string {
	for {
		lower := strings.ToLower(s)
		stripped := false
		for _, conn := range []string{"de ", "of "} {
			if strings.HasPrefix(lower, conn) {
				s = strings.TrimSpace(s[len(conn):])
				stripped = true
				break
			}
		}
		if !stripped {
			return s
		}
	}
}

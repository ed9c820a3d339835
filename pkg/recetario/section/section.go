// Package section locates named sections inside raw recipe text and
// segments the preparation section into discrete steps.
package section

import (
	"regexp"
	"strings"
)

// Headers holds the compiled header patterns for the three recognized
// section kinds. Matching is whole-token prefix matching at line start
// (a line beginning with "Ingredientes", optionally followed by ":"),
// never substring matching, so the word appearing mid-sentence does
// not open a section.
type Headers struct {
	Ingredients []*regexp.Regexp
	Preparation []*regexp.Regexp
	Notes       []*regexp.Regexp
}

// DefaultHeaderWords returns the built-in header vocabularies.
func DefaultHeaderWords() (ingredients, preparation, notes []string) {
	ingredients = []string{"ingredientes", "ingredients"}
	preparation = []string{
		"preparación", "preparacion", "elaboración", "elaboracion",
		"instrucciones", "preparation", "instructions",
		"paso a paso", "pasos",
	}
	notes = []string{"notas", "notes", "tips", "consejos"}
	return ingredients, preparation, notes
}

// NewHeaders compiles header patterns from word lists. Empty lists fall
// back to the built-in vocabularies.
func NewHeaders(ingredients, preparation, notes []string) *Headers {
	di, dp, dn := DefaultHeaderWords()
	if len(ingredients) == 0 {
		ingredients = di
	}
	if len(preparation) == 0 {
		preparation = dp
	}
	if len(notes) == 0 {
		notes = dn
	}
	return &Headers{
		Ingredients: compileHeaders(ingredients),
		Preparation: compileHeaders(preparation),
		Notes:       compileHeaders(notes),
	}
}

// DefaultHeaders compiles the built-in vocabularies.
func DefaultHeaders() *Headers {
	return NewHeaders(nil, nil, nil)
}

func compileHeaders(words []string) []*regexp.Regexp {
	patterns := make([]*regexp.Regexp, 0, len(words))
	for _, w := range words {
		// Anchored at line start, whole word, optional colon.
		patterns = append(patterns, regexp.MustCompile(`(?i)^\s*`+regexp.QuoteMeta(w)+`\b`))
	}
	return patterns
}

// FindHeader returns the index of the first line matching any of the
// given header patterns, or -1 when no header is present.
func FindHeader(lines []string, patterns []*regexp.Regexp) int {
	for i, line := range lines {
		if matchesAny(line, patterns) {
			return i
		}
	}
	return -1
}

func matchesAny(line string, patterns []*regexp.Regexp) bool {
	for _, p := range patterns {
		if p.MatchString(line) {
			return true
		}
	}
	return false
}

// terminator reports whether a line matches a preparation or notes
// header, the two section kinds that close an ingredient block.
func (h *Headers) terminator(line string) bool {
	return matchesAny(line, h.Preparation) || matchesAny(line, h.Notes)
}

// anyHeader reports whether a line matches any recognized header.
func (h *Headers) anyHeader(line string) bool {
	return matchesAny(line, h.Ingredients) || h.terminator(line)
}

// IngredientLines returns the non-blank lines of the ingredients
// section. The section runs from the line after its header until the
// first preparation/notes header, or until a blank line immediately
// followed by another recognized header; absent a terminator it is
// open-ended and runs to end of text.
func (h *Headers) IngredientLines(lines []string) []string {
	start := FindHeader(lines, h.Ingredients)
	if start < 0 {
		return nil
	}

	var out []string
	for i := start + 1; i < len(lines); i++ {
		line := lines[i]
		if h.terminator(line) {
			break
		}
		if strings.TrimSpace(line) == "" {
			if next := nextNonBlank(lines, i+1); next >= 0 && h.anyHeader(lines[next]) {
				break
			}
			continue
		}
		out = append(out, line)
	}
	return out
}

func nextNonBlank(lines []string, from int) int {
	for i := from; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) != "" {
			return i
		}
	}
	return -1
}

// stepStart matches a leading "N." or "N)" step numeral.
var stepStart = regexp.MustCompile(`^\s*\d+[.)]\s*`)

// Steps segments the preparation section starting at the given line
// index into an ordered list of steps. A numbered line opens a step;
// unnumbered lines are continuations joined with a single space; blank
// lines are skipped; a notes header or end of text closes the section.
func (h *Headers) Steps(lines []string, start int) []string {
	if start < 0 || start >= len(lines) {
		return nil
	}

	var steps []string
	var buf strings.Builder
	flush := func() {
		if s := strings.TrimSpace(buf.String()); s != "" {
			steps = append(steps, s)
		}
		buf.Reset()
	}

	for i := start; i < len(lines); i++ {
		line := lines[i]
		if matchesAny(line, h.Notes) {
			break
		}
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if m := stepStart.FindString(line); m != "" {
			flush()
			buf.WriteString(strings.TrimSpace(line[len(m):]))
			continue
		}
		if buf.Len() > 0 {
			buf.WriteByte(' ')
		}
		buf.WriteString(trimmed)
	}
	flush()
	return steps
}

// PreparationSteps locates the preparation header and returns the
// section's steps, or nil when the text has no preparation section.
func (h *Headers) PreparationSteps(lines []string) []string {
	start := FindHeader(lines, h.Preparation)
	if start < 0 {
		return nil
	}
	return h.Steps(lines, start+1)
}

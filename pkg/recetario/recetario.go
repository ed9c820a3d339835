// Package recetario normalizes free-form recipe text into structured
// records. The Normalizer is the pure entry point; the Engine wraps it
// with a persistence store for batch ingestion.
package recetario

import (
	"context"
	"crypto/rand"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/cognicore/recetario/pkg/recetario/extract"
	"github.com/cognicore/recetario/pkg/recetario/ingredient"
	"github.com/cognicore/recetario/pkg/recetario/section"
	"github.com/cognicore/recetario/pkg/recetario/store"
	"github.com/cognicore/recetario/pkg/recetario/units"
)

// Unknown is the sentinel for string fields that could not be
// extracted.
const Unknown = extract.Unknown

// Ingredient is one parsed ingredient line.
type Ingredient = ingredient.Ingredient

// Recipe is the normalized output record. The JSON field names match
// the serialized layout consumed downstream.
type Recipe struct {
	Name        string       `json:"nombre"`
	SourceURL   string       `json:"url_origen"`
	Servings    int          `json:"porciones"`
	Calories    int          `json:"calorias_totales"`
	Ingredients []Ingredient `json:"ingredientes"`
	Steps       []string     `json:"preparacion"`
}

// Options configures a Normalizer
type Options struct {
	Units   *units.Table     // nil: units.DefaultTable()
	Headers *section.Headers // nil: section.DefaultHeaders()
}

// Normalizer converts raw recipe text into Recipes. It holds only
// read-only tables, so one Normalizer is safe for concurrent use on
// different inputs.
type Normalizer struct {
	table   *units.Table
	headers *section.Headers
	parser  *ingredient.Parser
}

// NewNormalizer creates a Normalizer with the given options.
func NewNormalizer(opts Options) *Normalizer {
	table := opts.Units
	if table == nil {
		table = units.DefaultTable()
	}
	headers := opts.Headers
	if headers == nil {
		headers = section.DefaultHeaders()
	}
	return &Normalizer{
		table:   table,
		headers: headers,
		parser:  ingredient.NewParser(table),
	}
}

// Units returns the normalizer's unit table, for display formatting.
func (n *Normalizer) Units() *units.Table {
	return n.table
}

// Normalize converts raw recipe text into a Recipe. It is a pure
// function: no I/O, no hidden state, structurally identical output for
// identical input. Malformed text never produces an error; fields that
// cannot be extracted carry their sentinel values, and a structurally
// empty input yields a fully sentineled Recipe.
func (n *Normalizer) Normalize(raw string) Recipe {
	raw = normalizeNewlines(raw)
	lines := strings.Split(raw, "\n")

	rec := Recipe{
		Name:        extract.Name(raw),
		SourceURL:   extract.SourceURL(raw),
		Servings:    extract.Servings(raw),
		Calories:    extract.Calories(raw),
		Ingredients: []Ingredient{},
		Steps:       []string{},
	}

	for _, line := range n.headers.IngredientLines(lines) {
		if ing, ok := n.parser.ParseLine(line); ok {
			rec.Ingredients = append(rec.Ingredients, ing)
		}
	}

	if steps := n.headers.PreparationSteps(lines); steps != nil {
		rec.Steps = steps
	}

	return rec
}

// normalizeNewlines maps CRLF and bare CR endings (old OCR dumps use
// the latter) onto plain newlines.
func normalizeNewlines(raw string) string {
	raw = strings.ReplaceAll(raw, "\r\n", "\n")
	return strings.ReplaceAll(raw, "\r", "\n")
}

// Engine couples a Normalizer with a Store for batch ingestion
type Engine struct {
	store   store.Store
	norm    *Normalizer
	entropy *ulid.MonotonicEntropy
}

// NewEngine creates an Engine. A nil normalizer gets the defaults.
func NewEngine(s store.Store, norm *Normalizer) *Engine {
	if norm == nil {
		norm = NewNormalizer(Options{})
	}
	return &Engine{
		store:   s,
		norm:    norm,
		entropy: ulid.Monotonic(rand.Reader, 0),
	}
}

// Close cleanly shuts down the Engine
func (e *Engine) Close() error {
	return e.store.Close()
}

// Normalizer returns the engine's normalizer.
func (e *Engine) Normalizer() *Normalizer {
	return e.norm
}

// Ingest normalizes raw text and persists the result.
func (e *Engine) Ingest(ctx context.Context, raw string) (store.Recipe, error) {
	return e.IngestRecipe(ctx, e.norm.Normalize(raw))
}

// IngestRecipe persists an already-normalized Recipe, so callers that
// post-process the normalizer's output store exactly what they hold.
// Recipes whose source URL was already ingested keep their original
// record ID and are updated in place; new recipes are minted a ULID.
func (e *Engine) IngestRecipe(ctx context.Context, rec Recipe) (store.Recipe, error) {
	stored := ToStored(rec)
	stored.IngestedAt = time.Now().UTC()

	if stored.SourceURL != "" {
		existing, found, err := e.store.GetRecipeByURL(ctx, stored.SourceURL)
		if err != nil {
			return store.Recipe{}, err
		}
		if found {
			stored.ID = existing.ID
		}
	}
	if stored.ID == "" {
		stored.ID = ulid.MustNew(ulid.Now(), e.entropy).String()
	}

	if err := e.store.UpsertRecipe(ctx, stored); err != nil {
		return store.Recipe{}, err
	}
	return stored, nil
}

// Get returns a stored recipe by ID.
func (e *Engine) Get(ctx context.Context, id string) (store.Recipe, error) {
	return e.store.GetRecipe(ctx, id)
}

// List returns stored recipes in ingestion order, up to limit (0 means
// no limit).
func (e *Engine) List(ctx context.Context, limit int) ([]store.Recipe, error) {
	return e.store.ListRecipes(ctx, limit)
}

// ToStored converts a Recipe into its store representation. The URL
// sentinel becomes the empty string so that unidentified sources never
// collide on upsert.
func ToStored(r Recipe) store.Recipe {
	out := store.Recipe{
		ID:       "",
		Name:     r.Name,
		Servings: r.Servings,
		Calories: r.Calories,
		Steps:    append([]string(nil), r.Steps...),
	}
	if r.SourceURL != Unknown {
		out.SourceURL = r.SourceURL
	}
	out.Ingredients = make([]store.Ingredient, len(r.Ingredients))
	for i, ing := range r.Ingredients {
		out.Ingredients[i] = store.Ingredient{
			Name:     ing.Name,
			Quantity: ing.Quantity,
			Unit:     ing.Unit,
		}
	}
	return out
}

// FromStored converts a store record back into a Recipe, restoring the
// URL sentinel.
func FromStored(r store.Recipe) Recipe {
	out := Recipe{
		Name:        r.Name,
		SourceURL:   r.SourceURL,
		Servings:    r.Servings,
		Calories:    r.Calories,
		Ingredients: make([]Ingredient, len(r.Ingredients)),
		Steps:       append([]string{}, r.Steps...),
	}
	if out.SourceURL == "" {
		out.SourceURL = Unknown
	}
	for i, ing := range r.Ingredients {
		out.Ingredients[i] = Ingredient{
			Name:     ing.Name,
			Quantity: ing.Quantity,
			Unit:     ing.Unit,
		}
	}
	return out
}

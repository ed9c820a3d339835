package main

import (
	"context"
	"flag"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/cognicore/recetario/internal/llm"
	"github.com/cognicore/recetario/pkg/recetario"
	"github.com/cognicore/recetario/pkg/recetario/config"
	"github.com/cognicore/recetario/pkg/recetario/render"
	"github.com/cognicore/recetario/pkg/recetario/store"
	"github.com/cognicore/recetario/pkg/recetario/store/sqlite"
)

func main() {
	var (
		input     = flag.String("input", "", "Directory with recipe .txt files (required)")
		outDir    = flag.String("out", "recetas", "Directory for generated JSON/Markdown")
		format    = flag.String("format", "both", "Output format: json, md or both")
		doneDir   = flag.String("done", "", "Optional: move processed files here")
		dbPath    = flag.String("db", "", "Optional: SQLite database to upsert recipes into")
		unitsCfg  = flag.String("units", "", "Optional: unit table YAML override")
		headerCfg = flag.String("headers", "", "Optional: section header YAML override")
		llmBase   = flag.String("llm-base", "", "Optional: OpenAI-compatible endpoint for refinement")
		llmModel  = flag.String("llm-model", "", "Optional: LLM model name for refinement")
		llmAPIKey = flag.String("llm-api-key", "", "Optional: API key for refinement endpoint")
	)
	flag.Parse()

	if *input == "" {
		log.Fatal("--input required")
	}
	if *format != "json" && *format != "md" && *format != "both" {
		log.Fatalf("unknown format %q", *format)
	}

	ctx := context.Background()

	loader := config.Loader{
		UnitsPath:   *unitsCfg,
		HeadersPath: *headerCfg,
	}
	components, err := loader.Load()
	if err != nil {
		log.Fatalf("load configs: %v", err)
	}

	norm := recetario.NewNormalizer(recetario.Options{
		Units:   components.Units,
		Headers: components.Headers,
	})

	var st store.Store
	if *dbPath != "" {
		st, err = sqlite.OpenSQLite(ctx, *dbPath)
		if err != nil {
			log.Fatalf("open database: %v", err)
		}
		defer st.Close()
	}

	var refiner *llm.Client
	if *llmBase != "" && *llmModel != "" {
		refiner = &llm.Client{BaseURL: *llmBase, APIKey: *llmAPIKey, Model: *llmModel}
	}

	entries, err := os.ReadDir(*input)
	if err != nil {
		log.Fatalf("read input directory: %v", err)
	}

	if err := os.MkdirAll(*outDir, 0755); err != nil {
		log.Fatalf("create output directory: %v", err)
	}
	if *doneDir != "" {
		if err := os.MkdirAll(*doneDir, 0755); err != nil {
			log.Fatalf("create done directory: %v", err)
		}
	}

	var eng *recetario.Engine
	if st != nil {
		eng = recetario.NewEngine(st, norm)
	}

	processed := 0
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".txt") {
			continue
		}
		path := filepath.Join(*input, entry.Name())
		raw, err := os.ReadFile(path)
		if err != nil {
			log.Printf("read %s: %v", path, err)
			continue
		}

		rec := normalizeOne(ctx, norm, refiner, string(raw))

		base := strings.TrimSuffix(entry.Name(), ".txt")
		if err := writeOutputs(rec, norm, *outDir, base, *format); err != nil {
			log.Printf("write outputs for %s: %v", entry.Name(), err)
			continue
		}

		if eng != nil {
			if _, err := eng.IngestRecipe(ctx, rec); err != nil {
				log.Printf("store %s: %v", entry.Name(), err)
				continue
			}
		}

		if *doneDir != "" {
			dest := filepath.Join(*doneDir, entry.Name())
			if err := os.Rename(path, dest); err != nil {
				log.Printf("move %s: %v", entry.Name(), err)
				continue
			}
		}

		processed++
		log.Printf("✓ %s → %s", entry.Name(), rec.Name)
	}

	log.Printf("Processed %d recipes", processed)
}

// normalizeOne runs the heuristic normalizer, replacing its output
// with the LLM extraction when a refiner is configured and succeeds.
func normalizeOne(ctx context.Context, norm *recetario.Normalizer, refiner *llm.Client, raw string) recetario.Recipe {
	rec := norm.Normalize(raw)
	if refiner == nil {
		return rec
	}
	refined, err := refiner.Refine(ctx, raw)
	if err != nil {
		log.Printf("refine failed, keeping heuristic result: %v", err)
		return rec
	}
	return refined
}

func writeOutputs(rec recetario.Recipe, norm *recetario.Normalizer, outDir, base, format string) error {
	if format == "json" || format == "both" {
		data, err := render.JSON(rec)
		if err != nil {
			return err
		}
		if err := os.WriteFile(filepath.Join(outDir, base+".json"), data, 0644); err != nil {
			return err
		}
	}
	if format == "md" || format == "both" {
		md := render.Markdown(rec, norm.Units())
		if err := os.WriteFile(filepath.Join(outDir, base+".md"), []byte(md), 0644); err != nil {
			return err
		}
	}
	return nil
}

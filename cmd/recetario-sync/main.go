package main

import (
	"context"
	"flag"
	"log"

	"github.com/cognicore/recetario/internal/notion"
	"github.com/cognicore/recetario/pkg/recetario"
	"github.com/cognicore/recetario/pkg/recetario/store/sqlite"
)

func main() {
	var (
		dbPath   = flag.String("db", "", "SQLite database with normalized recipes (required)")
		token    = flag.String("notion-token", "", "Notion integration token (required)")
		notionDB = flag.String("notion-db", "", "Notion database ID (required)")
		limit    = flag.Int("limit", 0, "Maximum recipes to sync (0 = all)")
	)
	flag.Parse()

	if *dbPath == "" {
		log.Fatal("--db required")
	}
	if *token == "" {
		log.Fatal("--notion-token required")
	}
	if *notionDB == "" {
		log.Fatal("--notion-db required")
	}

	ctx := context.Background()

	st, err := sqlite.OpenSQLite(ctx, *dbPath)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer st.Close()

	recipes, err := st.ListRecipes(ctx, *limit)
	if err != nil {
		log.Fatalf("list recipes: %v", err)
	}

	client := &notion.Client{Token: *token}

	created, updated := 0, 0
	for _, stored := range recipes {
		rec := recetario.FromStored(stored)

		if stored.SourceURL != "" {
			pageID, found, err := client.FindPageByURL(ctx, *notionDB, stored.SourceURL)
			if err != nil {
				log.Printf("lookup %s: %v", rec.Name, err)
				continue
			}
			if found {
				if err := client.UpdatePage(ctx, pageID, rec); err != nil {
					log.Printf("update %s: %v", rec.Name, err)
					continue
				}
				updated++
				continue
			}
		}

		if _, err := client.CreatePage(ctx, *notionDB, rec); err != nil {
			log.Printf("create %s: %v", rec.Name, err)
			continue
		}
		created++
	}

	log.Printf("✓ Synced %d recipes (%d created, %d updated)", created+updated, created, updated)
}

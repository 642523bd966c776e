// importer does a one-shot catalog import: fetch from all metadata sources,
// merge, and upsert into the anime table.
package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"

	"aniflux/internal/anime"
	"aniflux/internal/importer"
	"aniflux/pkg/database"
	"aniflux/pkg/utils"
)

func main() {
	_ = godotenv.Load()

	db := database.MustOpen(database.DefaultConfig())
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("db migrate failed: %v", err)
	}

	provCfg := utils.LoadProviderConfig()

	agg := importer.NewAggregator(
		importer.NewConsumetSource(provCfg.BaseURL),
		importer.NewMockSource(10),
	)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	items, err := agg.FetchAndMerge(ctx)
	if err != nil {
		log.Fatalf("fetch failed: %v", err)
	}

	repo := anime.NewRepo(db)
	if err := importer.Save(ctx, repo, items); err != nil {
		log.Fatalf("save failed: %v", err)
	}

	log.Printf("imported %d anime", len(items))
}

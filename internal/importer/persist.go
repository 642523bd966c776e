package importer

import (
	"context"
	"fmt"

	"aniflux/pkg/models"
)

// AnimeStore is the write side of the anime repo.
type AnimeStore interface {
	Upsert(ctx context.Context, a models.Anime) error
}

// Save upserts the merged catalog into the anime table.
func Save(ctx context.Context, store AnimeStore, items []models.Anime) error {
	for _, a := range items {
		if a.ID == "" || a.Title == "" {
			continue
		}
		if err := store.Upsert(ctx, a); err != nil {
			return fmt.Errorf("save %s: %w", a.ID, err)
		}
	}
	return nil
}

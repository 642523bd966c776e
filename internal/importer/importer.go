// Package importer aggregates anime metadata from external catalog sources
// and merges it into the canonical anime table. It backs the admin import
// screen and the one-shot importer binary.
package importer

import (
	"context"
	"log"

	"aniflux/internal/match"
	"aniflux/pkg/models"
)

// Source is implemented by each external catalog (API-backed or generated).
// Each source fetches its own format and maps it into models.Anime.
type Source interface {
	Name() string
	FetchAll(ctx context.Context) ([]models.Anime, error)
}

// Aggregator coordinates calls to multiple sources and merges them into a
// single canonical set of anime entries.
type Aggregator struct {
	Sources []Source
}

func NewAggregator(sources ...Source) *Aggregator {
	return &Aggregator{Sources: sources}
}

// FetchAndMerge fetches from all sources and merges entries that describe
// the same series, keyed by normalized title. One broken source does not
// kill the whole import.
func (a *Aggregator) FetchAndMerge(ctx context.Context) ([]models.Anime, error) {
	byKey := make(map[string]models.Anime)
	var order []string

	for _, src := range a.Sources {
		log.Printf("[importer] fetching from %s", src.Name())
		items, err := src.FetchAll(ctx)
		if err != nil {
			log.Printf("[importer] source %s error: %v", src.Name(), err)
			continue
		}

		for _, item := range items {
			key := match.Normalize(item.Title)
			if key == "" {
				continue
			}
			if existing, ok := byKey[key]; ok {
				byKey[key] = mergeAnime(existing, item)
			} else {
				byKey[key] = item
				order = append(order, key)
			}
		}
	}

	result := make([]models.Anime, 0, len(byKey))
	for _, key := range order {
		result = append(result, byKey[key])
	}
	return result, nil
}

// mergeAnime resolves conflicts when two sources describe the same series:
// fill missing fields from incoming, union the tags, keep the longer
// description and the higher episode count, and let "Finished" win the
// status because a source that saw the ending knows more.
func mergeAnime(base, incoming models.Anime) models.Anime {
	if base.Description == "" || len(incoming.Description) > len(base.Description) {
		base.Description = incoming.Description
	}
	if base.ImageURL == "" {
		base.ImageURL = incoming.ImageURL
	}
	if base.CoverURL == "" {
		base.CoverURL = incoming.CoverURL
	}

	base.Tags = mergeTags(base.Tags, incoming.Tags)

	if incoming.Episodes > base.Episodes {
		base.Episodes = incoming.Episodes
	}
	if incoming.Rating > base.Rating {
		base.Rating = incoming.Rating
	}
	if base.Type == "" {
		base.Type = incoming.Type
	}
	if base.Status != models.StatusFinished && incoming.Status == models.StatusFinished {
		base.Status = models.StatusFinished
	} else if base.Status == "" {
		base.Status = incoming.Status
	}
	if base.Year == 0 {
		base.Year = incoming.Year
	}
	if base.Studio == "" {
		base.Studio = incoming.Studio
	}
	if base.Duration == "" {
		base.Duration = incoming.Duration
	}

	return base
}

func mergeTags(a, b []string) []string {
	out := make([]string, 0, len(a)+len(b))
	out = append(out, a...)
	for _, v := range b {
		out = appendIfMissing(out, v)
	}
	return out
}

func appendIfMissing(slice []string, v string) []string {
	for _, x := range slice {
		if x == v {
			return slice
		}
	}
	return append(slice, v)
}

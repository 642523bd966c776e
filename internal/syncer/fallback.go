package syncer

import (
	"fmt"

	"aniflux/internal/match"
	"aniflux/pkg/models"
)

// DefaultFallbackCount is used when the desired episode count is unknown.
const DefaultFallbackCount = 12

// FallbackEpisodes builds count placeholder episodes seeded by seed (normally
// the anime title). Ids and image URLs are derived from the seed and index
// only, so repeated calls return identical records and diff-based callers
// never see spurious changes. This path has no failure mode.
func FallbackEpisodes(seed string, count int) []models.Episode {
	if count <= 0 {
		count = DefaultFallbackCount
	}
	slug := match.Normalize(seed)
	if slug == "" {
		slug = "anime"
	}

	eps := make([]models.Episode, 0, count)
	for i := 1; i <= count; i++ {
		eps = append(eps, models.Episode{
			ID:           fmt.Sprintf("fallback-%s-ep-%d", slug, i),
			Number:       i,
			SeasonNumber: 1,
			Title:        fmt.Sprintf("Episode %d", i),
			Image:        fmt.Sprintf("https://picsum.photos/seed/%sep%d/300/200", slug, i),
			ProviderID:   fmt.Sprintf("mock-fallback-%d", i),
		})
	}
	return eps
}

package syncer

import (
	"fmt"
	"sort"

	"aniflux/internal/provider"
	"aniflux/pkg/models"
)

// MapEpisodes converts the provider's raw episode list into internal records.
// Episode numbers come from the provider field untouched. The provider in use
// does not expose filler status or seasons, so IsFiller defaults to false and
// SeasonNumber to 1. Output is sorted ascending by number regardless of input
// order.
func MapEpisodes(animeID string, info *provider.AnimeInfo) ([]models.Episode, error) {
	if info == nil || len(info.Episodes) == 0 {
		return nil, provider.ErrNoEpisodesFound
	}

	eps := make([]models.Episode, 0, len(info.Episodes))
	for _, raw := range info.Episodes {
		title := raw.Title
		if title == "" {
			title = fmt.Sprintf("Episode %d", raw.Number)
		}
		eps = append(eps, models.Episode{
			ID:           fmt.Sprintf("ep-%s-%d", animeID, raw.Number),
			AnimeID:      animeID,
			Number:       raw.Number,
			SeasonNumber: 1,
			Title:        title,
			Image:        info.Image,
			ProviderID:   raw.ID,
		})
	}

	sort.Slice(eps, func(i, j int) bool { return eps[i].Number < eps[j].Number })
	return eps, nil
}

package importer

import (
	"context"
	"fmt"

	"aniflux/pkg/models"
)

// MockSource generates a small deterministic catalog so a fresh install (or
// a demo with the provider down) still has something to render. Same
// never-look-broken contract as the episode fallback path.
type MockSource struct {
	Count int
}

func NewMockSource(count int) *MockSource {
	if count <= 0 {
		count = 10
	}
	return &MockSource{Count: count}
}

func (s *MockSource) Name() string { return "mock" }

func (s *MockSource) FetchAll(ctx context.Context) ([]models.Anime, error) {
	out := make([]models.Anime, 0, s.Count)
	for i := 1; i <= s.Count; i++ {
		id := fmt.Sprintf("mock-anime-%d", i)
		out = append(out, models.Anime{
			ID:          id,
			Title:       fmt.Sprintf("Crimson Extinction %d", i),
			Description: "Placeholder catalog entry generated while no provider data is available.",
			ImageURL:    fmt.Sprintf("https://picsum.photos/seed/%s/600/900", id),
			Tags:        []string{"Action", "Fallback"},
			Rating:      7.5,
			Episodes:    12,
			Type:        "TV",
			Status:      models.StatusAiring,
			Sub:         12,
			Duration:    "24m",
			Year:        2024,
			Studio:      "TNK",
		})
	}
	return out, nil
}

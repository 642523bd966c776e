package importer

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"aniflux/pkg/models"
)

// ConsumetSource pulls the provider's top-airing catalog pages.
type ConsumetSource struct {
	BaseURL string
	Client  *http.Client
	Pages   int // pages to walk (provider serves ~20 per page)
}

func NewConsumetSource(baseURL string) *ConsumetSource {
	return &ConsumetSource{
		BaseURL: baseURL,
		Client:  &http.Client{Timeout: 12 * time.Second},
		Pages:   3,
	}
}

func (s *ConsumetSource) Name() string { return "consumet" }

type consumetListResponse struct {
	Results []struct {
		ID          string   `json:"id"`
		Title       string   `json:"title"`
		Image       string   `json:"image"`
		ReleaseDate string   `json:"releaseDate"`
		Genres      []string `json:"genres"`
	} `json:"results"`
}

func (s *ConsumetSource) FetchAll(ctx context.Context) ([]models.Anime, error) {
	var all []models.Anime

	for page := 1; page <= s.Pages; page++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet,
			fmt.Sprintf("%s/top-airing?page=%d", s.BaseURL, page), nil)
		if err != nil {
			return nil, fmt.Errorf("consumet: build request: %w", err)
		}

		resp, err := s.Client.Do(req)
		if err != nil {
			return nil, fmt.Errorf("consumet: request: %w", err)
		}

		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("consumet: status %d: %s", resp.StatusCode, string(body))
		}

		var list consumetListResponse
		if err := json.Unmarshal(body, &list); err != nil {
			return nil, fmt.Errorf("consumet: decode: %w", err)
		}

		if len(list.Results) == 0 {
			break
		}

		for _, item := range list.Results {
			if item.ID == "" || item.Title == "" {
				continue
			}
			year := 0
			if item.ReleaseDate != "" {
				year, _ = strconv.Atoi(item.ReleaseDate)
			}
			all = append(all, models.Anime{
				ID:       item.ID,
				Title:    item.Title,
				ImageURL: item.Image,
				Tags:     item.Genres,
				Type:     "TV",
				Status:   models.StatusAiring,
				Year:     year,
			})
		}
	}

	return all, nil
}

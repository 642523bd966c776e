// Package syncer orchestrates episode synchronization against the streaming
// provider: resolve a provider id by title, fetch and map the episode list,
// and degrade to deterministic fallback episodes on any provider failure.
package syncer

import (
	"context"
	"fmt"
	"log"
	"strings"

	"aniflux/internal/match"
	"aniflux/internal/provider"
	"aniflux/pkg/models"
)

// MockProviderID marks a sync result that carries fallback data. The stream
// resolver recognizes the prefix and serves the test stream.
const MockProviderID = "mock-provider-id"

// FallbackMessage is the envelope message on the fallback path. Callers that
// need to know whether live data was used must look at the message, not the
// Success flag.
const FallbackMessage = "Synced with fallback data (provider unavailable)."

// ProviderAPI is the slice of the provider client the orchestrator needs.
type ProviderAPI interface {
	Search(ctx context.Context, title string) ([]provider.SearchResult, error)
	Info(ctx context.Context, providerID string) (*provider.AnimeInfo, error)
}

type Service struct {
	Provider      ProviderAPI
	FallbackCount int
}

func NewService(p ProviderAPI, fallbackCount int) *Service {
	if fallbackCount <= 0 {
		fallbackCount = DefaultFallbackCount
	}
	return &Service{Provider: p, FallbackCount: fallbackCount}
}

// SyncEpisodes resolves the provider id for title, fetches the episode list
// and maps it into internal records. Any provider failure (timeout, non-2xx,
// malformed body, zero candidates, zero episodes) is locally recovered by
// substituting fallback episodes; the envelope still reports Success=true.
//
// The only hard error is a precondition violation: a missing anime id or
// title is a programming bug, not a provider outage.
func (s *Service) SyncEpisodes(ctx context.Context, animeID, title string) (models.SyncResult, error) {
	if strings.TrimSpace(animeID) == "" {
		return models.SyncResult{}, fmt.Errorf("syncer: anime id is required")
	}
	if strings.TrimSpace(title) == "" {
		return models.SyncResult{}, fmt.Errorf("syncer: anime title is required")
	}

	providerID, err := s.resolveProviderID(ctx, title)
	if err != nil {
		log.Printf("[syncer] %s: provider lookup failed: %v", title, err)
		return s.fallbackResult(title), nil
	}

	info, err := s.Provider.Info(ctx, providerID)
	if err != nil {
		log.Printf("[syncer] %s: episode fetch failed: %v", title, err)
		return s.fallbackResult(title), nil
	}

	eps, err := MapEpisodes(animeID, info)
	if err != nil {
		log.Printf("[syncer] %s: mapping failed: %v", title, err)
		return s.fallbackResult(title), nil
	}

	return models.SyncResult{
		Success:    true,
		Episodes:   eps,
		ProviderID: providerID,
		Message:    fmt.Sprintf("Successfully synced %d episodes.", len(eps)),
	}, nil
}

func (s *Service) resolveProviderID(ctx context.Context, title string) (string, error) {
	results, err := s.Provider.Search(ctx, title)
	if err != nil {
		return "", err
	}
	best, ok := match.BestMatch(title, results)
	if !ok {
		return "", provider.ErrNotFound
	}
	return best.ID, nil
}

func (s *Service) fallbackResult(title string) models.SyncResult {
	return models.SyncResult{
		Success:    true,
		Episodes:   FallbackEpisodes(title, s.FallbackCount),
		ProviderID: MockProviderID,
		Message:    FallbackMessage,
	}
}

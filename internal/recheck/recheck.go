// Package recheck periodically re-syncs every airing anime and reports
// episode-count deltas.
package recheck

import (
	"context"
	"fmt"
	"log"
	"time"

	"aniflux/internal/events"
	"aniflux/pkg/models"
)

type Syncer interface {
	SyncEpisodes(ctx context.Context, animeID, title string) (models.SyncResult, error)
}

type AnimeStore interface {
	ListAiring(ctx context.Context) ([]models.Anime, error)
	UpdateEpisodeCount(ctx context.Context, id string, episodes int) error
}

type Checker struct {
	Anime  AnimeStore
	Syncer Syncer
	Hub    *events.Hub
}

func NewChecker(animeStore AnimeStore, syncer Syncer, hub *events.Hub) *Checker {
	return &Checker{Anime: animeStore, Syncer: syncer, Hub: hub}
}

type Report struct {
	Checked int
	Updates []string
}

// Run syncs every airing anime and collects a delta line per title whose
// remote episode count grew. One broken title never aborts the batch: each
// item is isolated, including against panics.
func (c *Checker) Run(ctx context.Context) (Report, error) {
	airing, err := c.Anime.ListAiring(ctx)
	if err != nil {
		return Report{}, fmt.Errorf("list airing: %w", err)
	}

	rep := Report{Checked: len(airing), Updates: []string{}}
	log.Printf("[recheck] starting update check for %d series", len(airing))

	for _, a := range airing {
		update, err := c.checkOne(ctx, a)
		if err != nil {
			log.Printf("[recheck] %s: %v", a.Title, err)
			continue
		}
		if update != "" {
			rep.Updates = append(rep.Updates, update)
		}
	}
	return rep, nil
}

func (c *Checker) checkOne(ctx context.Context, a models.Anime) (update string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic during sync: %v", r)
		}
	}()

	result, err := c.Syncer.SyncEpisodes(ctx, a.ID, a.Title)
	if err != nil {
		return "", err
	}
	if !result.Success || len(result.Episodes) == 0 {
		return "", nil
	}

	remote := len(result.Episodes)
	if remote <= a.Episodes {
		return "", nil
	}

	if err := c.Anime.UpdateEpisodeCount(ctx, a.ID, remote); err != nil {
		return "", err
	}
	log.Printf("[recheck] %s updated to %d episodes", a.Title, remote)

	if c.Hub != nil {
		c.Hub.BroadcastJSON(events.AnimeEvent{
			Type:     events.TypeAnimeUpdate,
			AnimeID:  a.ID,
			Title:    a.Title,
			Episodes: remote,
			At:       time.Now().UTC(),
		})
	}

	return fmt.Sprintf("%s: +%d new eps (Total: %d)", a.Title, remote-a.Episodes, remote), nil
}

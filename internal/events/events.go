package events

import "time"

const (
	TypeAnimeUpdate    = "anime.update"
	TypeEpisodesSynced = "episodes.synced"
)

// AnimeEvent is broadcast when the re-check finds new episodes or a sync
// rewrites an episode list.
type AnimeEvent struct {
	Type     string    `json:"type"`
	AnimeID  string    `json:"anime_id"`
	Title    string    `json:"title,omitempty"`
	Episodes int       `json:"episodes,omitempty"`
	Message  string    `json:"message,omitempty"`
	At       time.Time `json:"at"`
}

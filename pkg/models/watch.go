package models

import "time"

// WatchProgress holds a user's last position in an anime, with denormalized
// display fields for fast rendering. Last writer wins per (user, anime).
type WatchProgress struct {
	UserID    string    `json:"user_id"`
	AnimeID   string    `json:"anime_id"`
	Episode   int       `json:"episode"`
	Position  float64   `json:"position_seconds"`
	Title     string    `json:"title,omitempty"`
	ImageURL  string    `json:"image_url,omitempty"`
	UpdatedAt time.Time `json:"updated_at"`
}

// List kinds for user anime lists.
const (
	ListWatchlist = "watchlist"
	ListFavorites = "favorites"
)

// ListItem is an entry in a user's watchlist or favorites.
type ListItem struct {
	UserID   string    `json:"user_id"`
	AnimeID  string    `json:"anime_id"`
	Kind     string    `json:"kind"`
	Title    string    `json:"title"`
	ImageURL string    `json:"image_url,omitempty"`
	Type     string    `json:"type,omitempty"`
	Rating   float64   `json:"rating,omitempty"`
	AddedAt  time.Time `json:"added_at"`
}

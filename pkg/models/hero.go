package models

// HeroSlide points at an anime with optional media/text overrides.
// Order is a plain integer position; duplicate values are allowed and simply
// produce an unstable sort.
type HeroSlide struct {
	ID          string `json:"id"`
	AnimeID     string `json:"anime_id"`
	VideoURL    string `json:"video_url,omitempty"`
	PosterURL   string `json:"poster_url,omitempty"`
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	IsActive    bool   `json:"is_active"`
	Order       int    `json:"order"`
}

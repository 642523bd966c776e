package models

// Airing status values stored on an anime row.
const (
	StatusAiring      = "Airing"
	StatusFinished    = "Finished"
	StatusNotYetAired = "Not yet aired"
)

type Anime struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	ImageURL    string   `json:"image_url,omitempty"`
	CoverURL    string   `json:"cover_url,omitempty"`
	Tags        []string `json:"tags"`
	Rating      float64  `json:"rating"`
	Episodes    int      `json:"episodes"`
	Type        string   `json:"type,omitempty"`   // TV, MOVIE, OVA, ONA, SPECIAL
	Status      string   `json:"status,omitempty"` // Airing, Finished, Not yet aired
	Sub         int      `json:"sub"`
	Dub         int      `json:"dub"`
	Duration    string   `json:"duration,omitempty"`
	Year        int      `json:"year,omitempty"`
	Studio      string   `json:"studio,omitempty"`
	Featured    bool     `json:"featured,omitempty"`
}

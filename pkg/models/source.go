package models

type VideoSource struct {
	URL     string `json:"url"`
	Quality string `json:"quality,omitempty"` // "360p", "720p", "1080p", "default"
	IsM3U8  bool   `json:"is_m3u8"`
}

// SourceData is the playable-source payload returned by stream resolution.
type SourceData struct {
	Sources  []VideoSource `json:"sources"`
	Download string        `json:"download,omitempty"`
}

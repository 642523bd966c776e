package models

// Episode is the internal episode shape. Rows are created either by the sync
// orchestrator (provider-derived) or by the admin manual-entry form.
// When UseManualSource is set, ManualSourceURL takes precedence over
// provider-resolved sources.
type Episode struct {
	ID              string `json:"id"`
	AnimeID         string `json:"anime_id,omitempty"`
	Number          int    `json:"number"`
	SeasonNumber    int    `json:"season_number"`
	Title           string `json:"title"`
	Image           string `json:"image,omitempty"`
	IsFiller        bool   `json:"is_filler"`
	ProviderID      string `json:"provider_id,omitempty"`
	ManualSourceURL string `json:"manual_source_url,omitempty"`
	SourceType      string `json:"source_type,omitempty"` // HLS, MP4, EMBED, IFRAME
	UseManualSource bool   `json:"use_manual_source"`
}

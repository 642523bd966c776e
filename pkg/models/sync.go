package models

// SyncResult is the envelope returned by every episode synchronization call.
//
// Success reports orchestration success, not provider success: the fallback
// path also returns Success=true. Message is the only reliable signal of
// whether live provider data was used.
type SyncResult struct {
	Success    bool      `json:"success"`
	Episodes   []Episode `json:"episodes"`
	Message    string    `json:"message,omitempty"`
	ProviderID string    `json:"provider_id,omitempty"`
}

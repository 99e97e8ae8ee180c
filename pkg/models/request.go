package models

// MovieRequest is the payload for creating a new movie job.
type MovieRequest struct {
	Topic           string `json:"topic"`
	DurationSeconds int    `json:"duration_seconds"`
	Model           string `json:"model"`
	Resolution      string `json:"resolution"`
	AspectRatio     string `json:"aspect_ratio"`

	// Scenes lets a caller supply a pre-built script, skipping the drafting
	// and approval stages entirely.
	Scenes []Scene `json:"scenes,omitempty"`
}

// ApprovalRequest is the payload for approving a drafted script. When Scenes
// is non-nil it replaces scene content in place; count and ids must match the
// drafted script.
type ApprovalRequest struct {
	Scenes []Scene `json:"scenes,omitempty"`
}

package entity

import "time"

// Organization is a tenant owning assistants and model settings.
type Organization struct {
	ID   string `json:"id"`
	Name string `json:"name"`

	// SmallFastProvider and SmallFastModel identify the lightweight model
	// used for tool-internal helper calls such as retrieval query
	// rewriting. Both must be set for the small/fast path to work.
	SmallFastProvider string `json:"small_fast_provider,omitempty"`
	SmallFastModel    string `json:"small_fast_model,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Package entity holds the LLM connector domain entities.
package entity

import (
	"fmt"
	"strings"
)

// ModelRef identifies a model as served by a specific provider.
type ModelRef struct {
	// Provider is the connector plugin name (e.g. "openai", "ollama").
	Provider string `json:"provider"`
	// Model is the provider-side model identifier (e.g. "gpt-4o-mini").
	Model string `json:"model"`
}

// String renders the reference as "provider/model".
func (r ModelRef) String() string {
	return r.Provider + "/" + r.Model
}

// IsZero reports whether the reference is unset.
func (r ModelRef) IsZero() bool {
	return r.Provider == "" && r.Model == ""
}

// ParseModelRef parses a "provider/model" string. Model IDs may themselves
// contain slashes (e.g. ollama's "library/llama3"), so only the first
// separator splits.
func ParseModelRef(s string) (ModelRef, error) {
	provider, model, ok := strings.Cut(s, "/")
	if !ok || provider == "" || model == "" {
		return ModelRef{}, fmt.Errorf("invalid model reference %q, want provider/model", s)
	}
	return ModelRef{Provider: provider, Model: model}, nil
}

// LLMParams carries per-request sampling parameters. Nil pointer fields mean
// "use the model default".
type LLMParams struct {
	Temperature      *float32 `json:"temperature,omitempty"`
	TopP             *float32 `json:"top_p,omitempty"`
	MaxTokens        int      `json:"max_tokens,omitempty"`
	FrequencyPenalty float32  `json:"frequency_penalty,omitempty"`
	PresencePenalty  float32  `json:"presence_penalty,omitempty"`
}

package options

import (
	"fmt"

	"github.com/spf13/pflag"
)

// ModelOptions configures the LLM connector layer: which providers are
// enabled and which models each one serves.
type ModelOptions struct {
	DefaultProvider string                     `json:"default-provider" mapstructure:"default-provider"`
	DefaultModel    string                     `json:"default-model"    mapstructure:"default-model"`
	Providers       map[string]*ProviderConfig `json:"providers"        mapstructure:"providers"`
}

// ProviderConfig is the static configuration for one connector backend.
type ProviderConfig struct {
	BaseURL string            `json:"base-url" mapstructure:"base-url"`
	APIKey  string            `json:"api-key"  mapstructure:"api-key"`
	Headers map[string]string `json:"headers"  mapstructure:"headers"`
	Models  []ModelDefinition `json:"models"   mapstructure:"models"`
}

// ModelDefinition describes one model served by a provider.
type ModelDefinition struct {
	ID            string `json:"id"             mapstructure:"id"`
	Name          string `json:"name"           mapstructure:"name"`
	ContextWindow int    `json:"context-window" mapstructure:"context-window"`
	MaxTokens     int    `json:"max-tokens"     mapstructure:"max-tokens"`
}

// NewModelOptions creates ModelOptions with an empty provider map; providers
// not present in configuration fall back to their plugin defaults.
func NewModelOptions() *ModelOptions {
	return &ModelOptions{
		Providers: make(map[string]*ProviderConfig),
	}
}

// Validate checks ModelOptions fields.
func (o *ModelOptions) Validate() []error {
	var errs []error
	for id, p := range o.Providers {
		if p == nil {
			errs = append(errs, fmt.Errorf("provider %q: configuration is empty", id))
			continue
		}
		for _, m := range p.Models {
			if m.ID == "" {
				errs = append(errs, fmt.Errorf("provider %q: model id is required", id))
			}
		}
	}
	return errs
}

// AddFlags adds flags for the model options. Per-provider configuration is
// file-only; flags cover the defaults.
func (o *ModelOptions) AddFlags(fs *pflag.FlagSet) {
	fs.StringVar(&o.DefaultProvider, "models.default-provider", o.DefaultProvider, "Provider used when a request does not name one.")
	fs.StringVar(&o.DefaultModel, "models.default-model", o.DefaultModel, "Model used when a request does not name one.")
}

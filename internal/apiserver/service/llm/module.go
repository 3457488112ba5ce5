// Package llm is the connector dispatch module: a closed set of vendor
// backends behind one uniform call signature.
package llm

import (
	"context"
	"fmt"

	"github.com/lectern-ai/lectern/internal/apiserver/service/llm/domain/entity"
	"github.com/lectern-ai/lectern/internal/apiserver/service/llm/provider"
	"github.com/lectern-ai/lectern/internal/pkg/options"
	"github.com/lectern-ai/lectern/pkg/logger"
)

// Config holds the configuration for the LLM module.
// Follows the Config → Complete() → New() pattern.
type Config struct {
	ModelOptions *options.ModelOptions

	// Resolver resolves per-organization small/fast models (may be nil).
	Resolver SmallFastModelResolver

	// Registry overrides the in-tree connector registry. Nil means built-in.
	Registry *provider.Registry
}

// CompletedConfig is the validated and completed configuration.
type CompletedConfig struct {
	*Config
}

// Complete fills in defaults.
func (c *Config) Complete() CompletedConfig {
	if c.ModelOptions == nil {
		c.ModelOptions = options.NewModelOptions()
	}
	if c.Registry == nil {
		c.Registry = provider.NewInTreeRegistry()
	}
	return CompletedConfig{c}
}

// Module exposes the connector dispatch layer.
type Module struct {
	Dispatcher *Dispatcher
	Registry   *provider.Registry

	configs map[string]*options.ProviderConfig
}

// New builds the LLM module: merges file configuration over each plugin's
// defaults and wires the dispatcher.
func (c CompletedConfig) New(_ context.Context) (*Module, error) {
	configs := make(map[string]*options.ProviderConfig)

	for _, name := range c.Registry.List() {
		factory, err := c.Registry.Get(name)
		if err != nil {
			return nil, err
		}
		merged := mergeProviderConfig(factory().DefaultConfig(), c.ModelOptions.Providers[name])
		configs[name] = merged
	}

	// Providers configured in file but unknown to the registry are a
	// configuration error, not a silent skip.
	for name := range c.ModelOptions.Providers {
		if _, ok := configs[name]; !ok {
			return nil, fmt.Errorf("configured provider %q has no connector plugin", name)
		}
	}

	var defaultRef entity.ModelRef
	if c.ModelOptions.DefaultProvider != "" && c.ModelOptions.DefaultModel != "" {
		defaultRef = entity.ModelRef{
			Provider: c.ModelOptions.DefaultProvider,
			Model:    c.ModelOptions.DefaultModel,
		}
	}

	logger.Info("[LLM] connector module initialized (%d providers, default=%s)",
		len(configs), defaultRef)

	return &Module{
		Dispatcher: NewDispatcher(c.Registry, configs, c.Resolver, defaultRef),
		Registry:   c.Registry,
		configs:    configs,
	}, nil
}

// ProviderConfigs returns the merged per-provider configuration, keyed by
// provider name. Used by the models listing endpoint.
func (m *Module) ProviderConfigs() map[string]*options.ProviderConfig {
	return m.configs
}

// mergeProviderConfig overlays file configuration on plugin defaults.
// Zero-valued file fields keep the default.
func mergeProviderConfig(def, file *options.ProviderConfig) *options.ProviderConfig {
	if def == nil {
		def = &options.ProviderConfig{}
	}
	if file == nil {
		return def
	}

	merged := *def
	if file.BaseURL != "" {
		merged.BaseURL = file.BaseURL
	}
	if file.APIKey != "" {
		merged.APIKey = file.APIKey
	}
	if len(file.Headers) > 0 {
		merged.Headers = file.Headers
	}
	if len(file.Models) > 0 {
		merged.Models = file.Models
	}
	return &merged
}

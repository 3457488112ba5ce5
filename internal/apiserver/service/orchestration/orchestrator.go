package orchestration

import (
	"context"

	"github.com/lectern-ai/lectern/internal/apiserver/service/orchestration/domain/entity"
	"github.com/lectern-ai/lectern/pkg/logger"
)

// DefaultPlaceholder is the template slot a tool config feeds when the
// assistant metadata names none.
const DefaultPlaceholder = "context"

// Orchestrator is the single entry point of the completion pipeline. It
// resolves the strategy named by the assistant's metadata, parses the raw
// tool configurations, and delegates.
type Orchestrator struct {
	tools        *Registry
	strategies   *StrategyRegistry
	toolDefaults map[string]map[string]interface{}
}

// NewOrchestrator creates an Orchestrator over a tool registry, with the
// built-in strategies registered.
func NewOrchestrator(tools *Registry) *Orchestrator {
	strategies := NewStrategyRegistry()
	strategies.MustRegister(NewSequential(tools))

	return &Orchestrator{
		tools:      tools,
		strategies: strategies,
	}
}

// SetToolDefaults installs server-side per-tool configuration, keyed by
// tool name. Defaults are merged beneath each assistant's tool config at
// orchestration time; keys the assistant sets win.
func (o *Orchestrator) SetToolDefaults(defaults map[string]map[string]interface{}) {
	o.toolDefaults = defaults
}

// RegisterStrategy adds an out-of-tree strategy. Duplicate names are a
// startup error.
func (o *Orchestrator) RegisterStrategy(s Strategy) error {
	return o.strategies.Register(s)
}

// Orchestrate runs the assistant's configured pipeline for one request.
//
// An unknown strategy name degrades to sequential with a logged warning
// rather than failing the request: a misconfigured optional strategy plugin
// should not take chat down.
func (o *Orchestrator) Orchestrate(ctx context.Context, req *entity.ToolRequest, assistant *entity.Assistant, verbose bool, callback StreamCallback) (*entity.OrchestrationResult, error) {
	name := assistant.Metadata.Orchestrator
	if name == "" {
		name = SequentialName
	}

	strategy, ok := o.strategies.Get(name)
	if !ok {
		logger.Warn("[Orchestration] strategy %q not registered, falling back to %q", name, SequentialName)
		strategy, _ = o.strategies.Get(SequentialName)
	}

	configs := ParseToolConfigs(assistant.Metadata.Tools)
	o.applyToolDefaults(configs)
	return strategy.Execute(ctx, req, assistant, configs, verbose, callback)
}

func (o *Orchestrator) applyToolDefaults(configs []*entity.ToolConfig) {
	if len(o.toolDefaults) == 0 {
		return
	}
	for _, cfg := range configs {
		defaults, ok := o.toolDefaults[cfg.Plugin]
		if !ok {
			continue
		}
		if cfg.Config == nil {
			cfg.Config = make(map[string]interface{}, len(defaults))
		}
		for k, v := range defaults {
			if _, set := cfg.Config[k]; !set {
				cfg.Config[k] = v
			}
		}
	}
}

// Strategies lists every registered strategy for API/UI consumption.
func (o *Orchestrator) Strategies() []StrategyInfo {
	return o.strategies.List()
}

// Tools returns the underlying tool registry.
func (o *Orchestrator) Tools() *Registry {
	return o.tools
}

// ParseToolConfigs turns the raw metadata mappings into ToolConfig entities,
// defaulting placeholder to "context" and enabled to true. Parsing is
// lenient: malformed fields fall back to defaults and unknown plugin names
// are left for the strategy to degrade per-placeholder.
func ParseToolConfigs(raw []map[string]interface{}) []*entity.ToolConfig {
	configs := make([]*entity.ToolConfig, 0, len(raw))
	for _, m := range raw {
		cfg := &entity.ToolConfig{
			Placeholder: DefaultPlaceholder,
			Enabled:     true,
		}
		if v, ok := m["plugin"].(string); ok {
			cfg.Plugin = v
		}
		if v, ok := m["placeholder"].(string); ok && v != "" {
			cfg.Placeholder = v
		}
		if v, ok := m["enabled"].(bool); ok {
			cfg.Enabled = v
		}
		if v, ok := m["config"].(map[string]interface{}); ok {
			cfg.Config = v
		}
		configs = append(configs, cfg)
	}
	return configs
}

package orchestration

import (
	"fmt"

	"github.com/lectern-ai/lectern/internal/apiserver/service/orchestration/domain/entity"
	"github.com/lectern-ai/lectern/internal/apiserver/service/orchestration/spi"
)

// ValidateAssistant checks an assistant's orchestration metadata at save
// time and returns every problem found. Execution stays lenient regardless;
// these checks exist so misconfiguration surfaces when the assistant is
// edited, not mid-chat.
//
// Checked: every configured plugin resolves against the registry, each
// tool's own ConfigValidator accepts its config, and no two enabled tools
// claim the same placeholder (the later one would silently win the
// substitution).
func (o *Orchestrator) ValidateAssistant(assistant *entity.Assistant) []string {
	var problems []string

	if assistant.Metadata.Orchestrator != "" {
		if _, ok := o.strategies.Get(assistant.Metadata.Orchestrator); !ok {
			problems = append(problems, fmt.Sprintf("unknown orchestrator strategy %q (will fall back to %q)", assistant.Metadata.Orchestrator, SequentialName))
		}
	}

	configs := ParseToolConfigs(assistant.Metadata.Tools)
	claimed := make(map[string]string)

	for i, cfg := range configs {
		if cfg.Plugin == "" {
			problems = append(problems, fmt.Sprintf("tool %d: missing plugin name", i+1))
			continue
		}

		tool, ok := o.tools.Get(cfg.Plugin)
		if !ok {
			problems = append(problems, fmt.Sprintf("tool %d: unknown tool %q", i+1, cfg.Plugin))
			continue
		}

		if validator, ok := tool.(spi.ConfigValidator); ok {
			for _, msg := range validator.ValidateConfig(cfg.Config) {
				problems = append(problems, fmt.Sprintf("tool %d (%s): %s", i+1, cfg.Plugin, msg))
			}
		}

		if !cfg.Enabled {
			continue
		}
		if prev, ok := claimed[cfg.Placeholder]; ok {
			problems = append(problems, fmt.Sprintf("tool %d (%s): placeholder %q already claimed by %q", i+1, cfg.Plugin, cfg.Placeholder, prev))
			continue
		}
		claimed[cfg.Placeholder] = cfg.Plugin
	}

	return problems
}

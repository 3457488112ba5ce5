package orchestration

import (
	"github.com/lectern-ai/lectern/internal/apiserver/service/orchestration/spi"
	"github.com/lectern-ai/lectern/internal/apiserver/service/orchestration/tools/collectionrag"
	"github.com/lectern-ai/lectern/internal/apiserver/service/orchestration/tools/fileinject"
	"github.com/lectern-ai/lectern/pkg/logger"
)

// inTreeEntry pairs a built-in tool name with its factory. The table is the
// compile-time replacement for directory-scan plugin discovery.
type inTreeEntry struct {
	name    string
	factory spi.ToolFactory
}

func inTreeFactories() []inTreeEntry {
	return []inTreeEntry{
		{fileinject.Name, fileinject.New},
		{collectionrag.Name, collectionrag.New},
	}
}

// NewInTreeRegistry builds a registry holding every built-in tool whose
// factory succeeds. A failing factory is logged and skipped so one broken
// plugin never takes the others down with it. Tools named in disabled are
// left out entirely.
func NewInTreeRegistry(deps spi.Dependencies, disabled ...string) *Registry {
	registry := NewRegistry()

	skip := make(map[string]bool, len(disabled))
	for _, name := range disabled {
		skip[name] = true
	}

	for _, entry := range inTreeFactories() {
		if skip[entry.name] {
			logger.Info("[Orchestration] tool %q disabled by configuration", entry.name)
			continue
		}
		tool, err := entry.factory(deps)
		if err != nil {
			logger.Warn("[Orchestration] skipping tool %q: %v", entry.name, err)
			continue
		}
		if err := registry.Register(tool); err != nil {
			logger.Warn("[Orchestration] skipping tool %q: %v", entry.name, err)
			continue
		}
		logger.Info("[Orchestration] registered tool %q", entry.name)
	}

	return registry
}

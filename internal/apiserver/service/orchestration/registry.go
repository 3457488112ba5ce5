// Package orchestration implements the multi-tool completion pipeline:
// a registry of tool plugins, pluggable execution strategies, and the
// orchestrator façade that ties them to an assistant's configuration.
package orchestration

import (
	"fmt"
	"sync"

	"github.com/jinzhu/copier"

	"github.com/lectern-ai/lectern/internal/apiserver/service/orchestration/domain/entity"
	"github.com/lectern-ai/lectern/internal/apiserver/service/orchestration/pkg/errno"
	"github.com/lectern-ai/lectern/internal/apiserver/service/orchestration/spi"
)

// Registry is the thread-safe source of truth mapping tool name to its
// definition and implementation. It is populated once at startup and
// read-mostly afterwards; picking up new plugins requires a restart.
type Registry struct {
	mu    sync.RWMutex
	tools map[string]spi.Tool
	// order preserves registration order for stable listings.
	order []string
}

// NewRegistry creates an empty tool registry.
func NewRegistry() *Registry {
	return &Registry{
		tools: make(map[string]spi.Tool),
	}
}

// Register adds a tool under its declared name. Duplicate names are a
// startup error, not a silent overwrite.
func (r *Registry) Register(tool spi.Tool) error {
	name := tool.Definition().Name
	if name == "" {
		return fmt.Errorf("tool definition has empty name")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.tools[name]; ok {
		return fmt.Errorf("%w: %q", errno.ErrToolAlreadyRegistered, name)
	}
	r.tools[name] = tool
	r.order = append(r.order, name)
	return nil
}

// MustRegister adds a tool and panics on duplicate names.
func (r *Registry) MustRegister(tool spi.Tool) {
	if err := r.Register(tool); err != nil {
		panic(err)
	}
}

// Get returns the tool registered under name.
func (r *Registry) Get(name string) (spi.Tool, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	tool, ok := r.tools[name]
	return tool, ok
}

// All returns a snapshot of the registered tools. Mutating the returned map
// does not affect the registry.
func (r *Registry) All() map[string]spi.Tool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[string]spi.Tool, len(r.tools))
	for name, tool := range r.tools {
		out[name] = tool
	}
	return out
}

// Definitions returns deep copies of every registered tool definition in
// registration order, for API/UI consumption.
func (r *Registry) Definitions() []entity.ToolDefinition {
	r.mu.RLock()
	defer r.mu.RUnlock()

	defs := make([]entity.ToolDefinition, 0, len(r.order))
	for _, name := range r.order {
		def := r.tools[name].Definition()
		var cp entity.ToolDefinition
		// Deep-copy so callers cannot reach the registry's ConfigSchema
		// maps through the projection.
		if err := copier.CopyWithOption(&cp, &def, copier.Option{DeepCopy: true}); err != nil {
			cp = def
			cp.ConfigSchema = nil
		}
		defs = append(defs, cp)
	}
	return defs
}

// Len returns the number of registered tools.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.tools)
}

package orchestration

import (
	"context"
	"fmt"
	"sync"

	"github.com/lectern-ai/lectern/internal/apiserver/service/orchestration/domain/entity"
	"github.com/lectern-ai/lectern/internal/apiserver/service/orchestration/pkg/errno"
)

// StreamCallback is an optional progress sink. It is advisory out-of-band
// signaling: calls may be dropped and a nil callback is always valid.
type StreamCallback func(message string)

// Strategy is the pluggable algorithm that turns an ordered list of
// configured tools into final prompt messages.
//
// Alternative implementations may execute tools concurrently, but must still
// merge sources and placeholder substitutions in declared configuration
// order so prompts stay reproducible.
type Strategy interface {
	// Name is the strategy's unique registration name.
	Name() string
	// Description is shown in strategy listings.
	Description() string
	// Execute runs every enabled tool and assembles the result.
	Execute(ctx context.Context, req *entity.ToolRequest, assistant *entity.Assistant, configs []*entity.ToolConfig, verbose bool, callback StreamCallback) (*entity.OrchestrationResult, error)
}

// StrategyInfo is the introspection projection of a registered strategy.
type StrategyInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// StrategyRegistry maps strategy name to implementation. Like the tool
// registry it is populated once at startup and read-mostly afterwards.
type StrategyRegistry struct {
	mu         sync.RWMutex
	strategies map[string]Strategy
	order      []string
}

// NewStrategyRegistry creates an empty strategy registry.
func NewStrategyRegistry() *StrategyRegistry {
	return &StrategyRegistry{
		strategies: make(map[string]Strategy),
	}
}

// Register adds a strategy. Duplicate names are a startup error.
func (r *StrategyRegistry) Register(s Strategy) error {
	name := s.Name()
	if name == "" {
		return fmt.Errorf("strategy has empty name")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.strategies[name]; ok {
		return fmt.Errorf("%w: %q", errno.ErrStrategyAlreadyRegistered, name)
	}
	r.strategies[name] = s
	r.order = append(r.order, name)
	return nil
}

// MustRegister adds a strategy and panics on duplicate names.
func (r *StrategyRegistry) MustRegister(s Strategy) {
	if err := r.Register(s); err != nil {
		panic(err)
	}
}

// Get returns the strategy registered under name.
func (r *StrategyRegistry) Get(name string) (Strategy, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.strategies[name]
	return s, ok
}

// List returns name and description of every registered strategy in
// registration order.
func (r *StrategyRegistry) List() []StrategyInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()
	infos := make([]StrategyInfo, 0, len(r.order))
	for _, name := range r.order {
		s := r.strategies[name]
		infos = append(infos, StrategyInfo{Name: s.Name(), Description: s.Description()})
	}
	return infos
}

package llm

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/schema"

	"github.com/lectern-ai/lectern/internal/apiserver/service/llm/domain/entity"
	"github.com/lectern-ai/lectern/internal/apiserver/service/llm/pkg/errno"
	"github.com/lectern-ai/lectern/internal/apiserver/service/llm/provider"
	"github.com/lectern-ai/lectern/internal/pkg/options"
	"github.com/lectern-ai/lectern/pkg/logger"
)

// SmallFastModelResolver resolves the lightweight helper model configured for
// an organization. Implemented by the org service; declared here so the
// dispatch layer depends only on what it consumes.
type SmallFastModelResolver interface {
	SmallFastModelConfig(ctx context.Context, owner string) (entity.ModelRef, error)
}

// DispatchRequest carries one LLM invocation through the connector layer.
type DispatchRequest struct {
	// Messages is the fully assembled prompt.
	Messages []*schema.Message

	// Stream selects streaming delivery.
	Stream bool

	// Ref is the user-selected model. Ignored when UseSmallFastModel is set.
	Ref entity.ModelRef

	// Params are per-request sampling parameters (may be nil).
	Params *entity.LLMParams

	// Owner is the organization identity the request runs under.
	Owner string

	// UseSmallFastModel routes to the organization's configured helper
	// model instead of the user-selected one. Tool-internal calls (query
	// rewriting etc.) set this so they never recurse into user-facing
	// model selection.
	UseSmallFastModel bool
}

// DispatchResult holds either a complete message or a stream, depending on
// DispatchRequest.Stream.
type DispatchResult struct {
	Ref     entity.ModelRef
	Message *schema.Message
	Stream  *schema.StreamReader[*schema.Message]
}

// Dispatcher routes a resolved provider/model pair to the matching connector
// backend. The provider set is closed; unsupported providers fail fast with
// errno.ErrUnsupportedProvider.
type Dispatcher struct {
	registry   *provider.Registry
	configs    map[string]*options.ProviderConfig
	resolver   SmallFastModelResolver
	defaultRef entity.ModelRef
}

// NewDispatcher creates a Dispatcher. resolver may be nil, in which case
// small/fast model requests fail with errno.ErrSmallFastModelUnset.
func NewDispatcher(registry *provider.Registry, configs map[string]*options.ProviderConfig, resolver SmallFastModelResolver, defaultRef entity.ModelRef) *Dispatcher {
	return &Dispatcher{
		registry:   registry,
		configs:    configs,
		resolver:   resolver,
		defaultRef: defaultRef,
	}
}

// Dispatch resolves the target model and invokes its backend. Connector
// failures propagate: a broken completion call has no useful degraded output.
func (d *Dispatcher) Dispatch(ctx context.Context, req *DispatchRequest) (*DispatchResult, error) {
	ref, err := d.resolveRef(ctx, req)
	if err != nil {
		return nil, err
	}

	factory, err := d.registry.Get(ref.Provider)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", errno.ErrUnsupportedProvider, ref.Provider)
	}

	cfg, ok := d.configs[ref.Provider]
	if !ok {
		return nil, fmt.Errorf("%w: %q", errno.ErrProviderNotConfigured, ref.Provider)
	}

	plugin := factory()
	cm, err := plugin.BuildChatModel(ctx, ref.Model, cfg, req.Params)
	if err != nil {
		return nil, fmt.Errorf("build chat model for %s: %w", ref, err)
	}

	logger.Debug("[Dispatcher] invoking %s (stream=%v, small_fast=%v)", ref, req.Stream, req.UseSmallFastModel)

	if req.Stream {
		sr, err := cm.Stream(ctx, req.Messages)
		if err != nil {
			return nil, fmt.Errorf("stream from %s: %w", ref, err)
		}
		return &DispatchResult{Ref: ref, Stream: sr}, nil
	}

	msg, err := cm.Generate(ctx, req.Messages)
	if err != nil {
		return nil, fmt.Errorf("generate from %s: %w", ref, err)
	}
	return &DispatchResult{Ref: ref, Message: msg}, nil
}

// resolveRef picks the effective model reference for the request. The
// small/fast path is deliberately separate from user model selection.
func (d *Dispatcher) resolveRef(ctx context.Context, req *DispatchRequest) (entity.ModelRef, error) {
	if req.UseSmallFastModel {
		if d.resolver == nil {
			return entity.ModelRef{}, errno.ErrSmallFastModelUnset
		}
		return d.resolver.SmallFastModelConfig(ctx, req.Owner)
	}

	if !req.Ref.IsZero() {
		return req.Ref, nil
	}
	if d.defaultRef.IsZero() {
		return entity.ModelRef{}, errno.ErrNoDefaultModel
	}
	return d.defaultRef, nil
}

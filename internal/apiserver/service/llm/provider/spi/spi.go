// Package spi defines the service provider interface for LLM connector
// plugins. Each backend vendor implements ConnectorPlugin; the dispatch
// layer is written only against this contract.
package spi

import (
	"context"

	"github.com/cloudwego/eino/components/model"

	"github.com/lectern-ai/lectern/internal/apiserver/service/llm/domain/entity"
	"github.com/lectern-ai/lectern/internal/pkg/options"
)

// ConnectorPlugin is the interface every LLM backend implements.
type ConnectorPlugin interface {
	// Name returns the provider name (e.g. "openai").
	Name() string

	// DefaultConfig returns the provider's built-in configuration. File
	// configuration is merged over it.
	DefaultConfig() *options.ProviderConfig

	// BuildChatModel builds a chat model bound to the given model ID.
	// params may be nil, in which case provider defaults apply. The
	// returned model supports both Generate and Stream.
	BuildChatModel(ctx context.Context, modelID string, cfg *options.ProviderConfig, params *entity.LLMParams) (model.BaseChatModel, error)
}

// PluginFactory is a function that creates a ConnectorPlugin instance.
type PluginFactory func() ConnectorPlugin

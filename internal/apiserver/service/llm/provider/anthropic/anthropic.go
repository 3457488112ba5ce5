package anthropic

import (
	"context"

	einoClaude "github.com/cloudwego/eino-ext/components/model/claude"
	"github.com/cloudwego/eino/components/model"

	"github.com/lectern-ai/lectern/internal/apiserver/service/llm/domain/entity"
	"github.com/lectern-ai/lectern/internal/apiserver/service/llm/provider/helper"
	"github.com/lectern-ai/lectern/internal/apiserver/service/llm/provider/spi"
	"github.com/lectern-ai/lectern/internal/pkg/options"
)

const Name = "anthropic"

var _ spi.ConnectorPlugin = (*Plugin)(nil)

type Plugin struct {
	helper.BasePlugin
}

func New() spi.ConnectorPlugin {
	return &Plugin{
		BasePlugin: helper.BasePlugin{PluginName: Name},
	}
}

func (p *Plugin) BuildChatModel(ctx context.Context, modelID string, cfg *options.ProviderConfig, params *entity.LLMParams) (model.BaseChatModel, error) {
	conf := &einoClaude.Config{
		APIKey:    helper.ResolveEnvValue(cfg.APIKey),
		Model:     modelID,
		MaxTokens: 4096,
	}
	if cfg.BaseURL != "" {
		conf.BaseURL = &cfg.BaseURL
	}

	applyParams(conf, params)

	return einoClaude.NewChatModel(ctx, conf)
}

func applyParams(conf *einoClaude.Config, params *entity.LLMParams) {
	if params == nil {
		return
	}
	if params.Temperature != nil {
		conf.Temperature = params.Temperature
	}
	if params.TopP != nil {
		conf.TopP = params.TopP
	}
	if params.MaxTokens != 0 {
		conf.MaxTokens = params.MaxTokens
	}
}

func (p *Plugin) DefaultConfig() *options.ProviderConfig {
	return &options.ProviderConfig{
		BaseURL: "https://api.anthropic.com/v1",
		APIKey:  "${ANTHROPIC_API_KEY}",
		Models: []options.ModelDefinition{
			{ID: "claude-sonnet-4-5", Name: "Claude Sonnet 4.5", ContextWindow: 200000, MaxTokens: 64000},
			{ID: "claude-haiku-4-5", Name: "Claude Haiku 4.5", ContextWindow: 200000, MaxTokens: 64000},
		},
	}
}

package openai

import (
	"context"

	"github.com/bytedance/gg/gptr"
	einoOpenAI "github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"

	"github.com/lectern-ai/lectern/internal/apiserver/service/llm/domain/entity"
	"github.com/lectern-ai/lectern/internal/apiserver/service/llm/provider/helper"
	"github.com/lectern-ai/lectern/internal/apiserver/service/llm/provider/spi"
	"github.com/lectern-ai/lectern/internal/pkg/options"
)

const Name = "openai"

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
	conf := &einoOpenAI.ChatModelConfig{
		Model:     modelID,
		APIKey:    helper.ResolveEnvValue(cfg.APIKey),
		MaxTokens: gptr.Of(4096),
	}
	if cfg.BaseURL != "" {
		conf.BaseURL = cfg.BaseURL
	}

	applyParams(conf, params)

	return einoOpenAI.NewChatModel(ctx, conf)
}

func applyParams(conf *einoOpenAI.ChatModelConfig, params *entity.LLMParams) {
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
		conf.MaxTokens = gptr.Of(params.MaxTokens)
	}
	if params.FrequencyPenalty != 0 {
		conf.FrequencyPenalty = gptr.Of(params.FrequencyPenalty)
	}
	if params.PresencePenalty != 0 {
		conf.PresencePenalty = gptr.Of(params.PresencePenalty)
	}
}

func (p *Plugin) DefaultConfig() *options.ProviderConfig {
	return &options.ProviderConfig{
		BaseURL: "https://api.openai.com/v1",
		APIKey:  "${OPENAI_API_KEY}",
		Models: []options.ModelDefinition{
			{ID: "gpt-4o", Name: "GPT-4o", ContextWindow: 131072, MaxTokens: 8192},
			{ID: "gpt-4o-mini", Name: "GPT-4o Mini", ContextWindow: 131072, MaxTokens: 8192},
		},
	}
}

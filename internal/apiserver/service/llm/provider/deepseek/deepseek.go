package deepseek

import (
	"context"

	einoDeepseek "github.com/cloudwego/eino-ext/components/model/deepseek"
	"github.com/cloudwego/eino/components/model"

	"github.com/lectern-ai/lectern/internal/apiserver/service/llm/domain/entity"
	"github.com/lectern-ai/lectern/internal/apiserver/service/llm/provider/helper"
	"github.com/lectern-ai/lectern/internal/apiserver/service/llm/provider/spi"
	"github.com/lectern-ai/lectern/internal/pkg/options"
)

const Name = "deepseek"

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
	conf := &einoDeepseek.ChatModelConfig{
		APIKey:      helper.ResolveEnvValue(cfg.APIKey),
		Model:       modelID,
		Temperature: 0.7,
	}
	if cfg.BaseURL != "" {
		conf.BaseURL = cfg.BaseURL
	}

	applyParams(conf, params)

	return einoDeepseek.NewChatModel(ctx, conf)
}

func applyParams(conf *einoDeepseek.ChatModelConfig, params *entity.LLMParams) {
	if params == nil {
		return
	}
	if params.Temperature != nil {
		conf.Temperature = *params.Temperature
	}
	if params.MaxTokens != 0 {
		conf.MaxTokens = params.MaxTokens
	}
	if params.FrequencyPenalty != 0 {
		conf.FrequencyPenalty = params.FrequencyPenalty
	}
	if params.PresencePenalty != 0 {
		conf.PresencePenalty = params.PresencePenalty
	}
}

func (p *Plugin) DefaultConfig() *options.ProviderConfig {
	return &options.ProviderConfig{
		BaseURL: "https://api.deepseek.com/v1",
		APIKey:  "${DEEPSEEK_API_KEY}",
		Models: []options.ModelDefinition{
			{ID: "deepseek-chat", Name: "DeepSeek V3", ContextWindow: 131072, MaxTokens: 8192},
			{ID: "deepseek-reasoner", Name: "DeepSeek R1", ContextWindow: 131072, MaxTokens: 8192},
		},
	}
}

package ollama

import (
	"context"

	einoOllama "github.com/cloudwego/eino-ext/components/model/ollama"
	"github.com/cloudwego/eino/components/model"

	"github.com/lectern-ai/lectern/internal/apiserver/service/llm/domain/entity"
	"github.com/lectern-ai/lectern/internal/apiserver/service/llm/provider/helper"
	"github.com/lectern-ai/lectern/internal/apiserver/service/llm/provider/spi"
	"github.com/lectern-ai/lectern/internal/pkg/options"
)

const Name = "ollama"

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
	conf := &einoOllama.ChatModelConfig{
		BaseURL: "http://127.0.0.1:11434/v1",
		Model:   modelID,
		Options: &einoOllama.Options{},
	}
	if cfg.BaseURL != "" {
		conf.BaseURL = cfg.BaseURL
	}

	applyParams(conf, params)

	return einoOllama.NewChatModel(ctx, conf)
}

func applyParams(conf *einoOllama.ChatModelConfig, params *entity.LLMParams) {
	if params == nil {
		return
	}
	if params.Temperature != nil {
		conf.Options.Temperature = *params.Temperature
	}
	if params.TopP != nil {
		conf.Options.TopP = *params.TopP
	}
	if params.FrequencyPenalty != 0 {
		conf.Options.FrequencyPenalty = params.FrequencyPenalty
	}
	if params.PresencePenalty != 0 {
		conf.Options.PresencePenalty = params.PresencePenalty
	}
}

func (p *Plugin) DefaultConfig() *options.ProviderConfig {
	return &options.ProviderConfig{
		BaseURL: "http://127.0.0.1:11434/v1",
		Models:  []options.ModelDefinition{},
	}
}

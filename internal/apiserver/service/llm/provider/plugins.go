package provider

import (
	"github.com/lectern-ai/lectern/internal/apiserver/service/llm/provider/anthropic"
	"github.com/lectern-ai/lectern/internal/apiserver/service/llm/provider/deepseek"
	"github.com/lectern-ai/lectern/internal/apiserver/service/llm/provider/ollama"
	"github.com/lectern-ai/lectern/internal/apiserver/service/llm/provider/openai"
	"github.com/lectern-ai/lectern/internal/apiserver/service/llm/provider/spi"
)

// NewInTreeRegistry builds the registry of built-in connector plugins.
// The provider set is closed: adding a vendor means adding a plugin here.
func NewInTreeRegistry() *Registry {
	r := NewRegistry()

	r.MustRegister(openai.Name, func() spi.ConnectorPlugin { return openai.New() })
	r.MustRegister(anthropic.Name, func() spi.ConnectorPlugin { return anthropic.New() })
	r.MustRegister(deepseek.Name, func() spi.ConnectorPlugin { return deepseek.New() })
	r.MustRegister(ollama.Name, func() spi.ConnectorPlugin { return ollama.New() })

	return r
}

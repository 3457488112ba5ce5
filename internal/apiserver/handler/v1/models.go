package v1

import (
	"sort"

	"github.com/gin-gonic/gin"

	llmsvc "github.com/lectern-ai/lectern/internal/apiserver/service/llm"
	"github.com/lectern-ai/lectern/internal/pkg/core"
)

// ModelInfo is one entry of the models listing.
type ModelInfo struct {
	ID            string `json:"id"`
	Name          string `json:"name,omitempty"`
	Provider      string `json:"provider"`
	ContextWindow int    `json:"context_window,omitempty"`
	MaxTokens     int    `json:"max_tokens,omitempty"`
}

// ModelsHandler serves GET /v1/models.
type ModelsHandler struct {
	llm *llmsvc.Module
}

// NewModelsHandler creates a new ModelsHandler.
func NewModelsHandler(llm *llmsvc.Module) *ModelsHandler {
	return &ModelsHandler{llm: llm}
}

// List handles GET /v1/models.
func (h *ModelsHandler) List(c *gin.Context) {
	configs := h.llm.ProviderConfigs()

	providers := make([]string, 0, len(configs))
	for name := range configs {
		providers = append(providers, name)
	}
	sort.Strings(providers)

	var models []ModelInfo
	for _, provider := range providers {
		for _, m := range configs[provider].Models {
			models = append(models, ModelInfo{
				ID:            provider + "/" + m.ID,
				Name:          m.Name,
				Provider:      provider,
				ContextWindow: m.ContextWindow,
				MaxTokens:     m.MaxTokens,
			})
		}
	}

	core.WriteResponse(c, nil, gin.H{"data": models})
}

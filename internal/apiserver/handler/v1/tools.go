package v1

import (
	"github.com/gin-gonic/gin"

	"github.com/lectern-ai/lectern/internal/apiserver/service/knowledge"
	"github.com/lectern-ai/lectern/internal/apiserver/service/orchestration"
	"github.com/lectern-ai/lectern/internal/pkg/core"
	"github.com/lectern-ai/lectern/pkg/errorx"
)

// ToolsHandler serves the orchestration introspection endpoints: available
// tools, strategies and knowledge collections.
type ToolsHandler struct {
	orchestrator *orchestration.Orchestrator
	knowledge    *knowledge.Store
}

// NewToolsHandler creates a new ToolsHandler. knowledge may be nil when the
// store is disabled.
func NewToolsHandler(orchestrator *orchestration.Orchestrator, knowledge *knowledge.Store) *ToolsHandler {
	return &ToolsHandler{orchestrator: orchestrator, knowledge: knowledge}
}

// ListTools handles GET /v1/tools.
func (h *ToolsHandler) ListTools(c *gin.Context) {
	core.WriteResponse(c, nil, gin.H{"data": h.orchestrator.Tools().Definitions()})
}

// ListStrategies handles GET /v1/strategies.
func (h *ToolsHandler) ListStrategies(c *gin.Context) {
	core.WriteResponse(c, nil, gin.H{"data": h.orchestrator.Strategies()})
}

// ListCollections handles GET /v1/collections.
func (h *ToolsHandler) ListCollections(c *gin.Context) {
	if h.knowledge == nil {
		core.WriteResponse(c, nil, gin.H{"data": []knowledge.CollectionInfo{}})
		return
	}
	infos, err := h.knowledge.Collections(c.Request.Context())
	if err != nil {
		core.WriteResponse(c, errorx.WrapC(err, ErrCollectionList, "list collections"), nil)
		return
	}
	core.WriteResponse(c, nil, gin.H{"data": infos})
}

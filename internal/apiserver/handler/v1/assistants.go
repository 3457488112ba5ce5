package v1

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/lectern-ai/lectern/internal/apiserver/service/assistant"
	"github.com/lectern-ai/lectern/internal/apiserver/service/orchestration/domain/entity"
	"github.com/lectern-ai/lectern/internal/pkg/core"
	"github.com/lectern-ai/lectern/pkg/errorx"
)

// AssistantRequest is the create/update body for assistants.
type AssistantRequest struct {
	Name           string                   `json:"name" binding:"required"`
	SystemPrompt   string                   `json:"system_prompt"`
	PromptTemplate string                   `json:"prompt_template"`
	Owner          string                   `json:"owner"`
	Provider       string                   `json:"provider"`
	Model          string                   `json:"model"`
	Metadata       entity.AssistantMetadata `json:"metadata"`
}

// AssistantHandler handles assistant CRUD REST API endpoints.
type AssistantHandler struct {
	svc *assistant.Service
}

// NewAssistantHandler creates a new AssistantHandler.
func NewAssistantHandler(svc *assistant.Service) *AssistantHandler {
	return &AssistantHandler{svc: svc}
}

// Create handles POST /v1/assistants.
func (h *AssistantHandler) Create(c *gin.Context) {
	var req AssistantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		core.WriteResponse(c, errorx.WrapC(err, bindErrorCode(err), "bind assistant request"), nil)
		return
	}

	a := assistantFromRequest(&req)
	if err := h.svc.Create(c.Request.Context(), a); err != nil {
		core.WriteResponse(c, wrapAssistantError(err, ErrAssistantCreate, "create assistant"), nil)
		return
	}

	core.WriteResponse(c, nil, a)
}

// List handles GET /v1/assistants.
func (h *AssistantHandler) List(c *gin.Context) {
	assistants, err := h.svc.List(c.Request.Context())
	if err != nil {
		core.WriteResponse(c, errorx.WrapC(err, ErrAssistantList, "list assistants"), nil)
		return
	}
	core.WriteResponse(c, nil, gin.H{"data": assistants})
}

// Get handles GET /v1/assistants/:id.
func (h *AssistantHandler) Get(c *gin.Context) {
	id := c.Param("id")
	a, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		core.WriteResponse(c, errorx.WrapC(err, ErrAssistantNotFound, "assistant %q not found", id), nil)
		return
	}
	core.WriteResponse(c, nil, a)
}

// Update handles PUT /v1/assistants/:id.
func (h *AssistantHandler) Update(c *gin.Context) {
	var req AssistantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		core.WriteResponse(c, errorx.WrapC(err, bindErrorCode(err), "bind assistant request"), nil)
		return
	}

	a := assistantFromRequest(&req)
	a.ID = c.Param("id")
	if err := h.svc.Update(c.Request.Context(), a); err != nil {
		core.WriteResponse(c, wrapAssistantError(err, ErrAssistantUpdate, "update assistant %q", a.ID), nil)
		return
	}

	core.WriteResponse(c, nil, a)
}

// Delete handles DELETE /v1/assistants/:id.
func (h *AssistantHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		core.WriteResponse(c, errorx.WrapC(err, ErrAssistantDelete, "delete assistant %q", id), nil)
		return
	}
	core.WriteResponse(c, nil, gin.H{"deleted": id})
}

func assistantFromRequest(req *AssistantRequest) *entity.Assistant {
	return &entity.Assistant{
		Name:           req.Name,
		SystemPrompt:   req.SystemPrompt,
		PromptTemplate: req.PromptTemplate,
		Owner:          req.Owner,
		Provider:       req.Provider,
		Model:          req.Model,
		Metadata:       req.Metadata,
	}
}

// wrapAssistantError distinguishes configuration problems (422 with the
// validation messages) from plain persistence failures.
func wrapAssistantError(err error, fallback int, format string, args ...interface{}) error {
	var verr *assistant.ValidationError
	if errors.As(err, &verr) {
		return errorx.WrapC(err, ErrAssistantInvalid, "%s", verr.Error())
	}
	return errorx.WrapC(err, fallback, format, args...)
}

package v1

import (
	"github.com/gin-gonic/gin"

	"github.com/lectern-ai/lectern/internal/apiserver/service/org"
	"github.com/lectern-ai/lectern/internal/apiserver/service/org/domain/entity"
	"github.com/lectern-ai/lectern/internal/pkg/core"
	"github.com/lectern-ai/lectern/pkg/errorx"
)

// OrganizationRequest is the create/update body for organizations.
type OrganizationRequest struct {
	Name              string `json:"name" binding:"required"`
	SmallFastProvider string `json:"small_fast_provider"`
	SmallFastModel    string `json:"small_fast_model"`
}

// OrganizationHandler handles organization CRUD REST API endpoints.
type OrganizationHandler struct {
	svc *org.Service
}

// NewOrganizationHandler creates a new OrganizationHandler.
func NewOrganizationHandler(svc *org.Service) *OrganizationHandler {
	return &OrganizationHandler{svc: svc}
}

// Create handles POST /v1/organizations.
func (h *OrganizationHandler) Create(c *gin.Context) {
	var req OrganizationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		core.WriteResponse(c, errorx.WrapC(err, bindErrorCode(err), "bind organization request"), nil)
		return
	}

	o := organizationFromRequest(&req)
	if err := h.svc.Create(c.Request.Context(), o); err != nil {
		core.WriteResponse(c, errorx.WrapC(err, ErrOrganizationCreate, "create organization"), nil)
		return
	}

	core.WriteResponse(c, nil, o)
}

// List handles GET /v1/organizations.
func (h *OrganizationHandler) List(c *gin.Context) {
	orgs, err := h.svc.List(c.Request.Context())
	if err != nil {
		core.WriteResponse(c, errorx.WrapC(err, ErrOrganizationList, "list organizations"), nil)
		return
	}
	core.WriteResponse(c, nil, gin.H{"data": orgs})
}

// Get handles GET /v1/organizations/:id.
func (h *OrganizationHandler) Get(c *gin.Context) {
	id := c.Param("id")
	o, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		core.WriteResponse(c, errorx.WrapC(err, ErrOrganizationNotFound, "organization %q not found", id), nil)
		return
	}
	core.WriteResponse(c, nil, o)
}

// Update handles PUT /v1/organizations/:id.
func (h *OrganizationHandler) Update(c *gin.Context) {
	var req OrganizationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		core.WriteResponse(c, errorx.WrapC(err, bindErrorCode(err), "bind organization request"), nil)
		return
	}

	o := organizationFromRequest(&req)
	o.ID = c.Param("id")
	if err := h.svc.Update(c.Request.Context(), o); err != nil {
		core.WriteResponse(c, errorx.WrapC(err, ErrOrganizationUpdate, "update organization %q", o.ID), nil)
		return
	}

	core.WriteResponse(c, nil, o)
}

// Delete handles DELETE /v1/organizations/:id.
func (h *OrganizationHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		core.WriteResponse(c, errorx.WrapC(err, ErrOrganizationDelete, "delete organization %q", id), nil)
		return
	}
	core.WriteResponse(c, nil, gin.H{"deleted": id})
}

func organizationFromRequest(req *OrganizationRequest) *entity.Organization {
	return &entity.Organization{
		Name:              req.Name,
		SmallFastProvider: req.SmallFastProvider,
		SmallFastModel:    req.SmallFastModel,
	}
}

// Package core holds the shared HTTP response envelope for API handlers.
package core

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lectern-ai/lectern/pkg/errorx"
	"github.com/lectern-ai/lectern/pkg/logger"
)

// ErrResponse is the body returned for any failed request.
type ErrResponse struct {
	// Code is the business error code.
	Code int `json:"code"`
	// Message is the user-safe description of the failure.
	Message string `json:"message"`
	// Reference optionally points at a document describing the fix.
	Reference string `json:"reference,omitempty"`
}

// WriteResponse writes either an error envelope or the success payload.
// Coded errors map to their registered HTTP status; everything else is a 500.
func WriteResponse(c *gin.Context, err error, data interface{}) {
	if err != nil {
		logger.Warn("[API] %s %s failed: %v", c.Request.Method, c.Request.URL.Path, err)
		coder := errorx.ParseCoder(err)
		c.JSON(coder.HTTPStatus(), ErrResponse{
			Code:      coder.Code(),
			Message:   err.Error(),
			Reference: coder.Reference(),
		})
		return
	}

	c.JSON(http.StatusOK, data)
}

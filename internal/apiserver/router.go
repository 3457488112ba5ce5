package apiserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lectern-ai/lectern/internal/apiserver/handler/middleware"
	v1 "github.com/lectern-ai/lectern/internal/apiserver/handler/v1"
	"github.com/lectern-ai/lectern/internal/apiserver/service/assistant"
	"github.com/lectern-ai/lectern/internal/apiserver/service/chat"
	"github.com/lectern-ai/lectern/internal/apiserver/service/knowledge"
	"github.com/lectern-ai/lectern/internal/apiserver/service/llm"
	"github.com/lectern-ai/lectern/internal/apiserver/service/orchestration"
	"github.com/lectern-ai/lectern/internal/apiserver/service/org"
	genericoptions "github.com/lectern-ai/lectern/internal/pkg/options"
	"github.com/lectern-ai/lectern/pkg/version"
)

// routerDeps holds the dependencies needed for route registration.
type routerDeps struct {
	assistants   *assistant.Service
	organization *org.Service
	chat         *chat.Service
	llm          *llm.Module
	orchestrator *orchestration.Orchestrator
	knowledge    *knowledge.Store
	auth         *genericoptions.AuthOptions
}

func initRouter(g *gin.Engine, deps *routerDeps) {
	installMiddleware(g, deps)
	installController(g, deps)
}

func installMiddleware(g *gin.Engine, deps *routerDeps) {
	g.Use(gin.Recovery())
	g.Use(middleware.CORS())

	if deps.auth != nil && deps.auth.Enabled {
		g.Use(middleware.BearerAuth(&middleware.AuthConfig{
			Enabled: deps.auth.Enabled,
			Token:   deps.auth.Token,
		}))
	}
}

func installController(g *gin.Engine, deps *routerDeps) {
	g.GET("/version", func(c *gin.Context) {
		c.JSON(http.StatusOK, version.Get())
	})

	// Handlers.
	chatHandler := v1.NewChatCompletionsHandler(deps.chat)
	assistantHandler := v1.NewAssistantHandler(deps.assistants)
	organizationHandler := v1.NewOrganizationHandler(deps.organization)
	modelsHandler := v1.NewModelsHandler(deps.llm)
	toolsHandler := v1.NewToolsHandler(deps.orchestrator, deps.knowledge)

	// --- /v1 route group ---
	apiV1 := g.Group("/v1")
	{
		// OpenAI-compatible endpoints.
		apiV1.POST("/chat/completions", chatHandler.Handle)
		apiV1.GET("/models", modelsHandler.List)

		// Assistant CRUD.
		apiV1.POST("/assistants", assistantHandler.Create)
		apiV1.GET("/assistants", assistantHandler.List)
		apiV1.GET("/assistants/:id", assistantHandler.Get)
		apiV1.PUT("/assistants/:id", assistantHandler.Update)
		apiV1.DELETE("/assistants/:id", assistantHandler.Delete)

		// Organization CRUD.
		apiV1.POST("/organizations", organizationHandler.Create)
		apiV1.GET("/organizations", organizationHandler.List)
		apiV1.GET("/organizations/:id", organizationHandler.Get)
		apiV1.PUT("/organizations/:id", organizationHandler.Update)
		apiV1.DELETE("/organizations/:id", organizationHandler.Delete)

		// Tool and strategy discovery.
		apiV1.GET("/tools", toolsHandler.ListTools)
		apiV1.GET("/strategies", toolsHandler.ListStrategies)
		apiV1.GET("/collections", toolsHandler.ListCollections)
	}
}

// Package spi defines the tool plugin contract of the orchestration core.
package spi

import (
	"context"

	"github.com/cloudwego/eino/schema"

	"github.com/lectern-ai/lectern/internal/apiserver/service/orchestration/domain/entity"
)

// Tool is the plugin contract: one unit of work producing content for a
// single named placeholder.
//
// Process must always return a ToolResult and never panic for expected
// failure modes (missing config field, file not found, empty retrieval):
// those populate ToolResult.Error plus a user-safe Content string so the
// run continues with other tools.
type Tool interface {
	// Definition returns the tool's immutable registration metadata.
	Definition() entity.ToolDefinition

	// Process turns the request plus this instance's config into content
	// for the config's placeholder. The returned result's Placeholder
	// must match cfg.Placeholder.
	Process(ctx context.Context, req *entity.ToolRequest, assistant *entity.Assistant, cfg *entity.ToolConfig) *entity.ToolResult
}

// ConfigValidator is an optional hook checked only at assistant-save time.
// Execution-time problems still degrade to ToolResult.Error.
type ConfigValidator interface {
	// ValidateConfig returns human-readable problems with the given
	// config mapping, or nil when it is acceptable.
	ValidateConfig(config map[string]interface{}) []string
}

// KnowledgeSearcher is the slice of the knowledge subsystem retrieval tools
// consume.
type KnowledgeSearcher interface {
	// Search queries one collection and returns ranked citations,
	// best first.
	Search(ctx context.Context, collection, query string, limit int) ([]entity.Source, error)
}

// CompletionClient is the slice of the connector dispatch layer tools may
// call for internal helper completions, such as retrieval query rewriting.
// Implementations route useSmallFastModel calls to the organization's
// configured small/fast model, never the user-selected one.
type CompletionClient interface {
	Complete(ctx context.Context, owner string, messages []*schema.Message, useSmallFastModel bool) (string, error)
}

// Dependencies carries the shared runtime resources handed to tool
// factories. Fields a given tool does not need stay nil.
type Dependencies struct {
	// FileBaseDir confines file-reading tools. Paths resolving outside
	// it are rejected.
	FileBaseDir string

	// Knowledge serves collection retrieval. Nil disables RAG tools.
	Knowledge KnowledgeSearcher

	// Completions serves tool-internal helper completions. Nil disables
	// query rewriting.
	Completions CompletionClient
}

// ToolFactory constructs a tool plugin from the shared dependencies.
// A factory error skips that one plugin; it never aborts registration of
// the others.
type ToolFactory func(deps Dependencies) (Tool, error)

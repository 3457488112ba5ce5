// Package collectionrag implements retrieval over a knowledge collection:
// it queries the knowledge store with the user's question (optionally
// rewritten by the organization's small/fast model) and injects the ranked
// snippets into a prompt placeholder.
package collectionrag

import (
	"context"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/schema"

	"github.com/lectern-ai/lectern/internal/apiserver/service/orchestration/domain/entity"
	"github.com/lectern-ai/lectern/internal/apiserver/service/orchestration/spi"
	"github.com/lectern-ai/lectern/pkg/logger"
)

// Name is the tool's registry name.
const Name = "knowledge_search"

// DefaultLimit is the number of snippets retrieved when the config names no
// limit.
const DefaultLimit = 5

const rewritePrompt = "Rewrite the following question as a short search query. " +
	"Reply with the query only, no explanation.\n\nQuestion: %s"

var (
	_ spi.Tool            = (*Tool)(nil)
	_ spi.ConfigValidator = (*Tool)(nil)
)

// Tool retrieves ranked snippets from one knowledge collection.
type Tool struct {
	knowledge   spi.KnowledgeSearcher
	completions spi.CompletionClient
}

// New is the tool's factory. It fails when no knowledge store is wired,
// which unregisters the tool for the process lifetime. The completion
// client is optional; without it query rewriting is unavailable.
func New(deps spi.Dependencies) (spi.Tool, error) {
	if deps.Knowledge == nil {
		return nil, fmt.Errorf("knowledge store is not configured")
	}
	return &Tool{
		knowledge:   deps.Knowledge,
		completions: deps.Completions,
	}, nil
}

// Definition implements spi.Tool.
func (t *Tool) Definition() entity.ToolDefinition {
	return entity.ToolDefinition{
		Name:        Name,
		DisplayName: "Knowledge Search",
		Description: "Retrieves the most relevant snippets from a knowledge collection for the user's question.",
		Placeholder: "context",
		Category:    entity.CategoryRAG,
		ConfigSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"collection": map[string]interface{}{
					"type":        "string",
					"description": "Name of the knowledge collection to search.",
				},
				"limit": map[string]interface{}{
					"type":        "integer",
					"description": "Maximum number of snippets to retrieve.",
					"minimum":     1,
				},
				"rewrite_query": map[string]interface{}{
					"type":        "boolean",
					"description": "Rewrite the question into a search query with the organization's small/fast model.",
				},
			},
			"required": []string{"collection"},
		},
		Version: "1.0.0",
	}
}

// ValidateConfig implements spi.ConfigValidator.
func (t *Tool) ValidateConfig(config map[string]interface{}) []string {
	var problems []string

	if collection, ok := config["collection"].(string); !ok || collection == "" {
		problems = append(problems, "collection is required")
	}
	if raw, ok := config["limit"]; ok {
		if n, ok := configInt(raw); !ok || n <= 0 {
			problems = append(problems, "limit must be a positive integer")
		}
	}
	if raw, ok := config["rewrite_query"]; ok {
		if _, ok := raw.(bool); !ok {
			problems = append(problems, "rewrite_query must be a boolean")
		}
	}

	return problems
}

// Process implements spi.Tool. Retrieval failures and empty results degrade
// to the result's Error field. A failed query rewrite falls back to the
// original question rather than failing the whole tool.
func (t *Tool) Process(ctx context.Context, req *entity.ToolRequest, _ *entity.Assistant, cfg *entity.ToolConfig) *entity.ToolResult {
	collection, ok := cfg.Config["collection"].(string)
	if !ok || collection == "" {
		return entity.ErrorResult(cfg.Placeholder, "collection is required")
	}

	limit := DefaultLimit
	if raw, ok := cfg.Config["limit"]; ok {
		if n, ok := configInt(raw); ok && n > 0 {
			limit = n
		}
	}

	query := req.UserInput
	if rewrite, _ := cfg.Config["rewrite_query"].(bool); rewrite {
		query = t.rewriteQuery(ctx, req.Owner, query)
	}

	sources, err := t.knowledge.Search(ctx, collection, query, limit)
	if err != nil {
		return entity.ErrorResult(cfg.Placeholder, fmt.Sprintf("search in collection %q failed: %v", collection, err))
	}
	if len(sources) == 0 {
		res := entity.ErrorResult(cfg.Placeholder, fmt.Sprintf("no results found in collection %q", collection))
		res.Content = fmt.Sprintf("No relevant content found in collection %q.", collection)
		return res
	}

	var b strings.Builder
	for i, src := range sources {
		if i > 0 {
			b.WriteString("\n\n")
		}
		fmt.Fprintf(&b, "[%d] %s\n%s", i+1, src.Source, src.Content)
	}

	return &entity.ToolResult{
		Placeholder: cfg.Placeholder,
		Content:     b.String(),
		Sources:     sources,
		Metadata: map[string]interface{}{
			"collection": collection,
			"query":      query,
		},
	}
}

// rewriteQuery asks the organization's small/fast model for a compact search
// query. Any failure, including an unconfigured small/fast model, falls back
// to the original question.
func (t *Tool) rewriteQuery(ctx context.Context, owner, question string) string {
	if t.completions == nil {
		return question
	}

	messages := []*schema.Message{
		schema.UserMessage(fmt.Sprintf(rewritePrompt, question)),
	}
	rewritten, err := t.completions.Complete(ctx, owner, messages, true)
	if err != nil {
		logger.Warn("[KnowledgeSearch] query rewrite failed, using original question: %v", err)
		return question
	}
	rewritten = strings.TrimSpace(rewritten)
	if rewritten == "" {
		return question
	}
	return rewritten
}

func configInt(raw interface{}) (int, bool) {
	switch v := raw.(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	default:
		return 0, false
	}
}

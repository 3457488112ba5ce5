package entity

import "time"

// Tool categories. Free-form tags used for API/UI grouping only; the
// orchestration core never branches on them.
const (
	CategoryRAG    = "rag"
	CategoryRubric = "rubric"
	CategoryFile   = "file"
	CategoryCustom = "custom"
)

// ToolDefinition is the immutable metadata a tool plugin declares at
// registration time.
type ToolDefinition struct {
	// Name is the tool's unique name. (e.g. "single_file_rag")
	Name string `json:"name"`
	// DisplayName is the human-readable name shown in UIs.
	DisplayName string `json:"display_name"`
	// Description is a brief description of the tool's purpose.
	Description string `json:"description"`
	// Placeholder is the default prompt-template slot the tool feeds.
	Placeholder string `json:"placeholder"`
	// Category is one of the Category* tags.
	Category string `json:"category"`
	// ConfigSchema is a JSON-Schema-shaped description of the accepted
	// configuration mapping.
	ConfigSchema map[string]interface{} `json:"config_schema,omitempty"`
	// Version is the plugin version string.
	Version string `json:"version"`
}

// ToolConfig is one per-assistant instance of a tool, parsed fresh from the
// assistant's stored metadata on every request.
type ToolConfig struct {
	// Plugin references a registered tool definition by name.
	Plugin string `json:"plugin"`
	// Placeholder is the template slot this instance feeds. Defaults to
	// "context" when absent from the metadata.
	Placeholder string `json:"placeholder"`
	// Enabled defaults to true when absent from the metadata.
	Enabled bool `json:"enabled"`
	// Config is the free-form per-instance configuration mapping.
	Config map[string]interface{} `json:"config,omitempty"`
}

// Source is one citation attached to a tool's output. Order within a tool's
// result follows the tool's own ranking.
type Source struct {
	// Source identifies where the content came from (file name,
	// collection document ID, URL).
	Source string `json:"source"`
	// Content is the cited snippet.
	Content string `json:"content"`
	// Score is the tool-assigned relevance score.
	Score float64 `json:"score"`
	// Metadata carries optional tool-specific fields.
	Metadata map[string]interface{} `json:"metadata,omitempty"`
}

// ToolResult is the output of one tool invocation. Tools always return one,
// even on internal failure: failures populate Error and a user-safe Content
// string so that prompt substitution still has something to insert.
type ToolResult struct {
	// Placeholder matches the placeholder of the originating ToolConfig.
	Placeholder string `json:"placeholder"`
	// Content is the text substituted into the prompt template.
	Content string `json:"content"`
	// Sources are the tool's citations, in the tool's own ranking order.
	Sources []Source `json:"sources,omitempty"`
	// Metadata carries optional tool-specific diagnostics.
	Metadata map[string]interface{} `json:"metadata,omitempty"`
	// Error is non-empty when the tool failed. The orchestration run
	// continues regardless.
	Error string `json:"error,omitempty"`
	// Duration is how long the tool's Process call took.
	Duration time.Duration `json:"duration,omitempty"`
}

// ErrorResult builds the degraded ToolResult for a failed invocation.
// Content carries the same message so the rendered prompt shows a readable
// in-context note instead of an empty slot.
func ErrorResult(placeholder, message string) *ToolResult {
	return &ToolResult{
		Placeholder: placeholder,
		Content:     "Error: " + message,
		Error:       message,
	}
}

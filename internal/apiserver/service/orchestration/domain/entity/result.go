package entity

import (
	"time"

	"github.com/cloudwego/eino/schema"
)

// ToolRequest is the request-scoped context handed unchanged to every tool in
// a run. Tools never see each other's output.
type ToolRequest struct {
	// Messages is the raw inbound conversation.
	Messages []*schema.Message `json:"messages"`
	// UserInput is the end-user's latest message, substituted for the
	// {user_input} template token.
	UserInput string `json:"user_input"`
	// Owner is the organization identity the request runs under.
	Owner string `json:"owner"`
}

// OrchestrationResult is the final output of a run. Exactly one
// representation is populated: Messages+Sources in normal mode, Report in
// verbose mode.
type OrchestrationResult struct {
	// Messages is [system message, rendered user message], ready for the
	// connector dispatch layer.
	Messages []*schema.Message `json:"messages,omitempty"`
	// Sources aggregates every tool's citations in tool declaration
	// order, preserving each tool's internal ranking.
	Sources []Source `json:"sources,omitempty"`
	// Report is the verbose-mode diagnostic document.
	Report string `json:"report,omitempty"`
	// ToolResults holds every produced result in declaration order.
	ToolResults []*ToolResult `json:"tool_results,omitempty"`
	// Elapsed is the total orchestration wall time.
	Elapsed time.Duration `json:"elapsed,omitempty"`
}

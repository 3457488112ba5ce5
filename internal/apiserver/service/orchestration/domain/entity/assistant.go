package entity

import "time"

// AssistantMetadata is the free-form orchestration configuration stored with
// an assistant. Tools is kept as raw mappings: it is parsed into ToolConfig
// entities fresh on every request.
type AssistantMetadata struct {
	// Orchestrator names the strategy to run. Empty means "sequential".
	Orchestrator string `json:"orchestrator,omitempty"`
	// Tools is the ordered list of raw per-tool configuration mappings.
	Tools []map[string]interface{} `json:"tools,omitempty"`
}

// Assistant is a configured learning assistant. The orchestration core reads
// it; only the assistant service mutates it.
type Assistant struct {
	ID string `json:"id"`
	// Name is the human-facing assistant name.
	Name string `json:"name"`
	// SystemPrompt is sent unmodified as the system message.
	SystemPrompt string `json:"system_prompt"`
	// PromptTemplate contains {placeholder} tokens filled from tool output
	// plus {user_input} for the end-user's latest message.
	PromptTemplate string `json:"prompt_template"`
	// Owner is the organization the assistant belongs to.
	Owner string `json:"owner"`
	// Provider/Model select the user-facing completion model.
	Provider string `json:"provider,omitempty"`
	Model    string `json:"model,omitempty"`

	Metadata AssistantMetadata `json:"metadata"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

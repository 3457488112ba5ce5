package orchestration

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lectern-ai/lectern/internal/apiserver/service/orchestration/domain/entity"
	"github.com/lectern-ai/lectern/internal/apiserver/service/orchestration/pkg/errno"
	"github.com/lectern-ai/lectern/internal/apiserver/service/orchestration/spi"
)

type mockTool struct {
	name     string
	process  func(cfg *entity.ToolConfig) *entity.ToolResult
	validate func(config map[string]interface{}) []string
}

func (m *mockTool) Definition() entity.ToolDefinition {
	return entity.ToolDefinition{
		Name:        m.name,
		DisplayName: m.name,
		Placeholder: "context",
		Category:    entity.CategoryCustom,
		Version:     "0.0.1",
	}
}

func (m *mockTool) Process(_ context.Context, _ *entity.ToolRequest, _ *entity.Assistant, cfg *entity.ToolConfig) *entity.ToolResult {
	return m.process(cfg)
}

func (m *mockTool) ValidateConfig(config map[string]interface{}) []string {
	if m.validate == nil {
		return nil
	}
	return m.validate(config)
}

func staticTool(name, content string) *mockTool {
	return &mockTool{
		name: name,
		process: func(cfg *entity.ToolConfig) *entity.ToolResult {
			return &entity.ToolResult{
				Placeholder: cfg.Placeholder,
				Content:     content,
				Sources: []entity.Source{
					{Source: name + ".txt", Content: content, Score: 0.9},
				},
			}
		},
	}
}

func newTestAssistant(template string, tools []map[string]interface{}) *entity.Assistant {
	return &entity.Assistant{
		ID:             "asst-1",
		Name:           "Study Helper",
		SystemPrompt:   "You are a helpful study assistant.",
		PromptTemplate: template,
		Owner:          "org-1",
		Metadata:       entity.AssistantMetadata{Tools: tools},
	}
}

func TestRegistryDuplicateRegistration(t *testing.T) {
	registry := NewRegistry()
	if err := registry.Register(staticTool("alpha", "a")); err != nil {
		t.Fatalf("first Register failed: %v", err)
	}
	err := registry.Register(staticTool("alpha", "b"))
	if !errors.Is(err, errno.ErrToolAlreadyRegistered) {
		t.Fatalf("expected ErrToolAlreadyRegistered, got %v", err)
	}
	if registry.Len() != 1 {
		t.Fatalf("expected 1 registered tool, got %d", registry.Len())
	}
}

func TestRegistryDefinitionsAreCopies(t *testing.T) {
	registry := NewRegistry()
	tool := &mockTool{name: "alpha"}
	if err := registry.Register(tool); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	defs := registry.Definitions()
	if len(defs) != 1 {
		t.Fatalf("expected 1 definition, got %d", len(defs))
	}
	defs[0].Name = "mutated"

	again := registry.Definitions()
	if again[0].Name != "alpha" {
		t.Fatalf("registry definition mutated through projection: %q", again[0].Name)
	}
}

// Repeated runs with fixed tool outputs must produce byte-identical messages
// and source ordering.
func TestSequentialDeterminism(t *testing.T) {
	registry := NewRegistry()
	registry.MustRegister(staticTool("alpha", "alpha content"))
	registry.MustRegister(staticTool("beta", "beta content"))

	orch := NewOrchestrator(registry)
	assistant := newTestAssistant("A: {a}\nB: {b}\nQ: {user_input}", []map[string]interface{}{
		{"plugin": "alpha", "placeholder": "a"},
		{"plugin": "beta", "placeholder": "b"},
	})
	req := &entity.ToolRequest{UserInput: "explain", Owner: "org-1"}

	first, err := orch.Orchestrate(context.Background(), req, assistant, false, nil)
	if err != nil {
		t.Fatalf("Orchestrate failed: %v", err)
	}

	for i := 0; i < 5; i++ {
		res, err := orch.Orchestrate(context.Background(), req, assistant, false, nil)
		if err != nil {
			t.Fatalf("run %d failed: %v", i, err)
		}
		if res.Messages[1].Content != first.Messages[1].Content {
			t.Fatalf("run %d rendered different message: %q vs %q", i, res.Messages[1].Content, first.Messages[1].Content)
		}
		if len(res.Sources) != 2 || res.Sources[0].Source != "alpha.txt" || res.Sources[1].Source != "beta.txt" {
			t.Fatalf("run %d source order changed: %+v", i, res.Sources)
		}
	}

	want := "A: alpha content\nB: beta content\nQ: explain"
	if first.Messages[1].Content != want {
		t.Fatalf("rendered message = %q, want %q", first.Messages[1].Content, want)
	}
}

// A tool that fails internally must not stop tools declared after it.
func TestSequentialFailureIsolation(t *testing.T) {
	registry := NewRegistry()
	registry.MustRegister(&mockTool{
		name: "broken",
		process: func(cfg *entity.ToolConfig) *entity.ToolResult {
			return entity.ErrorResult(cfg.Placeholder, "backend unreachable")
		},
	})
	registry.MustRegister(staticTool("beta", "beta content"))

	orch := NewOrchestrator(registry)
	assistant := newTestAssistant("X: {x}\nY: {y}", []map[string]interface{}{
		{"plugin": "broken", "placeholder": "x"},
		{"plugin": "beta", "placeholder": "y"},
	})

	res, err := orch.Orchestrate(context.Background(), &entity.ToolRequest{UserInput: "q"}, assistant, false, nil)
	if err != nil {
		t.Fatalf("Orchestrate failed: %v", err)
	}
	if len(res.ToolResults) != 2 {
		t.Fatalf("expected 2 tool results, got %d", len(res.ToolResults))
	}
	if res.ToolResults[0].Error == "" {
		t.Fatal("expected first tool result to carry an error")
	}
	if !strings.Contains(res.Messages[1].Content, "beta content") {
		t.Fatalf("second tool's content missing from message: %q", res.Messages[1].Content)
	}
	if !strings.Contains(res.Messages[1].Content, "Error: backend unreachable") {
		t.Fatalf("degraded content missing from message: %q", res.Messages[1].Content)
	}
}

// A panicking tool degrades to an error result instead of crashing the run.
func TestSequentialPanicContainment(t *testing.T) {
	registry := NewRegistry()
	registry.MustRegister(&mockTool{
		name: "panicky",
		process: func(cfg *entity.ToolConfig) *entity.ToolResult {
			panic("boom")
		},
	})
	registry.MustRegister(staticTool("beta", "beta content"))

	orch := NewOrchestrator(registry)
	assistant := newTestAssistant("{a} {b}", []map[string]interface{}{
		{"plugin": "panicky", "placeholder": "a"},
		{"plugin": "beta", "placeholder": "b"},
	})

	res, err := orch.Orchestrate(context.Background(), &entity.ToolRequest{UserInput: "q"}, assistant, false, nil)
	if err != nil {
		t.Fatalf("Orchestrate failed: %v", err)
	}
	if !strings.Contains(res.ToolResults[0].Error, "panicked") {
		t.Fatalf("expected panic to surface in error field, got %q", res.ToolResults[0].Error)
	}
	if !strings.Contains(res.Messages[1].Content, "beta content") {
		t.Fatalf("later tool did not run after panic: %q", res.Messages[1].Content)
	}
}

// An unmatched placeholder stays literal in the rendered message.
func TestPlaceholderSafety(t *testing.T) {
	registry := NewRegistry()
	registry.MustRegister(staticTool("alpha", "alpha content"))

	orch := NewOrchestrator(registry)
	assistant := newTestAssistant("Known: {a}\nUnknown: {missing}", []map[string]interface{}{
		{"plugin": "alpha", "placeholder": "a"},
	})

	res, err := orch.Orchestrate(context.Background(), &entity.ToolRequest{UserInput: "q"}, assistant, false, nil)
	if err != nil {
		t.Fatalf("Orchestrate failed: %v", err)
	}
	if !strings.Contains(res.Messages[1].Content, "{missing}") {
		t.Fatalf("unmatched placeholder was not left literal: %q", res.Messages[1].Content)
	}
}

// An unknown strategy name degrades to sequential instead of failing.
func TestStrategyFallback(t *testing.T) {
	registry := NewRegistry()
	registry.MustRegister(staticTool("alpha", "alpha content"))

	orch := NewOrchestrator(registry)
	assistant := newTestAssistant("{a}", []map[string]interface{}{
		{"plugin": "alpha", "placeholder": "a"},
	})
	assistant.Metadata.Orchestrator = "does-not-exist"

	res, err := orch.Orchestrate(context.Background(), &entity.ToolRequest{UserInput: "q"}, assistant, false, nil)
	if err != nil {
		t.Fatalf("expected fallback to sequential, got error: %v", err)
	}
	if len(res.Messages) != 2 {
		t.Fatalf("expected a valid result from the fallback strategy, got %+v", res)
	}
	if res.Messages[1].Content != "alpha content" {
		t.Fatalf("rendered message = %q", res.Messages[1].Content)
	}
}

func TestUnknownToolDegradesPlaceholder(t *testing.T) {
	registry := NewRegistry()
	registry.MustRegister(staticTool("beta", "beta content"))

	orch := NewOrchestrator(registry)
	assistant := newTestAssistant("{x} {y}", []map[string]interface{}{
		{"plugin": "ghost", "placeholder": "x"},
		{"plugin": "beta", "placeholder": "y"},
	})

	res, err := orch.Orchestrate(context.Background(), &entity.ToolRequest{UserInput: "q"}, assistant, false, nil)
	if err != nil {
		t.Fatalf("Orchestrate failed: %v", err)
	}
	if len(res.ToolResults) != 2 {
		t.Fatalf("expected one result per enabled config, got %d", len(res.ToolResults))
	}
	if !strings.Contains(res.ToolResults[0].Error, "unknown tool") {
		t.Fatalf("expected unknown-tool error, got %q", res.ToolResults[0].Error)
	}
	if !strings.Contains(res.Messages[1].Content, "beta content") {
		t.Fatalf("later tool did not run: %q", res.Messages[1].Content)
	}
}

func TestDisabledToolIsSkipped(t *testing.T) {
	invoked := false
	registry := NewRegistry()
	registry.MustRegister(&mockTool{
		name: "off",
		process: func(cfg *entity.ToolConfig) *entity.ToolResult {
			invoked = true
			return &entity.ToolResult{Placeholder: cfg.Placeholder}
		},
	})

	orch := NewOrchestrator(registry)
	assistant := newTestAssistant("{a}", []map[string]interface{}{
		{"plugin": "off", "placeholder": "a", "enabled": false},
	})

	res, err := orch.Orchestrate(context.Background(), &entity.ToolRequest{UserInput: "q"}, assistant, false, nil)
	if err != nil {
		t.Fatalf("Orchestrate failed: %v", err)
	}
	if invoked {
		t.Fatal("disabled tool was invoked")
	}
	if len(res.ToolResults) != 0 {
		t.Fatalf("expected no tool results, got %d", len(res.ToolResults))
	}
	if res.Messages[1].Content != "{a}" {
		t.Fatalf("placeholder of a disabled tool should stay literal, got %q", res.Messages[1].Content)
	}
}

func TestStreamCallbackProgress(t *testing.T) {
	registry := NewRegistry()
	registry.MustRegister(staticTool("alpha", "a"))

	orch := NewOrchestrator(registry)
	assistant := newTestAssistant("{a}", []map[string]interface{}{
		{"plugin": "alpha", "placeholder": "a"},
	})

	var lines []string
	_, err := orch.Orchestrate(context.Background(), &entity.ToolRequest{UserInput: "q"}, assistant, false, func(msg string) {
		lines = append(lines, msg)
	})
	if err != nil {
		t.Fatalf("Orchestrate failed: %v", err)
	}
	if len(lines) < 2 {
		t.Fatalf("expected progress lines, got %v", lines)
	}
	joined := strings.Join(lines, "\n")
	if !strings.Contains(joined, "Starting tool execution") || !strings.Contains(joined, "completed successfully") {
		t.Fatalf("unexpected progress output: %v", lines)
	}
}

func TestPanickingCallbackDoesNotAbortRun(t *testing.T) {
	registry := NewRegistry()
	registry.MustRegister(staticTool("alpha", "alpha output"))

	orch := NewOrchestrator(registry)
	assistant := newTestAssistant("Context: {a}", []map[string]interface{}{
		{"plugin": "alpha", "placeholder": "a"},
	})

	res, err := orch.Orchestrate(context.Background(), &entity.ToolRequest{UserInput: "q"}, assistant, false, func(msg string) {
		panic("callback sink failed")
	})
	if err != nil {
		t.Fatalf("Orchestrate failed: %v", err)
	}
	if len(res.Messages) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(res.Messages))
	}
	if !strings.Contains(res.Messages[1].Content, "Context: alpha output") {
		t.Fatalf("tool output missing from rendered prompt: %q", res.Messages[1].Content)
	}
}

func TestToolDefaultsMergedUnderAssistantConfig(t *testing.T) {
	var seen map[string]interface{}
	registry := NewRegistry()
	registry.MustRegister(&mockTool{
		name: "alpha",
		process: func(cfg *entity.ToolConfig) *entity.ToolResult {
			seen = cfg.Config
			return &entity.ToolResult{Placeholder: cfg.Placeholder, Content: "out"}
		},
	})

	orch := NewOrchestrator(registry)
	orch.SetToolDefaults(map[string]map[string]interface{}{
		"alpha": {"max_chars": 512, "mode": "server"},
	})
	assistant := newTestAssistant("Context: {context}", []map[string]interface{}{
		{"plugin": "alpha", "config": map[string]interface{}{"mode": "assistant"}},
	})

	if _, err := orch.Orchestrate(context.Background(), &entity.ToolRequest{UserInput: "q"}, assistant, false, nil); err != nil {
		t.Fatalf("Orchestrate failed: %v", err)
	}
	if seen["max_chars"] != 512 {
		t.Fatalf("server default not merged: %+v", seen)
	}
	if seen["mode"] != "assistant" {
		t.Fatalf("assistant config should win over server default: %+v", seen)
	}
}

func TestParseToolConfigDefaults(t *testing.T) {
	configs := ParseToolConfigs([]map[string]interface{}{
		{"plugin": "alpha"},
		{"plugin": "beta", "placeholder": "b", "enabled": false, "config": map[string]interface{}{"k": "v"}},
	})

	if len(configs) != 2 {
		t.Fatalf("expected 2 configs, got %d", len(configs))
	}
	if configs[0].Placeholder != DefaultPlaceholder || !configs[0].Enabled {
		t.Fatalf("defaults not applied: %+v", configs[0])
	}
	if configs[1].Placeholder != "b" || configs[1].Enabled || configs[1].Config["k"] != "v" {
		t.Fatalf("explicit fields not honored: %+v", configs[1])
	}
}

// A later enabled tool sharing a placeholder wins the substitution while
// both tools still contribute sources.
func TestDuplicatePlaceholderLaterToolWins(t *testing.T) {
	registry := NewRegistry()
	registry.MustRegister(staticTool("alpha", "first"))
	registry.MustRegister(staticTool("beta", "second"))

	orch := NewOrchestrator(registry)
	assistant := newTestAssistant("{context}", []map[string]interface{}{
		{"plugin": "alpha"},
		{"plugin": "beta"},
	})

	res, err := orch.Orchestrate(context.Background(), &entity.ToolRequest{UserInput: "q"}, assistant, false, nil)
	if err != nil {
		t.Fatalf("Orchestrate failed: %v", err)
	}
	if res.Messages[1].Content != "second" {
		t.Fatalf("expected later tool's content, got %q", res.Messages[1].Content)
	}
	if len(res.Sources) != 2 {
		t.Fatalf("expected both tools' sources, got %d", len(res.Sources))
	}
}

func TestValidateAssistant(t *testing.T) {
	registry := NewRegistry()
	registry.MustRegister(staticTool("alpha", "a"))
	registry.MustRegister(&mockTool{
		name: "picky",
		process: func(cfg *entity.ToolConfig) *entity.ToolResult {
			return &entity.ToolResult{Placeholder: cfg.Placeholder}
		},
		validate: func(config map[string]interface{}) []string {
			if _, ok := config["required_key"]; !ok {
				return []string{"required_key is required"}
			}
			return nil
		},
	})

	orch := NewOrchestrator(registry)

	assistant := newTestAssistant("{context}", []map[string]interface{}{
		{"plugin": "ghost"},
		{"plugin": "picky"},
		{"plugin": "alpha", "placeholder": "dup"},
		{"plugin": "alpha", "placeholder": "dup"},
	})
	assistant.Metadata.Orchestrator = "nope"

	problems := orch.ValidateAssistant(assistant)
	joined := strings.Join(problems, "\n")

	for _, want := range []string{
		`unknown orchestrator strategy "nope"`,
		`unknown tool "ghost"`,
		"required_key is required",
		`placeholder "dup" already claimed`,
	} {
		if !strings.Contains(joined, want) {
			t.Errorf("missing problem %q in:\n%s", want, joined)
		}
	}

	clean := newTestAssistant("{context}", []map[string]interface{}{{"plugin": "alpha"}})
	if problems := orch.ValidateAssistant(clean); len(problems) != 0 {
		t.Fatalf("expected no problems, got %v", problems)
	}
}

func TestStrategiesListing(t *testing.T) {
	orch := NewOrchestrator(NewRegistry())
	infos := orch.Strategies()
	if len(infos) != 1 || infos[0].Name != SequentialName {
		t.Fatalf("unexpected strategies: %+v", infos)
	}
	if infos[0].Description == "" {
		t.Fatal("strategy description is empty")
	}
}

// End-to-end scenario with the real file injection tool.
func TestFileScenario(t *testing.T) {
	base := t.TempDir()
	content := "Lectern is a learning assistant platform."
	if err := os.WriteFile(filepath.Join(base, "readme.txt"), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	registry := NewInTreeRegistry(spi.Dependencies{FileBaseDir: base})
	orch := NewOrchestrator(registry)

	assistant := newTestAssistant("Context: {file}\n\nQuestion: {user_input}", []map[string]interface{}{
		{
			"plugin":      "single_file_rag",
			"placeholder": "file",
			"config":      map[string]interface{}{"file_path": "readme.txt"},
		},
	})
	assistant.Metadata.Orchestrator = "sequential"
	req := &entity.ToolRequest{UserInput: "Summarize", Owner: "org-1"}

	res, err := orch.Orchestrate(context.Background(), req, assistant, false, nil)
	if err != nil {
		t.Fatalf("Orchestrate failed: %v", err)
	}

	want := "Context: " + content + "\n\nQuestion: Summarize"
	if res.Messages[1].Content != want {
		t.Fatalf("rendered message = %q, want %q", res.Messages[1].Content, want)
	}
	if len(res.Sources) != 1 || res.Sources[0].Source != "readme.txt" {
		t.Fatalf("unexpected sources: %+v", res.Sources)
	}
	if res.Messages[0].Content != assistant.SystemPrompt {
		t.Fatalf("system prompt was modified: %q", res.Messages[0].Content)
	}
}

// Verbose mode returns a report and leaves Messages empty.
func TestFileScenarioVerbose(t *testing.T) {
	base := t.TempDir()
	if err := os.WriteFile(filepath.Join(base, "readme.txt"), []byte("hello"), 0644); err != nil {
		t.Fatal(err)
	}

	registry := NewInTreeRegistry(spi.Dependencies{FileBaseDir: base})
	orch := NewOrchestrator(registry)

	assistant := newTestAssistant("Context: {file}\n\nQuestion: {user_input}", []map[string]interface{}{
		{
			"plugin":      "single_file_rag",
			"placeholder": "file",
			"config":      map[string]interface{}{"file_path": "readme.txt"},
		},
	})
	req := &entity.ToolRequest{UserInput: "Summarize", Owner: "org-1"}

	res, err := orch.Orchestrate(context.Background(), req, assistant, true, nil)
	if err != nil {
		t.Fatalf("Orchestrate failed: %v", err)
	}
	if len(res.Messages) != 0 {
		t.Fatalf("verbose mode populated messages: %+v", res.Messages)
	}
	if !strings.Contains(res.Report, "single_file_rag") || !strings.Contains(res.Report, "readme.txt") {
		t.Fatalf("report missing tool details:\n%s", res.Report)
	}
}

func TestRenderTemplate(t *testing.T) {
	tests := []struct {
		name     string
		template string
		values   map[string]string
		want     string
	}{
		{
			name:     "simple substitution",
			template: "Hello {name}",
			values:   map[string]string{"name": "world"},
			want:     "Hello world",
		},
		{
			name:     "unmatched stays literal",
			template: "keep {this}",
			values:   map[string]string{},
			want:     "keep {this}",
		},
		{
			name:     "json braces untouched",
			template: `{"key": "value"} and {slot}`,
			values:   map[string]string{"slot": "x"},
			want:     `{"key": "value"} and x`,
		},
		{
			name:     "empty value substitutes",
			template: "[{slot}]",
			values:   map[string]string{"slot": ""},
			want:     "[]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RenderTemplate(tt.template, tt.values); got != tt.want {
				t.Fatalf("RenderTemplate() = %q, want %q", got, tt.want)
			}
		})
	}
}

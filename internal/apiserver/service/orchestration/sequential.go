package orchestration

import (
	"context"
	"fmt"
	"time"

	"github.com/cloudwego/eino/schema"

	"github.com/lectern-ai/lectern/internal/apiserver/service/orchestration/domain/entity"
	"github.com/lectern-ai/lectern/internal/apiserver/service/orchestration/spi"
	"github.com/lectern-ai/lectern/pkg/logger"
)

// SequentialName is the reference strategy's registration name and the
// fallback when an assistant names an unknown strategy.
const SequentialName = "sequential"

// Sequential runs every enabled tool in declared order, one at a time, and
// substitutes their output into the assistant's prompt template. It is the
// simplest model giving deterministic substitution and source ordering.
type Sequential struct {
	tools *Registry
}

// NewSequential creates the sequential strategy over a tool registry.
func NewSequential(tools *Registry) *Sequential {
	return &Sequential{tools: tools}
}

// Name implements Strategy.
func (s *Sequential) Name() string { return SequentialName }

// Description implements Strategy.
func (s *Sequential) Description() string {
	return "Runs enabled tools one at a time in declared order and substitutes their output into the prompt template."
}

// Execute implements Strategy.
//
// Every enabled config produces exactly one ToolResult, even when the tool
// is unknown or fails internally: a broken tool degrades its own placeholder
// and never aborts the run. When two enabled tools share a placeholder the
// later tool's content wins the substitution while both contribute sources.
func (s *Sequential) Execute(ctx context.Context, req *entity.ToolRequest, assistant *entity.Assistant, configs []*entity.ToolConfig, verbose bool, callback StreamCallback) (*entity.OrchestrationResult, error) {
	start := time.Now()
	emit(callback, "🔄 Starting tool execution")

	var (
		results []*entity.ToolResult
		sources []entity.Source
	)
	values := make(map[string]string)

	for _, cfg := range configs {
		if !cfg.Enabled {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		var res *entity.ToolResult
		tool, ok := s.tools.Get(cfg.Plugin)
		if !ok {
			logger.Warn("[Orchestration] tool %q not registered, degrading placeholder %q", cfg.Plugin, cfg.Placeholder)
			res = entity.ErrorResult(cfg.Placeholder, fmt.Sprintf("unknown tool %q", cfg.Plugin))
			emit(callback, fmt.Sprintf("⚠️ Tool %q not found", cfg.Plugin))
		} else {
			emit(callback, fmt.Sprintf("🔧 Running tool %q", cfg.Plugin))
			res = s.invoke(ctx, tool, req, assistant, cfg)
			if res.Error != "" {
				emit(callback, fmt.Sprintf("❌ Tool %q failed: %s", cfg.Plugin, res.Error))
			} else {
				emit(callback, "✅ Tool completed successfully")
			}
		}

		if res.Placeholder != cfg.Placeholder {
			logger.Warn("[Orchestration] tool %q redirected output to placeholder %q, forcing %q", cfg.Plugin, res.Placeholder, cfg.Placeholder)
			res.Placeholder = cfg.Placeholder
		}

		results = append(results, res)
		sources = append(sources, res.Sources...)
		values[res.Placeholder] = res.Content
	}

	values["user_input"] = req.UserInput
	rendered := RenderTemplate(assistant.PromptTemplate, values)
	elapsed := time.Since(start)

	if verbose {
		return &entity.OrchestrationResult{
			Report:      buildReport(assistant, s.Name(), configs, results, rendered, elapsed),
			ToolResults: results,
			Elapsed:     elapsed,
		}, nil
	}

	return &entity.OrchestrationResult{
		Messages: []*schema.Message{
			schema.SystemMessage(assistant.SystemPrompt),
			schema.UserMessage(rendered),
		},
		Sources:     sources,
		ToolResults: results,
		Elapsed:     elapsed,
	}, nil
}

// invoke calls one tool with panic containment. No failure crosses the tool
// boundary as anything but a degraded ToolResult.
func (s *Sequential) invoke(ctx context.Context, tool spi.Tool, req *entity.ToolRequest, assistant *entity.Assistant, cfg *entity.ToolConfig) (res *entity.ToolResult) {
	started := time.Now()
	defer func() {
		if r := recover(); r != nil {
			logger.Error("[Orchestration] tool %q panicked: %v", cfg.Plugin, r)
			res = entity.ErrorResult(cfg.Placeholder, fmt.Sprintf("tool %q panicked: %v", cfg.Plugin, r))
		}
		if res.Duration == 0 {
			res.Duration = time.Since(started)
		}
	}()

	res = tool.Process(ctx, req, assistant, cfg)
	if res == nil {
		res = entity.ErrorResult(cfg.Placeholder, fmt.Sprintf("tool %q returned no result", cfg.Plugin))
	}
	return res
}

// emit forwards a progress line to the callback when one is attached.
// Progress is advisory; a missing or broken callback never changes the
// result, so a panicking sink is contained here.
func emit(callback StreamCallback, message string) {
	if callback == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			logger.Warn("[Orchestration] progress callback panicked: %v", r)
		}
	}()
	callback(message)
}

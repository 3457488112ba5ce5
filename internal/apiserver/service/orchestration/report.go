package orchestration

import (
	"fmt"
	"strings"
	"time"

	"github.com/lectern-ai/lectern/internal/apiserver/service/orchestration/domain/entity"
	"github.com/lectern-ai/lectern/pkg/utils/json"
)

// buildReport renders a full diagnostic document for one orchestration run:
// every invoked tool with its config, raw content, sources and timing, plus
// the final rendered messages. It replaces Messages in verbose mode and is
// meant for humans, not for LLM consumption.
func buildReport(assistant *entity.Assistant, strategy string, configs []*entity.ToolConfig, results []*entity.ToolResult, rendered string, elapsed time.Duration) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Orchestration Report: %s\n\n", assistant.Name)
	fmt.Fprintf(&b, "- **Strategy:** %s\n", strategy)
	fmt.Fprintf(&b, "- **Tools invoked:** %d\n", len(results))
	fmt.Fprintf(&b, "- **Total time:** %s\n\n", elapsed.Round(time.Millisecond))

	enabled := make([]*entity.ToolConfig, 0, len(configs))
	for _, cfg := range configs {
		if cfg.Enabled {
			enabled = append(enabled, cfg)
		}
	}

	for i, res := range results {
		var cfg *entity.ToolConfig
		if i < len(enabled) {
			cfg = enabled[i]
		}

		name := "(unknown)"
		if cfg != nil {
			name = cfg.Plugin
		}
		fmt.Fprintf(&b, "## Tool %d: %s\n\n", i+1, name)
		fmt.Fprintf(&b, "- **Placeholder:** `%s`\n", res.Placeholder)
		if cfg != nil && len(cfg.Config) > 0 {
			if raw, err := json.MarshalString(cfg.Config); err == nil {
				fmt.Fprintf(&b, "- **Config:** `%s`\n", raw)
			}
		}
		fmt.Fprintf(&b, "- **Duration:** %s\n", res.Duration.Round(time.Millisecond))
		if res.Error != "" {
			fmt.Fprintf(&b, "- **Error:** %s\n", res.Error)
		}

		fmt.Fprintf(&b, "\n### Content\n\n%s\n\n", res.Content)

		if len(res.Sources) > 0 {
			b.WriteString("### Sources\n\n")
			for j, src := range res.Sources {
				fmt.Fprintf(&b, "%d. `%s` (score %.2f)\n", j+1, src.Source, src.Score)
			}
			b.WriteString("\n")
		}
	}

	b.WriteString("## Final Messages\n\n")
	fmt.Fprintf(&b, "### system\n\n%s\n\n", assistant.SystemPrompt)
	fmt.Fprintf(&b, "### user\n\n%s\n", rendered)

	return b.String()
}

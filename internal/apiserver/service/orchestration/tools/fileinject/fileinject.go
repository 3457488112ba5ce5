// Package fileinject implements the single-file content injection tool: it
// reads one file from a confined base directory and feeds its (possibly
// truncated) text into a prompt placeholder.
package fileinject

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/lectern-ai/lectern/internal/apiserver/service/orchestration/domain/entity"
	"github.com/lectern-ai/lectern/internal/apiserver/service/orchestration/spi"
)

// Name is the tool's registry name.
const Name = "single_file_rag"

var (
	_ spi.Tool            = (*Tool)(nil)
	_ spi.ConfigValidator = (*Tool)(nil)
)

// Tool injects the content of a single file. Paths are resolved strictly
// inside the base directory; anything containing a parent-directory segment
// or resolving outside the base is rejected.
type Tool struct {
	baseDir string
}

// New is the tool's factory. It fails when no base directory is configured,
// which unregisters the tool for the process lifetime.
func New(deps spi.Dependencies) (spi.Tool, error) {
	if deps.FileBaseDir == "" {
		return nil, fmt.Errorf("file base directory is not configured")
	}
	base, err := filepath.Abs(deps.FileBaseDir)
	if err != nil {
		return nil, fmt.Errorf("resolve file base directory: %w", err)
	}
	return &Tool{baseDir: base}, nil
}

// Definition implements spi.Tool.
func (t *Tool) Definition() entity.ToolDefinition {
	return entity.ToolDefinition{
		Name:        Name,
		DisplayName: "Single File Injection",
		Description: "Injects the content of one file from the assistant's file area into a prompt placeholder.",
		Placeholder: "context",
		Category:    entity.CategoryFile,
		ConfigSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"file_path": map[string]interface{}{
					"type":        "string",
					"description": "Path of the file, relative to the file base directory.",
				},
				"max_chars": map[string]interface{}{
					"type":        "integer",
					"description": "Truncate content after this many characters.",
					"minimum":     1,
				},
			},
			"required": []string{"file_path"},
		},
		Version: "1.0.0",
	}
}

// ValidateConfig implements spi.ConfigValidator. Used at assistant-save
// time only.
func (t *Tool) ValidateConfig(config map[string]interface{}) []string {
	var problems []string

	path, ok := configString(config, "file_path")
	if !ok || path == "" {
		problems = append(problems, "file_path is required")
	} else if strings.Contains(path, "..") {
		problems = append(problems, "file_path must not contain parent directory segments")
	}

	if raw, ok := config["max_chars"]; ok {
		if n, ok := configInt(raw); !ok || n <= 0 {
			problems = append(problems, "max_chars must be a positive integer")
		}
	}

	return problems
}

// Process implements spi.Tool. Every failure mode degrades to the result's
// Error field; nothing is raised past the tool boundary.
func (t *Tool) Process(_ context.Context, _ *entity.ToolRequest, _ *entity.Assistant, cfg *entity.ToolConfig) *entity.ToolResult {
	path, ok := configString(cfg.Config, "file_path")
	if !ok || path == "" {
		return entity.ErrorResult(cfg.Placeholder, "file_path is required")
	}

	resolved, err := t.resolve(path)
	if err != nil {
		return entity.ErrorResult(cfg.Placeholder, err.Error())
	}

	data, err := os.ReadFile(resolved)
	if err != nil {
		if os.IsNotExist(err) {
			return entity.ErrorResult(cfg.Placeholder, fmt.Sprintf("File not found: %s", path))
		}
		return entity.ErrorResult(cfg.Placeholder, fmt.Sprintf("failed to read %s: %v", path, err))
	}

	content := string(data)
	if raw, ok := cfg.Config["max_chars"]; ok {
		if max, ok := configInt(raw); ok && max > 0 {
			content = truncate(content, max)
		}
	}

	return &entity.ToolResult{
		Placeholder: cfg.Placeholder,
		Content:     content,
		Sources: []entity.Source{
			{
				Source:  path,
				Content: content,
				Score:   1.0,
			},
		},
	}
}

// resolve confines path to the base directory. A path with any ".." segment
// is rejected before resolution; the resolved absolute path is then checked
// lexically against the base, and finally with symlinks evaluated so a link
// inside the base cannot point outside it.
func (t *Tool) resolve(path string) (string, error) {
	for _, segment := range strings.Split(filepath.ToSlash(path), "/") {
		if segment == ".." {
			return "", fmt.Errorf("invalid file path %q: parent directory segments are not allowed", path)
		}
	}

	resolved, err := filepath.Abs(filepath.Join(t.baseDir, filepath.Clean(path)))
	if err != nil {
		return "", fmt.Errorf("invalid file path %q: %v", path, err)
	}

	if !contained(t.baseDir, resolved) {
		return "", fmt.Errorf("invalid file path %q: escapes the file base directory", path)
	}

	realBase, err := filepath.EvalSymlinks(t.baseDir)
	if err != nil {
		return "", fmt.Errorf("resolve file base directory: %v", err)
	}
	realPath, err := filepath.EvalSymlinks(resolved)
	if err != nil {
		if os.IsNotExist(err) {
			// Missing files surface as a not-found result at read time.
			return resolved, nil
		}
		return "", fmt.Errorf("invalid file path %q: %v", path, err)
	}
	if !contained(realBase, realPath) {
		return "", fmt.Errorf("invalid file path %q: escapes the file base directory", path)
	}

	return realPath, nil
}

func contained(base, path string) bool {
	rel, err := filepath.Rel(base, path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// truncate cuts content at max characters and appends a marker naming the
// limit.
func truncate(content string, max int) string {
	runes := []rune(content)
	if len(runes) <= max {
		return content
	}
	return string(runes[:max]) + fmt.Sprintf("... [truncated at %d characters]", max)
}

func configString(config map[string]interface{}, key string) (string, bool) {
	v, ok := config[key].(string)
	return v, ok
}

// configInt accepts the numeric shapes a decoded JSON mapping may carry.
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

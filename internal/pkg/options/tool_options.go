package options

import (
	"fmt"

	"github.com/spf13/pflag"
)

// ToolOptions holds the top-level configuration for the tool plugin system.
type ToolOptions struct {
	// Enabled controls whether tool orchestration is active. When false,
	// chat requests bypass tools entirely. (default: true)
	Enabled bool `json:"enabled" mapstructure:"enabled"`

	// FileBaseDir is the directory the file-injection tool is confined to.
	// Paths resolving outside this directory are rejected.
	FileBaseDir string `json:"file-base-dir" mapstructure:"file-base-dir"`

	// KnowledgePath is the SQLite database file backing knowledge collections.
	KnowledgePath string `json:"knowledge-path" mapstructure:"knowledge-path"`

	// WorkspaceDir, when set, is watched for markdown and text files laid
	// out as <dir>/<collection>/<source>; changes are re-indexed into the
	// knowledge store.
	WorkspaceDir string `json:"workspace-dir" mapstructure:"workspace-dir"`

	// Entries holds per-tool configuration, keyed by tool name.
	Entries map[string]ToolEntryConfig `json:"entries,omitempty" mapstructure:"entries"`
}

// ToolEntryConfig is per-tool configuration loaded from file.
type ToolEntryConfig struct {
	Enabled *bool                  `json:"enabled,omitempty" mapstructure:"enabled"`
	Config  map[string]interface{} `json:"config,omitempty"  mapstructure:"config"`
}

// NewToolOptions returns ToolOptions with defaults.
func NewToolOptions() *ToolOptions {
	return &ToolOptions{
		Enabled:       true,
		FileBaseDir:   "data/files",
		KnowledgePath: "data/knowledge.db",
		Entries:       make(map[string]ToolEntryConfig),
	}
}

// DisabledTools returns the names of tools explicitly disabled in Entries.
func (o *ToolOptions) DisabledTools() []string {
	var names []string
	for name, entry := range o.Entries {
		if entry.Enabled != nil && !*entry.Enabled {
			names = append(names, name)
		}
	}
	return names
}

// ToolDefaults returns the per-tool config maps from Entries, keyed by tool
// name, for entries that carry one.
func (o *ToolOptions) ToolDefaults() map[string]map[string]interface{} {
	defaults := make(map[string]map[string]interface{})
	for name, entry := range o.Entries {
		if len(entry.Config) > 0 {
			defaults[name] = entry.Config
		}
	}
	return defaults
}

// Validate checks ToolOptions fields.
func (o *ToolOptions) Validate() []error {
	var errs []error
	if o.Enabled && o.FileBaseDir == "" {
		errs = append(errs, fmt.Errorf("tools.file-base-dir is required when tools are enabled"))
	}
	return errs
}

// AddFlags adds flags for the tool options.
func (o *ToolOptions) AddFlags(fs *pflag.FlagSet) {
	fs.BoolVar(&o.Enabled, "tools.enabled", o.Enabled, "Enable the tool orchestration layer.")
	fs.StringVar(&o.FileBaseDir, "tools.file-base-dir", o.FileBaseDir, "Base directory the file-injection tool may read from.")
	fs.StringVar(&o.KnowledgePath, "tools.knowledge-path", o.KnowledgePath, "SQLite database file for knowledge collections.")
	fs.StringVar(&o.WorkspaceDir, "tools.workspace-dir", o.WorkspaceDir, "Directory of per-collection documents to index into the knowledge store.")
}

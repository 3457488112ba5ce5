// Package tools implements the `lecternctl tools` subcommand.
package tools

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"

	"github.com/lectern-ai/lectern/pkg/cli/genericclioptions"
	"github.com/lectern-ai/lectern/pkg/cli/templates"
	"github.com/lectern-ai/lectern/pkg/utils/json"
)

var toolsExample = templates.Examples(`
		# List the tools registered on the server
		lecternctl tools

		# List the orchestration strategies
		lecternctl tools --strategies

		# List the knowledge collections available to tools
		lecternctl tools --collections
`)

type toolInfo struct {
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`
	Description string `json:"description"`
	Placeholder string `json:"placeholder"`
	Category    string `json:"category"`
	Version     string `json:"version"`
}

type strategyInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type collectionInfo struct {
	Name      string `json:"name"`
	Documents int    `json:"documents"`
}

// ToolsOptions holds the flags for the tools subcommand.
type ToolsOptions struct {
	ServerAddr  string
	Token       string
	Strategies  bool
	Collections bool

	genericclioptions.IOStreams
}

// NewToolsOptions returns an initialized ToolsOptions instance.
func NewToolsOptions(ioStreams genericclioptions.IOStreams) *ToolsOptions {
	return &ToolsOptions{
		IOStreams:  ioStreams,
		ServerAddr: "http://localhost:11680",
	}
}

// NewCmdTools returns the initialized 'tools' sub command.
func NewCmdTools(ioStreams genericclioptions.IOStreams) *cobra.Command {
	o := NewToolsOptions(ioStreams)

	cmd := &cobra.Command{
		Use:                   "tools",
		DisableFlagsInUseLine: true,
		Short:                 "List tools, strategies and knowledge collections",
		Long: templates.LongDesc(`
			List what the server's orchestration layer has to offer: the
			registered tools, the available execution strategies, and the
			knowledge collections tools can search.`),
		Example: toolsExample,
		RunE: func(cmd *cobra.Command, args []string) error {
			o.normalize()
			return o.Run(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&o.ServerAddr, "server", o.ServerAddr, "Lectern API server address.")
	cmd.Flags().StringVar(&o.Token, "token", o.Token, "Bearer token for the API server (or set LECTERN_SERVER_TOKEN).")
	cmd.Flags().BoolVar(&o.Strategies, "strategies", o.Strategies, "List execution strategies instead of tools.")
	cmd.Flags().BoolVar(&o.Collections, "collections", o.Collections, "List knowledge collections instead of tools.")

	return cmd
}

func (o *ToolsOptions) normalize() {
	if o.Token == "" {
		o.Token = os.Getenv("LECTERN_SERVER_TOKEN")
	}
	if !strings.HasPrefix(o.ServerAddr, "http://") && !strings.HasPrefix(o.ServerAddr, "https://") {
		o.ServerAddr = "http://" + o.ServerAddr
	}
	o.ServerAddr = strings.TrimRight(o.ServerAddr, "/")
}

// Run executes the tools sub command.
func (o *ToolsOptions) Run(ctx context.Context) error {
	switch {
	case o.Strategies:
		return o.listStrategies(ctx)
	case o.Collections:
		return o.listCollections(ctx)
	default:
		return o.listTools(ctx)
	}
}

func (o *ToolsOptions) listTools(ctx context.Context) error {
	var envelope struct {
		Data []toolInfo `json:"data"`
	}
	if err := o.getJSON(ctx, "/v1/tools", &envelope); err != nil {
		return err
	}
	tools := envelope.Data

	table := uitable.New()
	table.MaxColWidth = 60
	table.Wrap = true
	table.AddRow("NAME", "CATEGORY", "PLACEHOLDER", "DESCRIPTION")
	for _, t := range tools {
		table.AddRow(t.Name, t.Category, "{"+t.Placeholder+"}", t.Description)
	}
	fmt.Fprintln(o.Out, table)
	return nil
}

func (o *ToolsOptions) listStrategies(ctx context.Context) error {
	var envelope struct {
		Data []strategyInfo `json:"data"`
	}
	if err := o.getJSON(ctx, "/v1/strategies", &envelope); err != nil {
		return err
	}
	strategies := envelope.Data

	table := uitable.New()
	table.MaxColWidth = 80
	table.Wrap = true
	table.AddRow("NAME", "DESCRIPTION")
	for _, s := range strategies {
		table.AddRow(s.Name, s.Description)
	}
	fmt.Fprintln(o.Out, table)
	return nil
}

func (o *ToolsOptions) listCollections(ctx context.Context) error {
	var envelope struct {
		Data []collectionInfo `json:"data"`
	}
	if err := o.getJSON(ctx, "/v1/collections", &envelope); err != nil {
		return err
	}
	collections := envelope.Data

	table := uitable.New()
	table.AddRow("COLLECTION", "DOCUMENTS")
	for _, c := range collections {
		table.AddRow(c.Name, c.Documents)
	}
	fmt.Fprintln(o.Out, table)
	return nil
}

func (o *ToolsOptions) getJSON(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, o.ServerAddr+path, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if o.Token != "" {
		req.Header.Set("Authorization", "Bearer "+o.Token)
	}

	client := &http.Client{Timeout: 30 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("server returned %d: %s", resp.StatusCode, string(body))
	}

	return json.Unmarshal(body, out)
}

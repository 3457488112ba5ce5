// Package lecternctl wires the lecternctl command tree.
package lecternctl

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/lectern-ai/lectern/internal/lecternctl/chat"
	"github.com/lectern-ai/lectern/internal/lecternctl/info"
	"github.com/lectern-ai/lectern/internal/lecternctl/tools"
	"github.com/lectern-ai/lectern/pkg/cli/genericclioptions"
	"github.com/lectern-ai/lectern/pkg/cli/templates"
	"github.com/lectern-ai/lectern/pkg/version"
)

// NewDefaultLecternCtlCommand creates the `lecternctl` command with default
// arguments.
func NewDefaultLecternCtlCommand() *cobra.Command {
	return NewLecternCtlCommand(os.Stdin, os.Stdout, os.Stderr)
}

// NewLecternCtlCommand returns a new lecternctl root command bound to the
// given streams.
func NewLecternCtlCommand(in io.Reader, out, errOut io.Writer) *cobra.Command {
	cmds := &cobra.Command{
		Use:   "lecternctl",
		Short: "lecternctl talks to a lectern API server",
		Long: templates.LongDesc(`
			lecternctl is the command line client for the lectern API server.

			It sends chat completions to assistants, inspects the tool and
			strategy registries, and reports host information. Point it at a
			server with --server; remote servers usually also need --token or
			the LECTERN_SERVER_TOKEN environment variable.`),
		Run: runHelp,
	}

	ioStreams := genericclioptions.IOStreams{In: in, Out: out, ErrOut: errOut}

	cmds.AddCommand(chat.NewCmdChat(ioStreams))
	cmds.AddCommand(tools.NewCmdTools(ioStreams))
	cmds.AddCommand(info.NewCmdInfo(ioStreams))
	cmds.AddCommand(newCmdVersion(ioStreams))

	return cmds
}

func newCmdVersion(ioStreams genericclioptions.IOStreams) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the client version information",
		Run: func(cmd *cobra.Command, args []string) {
			v := version.Get()
			fmt.Fprintf(ioStreams.Out, "lecternctl %s (%s, %s, %s)\n",
				v.GitVersion, v.GitCommit, v.BuildDate, v.Platform)
		},
	}
}

func runHelp(cmd *cobra.Command, args []string) {
	_ = cmd.Help()
}

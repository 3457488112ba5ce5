// Package chat implements the `lecternctl chat` subcommand.
package chat

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/fatih/color"
	"github.com/moby/term"
	"github.com/spf13/cobra"

	"github.com/lectern-ai/lectern/pkg/cli/genericclioptions"
	"github.com/lectern-ai/lectern/pkg/cli/templates"
)

var chatExample = templates.Examples(`
		# Ask an assistant a question, streaming the answer
		lecternctl chat --assistant=biology-tutor "Explain osmosis"

		# Inspect what the tools produced instead of calling the model
		lecternctl chat --assistant=biology-tutor --verbose "Explain osmosis"

		# Talk to a remote server with a token
		lecternctl chat --server=https://lectern.example.com --token=$LECTERN_SERVER_TOKEN --assistant=biology-tutor "Explain osmosis"
`)

// ChatOptions holds the flags for the chat subcommand.
type ChatOptions struct {
	ServerAddr string
	Token      string
	Assistant  string
	Verbose    bool
	NoStream   bool
	System     string

	genericclioptions.IOStreams
}

// NewChatOptions returns an initialized ChatOptions instance.
func NewChatOptions(ioStreams genericclioptions.IOStreams) *ChatOptions {
	return &ChatOptions{
		IOStreams:  ioStreams,
		ServerAddr: "http://localhost:11680",
	}
}

// NewCmdChat returns the initialized 'chat' sub command.
func NewCmdChat(ioStreams genericclioptions.IOStreams) *cobra.Command {
	o := NewChatOptions(ioStreams)

	cmd := &cobra.Command{
		Use:                   "chat [message]",
		DisableFlagsInUseLine: true,
		Short:                 "Send a message to a lectern assistant",
		Long: templates.LongDesc(`
			Send a message to a lectern assistant through the API server and
			print the reply.

			The assistant's configured tools run before the model call; their
			progress is reported on stderr while streaming. With --verbose the
			model call is skipped and the orchestration report is rendered
			instead, which is the quickest way to debug a tool pipeline.`),
		Example: chatExample,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := o.Complete(); err != nil {
				return err
			}
			return o.Run(cmd.Context(), args)
		},
	}

	cmd.Flags().StringVar(&o.ServerAddr, "server", o.ServerAddr, "Lectern API server address.")
	cmd.Flags().StringVar(&o.Token, "token", o.Token, "Bearer token for the API server (or set LECTERN_SERVER_TOKEN).")
	cmd.Flags().StringVar(&o.Assistant, "assistant", o.Assistant, "ID of the assistant to talk to.")
	cmd.Flags().BoolVar(&o.Verbose, "verbose", o.Verbose, "Skip the model call and render the orchestration report.")
	cmd.Flags().BoolVar(&o.NoStream, "no-stream", o.NoStream, "Wait for the full reply instead of streaming.")
	cmd.Flags().StringVar(&o.System, "system", o.System, "Extra system message prepended to the conversation.")

	return cmd
}

// Complete fills in derived options.
func (o *ChatOptions) Complete() error {
	if o.Assistant == "" {
		return fmt.Errorf("--assistant is required")
	}
	if o.Token == "" {
		o.Token = os.Getenv("LECTERN_SERVER_TOKEN")
	}
	if !strings.HasPrefix(o.ServerAddr, "http://") && !strings.HasPrefix(o.ServerAddr, "https://") {
		o.ServerAddr = "http://" + o.ServerAddr
	}
	return nil
}

// Run executes the chat sub command.
func (o *ChatOptions) Run(ctx context.Context, args []string) error {
	client := NewLecternClient(o.ServerAddr, o.Token, o.Assistant, &http.Client{Timeout: 5 * time.Minute})

	var messages []ChatMessage
	if o.System != "" {
		messages = append(messages, ChatMessage{Role: "system", Content: o.System})
	}
	messages = append(messages, ChatMessage{Role: "user", Content: strings.Join(args, " ")})

	if o.Verbose {
		result, err := client.Chat(ctx, messages, true)
		if err != nil {
			return err
		}
		return o.renderMarkdown(result.Report)
	}

	if o.NoStream {
		result, err := client.Chat(ctx, messages, false)
		if err != nil {
			return err
		}
		fmt.Fprintln(o.Out, result.Content)
		if len(result.Sources) > 0 {
			fmt.Fprintf(o.ErrOut, "\nSources: %s\n", strings.Join(result.Sources, ", "))
		}
		return nil
	}

	progressColor := color.New(color.FgCyan)
	_, err := client.ChatStream(ctx, messages, StreamHandlers{
		OnProgress: func(line string) {
			progressColor.Fprintln(o.ErrOut, line)
		},
		OnDelta: func(delta string) {
			fmt.Fprint(o.Out, delta)
		},
	})
	fmt.Fprintln(o.Out)
	return err
}

// renderMarkdown pretty-prints the orchestration report when stdout is a
// terminal, and falls back to the raw markdown otherwise.
func (o *ChatOptions) renderMarkdown(report string) error {
	if report == "" {
		fmt.Fprintln(o.ErrOut, "server returned no report")
		return nil
	}

	stdout, ok := o.Out.(*os.File)
	if !ok || !term.IsTerminal(stdout.Fd()) {
		fmt.Fprintln(o.Out, report)
		return nil
	}

	width := 100
	if ws, err := term.GetWinsize(stdout.Fd()); err == nil && ws.Width > 0 {
		width = int(ws.Width)
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		fmt.Fprintln(o.Out, report)
		return nil
	}

	rendered, err := r.Render(report)
	if err != nil {
		fmt.Fprintln(o.Out, report)
		return nil
	}
	fmt.Fprint(o.Out, rendered)
	return nil
}

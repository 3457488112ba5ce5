package apiserver

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/lectern-ai/lectern/internal/apiserver/config"
	"github.com/lectern-ai/lectern/internal/apiserver/options"
	genericapiserver "github.com/lectern-ai/lectern/internal/pkg/server"
	"github.com/lectern-ai/lectern/pkg/cli/templates"
	"github.com/lectern-ai/lectern/pkg/logger"
	"github.com/lectern-ai/lectern/pkg/version"
)

// NewAPIServerCommand creates the lectern-apiserver root command with its
// flags, configuration file loading and run loop.
func NewAPIServerCommand(basename string) *cobra.Command {
	opts := options.NewOptions()

	var (
		cfgFile      string
		logLevel     string
		printVersion bool
	)

	cmd := &cobra.Command{
		Use:   basename,
		Short: "The lectern API server runs multi-tool LLM completions for learning assistants",
		Long: templates.LongDesc(`
			The lectern API server exposes an OpenAI-compatible chat completion
			endpoint backed by per-assistant tool orchestration: knowledge
			collection search, file injection and custom tools run before the
			final model call and feed their output into the assistant's prompt
			template.

			Configuration is read from flags, a YAML configuration file and
			LECTERN_* environment variables, in that order of precedence.`),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if printVersion {
				info := version.Get()
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s (%s, %s)\n",
					basename, info.GitVersion, info.GitCommit, info.BuildDate)
				return nil
			}

			logger.Init(logLevel)

			genericapiserver.LoadConfig(cfgFile, basename)
			if err := viper.Unmarshal(opts); err != nil {
				return fmt.Errorf("failed to unmarshal configuration: %w", err)
			}

			if errs := opts.Validate(); len(errs) > 0 {
				for _, err := range errs {
					fmt.Fprintf(os.Stderr, "error: %v\n", err)
				}
				return fmt.Errorf("configuration validation failed with %d error(s)", len(errs))
			}

			logger.Debug("[Server] effective configuration: %s", opts)

			cfg, err := config.CreateConfigFromOptions(opts)
			if err != nil {
				return err
			}

			return Run(cfg)
		},
	}

	flags := cmd.Flags()
	opts.AddFlags(flags)
	flags.StringVarP(&cfgFile, "config", "c", "", "Path to the configuration file.")
	flags.StringVar(&logLevel, "log-level", "info", "Log level: debug, info, warn or error.")
	flags.BoolVar(&printVersion, "version", false, "Print version information and quit.")

	_ = viper.BindPFlags(flags)

	return cmd
}

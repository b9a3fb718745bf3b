// Package cli provides the command-line interface for oranum.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/thalib/oranum/cmd/oranum/internal/config"
	"github.com/thalib/oranum/cmd/oranum/internal/logging"
)

// configKey is used to store the loaded configuration in the command context.
type configKey struct{}

type rootOptions struct {
	configFile string
	logLevel   string
	logFormat  string
	logFile    string
}

// NewRootCmd creates and returns the root command.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "oranum",
		Short: "oranum - Oracle NUMBER type mapping",
		Long: `oranum maps Oracle NUMBER columns onto host engine types and converts
values under a catalog's rounding and overflow policy.`,
		Version: config.Version(),
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Skip config loading for help and completion commands
			if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "__complete" {
				return nil
			}

			if err := initLogging(opts, cmd.ErrOrStderr()); err != nil {
				return err
			}

			cfg, err := config.Load(opts.configFile)
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			if opts.configFile != "" {
				logging.Debugf("Loaded catalog properties from %s", opts.configFile)
			}

			cmd.SetContext(context.WithValue(cmd.Context(), configKey{}, cfg))
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.SetVersionTemplate(`{{.Name}} {{.Version}}
`)

	rootCmd.PersistentFlags().StringVar(&opts.configFile, "config", "", "catalog properties file (YAML)")
	rootCmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", string(logging.LevelWarn), "log level (debug|info|warn|error)")
	rootCmd.PersistentFlags().StringVar(&opts.logFormat, "log-format", "simple", "log format (simple|console|json)")
	rootCmd.PersistentFlags().StringVar(&opts.logFile, "log-file", "", "write logs to this file instead of stderr")

	_ = rootCmd.RegisterFlagCompletionFunc("log-level", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"debug", "info", "warn", "error"}, cobra.ShellCompDirectiveNoFileComp
	})

	rootCmd.AddCommand(newVersionCommand())
	rootCmd.AddCommand(newConfigCommand())
	rootCmd.AddCommand(newConvertCommand())
	rootCmd.AddCommand(newTablesCommand())
	rootCmd.AddCommand(newColumnsCommand())

	return rootCmd
}

// Execute runs the root command. SIGINT and SIGTERM cancel the command
// context, which aborts a pending connect or dictionary query.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rootCmd := NewRootCmd()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}

func initLogging(opts *rootOptions, stderr io.Writer) error {
	level, err := logging.ParseLevel(opts.logLevel)
	if err != nil {
		return err
	}

	logging.Init(logging.LoggerConfig{
		Level:       level,
		Format:      opts.logFormat,
		Output:      stderr,
		FilePath:    opts.logFile,
		ServiceName: "oranum",
		Version:     config.Version(),
	})
	return nil
}

// getConfig retrieves the config from the command context.
func getConfig(ctx context.Context) *config.Config {
	if c, ok := ctx.Value(configKey{}).(*config.Config); ok {
		return c
	}
	return config.Default()
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

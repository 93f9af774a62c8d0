package main

import (
	"context"
	"fmt"
	"os"

	"github.com/aretw0/stencil"
	"github.com/aretw0/stencil/internal/cli"
	"github.com/aretw0/stencil/internal/logging"
	"github.com/aretw0/stencil/pkg/reconcile"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "stencil",
	Short: "Stencil keeps tree-shaped documents in line with a template library",
	Long: `Stencil compiles a library of element templates into a schema and repairs
documents against it: fixed slots, containers, galleries, tabs and placeholders.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	ctx, stop := cli.SignalContext(context.Background())
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if cli.Interrupted(err) {
		cli.PrintSystemMessage(os.Stderr, "Interrupted.")
		os.Exit(130)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().StringP("library", "l", ".", "Library file, or directory holding stencil.yaml")
	rootCmd.PersistentFlags().String("log-level", "off", "Log level: off, debug, info, warn, error")
	rootCmd.PersistentFlags().Int("max-passes", reconcile.DefaultMaxPasses, "Maximum reconciliation passes per convergence")
	rootCmd.PersistentFlags().Bool("trace", false, "Log every reconciliation pass and repair")
	rootCmd.PersistentFlags().Bool("merge", false, "Recognize merge conflicts and added/removed markers")
}

// options reads the persistent flags.
func options(cmd *cobra.Command) cli.Options {
	library, _ := cmd.Flags().GetString("library")
	level, _ := cmd.Flags().GetString("log-level")
	maxPasses, _ := cmd.Flags().GetInt("max-passes")
	trace, _ := cmd.Flags().GetBool("trace")
	merge, _ := cmd.Flags().GetBool("merge")
	return cli.Options{Library: library, LogLevel: level, MaxPasses: maxPasses, Trace: trace, Merge: merge}
}

// engine builds the engine selected by the persistent flags.
func engine(cmd *cobra.Command, extra ...stencil.Option) (*stencil.Engine, error) {
	opts := options(cmd)
	if opts.Trace && opts.LogLevel == "off" {
		opts.LogLevel = "info"
	}
	logger, err := logging.FromFlag(opts.LogLevel)
	if err != nil {
		return nil, err
	}
	return cli.CreateEngine(opts, logger, extra...)
}

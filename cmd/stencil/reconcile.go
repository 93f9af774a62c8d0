package main

import (
	"fmt"
	"io"
	"os"

	"github.com/aretw0/stencil"
	"github.com/aretw0/stencil/internal/cli"
	"github.com/aretw0/stencil/internal/presentation/tui"
	"github.com/aretw0/stencil/pkg/domain"
	"github.com/aretw0/stencil/pkg/observability"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/spf13/cobra"
)

var reconcileCmd = &cobra.Command{
	Use:   "reconcile <document>",
	Short: "Repair a document against the library",
	Long: `Loads a document (.json, .yaml or .html; HTML is upcast through the
library), converges it and prints the result.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var extra []stencil.Option
		var registry *prometheus.Registry
		if withMetrics, _ := cmd.Flags().GetBool("metrics"); withMetrics {
			registry = prometheus.NewRegistry()
			metrics, err := observability.NewMetrics(registry)
			if err != nil {
				return err
			}
			extra = append(extra, stencil.WithMetrics(metrics))
		}

		eng, err := engine(cmd, extra...)
		if err != nil {
			return err
		}
		doc, err := cli.LoadDocument(cmd.Context(), eng, args[0])
		if err != nil {
			return err
		}
		changed, err := eng.Converge(cmd.Context(), doc, doc.Root.Children())
		if err != nil {
			return err
		}

		if err := writeResult(cmd, eng, doc); err != nil {
			return err
		}
		if !changed {
			cli.PrintSystemMessage(cmd.ErrOrStderr(), "Document already in shape.")
		}
		if registry != nil {
			return writeMetrics(cmd.ErrOrStderr(), registry)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(reconcileCmd)
	addOutputFlags(reconcileCmd)
	reconcileCmd.Flags().Bool("metrics", false, "Print reconciliation metrics to stderr")
}

func addOutputFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("format", "f", "json", "Output format: json, yaml, html or tree")
	cmd.Flags().StringP("output", "o", "", "Write the document to a file instead of stdout")
}

// writeResult prints doc in the format selected by the output flags.
func writeResult(cmd *cobra.Command, eng *stencil.Engine, doc *domain.Document) error {
	format, _ := cmd.Flags().GetString("format")
	path, _ := cmd.Flags().GetString("output")

	out := cmd.OutOrStdout()
	if path != "" {
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}

	if format == "tree" {
		tui.NewTreeRenderer(eng.Registry(), cli.Profile(out)).Render(out, doc)
		return nil
	}
	switch f := cli.Format(format); f {
	case cli.FormatJSON, cli.FormatYAML, cli.FormatHTML:
		return cli.WriteDocument(out, eng, doc, f)
	}
	return fmt.Errorf("unknown output format %q", format)
}

func writeMetrics(w io.Writer, registry *prometheus.Registry) error {
	families, err := registry.Gather()
	if err != nil {
		return err
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return err
		}
	}
	return nil
}

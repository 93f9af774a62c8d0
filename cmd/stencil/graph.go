package main

import (
	"fmt"

	"github.com/aretw0/stencil/internal/cli"
	"github.com/aretw0/stencil/internal/presentation/graph"
	"github.com/spf13/cobra"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph",
	Short: "Export the schema graph visualization",
	Long:  `Outputs a Mermaid diagram (graph TD) of the compiled schema: slots, placeholders, contained items and conversions.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := engine(cmd)
		if err != nil {
			return err
		}

		var overlay *graph.GraphOverlay
		if path, _ := cmd.Flags().GetString("doc"); path != "" {
			doc, err := cli.LoadDocument(cmd.Context(), eng, path)
			if err != nil {
				return err
			}
			overlay = &graph.GraphOverlay{Used: graph.UsedElements(eng.Registry(), doc)}
		}

		fmt.Fprint(cmd.OutOrStdout(), graph.GenerateMermaid(eng.Inspect(), overlay))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
	graphCmd.Flags().String("doc", "", "Highlight the elements used by this document")
}

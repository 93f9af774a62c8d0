package main

import (
	"fmt"

	"github.com/aretw0/stencil/internal/cli"
	"github.com/aretw0/stencil/internal/presentation/tui"
	"github.com/spf13/cobra"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Describe the compiled schema",
	Long:  `Prints every schema element with its kind, match rule, accepted conversions and contained items as a markdown table, rendered when stdout is a terminal.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := engine(cmd)
		if err != nil {
			return err
		}

		md := tui.InspectMarkdown(eng.Inspect())
		out := cmd.OutOrStdout()
		if raw, _ := cmd.Flags().GetBool("raw"); raw || !cli.IsTerminal(out) {
			fmt.Fprint(out, md)
			return nil
		}

		render, err := tui.NewRenderer()
		if err != nil {
			return err
		}
		rendered, err := render(md)
		if err != nil {
			return err
		}
		fmt.Fprint(out, rendered)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)
	inspectCmd.Flags().Bool("raw", false, "Print markdown without rendering")
}

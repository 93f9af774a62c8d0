package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/stencil"
	"github.com/aretw0/stencil/internal/cli"
	"github.com/aretw0/stencil/internal/presentation/tui"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of stencil",
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		if cli.IsTerminal(out) {
			tui.PrintBanner(out, cli.Profile(out), stencil.Version)
			return
		}
		fmt.Fprintf(out, "stencil version %s\n", strings.TrimSpace(stencil.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

package main

import (
	"fmt"

	"github.com/aretw0/stencil/internal/cli"
	"github.com/aretw0/stencil/pkg/commands"
	"github.com/spf13/cobra"
)

var execCmd = &cobra.Command{
	Use:   "exec <document> [command]",
	Short: "Run an editing command on a document",
	Long: `Loads and converges a document, selects the node at --at (dotted child
indexes from the document root, e.g. 0.1) and runs the named command on it.
Without a command, lists the commands enabled for the selection.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := engine(cmd)
		if err != nil {
			return err
		}
		doc, err := cli.LoadDocument(cmd.Context(), eng, args[0])
		if err != nil {
			return err
		}
		if _, err := eng.Converge(cmd.Context(), doc, doc.Root.Children()); err != nil {
			return err
		}

		at, _ := cmd.Flags().GetString("at")
		path, err := cli.ParsePath(at)
		if err != nil {
			return err
		}
		anchor := doc.Root.At(path)
		if anchor == nil {
			return fmt.Errorf("no node at %q", at)
		}
		sel := commands.Selection{Anchor: anchor}

		if len(args) == 1 {
			for _, c := range eng.Commands(sel) {
				fmt.Fprintln(cmd.OutOrStdout(), c.Name())
			}
			return nil
		}

		res, err := eng.Execute(cmd.Context(), doc, args[1], sel, commandArgs(cmd))
		if err != nil {
			return err
		}
		if res.Selection.Anchor != nil {
			cli.PrintSystemMessage(cmd.ErrOrStderr(), "Selection at %v.", res.Selection.Anchor.Path())
		}
		return writeResult(cmd, eng, doc)
	},
}

func commandArgs(cmd *cobra.Command) commands.Args {
	var a commands.Args
	a.Template, _ = cmd.Flags().GetString("template")
	a.Index, _ = cmd.Flags().GetInt("index")
	a.Operation, _ = cmd.Flags().GetString("op")
	a.Position, _ = cmd.Flags().GetString("position")
	a.Reference, _ = cmd.Flags().GetInt("reference")
	a.Target, _ = cmd.Flags().GetInt("target")
	a.Attributes, _ = cmd.Flags().GetStringToString("attr")
	return a
}

func init() {
	rootCmd.AddCommand(execCmd)
	addOutputFlags(execCmd)
	execCmd.Flags().String("at", "", "Dotted path of the selected node")
	execCmd.Flags().String("template", "", "Target template for replace, addItem, insert and remoteControl")
	execCmd.Flags().Int("index", 0, "Item index for setCurrentItem")
	execCmd.Flags().String("op", "", "remoteControl operation: insert, move, replace, remove, attributes")
	execCmd.Flags().String("position", "", "remoteControl placement: before, after, end")
	execCmd.Flags().Int("reference", 0, "remoteControl reference child index")
	execCmd.Flags().Int("target", 0, "remoteControl child index to move")
	execCmd.Flags().StringToString("attr", nil, "remoteControl attributes, as key=value")
}

package main

import (
	"fmt"

	"github.com/aretw0/stencil/internal/cli"
	"github.com/aretw0/stencil/pkg/schema"
	"github.com/aretw0/stencil/pkg/validation"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate [document...]",
	Short: "Check the library and, optionally, documents",
	Long: `Compiles the template library and reports configuration issues such as
dangling references or invalid typed attributes. Given documents are converged
and checked against the text limit and required field rules.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		eng, err := engine(cmd)
		if err != nil {
			for _, issue := range schema.Issues(err) {
				fmt.Fprintf(out, "  - %v\n", issue)
			}
			return fmt.Errorf("validation failed: %w", err)
		}
		reg := eng.Registry()
		fmt.Fprintf(out, "Library is valid! ✅ (%d templates, %d elements)\n", len(reg.Roots()), len(reg.All()))

		failed := 0
		for _, path := range args {
			doc, err := cli.LoadDocument(cmd.Context(), eng, path)
			if err != nil {
				return err
			}
			if _, err := eng.Converge(cmd.Context(), doc, doc.Root.Children()); err != nil {
				return err
			}
			violations := validation.Violations(eng.Validate(doc))
			if len(violations) == 0 {
				fmt.Fprintf(out, "%s: ok\n", path)
				continue
			}
			failed++
			for _, v := range violations {
				fmt.Fprintf(out, "%s: %s at %v: %s\n", path, v.Element, v.Path, v.Message)
			}
		}
		if failed > 0 {
			return fmt.Errorf("%d document(s) failed validation", failed)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/spoolhq/spool/pkg/spoolfile"
	"github.com/spoolhq/spool/pkg/validation"
)

func validateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <spool-file>",
		Short: "Check a .spool file's structural invariants",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			file, err := spoolfile.FromPath(args[0], logger)
			if err != nil {
				return fmt.Errorf("spool validate: %w", err)
			}

			result := validation.ValidateDefault(file)
			for _, w := range result.Warnings {
				fmt.Fprintf(os.Stderr, "warning: %s\n", w)
			}
			for _, e := range result.Errors {
				fmt.Fprintf(os.Stderr, "error: %s\n", e)
			}
			if !result.IsValid() {
				return fmt.Errorf("spool validate: %d error(s)", len(result.Errors))
			}
			fmt.Println("valid")
			return nil
		},
	}
	return cmd
}

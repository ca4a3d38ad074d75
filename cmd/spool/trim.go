package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/spoolhq/spool/pkg/spoolfile"
)

func trimCmd() *cobra.Command {
	var (
		outputFlag string
		startFlag  int64
		endFlag    int64
	)

	cmd := &cobra.Command{
		Use:   "trim <spool-file>",
		Short: "Keep only entries within [start_ms, end_ms] (plus the session entry)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			file, err := spoolfile.FromPath(args[0], logger)
			if err != nil {
				return fmt.Errorf("spool trim: %w", err)
			}

			file.Trim(startFlag, endFlag)

			dest := outputFlag
			if dest == "" {
				dest = args[0]
			}
			return file.WritePath(dest)
		},
	}

	cmd.Flags().StringVarP(&outputFlag, "output", "o", "", "write the trimmed .spool file here (default overwrites input)")
	cmd.Flags().Int64Var(&startFlag, "start-ms", 0, "keep entries at or after this timestamp")
	cmd.Flags().Int64Var(&endFlag, "end-ms", 0, "keep entries at or before this timestamp")
	cmd.MarkFlagRequired("end-ms")
	return cmd
}

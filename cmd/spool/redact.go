package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/spoolhq/spool/pkg/redaction"
	"github.com/spoolhq/spool/pkg/review"
	"github.com/spoolhq/spool/pkg/spoolfile"
)

func redactCmd() *cobra.Command {
	var (
		outputFlag string
		skipFlag   string
	)

	cmd := &cobra.Command{
		Use:   "redact <spool-file>",
		Short: "Detect and redact secrets in a .spool file's text fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			file, err := spoolfile.FromPath(args[0], logger)
			if err != nil {
				return fmt.Errorf("spool redact: %w", err)
			}

			skip, err := parseIndexList(skipFlag)
			if err != nil {
				return fmt.Errorf("spool redact: --skip: %w", err)
			}

			orchestrator := review.New(redaction.WithDefaults(), file)
			detections := orchestrator.Detect()
			logger.Infow("redaction scan complete", "path", args[0], "detections", len(detections))

			if err := orchestrator.ApplyNonInteractive(skip); err != nil {
				return fmt.Errorf("spool redact: %w", err)
			}

			dest := outputFlag
			if dest == "" {
				dest = args[0]
			}
			return file.WritePath(dest)
		},
	}

	cmd.Flags().StringVarP(&outputFlag, "output", "o", "", "write the redacted .spool file here (default overwrites input)")
	cmd.Flags().StringVar(&skipFlag, "skip", "", "comma-separated detection indices to leave unredacted")
	return cmd
}

func parseIndexList(s string) ([]int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	out := make([]int, 0, len(parts))
	for _, p := range parts {
		idx, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("invalid index %q: %w", p, err)
		}
		out = append(out, idx)
	}
	return out, nil
}

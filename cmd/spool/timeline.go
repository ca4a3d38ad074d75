package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/spoolhq/spool/pkg/spoolfile"
	"github.com/spoolhq/spool/pkg/timeline"
)

// playbackPointJSON is the wire shape of a timeline.PlaybackPoint, keyed
// the way the rest of the format names its fields.
type playbackPointJSON struct {
	EntryIndex int   `json:"entry_index"`
	PlaybackMS int64 `json:"playback_ms"`
}

func timelineCmd() *cobra.Command {
	var outputFlag string

	cmd := &cobra.Command{
		Use:   "timeline <spool-file>",
		Short: "Compute a compressed playback-time axis for replay, as a separate JSON artifact",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			file, err := spoolfile.FromPath(args[0], logger)
			if err != nil {
				return fmt.Errorf("spool timeline: %w", err)
			}

			points := timeline.Compress(file.Entries)
			out := make([]playbackPointJSON, len(points))
			for i, p := range points {
				out[i] = playbackPointJSON{EntryIndex: p.EntryIndex, PlaybackMS: p.PlaybackMS}
			}

			encoded, err := json.Marshal(out)
			if err != nil {
				return fmt.Errorf("spool timeline: %w", err)
			}

			if outputFlag == "" {
				_, err := fmt.Fprintln(os.Stdout, string(encoded))
				return err
			}
			return os.WriteFile(outputFlag, append(encoded, '\n'), 0o644)
		},
	}

	cmd.Flags().StringVarP(&outputFlag, "output", "o", "", "write the [{entry_index, playback_ms}] JSON array here (default: stdout)")
	return cmd
}

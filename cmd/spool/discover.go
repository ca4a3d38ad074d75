package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func discoverCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "discover",
		Short: "List session transcripts found for every registered agent",
		RunE: func(cmd *cobra.Command, args []string) error {
			sessions, err := buildRegistry().DiscoverAll()
			if err != nil {
				return err
			}

			if asJSON {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(sessions)
			}

			for _, s := range sessions {
				title := ""
				if s.Title != nil {
					title = *s.Title
				}
				fmt.Printf("%s\t%s\t%s\n", s.Agent, s.Path, title)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "emit machine-readable JSON")
	return cmd
}

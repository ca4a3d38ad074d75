package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/spoolhq/spool/pkg/adapter"
	"github.com/spoolhq/spool/pkg/cache"
)

func convertCmd() *cobra.Command {
	var (
		agentFlag  string
		outputFlag string
		cacheFlag  string
	)

	cmd := &cobra.Command{
		Use:   "convert <session-path>",
		Short: "Convert a vendor session transcript into a .spool file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			if agentFlag == "" {
				return fmt.Errorf("spool convert: --agent is required (claude_code|codex)")
			}

			info, err := os.Stat(path)
			if err != nil {
				return fmt.Errorf("spool convert: stat %s: %w", path, err)
			}

			// The cache is keyed by absolute path, so the same relative
			// name run from two directories never shares an entry.
			cacheKey, err := filepath.Abs(path)
			if err != nil {
				return fmt.Errorf("spool convert: resolve %s: %w", path, err)
			}

			var c *cache.Cache
			if cacheFlag != "" {
				c, err = cache.Open(cacheFlag, logger)
				if err != nil {
					return err
				}
				defer c.Close()
			}

			if c != nil {
				if cached, hit, err := c.Get(cacheKey, info.ModTime(), info.Size()); err != nil {
					return err
				} else if hit {
					logger.Infow("conversion cache hit", "path", path)
					return writeOutput(cached, outputFlag)
				}
			}

			registry := buildRegistry()
			a, ok := registry.Get(adapter.AgentType(agentFlag))
			if !ok {
				return fmt.Errorf("spool convert: no adapter registered for agent %q", agentFlag)
			}
			out, err := a.Convert(adapter.SessionInfo{Path: path, Agent: adapter.AgentType(agentFlag)})
			if err != nil {
				return fmt.Errorf("spool convert: %w", err)
			}

			if c != nil {
				if err := c.Put(cacheKey, info.ModTime(), info.Size(), agentFlag, out); err != nil {
					return err
				}
			}

			return writeOutput(out, outputFlag)
		},
	}

	cmd.Flags().StringVar(&agentFlag, "agent", "", "source agent (claude_code|codex)")
	cmd.Flags().StringVarP(&outputFlag, "output", "o", "", "write the .spool file here (default stdout)")
	cmd.Flags().StringVar(&cacheFlag, "cache", "", "conversion cache database path")
	return cmd
}

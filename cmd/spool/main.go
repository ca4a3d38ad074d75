// Command spool archives, validates, redacts, trims, and replays
// AI coding-agent session transcripts in the canonical .spool format.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	verbose bool
	logger  *zap.SugaredLogger
)

var rootCmd = &cobra.Command{
	Use:   "spool",
	Short: "Archive and review AI coding-agent session transcripts",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := zap.NewProductionConfig()
		if verbose {
			cfg = zap.NewDevelopmentConfig()
		}
		zl, err := cfg.Build()
		if err != nil {
			return fmt.Errorf("spool: build logger: %w", err)
		}
		logger = zl.Sugar()
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(discoverCmd())
	rootCmd.AddCommand(convertCmd())
	rootCmd.AddCommand(validateCmd())
	rootCmd.AddCommand(redactCmd())
	rootCmd.AddCommand(trimCmd())
	rootCmd.AddCommand(timelineCmd())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

package main

import (
	"os"

	"github.com/spoolhq/spool/pkg/spoolfile"
)

// writeOutput writes file as .spool JSONL to path, or stdout if path is empty.
func writeOutput(file *spoolfile.SpoolFile, path string) error {
	if path == "" {
		return file.WriteTo(os.Stdout)
	}
	return file.WritePath(path)
}

// Package spoolfile implements the .spool file container: reading,
// writing, derived-aggregate computation, and the trim operator.
package spoolfile

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/spoolhq/spool/pkg/entry"
	"go.uber.org/zap"
)

// ErrMissingSessionEntry is returned when a file's first entry is absent or
// is not a Session entry (spec invariant I-1).
var ErrMissingSessionEntry = errors.New("spoolfile: missing or misplaced session entry")

// UnparsedLine records a line this reader could not parse as any known
// entry shape, or whose type it does not recognize, kept with its line
// number for audit. WriteTo does not write these lines back; only an
// unrecognized-type line survives a write, as its in-band Unknown entry.
type UnparsedLine struct {
	LineNum int
	Text    string
}

// SpoolFile is a parsed .spool document: the session entry plus every
// other entry in file order (the session entry is always entries[0]).
type SpoolFile struct {
	Entries       []entry.Entry
	UnparsedLines []UnparsedLine
}

// New creates a fresh single-entry file from session metadata.
func New(session *entry.Session) *SpoolFile {
	return &SpoolFile{Entries: []entry.Entry{session}}
}

// Session returns the file's mandatory session entry.
func (f *SpoolFile) Session() *entry.Session {
	if len(f.Entries) == 0 {
		return nil
	}
	s, _ := f.Entries[0].(*entry.Session)
	return s
}

// FromPath reads a .spool file from disk.
func FromPath(path string, log *zap.SugaredLogger) (*SpoolFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("spoolfile: open %s: %w", path, err)
	}
	defer f.Close()
	return FromReader(f, log)
}

// FromReader parses a .spool document. Lines that fail to parse as JSON
// are kept in UnparsedLines and logged as warnings rather than aborting
// the read, for forward compatibility with newer writers (spec §9).
func FromReader(r io.Reader, log *zap.SugaredLogger) (*SpoolFile, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 10*1024*1024)

	var entries []entry.Entry
	var unparsed []UnparsedLine
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}

		e, err := entry.Parse([]byte(line))
		switch {
		case errors.Is(err, entry.ErrUnknownType):
			// Kept in-band as a forward-compatible Unknown entry (e is
			// non-nil), and also recorded in the side list so a strict
			// consumer can audit it, per spec's dual contract.
			unparsed = append(unparsed, UnparsedLine{LineNum: lineNum, Text: line})
			if log != nil {
				log.Warnw("unrecognized entry type", "line", lineNum)
			}
		case err != nil:
			unparsed = append(unparsed, UnparsedLine{LineNum: lineNum, Text: line})
			if log != nil {
				log.Warnw("failed to parse spool line", "line", lineNum, "error", err)
			}
			continue
		}

		if len(entries) == 0 {
			if _, ok := e.(*entry.Session); !ok {
				return nil, ErrMissingSessionEntry
			}
		}
		entries = append(entries, e)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("spoolfile: read: %w", err)
	}

	if len(entries) == 0 {
		return nil, ErrMissingSessionEntry
	}

	return &SpoolFile{Entries: entries, UnparsedLines: unparsed}, nil
}

// WritePath writes the file to disk, truncating any existing content.
func (f *SpoolFile) WritePath(path string) error {
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("spoolfile: create %s: %w", path, err)
	}
	defer out.Close()
	return f.WriteTo(out)
}

// WriteTo writes every entry as one compact JSON object per line.
func (f *SpoolFile) WriteTo(w io.Writer) error {
	bw := bufio.NewWriter(w)
	for _, e := range f.Entries {
		line, err := serializeEntry(e)
		if err != nil {
			return fmt.Errorf("spoolfile: marshal entry: %w", err)
		}
		if _, err := bw.Write(line); err != nil {
			return fmt.Errorf("spoolfile: write: %w", err)
		}
	}
	return bw.Flush()
}

// DurationMS is the maximum timestamp across all entries (session entry's
// ts is always 0 and never the maximum in a non-empty session).
func (f *SpoolFile) DurationMS() int64 {
	var max int64
	for _, e := range f.Entries {
		if ts := e.TS(); ts > max {
			max = ts
		}
	}
	return max
}

// ToolsUsed returns the sorted, deduplicated set of tool names invoked.
func (f *SpoolFile) ToolsUsed() []string {
	seen := make(map[string]bool)
	var tools []string
	for _, e := range f.Entries {
		tc, ok := e.(*entry.ToolCall)
		if !ok {
			continue
		}
		if !seen[tc.Tool] {
			seen[tc.Tool] = true
			tools = append(tools, tc.Tool)
		}
	}
	sort.Strings(tools)
	return tools
}

// FilesModified returns the sorted, deduplicated set of file paths touched
// by recognized write-class tool calls (spec §6.3).
func (f *SpoolFile) FilesModified() []string {
	return filesModified(f.Entries)
}

// EntryCount is the number of entries in the file, including the session
// entry itself.
func (f *SpoolFile) EntryCount() int {
	return len(f.Entries)
}

// ToolCalls, Prompts, Responses, Errors, and Annotations return all
// entries of the matching variant, in file order.
func (f *SpoolFile) ToolCalls() []*entry.ToolCall       { return filterEntries[*entry.ToolCall](f) }
func (f *SpoolFile) Prompts() []*entry.Prompt           { return filterEntries[*entry.Prompt](f) }
func (f *SpoolFile) Responses() []*entry.Response       { return filterEntries[*entry.Response](f) }
func (f *SpoolFile) Errors() []*entry.Error             { return filterEntries[*entry.Error](f) }
func (f *SpoolFile) Annotations() []*entry.Annotation   { return filterEntries[*entry.Annotation](f) }
func (f *SpoolFile) ToolResults() []*entry.ToolResult   { return filterEntries[*entry.ToolResult](f) }

func filterEntries[T entry.Entry](f *SpoolFile) []T {
	var out []T
	for _, e := range f.Entries {
		if t, ok := e.(T); ok {
			out = append(out, t)
		}
	}
	return out
}

func serializeEntry(e entry.Entry) ([]byte, error) {
	b, err := json.Marshal(e)
	if err != nil {
		return nil, err
	}
	return append(b, '\n'), nil
}

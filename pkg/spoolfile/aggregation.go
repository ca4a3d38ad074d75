package spoolfile

import (
	"sort"
	"strings"

	"github.com/spoolhq/spool/pkg/entry"
)

// writeClassTools maps recognized write-class tool names to the ordered
// list of input fields to try for the modified file path, per spec §6.3.
// This allow-list is closed by design (spec §9 open question): a tool call
// under an unlisted name is simply not counted, even if it plainly writes
// a file.
var writeClassTools = map[string][]string{
	"Write":          {"file_path", "path"},
	"write":          {"file_path", "path"},
	"write_file":     {"file_path", "path"},
	"Edit":           {"file_path", "path"},
	"edit":           {"file_path", "path"},
	"edit_file":      {"file_path", "path"},
	"NotebookEdit":   {"notebook_path"},
	"notebook_edit":  {"notebook_path"},
}

// applyPatchHeaderPrefix and applyPatchVerbs together recognize the
// `*** Update/Add/Delete File: <path>` lines of an apply_patch-style patch
// body, the one write-class tool whose target path is inside its body
// rather than a flat input field.
const applyPatchHeaderPrefix = "*** "

var applyPatchVerbs = []string{"Update File: ", "Add File: ", "Delete File: "}

// filesModified returns the sorted, deduplicated set of file paths
// touched by recognized write-class tool calls.
func filesModified(entries []entry.Entry) []string {
	seen := make(map[string]bool)
	var files []string
	add := func(path string) {
		path = strings.TrimSpace(path)
		if path == "" || seen[path] {
			return
		}
		seen[path] = true
		files = append(files, path)
	}

	for _, e := range entries {
		tc, ok := e.(*entry.ToolCall)
		if !ok {
			continue
		}
		if tc.Tool == "apply_patch" {
			for _, path := range applyPatchPaths(tc) {
				add(path)
			}
			continue
		}
		fields, known := writeClassTools[tc.Tool]
		if !known {
			continue
		}
		for _, field := range fields {
			if v, ok := tc.InputField(field); ok && v != "" {
				add(v)
				break
			}
		}
	}

	sort.Strings(files)
	return files
}

func applyPatchPaths(tc *entry.ToolCall) []string {
	body, ok := tc.InputField("input")
	if !ok {
		body, ok = tc.InputField("patch")
	}
	if !ok {
		return nil
	}
	var paths []string
	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimRight(line, "\r")
		if !strings.HasPrefix(line, applyPatchHeaderPrefix) {
			continue
		}
		rest := strings.TrimPrefix(line, applyPatchHeaderPrefix)
		for _, verb := range applyPatchVerbs {
			if strings.HasPrefix(rest, verb) {
				paths = append(paths, strings.TrimSpace(strings.TrimPrefix(rest, verb)))
				break
			}
		}
	}
	return paths
}

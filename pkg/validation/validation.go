// Package validation implements a pure, policy-driven check of a parsed
// SpoolFile: duplicate ids and orphaned references are hard errors;
// timestamp ordering and soft annotation targets are warnings only.
package validation

import (
	"fmt"

	"github.com/spoolhq/spool/pkg/entry"
	"github.com/spoolhq/spool/pkg/spoolfile"
)

// Options toggles individual checks. All default to enabled.
type Options struct {
	CheckDuplicateIDs         bool
	CheckToolReferences       bool
	CheckSubagentReferences   bool
	CheckAnnotationReferences bool
	WarnOutOfOrderTimestamps  bool
}

// DefaultOptions enables every check, matching the format's default policy.
func DefaultOptions() Options {
	return Options{
		CheckDuplicateIDs:         true,
		CheckToolReferences:       true,
		CheckSubagentReferences:   true,
		CheckAnnotationReferences: true,
		WarnOutOfOrderTimestamps:  true,
	}
}

// ErrorKind classifies a hard validation error.
type ErrorKind string

const (
	ErrorSessionTimestampNotZero ErrorKind = "session_timestamp_not_zero"
	ErrorDuplicateID             ErrorKind = "duplicate_id"
	ErrorOrphanedToolResult      ErrorKind = "orphaned_tool_result"
	ErrorOrphanedSubagentEnd     ErrorKind = "orphaned_subagent_end"
)

// Error is a single hard validation failure.
type Error struct {
	Kind    ErrorKind
	Message string
}

func (e Error) Error() string { return e.Message }

// Result is the disjoint errors/warnings produced by Validate.
type Result struct {
	Errors   []Error
	Warnings []string
}

// IsValid reports whether the file has no hard errors (warnings never
// affect validity).
func (r Result) IsValid() bool {
	return len(r.Errors) == 0
}

// Validate runs every enabled check over file and returns the combined,
// disjoint error/warning sets. It never mutates file and never returns a Go
// error itself — validation outcomes are data, not failures.
func Validate(file *spoolfile.SpoolFile, opts Options) Result {
	var result Result

	session := file.Session()
	if session != nil && session.TSValue != 0 {
		result.Errors = append(result.Errors, Error{
			Kind:    ErrorSessionTimestampNotZero,
			Message: fmt.Sprintf("session entry has non-zero timestamp %d", session.TSValue),
		})
	}

	seenIDs := make(map[string]bool)
	toolCallIDs := make(map[string]bool)
	subagentStartIDs := make(map[string]bool)
	var lastTS *int64
	haveLastTS := false

	for _, e := range file.Entries {
		// seenIDs is populated unconditionally: CheckAnnotationReferences
		// also reads it to confirm an annotation's target exists, and that
		// check must work independently of whether CheckDuplicateIDs is on.
		if id := e.ID(); id != "" {
			if opts.CheckDuplicateIDs && seenIDs[id] {
				result.Errors = append(result.Errors, Error{
					Kind:    ErrorDuplicateID,
					Message: fmt.Sprintf("duplicate entry id %s", id),
				})
			}
			seenIDs[id] = true
		}

		switch v := e.(type) {
		case *entry.ToolCall:
			toolCallIDs[v.IDValue] = true
		case *entry.SubagentStart:
			subagentStartIDs[v.IDValue] = true
		}

		switch v := e.(type) {
		case *entry.ToolResult:
			if opts.CheckToolReferences && !toolCallIDs[v.CallID] {
				result.Errors = append(result.Errors, Error{
					Kind:    ErrorOrphanedToolResult,
					Message: fmt.Sprintf("tool result %s references unknown call %s", v.IDValue, v.CallID),
				})
			}
		case *entry.SubagentEnd:
			if opts.CheckSubagentReferences && !subagentStartIDs[v.StartID] {
				result.Errors = append(result.Errors, Error{
					Kind:    ErrorOrphanedSubagentEnd,
					Message: fmt.Sprintf("subagent end %s references unknown start %s", v.IDValue, v.StartID),
				})
			}
		case *entry.Annotation:
			if opts.CheckAnnotationReferences && !seenIDs[v.TargetID] {
				result.Warnings = append(result.Warnings,
					fmt.Sprintf("annotation %s references unknown entry %s", v.IDValue, v.TargetID))
			}
		}

		if opts.WarnOutOfOrderTimestamps {
			ts := e.TS()
			if haveLastTS && lastTS != nil && ts < *lastTS {
				result.Warnings = append(result.Warnings,
					fmt.Sprintf("entry %s has timestamp %d which is before previous entry's %d", e.ID(), ts, *lastTS))
			}
			lastTS = &ts
			haveLastTS = true
		}
	}

	return result
}

// ValidateDefault runs Validate with DefaultOptions().
func ValidateDefault(file *spoolfile.SpoolFile) Result {
	return Validate(file, DefaultOptions())
}

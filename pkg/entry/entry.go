// Package entry defines the tagged-union entry model for Spool session
// files: session metadata, prompts, responses, thinking, tool calls and
// results, subagent brackets, annotations, and redaction markers.
//
// Every entry is identified by its "type" field (a Type constant). An entry
// whose type is not recognized unmarshals into Unknown rather than failing,
// so a reader built against an older version of this package can still pass
// forward-compatible files through untouched (spec §3, §9).
package entry

// Type discriminates the entry variants. It is carried on the wire as the
// JSON "type" field of every entry.
type Type string

const (
	TypeSession         Type = "session"
	TypePrompt          Type = "prompt"
	TypeThinking        Type = "thinking"
	TypeToolCall        Type = "tool_call"
	TypeToolResult      Type = "tool_result"
	TypeResponse        Type = "response"
	TypeError           Type = "error"
	TypeSubagentStart   Type = "subagent_start"
	TypeSubagentEnd     Type = "subagent_end"
	TypeAnnotation      Type = "annotation"
	TypeRedactionMarker Type = "redaction_marker"
	TypeUnknown         Type = "unknown"
)

// Timestamp is milliseconds since session start. It is informational only
// (never authoritative for ordering); see Unknown entries and validation.
type Timestamp = int64

// Entry is implemented by every entry variant plus Unknown. Callers that
// need to branch on variant should type-switch on the concrete pointer type
// (*Session, *Prompt, ...) rather than relying on Kind() alone, matching the
// Rust source's match-on-enum-variant idiom.
type Entry interface {
	// ID returns the entry's id, or "" for Unknown entries (which carry no
	// guaranteed identity).
	ID() string
	// TS returns the entry's timestamp, or 0 for Unknown entries.
	TS() Timestamp
	// Kind reports the entry's discriminator.
	Kind() Type
}

// SubagentRef returns (subagentID, true) for entry variants that carry an
// optional subagent_id attribution (Prompt, Thinking, ToolCall, ToolResult,
// Response, Error), and ("", false) for variants that don't.
func SubagentRef(e Entry) (string, bool) {
	switch v := e.(type) {
	case *Prompt:
		return derefStr(v.SubagentID), v.SubagentID != nil
	case *Thinking:
		return derefStr(v.SubagentID), v.SubagentID != nil
	case *ToolCall:
		return derefStr(v.SubagentID), v.SubagentID != nil
	case *ToolResult:
		return derefStr(v.SubagentID), v.SubagentID != nil
	case *Response:
		return derefStr(v.SubagentID), v.SubagentID != nil
	case *Error:
		return derefStr(v.SubagentID), v.SubagentID != nil
	default:
		return "", false
	}
}

func derefStr(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

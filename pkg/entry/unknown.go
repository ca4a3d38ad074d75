package entry

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Unknown preserves an entry whose type this package does not recognize,
// so forward-compatible files pass through a reader untouched instead of
// failing. It carries no identity of its own (ID/TS return zero values),
// matching the original format's Entry::Unknown, which drops structured
// access entirely and keeps only the raw bytes.
type Unknown struct {
	TypeName string
	Raw      json.RawMessage
}

func (u *Unknown) ID() string    { return "" }
func (u *Unknown) TS() Timestamp { return 0 }
func (u *Unknown) Kind() Type    { return TypeUnknown }

func (u *Unknown) MarshalJSON() ([]byte, error) {
	return u.Raw, nil
}

// ErrMalformedLine indicates the line could not be parsed as any entry at
// all: either the JSON itself is invalid, or it's valid JSON that doesn't
// satisfy the shape its own declared "type" requires. The caller should
// record the original text in a side list rather than trust any returned
// entry (the returned Entry is nil).
var ErrMalformedLine = errors.New("entry: malformed line")

// ErrUnknownType indicates the line is syntactically valid JSON with a
// "type" field this package doesn't recognize. The returned *Unknown is
// still valid and should be kept in the entry sequence for forward
// compatibility; the caller should additionally record the original text
// in the unparsed-lines side list so a strict consumer can audit it (spec
// §4.1's dual contract for unrecognized types).
var ErrUnknownType = errors.New("entry: unknown type")

// Parse reads one JSON entry line and dispatches on its "type" field.
func Parse(data []byte) (Entry, error) {
	var probe struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedLine, err)
	}

	var e Entry
	switch Type(probe.Type) {
	case TypeSession:
		e = &Session{}
	case TypePrompt:
		e = &Prompt{}
	case TypeThinking:
		e = &Thinking{}
	case TypeToolCall:
		e = &ToolCall{}
	case TypeToolResult:
		e = &ToolResult{}
	case TypeResponse:
		e = &Response{}
	case TypeError:
		e = &Error{}
	case TypeSubagentStart:
		e = &SubagentStart{}
	case TypeSubagentEnd:
		e = &SubagentEnd{}
	case TypeAnnotation:
		e = &Annotation{}
	case TypeRedactionMarker:
		e = &RedactionMarker{}
	default:
		raw := make(json.RawMessage, len(data))
		copy(raw, data)
		return &Unknown{TypeName: probe.Type, Raw: raw}, ErrUnknownType
	}

	if err := json.Unmarshal(data, e); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedLine, err)
	}
	return e, nil
}

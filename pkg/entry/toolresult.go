package entry

import (
	"encoding/json"
	"fmt"
)

// RedactionReason is the category recorded on an inline RedactionInfo.
type RedactionReason string

const (
	RedactionReasonAPIKey    RedactionReason = "api_key"
	RedactionReasonPassword  RedactionReason = "password"
	RedactionReasonEmail     RedactionReason = "email"
	RedactionReasonPhone     RedactionReason = "phone"
	RedactionReasonPath      RedactionReason = "path"
	RedactionReasonIPAddress RedactionReason = "ip_address"
	RedactionReasonPII       RedactionReason = "pii"
	RedactionReasonCustom    RedactionReason = "custom"
)

// RedactionInfo summarizes redactions applied to a single field.
type RedactionInfo struct {
	Reason RedactionReason `json:"reason"`
	Count  int             `json:"count"`
}

// BinaryContent is base64-encoded tool output (e.g. a screenshot).
type BinaryContent struct {
	ContentType string  `json:"type"`
	MediaType   string  `json:"media_type"`
	Encoding    string  `json:"encoding"`
	Data        string  `json:"data"`
	SizeBytes   *int64  `json:"size_bytes,omitempty"`
	Filename    *string `json:"filename,omitempty"`
	Truncated   *bool   `json:"truncated,omitempty"`
}

// ToolOutput is either plain text or BinaryContent (spec's "text or binary"
// output field, given a concrete shape here per original_source entry.rs).
type ToolOutput struct {
	Text   *string
	Binary *BinaryContent
}

func (o ToolOutput) MarshalJSON() ([]byte, error) {
	switch {
	case o.Binary != nil:
		return json.Marshal(o.Binary)
	case o.Text != nil:
		return json.Marshal(*o.Text)
	default:
		return json.Marshal(nil)
	}
}

func (o *ToolOutput) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		o.Text = &s
		o.Binary = nil
		return nil
	}
	var b BinaryContent
	if err := json.Unmarshal(data, &b); err != nil {
		return fmt.Errorf("tool output: neither text nor binary: %w", err)
	}
	o.Binary = &b
	o.Text = nil
	return nil
}

// ToolResult is the outcome of a ToolCall. Exactly one of Output/Error is
// set (spec invariant I-4); never both.
type ToolResult struct {
	IDValue       string
	TSValue       Timestamp
	CallID        string
	Output        *ToolOutput
	Error         *string
	Truncated     *bool
	OriginalBytes *int64
	SubagentID    *string
	Redacted      []RedactionInfo
	Extra         map[string]any
}

func (r *ToolResult) ID() string    { return r.IDValue }
func (r *ToolResult) TS() Timestamp { return r.TSValue }
func (r *ToolResult) Kind() Type    { return TypeToolResult }

type toolResultWire struct {
	ID            string          `json:"id"`
	TS            Timestamp       `json:"ts"`
	CallID        string          `json:"call_id"`
	Output        *ToolOutput     `json:"output,omitempty"`
	Error         *string         `json:"error,omitempty"`
	Truncated     *bool           `json:"truncated,omitempty"`
	OriginalBytes *int64          `json:"original_bytes,omitempty"`
	SubagentID    *string         `json:"subagent_id,omitempty"`
	Redacted      []RedactionInfo `json:"_redacted,omitempty"`
}

var toolResultKnownKeys = []string{"id", "ts", "call_id", "output", "error", "truncated", "original_bytes", "subagent_id", "_redacted"}

func (r *ToolResult) MarshalJSON() ([]byte, error) {
	w := toolResultWire{
		ID: r.IDValue, TS: r.TSValue, CallID: r.CallID, Output: r.Output,
		Error: r.Error, Truncated: r.Truncated, OriginalBytes: r.OriginalBytes,
		SubagentID: r.SubagentID, Redacted: r.Redacted,
	}
	return marshalTagged(TypeToolResult, w, r.Extra)
}

func (r *ToolResult) UnmarshalJSON(data []byte) error {
	var w toolResultWire
	extra, err := unmarshalTagged(data, &w, toolResultKnownKeys)
	if err != nil {
		return err
	}
	*r = ToolResult{
		IDValue: w.ID, TSValue: w.TS, CallID: w.CallID, Output: w.Output,
		Error: w.Error, Truncated: w.Truncated, OriginalBytes: w.OriginalBytes,
		SubagentID: w.SubagentID, Redacted: w.Redacted, Extra: extra,
	}
	return nil
}

// OutputText returns the text form of Output, or ("", false) if the result
// has no output, or its output is binary. Used by the redaction engine,
// which only scans text-bearing fields (spec §4.3).
func (r *ToolResult) OutputText() (string, bool) {
	if r.Output == nil || r.Output.Text == nil {
		return "", false
	}
	return *r.Output.Text, true
}

// SetOutputText overwrites the text form of Output in place, used by the
// redaction engine's destructive rewrite.
func (r *ToolResult) SetOutputText(s string) {
	if r.Output == nil {
		r.Output = &ToolOutput{}
	}
	r.Output.Text = &s
	r.Output.Binary = nil
}

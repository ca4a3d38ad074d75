// Package codex converts Codex-CLI-style session transcripts
// (~/.codex/sessions/YYYY/MM/DD/rollout-*.jsonl) into canonical Spool files.
package codex

import (
	"encoding/json"
	"time"
)

// rawLine is one line of a Codex rollout file: a top-level envelope whose
// own Type discriminates session_meta/event_msg/response_item/turn_context,
// wrapping a Payload whose inner type further discriminates the actual
// record shape.
type rawLine struct {
	Timestamp *time.Time      `json:"timestamp"`
	Type      string          `json:"type"`
	Payload   json.RawMessage `json:"payload"`
}

// rawSessionMeta is the payload of a session_meta line, the rollout file's
// header record.
type rawSessionMeta struct {
	ID           string `json:"id"`
	CWD          string `json:"cwd"`
	Originator   string `json:"originator"`
	CLIVersion   string `json:"cli_version"`
	Instructions string `json:"instructions"`
}

// rawPayload covers every payload.type shape a Codex event_msg or
// response_item line can carry. Only the fields relevant to its own Type
// are populated by the vendor.
type rawPayload struct {
	Type string `json:"type"`

	// user_message / agent_message
	Message string `json:"message"`

	// agent_reasoning
	Text string `json:"text"`

	// function_call / custom_tool_call
	Name      string          `json:"name"`
	Arguments string          `json:"arguments"`
	Input     json.RawMessage `json:"input"`
	CallID    string          `json:"call_id"`

	// function_call_output / custom_tool_call_output
	Output json.RawMessage `json:"output"`
	Error  *bool           `json:"error"`

	// web_search_call
	Query string `json:"query"`
}

// outputText extracts plain text from a function_call_output/
// custom_tool_call_output payload's output field, which Codex emits either
// as a bare string or as a {"content": "..."} object.
func outputText(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var asString string
	if err := json.Unmarshal(raw, &asString); err == nil {
		return asString
	}
	var obj struct {
		Content string `json:"content"`
	}
	if err := json.Unmarshal(raw, &obj); err == nil {
		return obj.Content
	}
	return ""
}

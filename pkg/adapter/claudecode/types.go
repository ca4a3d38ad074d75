// Package claudecode converts Claude-Code-style session transcripts
// (~/.claude/projects/<project-hash>/*.jsonl) into canonical Spool files.
package claudecode

import (
	"encoding/json"
	"time"
)

// rawRecord is one line of a Claude Code session transcript.
type rawRecord struct {
	Type      string      `json:"type"`
	Timestamp *time.Time  `json:"timestamp"`
	Message   *rawMessage `json:"message"`
	UUID      string      `json:"uuid"`

	// Summary is populated on a "summary"-type record: a vendor-generated
	// conversation title line keyed to a leaf uuid, independent of the
	// prompt/response stream.
	Summary string `json:"summary"`
}

type rawMessage struct {
	Role    string          `json:"role"`
	Content json.RawMessage `json:"content"`
	Model   string          `json:"model"`
	Usage   *rawUsage       `json:"usage"`
}

type rawUsage struct {
	InputTokens         int64 `json:"input_tokens"`
	OutputTokens        int64 `json:"output_tokens"`
	CacheReadTokens     int64 `json:"cache_read_input_tokens"`
	CacheCreationTokens int64 `json:"cache_creation_input_tokens"`
}

// rawContentBlock covers every shape a content array entry can take: plain
// text, a thinking block, a tool_use request, or a tool_result reply. Only
// the fields relevant to its own Type are populated by the vendor.
type rawContentBlock struct {
	Type      string          `json:"type"`
	Text      string          `json:"text"`
	Thinking  string          `json:"thinking"`
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Input     json.RawMessage `json:"input"`
	ToolUseID string          `json:"tool_use_id"`
	Content   json.RawMessage `json:"content"`
	IsError   *bool           `json:"is_error"`
}

// messageContent normalizes message.content, which the vendor emits either
// as a bare string (simple user prompts) or as an array of content blocks
// (assistant turns, tool results).
func messageContent(raw json.RawMessage) ([]rawContentBlock, string, error) {
	var asString string
	if err := json.Unmarshal(raw, &asString); err == nil {
		return nil, asString, nil
	}
	var blocks []rawContentBlock
	if err := json.Unmarshal(raw, &blocks); err != nil {
		return nil, "", err
	}
	return blocks, "", nil
}

// blockText extracts plain text from a tool_result content block, which
// itself can be a bare string or an array of {"type":"text",...} blocks.
func blockText(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var asString string
	if err := json.Unmarshal(raw, &asString); err == nil {
		return asString
	}
	var blocks []rawContentBlock
	if err := json.Unmarshal(raw, &blocks); err == nil {
		var out string
		for _, b := range blocks {
			if b.Type == "text" {
				out += b.Text
			}
		}
		return out
	}
	return ""
}

package entry

import "encoding/json"

// ToolCall records a single tool invocation by the agent. Input is kept as
// raw JSON so any tool's argument shape round-trips without a schema.
type ToolCall struct {
	IDValue    string
	TSValue    Timestamp
	Tool       string
	Input      json.RawMessage
	SubagentID *string
	Extra      map[string]any
}

func (c *ToolCall) ID() string    { return c.IDValue }
func (c *ToolCall) TS() Timestamp { return c.TSValue }
func (c *ToolCall) Kind() Type    { return TypeToolCall }

type toolCallWire struct {
	ID         string          `json:"id"`
	TS         Timestamp       `json:"ts"`
	Tool       string          `json:"tool"`
	Input      json.RawMessage `json:"input"`
	SubagentID *string         `json:"subagent_id,omitempty"`
}

var toolCallKnownKeys = []string{"id", "ts", "tool", "input", "subagent_id"}

func (c *ToolCall) MarshalJSON() ([]byte, error) {
	input := c.Input
	if input == nil {
		input = json.RawMessage("null")
	}
	w := toolCallWire{c.IDValue, c.TSValue, c.Tool, input, c.SubagentID}
	return marshalTagged(TypeToolCall, w, c.Extra)
}

func (c *ToolCall) UnmarshalJSON(data []byte) error {
	var w toolCallWire
	extra, err := unmarshalTagged(data, &w, toolCallKnownKeys)
	if err != nil {
		return err
	}
	*c = ToolCall{w.ID, w.TS, w.Tool, w.Input, w.SubagentID, extra}
	return nil
}

// InputField returns the value of the named field of Input when Input is a
// JSON object and that field is a JSON string, and ok=false otherwise. Used
// by aggregation to pull a file path out of a write-class tool's input
// without a full schema per tool.
func (c *ToolCall) InputField(name string) (string, bool) {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(c.Input, &obj); err != nil {
		return "", false
	}
	raw, ok := obj[name]
	if !ok {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false
	}
	return s, true
}

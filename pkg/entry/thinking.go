package entry

// Thinking is the agent's internal reasoning, collapsible in a viewer and
// often truncated at capture time.
type Thinking struct {
	IDValue        string
	TSValue        Timestamp
	Content        string
	Collapsed      *bool
	Truncated      *bool
	OriginalBytes  *int64
	SubagentID     *string
	Extra          map[string]any
}

func (t *Thinking) ID() string    { return t.IDValue }
func (t *Thinking) TS() Timestamp { return t.TSValue }
func (t *Thinking) Kind() Type    { return TypeThinking }

type thinkingWire struct {
	ID            string    `json:"id"`
	TS            Timestamp `json:"ts"`
	Content       string    `json:"content"`
	Collapsed     *bool     `json:"collapsed,omitempty"`
	Truncated     *bool     `json:"truncated,omitempty"`
	OriginalBytes *int64    `json:"original_bytes,omitempty"`
	SubagentID    *string   `json:"subagent_id,omitempty"`
}

var thinkingKnownKeys = []string{"id", "ts", "content", "collapsed", "truncated", "original_bytes", "subagent_id"}

func (t *Thinking) MarshalJSON() ([]byte, error) {
	w := thinkingWire{t.IDValue, t.TSValue, t.Content, t.Collapsed, t.Truncated, t.OriginalBytes, t.SubagentID}
	return marshalTagged(TypeThinking, w, t.Extra)
}

func (t *Thinking) UnmarshalJSON(data []byte) error {
	var w thinkingWire
	extra, err := unmarshalTagged(data, &w, thinkingKnownKeys)
	if err != nil {
		return err
	}
	*t = Thinking{w.ID, w.TS, w.Content, w.Collapsed, w.Truncated, w.OriginalBytes, w.SubagentID, extra}
	return nil
}

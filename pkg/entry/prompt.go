package entry

// Attachment is inline binary content attached to a Prompt (images, files).
type Attachment struct {
	AttachmentType string  `json:"type"`
	MediaType      string  `json:"media_type"`
	Encoding       string  `json:"encoding"`
	Data           string  `json:"data"`
	Filename       *string `json:"filename,omitempty"`
	SizeBytes      *int64  `json:"size_bytes,omitempty"`
}

// Prompt is a user message to the agent.
type Prompt struct {
	IDValue     string
	TSValue     Timestamp
	Content     string
	SubagentID  *string
	Attachments []Attachment
	Extra       map[string]any
}

func (p *Prompt) ID() string    { return p.IDValue }
func (p *Prompt) TS() Timestamp { return p.TSValue }
func (p *Prompt) Kind() Type    { return TypePrompt }

type promptWire struct {
	ID          string       `json:"id"`
	TS          Timestamp    `json:"ts"`
	Content     string       `json:"content"`
	SubagentID  *string      `json:"subagent_id,omitempty"`
	Attachments []Attachment `json:"attachments,omitempty"`
}

var promptKnownKeys = []string{"id", "ts", "content", "subagent_id", "attachments"}

func (p *Prompt) MarshalJSON() ([]byte, error) {
	w := promptWire{p.IDValue, p.TSValue, p.Content, p.SubagentID, p.Attachments}
	return marshalTagged(TypePrompt, w, p.Extra)
}

func (p *Prompt) UnmarshalJSON(data []byte) error {
	var w promptWire
	extra, err := unmarshalTagged(data, &w, promptKnownKeys)
	if err != nil {
		return err
	}
	*p = Prompt{w.ID, w.TS, w.Content, w.SubagentID, w.Attachments, extra}
	return nil
}

package entry

// TokenUsage reports token accounting for an agent response.
type TokenUsage struct {
	InputTokens        int64  `json:"input_tokens"`
	OutputTokens       int64  `json:"output_tokens"`
	CacheReadTokens     *int64 `json:"cache_read_tokens,omitempty"`
	CacheCreationTokens *int64 `json:"cache_creation_tokens,omitempty"`
}

// Response is the agent's reply to the user.
type Response struct {
	IDValue       string
	TSValue       Timestamp
	Content       string
	Truncated     *bool
	OriginalBytes *int64
	Model         *string
	TokenUsage    *TokenUsage
	SubagentID    *string
	Extra         map[string]any
}

func (r *Response) ID() string    { return r.IDValue }
func (r *Response) TS() Timestamp { return r.TSValue }
func (r *Response) Kind() Type    { return TypeResponse }

type responseWire struct {
	ID            string      `json:"id"`
	TS            Timestamp   `json:"ts"`
	Content       string      `json:"content"`
	Truncated     *bool       `json:"truncated,omitempty"`
	OriginalBytes *int64      `json:"original_bytes,omitempty"`
	Model         *string     `json:"model,omitempty"`
	TokenUsage    *TokenUsage `json:"token_usage,omitempty"`
	SubagentID    *string     `json:"subagent_id,omitempty"`
}

var responseKnownKeys = []string{"id", "ts", "content", "truncated", "original_bytes", "model", "token_usage", "subagent_id"}

func (r *Response) MarshalJSON() ([]byte, error) {
	w := responseWire{r.IDValue, r.TSValue, r.Content, r.Truncated, r.OriginalBytes, r.Model, r.TokenUsage, r.SubagentID}
	return marshalTagged(TypeResponse, w, r.Extra)
}

func (r *Response) UnmarshalJSON(data []byte) error {
	var w responseWire
	extra, err := unmarshalTagged(data, &w, responseKnownKeys)
	if err != nil {
		return err
	}
	*r = Response{w.ID, w.TS, w.Content, w.Truncated, w.OriginalBytes, w.Model, w.TokenUsage, w.SubagentID, extra}
	return nil
}

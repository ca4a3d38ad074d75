package entry

// RedactionMarker records that a redaction occurred on TargetID, for cases
// where the redaction is logged separately rather than inlined on the
// affected entry's own _redacted field (entry.rs's RedactionMarkerEntry).
type RedactionMarker struct {
	IDValue  string
	TSValue  Timestamp
	TargetID string
	Reason   *RedactionReason
	Count    *int
	Inline   *bool
	Extra    map[string]any
}

func (m *RedactionMarker) ID() string    { return m.IDValue }
func (m *RedactionMarker) TS() Timestamp { return m.TSValue }
func (m *RedactionMarker) Kind() Type    { return TypeRedactionMarker }

type redactionMarkerWire struct {
	ID       string           `json:"id"`
	TS       Timestamp        `json:"ts"`
	TargetID string           `json:"target_id"`
	Reason   *RedactionReason `json:"reason,omitempty"`
	Count    *int             `json:"count,omitempty"`
	Inline   *bool            `json:"inline,omitempty"`
}

var redactionMarkerKnownKeys = []string{"id", "ts", "target_id", "reason", "count", "inline"}

func (m *RedactionMarker) MarshalJSON() ([]byte, error) {
	w := redactionMarkerWire{m.IDValue, m.TSValue, m.TargetID, m.Reason, m.Count, m.Inline}
	return marshalTagged(TypeRedactionMarker, w, m.Extra)
}

func (m *RedactionMarker) UnmarshalJSON(data []byte) error {
	var w redactionMarkerWire
	extra, err := unmarshalTagged(data, &w, redactionMarkerKnownKeys)
	if err != nil {
		return err
	}
	*m = RedactionMarker{w.ID, w.TS, w.TargetID, w.Reason, w.Count, w.Inline, extra}
	return nil
}

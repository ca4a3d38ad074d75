package entry

// SubagentStatus reports how a subagent invocation concluded.
type SubagentStatus string

const (
	SubagentStatusCompleted SubagentStatus = "completed"
	SubagentStatusFailed    SubagentStatus = "failed"
	SubagentStatusCancelled SubagentStatus = "cancelled"
)

// SubagentStart brackets the beginning of a delegated subagent invocation.
type SubagentStart struct {
	IDValue          string
	TSValue          Timestamp
	Agent            string
	Context          *string
	ParentSubagentID *string
	Extra            map[string]any
}

func (s *SubagentStart) ID() string    { return s.IDValue }
func (s *SubagentStart) TS() Timestamp { return s.TSValue }
func (s *SubagentStart) Kind() Type    { return TypeSubagentStart }

type subagentStartWire struct {
	ID               string    `json:"id"`
	TS               Timestamp `json:"ts"`
	Agent            string    `json:"agent"`
	Context          *string   `json:"context,omitempty"`
	ParentSubagentID *string   `json:"parent_subagent_id,omitempty"`
}

var subagentStartKnownKeys = []string{"id", "ts", "agent", "context", "parent_subagent_id"}

func (s *SubagentStart) MarshalJSON() ([]byte, error) {
	w := subagentStartWire{s.IDValue, s.TSValue, s.Agent, s.Context, s.ParentSubagentID}
	return marshalTagged(TypeSubagentStart, w, s.Extra)
}

func (s *SubagentStart) UnmarshalJSON(data []byte) error {
	var w subagentStartWire
	extra, err := unmarshalTagged(data, &w, subagentStartKnownKeys)
	if err != nil {
		return err
	}
	*s = SubagentStart{w.ID, w.TS, w.Agent, w.Context, w.ParentSubagentID, extra}
	return nil
}

// SubagentEnd brackets the conclusion of a delegated subagent invocation.
// StartID references the corresponding SubagentStart.ID (spec invariant).
type SubagentEnd struct {
	IDValue string
	TSValue Timestamp
	StartID string
	Summary *string
	Status  *SubagentStatus
	Extra   map[string]any
}

func (s *SubagentEnd) ID() string    { return s.IDValue }
func (s *SubagentEnd) TS() Timestamp { return s.TSValue }
func (s *SubagentEnd) Kind() Type    { return TypeSubagentEnd }

type subagentEndWire struct {
	ID      string          `json:"id"`
	TS      Timestamp       `json:"ts"`
	StartID string          `json:"start_id"`
	Summary *string         `json:"summary,omitempty"`
	Status  *SubagentStatus `json:"status,omitempty"`
}

var subagentEndKnownKeys = []string{"id", "ts", "start_id", "summary", "status"}

func (s *SubagentEnd) MarshalJSON() ([]byte, error) {
	w := subagentEndWire{s.IDValue, s.TSValue, s.StartID, s.Summary, s.Status}
	return marshalTagged(TypeSubagentEnd, w, s.Extra)
}

func (s *SubagentEnd) UnmarshalJSON(data []byte) error {
	var w subagentEndWire
	extra, err := unmarshalTagged(data, &w, subagentEndKnownKeys)
	if err != nil {
		return err
	}
	*s = SubagentEnd{w.ID, w.TS, w.StartID, w.Summary, w.Status, extra}
	return nil
}

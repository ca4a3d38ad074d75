package entry

import (
	"encoding/json"
	"time"
)

// SessionEndState reports how a session concluded.
type SessionEndState string

const (
	SessionEndCompleted SessionEndState = "completed"
	SessionEndCancelled SessionEndState = "cancelled"
	SessionEndError     SessionEndState = "error"
	SessionEndTimeout   SessionEndState = "timeout"
	SessionEndUnknown   SessionEndState = "unknown"
)

// TrimmedMetadata records that a file was produced by the trim operator.
type TrimmedMetadata struct {
	OriginalDurationMS int64    `json:"original_duration_ms"`
	KeptRange          [2]int64 `json:"kept_range"`
}

// Session is the mandatory first entry of every Spool file (ts must be 0).
type Session struct {
	IDValue    string    `json:"-"`
	TSValue    Timestamp `json:"-"`
	Version    string    `json:"-"`
	Agent      string    `json:"-"`
	RecordedAt time.Time `json:"-"`

	AgentVersion  *string          `json:"-"`
	Title         *string          `json:"-"`
	Author        *string          `json:"-"`
	Tags          []string         `json:"-"`
	DurationMS    *int64           `json:"-"`
	EntryCount    *int             `json:"-"`
	ToolsUsed     []string         `json:"-"`
	FilesModified []string         `json:"-"`
	FirstPrompt   *string          `json:"-"`
	SchemaURL     *string          `json:"-"`
	Trimmed       *TrimmedMetadata `json:"-"`
	Ended         *SessionEndState `json:"-"`

	Extra map[string]any `json:"-"`
}

func (s *Session) ID() string   { return s.IDValue }
func (s *Session) TS() Timestamp { return s.TSValue }
func (s *Session) Kind() Type   { return TypeSession }

type sessionWire struct {
	ID            string           `json:"id"`
	TS            Timestamp        `json:"ts"`
	Version       string           `json:"version"`
	Agent         string           `json:"agent"`
	RecordedAt    time.Time        `json:"recorded_at"`
	AgentVersion  *string          `json:"agent_version,omitempty"`
	Title         *string          `json:"title,omitempty"`
	Author        *string          `json:"author,omitempty"`
	Tags          []string         `json:"tags,omitempty"`
	DurationMS    *int64           `json:"duration_ms,omitempty"`
	EntryCount    *int             `json:"entry_count,omitempty"`
	ToolsUsed     []string         `json:"tools_used,omitempty"`
	FilesModified []string         `json:"files_modified,omitempty"`
	FirstPrompt   *string          `json:"first_prompt,omitempty"`
	SchemaURL     *string          `json:"schema_url,omitempty"`
	Trimmed       *TrimmedMetadata `json:"trimmed,omitempty"`
	Ended         *SessionEndState `json:"ended,omitempty"`
}

var sessionKnownKeys = []string{
	"id", "ts", "version", "agent", "recorded_at", "agent_version", "title",
	"author", "tags", "duration_ms", "entry_count", "tools_used",
	"files_modified", "first_prompt", "schema_url", "trimmed", "ended",
}

func (s *Session) MarshalJSON() ([]byte, error) {
	w := sessionWire{
		ID: s.IDValue, TS: s.TSValue, Version: s.Version, Agent: s.Agent,
		RecordedAt: s.RecordedAt, AgentVersion: s.AgentVersion, Title: s.Title,
		Author: s.Author, Tags: s.Tags, DurationMS: s.DurationMS,
		EntryCount: s.EntryCount, ToolsUsed: s.ToolsUsed,
		FilesModified: s.FilesModified, FirstPrompt: s.FirstPrompt,
		SchemaURL: s.SchemaURL, Trimmed: s.Trimmed, Ended: s.Ended,
	}
	return marshalTagged(TypeSession, w, s.Extra)
}

func (s *Session) UnmarshalJSON(data []byte) error {
	var w sessionWire
	extra, err := unmarshalTagged(data, &w, sessionKnownKeys)
	if err != nil {
		return err
	}
	*s = Session{
		IDValue: w.ID, TSValue: w.TS, Version: w.Version, Agent: w.Agent,
		RecordedAt: w.RecordedAt, AgentVersion: w.AgentVersion, Title: w.Title,
		Author: w.Author, Tags: w.Tags, DurationMS: w.DurationMS,
		EntryCount: w.EntryCount, ToolsUsed: w.ToolsUsed,
		FilesModified: w.FilesModified, FirstPrompt: w.FirstPrompt,
		SchemaURL: w.SchemaURL, Trimmed: w.Trimmed, Ended: w.Ended,
		Extra: extra,
	}
	return nil
}

var _ json.Marshaler = (*Session)(nil)
var _ json.Unmarshaler = (*Session)(nil)

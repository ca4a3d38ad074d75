package entry

import "encoding/json"

// ErrorCode is an open string enum: the constants below are the standard
// codes, but any other value round-trips unchanged (the Go equivalent of
// the original's untagged Custom(String) fallback — a plain string type is
// already open, so no wrapper variant is needed).
type ErrorCode string

const (
	ErrorCodeRateLimit       ErrorCode = "rate_limit"
	ErrorCodeAPIError        ErrorCode = "api_error"
	ErrorCodeTimeout         ErrorCode = "timeout"
	ErrorCodeAuthFailed      ErrorCode = "auth_failed"
	ErrorCodeNetworkError    ErrorCode = "network_error"
	ErrorCodeContextOverflow ErrorCode = "context_overflow"
	ErrorCodeCancelled       ErrorCode = "cancelled"
	ErrorCodeInternalError   ErrorCode = "internal_error"
	ErrorCodeUnknown         ErrorCode = "unknown"
)

// Error records a failure during the session.
type Error struct {
	IDValue     string
	TSValue     Timestamp
	Code        ErrorCode
	Message     string
	Recoverable *bool
	Details     json.RawMessage
	SubagentID  *string
	Extra       map[string]any
}

func (e *Error) ID() string    { return e.IDValue }
func (e *Error) TS() Timestamp { return e.TSValue }
func (e *Error) Kind() Type    { return TypeError }

type errorWire struct {
	ID          string          `json:"id"`
	TS          Timestamp       `json:"ts"`
	Code        ErrorCode       `json:"code"`
	Message     string          `json:"message"`
	Recoverable *bool           `json:"recoverable,omitempty"`
	Details     json.RawMessage `json:"details,omitempty"`
	SubagentID  *string         `json:"subagent_id,omitempty"`
}

var errorKnownKeys = []string{"id", "ts", "code", "message", "recoverable", "details", "subagent_id"}

func (e *Error) MarshalJSON() ([]byte, error) {
	w := errorWire{e.IDValue, e.TSValue, e.Code, e.Message, e.Recoverable, e.Details, e.SubagentID}
	return marshalTagged(TypeError, w, e.Extra)
}

func (e *Error) UnmarshalJSON(data []byte) error {
	var w errorWire
	extra, err := unmarshalTagged(data, &w, errorKnownKeys)
	if err != nil {
		return err
	}
	*e = Error{w.ID, w.TS, w.Code, w.Message, w.Recoverable, w.Details, w.SubagentID, extra}
	return nil
}

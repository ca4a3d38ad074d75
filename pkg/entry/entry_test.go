package entry

import (
	"errors"
	"strings"
	"testing"
)

func TestParseSessionEntry(t *testing.T) {
	data := []byte(`{"id":"018d5f2c-0000-7000-8000-000000000000","ts":0,"type":"session","version":"1.0","agent":"claude-code","recorded_at":"2025-01-31T10:30:00Z"}`)

	e, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	s, ok := e.(*Session)
	if !ok {
		t.Fatalf("expected *Session, got %T", e)
	}
	if s.Version != "1.0" {
		t.Errorf("expected version 1.0, got %q", s.Version)
	}
	if s.Agent != "claude-code" {
		t.Errorf("expected agent claude-code, got %q", s.Agent)
	}
}

func TestParsePromptEntry(t *testing.T) {
	data := []byte(`{"id":"018d5f2c-0000-7000-8000-000000000001","ts":0,"type":"prompt","content":"Hello, world!"}`)

	e, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	p, ok := e.(*Prompt)
	if !ok {
		t.Fatalf("expected *Prompt, got %T", e)
	}
	if p.Content != "Hello, world!" {
		t.Errorf("expected content %q, got %q", "Hello, world!", p.Content)
	}
}

func TestUnknownEntryTypePreserved(t *testing.T) {
	data := []byte(`{"id":"018d5f2c-0000-7000-8000-000000000001","ts":100,"type":"x_future_type","data":"unknown"}`)

	e, err := Parse(data)
	if !errors.Is(err, ErrUnknownType) {
		t.Fatalf("expected ErrUnknownType, got %v", err)
	}
	if _, ok := e.(*Unknown); !ok {
		t.Fatalf("expected *Unknown, got %T", e)
	}
}

func TestMalformedJSONReturnsErrMalformedLine(t *testing.T) {
	data := []byte(`{"type":"prompt", not valid json`)

	e, err := Parse(data)
	if !errors.Is(err, ErrMalformedLine) {
		t.Fatalf("expected ErrMalformedLine, got %v", err)
	}
	if e != nil {
		t.Fatalf("expected nil entry on malformed line, got %T", e)
	}
}

func TestMalformedTypedEntryReturnsErrMalformedLine(t *testing.T) {
	// Valid JSON, recognized type, but ts is the wrong shape for Prompt.
	data := []byte(`{"id":"a","ts":"not-a-number","type":"prompt","content":"hi"}`)

	e, err := Parse(data)
	if !errors.Is(err, ErrMalformedLine) {
		t.Fatalf("expected ErrMalformedLine, got %v", err)
	}
	if e != nil {
		t.Fatalf("expected nil entry on malformed line, got %T", e)
	}
}

func TestRoundTripWithExtraFields(t *testing.T) {
	data := []byte(`{"id":"018d5f2c-0000-7000-8000-000000000001","ts":0,"type":"prompt","content":"Hello","x_custom":"value"}`)

	e, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	out, err := e.(*Prompt).MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON: %v", err)
	}
	if !strings.Contains(string(out), "x_custom") {
		t.Errorf("expected output to preserve x_custom, got %s", out)
	}
}

func TestToolResultOutputOneOf(t *testing.T) {
	data := []byte(`{"id":"a","ts":1,"type":"tool_result","call_id":"b","output":"ok"}`)
	e, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	r := e.(*ToolResult)
	text, ok := r.OutputText()
	if !ok || text != "ok" {
		t.Fatalf("expected output text %q, got %q ok=%v", "ok", text, ok)
	}
	if r.Error != nil {
		t.Errorf("expected no error, got %v", *r.Error)
	}
}

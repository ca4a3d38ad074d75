package codex

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spoolhq/spool/pkg/adapter"
)

func writeSession(t *testing.T, lines ...string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "rollout-test.jsonl")
	content := ""
	for _, l := range lines {
		content += l + "\n"
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	return path
}

func TestConvertPromptAndAgentMessage(t *testing.T) {
	path := writeSession(t,
		`{"type":"session_meta","timestamp":"2026-01-01T00:00:00Z","payload":{"id":"sess-1","cli_version":"1.2.3"}}`,
		`{"type":"event_msg","timestamp":"2026-01-01T00:00:01Z","payload":{"type":"user_message","message":"fix the bug"}}`,
		`{"type":"event_msg","timestamp":"2026-01-01T00:00:02Z","payload":{"type":"agent_reasoning","text":"thinking it over"}}`,
		`{"type":"event_msg","timestamp":"2026-01-01T00:00:03Z","payload":{"type":"agent_message","message":"fixed it"}}`,
	)

	a := New()
	out, err := a.Convert(adapter.SessionInfo{Path: path, Agent: adapter.AgentCodex})
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}

	if out.Session().IDValue != "sess-1" {
		t.Fatalf("expected session id from session_meta, got %q", out.Session().IDValue)
	}
	if out.Session().AgentVersion == nil || *out.Session().AgentVersion != "1.2.3" {
		t.Fatalf("expected agent version from session_meta, got %+v", out.Session().AgentVersion)
	}

	prompts := out.Prompts()
	if len(prompts) != 1 || prompts[0].Content != "fix the bug" {
		t.Fatalf("unexpected prompts: %+v", prompts)
	}
	responses := out.Responses()
	if len(responses) != 1 || responses[0].Content != "fixed it" {
		t.Fatalf("unexpected responses: %+v", responses)
	}
}

func TestConvertFunctionCallAndOutput(t *testing.T) {
	path := writeSession(t,
		`{"type":"event_msg","timestamp":"2026-01-01T00:00:00Z","payload":{"type":"function_call","name":"shell","call_id":"call1","arguments":"{\"cmd\":\"ls\"}"}}`,
		`{"type":"event_msg","timestamp":"2026-01-01T00:00:01Z","payload":{"type":"function_call_output","call_id":"call1","output":"a.go\nb.go"}}`,
	)

	a := New()
	out, err := a.Convert(adapter.SessionInfo{Path: path, Agent: adapter.AgentCodex})
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}

	calls := out.ToolCalls()
	if len(calls) != 1 || calls[0].Tool != "shell" {
		t.Fatalf("unexpected tool calls: %+v", calls)
	}
	results := out.ToolResults()
	if len(results) != 1 || results[0].CallID != calls[0].IDValue {
		t.Fatalf("unexpected tool results: %+v", results)
	}
	text, ok := results[0].OutputText()
	if !ok || text != "a.go\nb.go" {
		t.Fatalf("unexpected output text: %q ok=%v", text, ok)
	}
}

func TestConvertCustomToolCallDefaultsToApplyPatch(t *testing.T) {
	path := writeSession(t,
		`{"type":"event_msg","timestamp":"2026-01-01T00:00:00Z","payload":{"type":"custom_tool_call","call_id":"call1","input":"*** Update File: a.go"}}`,
	)

	a := New()
	out, err := a.Convert(adapter.SessionInfo{Path: path, Agent: adapter.AgentCodex})
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	calls := out.ToolCalls()
	if len(calls) != 1 || calls[0].Tool != "apply_patch" {
		t.Fatalf("expected apply_patch default tool name, got %+v", calls)
	}
}

func TestConvertTitleFallsBackToFirstPromptWithNoSessionInfoTitle(t *testing.T) {
	path := writeSession(t,
		`{"type":"event_msg","timestamp":"2026-01-01T00:00:00Z","payload":{"type":"user_message","message":"fix the bug"}}`,
	)

	a := New()
	out, err := a.Convert(adapter.SessionInfo{Path: path, Agent: adapter.AgentCodex})
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	if out.Session().Title == nil || *out.Session().Title != "fix the bug" {
		t.Fatalf("expected title to fall back to first prompt, got %+v", out.Session().Title)
	}
}

func TestConvertTitlePrefersSessionInfoTitle(t *testing.T) {
	path := writeSession(t,
		`{"type":"event_msg","timestamp":"2026-01-01T00:00:00Z","payload":{"type":"user_message","message":"fix the bug"}}`,
	)

	a := New()
	infoTitle := "Supplied Title"
	out, err := a.Convert(adapter.SessionInfo{Path: path, Agent: adapter.AgentCodex, Title: &infoTitle})
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	if out.Session().Title == nil || *out.Session().Title != "Supplied Title" {
		t.Fatalf("expected title from SessionInfo, got %+v", out.Session().Title)
	}
}

func TestConvertPopulatesFilesModified(t *testing.T) {
	path := writeSession(t,
		`{"type":"event_msg","timestamp":"2026-01-01T00:00:00Z","payload":{"type":"custom_tool_call","call_id":"call1","input":"*** Update File: a.go"}}`,
	)

	a := New()
	out, err := a.Convert(adapter.SessionInfo{Path: path, Agent: adapter.AgentCodex})
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	files := out.Session().FilesModified
	if len(files) != 1 || files[0] != "a.go" {
		t.Fatalf("expected files_modified to be populated from the converted entries, got %+v", files)
	}
}

func TestConvertSkipsSessionMetaAndTurnContext(t *testing.T) {
	path := writeSession(t,
		`{"type":"session_meta","timestamp":"2026-01-01T00:00:00Z","payload":{"id":"sess-1"}}`,
		`{"type":"turn_context","timestamp":"2026-01-01T00:00:01Z","payload":{}}`,
	)

	a := New()
	out, err := a.Convert(adapter.SessionInfo{Path: path, Agent: adapter.AgentCodex})
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	if out.EntryCount() != 1 {
		t.Fatalf("expected only the session entry, got %d entries", out.EntryCount())
	}
}

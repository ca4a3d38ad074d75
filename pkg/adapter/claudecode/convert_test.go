package claudecode

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spoolhq/spool/pkg/adapter"
	"github.com/spoolhq/spool/pkg/entry"
)

func writeSession(t *testing.T, lines ...string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "session.jsonl")
	content := ""
	for _, l := range lines {
		content += l + "\n"
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	return path
}

func TestConvertPromptAndResponse(t *testing.T) {
	path := writeSession(t,
		`{"type":"user","timestamp":"2026-01-01T00:00:00Z","message":{"role":"user","content":"hello there"}}`,
		`{"type":"assistant","timestamp":"2026-01-01T00:00:01Z","message":{"role":"assistant","model":"claude","content":[{"type":"text","text":"hi"}]}}`,
	)

	a := New()
	out, err := a.Convert(adapter.SessionInfo{Path: path, Agent: adapter.AgentClaudeCode})
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}

	prompts := out.Prompts()
	if len(prompts) != 1 || prompts[0].Content != "hello there" {
		t.Fatalf("unexpected prompts: %+v", prompts)
	}
	responses := out.Responses()
	if len(responses) != 1 || responses[0].Content != "hi" {
		t.Fatalf("unexpected responses: %+v", responses)
	}
	if out.Session().FirstPrompt == nil || *out.Session().FirstPrompt != "hello there" {
		t.Fatalf("expected first_prompt to be derived, got %+v", out.Session().FirstPrompt)
	}
	if out.Session().Title == nil || *out.Session().Title != "hello there" {
		t.Fatalf("expected title to fall back to first prompt, got %+v", out.Session().Title)
	}
}

func TestConvertTitlePrefersSessionInfoTitle(t *testing.T) {
	path := writeSession(t,
		`{"type":"user","timestamp":"2026-01-01T00:00:00Z","message":{"role":"user","content":"hello there"}}`,
	)

	a := New()
	infoTitle := "Supplied Title"
	out, err := a.Convert(adapter.SessionInfo{Path: path, Agent: adapter.AgentClaudeCode, Title: &infoTitle})
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	if out.Session().Title == nil || *out.Session().Title != "Supplied Title" {
		t.Fatalf("expected title from SessionInfo, got %+v", out.Session().Title)
	}
}

func TestConvertTitlePrefersVendorSummaryOverFirstPrompt(t *testing.T) {
	path := writeSession(t,
		`{"type":"summary","summary":"Fix the auth bug"}`,
		`{"type":"user","timestamp":"2026-01-01T00:00:00Z","message":{"role":"user","content":"hello there"}}`,
	)

	a := New()
	out, err := a.Convert(adapter.SessionInfo{Path: path, Agent: adapter.AgentClaudeCode})
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	if out.Session().Title == nil || *out.Session().Title != "Fix the auth bug" {
		t.Fatalf("expected title from vendor summary, got %+v", out.Session().Title)
	}
	if out.Session().FirstPrompt == nil || *out.Session().FirstPrompt != "hello there" {
		t.Fatalf("expected first_prompt unaffected by summary, got %+v", out.Session().FirstPrompt)
	}
}

func TestConvertTitleTruncatesTo60BytesWithEllipsis(t *testing.T) {
	long := "this is a very long first prompt that definitely exceeds sixty bytes in length"
	path := writeSession(t,
		`{"type":"user","timestamp":"2026-01-01T00:00:00Z","message":{"role":"user","content":"`+long+`"}}`,
	)

	a := New()
	out, err := a.Convert(adapter.SessionInfo{Path: path, Agent: adapter.AgentClaudeCode})
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	title := out.Session().Title
	if title == nil {
		t.Fatal("expected a title")
	}
	if len(*title) > 63 { // 60 bytes + "..."
		t.Errorf("expected title truncated to 60 bytes + ellipsis, got %d bytes: %q", len(*title), *title)
	}
	if (*title)[len(*title)-3:] != "..." {
		t.Errorf("expected truncated title to end with ..., got %q", *title)
	}
}

func TestConvertPopulatesFilesModified(t *testing.T) {
	path := writeSession(t,
		`{"type":"assistant","timestamp":"2026-01-01T00:00:00Z","message":{"role":"assistant","content":[{"type":"tool_use","id":"call1","name":"Write","input":{"file_path":"a.go"}}]}}`,
		`{"type":"user","timestamp":"2026-01-01T00:00:01Z","message":{"role":"user","content":[{"type":"tool_result","tool_use_id":"call1","content":"ok"}]}}`,
	)

	a := New()
	out, err := a.Convert(adapter.SessionInfo{Path: path, Agent: adapter.AgentClaudeCode})
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	files := out.Session().FilesModified
	if len(files) != 1 || files[0] != "a.go" {
		t.Fatalf("expected files_modified to be populated from the converted entries, got %+v", files)
	}
}

func TestConvertToolCallAndResult(t *testing.T) {
	path := writeSession(t,
		`{"type":"assistant","timestamp":"2026-01-01T00:00:00Z","message":{"role":"assistant","content":[{"type":"tool_use","id":"call1","name":"Read","input":{"path":"a.go"}}]}}`,
		`{"type":"user","timestamp":"2026-01-01T00:00:01Z","message":{"role":"user","content":[{"type":"tool_result","tool_use_id":"call1","content":"file contents"}]}}`,
	)

	a := New()
	out, err := a.Convert(adapter.SessionInfo{Path: path, Agent: adapter.AgentClaudeCode})
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}

	calls := out.ToolCalls()
	if len(calls) != 1 || calls[0].Tool != "Read" {
		t.Fatalf("unexpected tool calls: %+v", calls)
	}
	results := out.ToolResults()
	if len(results) != 1 {
		t.Fatalf("unexpected tool results: %+v", results)
	}
	if results[0].CallID != calls[0].IDValue {
		t.Fatalf("tool result call id %q does not reference tool call id %q", results[0].CallID, calls[0].IDValue)
	}
	text, ok := results[0].OutputText()
	if !ok || text != "file contents" {
		t.Fatalf("unexpected output text: %q ok=%v", text, ok)
	}
}

func TestConvertTaskToolBracketsSubagent(t *testing.T) {
	path := writeSession(t,
		`{"type":"assistant","timestamp":"2026-01-01T00:00:00Z","message":{"role":"assistant","content":[{"type":"tool_use","id":"task1","name":"Task","input":{"description":"investigate bug"}}]}}`,
		`{"type":"user","timestamp":"2026-01-01T00:00:05Z","message":{"role":"user","content":[{"type":"tool_result","tool_use_id":"task1","content":"done investigating"}]}}`,
	)

	a := New()
	out, err := a.Convert(adapter.SessionInfo{Path: path, Agent: adapter.AgentClaudeCode})
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}

	var starts []*entry.SubagentStart
	var ends []*entry.SubagentEnd
	for _, e := range out.Entries {
		switch v := e.(type) {
		case *entry.SubagentStart:
			starts = append(starts, v)
		case *entry.SubagentEnd:
			ends = append(ends, v)
		}
	}
	if len(starts) != 1 || starts[0].Agent != "Task" {
		t.Fatalf("unexpected subagent starts: %+v", starts)
	}
	if len(ends) != 1 || ends[0].StartID != starts[0].IDValue {
		t.Fatalf("unexpected subagent ends: %+v", ends)
	}
	if ends[0].Status == nil || *ends[0].Status != entry.SubagentStatusCompleted {
		t.Fatalf("expected completed status, got %+v", ends[0].Status)
	}
	if len(out.ToolCalls()) != 0 {
		t.Fatalf("Task invocation should not also emit a ToolCall, got %+v", out.ToolCalls())
	}
}

func TestConvertDropsSystemReminderAndCommandMessages(t *testing.T) {
	path := writeSession(t,
		`{"type":"user","timestamp":"2026-01-01T00:00:00Z","message":{"role":"user","content":"<system-reminder>internal note</system-reminder>"}}`,
		`{"type":"user","timestamp":"2026-01-01T00:00:01Z","message":{"role":"user","content":"<command-name>/clear</command-name>"}}`,
		`{"type":"user","timestamp":"2026-01-01T00:00:02Z","message":{"role":"user","content":"real prompt"}}`,
	)

	a := New()
	out, err := a.Convert(adapter.SessionInfo{Path: path, Agent: adapter.AgentClaudeCode})
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}

	prompts := out.Prompts()
	if len(prompts) != 1 || prompts[0].Content != "real prompt" {
		t.Fatalf("expected only the real prompt to survive, got %+v", prompts)
	}
}

func TestConvertSkipsUnparsableLines(t *testing.T) {
	path := writeSession(t,
		`not json at all`,
		`{"type":"user","timestamp":"2026-01-01T00:00:00Z","message":{"role":"user","content":"hello"}}`,
	)

	a := New()
	out, err := a.Convert(adapter.SessionInfo{Path: path, Agent: adapter.AgentClaudeCode})
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	if len(out.Prompts()) != 1 {
		t.Fatalf("expected the malformed line to be skipped, got %+v", out.Prompts())
	}
}

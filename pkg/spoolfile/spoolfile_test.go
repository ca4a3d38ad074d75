package spoolfile

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/spoolhq/spool/pkg/entry"
)

func testSession() *entry.Session {
	title := "Test Session"
	return &entry.Session{
		IDValue:    entry.NewSyntheticID(),
		TSValue:    0,
		Version:    "1.0",
		Agent:      "test",
		RecordedAt: time.Now().UTC(),
		Title:      &title,
	}
}

func TestCreateNewFile(t *testing.T) {
	session := testSession()
	f := New(session)

	if len(f.Entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(f.Entries))
	}
	if f.Session().Title == nil || *f.Session().Title != *session.Title {
		t.Errorf("expected title %q, got %v", *session.Title, f.Session().Title)
	}
}

func TestParseMinimalFile(t *testing.T) {
	content := `{"id":"00000000-0000-0000-0000-000000000000","ts":0,"type":"session","version":"1.0","agent":"test","recorded_at":"2025-01-01T00:00:00Z"}`

	f, err := FromReader(strings.NewReader(content), nil)
	if err != nil {
		t.Fatalf("FromReader: %v", err)
	}
	if len(f.Entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(f.Entries))
	}
}

func TestMissingSessionEntry(t *testing.T) {
	content := `{"id":"00000000-0000-0000-0000-000000000001","ts":100,"type":"prompt","content":"Hello"}`

	_, err := FromReader(strings.NewReader(content), nil)
	if err != ErrMissingSessionEntry {
		t.Fatalf("expected ErrMissingSessionEntry, got %v", err)
	}
}

func TestWriteToRoundTrip(t *testing.T) {
	session := testSession()
	f := New(session)
	f.Entries = append(f.Entries, &entry.Prompt{IDValue: entry.NewSyntheticID(), TSValue: 10, Content: "hi"})

	var buf bytes.Buffer
	if err := f.WriteTo(&buf); err != nil {
		t.Fatalf("WriteTo: %v", err)
	}

	round, err := FromReader(&buf, nil)
	if err != nil {
		t.Fatalf("FromReader: %v", err)
	}
	if len(round.Entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(round.Entries))
	}
	if round.DurationMS() != 10 {
		t.Errorf("expected duration 10, got %d", round.DurationMS())
	}
}

func TestTrimKeepsSessionAndRange(t *testing.T) {
	session := testSession()
	f := New(session)
	f.Entries = append(f.Entries,
		&entry.Prompt{IDValue: entry.NewSyntheticID(), TSValue: 100, Content: "before"},
		&entry.Prompt{IDValue: entry.NewSyntheticID(), TSValue: 500, Content: "in range"},
		&entry.Prompt{IDValue: entry.NewSyntheticID(), TSValue: 900, Content: "after"},
	)

	f.Trim(300, 700)

	if len(f.Entries) != 2 {
		t.Fatalf("expected session + 1 entry, got %d", len(f.Entries))
	}
	if _, ok := f.Entries[0].(*entry.Session); !ok {
		t.Fatalf("expected entries[0] to be session")
	}
	p, ok := f.Entries[1].(*entry.Prompt)
	if !ok || p.Content != "in range" {
		t.Fatalf("expected kept entry to be the in-range prompt, got %#v", f.Entries[1])
	}
	if f.Session().Trimmed == nil {
		t.Fatal("expected trimmed metadata to be set")
	}
	if f.Session().Trimmed.KeptRange != [2]int64{300, 700} {
		t.Errorf("unexpected kept range: %v", f.Session().Trimmed.KeptRange)
	}
}

func TestUnparsedLinesPopulatedOnMalformedLine(t *testing.T) {
	content := strings.Join([]string{
		`{"id":"00000000-0000-0000-0000-000000000000","ts":0,"type":"session","version":"1.0","agent":"test","recorded_at":"2025-01-01T00:00:00Z"}`,
		`not even json`,
		`{"id":"00000000-0000-0000-0000-000000000001","ts":10,"type":"prompt","content":"hi"}`,
	}, "\n")

	f, err := FromReader(strings.NewReader(content), nil)
	if err != nil {
		t.Fatalf("FromReader: %v", err)
	}
	if len(f.Entries) != 2 {
		t.Fatalf("expected 2 parsed entries (session + prompt), got %d", len(f.Entries))
	}
	if len(f.UnparsedLines) != 1 {
		t.Fatalf("expected 1 unparsed line, got %d", len(f.UnparsedLines))
	}
	if f.UnparsedLines[0].LineNum != 2 {
		t.Errorf("expected unparsed line number 2, got %d", f.UnparsedLines[0].LineNum)
	}
	if f.UnparsedLines[0].Text != "not even json" {
		t.Errorf("expected unparsed text preserved verbatim, got %q", f.UnparsedLines[0].Text)
	}
}

func TestUnparsedLinesAlsoRecordUnknownTypeForAudit(t *testing.T) {
	content := strings.Join([]string{
		`{"id":"00000000-0000-0000-0000-000000000000","ts":0,"type":"session","version":"1.0","agent":"test","recorded_at":"2025-01-01T00:00:00Z"}`,
		`{"id":"00000000-0000-0000-0000-000000000002","ts":5,"type":"x_future_type","data":"unknown"}`,
	}, "\n")

	f, err := FromReader(strings.NewReader(content), nil)
	if err != nil {
		t.Fatalf("FromReader: %v", err)
	}
	if len(f.Entries) != 2 {
		t.Fatalf("expected the Unknown entry kept in-band, got %d entries", len(f.Entries))
	}
	if _, ok := f.Entries[1].(*entry.Unknown); !ok {
		t.Fatalf("expected entries[1] to be *entry.Unknown, got %T", f.Entries[1])
	}
	if len(f.UnparsedLines) != 1 || f.UnparsedLines[0].LineNum != 2 {
		t.Fatalf("expected the unknown-type line also recorded in UnparsedLines, got %+v", f.UnparsedLines)
	}
}

func TestToolsUsedSortedAndDeduped(t *testing.T) {
	session := testSession()
	f := New(session)
	f.Entries = append(f.Entries,
		&entry.ToolCall{IDValue: "1", TSValue: 1, Tool: "bash"},
		&entry.ToolCall{IDValue: "2", TSValue: 2, Tool: "Write"},
		&entry.ToolCall{IDValue: "3", TSValue: 3, Tool: "bash"},
	)

	tools := f.ToolsUsed()
	if len(tools) != 2 || tools[0] != "Write" || tools[1] != "bash" {
		t.Fatalf("unexpected tools_used: %v", tools)
	}
}

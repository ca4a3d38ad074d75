package validation

import (
	"testing"
	"time"

	"github.com/spoolhq/spool/pkg/entry"
	"github.com/spoolhq/spool/pkg/spoolfile"
)

func makeSession() *entry.Session {
	return &entry.Session{
		IDValue:    entry.NewSyntheticID(),
		TSValue:    0,
		Version:    "1.0",
		Agent:      "test",
		RecordedAt: time.Now().UTC(),
	}
}

func makePrompt(id string, ts int64, content string) *entry.Prompt {
	return &entry.Prompt{IDValue: id, TSValue: ts, Content: content}
}

func TestValidFile(t *testing.T) {
	f := spoolfile.New(makeSession())
	f.Entries = append(f.Entries, makePrompt(entry.NewSyntheticID(), 100, "Hello"))

	result := ValidateDefault(f)
	if !result.IsValid() {
		t.Fatalf("expected valid file, got errors: %v", result.Errors)
	}
}

func TestDuplicateIDs(t *testing.T) {
	f := spoolfile.New(makeSession())
	id := entry.NewSyntheticID()
	f.Entries = append(f.Entries, makePrompt(id, 100, "First"), makePrompt(id, 200, "Duplicate"))

	result := ValidateDefault(f)
	if result.IsValid() {
		t.Fatal("expected invalid file")
	}
	found := false
	for _, e := range result.Errors {
		if e.Kind == ErrorDuplicateID {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a duplicate_id error, got %v", result.Errors)
	}
}

func TestOutOfOrderWarnsNotErrors(t *testing.T) {
	f := spoolfile.New(makeSession())
	f.Entries = append(f.Entries,
		makePrompt(entry.NewSyntheticID(), 200, "Second"),
		makePrompt(entry.NewSyntheticID(), 100, "First but later"),
	)

	result := ValidateDefault(f)
	if !result.IsValid() {
		t.Fatalf("out-of-order timestamps must not be errors, got %v", result.Errors)
	}
	if len(result.Warnings) == 0 {
		t.Error("expected at least one warning")
	}
}

func TestOrphanedToolResult(t *testing.T) {
	f := spoolfile.New(makeSession())
	f.Entries = append(f.Entries, &entry.ToolResult{IDValue: entry.NewSyntheticID(), TSValue: 100, CallID: "missing"})

	result := ValidateDefault(f)
	if result.IsValid() {
		t.Fatal("expected invalid file for orphaned tool result")
	}
}

func TestAnnotationUnknownTargetIsWarning(t *testing.T) {
	f := spoolfile.New(makeSession())
	f.Entries = append(f.Entries, &entry.Annotation{IDValue: entry.NewSyntheticID(), TSValue: 100, TargetID: "missing", Content: "note"})

	result := ValidateDefault(f)
	if !result.IsValid() {
		t.Fatalf("annotation target should warn, not error, got %v", result.Errors)
	}
	if len(result.Warnings) == 0 {
		t.Error("expected a warning for unknown annotation target")
	}
}

func TestAnnotationTargetCheckWorksWithDuplicateIDCheckDisabled(t *testing.T) {
	promptID := entry.NewSyntheticID()
	f := spoolfile.New(makeSession())
	f.Entries = append(f.Entries,
		makePrompt(promptID, 100, "Hello"),
		&entry.Annotation{IDValue: entry.NewSyntheticID(), TSValue: 200, TargetID: promptID, Content: "note"},
	)

	opts := Options{
		CheckDuplicateIDs:         false,
		CheckToolReferences:       true,
		CheckSubagentReferences:   true,
		CheckAnnotationReferences: true,
		WarnOutOfOrderTimestamps:  true,
	}
	result := Validate(f, opts)
	if len(result.Warnings) != 0 {
		t.Errorf("expected no warnings for a valid annotation target, got %v", result.Warnings)
	}
}

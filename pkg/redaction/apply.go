package redaction

import "github.com/spoolhq/spool/pkg/entry"

// FieldDetection is a Detection anchored to the entry and field it was
// found in, for the review orchestrator's indexed accept/skip workflow.
type FieldDetection struct {
	EntryID   string
	Field     string
	Detection Detection
}

// TextField is one text-bearing location a given entry exposes, with a
// getter/setter pair so Scan, ApplyAll, and callers outside this package
// (the review orchestrator) can share the same field list.
type TextField struct {
	Name string
	Get  func() (string, bool)
	Set  func(string)
}

// TextFields returns the allow-listed text-bearing fields of e (spec §4.3):
// Prompt.content, Response.content, Thinking.content, ToolResult's text
// output, Error.message, SubagentStart.context, SubagentEnd.summary, and
// Annotation.content. Any other field, on any entry, is never scanned.
func TextFields(e entry.Entry) []TextField {
	switch v := e.(type) {
	case *entry.Prompt:
		return []TextField{{"content", func() (string, bool) { return v.Content, true }, func(s string) { v.Content = s }}}
	case *entry.Response:
		return []TextField{{"content", func() (string, bool) { return v.Content, true }, func(s string) { v.Content = s }}}
	case *entry.Thinking:
		return []TextField{{"content", func() (string, bool) { return v.Content, true }, func(s string) { v.Content = s }}}
	case *entry.ToolResult:
		return []TextField{{"output", v.OutputText, v.SetOutputText}}
	case *entry.Error:
		return []TextField{{"message", func() (string, bool) { return v.Message, true }, func(s string) { v.Message = s }}}
	case *entry.SubagentStart:
		return []TextField{{"context", func() (string, bool) {
			if v.Context == nil {
				return "", false
			}
			return *v.Context, true
		}, func(s string) { v.Context = &s }}}
	case *entry.SubagentEnd:
		return []TextField{{"summary", func() (string, bool) {
			if v.Summary == nil {
				return "", false
			}
			return *v.Summary, true
		}, func(s string) { v.Summary = &s }}}
	case *entry.Annotation:
		return []TextField{{"content", func() (string, bool) { return v.Content, true }, func(s string) { v.Content = s }}}
	default:
		return nil
	}
}

// Scan detects secrets across every text-bearing field of every entry,
// without modifying anything (the non-destructive half of the review
// orchestrator's detect-once step, spec §4.6).
func (d *Detector) Scan(entries []entry.Entry) []FieldDetection {
	var out []FieldDetection
	for _, e := range entries {
		for _, f := range TextFields(e) {
			text, ok := f.Get()
			if !ok || text == "" {
				continue
			}
			for _, det := range d.Detect(text) {
				out = append(out, FieldDetection{EntryID: e.ID(), Field: f.Name, Detection: det})
			}
		}
	}
	return out
}

// ApplyAll destructively redacts every text-bearing field of every entry in
// place, and stamps a ToolResult's inline _redacted summary when any of
// its own text was touched. The result matches the review orchestrator's
// apply step with nothing skipped (spec §4.3, §4.6); the CLI's redact
// command goes through the orchestrator, not this method.
func (d *Detector) ApplyAll(entries []entry.Entry) {
	for _, e := range entries {
		for _, f := range TextFields(e) {
			text, ok := f.Get()
			if !ok || text == "" {
				continue
			}
			redacted, detections := d.Redact(text)
			if len(detections) == 0 {
				continue
			}
			f.Set(redacted)
			if tr, ok := e.(*entry.ToolResult); ok {
				tr.Redacted = append(tr.Redacted, SummarizeByCategory(detections)...)
			}
		}
	}
}

// SummarizeByCategory collapses a detection list into per-category counts,
// in first-seen order, for stamping a ToolResult's inline _redacted field.
func SummarizeByCategory(detections []Detection) []entry.RedactionInfo {
	counts := make(map[Category]int)
	var order []Category
	for _, d := range detections {
		if counts[d.Category] == 0 {
			order = append(order, d.Category)
		}
		counts[d.Category]++
	}
	infos := make([]entry.RedactionInfo, 0, len(order))
	for _, c := range order {
		infos = append(infos, entry.RedactionInfo{Reason: entry.RedactionReason(c), Count: counts[c]})
	}
	return infos
}

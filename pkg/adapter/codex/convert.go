package codex

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spoolhq/spool/pkg/adapter"
	"github.com/spoolhq/spool/pkg/entry"
	"github.com/spoolhq/spool/pkg/spoolfile"
)

// firstPromptMaxBytes is Session.FirstPrompt's byte budget (spec's
// first-prompt field, distinct from Title's own 60-byte budget).
const firstPromptMaxBytes = 200

// applyPatchTool is the Codex custom tool name whose body is a textual
// patch rather than a normal JSON argument object (spec §6.3).
const applyPatchTool = "apply_patch"

// Convert reads a Codex rollout file and converts it into a canonical
// SpoolFile. Unlike Claude Code, every line already carries its own
// top-level timestamp, so no first-pass id-assignment is needed beyond
// threading call_id through to the matching ToolCall/ToolResult pair.
func (a *Adapter) Convert(info adapter.SessionInfo) (*spoolfile.SpoolFile, error) {
	lines, err := readLines(info.Path)
	if err != nil {
		return nil, fmt.Errorf("codex: read %s: %w", info.Path, err)
	}

	records := make([]rawLine, 0, len(lines))
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		var rec rawLine
		if err := json.Unmarshal([]byte(line), &rec); err != nil {
			continue // unparseable lines are skipped, never abort conversion
		}
		records = append(records, rec)
	}

	session, firstTS := buildSession(info, records)
	out := spoolfile.New(session)
	callIDs := make(map[string]string) // codex call_id -> canonical ToolCall id

	for _, rec := range records {
		ts := tsFor(rec.Timestamp, firstTS)

		switch rec.Type {
		case "session_meta", "turn_context":
			continue // metadata only, never becomes an entry
		case "event_msg", "response_item":
			var p rawPayload
			if err := json.Unmarshal(rec.Payload, &p); err != nil {
				continue
			}
			emitPayload(out, ts, p, callIDs)
		}
	}

	session.DurationMS = ptrInt64(out.DurationMS())
	session.ToolsUsed = out.ToolsUsed()
	count := out.EntryCount()
	session.EntryCount = &count
	session.FilesModified = out.FilesModified()

	return out, nil
}

func buildSession(info adapter.SessionInfo, records []rawLine) (*entry.Session, time.Time) {
	recordedAt := time.Now().UTC()
	if len(records) > 0 && records[0].Timestamp != nil {
		recordedAt = *records[0].Timestamp
	}

	s := &entry.Session{
		IDValue:    entry.NewID(),
		TSValue:    0,
		Version:    "1.0",
		Agent:      string(adapter.AgentCodex),
		RecordedAt: recordedAt,
	}

	for _, rec := range records {
		if rec.Type != "session_meta" {
			continue
		}
		var meta rawSessionMeta
		if err := json.Unmarshal(rec.Payload, &meta); err != nil {
			continue
		}
		if meta.ID != "" {
			s.IDValue = meta.ID
		}
		if meta.CLIVersion != "" {
			s.AgentVersion = &meta.CLIVersion
		}
		break
	}

	first := firstPromptText(records)
	if first != "" {
		preview := adapter.TruncateUTF8Safe(first, firstPromptMaxBytes)
		s.FirstPrompt = &preview
	}
	// Codex rollouts carry no vendor-native summary/title line (spec §6.2),
	// so the precedence here is just SessionInfo.title -> first prompt.
	s.Title = adapter.DeriveTitle(info.Title, "", first)

	return s, recordedAt
}

func firstPromptText(records []rawLine) string {
	for _, rec := range records {
		if rec.Type != "event_msg" && rec.Type != "response_item" {
			continue
		}
		var p rawPayload
		if err := json.Unmarshal(rec.Payload, &p); err != nil {
			continue
		}
		if p.Type != "user_message" {
			continue
		}
		if cleaned, empty := adapter.CleanText(p.Message); !empty && !adapter.IsCommandMessage(cleaned) {
			return cleaned
		}
	}
	return ""
}

func tsFor(t *time.Time, recordedAt time.Time) int64 {
	if t == nil {
		return 0
	}
	ms := t.Sub(recordedAt).Milliseconds()
	if ms < 0 {
		// Clock skew in the source transcript; ts is relative-to-recorded-at
		// by contract and must never go negative.
		return 0
	}
	return ms
}

func emitPayload(out *spoolfile.SpoolFile, ts int64, p rawPayload, callIDs map[string]string) {
	switch p.Type {
	case "user_message":
		cleaned, empty := adapter.CleanText(p.Message)
		if empty || adapter.IsCommandMessage(cleaned) {
			return
		}
		out.Entries = append(out.Entries, &entry.Prompt{IDValue: entry.NewID(), TSValue: ts, Content: cleaned})

	case "agent_message":
		cleaned, empty := adapter.CleanText(p.Message)
		if empty {
			return
		}
		out.Entries = append(out.Entries, &entry.Response{IDValue: entry.NewID(), TSValue: ts, Content: cleaned})

	case "agent_reasoning":
		cleaned, empty := adapter.CleanText(p.Text)
		if empty {
			return
		}
		out.Entries = append(out.Entries, &entry.Thinking{IDValue: entry.NewID(), TSValue: ts, Content: cleaned})

	case "function_call", "custom_tool_call", "web_search_call":
		emitToolCall(out, ts, p, callIDs)

	case "function_call_output", "custom_tool_call_output":
		emitToolResult(out, ts, p, callIDs)
	}
}

func emitToolCall(out *spoolfile.SpoolFile, ts int64, p rawPayload, callIDs map[string]string) {
	id := entry.NewID()
	if p.CallID != "" {
		callIDs[p.CallID] = id
	}

	name := p.Name
	input := p.Input
	switch p.Type {
	case "function_call":
		if len(input) == 0 && p.Arguments != "" {
			input = json.RawMessage(p.Arguments)
		}
	case "web_search_call":
		if name == "" {
			name = "web_search"
		}
		if len(input) == 0 {
			b, _ := json.Marshal(map[string]string{"query": p.Query})
			input = b
		}
	case "custom_tool_call":
		if name == "" {
			name = applyPatchTool
		}
		// apply_patch's body is a bare patch-text string under "input",
		// not a structured argument object; wrap it as {"input": ...} so
		// ToolCall.InputField("input") can recover it the same way every
		// other tool's named arguments are read (used by files_modified
		// aggregation to pull *** Update/Add/Delete File lines).
		if len(input) > 0 {
			if wrapped, err := json.Marshal(map[string]json.RawMessage{"input": input}); err == nil {
				input = wrapped
			}
		}
	}
	if len(input) == 0 {
		input = json.RawMessage("null")
	}

	out.Entries = append(out.Entries, &entry.ToolCall{IDValue: id, TSValue: ts, Tool: name, Input: input})
}

func emitToolResult(out *spoolfile.SpoolFile, ts int64, p rawPayload, callIDs map[string]string) {
	callID := callIDs[p.CallID]
	text := outputText(p.Output)

	tr := &entry.ToolResult{IDValue: entry.NewID(), TSValue: ts, CallID: callID}
	if p.Error != nil && *p.Error {
		msg := text
		tr.Error = &msg
	} else {
		tr.SetOutputText(text)
	}
	out.Entries = append(out.Entries, tr)
}

func ptrInt64(v int64) *int64 { return &v }

func readLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 10*1024*1024)
	var lines []string
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	return lines, scanner.Err()
}

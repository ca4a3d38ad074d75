package claudecode

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

// taskToolName is the Claude Code tool used to delegate to a subagent; its
// tool_use/tool_result pair brackets a SubagentStart/SubagentEnd instead of
// a ToolCall/ToolResult pair.
const taskToolName = "Task"

// Convert reads a Claude Code session transcript and converts it into a
// canonical SpoolFile using a two-pass algorithm: the first pass maps each
// tool_use id to the canonical ToolCall id it will get and notes whether it
// was a Task delegation; the second pass walks the transcript again
// emitting entries in order (spec §4.4).
func (a *Adapter) Convert(info adapter.SessionInfo) (*spoolfile.SpoolFile, error) {
	lines, err := readLines(info.Path)
	if err != nil {
		return nil, fmt.Errorf("claudecode: read %s: %w", info.Path, err)
	}

	records := make([]rawRecord, 0, len(lines))
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		var rec rawRecord
		if err := json.Unmarshal([]byte(line), &rec); err != nil {
			continue // unparseable lines are skipped, never abort conversion
		}
		records = append(records, rec)
	}

	callIDs, taskCalls := firstPass(records)
	session := buildSession(info, records)
	out := spoolfile.New(session)
	secondPass(out, records, callIDs, taskCalls)

	session.DurationMS = ptrInt64(out.DurationMS())
	session.ToolsUsed = out.ToolsUsed()
	count := out.EntryCount()
	session.EntryCount = &count
	session.FilesModified = out.FilesModified()

	return out, nil
}

// firstPass assigns a canonical entry id to every tool_use block and
// records which ones invoke the Task tool (and so bracket a subagent
// rather than an ordinary tool call).
func firstPass(records []rawRecord) (callIDs map[string]string, taskCalls map[string]bool) {
	callIDs = make(map[string]string)
	taskCalls = make(map[string]bool)

	for _, rec := range records {
		if rec.Message == nil {
			continue
		}
		blocks, _, err := messageContent(rec.Message.Content)
		if err != nil {
			continue
		}
		for _, b := range blocks {
			if b.Type != "tool_use" {
				continue
			}
			id := entry.NewID()
			callIDs[b.ID] = id
			if b.Name == taskToolName {
				taskCalls[b.ID] = true
			}
		}
	}
	return callIDs, taskCalls
}

func buildSession(info adapter.SessionInfo, records []rawRecord) *entry.Session {
	recordedAt := time.Now().UTC()
	if len(records) > 0 && records[0].Timestamp != nil {
		recordedAt = *records[0].Timestamp
	}

	s := &entry.Session{
		IDValue:    entry.NewID(),
		TSValue:    0,
		Version:    "1.0",
		Agent:      string(adapter.AgentClaudeCode),
		RecordedAt: recordedAt,
	}

	first := firstPromptText(records)
	if first != "" {
		preview := adapter.TruncateUTF8Safe(first, firstPromptMaxBytes)
		s.FirstPrompt = &preview
	}
	s.Title = adapter.DeriveTitle(info.Title, vendorSummaryText(records), first)
	return s
}

// vendorSummaryText returns the text of the transcript's vendor-generated
// "summary" record, if any (spec's title derivation order's second tier).
func vendorSummaryText(records []rawRecord) string {
	for _, rec := range records {
		if rec.Type == "summary" && rec.Summary != "" {
			return rec.Summary
		}
	}
	return ""
}

func firstPromptText(records []rawRecord) string {
	for _, rec := range records {
		if rec.Type != "user" || rec.Message == nil {
			continue
		}
		blocks, text, err := messageContent(rec.Message.Content)
		if err != nil {
			continue
		}
		if text != "" {
			if cleaned, empty := adapter.CleanText(text); !empty && !adapter.IsCommandMessage(cleaned) {
				return cleaned
			}
			continue
		}
		for _, b := range blocks {
			if b.Type == "text" {
				if cleaned, empty := adapter.CleanText(b.Text); !empty && !adapter.IsCommandMessage(cleaned) {
					return cleaned
				}
			}
		}
	}
	return ""
}

func secondPass(out *spoolfile.SpoolFile, records []rawRecord, callIDs map[string]string, taskCalls map[string]bool) {
	subagentStartIDs := make(map[string]string) // tool_use id -> SubagentStart entry id

	for _, rec := range records {
		if rec.Message == nil {
			continue
		}
		ts := tsFor(out, rec.Timestamp)
		blocks, text, err := messageContent(rec.Message.Content)
		if err != nil {
			continue
		}

		switch rec.Type {
		case "user":
			if len(blocks) == 0 {
				emitPrompt(out, ts, text)
				continue
			}
			for _, b := range blocks {
				switch b.Type {
				case "text":
					emitPrompt(out, ts, b.Text)
				case "tool_result":
					emitToolResult(out, ts, b, callIDs, taskCalls, subagentStartIDs)
				}
			}
		case "assistant":
			for _, b := range blocks {
				switch b.Type {
				case "text":
					emitResponse(out, ts, b, rec.Message)
				case "thinking":
					emitThinking(out, ts, b)
				case "tool_use":
					emitToolUse(out, ts, b, callIDs, taskCalls, subagentStartIDs)
				}
			}
		}
	}
}

func tsFor(out *spoolfile.SpoolFile, t *time.Time) int64 {
	if t == nil {
		return 0
	}
	session := out.Session()
	ms := t.Sub(session.RecordedAt).Milliseconds()
	if ms < 0 {
		// Clock skew in the source transcript; ts is relative-to-recorded-at
		// by contract and must never go negative.
		return 0
	}
	return ms
}

func emitPrompt(out *spoolfile.SpoolFile, ts int64, text string) {
	cleaned, empty := adapter.CleanText(text)
	if empty || adapter.IsCommandMessage(cleaned) {
		return
	}
	out.Entries = append(out.Entries, &entry.Prompt{IDValue: entry.NewID(), TSValue: ts, Content: cleaned})
}

func emitResponse(out *spoolfile.SpoolFile, ts int64, b rawContentBlock, msg *rawMessage) {
	cleaned, empty := adapter.CleanText(b.Text)
	if empty {
		return
	}
	r := &entry.Response{IDValue: entry.NewID(), TSValue: ts, Content: cleaned}
	if msg != nil && msg.Model != "" {
		r.Model = &msg.Model
	}
	if msg != nil && msg.Usage != nil {
		r.TokenUsage = &entry.TokenUsage{
			InputTokens:  msg.Usage.InputTokens,
			OutputTokens: msg.Usage.OutputTokens,
		}
	}
	out.Entries = append(out.Entries, r)
}

func emitThinking(out *spoolfile.SpoolFile, ts int64, b rawContentBlock) {
	cleaned, empty := adapter.CleanText(b.Thinking)
	if empty {
		return
	}
	out.Entries = append(out.Entries, &entry.Thinking{IDValue: entry.NewID(), TSValue: ts, Content: cleaned})
}

func emitToolUse(out *spoolfile.SpoolFile, ts int64, b rawContentBlock, callIDs map[string]string, taskCalls map[string]bool, subagentStartIDs map[string]string) {
	id := callIDs[b.ID]
	if id == "" {
		id = entry.NewID()
	}

	if taskCalls[b.ID] {
		agentName := b.Name
		var context *string
		if desc, ok := inputField(b.Input, "description"); ok {
			context = &desc
		}
		out.Entries = append(out.Entries, &entry.SubagentStart{
			IDValue: id, TSValue: ts, Agent: agentName, Context: context,
		})
		subagentStartIDs[b.ID] = id
		return
	}

	out.Entries = append(out.Entries, &entry.ToolCall{
		IDValue: id, TSValue: ts, Tool: b.Name, Input: rawOrNull(b.Input),
	})
}

func emitToolResult(out *spoolfile.SpoolFile, ts int64, b rawContentBlock, callIDs map[string]string, taskCalls map[string]bool, subagentStartIDs map[string]string) {
	text := blockText(b.Content)

	if taskCalls[b.ToolUseID] {
		startID, ok := subagentStartIDs[b.ToolUseID]
		if !ok {
			return
		}
		status := entry.SubagentStatusCompleted
		if b.IsError != nil && *b.IsError {
			status = entry.SubagentStatusFailed
		}
		var summary *string
		if cleaned, empty := adapter.CleanText(text); !empty {
			summary = &cleaned
		}
		out.Entries = append(out.Entries, &entry.SubagentEnd{
			IDValue: entry.NewID(), TSValue: ts, StartID: startID, Summary: summary, Status: &status,
		})
		return
	}

	callID, ok := callIDs[b.ToolUseID]
	if !ok {
		// Orphaned tool result: no matching tool_use in this transcript.
		// Recorded with a nil-sentinel call id rather than synthesized,
		// so the validator correctly flags it rather than hiding it.
		callID = ""
	}

	tr := &entry.ToolResult{IDValue: entry.NewID(), TSValue: ts, CallID: callID}
	if b.IsError != nil && *b.IsError {
		msg := text
		tr.Error = &msg
	} else {
		tr.SetOutputText(text)
	}
	out.Entries = append(out.Entries, tr)
}

func inputField(raw json.RawMessage, name string) (string, bool) {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil {
		return "", false
	}
	fieldRaw, ok := obj[name]
	if !ok {
		return "", false
	}
	var s string
	if err := json.Unmarshal(fieldRaw, &s); err != nil {
		return "", false
	}
	return s, true
}

func rawOrNull(raw json.RawMessage) json.RawMessage {
	if len(raw) == 0 {
		return json.RawMessage("null")
	}
	return raw
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

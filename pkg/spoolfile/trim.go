package spoolfile

import "github.com/spoolhq/spool/pkg/entry"

// Trim keeps the session entry plus every entry with ts in [startMS,
// endMS], then records the trim on the session entry's Trimmed field.
// Derived aggregates (DurationMS, ToolsUsed, EntryCount) are computed
// on demand from Entries, so nothing further needs recomputing here
// beyond the session metadata itself.
func (f *SpoolFile) Trim(startMS, endMS int64) {
	if len(f.Entries) == 0 {
		return
	}
	originalDuration := f.DurationMS()

	session := f.Entries[0]
	kept := make([]entry.Entry, 0, len(f.Entries))
	for _, e := range f.Entries[1:] {
		ts := e.TS()
		if ts >= startMS && ts <= endMS {
			kept = append(kept, e)
		}
	}

	f.Entries = append([]entry.Entry{session}, kept...)

	if s, ok := f.Entries[0].(*entry.Session); ok {
		s.Trimmed = &entry.TrimmedMetadata{
			OriginalDurationMS: originalDuration,
			KeptRange:          [2]int64{startMS, endMS},
		}
		s.DurationMS = ptrInt64(f.DurationMS())
		tools := f.ToolsUsed()
		s.ToolsUsed = tools
		count := f.EntryCount()
		s.EntryCount = &count
		s.FilesModified = f.FilesModified()
	}
}

func ptrInt64(v int64) *int64 { return &v }

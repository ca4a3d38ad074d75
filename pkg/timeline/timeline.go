// Package timeline implements the timeline compressor: it caps idle gaps
// before a Prompt and thinking gaps after a Thinking entry so replay speed
// isn't dominated by the seconds-to-minutes an agent actually waited.
package timeline

import "github.com/spoolhq/spool/pkg/entry"

// maxIdleGapMS caps the gap immediately preceding a Prompt entry.
// maxThinkingGapMS caps the gap immediately following a Thinking entry.
// Both are fixed per spec's explicit instruction not to guess at a
// configurable value; they are not exposed as options.
const (
	maxIdleGapMS     int64 = 2000
	maxThinkingGapMS int64 = 2000
)

// PlaybackPoint maps one entry to its position on the compressed playback
// axis. EntryIndex is the entry's position in the input slice.
type PlaybackPoint struct {
	EntryIndex int
	PlaybackMS int64
}

// Compress walks entries in order and produces a parallel vector of
// {entry_index, playback_ms}. It never modifies entries or their
// underlying values — the canonical wall-clock ts field is read-only
// here. Missing timestamps are treated as 0, matching the rest of the
// format (entries missing a ts are treated as simultaneous with the
// prior entry for gap computation).
func Compress(entries []entry.Entry) []PlaybackPoint {
	points := make([]PlaybackPoint, len(entries))

	var prevTS int64
	var prevWasThinking bool
	var playbackMS int64

	for i, e := range entries {
		ts := int64(e.TS())

		if i == 0 {
			points[i] = PlaybackPoint{EntryIndex: i, PlaybackMS: 0}
			prevTS = ts
			_, prevWasThinking = e.(*entry.Thinking)
			continue
		}

		rawGap := ts - prevTS
		if rawGap < 0 {
			rawGap = 0
		}

		compressedGap := rawGap
		_, isPrompt := e.(*entry.Prompt)
		if isPrompt && compressedGap > maxIdleGapMS {
			compressedGap = maxIdleGapMS
		}
		if prevWasThinking && compressedGap > maxThinkingGapMS {
			compressedGap = maxThinkingGapMS
		}

		playbackMS += compressedGap
		points[i] = PlaybackPoint{EntryIndex: i, PlaybackMS: playbackMS}

		prevTS = ts
		_, prevWasThinking = e.(*entry.Thinking)
	}

	return points
}

// Package review implements the redaction review orchestrator: detect
// once, let a caller accept or skip individual detections by stable index,
// then commit or abort (spec §4.6).
package review

import (
	"fmt"
	"sort"

	"github.com/spoolhq/spool/pkg/entry"
	"github.com/spoolhq/spool/pkg/redaction"
	"github.com/spoolhq/spool/pkg/spoolfile"
)

// Orchestrator ties a Detector to a SpoolFile for one review session.
// Detect is called at most once; Accept/Skip toggle detections by the
// stable index Detect assigned them; Apply commits the accepted subset.
type Orchestrator struct {
	detector   *redaction.Detector
	file       *spoolfile.SpoolFile
	detections []redaction.FieldDetection
	accepted   []bool
	detected   bool
	applied    bool
}

// New returns an Orchestrator for file using detector.
func New(detector *redaction.Detector, file *spoolfile.SpoolFile) *Orchestrator {
	return &Orchestrator{detector: detector, file: file}
}

// Detect runs the detection engine once across every text-bearing field of
// file, caching the result. Every detection defaults to accepted; callers
// narrow the set with Skip (or the non-interactive skip-index path).
// Indices are stable for the lifetime of this Orchestrator (spec §4.6 step
// 2: "stable, indexed 0..N").
func (o *Orchestrator) Detect() []redaction.FieldDetection {
	if !o.detected {
		o.detections = o.detector.Scan(o.file.Entries)
		o.accepted = make([]bool, len(o.detections))
		for i := range o.accepted {
			o.accepted[i] = true
		}
		o.detected = true
	}
	return o.detections
}

// Accept marks the detection at index as accepted (the default state).
func (o *Orchestrator) Accept(index int) error { return o.setAccepted(index, true) }

// Skip marks the detection at index as not to be applied.
func (o *Orchestrator) Skip(index int) error { return o.setAccepted(index, false) }

func (o *Orchestrator) setAccepted(index int, accept bool) error {
	o.Detect()
	if index < 0 || index >= len(o.accepted) {
		return fmt.Errorf("review: detection index %d out of range [0,%d)", index, len(o.accepted))
	}
	o.accepted[index] = accept
	return nil
}

// Accepted returns the detections currently marked accepted, in stable
// index order — the preview step of the interactive flow (spec §4.6 step
// 4's "preview of accepted redactions").
func (o *Orchestrator) Accepted() []redaction.FieldDetection {
	o.Detect()
	var out []redaction.FieldDetection
	for i, d := range o.detections {
		if o.accepted[i] {
			out = append(out, d)
		}
	}
	return out
}

// ApplyNonInteractive runs Detect if needed, marks every index in skip as
// not accepted, and commits (spec §4.6 step 3).
func (o *Orchestrator) ApplyNonInteractive(skip []int) error {
	o.Detect()
	for _, idx := range skip {
		if err := o.Skip(idx); err != nil {
			return err
		}
	}
	return o.Apply()
}

// Apply rewrites every accepted detection's field in place and stamps
// ToolResult._redacted summaries, then marks this Orchestrator as applied
// (a second Apply call is a no-op, matching the at-most-once commit the
// sequence in spec §4.6 describes).
func (o *Orchestrator) Apply() error {
	o.Detect()
	if o.applied {
		return nil
	}

	type key struct {
		entryID string
		field   string
	}
	grouped := make(map[key][]redaction.Detection)
	for i, d := range o.detections {
		if !o.accepted[i] {
			continue
		}
		k := key{d.EntryID, d.Field}
		grouped[k] = append(grouped[k], d.Detection)
	}
	for k := range grouped {
		sort.Slice(grouped[k], func(i, j int) bool { return grouped[k][i].Start < grouped[k][j].Start })
	}

	for _, e := range o.file.Entries {
		for _, f := range redaction.TextFields(e) {
			dets, ok := grouped[key{e.ID(), f.Name}]
			if !ok {
				continue
			}
			text, has := f.Get()
			if !has {
				continue
			}
			f.Set(redaction.RedactWith(text, dets))
			if tr, ok := e.(*entry.ToolResult); ok {
				tr.Redacted = append(tr.Redacted, redaction.SummarizeByCategory(dets)...)
			}
		}
	}

	o.applied = true
	return nil
}

// Abort discards this review session without writing anything. It exists
// as a named, explicit counterpart to Apply so callers don't have to infer
// "never call Apply" as the cancel path (spec §4.6 step 5: "Abort is
// non-destructive").
func (o *Orchestrator) Abort() {}

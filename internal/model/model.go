package model

import "time"

// RawEvent is a single already-expanded calendar event as delivered by
// the event source. Description may embed a tag annotation of the form
// "[Tags: label1, label2]"; events without one are categorized by their
// Summary.
type RawEvent struct {
	Start time.Time
	End   time.Time

	Summary     string
	Description string
}

// NormalizedEvent is the derived form the aggregator consumes. It is
// never mutated after creation.
type NormalizedEvent struct {
	// Seconds is the event's elapsed duration. Non-negative; events
	// whose end precedes their start are rejected during normalization.
	Seconds int64

	// Categories is the ordered list of labels the event contributes
	// its duration to. Always non-empty: falls back to [Summary] when
	// the event carries no usable tag annotation.
	Categories []string
}

// Options holds the per-run audit options. The value is threaded
// explicitly through normalization and formatting; nothing here is
// mutated during an aggregation pass.
type Options struct {
	// FirstTagOnly keeps only the first tag of an annotation and makes
	// the formatter append a synthesized Total row.
	FirstTagOnly bool
}

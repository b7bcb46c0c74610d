// Package audit implements the categorization and time-aggregation
// engine: it turns raw calendar events into ranked per-category
// duration reports.
package audit

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"calaudit/internal/model"
)

// tagPattern matches the embedded annotation "[Tags: a, b]" in an event
// description. Only the first block is honored; labels are trimmed and
// case-sensitive, with no escaping of commas or brackets.
var tagPattern = regexp.MustCompile(`\[Tags:(.*?)\]`)

// ErrNegativeDuration rejects events whose end precedes their start.
// Such events are malformed upstream data; they are dropped loudly
// rather than contributing a negative duration.
var ErrNegativeDuration = errors.New("event end precedes start")

// Normalize derives an event's duration and category set.
//
// Categories come from the first tag annotation in the description;
// when the description is absent, has no annotation, or the annotation
// is empty after splitting, the event's summary is its single category.
// With opts.FirstTagOnly set only the first tag is kept.
func Normalize(ev model.RawEvent, opts model.Options) (model.NormalizedEvent, error) {
	if ev.End.Before(ev.Start) {
		return model.NormalizedEvent{}, fmt.Errorf("%q: %w", ev.Summary, ErrNegativeDuration)
	}
	return model.NormalizedEvent{
		Seconds:    int64(ev.End.Sub(ev.Start) / time.Second),
		Categories: categories(ev, opts),
	}, nil
}

func categories(ev model.RawEvent, opts model.Options) []string {
	m := tagPattern.FindStringSubmatch(ev.Description)
	if m == nil {
		return []string{ev.Summary}
	}

	var tags []string
	for _, part := range strings.Split(m[1], ",") {
		if tag := strings.TrimSpace(part); tag != "" {
			tags = append(tags, tag)
		}
	}
	if len(tags) == 0 {
		return []string{ev.Summary}
	}
	if opts.FirstTagOnly {
		return tags[:1]
	}
	return tags
}

package audit

import (
	"sort"

	"calaudit/internal/model"
)

// Entry is one category's accumulated duration.
type Entry struct {
	Label   string
	Seconds int64
}

// Report is the ranked outcome of one aggregation pass. Entries are
// ordered by duration descending; equal durations keep the order in
// which their categories were first encountered. Tracked is the sum of
// all entry durations, which may exceed the window length because an
// event contributes its full duration to each of its categories.
type Report struct {
	Entries []Entry
	Tracked int64
}

// Empty reports whether the aggregation produced no categories.
func (r Report) Empty() bool { return len(r.Entries) == 0 }

// Aggregate folds normalized events into a ranked category report.
// Each call owns its own accumulator; nothing is shared across passes.
func Aggregate(events []model.NormalizedEvent) Report {
	index := make(map[string]int)
	var rep Report

	for _, ev := range events {
		for _, cat := range ev.Categories {
			i, ok := index[cat]
			if !ok {
				i = len(rep.Entries)
				index[cat] = i
				rep.Entries = append(rep.Entries, Entry{Label: cat})
			}
			rep.Entries[i].Seconds += ev.Seconds
			rep.Tracked += ev.Seconds
		}
	}

	sort.SliceStable(rep.Entries, func(i, j int) bool {
		return rep.Entries[i].Seconds > rep.Entries[j].Seconds
	})
	return rep
}

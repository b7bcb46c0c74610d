package audit

import (
	"time"

	"calaudit/internal/model"
	"calaudit/internal/window"
)

// SecondsPerDay is the fixed percentage denominator for per-day
// sub-reports, independent of how many events fall on the day.
const SecondsPerDay int64 = 86400

// DayReport is one calendar day's slice of a multi-day audit.
type DayReport struct {
	Date   time.Time
	Report Report
	// Empty marks a day without events; the caller prints a "no
	// events" line instead of a table.
	Empty bool
}

// Decompose partitions the window's events by the calendar day their
// start falls on and aggregates each day separately. It emits one
// DayReport per day of the window, inclusive of both ends. Assignment
// compares the full date, so windows spanning a month rollover do not
// conflate days that share a day-of-month.
//
// Events that fail normalization are skipped; the caller is expected to
// have already reported them when building the overall report.
func Decompose(win window.Window, events []model.RawEvent, opts model.Options) []DayReport {
	var days []DayReport
	for _, sub := range win.Days() {
		var norms []model.NormalizedEvent
		for _, ev := range events {
			if !sameDate(ev.Start, sub.Start) {
				continue
			}
			norm, err := Normalize(ev, opts)
			if err != nil {
				continue
			}
			norms = append(norms, norm)
		}

		day := DayReport{Date: sub.Start}
		if len(norms) == 0 {
			day.Empty = true
		} else {
			day.Report = Aggregate(norms)
		}
		days = append(days, day)
	}
	return days
}

func sameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

package ics

import (
	"errors"
	"time"

	"github.com/teambition/rrule-go"

	appLog "calaudit/internal/log"
	"calaudit/internal/model"
	"calaudit/internal/window"
)

// maxOccurrencesPerEvent caps recurrence expansion so a malformed rule
// cannot blow up a single audit run.
const maxOccurrencesPerEvent = 5000

// expandEvents turns parsed VEVENTs into concrete single occurrences
// within the window, converted to loc. It handles RRULE recurrence,
// EXDATE exceptions, and RECURRENCE-ID overrides. All-day events carry
// no elapsed time in an audit and are skipped.
func expandEvents(events []parsedEvent, win window.Window, loc *time.Location) []model.RawEvent {
	base := make([]parsedEvent, 0, len(events))
	overridesByUID := make(map[string][]parsedEvent)

	for _, ev := range events {
		if ev.allDay {
			continue
		}
		if ev.recurrenceID != nil {
			overridesByUID[ev.uid] = append(overridesByUID[ev.uid], ev)
			continue
		}
		base = append(base, ev)
	}

	var out []model.RawEvent
	for _, ev := range base {
		if ev.rawRRule == "" {
			out = append(out, expandSingle(ev, overridesByUID[ev.uid], win, loc)...)
			continue
		}
		out = append(out, expandRecurring(ev, overridesByUID[ev.uid], win, loc)...)
	}
	return out
}

func expandSingle(ev parsedEvent, overrides []parsedEvent, win window.Window, loc *time.Location) []model.RawEvent {
	start, end := ev.start, ev.end
	if o, ok := overrideForStart(overrides, start); ok {
		ev = o
		start, end = o.start, o.end
	}
	if !overlaps(start, end, win) {
		return nil
	}
	return []model.RawEvent{makeRaw(ev, start, end, loc)}
}

func expandRecurring(ev parsedEvent, overrides []parsedEvent, win window.Window, loc *time.Location) []model.RawEvent {
	r, err := rrule.StrToRRule(ev.rawRRule)
	if err != nil {
		appLog.Error("ics rrule parse failed", err, "uid", ev.uid, "rrule", ev.rawRRule)
		return nil
	}
	r.DTStart(ev.start)

	var set rrule.Set
	set.RRule(r)
	for _, ex := range ev.exDates {
		set.ExDate(ex.In(ev.start.Location()))
	}

	rangeStart := win.Start.In(ev.start.Location())
	rangeEnd := win.End.In(ev.start.Location())

	starts := set.Between(rangeStart, rangeEnd, true)
	if len(starts) > maxOccurrencesPerEvent {
		appLog.Error("ics recurrence expansion truncated", errors.New("max occurrences reached"), "uid", ev.uid, "cap", maxOccurrencesPerEvent)
		starts = starts[:maxOccurrencesPerEvent]
	}

	dur := ev.end.Sub(ev.start)
	out := make([]model.RawEvent, 0, len(starts))
	for _, occStart := range starts {
		occEnd := occStart.Add(dur)
		occEv := ev
		if o, ok := overrideForStart(overrides, occStart); ok {
			occEv = o
			occStart, occEnd = o.start, o.end
		}
		if !overlaps(occStart, occEnd, win) {
			continue
		}
		out = append(out, makeRaw(occEv, occStart, occEnd, loc))
	}
	return out
}

// overrideForStart finds an override whose RECURRENCE-ID matches the
// occurrence start with exact time equality.
func overrideForStart(overrides []parsedEvent, start time.Time) (parsedEvent, bool) {
	for _, o := range overrides {
		if o.recurrenceID != nil && o.recurrenceID.In(start.Location()).Equal(start) {
			return o, true
		}
	}
	return parsedEvent{}, false
}

func makeRaw(ev parsedEvent, start, end time.Time, loc *time.Location) model.RawEvent {
	return model.RawEvent{
		Start:       start.In(loc),
		End:         end.In(loc),
		Summary:     ev.summary,
		Description: ev.description,
	}
}

func overlaps(start, end time.Time, win window.Window) bool {
	return !end.Before(win.Start) && !start.After(win.End)
}

package ics

import (
	"testing"
	"time"

	"calaudit/internal/window"
)

var est = time.FixedZone("UTC-05:00", -5*3600)

func dayWindow(t *testing.T, date string) window.Window {
	t.Helper()
	win, err := window.ResolveDay(date, est)
	if err != nil {
		t.Fatalf("ResolveDay: %v", err)
	}
	return win
}

func TestExpandSingleEventWithinWindow(t *testing.T) {
	win := dayWindow(t, "2025-01-13")
	events := []parsedEvent{
		{
			uid:     "ev1",
			summary: "Standup",
			start:   time.Date(2025, 1, 13, 14, 0, 0, 0, time.UTC), // 09:00 -05:00
			end:     time.Date(2025, 1, 13, 15, 0, 0, 0, time.UTC),
		},
		{
			uid:     "ev2",
			summary: "Outside",
			start:   time.Date(2025, 1, 20, 14, 0, 0, 0, time.UTC),
			end:     time.Date(2025, 1, 20, 15, 0, 0, 0, time.UTC),
		},
	}

	raws := expandEvents(events, win, est)
	if len(raws) != 1 {
		t.Fatalf("got %d events, want 1", len(raws))
	}
	if raws[0].Summary != "Standup" {
		t.Fatalf("summary = %q", raws[0].Summary)
	}
	if !raws[0].Start.Equal(time.Date(2025, 1, 13, 9, 0, 0, 0, est)) {
		t.Fatalf("start = %v, want 09:00 at the window offset", raws[0].Start)
	}
}

func TestExpandSkipsAllDayEvents(t *testing.T) {
	win := dayWindow(t, "2025-01-13")
	events := []parsedEvent{
		{
			uid:     "ev-holiday",
			summary: "Holiday",
			start:   time.Date(2025, 1, 13, 0, 0, 0, 0, time.UTC),
			end:     time.Date(2025, 1, 14, 0, 0, 0, 0, time.UTC),
			allDay:  true,
		},
	}
	if raws := expandEvents(events, win, est); len(raws) != 0 {
		t.Fatalf("all-day event expanded: %+v", raws)
	}
}

func TestExpandRecurringWithinWindow(t *testing.T) {
	win, err := window.ResolveWeek("2025-01-13", est)
	if err != nil {
		t.Fatalf("ResolveWeek: %v", err)
	}
	events := []parsedEvent{
		{
			uid:      "ev-daily",
			summary:  "Standup",
			start:    time.Date(2025, 1, 13, 14, 0, 0, 0, time.UTC),
			end:      time.Date(2025, 1, 13, 14, 30, 0, 0, time.UTC),
			rawRRule: "FREQ=DAILY;COUNT=3",
		},
	}

	raws := expandEvents(events, win, est)
	if len(raws) != 3 {
		t.Fatalf("got %d occurrences, want 3", len(raws))
	}
	for i, raw := range raws {
		wantStart := time.Date(2025, 1, 13+i, 9, 0, 0, 0, est)
		if !raw.Start.Equal(wantStart) {
			t.Fatalf("occurrence %d start = %v, want %v", i, raw.Start, wantStart)
		}
		if got := raw.End.Sub(raw.Start); got != 30*time.Minute {
			t.Fatalf("occurrence %d duration = %v", i, got)
		}
	}
}

func TestExpandRecurringHonorsExDates(t *testing.T) {
	win, err := window.ResolveWeek("2025-01-13", est)
	if err != nil {
		t.Fatalf("ResolveWeek: %v", err)
	}
	events := []parsedEvent{
		{
			uid:      "ev-daily",
			summary:  "Standup",
			start:    time.Date(2025, 1, 13, 14, 0, 0, 0, time.UTC),
			end:      time.Date(2025, 1, 13, 14, 30, 0, 0, time.UTC),
			rawRRule: "FREQ=DAILY;COUNT=3",
			exDates:  []time.Time{time.Date(2025, 1, 14, 14, 0, 0, 0, time.UTC)},
		},
	}

	raws := expandEvents(events, win, est)
	if len(raws) != 2 {
		t.Fatalf("got %d occurrences, want 2", len(raws))
	}
	for _, raw := range raws {
		if raw.Start.Day() == 14 {
			t.Fatalf("excluded occurrence present: %v", raw.Start)
		}
	}
}

func TestExpandAppliesOverride(t *testing.T) {
	win, err := window.ResolveWeek("2025-01-13", est)
	if err != nil {
		t.Fatalf("ResolveWeek: %v", err)
	}
	rid := time.Date(2025, 1, 14, 14, 0, 0, 0, time.UTC)
	events := []parsedEvent{
		{
			uid:      "ev-daily",
			summary:  "Standup",
			start:    time.Date(2025, 1, 13, 14, 0, 0, 0, time.UTC),
			end:      time.Date(2025, 1, 13, 14, 30, 0, 0, time.UTC),
			rawRRule: "FREQ=DAILY;COUNT=2",
		},
		{
			uid:          "ev-daily",
			summary:      "Standup (moved)",
			start:        time.Date(2025, 1, 14, 16, 0, 0, 0, time.UTC),
			end:          time.Date(2025, 1, 14, 16, 30, 0, 0, time.UTC),
			recurrenceID: &rid,
		},
	}

	raws := expandEvents(events, win, est)
	if len(raws) != 2 {
		t.Fatalf("got %d occurrences, want 2", len(raws))
	}
	var moved bool
	for _, raw := range raws {
		if raw.Summary == "Standup (moved)" {
			moved = true
			if !raw.Start.Equal(time.Date(2025, 1, 14, 11, 0, 0, 0, est)) {
				t.Fatalf("override start = %v", raw.Start)
			}
		}
	}
	if !moved {
		t.Fatal("override occurrence missing")
	}
}

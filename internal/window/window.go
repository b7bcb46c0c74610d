// Package window resolves user-supplied date/time strings into concrete
// audit windows at a fixed UTC offset.
package window

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"
)

// InvalidDateError reports a date or time string that could not be
// parsed. It is local to the resolver: interactive callers recover by
// re-prompting.
type InvalidDateError struct {
	Input string
	Err   error
}

func (e *InvalidDateError) Error() string {
	return fmt.Sprintf("invalid date/time %q: %v", e.Input, e.Err)
}

func (e *InvalidDateError) Unwrap() error { return e.Err }

// Window is a closed time interval at a fixed UTC offset. Immutable
// once resolved; Start never exceeds End.
type Window struct {
	Start time.Time
	End   time.Time
}

// Seconds returns the window length used as the percentage denominator.
func (w Window) Seconds() int64 {
	return int64(w.End.Sub(w.Start) / time.Second)
}

// MultiDay reports whether the window spans more than one calendar day.
func (w Window) MultiDay() bool {
	sy, sm, sd := w.Start.Date()
	ey, em, ed := w.End.Date()
	return sy != ey || sm != em || sd != ed
}

// Days returns one full-day sub-window [d 00:00:00, d 23:59:59] for
// each calendar day of the window, inclusive of both ends.
func (w Window) Days() []Window {
	loc := w.Start.Location()
	day := time.Date(w.Start.Year(), w.Start.Month(), w.Start.Day(), 0, 0, 0, 0, loc)
	last := time.Date(w.End.Year(), w.End.Month(), w.End.Day(), 0, 0, 0, 0, loc)

	var days []Window
	for !day.After(last) {
		days = append(days, Window{
			Start: day,
			End:   day.Add(24*time.Hour - time.Second),
		})
		day = day.AddDate(0, 0, 1)
	}
	return days
}

func (w Window) String() string {
	return w.Start.Format("2006-01-02 15:04") + " - " + w.End.Format("2006-01-02 15:04")
}

// ParseOffset parses a fixed UTC offset such as "-05:00" or "+09:00"
// into a time.Location. Timezone-database lookups are out of scope; all
// window arithmetic runs at this fixed offset.
func ParseOffset(s string) (*time.Location, error) {
	v := strings.TrimSpace(s)
	if len(v) != 6 || (v[0] != '+' && v[0] != '-') || v[3] != ':' {
		return nil, fmt.Errorf("invalid UTC offset %q (want e.g. -05:00)", s)
	}
	hh, err := strconv.Atoi(v[1:3])
	if err != nil {
		return nil, fmt.Errorf("invalid UTC offset %q: %w", s, err)
	}
	mm, err := strconv.Atoi(v[4:6])
	if err != nil {
		return nil, fmt.Errorf("invalid UTC offset %q: %w", s, err)
	}
	if hh > 14 || mm > 59 {
		return nil, fmt.Errorf("invalid UTC offset %q: out of range", s)
	}
	secs := hh*3600 + mm*60
	if v[0] == '-' {
		secs = -secs
	}
	return time.FixedZone("UTC"+v, secs), nil
}

// ResolveDay resolves a single-day window from a YYYY-MM-DD date. A
// blank date means today.
func ResolveDay(date string, loc *time.Location) (Window, error) {
	return resolveDayAt(date, loc, time.Now())
}

func resolveDayAt(date string, loc *time.Location, now time.Time) (Window, error) {
	day, err := parseDate(date, loc, now)
	if err != nil {
		return Window{}, err
	}
	return Window{
		Start: day,
		End:   day.Add(24*time.Hour - time.Second),
	}, nil
}

// ResolveWeek resolves a seven-day window starting at the given
// YYYY-MM-DD date. A blank date means today.
func ResolveWeek(start string, loc *time.Location) (Window, error) {
	return resolveWeekAt(start, loc, time.Now())
}

func resolveWeekAt(start string, loc *time.Location, now time.Time) (Window, error) {
	day, err := parseDate(start, loc, now)
	if err != nil {
		return Window{}, err
	}
	return Window{
		Start: day,
		End:   day.AddDate(0, 0, 6).Add(24*time.Hour - time.Second),
	}, nil
}

// ResolveRange resolves an arbitrary datetime range. Defaults: start
// time 00:00, end date equal to the start date, end time 23:59.
func ResolveRange(startDate, startTime, endDate, endTime string, loc *time.Location) (Window, error) {
	return resolveRangeAt(startDate, startTime, endDate, endTime, loc, time.Now())
}

func resolveRangeAt(startDate, startTime, endDate, endTime string, loc *time.Location, now time.Time) (Window, error) {
	if startDate == "" {
		startDate = now.In(loc).Format(dateLayout)
	}
	if startTime == "" {
		startTime = "00:00"
	}
	if endDate == "" {
		endDate = startDate
	}
	if endTime == "" {
		endTime = "23:59"
	}

	start, err := parseDateTime(startDate, startTime, loc)
	if err != nil {
		return Window{}, err
	}
	end, err := parseDateTime(endDate, endTime, loc)
	if err != nil {
		return Window{}, err
	}
	if end.Before(start) {
		return Window{}, &InvalidDateError{
			Input: endDate + " " + endTime,
			Err:   fmt.Errorf("end precedes start"),
		}
	}
	return Window{Start: start, End: end}, nil
}

// parseDate parses a YYYY-MM-DD string into midnight at loc, defaulting
// a blank input to the current date.
func parseDate(date string, loc *time.Location, now time.Time) (time.Time, error) {
	if date == "" {
		date = now.In(loc).Format(dateLayout)
	}
	t, err := time.ParseInLocation(dateLayout, date, loc)
	if err != nil {
		return time.Time{}, &InvalidDateError{Input: date, Err: err}
	}
	return t, nil
}

func parseDateTime(date, clock string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(dateLayout+"T"+timeLayout, date+"T"+clock, loc)
	if err != nil {
		return time.Time{}, &InvalidDateError{Input: date + " " + clock, Err: err}
	}
	return t, nil
}

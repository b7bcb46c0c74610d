// Package report renders aggregated category durations as a
// fixed-width text table.
package report

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"

	"calaudit/internal/audit"
	"calaudit/internal/model"
)

const (
	headerLabel    = "Event Type"
	headerDuration = "Duration"
	headerPercent  = "% of Total"

	durationWidth = 8
	percentWidth  = 10
)

// ErrEmptyReport is returned when there are no categories to render.
// Callers short-circuit to a "no events" message instead of formatting.
var ErrEmptyReport = errors.New("report has no categories")

// Format renders the report as a bordered table with duration (H:MM)
// and percentage-of-window columns. With opts.FirstTagOnly a
// synthesized Total row is appended after a separator, showing the sum
// of all category durations.
func Format(rep audit.Report, windowSeconds int64, opts model.Options) (string, error) {
	if rep.Empty() {
		return "", ErrEmptyReport
	}
	if windowSeconds <= 0 {
		return "", fmt.Errorf("window duration must be positive, got %d", windowSeconds)
	}

	labelWidth := runewidth.StringWidth(headerLabel)
	for _, e := range rep.Entries {
		if w := runewidth.StringWidth(e.Label); w > labelWidth {
			labelWidth = w
		}
	}

	border := "+" + strings.Repeat("-", labelWidth+durationWidth+percentWidth+8) + "+"

	var b strings.Builder
	b.WriteString(border + "\n")
	b.WriteString(row(headerLabel, headerDuration, headerPercent, labelWidth) + "\n")
	b.WriteString(border + "\n")
	for _, e := range rep.Entries {
		b.WriteString(row(e.Label, formatDuration(e.Seconds), formatPercent(e.Seconds, windowSeconds), labelWidth) + "\n")
	}
	b.WriteString(border + "\n")

	if opts.FirstTagOnly {
		b.WriteString(row("Total", formatDuration(rep.Tracked), formatPercent(rep.Tracked, windowSeconds), labelWidth) + "\n")
		b.WriteString(border + "\n")
	}

	return b.String(), nil
}

func row(label, duration, percent string, labelWidth int) string {
	return "| " + center(label, labelWidth) +
		" | " + center(duration, durationWidth) +
		" | " + center(percent, percentWidth) + " |"
}

// center pads the value to the given display width, with the extra
// space on the right when the padding is odd.
func center(v string, width int) string {
	pad := width - runewidth.StringWidth(v)
	if pad <= 0 {
		return v
	}
	left := pad / 2
	return strings.Repeat(" ", left) + v + strings.Repeat(" ", pad-left)
}

// formatDuration renders seconds as H:MM by integer division.
func formatDuration(seconds int64) string {
	minutes := seconds / 60
	return fmt.Sprintf("%d:%02d", minutes/60, minutes%60)
}

func formatPercent(seconds, windowSeconds int64) string {
	return fmt.Sprintf("%.2f", float64(seconds)/float64(windowSeconds)*100)
}

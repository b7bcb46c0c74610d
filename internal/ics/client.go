package ics

import (
	"context"
	"errors"
	"sort"

	"calaudit/internal/config"
	appLog "calaudit/internal/log"
	"calaudit/internal/model"
	"calaudit/internal/window"
)

// Client is the event source for the audit engine. One Events call per
// window; decomposition reuses the returned set.
type Client struct {
	fetcher *Fetcher
	sources []Source
}

func NewClient(cfg *config.Config) *Client {
	sources := make([]Source, 0, len(cfg.ICS))
	for _, s := range cfg.ICS {
		sources = append(sources, Source{ID: s.ID, URL: s.URL})
	}
	return &Client{
		fetcher: NewFetcher(cfg.CacheDir),
		sources: sources,
	}
}

// Events fetches all subscribed calendars and returns the timed,
// already-expanded occurrences intersecting the window, sorted by start
// ascending. Per-source failures are logged and tolerated; an error is
// returned only when no source could be read at all.
func (c *Client) Events(ctx context.Context, win window.Window) ([]model.RawEvent, error) {
	if len(c.sources) == 0 {
		return nil, errors.New("no ICS sources configured")
	}

	loc := win.Start.Location()
	var events []model.RawEvent
	failed := 0

	for _, src := range c.sources {
		body, err := c.fetcher.Fetch(ctx, src)
		if err != nil {
			appLog.Error("ics fetch failed", err, "id", src.ID, "url", redactURL(src.URL))
			failed++
			continue
		}
		parsed, err := parseCalendar(src, body)
		if err != nil {
			appLog.Error("ics parse failed", err, "id", src.ID, "url", redactURL(src.URL))
			failed++
			continue
		}
		events = append(events, expandEvents(parsed, win, loc)...)
	}

	if failed == len(c.sources) {
		return nil, errors.New("all ICS sources failed")
	}

	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Start.Before(events[j].Start)
	})
	return events, nil
}

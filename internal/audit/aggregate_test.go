package audit

import (
	"reflect"
	"testing"

	"calaudit/internal/model"
)

func TestAggregateMultiCategoryGetsFullDuration(t *testing.T) {
	events := []model.NormalizedEvent{
		{Seconds: 3600, Categories: []string{"Work", "Meetings"}},
	}
	rep := Aggregate(events)

	want := []Entry{
		{Label: "Work", Seconds: 3600},
		{Label: "Meetings", Seconds: 3600},
	}
	if !reflect.DeepEqual(rep.Entries, want) {
		t.Fatalf("Entries = %v, want %v", rep.Entries, want)
	}
	if rep.Tracked != 7200 {
		t.Fatalf("Tracked = %d, want 7200", rep.Tracked)
	}
}

func TestAggregateOrdering(t *testing.T) {
	events := []model.NormalizedEvent{
		{Seconds: 1800, Categories: []string{"Email"}},
		{Seconds: 7200, Categories: []string{"Work"}},
		{Seconds: 3600, Categories: []string{"Meetings"}},
	}
	rep := Aggregate(events)

	for i := 1; i < len(rep.Entries); i++ {
		if rep.Entries[i-1].Seconds < rep.Entries[i].Seconds {
			t.Fatalf("entries not descending: %v", rep.Entries)
		}
	}
	if rep.Entries[0].Label != "Work" || rep.Entries[2].Label != "Email" {
		t.Fatalf("unexpected order: %v", rep.Entries)
	}
}

func TestAggregateTiesKeepFirstEncounterOrder(t *testing.T) {
	events := []model.NormalizedEvent{
		{Seconds: 3600, Categories: []string{"Reading"}},
		{Seconds: 3600, Categories: []string{"Errands"}},
		{Seconds: 3600, Categories: []string{"Gym"}},
	}
	rep := Aggregate(events)

	want := []string{"Reading", "Errands", "Gym"}
	for i, e := range rep.Entries {
		if e.Label != want[i] {
			t.Fatalf("entry %d = %q, want %q", i, e.Label, want[i])
		}
	}
}

func TestAggregateIdempotent(t *testing.T) {
	events := []model.NormalizedEvent{
		{Seconds: 3600, Categories: []string{"Work", "Meetings"}},
		{Seconds: 1800, Categories: []string{"Email"}},
		{Seconds: 3600, Categories: []string{"Work"}},
	}
	first := Aggregate(events)
	second := Aggregate(events)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("aggregation not idempotent: %v vs %v", first, second)
	}
}

func TestAggregateTrackedAtLeastEventSum(t *testing.T) {
	single := []model.NormalizedEvent{
		{Seconds: 3600, Categories: []string{"Work"}},
		{Seconds: 1800, Categories: []string{"Email"}},
	}
	if rep := Aggregate(single); rep.Tracked != 5400 {
		t.Fatalf("single-category Tracked = %d, want 5400", rep.Tracked)
	}

	multi := []model.NormalizedEvent{
		{Seconds: 3600, Categories: []string{"Work", "Meetings"}},
		{Seconds: 1800, Categories: []string{"Email"}},
	}
	if rep := Aggregate(multi); rep.Tracked <= 5400 {
		t.Fatalf("multi-category Tracked = %d, want > 5400", rep.Tracked)
	}
}

func TestAggregateEmpty(t *testing.T) {
	rep := Aggregate(nil)
	if !rep.Empty() {
		t.Fatal("empty input should produce an empty report")
	}
}

package storage

import (
	"testing"

	"github.com/vovakirdan/doodle/internal/core"
)

func TestRecorderSavesDeaths(t *testing.T) {
	store := openTestStore(t)
	rec := NewRecorder(store, "window", nil)

	events := []core.Event{
		{Kind: core.EventBounce, Detail: "green", Score: 3},
		{Kind: core.EventDeath, Score: 17, Level: 20, Ticks: 600},
		{Kind: core.EventDeath, Score: 0, Level: 0, Ticks: 40},
	}
	if n := rec.Record("doodle", events); n != 1 {
		t.Fatalf("Record() saved %d runs, expected 1", n)
	}

	runs, err := store.RecentRuns("doodle", 10)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("runs = %d, expected 1", len(runs))
	}
	r := runs[0]
	if r.Score != 17 || r.MaxLevel != 20 || r.Ticks != 600 || r.Source != "window" || r.RunID == "" {
		t.Errorf("run = %+v", r)
	}

	rec.Record("doodle", []core.Event{{Kind: core.EventDeath, Score: 5}})
	if rec.Saved() != 2 {
		t.Errorf("Saved() = %d, expected 2", rec.Saved())
	}
}

func TestRecorderWithoutStore(t *testing.T) {
	rec := NewRecorder(nil, "", nil)
	if n := rec.Record("doodle", []core.Event{{Kind: core.EventDeath, Score: 9}}); n != 0 {
		t.Errorf("Record() without a store saved %d runs", n)
	}
	if rec.source != "local" {
		t.Errorf("default source = %q", rec.source)
	}
}

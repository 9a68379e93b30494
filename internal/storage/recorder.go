package storage

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/doodle/internal/core"
)

// Recorder turns the death events of a game into saved runs.
// A nil store only logs.
type Recorder struct {
	store  *Store
	source string
	logger *log.Logger
	saved  int
}

// NewRecorder creates a recorder tagging every run with source.
func NewRecorder(store *Store, source string, logger *log.Logger) *Recorder {
	if source == "" {
		source = "local"
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Recorder{store: store, source: source, logger: logger}
}

// Record logs events and saves a run for each death with a positive score.
// It returns how many runs were saved.
func (r *Recorder) Record(gameID string, events []core.Event) int {
	saved := 0
	for _, e := range events {
		r.logger.Debug(e.Kind.String(), "game", gameID, "detail", e.Detail, "score", e.Score, "level", e.Level)

		if e.Kind != core.EventDeath {
			continue
		}
		r.logger.Info("run finished", "game", gameID, "score", e.Score, "level", e.Level, "ticks", e.Ticks)
		if r.store == nil || e.Score == 0 {
			continue
		}
		runID, err := r.store.SaveRun(Run{
			GameID:   gameID,
			Score:    e.Score,
			MaxLevel: e.Level,
			Ticks:    e.Ticks,
			Source:   r.source,
		})
		if err != nil {
			r.logger.Error("could not save run", "error", err)
			continue
		}
		r.logger.Debug("run saved", "run_id", runID)
		saved++
	}
	r.saved += saved
	return saved
}

// Saved returns the number of runs saved so far.
func (r *Recorder) Saved() int {
	return r.saved
}

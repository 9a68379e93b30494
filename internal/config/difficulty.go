package config

import "github.com/vovakirdan/doodle/internal/core"

// DifficultyManager computes the ambient drop: the downward drift applied to every
// platform each tick. It grows linearly with score and is capped.
type DifficultyManager struct {
	cfg DifficultyConfig
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	return &DifficultyManager{cfg: cfg}
}

// IsEnabled returns whether the ambient drop is active.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled
}

// Drop returns the per-tick ambient drop for the given score:
// min(score * speed_up, max_drop), never negative.
func (d *DifficultyManager) Drop(score int) float64 {
	if !d.cfg.Enabled || score <= 0 {
		return 0
	}
	return core.ClampF(float64(score)*d.cfg.SpeedUp, 0, d.cfg.MaxDrop)
}

// Level returns the drop as a fraction of its cap (0.0 to 1.0), for HUD display.
func (d *DifficultyManager) Level(score int) float64 {
	if d.cfg.MaxDrop <= 0 {
		return 0
	}
	return core.ClampF(d.Drop(score)/d.cfg.MaxDrop, 0, 1)
}

package doodle

import (
	"github.com/vovakirdan/doodle/internal/config"
	"github.com/vovakirdan/doodle/internal/core"
)

// PlayerView is the drawable state of the player.
type PlayerView struct {
	Pos  core.Vec2 // bottom-center
	Pose Pose
}

// PlatformView is the drawable state of a platform.
type PlatformView struct {
	Pos    core.Vec2 // top-center
	Kind   PlatformKind
	Broken bool
}

// SpringView is the drawable state of a spring, owned or freestanding.
type SpringView struct {
	Pos      core.Vec2 // bottom-center
	Released bool
}

// Snapshot is a read-only copy of everything a frontend needs to draw a tick.
type Snapshot struct {
	Width     float64
	Height    float64
	Sizes     config.DoodleSizes
	Player    PlayerView
	Platforms []PlatformView
	Springs   []SpringView
	Score     int
	Level     int
	Tick      int
	Run       int
	Drop      float64
	DropLevel float64 // Drop as a fraction of its cap
	Drifting  bool    // false when the ambient drop is disabled
	Paused    bool
	Flash     string
}

// Snapshot copies the drawable state of the current run.
func (s *Session) Snapshot() Snapshot {
	snap := Snapshot{
		Width:     s.cfg.World.Width,
		Height:    s.cfg.World.Height,
		Sizes:     s.cfg.Sizes,
		Player:    PlayerView{Pos: s.player.Pos, Pose: s.player.Pose()},
		Platforms: make([]PlatformView, 0, len(s.platforms)),
		Springs:   make([]SpringView, 0, len(s.springs)+4),
		Score:     s.score,
		Level:     s.player.HighestLevel,
		Tick:      s.ticks,
		Run:       s.runs,
		Drop:      s.Drop(),
		DropLevel: s.DropLevel(),
		Drifting:  s.difficulty.IsEnabled(),
	}
	for _, p := range s.platforms {
		snap.Platforms = append(snap.Platforms, PlatformView{Pos: p.Pos, Kind: p.Kind, Broken: p.Broken})
		if p.Spring != nil {
			snap.Springs = append(snap.Springs, SpringView{Pos: p.Spring.Pos, Released: p.Spring.Released})
		}
	}
	for _, sp := range s.springs {
		snap.Springs = append(snap.Springs, SpringView{Pos: sp.Pos, Released: sp.Released})
	}
	return snap
}

package doodle

import (
	"math"

	"github.com/vovakirdan/doodle/internal/config"
	"github.com/vovakirdan/doodle/internal/core"
)

// AdvanceWorld scrolls, drops, culls and tops up the world, then checks for
// death. It reports whether the player died, in which case the session has
// already been reset to a fresh run.
func AdvanceWorld(s *Session) bool {
	s.scroll()

	if drop := s.Drop(); drop > 0 {
		s.shiftEntities(drop)
	}

	s.cull()
	s.topUp()

	if s.player.Top(s.cfg.Sizes.PlayerHeight) > s.cfg.World.Height {
		s.sink.OnDeath(s.score)
		s.Reset()
		return true
	}
	return false
}

// scroll moves the camera up after the player by shifting everything down.
func (s *Session) scroll() {
	sc := s.cfg.Scroll
	y := s.player.Pos.Y

	switch sc.Mode {
	case config.ScrollSnap:
		if y-sc.SnapMargin > 0 || !s.player.JustLanded {
			return
		}
		dy := s.cfg.World.Height - sc.SnapMargin
		s.shiftEntities(dy)
		s.player.Pos.Y += dy
		for top := math.Trunc(s.player.Pos.Y - sc.SnapMargin); top > 0; top -= s.cfg.Generation.Step {
			s.spawn(top)
		}
	case config.ScrollPull:
		if y >= sc.PullZone {
			return
		}
		dy := (sc.PullZone - y) / sc.PullZone * sc.CatchUp
		s.shiftEntities(dy)
		s.player.Pos.Y += dy
	}
}

// shiftEntities moves every platform and spring down by dy.
func (s *Session) shiftEntities(dy float64) {
	d := core.V(0, dy)
	for i := range s.platforms {
		s.platforms[i].Pos = s.platforms[i].Pos.Add(d)
		s.platforms[i].syncSpring()
	}
	for i := range s.springs {
		s.springs[i].Pos = s.springs[i].Pos.Add(d)
	}
}

// cull drops everything below the bottom edge, keeping spawn order.
func (s *Session) cull() {
	h := s.cfg.World.Height

	valid := s.platforms[:0]
	for _, p := range s.platforms {
		if p.Pos.Y <= h {
			valid = append(valid, p)
		}
	}
	s.platforms = valid

	springs := s.springs[:0]
	for _, sp := range s.springs {
		if sp.Pos.Y <= h {
			springs = append(springs, sp)
		}
	}
	s.springs = springs
}

// topUp adds one platform above the highest one while there is room under the
// spawn ceiling. An empty world gets a platform at the ceiling.
func (s *Session) topUp() {
	gen := s.cfg.Generation
	if len(s.platforms) == 0 {
		s.spawn(gen.SpawnCeiling)
		return
	}

	top := s.platforms[0].Pos.Y
	for _, p := range s.platforms[1:] {
		top = math.Min(top, p.Pos.Y)
	}
	if y := top - gen.Step; y >= gen.SpawnCeiling {
		s.spawn(y)
	}
}

func (s *Session) spawn(y float64) {
	p, free := s.gen.PlatformAt(y)
	s.platforms = append(s.platforms, p)
	if free != nil {
		s.springs = append(s.springs, *free)
	}
}

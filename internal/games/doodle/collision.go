package doodle

import "math"

// Contact is the outcome of collision resolution for one tick.
type Contact int

const (
	ContactNone   Contact = iota
	ContactBounce         // landed on a platform
	ContactSpring         // released a spring
)

// ResolveCollisions applies at most one bounce outcome to the player.
//
// Springs are tested first. A spring hit releases the spring and launches the
// player with a boosted jump without scoring. Otherwise, while falling,
// platforms are tested in spawn order and the first one touched decides the
// tick. An unbroken red platform breaks and absorbs the contact. A broken one
// is ignored. Any other platform bounces the player, snaps them onto its top
// and scores the level gain.
func ResolveCollisions(s *Session) Contact {
	if s.resolveSprings() {
		return ContactSpring
	}

	p := &s.player
	if p.Vel.Y <= 0 {
		return ContactNone
	}

	sz := s.cfg.Sizes
	tol := s.cfg.Collision.Tolerance
	reach := (sz.PlayerWidth + sz.PlatformWidth) / 2

	for i := range s.platforms {
		plat := &s.platforms[i]
		if math.Abs(p.Pos.Y-plat.Pos.Y) >= tol || math.Abs(p.Pos.X-plat.Pos.X) >= reach {
			continue
		}

		if plat.Kind == KindRed {
			if plat.Break() {
				s.sink.OnBreak()
				return ContactNone
			}
			continue
		}

		p.Vel.Y = -s.cfg.Physics.JumpSpeed
		if gain := plat.Level - p.HighestLevel; gain > 0 {
			s.score += gain
			p.HighestLevel = plat.Level
		}
		p.Pos.Y = plat.Pos.Y
		p.JustLanded = true
		s.sink.OnBounce(plat.Kind)
		return ContactBounce
	}
	return ContactNone
}

// resolveSprings handles owned springs then freestanding ones. Owned springs
// need the player falling; freestanding springs also fire at the apex.
func (s *Session) resolveSprings() bool {
	p := &s.player
	jump := s.cfg.Physics.JumpSpeed
	coll := s.cfg.Collision

	if p.Vel.Y > 0 {
		for i := range s.platforms {
			sp := s.platforms[i].Spring
			if sp == nil || sp.Released || !s.touchesSpring(*sp) {
				continue
			}
			sp.Release()
			p.Vel.Y = -jump * coll.SpringBoost
			s.sink.OnSpringRelease()
			return true
		}
	}

	if p.Vel.Y >= 0 {
		for i := range s.springs {
			sp := &s.springs[i]
			if sp.Released || !s.touchesSpring(*sp) {
				continue
			}
			sp.Release()
			p.Vel.Y = -jump * coll.FreeSpringBoost
			s.sink.OnSpringRelease()
			return true
		}
	}
	return false
}

func (s *Session) touchesSpring(sp Spring) bool {
	sz := s.cfg.Sizes
	p := s.player
	return math.Abs(p.Pos.Y-sp.Top(sz.SpringHeight)) < s.cfg.Collision.Tolerance &&
		math.Abs(p.Pos.X-sp.Pos.X) < (sz.PlayerWidth+sz.SpringWidth)/2
}

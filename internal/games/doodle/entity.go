// Package doodle implements an endless vertical platformer.
// The player bounces between procedurally placed platforms while the world
// scrolls down under them. Springs give boosted jumps and red platforms break
// on the first landing.
//
// Coordinates are logical world units with +Y pointing down. The simulation is
// deterministic for a given seed and input sequence.
package doodle

import "github.com/vovakirdan/doodle/internal/core"

// Facing is the horizontal direction the player last moved in.
type Facing int

const (
	FacingLeft Facing = iota
	FacingRight
)

// Pose selects the player sprite. It is presentational only.
type Pose int

const (
	PoseIdleLeft Pose = iota
	PoseIdleRight
	PoseJumpLeft
	PoseJumpRight
)

// Player is anchored at its bottom-center.
type Player struct {
	Pos          core.Vec2
	Vel          core.Vec2
	Facing       Facing
	HighestLevel int  // highest platform level landed on this run
	JustLanded   bool // set by collision during the tick a bounce happened
}

// Top returns the y of the player's top edge.
func (p Player) Top(height float64) float64 {
	return p.Pos.Y - height
}

// Rising reports whether the player is moving up the screen.
func (p Player) Rising() bool {
	return p.Vel.Y < 0
}

// Pose derives the sprite from facing and vertical direction.
// Rising uses the idle sprite, falling uses the jump sprite.
func (p Player) Pose() Pose {
	if p.Facing == FacingLeft {
		if p.Rising() {
			return PoseIdleLeft
		}
		return PoseJumpLeft
	}
	if p.Rising() {
		return PoseIdleRight
	}
	return PoseJumpRight
}

// PlatformKind discriminates platform behavior.
type PlatformKind int

const (
	KindGreen PlatformKind = iota
	KindBlue
	KindRed
	KindGreenWithSpring
)

// String returns the kind name used in events and logs.
func (k PlatformKind) String() string {
	switch k {
	case KindGreen:
		return "green"
	case KindBlue:
		return "blue"
	case KindRed:
		return "red"
	case KindGreenWithSpring:
		return "spring"
	default:
		return "unknown"
	}
}

// Platform is anchored at its top-center.
// Spring is non-nil only for KindGreenWithSpring.
type Platform struct {
	Pos    core.Vec2
	Kind   PlatformKind
	Level  int
	Speed  float64 // horizontal, nonzero only for blue
	Broken bool
	Spring *Spring
}

// Break marks a red platform broken. It reports whether the state changed.
func (p *Platform) Break() bool {
	if p.Kind != KindRed || p.Broken {
		return false
	}
	p.Broken = true
	return true
}

// syncSpring moves an owned spring back onto its platform.
func (p *Platform) syncSpring() {
	if p.Spring != nil {
		p.Spring.Pos = p.Pos.Add(p.Spring.Offset)
	}
}

// Spring is anchored at its bottom-center. Owned springs keep a fixed Offset
// from their platform; freestanding springs ignore it.
type Spring struct {
	Pos      core.Vec2
	Offset   core.Vec2
	Released bool
}

// Release fires the spring. It reports whether the state changed.
func (s *Spring) Release() bool {
	if s.Released {
		return false
	}
	s.Released = true
	return true
}

// Top returns the y of the spring's top edge.
func (s Spring) Top(height float64) float64 {
	return s.Pos.Y - height
}

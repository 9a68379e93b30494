package doodle

import (
	"github.com/vovakirdan/doodle/internal/config"
	"github.com/vovakirdan/doodle/internal/core"
)

// Input is the directional state held during one tick.
type Input struct {
	Left  bool
	Right bool
}

// InputFromFrame extracts the held directions from a platform input frame.
func InputFromFrame(in core.InputFrame) Input {
	return Input{Left: in.Has(core.ActionLeft), Right: in.Has(core.ActionRight)}
}

// Horizontal returns -1, 0 or +1. Left wins when both are held.
func (in Input) Horizontal() int {
	switch {
	case in.Left:
		return -1
	case in.Right:
		return 1
	default:
		return 0
	}
}

// StepPlayer advances the player one tick.
//
// Horizontal velocity is set directly from input. Vertically the velocity
// gains gravity first and the position then moves by velocity plus half a
// gravity step. The world wraps horizontally.
func StepPlayer(p *Player, in Input, ph config.DoodlePhysics, width float64) {
	p.JustLanded = false

	switch in.Horizontal() {
	case -1:
		p.Vel.X = -ph.MoveSpeed
		p.Facing = FacingLeft
	case 1:
		p.Vel.X = ph.MoveSpeed
		p.Facing = FacingRight
	default:
		p.Vel.X = 0
	}

	p.Vel.Y += ph.Gravity
	p.Pos = p.Pos.Add(p.Vel).Add(core.V(0, 0.5*ph.Gravity))
	p.Pos.X = core.WrapF(p.Pos.X, width)
}

// UpdatePlatforms runs the per-tick platform behavior: blue platforms bounce
// between the world edges, owned springs follow their platform.
func UpdatePlatforms(platforms []Platform, platformWidth, width float64) {
	half := platformWidth / 2
	for i := range platforms {
		p := &platforms[i]
		if p.Speed != 0 {
			if !(half < p.Pos.X && p.Pos.X < width-half) {
				p.Speed = -p.Speed
			}
			p.Pos.X += p.Speed
		}
		p.syncSpring()
	}
}

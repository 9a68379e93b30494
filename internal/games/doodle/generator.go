package doodle

import (
	"math"
	"math/rand"

	"github.com/vovakirdan/doodle/internal/config"
	"github.com/vovakirdan/doodle/internal/core"
)

// Generator places new platforms. Every platform it creates gets the next
// level index, so levels strictly increase in spawn order.
type Generator struct {
	rng       *rand.Rand
	cfg       config.DoodleConfig
	nextLevel int
}

// NewGenerator creates a generator with the given RNG seed.
func NewGenerator(seed int64, cfg config.DoodleConfig) *Generator {
	g := &Generator{cfg: cfg}
	g.Reset(seed)
	return g
}

// Reset reseeds the RNG and restarts level numbering at 1.
func (g *Generator) Reset(seed int64) {
	g.rng = rand.New(rand.NewSource(seed))
	g.nextLevel = 1
}

// SetConfig replaces the generation parameters.
func (g *Generator) SetConfig(cfg config.DoodleConfig) {
	g.cfg = cfg
}

// XRange returns the bounds of generated platform centers. Platforms placed
// inside it never overhang the world edges.
func (g *Generator) XRange() (lo, hi float64) {
	half := g.cfg.Sizes.PlatformWidth / 2
	return math.Ceil(half), math.Floor(g.cfg.World.Width - half)
}

// PlatformAt creates the next platform with its top at y.
// Under the two_stage policy a green platform may come with a freestanding
// spring, returned separately; it is nil otherwise.
func (g *Generator) PlatformAt(y float64) (Platform, *Spring) {
	lo, hi := g.XRange()
	x := lo + g.rng.Float64()*(hi-lo)

	p := Platform{
		Pos:   core.V(x, y),
		Kind:  g.pickKind(),
		Level: g.nextLevel,
	}
	g.nextLevel++

	var free *Spring
	switch p.Kind {
	case KindBlue:
		p.Speed = g.cfg.Physics.BlueSpeed
	case KindGreenWithSpring:
		p.Spring = &Spring{Offset: core.V(g.springJitter(), g.cfg.Generation.SpringYOffset)}
		p.syncSpring()
	case KindGreen:
		gen := g.cfg.Generation
		if gen.Policy == config.PolicyTwoStage && gen.SpringOneIn > 0 && g.rng.Intn(gen.SpringOneIn) == 0 {
			free = &Spring{Pos: core.V(x+g.springJitter(), y+gen.SpringYOffset)}
		}
	}
	return p, free
}

// pickKind draws a kind by weight. two_stage never yields KindGreenWithSpring.
func (g *Generator) pickKind() PlatformKind {
	gen := g.cfg.Generation
	w := gen.Weights
	r := g.rng.Intn(w.Total(gen.Policy))

	if r < w.Green {
		return KindGreen
	}
	r -= w.Green
	if r < w.Blue {
		return KindBlue
	}
	r -= w.Blue
	if r < w.Red {
		return KindRed
	}
	return KindGreenWithSpring
}

// springJitter returns a horizontal spring offset that keeps the spring over
// its platform.
func (g *Generator) springJitter() float64 {
	span := (g.cfg.Sizes.PlatformWidth - g.cfg.Sizes.SpringWidth) / 2
	return (g.rng.Float64()*2 - 1) * span
}

// Stack builds the initial platform column: a green level 0 platform under
// the spawn point, then one platform every step up to the top of the world.
func (g *Generator) Stack(spawn core.Vec2) ([]Platform, []Spring) {
	platforms := make([]Platform, 0, 16)
	springs := make([]Spring, 0, 4)

	platforms = append(platforms, Platform{Pos: spawn, Kind: KindGreen, Level: 0})
	for y := math.Trunc(spawn.Y - g.cfg.Generation.Step); y > 0; y -= g.cfg.Generation.Step {
		p, free := g.PlatformAt(y)
		platforms = append(platforms, p)
		if free != nil {
			springs = append(springs, *free)
		}
	}
	return platforms, springs
}

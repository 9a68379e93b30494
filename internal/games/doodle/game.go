package doodle

import (
	"fmt"

	"github.com/vovakirdan/doodle/internal/config"
	"github.com/vovakirdan/doodle/internal/core"
	"github.com/vovakirdan/doodle/internal/registry"
)

// flashDuration is how many ticks a HUD message stays up.
const flashDuration = 45

// Game adapts a Session to the platform Game interface.
type Game struct {
	variant string
	cfg     config.DoodleConfig
	session *Session
	events  *collector
	paused  bool

	flash      string
	flashTicks int
	best       int
}

// New creates a game of the given variant with its built-in configuration.
func New(variant string) *Game {
	return &Game{
		variant: variant,
		cfg:     config.DefaultFor(variant),
		events:  &collector{},
	}
}

// ID returns the variant identifier.
func (g *Game) ID() string {
	return g.variant
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.variant == config.VariantClassic {
		return "Doodle Classic"
	}
	return "Doodle"
}

// Description returns a one-line summary of the rule set.
func (g *Game) Description() string {
	if g.variant == config.VariantClassic {
		return "6:3:1 platforms, freestanding springs, snap scroll"
	}
	return "10:4:3:2 platforms, springs on platforms, smooth scroll"
}

// Configure replaces the configuration. A running game picks it up at its
// next run; before Reset it applies immediately.
func (g *Game) Configure(cfg config.DoodleConfig) {
	g.cfg = cfg
	if g.session != nil {
		g.session.SetConfig(cfg)
	}
}

// Config returns the configuration the game was last given.
func (g *Game) Config() config.DoodleConfig {
	return g.cfg
}

// Reset starts a new session seeded from cfg.Seed.
// Screen size does not matter; the world has fixed logical dimensions.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.events.drain()
	g.session = NewSession(g.cfg, cfg.Seed, g.events)
	g.events.session = g.session
	g.paused = false
	g.flash = ""
	g.flashTicks = 0
}

// Step advances the game by one tick. Pause freezes the world, Restart
// abandons the current run. Death restarts automatically and is reported as
// an EventDeath.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionRestart) {
		g.session.Reset()
	}

	g.session.Tick(InputFromFrame(in))
	events := g.events.drain()
	g.updateFlash(events)

	return core.StepResult{State: g.State(), Events: events}
}

func (g *Game) updateFlash(events []core.Event) {
	if g.flashTicks > 0 {
		g.flashTicks--
		if g.flashTicks == 0 {
			g.flash = ""
		}
	}

	for _, e := range events {
		switch e.Kind {
		case core.EventSpring:
			g.setFlash("BOING!")
		case core.EventBreak:
			g.setFlash("CRACK")
		case core.EventDeath:
			if e.Score > g.best {
				g.best = e.Score
				g.setFlash(fmt.Sprintf("NEW BEST %d", e.Score))
			} else {
				g.setFlash(fmt.Sprintf("FELL AT %d", e.Score))
			}
		}
	}
}

func (g *Game) setFlash(msg string) {
	g.flash = msg
	g.flashTicks = flashDuration
}

// State returns the current game state. The game is endless, so GameOver is
// never set.
func (g *Game) State() core.GameState {
	if g.session == nil {
		return core.GameState{Paused: g.paused}
	}
	return core.GameState{
		Score:  g.session.Score(),
		Level:  g.session.Player().HighestLevel,
		Run:    g.session.Runs(),
		Paused: g.paused,
	}
}

// Session exposes the underlying simulation.
func (g *Game) Session() *Session {
	return g.session
}

// Snapshot returns the drawable state including HUD overlays.
func (g *Game) Snapshot() Snapshot {
	snap := g.session.Snapshot()
	snap.Paused = g.paused
	snap.Flash = g.flash
	return snap
}

// Best returns the best score known to the game.
func (g *Game) Best() int {
	return g.best
}

// SetBest seeds the best score, usually from run history. Lower scores are ignored.
func (g *Game) SetBest(score int) {
	g.best = max(g.best, score)
}

// collector turns session notifications into core events for the current tick.
type collector struct {
	session *Session
	events  []core.Event
}

func (c *collector) add(kind core.EventKind, detail string, score int) {
	e := core.Event{Kind: kind, Detail: detail, Score: score}
	if c.session != nil {
		e.Level = c.session.player.HighestLevel
		e.Ticks = c.session.ticks
	}
	c.events = append(c.events, e)
}

func (c *collector) score() int {
	if c.session == nil {
		return 0
	}
	return c.session.score
}

func (c *collector) OnBounce(kind PlatformKind) { c.add(core.EventBounce, kind.String(), c.score()) }
func (c *collector) OnSpringRelease()           { c.add(core.EventSpring, "", c.score()) }
func (c *collector) OnBreak()                   { c.add(core.EventBreak, KindRed.String(), c.score()) }
func (c *collector) OnDeath(score int)          { c.add(core.EventDeath, "", score) }

// drain returns the collected events and starts a new batch.
func (c *collector) drain() []core.Event {
	events := c.events
	c.events = nil
	return events
}

func init() {
	for _, variant := range []string{config.VariantDoodle, config.VariantClassic} {
		v := variant
		registry.Register(v, func() registry.Game {
			return New(v)
		})
	}
}

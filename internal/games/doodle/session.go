package doodle

import (
	"math/rand"

	"github.com/vovakirdan/doodle/internal/config"
	"github.com/vovakirdan/doodle/internal/core"
)

// EventSink receives discrete notifications from the simulation.
// Calls happen synchronously inside Tick; the session ignores what the sink
// does with them.
type EventSink interface {
	OnBounce(kind PlatformKind)
	OnSpringRelease()
	OnBreak()
	OnDeath(score int)
}

// NopSink discards all events.
type NopSink struct{}

func (NopSink) OnBounce(PlatformKind) {}
func (NopSink) OnSpringRelease()      {}
func (NopSink) OnBreak()              {}
func (NopSink) OnDeath(int)           {}

// TickResult summarizes one tick.
type TickResult struct {
	Contact Contact
	Died    bool
	Score   int // score at the end of the tick, after a reset if Died
}

// Session owns the whole world state of a run: the player, the live
// platforms and freestanding springs, the score and the generator.
type Session struct {
	cfg        config.DoodleConfig
	pending    *config.DoodleConfig
	seeds      *rand.Rand
	gen        *Generator
	difficulty *config.DifficultyManager
	sink       EventSink

	player    Player
	platforms []Platform
	springs   []Spring
	score     int
	ticks     int
	runs      int
}

// NewSession creates a session and starts its first run.
// A nil sink discards events.
func NewSession(cfg config.DoodleConfig, seed int64, sink EventSink) *Session {
	if sink == nil {
		sink = NopSink{}
	}
	s := &Session{
		cfg:        cfg,
		seeds:      rand.New(rand.NewSource(seed)),
		difficulty: config.NewDifficultyManager(cfg.Difficulty),
		sink:       sink,
	}
	s.gen = NewGenerator(0, cfg)
	s.Reset()
	return s
}

// Reset discards the current run and starts a new one. Each run draws its
// generator seed from the session seed stream, so a session replays exactly.
// A config queued with SetConfig takes effect here.
func (s *Session) Reset() {
	if s.pending != nil {
		s.cfg = *s.pending
		s.pending = nil
		s.gen.SetConfig(s.cfg)
		s.difficulty = config.NewDifficultyManager(s.cfg.Difficulty)
	}
	s.gen.Reset(s.seeds.Int63())

	s.player = Player{
		Pos:    s.SpawnPoint(),
		Vel:    core.V(0, -s.cfg.Physics.JumpSpeed),
		Facing: FacingLeft,
	}
	s.platforms, s.springs = s.gen.Stack(s.player.Pos)
	s.score = 0
	s.ticks = 0
	s.runs++
}

// SetConfig queues cfg for the next Reset.
func (s *Session) SetConfig(cfg config.DoodleConfig) {
	s.pending = &cfg
}

// Tick advances the world by one step: physics, platform update, collision,
// then scroll and cull.
func (s *Session) Tick(in Input) TickResult {
	s.ticks++

	StepPlayer(&s.player, in, s.cfg.Physics, s.cfg.World.Width)
	UpdatePlatforms(s.platforms, s.cfg.Sizes.PlatformWidth, s.cfg.World.Width)
	contact := ResolveCollisions(s)
	died := AdvanceWorld(s)

	return TickResult{Contact: contact, Died: died, Score: s.score}
}

// SpawnPoint returns where the player starts each run.
func (s *Session) SpawnPoint() core.Vec2 {
	return core.V(s.cfg.World.Width/2, s.cfg.World.Height-s.cfg.World.SpawnOffset)
}

// Player returns a copy of the player.
func (s *Session) Player() Player { return s.player }

// Platforms returns the live platforms in spawn order. The slice is owned by
// the session and must not be modified.
func (s *Session) Platforms() []Platform { return s.platforms }

// Springs returns the live freestanding springs in spawn order.
func (s *Session) Springs() []Spring { return s.springs }

// Score returns the score of the current run.
func (s *Session) Score() int { return s.score }

// Ticks returns the number of ticks in the current run.
func (s *Session) Ticks() int { return s.ticks }

// Runs returns how many runs this session has started, counting the current one.
func (s *Session) Runs() int { return s.runs }

// Config returns the active configuration.
func (s *Session) Config() config.DoodleConfig { return s.cfg }

// Drop returns the current ambient drop per tick.
func (s *Session) Drop() float64 { return s.difficulty.Drop(s.score) }

// DropLevel returns the ambient drop as a fraction of its cap.
func (s *Session) DropLevel() float64 { return s.difficulty.Level(s.score) }

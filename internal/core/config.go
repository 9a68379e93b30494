package core

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to screen size and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second (default 60)
	Seed     int64 // RNG seed for deterministic gameplay
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// GameState represents the current state of a game.
type GameState struct {
	Score    int  // Current score
	Level    int  // Highest platform level reached this run
	Run      int  // 1-based run counter, increments on every restart
	GameOver bool // Whether the game has ended (endless games never set this)
	Paused   bool // Whether the game is paused
}

// EventKind discriminates Event values.
type EventKind int

const (
	EventBounce EventKind = iota // Player bounced off a platform; Detail holds the platform kind
	EventSpring                  // A spring was released under the player
	EventBreak                   // A breakable platform broke
	EventDeath                   // The player fell out of view; Score holds the final score
)

// String returns the event name.
func (k EventKind) String() string {
	switch k {
	case EventBounce:
		return "bounce"
	case EventSpring:
		return "spring"
	case EventBreak:
		return "break"
	case EventDeath:
		return "death"
	default:
		return "unknown"
	}
}

// Event is a discrete notification from a simulation tick. Frontends may use them
// to play a sound, flash the HUD or persist a score; games never wait on them.
type Event struct {
	Kind   EventKind
	Detail string
	Score  int
	Level  int
	Ticks  int
}

// StepResult is returned by Game.Step() after each simulation tick.
// Contains the updated game state and any events that occurred.
type StepResult struct {
	State  GameState
	Events []Event
}

// Has reports whether the result contains an event of the given kind.
func (r StepResult) Has(kind EventKind) bool {
	for _, e := range r.Events {
		if e.Kind == kind {
			return true
		}
	}
	return false
}

// Package config provides YAML/TOML game configuration loading, variant presets
// and difficulty (ambient drop) management for doodle.
package config

import (
	"errors"
	"fmt"
)

// Variant identifiers. Each names a complete, self-consistent rule set.
const (
	VariantDoodle  = "doodle"         // weighted generation, owned springs, pull scroll
	VariantClassic = "doodle_classic" // two-stage generation, freestanding springs, snap scroll
)

// Generation policies.
const (
	PolicyWeighted = "weighted"
	PolicyTwoStage = "two_stage"
)

// Scroll modes.
const (
	ScrollSnap = "snap"
	ScrollPull = "pull"
)

// DoodleConfig contains all configuration for one doodle variant.
type DoodleConfig struct {
	World      DoodleWorld      `yaml:"world" toml:"world"`
	Physics    DoodlePhysics    `yaml:"physics" toml:"physics"`
	Sizes      DoodleSizes      `yaml:"sizes" toml:"sizes"`
	Generation DoodleGeneration `yaml:"generation" toml:"generation"`
	Collision  DoodleCollision  `yaml:"collision" toml:"collision"`
	Scroll     DoodleScroll     `yaml:"scroll" toml:"scroll"`
	Difficulty DifficultyConfig `yaml:"difficulty" toml:"difficulty"`
}

// DoodleWorld defines the logical playfield.
type DoodleWorld struct {
	Width       float64 `yaml:"width" toml:"width"`
	Height      float64 `yaml:"height" toml:"height"`
	SpawnOffset float64 `yaml:"spawn_offset" toml:"spawn_offset"` // player spawns this far above the bottom edge
}

// DoodlePhysics defines per-tick motion constants.
type DoodlePhysics struct {
	Gravity   float64 `yaml:"gravity" toml:"gravity"`
	JumpSpeed float64 `yaml:"jump_speed" toml:"jump_speed"`
	MoveSpeed float64 `yaml:"move_speed" toml:"move_speed"`
	BlueSpeed float64 `yaml:"blue_speed" toml:"blue_speed"`
}

// DoodleSizes defines entity hitbox sizes in world units.
type DoodleSizes struct {
	PlayerWidth    float64 `yaml:"player_width" toml:"player_width"`
	PlayerHeight   float64 `yaml:"player_height" toml:"player_height"`
	PlatformWidth  float64 `yaml:"platform_width" toml:"platform_width"`
	PlatformHeight float64 `yaml:"platform_height" toml:"platform_height"`
	SpringWidth    float64 `yaml:"spring_width" toml:"spring_width"`
	SpringHeight   float64 `yaml:"spring_height" toml:"spring_height"`
}

// DoodleGeneration defines the platform spawning policy.
type DoodleGeneration struct {
	Policy        string      `yaml:"policy" toml:"policy"`
	Step          float64     `yaml:"step" toml:"step"`
	Weights       KindWeights `yaml:"weights" toml:"weights"`
	SpringOneIn   int         `yaml:"spring_one_in" toml:"spring_one_in"` // two_stage only
	SpringYOffset float64     `yaml:"spring_y_offset" toml:"spring_y_offset"`
	SpawnCeiling  float64     `yaml:"spawn_ceiling" toml:"spawn_ceiling"`
}

// KindWeights are relative platform kind weights. Spring is ignored by two_stage.
type KindWeights struct {
	Green  int `yaml:"green" toml:"green"`
	Blue   int `yaml:"blue" toml:"blue"`
	Red    int `yaml:"red" toml:"red"`
	Spring int `yaml:"spring" toml:"spring"`
}

// Total returns the sum of the weights that apply to the given policy.
func (w KindWeights) Total(policy string) int {
	total := w.Green + w.Blue + w.Red
	if policy == PolicyWeighted {
		total += w.Spring
	}
	return total
}

// DoodleCollision defines contact resolution constants.
type DoodleCollision struct {
	Tolerance       float64 `yaml:"tolerance" toml:"tolerance"`
	SpringBoost     float64 `yaml:"spring_boost" toml:"spring_boost"`
	FreeSpringBoost float64 `yaml:"free_spring_boost" toml:"free_spring_boost"`
}

// DoodleScroll defines the camera catch-up policy.
type DoodleScroll struct {
	Mode       string  `yaml:"mode" toml:"mode"`
	SnapMargin float64 `yaml:"snap_margin" toml:"snap_margin"`
	PullZone   float64 `yaml:"pull_zone" toml:"pull_zone"`
	CatchUp    float64 `yaml:"catch_up" toml:"catch_up"`
}

// DifficultyConfig defines the ambient drop progression.
type DifficultyConfig struct {
	Enabled bool    `yaml:"enabled" toml:"enabled"`
	SpeedUp float64 `yaml:"speed_up" toml:"speed_up"` // drop per tick added per point of score
	MaxDrop float64 `yaml:"max_drop" toml:"max_drop"`
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset maps a CLI string to a preset. Unknown values yield "".
func ParsePreset(s string) DifficultyPreset {
	switch DifficultyPreset(s) {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return DifficultyPreset(s)
	default:
		return ""
	}
}

// ErrInvalidConfig is wrapped by every Validate failure.
var ErrInvalidConfig = errors.New("config: invalid doodle config")

// Validate checks the invariants the simulation relies on.
func (c DoodleConfig) Validate() error {
	switch {
	case c.World.Width <= 0 || c.World.Height <= 0:
		return fmt.Errorf("%w: world size must be positive", ErrInvalidConfig)
	case c.Sizes.PlayerWidth <= 0 || c.Sizes.PlayerHeight <= 0:
		return fmt.Errorf("%w: player size must be positive", ErrInvalidConfig)
	case c.Sizes.PlatformWidth <= 0 || c.Sizes.PlatformWidth > c.World.Width:
		return fmt.Errorf("%w: platform width must be in (0, world width]", ErrInvalidConfig)
	case c.Sizes.SpringWidth <= 0 || c.Sizes.SpringWidth > c.Sizes.PlatformWidth:
		return fmt.Errorf("%w: spring width must be in (0, platform width]", ErrInvalidConfig)
	case c.Physics.Gravity <= 0 || c.Physics.JumpSpeed <= 0:
		return fmt.Errorf("%w: gravity and jump speed must be positive", ErrInvalidConfig)
	case c.Generation.Step <= 0:
		return fmt.Errorf("%w: generation step must be positive", ErrInvalidConfig)
	case c.Generation.Policy != PolicyWeighted && c.Generation.Policy != PolicyTwoStage:
		return fmt.Errorf("%w: unknown generation policy %q", ErrInvalidConfig, c.Generation.Policy)
	case c.Generation.Weights.Total(c.Generation.Policy) <= 0:
		return fmt.Errorf("%w: platform weights sum to zero", ErrInvalidConfig)
	case c.Generation.Policy == PolicyTwoStage && c.Generation.SpringOneIn < 0:
		return fmt.Errorf("%w: spring_one_in must not be negative", ErrInvalidConfig)
	case c.Collision.Tolerance <= 0:
		return fmt.Errorf("%w: collision tolerance must be positive", ErrInvalidConfig)
	case c.Scroll.Mode != ScrollSnap && c.Scroll.Mode != ScrollPull:
		return fmt.Errorf("%w: unknown scroll mode %q", ErrInvalidConfig, c.Scroll.Mode)
	case c.Scroll.Mode == ScrollPull && c.Scroll.PullZone <= 0:
		return fmt.Errorf("%w: pull_zone must be positive", ErrInvalidConfig)
	}
	return nil
}

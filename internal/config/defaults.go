package config

import (
	_ "embed"
)

//go:embed defaults/doodle.yaml
var defaultDoodleYAML []byte

//go:embed defaults/doodle_classic.yaml
var defaultClassicYAML []byte

// DefaultDoodleConfig returns the canonical variant configuration.
// It mirrors defaults/doodle.yaml and is the fallback if the embed fails to parse.
func DefaultDoodleConfig() DoodleConfig {
	return DoodleConfig{
		World: DoodleWorld{
			Width:       600,
			Height:      800,
			SpawnOffset: 50,
		},
		Physics: DoodlePhysics{
			Gravity:   0.65,
			JumpSpeed: 13.5,
			MoveSpeed: 5,
			BlueSpeed: 8,
		},
		Sizes: DoodleSizes{
			PlayerWidth:    40,
			PlayerHeight:   45,
			PlatformWidth:  60,
			PlatformHeight: 15,
			SpringWidth:    18,
			SpringHeight:   12,
		},
		Generation: DoodleGeneration{
			Policy: PolicyWeighted,
			Step:   60,
			Weights: KindWeights{
				Green:  10,
				Blue:   4,
				Red:    3,
				Spring: 2,
			},
			SpringYOffset: 2,
			SpawnCeiling:  -60,
		},
		Collision: DoodleCollision{
			Tolerance:       10,
			SpringBoost:     1.4,
			FreeSpringBoost: 1.5,
		},
		Scroll: DoodleScroll{
			Mode:       ScrollPull,
			SnapMargin: 120,
			PullZone:   400,
			CatchUp:    12,
		},
		Difficulty: DifficultyConfig{
			Enabled: true,
			SpeedUp: 0.01,
			MaxDrop: 2.0,
		},
	}
}

// ClassicDoodleConfig returns the classic variant configuration.
func ClassicDoodleConfig() DoodleConfig {
	cfg := DefaultDoodleConfig()
	cfg.Physics.Gravity = 0.6
	cfg.Physics.JumpSpeed = 13
	cfg.Generation = DoodleGeneration{
		Policy: PolicyTwoStage,
		Step:   60,
		Weights: KindWeights{
			Green: 6,
			Blue:  3,
			Red:   1,
		},
		SpringOneIn:   5,
		SpringYOffset: 2,
		SpawnCeiling:  0,
	}
	cfg.Scroll.Mode = ScrollSnap
	return cfg
}

// DefaultFor returns the hardcoded configuration of a variant.
// Unknown variants get the canonical one.
func DefaultFor(variant string) DoodleConfig {
	if variant == VariantClassic {
		return ClassicDoodleConfig()
	}
	return DefaultDoodleConfig()
}

// GetDefaultYAML returns the embedded default YAML for a variant.
func GetDefaultYAML(variant string) []byte {
	switch variant {
	case VariantDoodle:
		return defaultDoodleYAML
	case VariantClassic:
		return defaultClassicYAML
	default:
		return nil
	}
}

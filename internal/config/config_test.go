package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"gopkg.in/yaml.v3"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	tests := []struct {
		variant  string
		expected DoodleConfig
	}{
		{VariantDoodle, DefaultDoodleConfig()},
		{VariantClassic, ClassicDoodleConfig()},
	}

	for _, tc := range tests {
		t.Run(tc.variant, func(t *testing.T) {
			var cfg DoodleConfig
			if err := yaml.Unmarshal(GetDefaultYAML(tc.variant), &cfg); err != nil {
				t.Fatalf("embedded yaml does not parse: %v", err)
			}
			if cfg != tc.expected {
				t.Errorf("embedded yaml drifted from hardcoded defaults:\n got %+v\nwant %+v", cfg, tc.expected)
			}
			if err := cfg.Validate(); err != nil {
				t.Errorf("default config invalid: %v", err)
			}
		})
	}
}

func TestClassicWeightsTotal(t *testing.T) {
	classic := ClassicDoodleConfig().Generation
	if got := classic.Weights.Total(classic.Policy); got != 10 {
		t.Errorf("classic weights total = %d, expected 10", got)
	}
	canonical := DefaultDoodleConfig().Generation
	if got := canonical.Weights.Total(canonical.Policy); got != 19 {
		t.Errorf("canonical weights total = %d, expected 19", got)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*DoodleConfig)
	}{
		{"zero world", func(c *DoodleConfig) { c.World.Width = 0 }},
		{"platform wider than world", func(c *DoodleConfig) { c.Sizes.PlatformWidth = 700 }},
		{"spring wider than platform", func(c *DoodleConfig) { c.Sizes.SpringWidth = 80 }},
		{"no gravity", func(c *DoodleConfig) { c.Physics.Gravity = 0 }},
		{"zero step", func(c *DoodleConfig) { c.Generation.Step = 0 }},
		{"unknown policy", func(c *DoodleConfig) { c.Generation.Policy = "random" }},
		{"zero weights", func(c *DoodleConfig) { c.Generation.Weights = KindWeights{} }},
		{"zero tolerance", func(c *DoodleConfig) { c.Collision.Tolerance = 0 }},
		{"unknown scroll", func(c *DoodleConfig) { c.Scroll.Mode = "teleport" }},
		{"zero pull zone", func(c *DoodleConfig) { c.Scroll.PullZone = 0 }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultDoodleConfig()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Validate() = %v, expected ErrInvalidConfig", err)
			}
		})
	}
}

func TestDecodeOverlaysDefaults(t *testing.T) {
	data := []byte("physics:\n  gravity: 0.7\nscroll:\n  mode: snap\n")

	cfg, err := Decode(VariantDoodle, data, ".yaml")
	if err != nil {
		t.Fatalf("Decode() failed: %v", err)
	}
	if cfg.Physics.Gravity != 0.7 {
		t.Errorf("gravity = %v, expected 0.7", cfg.Physics.Gravity)
	}
	if cfg.Scroll.Mode != ScrollSnap {
		t.Errorf("scroll mode = %q, expected snap", cfg.Scroll.Mode)
	}
	if cfg.Physics.JumpSpeed != DefaultDoodleConfig().Physics.JumpSpeed {
		t.Error("keys absent from the file should keep their defaults")
	}
}

func TestDecodeTOML(t *testing.T) {
	data := []byte("[generation]\npolicy = \"two_stage\"\nspring_one_in = 3\n\n[generation.weights]\ngreen = 1\nblue = 1\nred = 1\n")

	cfg, err := Decode(VariantDoodle, data, ".toml")
	if err != nil {
		t.Fatalf("Decode() failed: %v", err)
	}
	if cfg.Generation.Policy != PolicyTwoStage || cfg.Generation.SpringOneIn != 3 {
		t.Errorf("generation = %+v", cfg.Generation)
	}
	if cfg.Generation.Weights.Total(PolicyTwoStage) != 3 {
		t.Errorf("weights = %+v", cfg.Generation.Weights)
	}
}

func TestDecodeRejectsInvalid(t *testing.T) {
	if _, err := Decode(VariantDoodle, []byte("collision:\n  tolerance: -1\n"), ".yml"); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
	if _, err := Decode(VariantDoodle, []byte("{}"), ".json"); err == nil {
		t.Error("expected error for unsupported format")
	}
}

func TestEncodeTOMLDecodes(t *testing.T) {
	data, err := Encode(ClassicDoodleConfig(), ".toml")
	if err != nil {
		t.Fatalf("Encode() failed: %v", err)
	}
	cfg, err := Decode(VariantDoodle, data, ".toml")
	if err != nil {
		t.Fatalf("Decode() failed: %v", err)
	}
	if cfg != ClassicDoodleConfig() {
		t.Errorf("classic config did not survive toml:\n got %+v", cfg)
	}
}

func TestLoadDoodleCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	if err := os.WriteFile(path, []byte("physics:\n  move_speed: 7\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadDoodle(VariantClassic, path)
	if err != nil {
		t.Fatalf("LoadDoodle() failed: %v", err)
	}
	if cfg.Physics.MoveSpeed != 7 {
		t.Errorf("move speed = %v, expected 7", cfg.Physics.MoveSpeed)
	}
	if cfg.Generation.Policy != PolicyTwoStage {
		t.Error("custom file should overlay the classic defaults")
	}

	if _, err := LoadDoodle(VariantDoodle, filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing custom config")
	}
}

func TestApplyPreset(t *testing.T) {
	base := DefaultDoodleConfig()

	fixed := base
	ApplyPreset(&fixed, DifficultyFixed)
	if fixed.Difficulty.Enabled {
		t.Error("fixed preset should disable the ambient drop")
	}

	hard := base
	ApplyPreset(&hard, DifficultyHard)
	if hard.Difficulty.SpeedUp <= base.Difficulty.SpeedUp || hard.Difficulty.MaxDrop <= base.Difficulty.MaxDrop {
		t.Errorf("hard preset should speed up the drop: %+v", hard.Difficulty)
	}

	easy := base
	ApplyPreset(&easy, DifficultyEasy)
	if easy.Difficulty.SpeedUp >= base.Difficulty.SpeedUp {
		t.Errorf("easy preset should slow the drop: %+v", easy.Difficulty)
	}

	if ParsePreset("hard") != DifficultyHard || ParsePreset("nightmare") != "" {
		t.Error("ParsePreset mismatch")
	}
}

func TestWatcherReloads(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doodle.yaml")
	if err := os.WriteFile(path, []byte("physics:\n  gravity: 0.5\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	w, err := NewWatcher(VariantDoodle, path, "")
	if err != nil {
		t.Fatalf("NewWatcher() failed: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(path, []byte("physics:\n  gravity: 0.9\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	select {
	case cfg := <-w.Configs:
		if cfg.Physics.Gravity != 0.9 {
			t.Errorf("reloaded gravity = %v, expected 0.9", cfg.Physics.Gravity)
		}
	case err := <-w.Errors:
		t.Fatalf("watcher error: %v", err)
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for reload")
	}
}

func TestWatcherKeepsPreset(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doodle.yaml")
	if err := os.WriteFile(path, []byte("difficulty:\n  enabled: true\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	w, err := NewWatcher(VariantDoodle, path, DifficultyFixed)
	if err != nil {
		t.Fatalf("NewWatcher() failed: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(path, []byte("difficulty:\n  enabled: true\nphysics:\n  gravity: 0.7\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	select {
	case cfg := <-w.Configs:
		if cfg.Physics.Gravity != 0.7 {
			t.Errorf("reloaded gravity = %v, expected 0.7", cfg.Physics.Gravity)
		}
		if cfg.Difficulty.Enabled {
			t.Error("fixed preset lost on reload")
		}
	case err := <-w.Errors:
		t.Fatalf("watcher error: %v", err)
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for reload")
	}
}

func TestWatcherRejectsEmptyFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doodle.yaml")
	if err := os.WriteFile(path, []byte("physics:\n  gravity: 0.5\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	w, err := NewWatcher(VariantDoodle, path, "")
	if err != nil {
		t.Fatalf("NewWatcher() failed: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(path, nil, 0o600); err != nil {
		t.Fatal(err)
	}

	select {
	case cfg := <-w.Configs:
		t.Fatalf("empty file produced a config: %+v", cfg.Physics)
	case err := <-w.Errors:
		if !strings.Contains(err.Error(), "is empty") {
			t.Errorf("error = %v, expected an empty-file error", err)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for the empty-file error")
	}
}

func TestWatcherCoalescesTruncateAndWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doodle.yaml")
	if err := os.WriteFile(path, []byte("physics:\n  gravity: 0.5\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	w, err := NewWatcher(VariantDoodle, path, "")
	if err != nil {
		t.Fatalf("NewWatcher() failed: %v", err)
	}
	defer w.Close()

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_TRUNC, 0o600)
	if err != nil {
		t.Fatal(err)
	}
	if err := f.Sync(); err != nil {
		t.Fatal(err)
	}
	time.Sleep(debounce / 4)
	if _, err := f.WriteString("physics:\n  gravity: 0.8\n"); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}

	select {
	case cfg := <-w.Configs:
		if cfg.Physics.Gravity != 0.8 {
			t.Errorf("reloaded gravity = %v, expected 0.8", cfg.Physics.Gravity)
		}
	case err := <-w.Errors:
		t.Fatalf("watcher error: %v", err)
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for reload")
	}
}

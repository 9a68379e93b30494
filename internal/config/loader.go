package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// LoadDoodle loads the configuration of a variant.
// Search order: customPath -> ~/.doodle/configs/<variant>.{yaml,yml,toml} ->
// ./configs/<variant>.{yaml,yml,toml} -> embedded default.
//
// Files are decoded over the variant defaults, so a file only needs the keys it
// changes. Only an explicit customPath can produce an error; the search paths are
// best effort.
func LoadDoodle(variant, customPath string) (DoodleConfig, error) {
	if customPath != "" {
		cfg, err := loadFile(variant, customPath)
		if err != nil {
			return DefaultFor(variant), err
		}
		return cfg, nil
	}

	for _, dir := range searchDirs() {
		for _, ext := range FormatExtensions() {
			path := filepath.Join(dir, variant+ext)
			if _, err := os.Stat(path); err != nil {
				continue
			}
			if cfg, err := loadFile(variant, path); err == nil {
				return cfg, nil
			}
		}
	}

	cfg := DefaultFor(variant)
	if data := GetDefaultYAML(variant); data != nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return DefaultFor(variant), nil // Fallback to hardcoded if embed fails
		}
	}
	return cfg, nil
}

// FormatExtensions returns supported config file extensions in lookup order.
func FormatExtensions() []string {
	return []string{".yaml", ".yml", ".toml"}
}

// Decode parses data over the defaults of variant. The format is picked from ext.
func Decode(variant string, data []byte, ext string) (DoodleConfig, error) {
	cfg := DefaultFor(variant)
	switch strings.ToLower(ext) {
	case ".toml":
		if _, err := toml.Decode(string(data), &cfg); err != nil {
			return cfg, fmt.Errorf("toml decode: %w", err)
		}
	case ".yaml", ".yml", "":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("yaml unmarshal: %w", err)
		}
	default:
		return cfg, fmt.Errorf("unsupported config format %q", ext)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Encode renders cfg in the format picked from ext (yaml by default).
func Encode(cfg DoodleConfig, ext string) ([]byte, error) {
	if strings.ToLower(ext) == ".toml" {
		var sb strings.Builder
		if err := toml.NewEncoder(&sb).Encode(cfg); err != nil {
			return nil, fmt.Errorf("toml encode: %w", err)
		}
		return []byte(sb.String()), nil
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("yaml marshal: %w", err)
	}
	return data, nil
}

func loadFile(variant, path string) (DoodleConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return DoodleConfig{}, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	cfg, err := Decode(variant, data, filepath.Ext(path))
	if err != nil {
		return DoodleConfig{}, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

// searchDirs returns the implicit config directories, user first.
func searchDirs() []string {
	dirs := make([]string, 0, 2)
	if home, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs, filepath.Join(home, ".doodle", "configs"))
	}
	return append(dirs, "configs")
}

// ApplyPreset modifies the ambient drop progression for a difficulty preset.
func ApplyPreset(cfg *DoodleConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyFixed:
		cfg.Difficulty.Enabled = false
	case DifficultyEasy:
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.SpeedUp /= 2
		cfg.Difficulty.MaxDrop /= 2
	case DifficultyHard:
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.SpeedUp *= 2
		cfg.Difficulty.MaxDrop *= 1.5
	case DifficultyNormal:
		cfg.Difficulty.Enabled = true
	}
}

// Package config loads semdiff's tolerance bundle (spec.md §6's
// configuration table) from an optional YAML file layered over the
// engine's zero-value defaults, the way the teacher layers a manifest
// override over its base struct with imdario/mergo.
package config

import (
	"fmt"

	"github.com/imdario/mergo"
	"gopkg.in/yaml.v3"

	"github.com/semdiff/semdiff/internal/pkg/engine"
)

// File is the on-disk YAML shape of a config file, mirroring spec.md §6's
// configuration option table verbatim by name.
type File struct {
	JSON struct {
		IgnoreObjectKeyOrder bool `yaml:"json_ignore_object_key_order"`
	} `yaml:"json"`
	Image struct {
		MaxDistance  float64 `yaml:"image_max_distance"`
		MaxDiffRatio float64 `yaml:"image_max_diff_ratio"`
	} `yaml:"image"`
	Audio struct {
		ShiftToleranceSeconds        float64 `yaml:"audio_shift_tolerance_seconds"`
		LufsToleranceDB              float64 `yaml:"audio_lufs_tolerance_db"`
		SpectralTolerance            float64 `yaml:"audio_spectral_tolerance"`
		SpectrogramDiffRateTolerance float64 `yaml:"audio_spectrogram_diff_rate_tolerance"`
	} `yaml:"audio"`
}

// toEngineConfig converts the YAML shape into engine.Config, the form the
// differ chain actually consumes.
func (f File) toEngineConfig() engine.Config {
	var cfg engine.Config
	cfg.JSON.IgnoreObjectKeyOrder = f.JSON.IgnoreObjectKeyOrder
	cfg.Image.MaxDistance = f.Image.MaxDistance
	cfg.Image.MaxDiffRatio = f.Image.MaxDiffRatio
	cfg.Audio.ShiftToleranceSeconds = f.Audio.ShiftToleranceSeconds
	cfg.Audio.LufsToleranceDB = f.Audio.LufsToleranceDB
	cfg.Audio.SpectralTolerance = f.Audio.SpectralTolerance
	cfg.Audio.SpectrogramDiffRateTolerance = f.Audio.SpectrogramDiffRateTolerance
	return cfg
}

// Load parses YAML config bytes (possibly empty, meaning "use defaults")
// and merges it over engine.Config's zero value. mergo.WithOverride lets
// every field the file actually sets take precedence over the zero-value
// base — mirroring the teacher's own override-layering idiom
// (internal/pkg/manifest's mergo.Merge(&dst, override, mergo.WithOverride)).
func Load(data []byte) (engine.Config, error) {
	var base engine.Config
	if len(data) == 0 {
		return base, nil
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return base, fmt.Errorf("config: parse yaml: %w", err)
	}

	override := f.toEngineConfig()
	if err := mergo.Merge(&base, override, mergo.WithOverride); err != nil {
		return base, fmt.Errorf("config: merge: %w", err)
	}
	return base, nil
}

package config

import (
	"encoding/json"
	"fmt"
	"unicode"
	"unicode/utf8"
)

// PunctureConfig describes one puncture in a scene file.
type PunctureConfig struct {
	// Label is the puncture's display letter, a single letter rune.
	Label string  `json:"label"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`

	// Optional per-puncture reference-ray direction. When omitted the
	// session default applies.
	RayDirectionX *float64 `json:"ray_direction_x,omitempty"`
	RayDirectionY *float64 `json:"ray_direction_y,omitempty"`
}

// LabelRune returns the label's rune. Call Validate first; an invalid
// label yields the replacement character.
func (p PunctureConfig) LabelRune() rune {
	r, _ := utf8.DecodeRuneInString(p.Label)
	return r
}

// Ray returns the per-puncture ray direction and whether one was set.
// A half-specified direction takes 0 for the missing component.
func (p PunctureConfig) Ray() (x, y float64, ok bool) {
	if p.RayDirectionX == nil && p.RayDirectionY == nil {
		return 0, 0, false
	}
	if p.RayDirectionX != nil {
		x = *p.RayDirectionX
	}
	if p.RayDirectionY != nil {
		y = *p.RayDirectionY
	}
	return x, y, true
}

// SceneConfig describes the puncture set a tracking session runs against.
type SceneConfig struct {
	Name      string           `json:"name,omitempty"`
	Punctures []PunctureConfig `json:"punctures"`
}

// LoadSceneConfig loads a SceneConfig from a JSON file, with the same
// path and size checks as LoadTuningConfig.
func LoadSceneConfig(path string) (*SceneConfig, error) {
	data, err := readConfigFile(path)
	if err != nil {
		return nil, err
	}

	cfg := &SceneConfig{}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse scene JSON: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid scene: %w", err)
	}

	return cfg, nil
}

// Validate checks the scene. Labels must be single letters, unique up to
// case; per-puncture ray directions must not be the zero vector. An
// empty puncture list is valid: every word in such a scene is the
// identity.
func (c *SceneConfig) Validate() error {
	seen := make(map[rune]bool, len(c.Punctures))
	for i, p := range c.Punctures {
		r, size := utf8.DecodeRuneInString(p.Label)
		if size == 0 || size != len(p.Label) || !unicode.IsLetter(r) {
			return fmt.Errorf("puncture %d: label must be a single letter, got %q", i, p.Label)
		}
		folded := unicode.ToUpper(r)
		if seen[folded] {
			return fmt.Errorf("puncture %d: duplicate label %q", i, p.Label)
		}
		seen[folded] = true
		if x, y, ok := p.Ray(); ok && x == 0 && y == 0 {
			return fmt.Errorf("puncture %d: ray direction must not be the zero vector", i)
		}
	}
	return nil
}

package homotopy

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/banshee-data/winding.report/internal/config"
)

// RegistryFromScene builds a Registry from a validated scene config.
// defaultRay is the session default reference-ray direction, normally
// taken from tuning; a zero vector falls back to DefaultRayDirection.
func RegistryFromScene(sc *config.SceneConfig, defaultRay r2.Vec) (*Registry, error) {
	reg := NewRegistryWithRay(defaultRay)
	for _, pc := range sc.Punctures {
		pos := r2.Vec{X: pc.X, Y: pc.Y}
		var err error
		if x, y, ok := pc.Ray(); ok {
			_, err = reg.RegisterWithRay(pc.LabelRune(), pos, r2.Vec{X: x, Y: y})
		} else {
			_, err = reg.Register(pc.LabelRune(), pos)
		}
		if err != nil {
			return nil, fmt.Errorf("scene puncture %q: %w", pc.Label, err)
		}
	}
	return reg, nil
}

// RayFromTuning returns the session default ray direction a tuning config
// specifies.
func RayFromTuning(cfg *config.TuningConfig) r2.Vec {
	if cfg == nil {
		return DefaultRayDirection()
	}
	return r2.Vec{X: cfg.GetRayDirectionX(), Y: cfg.GetRayDirectionY()}
}

package homotopy

import (
	"errors"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/banshee-data/winding.report/internal/config"
)

func TestRegistryFromScene(t *testing.T) {
	sc := &config.SceneConfig{
		Name: "two-pin",
		Punctures: []config.PunctureConfig{
			{Label: "C", X: 75, Y: 150},
			{Label: "D", X: 225, Y: 100, RayDirectionX: f64(0), RayDirectionY: f64(-1)},
		},
	}

	reg, err := RegistryFromScene(sc, r2.Vec{Y: 1})
	if err != nil {
		t.Fatalf("RegistryFromScene: %v", err)
	}
	if reg.Len() != 2 {
		t.Fatalf("registry has %d punctures, want 2", reg.Len())
	}

	snap := reg.Snapshot()
	c, ok := snap.ByID(0)
	if !ok || c.Label != 'C' || c.Position != (r2.Vec{X: 75, Y: 150}) {
		t.Errorf("puncture 0 = %+v, want C at (75, 150)", c)
	}
	if c.RayDir != (r2.Vec{Y: 1}) {
		t.Errorf("C ray = %+v, want session default (0, 1)", c.RayDir)
	}

	d, ok := snap.ByID(1)
	if !ok || d.RayDir != (r2.Vec{Y: -1}) {
		t.Errorf("D ray = %+v, want override (0, -1)", d.RayDir)
	}
}

func TestRegistryFromSceneDuplicateLabel(t *testing.T) {
	sc := &config.SceneConfig{
		Punctures: []config.PunctureConfig{
			{Label: "a", X: 0, Y: 0},
			{Label: "A", X: 10, Y: 0},
		},
	}

	_, err := RegistryFromScene(sc, r2.Vec{})
	var dup DuplicateLabelError
	if !errors.As(err, &dup) {
		t.Fatalf("expected DuplicateLabelError, got %v", err)
	}
	if dup.Label != 'A' {
		t.Errorf("DuplicateLabelError.Label = %q, want 'A'", dup.Label)
	}
}

func TestParamsFromTuning(t *testing.T) {
	if got := ParamsFromTuning(nil); got != DefaultParams() {
		t.Errorf("nil config gave %+v, want defaults", got)
	}

	cfg, err := config.LoadTuningConfig("../../config/tuning.defaults.json")
	if err != nil {
		t.Fatalf("load defaults: %v", err)
	}
	if got := ParamsFromTuning(cfg); got != DefaultParams() {
		t.Errorf("shipped defaults gave %+v, want %+v", got, DefaultParams())
	}
}

func TestRayFromTuning(t *testing.T) {
	if got := RayFromTuning(nil); got != (r2.Vec{Y: 1}) {
		t.Errorf("nil config ray = %+v, want (0, 1)", got)
	}

	cfg := config.EmptyTuningConfig()
	cfg.RayDirectionX = f64(1)
	cfg.RayDirectionY = f64(0)
	if got := RayFromTuning(cfg); got != (r2.Vec{X: 1}) {
		t.Errorf("configured ray = %+v, want (1, 0)", got)
	}
}

// TestSessionFromSceneFiles drives a session assembled entirely from the
// shipped config files, the way cmd/windtrace does.
func TestSessionFromSceneFiles(t *testing.T) {
	sc, err := config.LoadSceneConfig("../../config/scene.demo.json")
	if err != nil {
		t.Fatalf("load scene: %v", err)
	}
	tuning, err := config.LoadTuningConfig("../../config/tuning.defaults.json")
	if err != nil {
		t.Fatalf("load tuning: %v", err)
	}

	reg, err := RegistryFromScene(sc, RayFromTuning(tuning))
	if err != nil {
		t.Fatalf("build registry: %v", err)
	}

	sess := NewSession(reg.Snapshot(), ParamsFromTuning(tuning))
	walk := []r2.Vec{
		{X: 0, Y: 200},
		{X: 150, Y: 200},
		{X: 300, Y: 200},
		{X: 300, Y: 25},
		{X: 150, Y: 25},
		{X: 150, Y: 200},
		{X: 0, Y: 200},
	}
	for _, p := range walk {
		if err := sess.Update("walker", p); err != nil {
			t.Fatalf("update at %+v: %v", p, err)
		}
	}

	got, err := sess.RenderedWord("walker")
	if err != nil {
		t.Fatalf("rendered word: %v", err)
	}
	if got != "cdC" {
		t.Errorf("word = %q, want %q", got, "cdC")
	}
}

func f64(v float64) *float64 { return &v }

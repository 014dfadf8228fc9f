package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// DefaultConfigPath is the path to the canonical tuning defaults file.
// This is the single source of truth for all default tuning values.
const DefaultConfigPath = "config/tuning.defaults.json"

// TuningConfig represents the root configuration for tuning parameters.
// All fields are optional pointers so the same JSON can be used for both
// startup configuration and partial overrides.
type TuningConfig struct {
	// Crossing detection params
	CrossingEpsilon *float64 `json:"crossing_epsilon,omitempty"`
	TieEpsilon      *float64 `json:"tie_epsilon,omitempty"`

	// Path simplifier params
	CollinearityTolerance *float64 `json:"collinearity_tolerance,omitempty"`
	MergeDistance         *float64 `json:"merge_distance,omitempty"`

	// Session default reference-ray direction
	RayDirectionX *float64 `json:"ray_direction_x,omitempty"`
	RayDirectionY *float64 `json:"ray_direction_y,omitempty"`

	// Route builder params
	RouteClearance *float64 `json:"route_clearance,omitempty"`
	RouteNudge     *float64 `json:"route_nudge,omitempty"`
	MaxRouteDepth  *int     `json:"max_route_depth,omitempty"`
}

// Helper functions to create pointers
func ptrFloat64(v float64) *float64 { return &v }
func ptrInt(v int) *int             { return &v }

// EmptyTuningConfig returns a TuningConfig with all fields set to nil.
// Use LoadTuningConfig to load actual values from the defaults file.
func EmptyTuningConfig() *TuningConfig {
	return &TuningConfig{}
}

// LoadTuningConfig loads a TuningConfig from a JSON file.
// The file is validated to ensure it has a .json extension and is under the max file size.
// Fields omitted from the JSON file retain their default values, so
// partial configs are safe.
func LoadTuningConfig(path string) (*TuningConfig, error) {
	data, err := readConfigFile(path)
	if err != nil {
		return nil, err
	}

	// Parse JSON into empty config. The Get* methods provide fallback
	// defaults for any fields not specified in the JSON.
	cfg := EmptyTuningConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// readConfigFile validates a config path and returns its contents.
func readConfigFile(path string) ([]byte, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	// Check file size for safety (max 1MB)
	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024 // 1MB
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return data, nil
}

// MustLoadDefaultConfig loads the canonical tuning defaults from DefaultConfigPath.
// It searches for the file in the current directory and common parent directories.
// Panics if the file cannot be loaded, intended for test setup.
func MustLoadDefaultConfig() *TuningConfig {
	// Try paths from current dir up to repo root
	candidates := []string{
		DefaultConfigPath,
		"../../" + DefaultConfigPath,    // from internal/config/
		"../../../" + DefaultConfigPath, // deeper packages
	}
	for _, path := range candidates {
		if cfg, err := LoadTuningConfig(path); err == nil {
			return cfg
		}
	}
	panic("cannot find " + DefaultConfigPath + " - run tests from repository root")
}

// Validate checks that the configuration values are valid.
func (c *TuningConfig) Validate() error {
	if c.CrossingEpsilon != nil && *c.CrossingEpsilon <= 0 {
		return fmt.Errorf("crossing_epsilon must be positive, got %g", *c.CrossingEpsilon)
	}

	if c.TieEpsilon != nil && *c.TieEpsilon < 0 {
		return fmt.Errorf("tie_epsilon must be non-negative, got %g", *c.TieEpsilon)
	}

	if c.CollinearityTolerance != nil && *c.CollinearityTolerance < 0 {
		return fmt.Errorf("collinearity_tolerance must be non-negative, got %g", *c.CollinearityTolerance)
	}

	if c.MergeDistance != nil && *c.MergeDistance < 0 {
		return fmt.Errorf("merge_distance must be non-negative, got %g", *c.MergeDistance)
	}

	// The ray direction must not collapse to the zero vector. Either
	// component may be omitted; the omitted one takes its default.
	if c.RayDirectionX != nil || c.RayDirectionY != nil {
		if c.GetRayDirectionX() == 0 && c.GetRayDirectionY() == 0 {
			return fmt.Errorf("ray_direction must not be the zero vector")
		}
	}

	if c.RouteClearance != nil && *c.RouteClearance <= 0 {
		return fmt.Errorf("route_clearance must be positive, got %g", *c.RouteClearance)
	}

	if c.RouteNudge != nil && *c.RouteNudge <= 0 {
		return fmt.Errorf("route_nudge must be positive, got %g", *c.RouteNudge)
	}

	if c.MaxRouteDepth != nil && *c.MaxRouteDepth < 0 {
		return fmt.Errorf("max_route_depth must be non-negative, got %d", *c.MaxRouteDepth)
	}

	return nil
}

// GetCrossingEpsilon returns the crossing_epsilon value or the default.
func (c *TuningConfig) GetCrossingEpsilon() float64 {
	if c.CrossingEpsilon == nil {
		return 1e-9 // default
	}
	return *c.CrossingEpsilon
}

// GetTieEpsilon returns the tie_epsilon value or the default.
func (c *TuningConfig) GetTieEpsilon() float64 {
	if c.TieEpsilon == nil {
		return 1e-9 // default
	}
	return *c.TieEpsilon
}

// GetCollinearityTolerance returns the collinearity_tolerance value or the default.
func (c *TuningConfig) GetCollinearityTolerance() float64 {
	if c.CollinearityTolerance == nil {
		return 1e-9 // default
	}
	return *c.CollinearityTolerance
}

// GetMergeDistance returns the merge_distance value or the default.
func (c *TuningConfig) GetMergeDistance() float64 {
	if c.MergeDistance == nil {
		return 0 // default: direction-only merging
	}
	return *c.MergeDistance
}

// GetRayDirectionX returns the ray_direction_x value or the default.
func (c *TuningConfig) GetRayDirectionX() float64 {
	if c.RayDirectionX == nil {
		return 0 // default: upward ray
	}
	return *c.RayDirectionX
}

// GetRayDirectionY returns the ray_direction_y value or the default.
func (c *TuningConfig) GetRayDirectionY() float64 {
	if c.RayDirectionY == nil {
		return 1 // default: upward ray
	}
	return *c.RayDirectionY
}

// GetRouteClearance returns the route_clearance value or the default.
func (c *TuningConfig) GetRouteClearance() float64 {
	if c.RouteClearance == nil {
		return 0.5
	}
	return *c.RouteClearance
}

// GetRouteNudge returns the route_nudge value or the default.
func (c *TuningConfig) GetRouteNudge() float64 {
	if c.RouteNudge == nil {
		return 0.25
	}
	return *c.RouteNudge
}

// GetMaxRouteDepth returns the max_route_depth value or the default.
func (c *TuningConfig) GetMaxRouteDepth() int {
	if c.MaxRouteDepth == nil {
		return 10
	}
	return *c.MaxRouteDepth
}

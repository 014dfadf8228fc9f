package homotopy

import "github.com/banshee-data/winding.report/internal/config"

// Params holds the numeric tolerances and routing knobs for a tracking
// session. All distances are in world units.
type Params struct {
	// CrossingEpsilon is the radius of every too-close-to-call test:
	// segment-to-puncture distance and sample-to-ray distance. Anything
	// inside it is a DegenerateCrossingError.
	CrossingEpsilon float64

	// TieEpsilon is the band, in segment-parameter space, within which
	// two crossings on one segment count as simultaneous and order by
	// puncture ID instead.
	TieEpsilon float64

	// CollinearityTolerance bounds the normalised cross product when the
	// simplifier decides whether a step continues the previous stored
	// segment.
	CollinearityTolerance float64

	// MergeDistance lets steps shorter than this merge into the previous
	// stored segment regardless of direction. Zero disables the shortcut.
	MergeDistance float64

	// RouteClearance is the minimum distance BuildRoute keeps between the
	// route and any puncture.
	RouteClearance float64

	// RouteNudge is the extra margin past RouteClearance at which
	// BuildRoute places a detour vertex beside a blocking puncture.
	RouteNudge float64

	// MaxRouteDepth caps recursive subdivision in BuildRoute.
	MaxRouteDepth int
}

// DefaultParams returns the production defaults.
func DefaultParams() Params {
	return Params{
		CrossingEpsilon:       1e-9,
		TieEpsilon:            1e-9,
		CollinearityTolerance: 1e-9,
		MergeDistance:         0,
		RouteClearance:        0.5,
		RouteNudge:            0.25,
		MaxRouteDepth:         10,
	}
}

// ParamsFromTuning builds Params from a tuning config, falling back to
// defaults for any field the config leaves unset. Use this in hosts that
// already load a TuningConfig.
func ParamsFromTuning(cfg *config.TuningConfig) Params {
	if cfg == nil {
		return DefaultParams()
	}
	return Params{
		CrossingEpsilon:       cfg.GetCrossingEpsilon(),
		TieEpsilon:            cfg.GetTieEpsilon(),
		CollinearityTolerance: cfg.GetCollinearityTolerance(),
		MergeDistance:         cfg.GetMergeDistance(),
		RouteClearance:        cfg.GetRouteClearance(),
		RouteNudge:            cfg.GetRouteNudge(),
		MaxRouteDepth:         cfg.GetMaxRouteDepth(),
	}
}

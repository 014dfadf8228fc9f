// Package homotopy tracks the homotopy class of paths traced through a
// plane with labelled puncture points.
//
// Responsibilities: detecting reference-ray crossings per movement
// segment, reducing signed crossings into the canonical free-group word,
// keeping a minimal polyline witness of the traveled path, and the
// subject-keyed Session boundary that hosts feed position samples through.
// Key types: Registry, Snapshot, PathTracker, Session, Word.
//
// The package performs no I/O. Tolerances arrive as Params values (see
// ParamsFromTuning for the bridge from internal/config) and positions as
// r2.Vec world coordinates. Geometric ambiguity is always surfaced as
// DegenerateCrossingError rather than approximated, because a miscounted
// crossing corrupts the word with no way to recover.
package homotopy

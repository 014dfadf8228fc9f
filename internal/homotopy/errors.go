package homotopy

import (
	"errors"
	"fmt"
)

// ErrUnknownSubject is returned by Session operations that address a
// subject which has never produced a sample.
var ErrUnknownSubject = errors.New("unknown subject")

// ErrRouteBlocked is returned by BuildRoute when the subdivision budget
// runs out before every route segment clears the puncture set.
var ErrRouteBlocked = errors.New("route blocked by punctures")

// ErrDiscontinuousPath is returned by ConcatPaths when the second path
// does not start where the first one ends.
var ErrDiscontinuousPath = errors.New("paths do not share an endpoint")

// DuplicateLabelError reports a registration whose label collides with an
// already registered puncture. Labels are compared case-insensitively
// because display case is reserved for crossing orientation.
type DuplicateLabelError struct {
	Label rune
}

func (e DuplicateLabelError) Error() string {
	return fmt.Sprintf("puncture label %q already registered", e.Label)
}

// DegenerateCrossingError reports a movement segment whose relationship
// to one puncture's reference ray cannot be resolved unambiguously. The
// update that produced it has not been applied; callers may retry with a
// perturbed sample.
type DegenerateCrossingError struct {
	PunctureID int
	Reason     string
}

func (e DegenerateCrossingError) Error() string {
	return fmt.Sprintf("degenerate crossing at puncture %d: %s", e.PunctureID, e.Reason)
}

package homotopy

import (
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/banshee-data/winding.report/internal/monitoring"
)

// Session is the host-facing boundary. It owns one PathTracker per
// tracked subject, all running against the same frozen puncture snapshot.
// Updates for distinct subjects may run concurrently; operations on one
// subject are serialised.
type Session struct {
	ID     string
	snap   *Snapshot
	params Params

	mu       sync.RWMutex
	trackers map[string]*trackerEntry
}

type trackerEntry struct {
	mu sync.Mutex
	t  *PathTracker
}

// NewSession creates a session over a snapshot.
func NewSession(snap *Snapshot, params Params) *Session {
	s := &Session{
		ID:       uuid.New().String(),
		snap:     snap,
		params:   params,
		trackers: make(map[string]*trackerEntry),
	}
	monitoring.Logf("homotopy: session %s started with %d punctures", s.ID, snap.Len())
	return s
}

// Snapshot returns the frozen puncture set the session tracks against.
func (s *Session) Snapshot() *Snapshot { return s.snap }

// Update feeds one position sample for a subject. The first sample for an
// unknown subject creates its tracker and becomes the basepoint; that
// call cannot fail. Later samples propagate DegenerateCrossingError with
// the subject's tracker left unchanged.
func (s *Session) Update(subjectID string, pos r2.Vec) error {
	e, created := s.entry(subjectID, pos)
	if created {
		return nil
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.t.Update(pos)
}

func (s *Session) entry(subjectID string, pos r2.Vec) (*trackerEntry, bool) {
	s.mu.RLock()
	e, ok := s.trackers[subjectID]
	s.mu.RUnlock()
	if ok {
		return e, false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok = s.trackers[subjectID]; ok {
		return e, false
	}
	e = &trackerEntry{t: NewPathTracker(pos, s.snap, s.params)}
	s.trackers[subjectID] = e
	monitoring.Logf("homotopy: session %s tracking subject %q from (%.3f, %.3f)", s.ID, subjectID, pos.X, pos.Y)
	return e, true
}

func (s *Session) lookup(subjectID string) (*trackerEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.trackers[subjectID]
	if !ok {
		return nil, fmt.Errorf("subject %q: %w", subjectID, ErrUnknownSubject)
	}
	return e, nil
}

// CurrentWord returns the subject's reduced word.
func (s *Session) CurrentWord(subjectID string) (Word, error) {
	e, err := s.lookup(subjectID)
	if err != nil {
		return nil, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.t.CurrentWord(), nil
}

// RenderedWord returns the subject's word under the display convention,
// uppercase letters for counter-clockwise crossings and lowercase for
// clockwise.
func (s *Session) RenderedWord(subjectID string) (string, error) {
	w, err := s.CurrentWord(subjectID)
	if err != nil {
		return "", err
	}
	return s.snap.FormatWord(w), nil
}

// CurrentPath returns a copy of the subject's simplified path.
func (s *Session) CurrentPath(subjectID string) (Path, error) {
	e, err := s.lookup(subjectID)
	if err != nil {
		return Path{}, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.t.CurrentPath(), nil
}

// LoopWord returns the subject's word closed back to its basepoint.
func (s *Session) LoopWord(subjectID string) (Word, error) {
	e, err := s.lookup(subjectID)
	if err != nil {
		return nil, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.t.LoopWord()
}

// WindingCounts returns the subject's net winding numbers per puncture.
func (s *Session) WindingCounts(subjectID string) ([]PunctureWinding, error) {
	e, err := s.lookup(subjectID)
	if err != nil {
		return nil, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.t.WindingCounts()
}

// Tracker exposes the subject's tracker for callers that need the full
// surface. The caller owns serialisation from that point on.
func (s *Session) Tracker(subjectID string) (*PathTracker, error) {
	e, err := s.lookup(subjectID)
	if err != nil {
		return nil, err
	}
	return e.t, nil
}

// Reset restarts a subject at a fresh basepoint.
func (s *Session) Reset(subjectID string, basepoint r2.Vec) error {
	e, err := s.lookup(subjectID)
	if err != nil {
		return err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.t.Reset(basepoint)
	return nil
}

// Subjects returns the tracked subject IDs in sorted order.
func (s *Session) Subjects() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, 0, len(s.trackers))
	for id := range s.trackers {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// Forget drops a subject's tracker. Forgetting an unknown subject is a
// no-op.
func (s *Session) Forget(subjectID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.trackers, subjectID)
}

package homotopy

import (
	"errors"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"
)

func TestRegistryRegister(t *testing.T) {
	reg := NewRegistry()

	p1, err := reg.Register('A', r2.Vec{X: -225, Y: 100})
	if err != nil {
		t.Fatalf("Register A: %v", err)
	}
	if p1.ID != 0 {
		t.Errorf("first ID = %d, want 0", p1.ID)
	}
	if p1.RayDir != (r2.Vec{Y: 1}) {
		t.Errorf("default RayDir = %v, want upward", p1.RayDir)
	}

	p2, err := reg.Register('B', r2.Vec{X: -75, Y: 150})
	if err != nil {
		t.Fatalf("Register B: %v", err)
	}
	if p2.ID != 1 {
		t.Errorf("second ID = %d, want 1", p2.ID)
	}

	// Labels collide across case: crossing orientation owns the case.
	_, err = reg.Register('a', r2.Vec{X: 10, Y: 10})
	var dup DuplicateLabelError
	if !errors.As(err, &dup) {
		t.Fatalf("duplicate label: got %v, want DuplicateLabelError", err)
	}
	if dup.Label != 'a' {
		t.Errorf("DuplicateLabelError.Label = %q, want 'a'", dup.Label)
	}
	if reg.Len() != 2 {
		t.Errorf("failed registration changed the registry: Len = %d", reg.Len())
	}
}

func TestRegistryRemove(t *testing.T) {
	reg := NewRegistry()
	if _, err := reg.Register('A', r2.Vec{}); err != nil {
		t.Fatal(err)
	}
	if _, err := reg.Register('B', r2.Vec{X: 1}); err != nil {
		t.Fatal(err)
	}

	reg.Remove(0)
	if reg.Len() != 1 {
		t.Fatalf("Len after Remove = %d, want 1", reg.Len())
	}

	// IDs are never reused.
	p, err := reg.Register('C', r2.Vec{X: 2})
	if err != nil {
		t.Fatal(err)
	}
	if p.ID != 2 {
		t.Errorf("ID after removal = %d, want 2", p.ID)
	}

	// The removed label is free again.
	if _, err := reg.Register('a', r2.Vec{X: 3}); err != nil {
		t.Errorf("re-registering a removed label: %v", err)
	}

	reg.Remove(99) // unknown id is a no-op
	if reg.Len() != 3 {
		t.Errorf("Remove of unknown id changed the registry: Len = %d", reg.Len())
	}
}

func TestRegistryRayDefaults(t *testing.T) {
	reg := NewRegistryWithRay(r2.Vec{Y: -2})

	p, err := reg.Register('A', r2.Vec{})
	if err != nil {
		t.Fatal(err)
	}
	if p.RayDir != (r2.Vec{Y: -1}) {
		t.Errorf("session default RayDir = %v, want normalised downward", p.RayDir)
	}

	q, err := reg.RegisterWithRay('B', r2.Vec{X: 5}, r2.Vec{X: 3})
	if err != nil {
		t.Fatal(err)
	}
	if q.RayDir != (r2.Vec{X: 1}) {
		t.Errorf("override RayDir = %v, want normalised eastward", q.RayDir)
	}

	z, err := reg.RegisterWithRay('C', r2.Vec{X: 9}, r2.Vec{})
	if err != nil {
		t.Fatal(err)
	}
	if z.RayDir != (r2.Vec{Y: -1}) {
		t.Errorf("zero override RayDir = %v, want session default", z.RayDir)
	}

	if p, _ := NewRegistryWithRay(r2.Vec{}).Register('D', r2.Vec{}); p.RayDir != (r2.Vec{Y: 1}) {
		t.Errorf("zero session ray = %v, want upward fallback", p.RayDir)
	}
}

func TestSnapshotIsImmutable(t *testing.T) {
	reg := NewRegistry()
	if _, err := reg.Register('A', r2.Vec{}); err != nil {
		t.Fatal(err)
	}
	snap := reg.Snapshot()

	if _, err := reg.Register('B', r2.Vec{X: 1}); err != nil {
		t.Fatal(err)
	}
	if snap.Len() != 1 {
		t.Errorf("snapshot grew with the registry: Len = %d", snap.Len())
	}
	if reg.Snapshot().Len() != 2 {
		t.Errorf("fresh snapshot Len = %d, want 2", reg.Snapshot().Len())
	}

	ps := snap.Punctures()
	ps[0].Label = 'Z'
	if snap.Label(0) != 'A' {
		t.Error("mutating Punctures() result leaked into the snapshot")
	}
}

func TestSnapshotByID(t *testing.T) {
	reg := NewRegistry()
	for _, l := range []rune{'A', 'B', 'C'} {
		if _, err := reg.Register(l, r2.Vec{X: float64(l)}); err != nil {
			t.Fatal(err)
		}
	}
	reg.Remove(1)
	snap := reg.Snapshot()

	ps := snap.Punctures()
	if len(ps) != 2 || ps[0].ID != 0 || ps[1].ID != 2 {
		t.Fatalf("snapshot punctures = %v, want ids [0 2]", ps)
	}
	if _, ok := snap.ByID(1); ok {
		t.Error("ByID found a removed puncture")
	}
	if p, ok := snap.ByID(2); !ok || p.Label != 'C' {
		t.Errorf("ByID(2) = %v, %v", p, ok)
	}
}

func TestSnapshotFormatWord(t *testing.T) {
	reg := NewRegistry()
	c, err := reg.Register('C', r2.Vec{X: 75, Y: 150})
	if err != nil {
		t.Fatal(err)
	}
	d, err := reg.Register('d', r2.Vec{X: 225, Y: 100}) // stored case is irrelevant
	if err != nil {
		t.Fatal(err)
	}
	snap := reg.Snapshot()

	w := Word{
		{PunctureID: c.ID, Sign: CW},
		{PunctureID: d.ID, Sign: CW},
		{PunctureID: c.ID, Sign: CCW},
	}
	if got := snap.FormatWord(w); got != "cdC" {
		t.Errorf("FormatWord = %q, want %q", got, "cdC")
	}
	if got := snap.FormatWord(Word{}); got != "" {
		t.Errorf("FormatWord of identity = %q, want empty", got)
	}
	if got := snap.FormatLetter(Letter{PunctureID: d.ID, Sign: CCW}); got != "D" {
		t.Errorf("FormatLetter = %q, want %q", got, "D")
	}
	if got := snap.FormatLetter(Letter{PunctureID: 42, Sign: CW}); got != "?" {
		t.Errorf("FormatLetter for unknown id = %q, want %q", got, "?")
	}
}

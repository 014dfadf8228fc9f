package main

import (
	"bytes"
	"strings"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/banshee-data/winding.report/internal/homotopy"
)

func demoSession(t *testing.T) *homotopy.Session {
	t.Helper()
	reg, err := demoRegistry(r2.Vec{Y: 1})
	if err != nil {
		t.Fatalf("demoRegistry: %v", err)
	}
	return homotopy.NewSession(reg.Snapshot(), homotopy.DefaultParams())
}

func TestParsePoint(t *testing.T) {
	tests := []struct {
		in      string
		want    r2.Vec
		wantErr bool
	}{
		{"10,20", r2.Vec{X: 10, Y: 20}, false},
		{" -1.5 , 0.25 ", r2.Vec{X: -1.5, Y: 0.25}, false},
		{"10", r2.Vec{}, true},
		{"10,20,30", r2.Vec{}, true},
		{"a,b", r2.Vec{}, true},
	}
	for _, tt := range tests {
		got, err := parsePoint(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("parsePoint(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if err == nil && got != tt.want {
			t.Errorf("parsePoint(%q) = %+v, want %+v", tt.in, got, tt.want)
		}
	}
}

func TestDemoRegistry(t *testing.T) {
	reg, err := demoRegistry(r2.Vec{Y: 1})
	if err != nil {
		t.Fatalf("demoRegistry: %v", err)
	}
	if reg.Len() != 4 {
		t.Fatalf("demo registry has %d punctures, want 4", reg.Len())
	}
	snap := reg.Snapshot()
	for id, want := range []rune{'A', 'B', 'C', 'D'} {
		if got := snap.Label(id); got != want {
			t.Errorf("puncture %d label = %c, want %c", id, got, want)
		}
	}
}

func TestFeedSamples(t *testing.T) {
	sess := demoSession(t)

	input := strings.Join([]string{
		"# a walker crossing above C",
		"",
		"walker 0 200",
		"walker 150 200",
		"malformed line with extra fields",
		"bad notanumber 5",
	}, "\n")

	var buf bytes.Buffer
	if err := feedSamples(strings.NewReader(input), &buf, sess); err != nil {
		t.Fatalf("feedSamples: %v", err)
	}

	want := "walker: 1\nwalker: c\n"
	if buf.String() != want {
		t.Errorf("transitions = %q, want %q", buf.String(), want)
	}
	if got := sess.Subjects(); len(got) != 1 || got[0] != "walker" {
		t.Errorf("subjects = %v, want [walker]", got)
	}
}

func TestPrintSummaries(t *testing.T) {
	sess := demoSession(t)
	for _, p := range []r2.Vec{{X: 0, Y: 200}, {X: 150, Y: 200}} {
		if err := sess.Update("walker", p); err != nil {
			t.Fatalf("update: %v", err)
		}
	}

	var buf bytes.Buffer
	printSummaries(&buf, sess)

	// The straight closing segment re-crosses C, so the loop cancels to
	// the identity and every winding count is zero.
	want := "walker: word=c loop=1 winding=[A:0 B:0 C:0 D:0] samples=2 vertices=2\n"
	if buf.String() != want {
		t.Errorf("summary = %q, want %q", buf.String(), want)
	}
}

func TestRunDemo(t *testing.T) {
	sess := demoSession(t)

	var buf bytes.Buffer
	if err := runDemo(&buf, sess); err != nil {
		t.Fatalf("runDemo: %v", err)
	}
	out := buf.String()

	// Word transitions, in walk order.
	for _, line := range []string{
		"square-cw: 1 at (150, 25)",
		"square-cw: d at (300, 175)",
		"over-and-back: c at (150, 200)",
		"over-and-back: cd at (300, 200)",
		"over-and-back: cdC at (0, 200)",
		"figure-eight: C at (0, 250)",
		"figure-eight: Cd at (300, 250)",
	} {
		if !strings.Contains(out, line) {
			t.Errorf("demo output missing %q\ngot:\n%s", line, out)
		}
	}

	// Final summaries: all three walks are closed loops.
	for _, line := range []string{
		"square-cw: word=d loop=d winding=[A:0 B:0 C:0 D:-1] samples=5 vertices=5",
		"over-and-back: word=cdC loop=cdC winding=[A:0 B:0 C:0 D:-1] samples=7 vertices=6",
		"figure-eight: word=Cd loop=Cd winding=[A:0 B:0 C:1 D:-1] samples=9 vertices=9",
	} {
		if !strings.Contains(out, line) {
			t.Errorf("demo summary missing %q\ngot:\n%s", line, out)
		}
	}
}

func TestPlanRoute(t *testing.T) {
	sess := demoSession(t)
	snap := sess.Snapshot()

	var buf bytes.Buffer
	if err := planRoute(&buf, "0,0:450,0", snap, homotopy.DefaultParams()); err != nil {
		t.Fatalf("planRoute: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "route with 2 vertices") {
		t.Errorf("expected a straight 2-vertex route, got:\n%s", out)
	}
	if !strings.Contains(out, "route word: 1") {
		t.Errorf("expected identity route word, got:\n%s", out)
	}

	if err := planRoute(&buf, "nospec", snap, homotopy.DefaultParams()); err == nil {
		t.Error("expected error for malformed route spec, got nil")
	}
}

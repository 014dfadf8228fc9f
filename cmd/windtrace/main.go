package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/banshee-data/winding.report/internal/config"
	"github.com/banshee-data/winding.report/internal/homotopy"
	"github.com/banshee-data/winding.report/internal/version"
)

func main() {
	scenePath := flag.String("scene", "", "Scene JSON file (defaults to the built-in four-puncture demo)")
	tuningPath := flag.String("tuning", "", "Tuning JSON file (defaults to built-in values)")
	routeSpec := flag.String("route", "", "Plan a clear route instead of reading samples, as \"x1,y1:x2,y2\"")
	demo := flag.Bool("demo", false, "Run three scripted walks against the scene and exit")
	showVersion := flag.Bool("version", false, "Print version information and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("windtrace %s (%s, built %s)\n", version.Version, version.GitSHA, version.BuildTime)
		return
	}

	var tuning *config.TuningConfig
	if *tuningPath != "" {
		var err error
		tuning, err = config.LoadTuningConfig(*tuningPath)
		if err != nil {
			log.Fatalf("load tuning: %v", err)
		}
	}
	params := homotopy.ParamsFromTuning(tuning)

	reg, sceneName, err := buildRegistry(*scenePath, homotopy.RayFromTuning(tuning))
	if err != nil {
		log.Fatalf("load scene: %v", err)
	}
	snap := reg.Snapshot()
	log.Printf("windtrace: scene %q with %d punctures", sceneName, snap.Len())

	if *routeSpec != "" {
		if err := planRoute(os.Stdout, *routeSpec, snap, params); err != nil {
			log.Fatalf("route: %v", err)
		}
		return
	}

	sess := homotopy.NewSession(snap, params)
	if *demo {
		if err := runDemo(os.Stdout, sess); err != nil {
			log.Fatalf("demo: %v", err)
		}
		return
	}

	if err := feedSamples(os.Stdin, os.Stdout, sess); err != nil {
		log.Fatalf("read samples: %v", err)
	}
	printSummaries(os.Stdout, sess)
}

// buildRegistry loads the named scene file, or falls back to a small
// built-in demo scene when path is empty.
func buildRegistry(path string, defaultRay r2.Vec) (*homotopy.Registry, string, error) {
	if path == "" {
		reg, err := demoRegistry(defaultRay)
		return reg, "demo", err
	}
	sc, err := config.LoadSceneConfig(path)
	if err != nil {
		return nil, "", err
	}
	reg, err := homotopy.RegistryFromScene(sc, defaultRay)
	return reg, sc.Name, err
}

func demoRegistry(defaultRay r2.Vec) (*homotopy.Registry, error) {
	reg := homotopy.NewRegistryWithRay(defaultRay)
	demo := []struct {
		label rune
		pos   r2.Vec
	}{
		{'A', r2.Vec{X: -225, Y: 100}},
		{'B', r2.Vec{X: -75, Y: 150}},
		{'C', r2.Vec{X: 75, Y: 150}},
		{'D', r2.Vec{X: 225, Y: 100}},
	}
	for _, d := range demo {
		if _, err := reg.Register(d.label, d.pos); err != nil {
			return nil, err
		}
	}
	return reg, nil
}

// feedSamples reads "subject x y" lines until EOF, printing a line each
// time a subject's word changes. Lines that fail to parse or that produce
// a degenerate crossing are logged and dropped; the stream keeps going.
func feedSamples(r io.Reader, w io.Writer, sess *homotopy.Session) error {
	scanner := bufio.NewScanner(r)
	words := make(map[string]string)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != 3 {
			log.Printf("WARNING: line %d: want \"subject x y\", got %d fields", lineNo, len(fields))
			continue
		}
		x, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			log.Printf("WARNING: line %d: invalid x %q", lineNo, fields[1])
			continue
		}
		y, err := strconv.ParseFloat(fields[2], 64)
		if err != nil {
			log.Printf("WARNING: line %d: invalid y %q", lineNo, fields[2])
			continue
		}

		subject := fields[0]
		if err := sess.Update(subject, r2.Vec{X: x, Y: y}); err != nil {
			log.Printf("WARNING: line %d: %v (sample dropped)", lineNo, err)
			continue
		}
		word, err := sess.RenderedWord(subject)
		if err != nil {
			return err
		}
		if prev, seen := words[subject]; !seen || prev != word {
			fmt.Fprintf(w, "%s: %s\n", subject, orIdentity(word))
			words[subject] = word
		}
	}
	return scanner.Err()
}

// runDemo walks three scripted subjects through the demo scene, printing
// the word each time it changes, then the usual per-subject summaries.
func runDemo(w io.Writer, sess *homotopy.Session) error {
	walks := []struct {
		name  string
		verts []r2.Vec
	}{
		// clockwise square around D
		{"square-cw", []r2.Vec{
			{X: 150, Y: 25}, {X: 150, Y: 175}, {X: 300, Y: 175}, {X: 300, Y: 25}, {X: 150, Y: 25},
		}},
		// above C, around D, back above C
		{"over-and-back", []r2.Vec{
			{X: 0, Y: 200}, {X: 150, Y: 200}, {X: 300, Y: 200}, {X: 300, Y: 25},
			{X: 150, Y: 25}, {X: 150, Y: 200}, {X: 0, Y: 200},
		}},
		// counter-clockwise around C, clockwise around D
		{"figure-eight", []r2.Vec{
			{X: 150, Y: 250}, {X: 0, Y: 250}, {X: 0, Y: 50}, {X: 150, Y: 50}, {X: 150, Y: 250},
			{X: 300, Y: 250}, {X: 300, Y: 50}, {X: 150, Y: 50}, {X: 150, Y: 250},
		}},
	}

	for _, walk := range walks {
		last := ""
		first := true
		for _, p := range walk.verts {
			if err := sess.Update(walk.name, p); err != nil {
				return fmt.Errorf("%s: %w", walk.name, err)
			}
			word, err := sess.RenderedWord(walk.name)
			if err != nil {
				return err
			}
			if first || word != last {
				fmt.Fprintf(w, "%s: %s at (%.0f, %.0f)\n", walk.name, orIdentity(word), p.X, p.Y)
				last = word
				first = false
			}
		}
	}

	printSummaries(w, sess)
	return nil
}

func printSummaries(w io.Writer, sess *homotopy.Session) {
	snap := sess.Snapshot()
	for _, id := range sess.Subjects() {
		word, err := sess.RenderedWord(id)
		if err != nil {
			log.Printf("WARNING: subject %q: %v", id, err)
			continue
		}

		loop := "-"
		if lw, err := sess.LoopWord(id); err == nil {
			loop = orIdentity(snap.FormatWord(lw))
		} else {
			loop = fmt.Sprintf("unresolved (%v)", err)
		}

		winding := "-"
		if wc, err := sess.WindingCounts(id); err == nil {
			winding = formatWindings(snap, wc)
		}

		pt, err := sess.Tracker(id)
		if err != nil {
			continue
		}
		fmt.Fprintf(w, "%s: word=%s loop=%s winding=[%s] samples=%d vertices=%d\n",
			id, orIdentity(word), loop, winding, pt.RawSamples(), pt.StoredVertices())
	}
}

func formatWindings(snap *homotopy.Snapshot, counts []homotopy.PunctureWinding) string {
	parts := make([]string, 0, len(counts))
	for _, c := range counts {
		parts = append(parts, fmt.Sprintf("%c:%d", snap.Label(c.PunctureID), c.Count))
	}
	return strings.Join(parts, " ")
}

// orIdentity renders the empty word as "1".
func orIdentity(word string) string {
	if word == "" {
		return "1"
	}
	return word
}

// planRoute parses "x1,y1:x2,y2", builds a puncture-clear route between
// the two points, and prints its vertices and word.
func planRoute(w io.Writer, spec string, snap *homotopy.Snapshot, params homotopy.Params) error {
	parts := strings.Split(spec, ":")
	if len(parts) != 2 {
		return fmt.Errorf("want \"x1,y1:x2,y2\", got %q", spec)
	}
	start, err := parsePoint(parts[0])
	if err != nil {
		return err
	}
	end, err := parsePoint(parts[1])
	if err != nil {
		return err
	}

	verts, err := homotopy.BuildRoute(start, end, snap, params)
	if err != nil {
		return err
	}
	word, err := homotopy.PathWord(verts, snap, params)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "route with %d vertices:\n", len(verts))
	for _, v := range verts {
		fmt.Fprintf(w, "  %.3f %.3f\n", v.X, v.Y)
	}
	fmt.Fprintf(w, "route word: %s\n", orIdentity(snap.FormatWord(word)))
	return nil
}

func parsePoint(s string) (r2.Vec, error) {
	parts := strings.Split(strings.TrimSpace(s), ",")
	if len(parts) != 2 {
		return r2.Vec{}, fmt.Errorf("invalid point %q, want \"x,y\"", s)
	}
	x, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return r2.Vec{}, fmt.Errorf("invalid point %q: %w", s, err)
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return r2.Vec{}, fmt.Errorf("invalid point %q: %w", s, err)
	}
	return r2.Vec{X: x, Y: y}, nil
}

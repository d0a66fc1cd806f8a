// Command validate performs data integrity checks on a raw DONKI FLR dump
// and, optionally, a selection fixture generated from it by genmock. It
// verifies record shape, class and location grammar, and that re-running
// the ranking reproduces the fixture.
//
// Usage:
//
//	go run ./cmd/validate \
//	  -dump data/mock/donki_flr_2024-05.json \
//	  -fixture data/mock/selection_2024-05.json
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"math"
	"os"
	"time"

	"github.com/couchcryptid/solar-flare-service/internal/domain"
)

// donkiTimeLayout is the minute-precision timestamp DONKI emits.
const donkiTimeLayout = "2006-01-02T15:04Z"

// phase tracks pass/fail for a validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

type fixture struct {
	Selection domain.Selection     `json:"selection"`
	Ranked    []domain.FlareRecord `json:"ranked"`
}

func main() {
	dump := flag.String("dump", "", "path to a raw DONKI FLR JSON dump")
	fixturePath := flag.String("fixture", "", "optional path to a genmock selection fixture")
	radius := flag.Float64("radius", domain.DefaultSunRadius, "sphere radius used for the fixture")
	flag.Parse()

	if *dump == "" {
		flag.Usage()
		os.Exit(1)
	}

	if code := run(*dump, *fixturePath, *radius); code != 0 {
		os.Exit(code)
	}
}

func run(dumpPath, fixturePath string, radius float64) int {
	fmt.Println("=== Flare Data Integrity Validation ===")
	fmt.Println()

	records, err := loadJSON[[]domain.FlareRecord](dumpPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: load dump: %v\n", err)
		return 1
	}

	phases := []*phase{
		validateRecords(records),
		validateLocations(records),
	}
	if fixturePath != "" {
		fx, err := loadJSON[fixture](fixturePath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "FATAL: load fixture: %v\n", err)
			return 1
		}
		phases = append(phases, validateSelection(records, fx, radius))
	}

	fmt.Println()
	allPassed := true
	for _, p := range phases {
		status := "\033[32mPASS\033[0m"
		if !p.passed() {
			status = fmt.Sprintf("\033[31mFAIL (%d errors)\033[0m", len(p.errors))
			allPassed = false
		}
		fmt.Printf("  %-42s %s\n", p.name, status)
	}

	fmt.Println()
	fmt.Printf("Records: %d in dump\n", len(records))

	for _, p := range phases {
		if p.passed() {
			continue
		}
		fmt.Printf("\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			fmt.Printf("  [%d] %s\n", i+1, e)
		}
	}

	if allPassed {
		fmt.Println("\nAll validations passed.")
		return 0
	}
	fmt.Println("\nValidation FAILED.")
	return 1
}

func loadJSON[T any](path string) (T, error) {
	var v T
	data, err := os.ReadFile(path)
	if err != nil {
		return v, err
	}
	err = json.Unmarshal(data, &v)
	return v, err
}

// ── Phase 1: Record shape ──

func validateRecords(records []domain.FlareRecord) *phase {
	p := &phase{name: "Phase 1: Record Shape (ids, classes, times)"}

	seen := map[string]int{}
	for i := range records {
		f := &records[i]
		if f.ID == "" {
			p.errorf("record %d: missing flrID", i)
		} else if prev, dup := seen[f.ID]; dup {
			p.errorf("record %d: flrID %q duplicates record %d", i, f.ID, prev)
		} else {
			seen[f.ID] = i
		}

		if _, ok := domain.ParseFlareClass(f.ClassType); !ok {
			p.errorf("record %d (%s): classType %q is not <A|B|C|M|X><number>", i, f.ID, f.ClassType)
		}

		begin, err := time.Parse(donkiTimeLayout, f.BeginTime)
		if err != nil {
			p.errorf("record %d (%s): beginTime %q: %v", i, f.ID, f.BeginTime, err)
			continue
		}
		checkOrdered(p, i, f, begin, "peakTime", f.PeakTime)
		checkOrdered(p, i, f, begin, "endTime", f.EndTime)
	}
	return p
}

// checkOrdered validates an optional timestamp that must not precede beginTime.
func checkOrdered(p *phase, i int, f *domain.FlareRecord, begin time.Time, name, value string) {
	if value == "" {
		return
	}
	t, err := time.Parse(donkiTimeLayout, value)
	if err != nil {
		p.errorf("record %d (%s): %s %q: %v", i, f.ID, name, value, err)
		return
	}
	if t.Before(begin) {
		p.errorf("record %d (%s): %s %s precedes beginTime %s", i, f.ID, name, value, f.BeginTime)
	}
}

// ── Phase 2: Locations ──

func validateLocations(records []domain.FlareRecord) *phase {
	p := &phase{name: "Phase 2: Source Locations (grammar, range)"}

	var located int
	for i := range records {
		f := &records[i]
		if !f.HasLocation() {
			continue
		}
		located++
		coord, ok := domain.LookupLocation(f.SourceLocation)
		if !ok {
			p.errorf("record %d (%s): sourceLocation %q lacks a hemisphere token", i, f.ID, f.SourceLocation)
			continue
		}
		if math.Abs(coord.LatitudeDeg) > 90 {
			p.errorf("record %d (%s): latitude %g out of range", i, f.ID, coord.LatitudeDeg)
		}
		if math.Abs(coord.LongitudeDeg) > 180 {
			p.errorf("record %d (%s): longitude %g out of range", i, f.ID, coord.LongitudeDeg)
		}
	}
	if len(records) > 0 && located == 0 {
		fmt.Println("  Note: no located records; selection falls back to the first record")
	}
	return p
}

// ── Phase 3: Selection ──
// Re-runs ranking on the dump and compares it with the fixture.

func validateSelection(records []domain.FlareRecord, fx fixture, radius float64) *phase {
	p := &phase{name: "Phase 3: Selection (fixture vs ranking)"}

	got := domain.BuildSelection(fx.Selection.FetchID, fx.Selection.Range, records, radius)

	if got.FlareCount != fx.Selection.FlareCount {
		p.errorf("flare_count: expected %d, got %d", got.FlareCount, fx.Selection.FlareCount)
	}
	switch {
	case got.Flare == nil && fx.Selection.Flare != nil:
		p.errorf("fixture selects %q but the dump yields no selection", fx.Selection.Flare.ID)
	case got.Flare != nil && fx.Selection.Flare == nil:
		p.errorf("dump selects %q but the fixture has no selection", got.Flare.ID)
	case got.Flare != nil && got.Flare.ID != fx.Selection.Flare.ID:
		p.errorf("selected flare: expected %q, got %q", got.Flare.ID, fx.Selection.Flare.ID)
	}
	compareMarkers(p, got.Marker, fx.Selection.Marker)

	ranked := domain.RankFlares(records)
	if len(ranked) != len(fx.Ranked) {
		p.errorf("ranked length: expected %d, got %d", len(ranked), len(fx.Ranked))
		return p
	}
	for i := range ranked {
		if ranked[i].ID != fx.Ranked[i].ID {
			p.errorf("rank %d: expected %q, got %q", i+1, ranked[i].ID, fx.Ranked[i].ID)
		}
	}
	return p
}

func compareMarkers(p *phase, want, got *domain.Marker) {
	if (want == nil) != (got == nil) {
		p.errorf("marker presence: expected %v, got %v", want != nil, got != nil)
		return
	}
	if want == nil {
		return
	}
	if !floatEq(want.Intensity, got.Intensity) {
		p.errorf("marker intensity: expected %g, got %g", want.Intensity, got.Intensity)
	}
	w, g := want.Position, got.Position
	if !floatEq(w.X, g.X) || !floatEq(w.Y, g.Y) || !floatEq(w.Z, g.Z) {
		p.errorf("marker position: expected (%g, %g, %g), got (%g, %g, %g)", w.X, w.Y, w.Z, g.X, g.Y, g.Z)
	}
}

func floatEq(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

// Command genmock reads a raw DONKI FLR dump and writes a selection fixture:
// the selected flare, its marker, and the full ranking. It runs the real
// domain ranking, so cmd/validate can later check the fixture against a dump.
//
// Usage:
//
//	go run ./cmd/genmock \
//	  -in data/mock/donki_flr_2024-05.json \
//	  -start 2024-05-01 -end 2024-05-16 \
//	  -out data/mock/selection_2024-05.json
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/couchcryptid/solar-flare-service/internal/domain"
)

// fixtureFetchID keeps generated fixtures byte-stable across runs.
const fixtureFetchID = "00000000-0000-0000-0000-000000000001"

// fixture is the generated file: the selection plus the full ranking.
type fixture struct {
	Selection domain.Selection     `json:"selection"`
	Ranked    []domain.FlareRecord `json:"ranked"`
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	in := flag.String("in", "", "path to a raw DONKI FLR JSON dump")
	out := flag.String("out", "", "output path for the selection fixture")
	start := flag.String("start", "", "range start, YYYY-MM-DD")
	end := flag.String("end", "", "range end, YYYY-MM-DD")
	radius := flag.Float64("radius", domain.DefaultSunRadius, "sphere radius")
	flag.Parse()

	if *in == "" || *out == "" || *start == "" || *end == "" {
		flag.Usage()
		return fmt.Errorf("missing required flags: -in, -out, -start, -end")
	}

	r, err := domain.ParseDateRange(*start, *end)
	if err != nil {
		return err
	}

	// Fixed clock for reproducible SelectedAt timestamps.
	domain.SetClock(clockwork.NewFakeClockAt(r.End.Add(24 * time.Hour)))
	defer domain.SetClock(nil)

	records, err := loadRecords(*in)
	if err != nil {
		return fmt.Errorf("loading %s: %w", *in, err)
	}
	log.Printf("loaded %d records", len(records))

	fx := fixture{
		Selection: domain.BuildSelection(fixtureFetchID, r, records, *radius),
		Ranked:    domain.RankFlares(records),
	}
	if err := writeJSON(*out, fx); err != nil {
		return fmt.Errorf("writing fixture: %w", err)
	}
	log.Printf("wrote selection fixture: %s", *out)

	printStats(records, fx)
	return nil
}

func loadRecords(path string) ([]domain.FlareRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var records []domain.FlareRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, err
	}
	return records, nil
}

func writeJSON(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	return os.WriteFile(path, data, 0o600)
}

type classCount struct {
	letter string
	count  int
}

func printStats(records []domain.FlareRecord, fx fixture) {
	letters := map[string]int{}
	var located, unparseable int
	for i := range records {
		if records[i].HasLocation() {
			located++
		}
		c, ok := domain.ParseFlareClass(records[i].ClassType)
		if !ok {
			unparseable++
			continue
		}
		letters[string(c.Letter)]++
	}

	cc := make([]classCount, 0, len(letters))
	for l, n := range letters {
		cc = append(cc, classCount{l, n})
	}
	sort.Slice(cc, func(i, j int) bool {
		return domain.SeverityScore(cc[i].letter+"1") > domain.SeverityScore(cc[j].letter+"1")
	})

	fmt.Println("\n=== Stats for updating test assertions ===")
	fmt.Printf("Total: %d, located: %d, unparseable class: %d\n", len(records), located, unparseable)
	fmt.Print("By class: ")
	for _, c := range cc {
		fmt.Printf("%s=%d ", c.letter, c.count)
	}
	fmt.Println()

	sel := fx.Selection
	if !sel.HasFlare() {
		fmt.Println("Selected: none")
		return
	}
	fmt.Printf("Selected: %s %s at %q (score %g)\n", sel.Flare.ID, sel.Flare.ClassType, sel.Flare.SourceLocation, sel.Score)
	if sel.Marker != nil {
		p := sel.Marker.Position
		fmt.Printf("  Position: (%.6f, %.6f, %.6f)\n", p.X, p.Y, p.Z)
		fmt.Printf("  Intensity: %g\n", sel.Marker.Intensity)
	}
	fmt.Print("Ranking:")
	for _, f := range fx.Ranked {
		fmt.Printf(" %s", f.ClassType)
	}
	fmt.Println()
}

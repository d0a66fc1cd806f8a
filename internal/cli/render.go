package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"

	"github.com/couchcryptid/solar-flare-service/internal/domain"
)

const (
	outputPanel = "panel"
	outputJSON  = "json"
	outputYAML  = "yaml"
)

func validateOutput(format string) error {
	switch format {
	case outputPanel, outputJSON, outputYAML:
		return nil
	}
	return fmt.Errorf("unknown output format %q (want panel, json, or yaml)", format)
}

type pointView struct {
	LatitudeDeg  float64 `json:"latitude_deg" yaml:"latitude_deg"`
	LongitudeDeg float64 `json:"longitude_deg" yaml:"longitude_deg"`
}

type vectorView struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
	Z float64 `json:"z" yaml:"z"`
}

type flareView struct {
	ID             string  `json:"id" yaml:"id"`
	ClassType      string  `json:"class_type" yaml:"class_type"`
	SourceLocation string  `json:"source_location,omitempty" yaml:"source_location,omitempty"`
	PeakTime       string  `json:"peak_time,omitempty" yaml:"peak_time,omitempty"`
	ActiveRegion   string  `json:"active_region,omitempty" yaml:"active_region,omitempty"`
	Score          float64 `json:"score" yaml:"score"`
}

type markerView struct {
	Coordinate pointView  `json:"coordinate" yaml:"coordinate"`
	Position   vectorView `json:"position" yaml:"position"`
	Intensity  float64    `json:"intensity" yaml:"intensity"`
}

type selectionView struct {
	FetchID    string      `json:"fetch_id" yaml:"fetch_id"`
	Range      string      `json:"range" yaml:"range"`
	FlareCount int         `json:"flare_count" yaml:"flare_count"`
	Flare      *flareView  `json:"flare" yaml:"flare"`
	Marker     *markerView `json:"marker" yaml:"marker"`
	Ranked     []flareView `json:"ranked,omitempty" yaml:"ranked,omitempty"`
}

type locationView struct {
	Location   string                        `json:"location" yaml:"location"`
	Found      bool                          `json:"found" yaml:"found"`
	Coordinate domain.HeliographicCoordinate `json:"-" yaml:"-"`
	Position   domain.Cartesian3D            `json:"-" yaml:"-"`
	Point      pointView                     `json:"coordinate" yaml:"coordinate"`
	Vector     vectorView                    `json:"position" yaml:"position"`
}

type classView struct {
	ClassType string  `json:"class_type" yaml:"class_type"`
	Parsed    bool    `json:"parsed" yaml:"parsed"`
	Score     float64 `json:"score" yaml:"score"`
	Intensity float64 `json:"intensity" yaml:"intensity"`
}

func newFlareView(f domain.FlareRecord) flareView {
	return flareView{
		ID:             f.ID,
		ClassType:      f.ClassType,
		SourceLocation: f.SourceLocation,
		PeakTime:       f.PeakTime,
		ActiveRegion:   string(f.ActiveRegionNum),
		Score:          domain.SeverityScore(f.ClassType),
	}
}

func newSelectionView(sel domain.Selection, ranked []domain.FlareRecord) selectionView {
	v := selectionView{
		FetchID:    sel.FetchID,
		Range:      sel.Range.String(),
		FlareCount: sel.FlareCount,
	}
	if sel.Flare != nil {
		fv := newFlareView(*sel.Flare)
		v.Flare = &fv
	}
	if sel.Marker != nil {
		v.Marker = &markerView{
			Coordinate: pointView(sel.Marker.Coordinate),
			Position:   vectorView(sel.Marker.Position),
			Intensity:  sel.Marker.Intensity,
		}
	}
	for _, f := range ranked {
		v.Ranked = append(v.Ranked, newFlareView(f))
	}
	return v
}

func encode(w io.Writer, format string, v any) error {
	switch format {
	case outputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case outputYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	}
	return validateOutput(format)
}

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("208"))
	labelStyle = lipgloss.NewStyle().Faint(true).Width(12)
	faintStyle = lipgloss.NewStyle().Faint(true)
	panelStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Padding(0, 1)
)

func row(label, value string) string {
	return lipgloss.JoinHorizontal(lipgloss.Top, labelStyle.Render(label), value)
}

func renderSelection(w io.Writer, format string, sel domain.Selection, ranked []domain.FlareRecord) error {
	v := newSelectionView(sel, ranked)
	if format != outputPanel {
		return encode(w, format, v)
	}

	lines := []string{
		titleStyle.Render("Most significant flare"),
		row("range", v.Range),
		row("flares", fmt.Sprintf("%d", v.FlareCount)),
	}
	if v.Flare == nil {
		lines = append(lines, faintStyle.Render("no flares in range"))
	} else {
		lines = append(lines,
			row("id", v.Flare.ID),
			row("class", v.Flare.ClassType),
			row("location", orDash(v.Flare.SourceLocation)),
			row("peak", orDash(v.Flare.PeakTime)),
			row("region", orDash(v.Flare.ActiveRegion)),
			row("score", formatFloat(v.Flare.Score)),
		)
	}
	if v.Marker != nil {
		lines = append(lines,
			row("position", formatVector(v.Marker.Position)),
			row("intensity", formatFloat(v.Marker.Intensity)),
		)
	}
	out := panelStyle.Render(strings.Join(lines, "\n"))

	if len(v.Ranked) > 0 {
		ranks := []string{titleStyle.Render("Ranking")}
		for i, f := range v.Ranked {
			ranks = append(ranks, fmt.Sprintf("%2d. %-6s %-8s %s", i+1, f.ClassType, f.SourceLocation, f.ID))
		}
		out = lipgloss.JoinVertical(lipgloss.Left, out, panelStyle.Render(strings.Join(ranks, "\n")))
	}
	_, err := fmt.Fprintln(w, out)
	return err
}

func renderLocations(w io.Writer, format string, radius float64, locs []locationView) error {
	for i := range locs {
		locs[i].Point = pointView(locs[i].Coordinate)
		locs[i].Vector = vectorView(locs[i].Position)
	}
	if format != outputPanel {
		return encode(w, format, locs)
	}

	lines := []string{titleStyle.Render(fmt.Sprintf("Locations (radius %s)", formatFloat(radius)))}
	for _, l := range locs {
		note := ""
		if !l.Found {
			note = faintStyle.Render("  (unparseable, using 0°,0°)")
		}
		lines = append(lines, fmt.Sprintf("%-10s lat %7.2f  lon %7.2f  →  %s%s",
			l.Location, l.Point.LatitudeDeg, l.Point.LongitudeDeg, formatVector(l.Vector), note))
	}
	_, err := fmt.Fprintln(w, panelStyle.Render(strings.Join(lines, "\n")))
	return err
}

func renderClasses(w io.Writer, format string, classes []classView) error {
	if format != outputPanel {
		return encode(w, format, classes)
	}

	lines := []string{titleStyle.Render("Flare classes")}
	for _, c := range classes {
		note := ""
		if !c.Parsed {
			note = faintStyle.Render("  (unparseable)")
		}
		lines = append(lines, fmt.Sprintf("%-6s score %10s  intensity %s%s",
			c.ClassType, formatFloat(c.Score), formatFloat(c.Intensity), note))
	}
	_, err := fmt.Fprintln(w, panelStyle.Render(strings.Join(lines, "\n")))
	return err
}

func formatVector(v vectorView) string {
	return fmt.Sprintf("(%.3f, %.3f, %.3f)", v.X, v.Y, v.Z)
}

func formatFloat(f float64) string {
	return fmt.Sprintf("%g", f)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseFlareClass(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		want   FlareClass
		wantOK bool
	}{
		{"integer subgrade", "X5", FlareClass{'X', 5}, true},
		{"decimal subgrade", "M1.7", FlareClass{'M', 1.7}, true},
		{"lowercase", "c3.2", FlareClass{'C', 3.2}, true},
		{"surrounding space", " B9.9 ", FlareClass{'B', 9.9}, true},
		{"trailing dot", "A4.", FlareClass{'A', 4}, true},
		{"trailing text", "X8.7 (est)", FlareClass{'X', 8.7}, true},
		{"letter only", "X", FlareClass{}, false},
		{"unknown letter", "Q5", FlareClass{}, false},
		{"empty", "", FlareClass{}, false},
		{"number first", "5X", FlareClass{}, false},
		{"dot without digits", "M.5", FlareClass{}, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := ParseFlareClass(tc.input)
			assert.Equal(t, tc.wantOK, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestFlareClass_String(t *testing.T) {
	assert.Equal(t, "X8.7", FlareClass{'X', 8.7}.String())
	assert.Equal(t, "C1", FlareClass{'C', 1}.String())
}

func TestSeverityScore(t *testing.T) {
	tests := []struct {
		classType string
		expected  float64
	}{
		{"A1", 1},
		{"B2", 20},
		{"C3", 300},
		{"M3", 3000},
		{"X5", 50000},
		{"X1", 10000},
		{"M9.9", 9900},
		{"bogus", 0},
		{"", 0},
	}

	for _, tc := range tests {
		t.Run(tc.classType, func(t *testing.T) {
			assert.InDelta(t, tc.expected, SeverityScore(tc.classType), floatTolerance)
		})
	}
}

func TestIntensity(t *testing.T) {
	tests := []struct {
		classType string
		expected  float64
	}{
		{"X2", 5.6},
		{"C1", 1.2},
		{"M5", 4.0},
		{"B0", 0.5},
		{"A5", 0.6},
		{"", 1},
		{"unknown", 1},
	}

	for _, tc := range tests {
		t.Run(tc.classType, func(t *testing.T) {
			assert.InDelta(t, tc.expected, Intensity(tc.classType), floatTolerance)
		})
	}
}

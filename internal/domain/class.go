package domain

import (
	"strconv"
	"strings"
)

// classWeights maps a GOES class letter to its severity weight.
var classWeights = map[byte]float64{
	'A': 1,
	'B': 10,
	'C': 100,
	'M': 1000,
	'X': 10000,
}

// classIntensity maps a GOES class letter to its base rendering intensity.
var classIntensity = map[byte]float64{
	'A': 0.3,
	'B': 0.5,
	'C': 1.0,
	'M': 2.0,
	'X': 4.0,
}

// FlareClass is a parsed GOES flare class, e.g. X5.2 → {X, 5.2}.
type FlareClass struct {
	Letter   byte
	SubGrade float64
}

func (c FlareClass) String() string {
	return string(c.Letter) + strconv.FormatFloat(c.SubGrade, 'f', -1, 64)
}

// ParseFlareClass reads a class letter followed by a numeric sub-grade from
// the start of classType. Trailing text after the number is ignored.
func ParseFlareClass(classType string) (FlareClass, bool) {
	s := strings.ToUpper(strings.TrimSpace(classType))
	if len(s) < 2 {
		return FlareClass{}, false
	}
	letter := s[0]
	if _, ok := classWeights[letter]; !ok {
		return FlareClass{}, false
	}

	end := 1
	for end < len(s) && isDigit(s[end]) {
		end++
	}
	if end == 1 {
		return FlareClass{}, false
	}
	if end < len(s) && s[end] == '.' {
		frac := end + 1
		for frac < len(s) && isDigit(s[frac]) {
			frac++
		}
		end = frac
	}

	sub, err := strconv.ParseFloat(strings.TrimSuffix(s[1:end], "."), 64)
	if err != nil {
		return FlareClass{}, false
	}
	return FlareClass{Letter: letter, SubGrade: sub}, true
}

// SeverityScore ranks a flare class: class weight × sub-grade.
// Unparseable classes score 0.
func SeverityScore(classType string) float64 {
	c, ok := ParseFlareClass(classType)
	if !ok {
		return 0
	}
	return classWeights[c.Letter] * c.SubGrade
}

// Intensity is the rendering multiplier for a flare class:
// base(letter) × (1 + subgrade/5). Unparseable classes yield 1.
func Intensity(classType string) float64 {
	c, ok := ParseFlareClass(classType)
	if !ok {
		return 1
	}
	return classIntensity[c.Letter] * (1 + c.SubGrade/5)
}

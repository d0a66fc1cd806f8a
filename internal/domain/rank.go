package domain

import "sort"

// RankFlares returns the located records of a batch ordered by descending
// severity score. The sort is stable, so records with equal scores keep
// their batch order. The input is not modified.
func RankFlares(records []FlareRecord) []FlareRecord {
	located := make([]FlareRecord, 0, len(records))
	for _, r := range records {
		if r.HasLocation() {
			located = append(located, r)
		}
	}

	scores := make(map[string]float64, len(located))
	score := func(r FlareRecord) float64 {
		if s, ok := scores[r.ClassType]; ok {
			return s
		}
		s := SeverityScore(r.ClassType)
		scores[r.ClassType] = s
		return s
	}

	sort.SliceStable(located, func(i, j int) bool {
		return score(located[i]) > score(located[j])
	})
	return located
}

// SelectMostSignificant picks the flare to display from a batch.
//
// The highest-scoring record with a source location wins; ties go to the
// earliest record in the batch. When no record has a location the first
// record of the batch is returned unfiltered, and callers must treat it as
// "no marker drawn". An empty batch returns ok == false.
func SelectMostSignificant(records []FlareRecord) (FlareRecord, bool) {
	if len(records) == 0 {
		return FlareRecord{}, false
	}
	if ranked := RankFlares(records); len(ranked) > 0 {
		return ranked[0], true
	}
	return records[0], true
}

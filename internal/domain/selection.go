package domain

import "time"

// Selection is the output of one applied fetch: the flare chosen for
// display and, when it can be placed, its marker.
type Selection struct {
	FetchID    string       `json:"fetch_id"`
	Range      DateRange    `json:"range"`
	Flare      *FlareRecord `json:"flare"`
	Marker     *Marker      `json:"marker"`
	FlareCount int          `json:"flare_count"`
	Score      float64      `json:"score"`
	SelectedAt time.Time    `json:"selected_at"`
}

// HasFlare reports whether a flare was selected.
func (s Selection) HasFlare() bool { return s.Flare != nil }

// BuildSelection ranks a fetched batch and derives the marker for the
// winner. An empty batch yields a selection with no flare.
func BuildSelection(fetchID string, r DateRange, records []FlareRecord, radius float64) Selection {
	sel := Selection{
		FetchID:    fetchID,
		Range:      r,
		FlareCount: len(records),
		SelectedAt: clock.Now().UTC(),
	}

	flare, ok := SelectMostSignificant(records)
	if !ok {
		return sel
	}
	sel.Flare = &flare
	sel.Score = SeverityScore(flare.ClassType)
	if m, ok := MarkerFor(flare, radius); ok {
		sel.Marker = &m
	}
	return sel
}

package domain

import (
	"encoding/json"
	"strconv"
)

// FlareRecord is a single DONKI FLR event as returned by the API.
type FlareRecord struct {
	ID              string        `json:"flrID"`
	ClassType       string        `json:"classType"`
	SourceLocation  string        `json:"sourceLocation,omitempty"`
	BeginTime       string        `json:"beginTime"`
	PeakTime        string        `json:"peakTime,omitempty"`
	EndTime         string        `json:"endTime,omitempty"`
	ActiveRegionNum RegionNumber  `json:"activeRegionNum,omitempty"`
	Instruments     []Instrument  `json:"instruments,omitempty"`
	LinkedEvents    []LinkedEvent `json:"linkedEvents,omitempty"`
	Link            string        `json:"link,omitempty"`
}

// Instrument names an observing instrument, e.g. "GOES-P: EXIS 1.0-8.0".
type Instrument struct {
	DisplayName string `json:"displayName"`
}

// LinkedEvent references another DONKI activity, e.g. a CME.
type LinkedEvent struct {
	ActivityID string `json:"activityID"`
}

// HasLocation reports whether the record carries a source location and can
// therefore be drawn as a marker.
func (f FlareRecord) HasLocation() bool {
	return f.SourceLocation != ""
}

// RegionNumber is a NOAA active region number. DONKI serializes it as an
// integer or null; older dumps sometimes carry it as a string.
type RegionNumber string

// UnmarshalJSON accepts a number, a string, or null.
func (r *RegionNumber) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*r = ""
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*r = RegionNumber(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*r = RegionNumber(n.String())
	return nil
}

// MarshalJSON writes numeric region numbers as JSON numbers and null when empty.
func (r RegionNumber) MarshalJSON() ([]byte, error) {
	if r == "" {
		return []byte("null"), nil
	}
	if _, err := strconv.Atoi(string(r)); err == nil {
		return []byte(r), nil
	}
	return json.Marshal(string(r))
}

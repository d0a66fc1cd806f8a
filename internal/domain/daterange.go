package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

// DateLayout is the calendar date format DONKI expects for startDate/endDate.
const DateLayout = "2006-01-02"

// ErrInvalidDateRange is returned when a date range cannot be parsed or ends
// before it starts.
var ErrInvalidDateRange = errors.New("invalid date range")

// DateRange is an inclusive span of UTC calendar days.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// ParseDateRange parses two YYYY-MM-DD dates.
func ParseDateRange(start, end string) (DateRange, error) {
	s, err := time.Parse(DateLayout, strings.TrimSpace(start))
	if err != nil {
		return DateRange{}, fmt.Errorf("%w: start date %q", ErrInvalidDateRange, start)
	}
	e, err := time.Parse(DateLayout, strings.TrimSpace(end))
	if err != nil {
		return DateRange{}, fmt.Errorf("%w: end date %q", ErrInvalidDateRange, end)
	}
	if e.Before(s) {
		return DateRange{}, fmt.Errorf("%w: end %s is before start %s", ErrInvalidDateRange, end, start)
	}
	return DateRange{Start: s, End: e}, nil
}

// TrailingDays returns the range of the last days calendar days ending on
// the UTC date of now. days < 1 is treated as 1.
func TrailingDays(now time.Time, days int) DateRange {
	if days < 1 {
		days = 1
	}
	end := truncateDay(now)
	return DateRange{Start: end.AddDate(0, 0, -(days - 1)), End: end}
}

// StartDate formats the start as YYYY-MM-DD.
func (r DateRange) StartDate() string { return r.Start.Format(DateLayout) }

// EndDate formats the end as YYYY-MM-DD.
func (r DateRange) EndDate() string { return r.End.Format(DateLayout) }

// IsZero reports whether the range is unset.
func (r DateRange) IsZero() bool { return r.Start.IsZero() && r.End.IsZero() }

func (r DateRange) String() string {
	return r.StartDate() + ".." + r.EndDate()
}

type dateRangeJSON struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

func (r DateRange) MarshalJSON() ([]byte, error) {
	if r.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(dateRangeJSON{Start: r.StartDate(), End: r.EndDate()})
}

func (r *DateRange) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*r = DateRange{}
		return nil
	}
	var v dateRangeJSON
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	parsed, err := ParseDateRange(v.Start, v.End)
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

func truncateDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

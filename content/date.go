package content

import (
	"fmt"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// Date is a content date. Dates written without a UTC offset stay naive
// unless the site sets a timezone.
type Date struct {
	Time    time.Time
	HasZone bool
}

// shiftZone is a fixed zone used to tell whether a date string carries its
// own offset. A string with an offset parses to the same instant in any zone.
var shiftZone = time.FixedZone("shift", 7*3600+1800)

// ParseDate parses s in any common layout. When s has no offset and loc is
// non-nil the date is placed in loc, otherwise it is kept naive.
func ParseDate(s string, loc *time.Location) (Date, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Date{}, nil
	}

	t, err := dateparse.ParseIn(s, time.UTC)
	if err != nil {
		return Date{}, fmt.Errorf("parsing date %q: %w", s, err)
	}

	shifted, err := dateparse.ParseIn(s, shiftZone)
	if err != nil {
		return Date{}, fmt.Errorf("parsing date %q: %w", s, err)
	}
	if t.Equal(shifted) {
		return Date{Time: t, HasZone: true}, nil
	}

	if loc != nil {
		t, err := dateparse.ParseIn(s, loc)
		if err != nil {
			return Date{}, fmt.Errorf("parsing date %q: %w", s, err)
		}
		return Date{Time: t, HasZone: true}, nil
	}

	return Date{Time: t}, nil
}

// Zoned implements jsonfeed.Zoned
func (d Date) Zoned() (time.Time, bool) {
	return d.Time, d.HasZone
}

// IsZero reports whether the date is unset
func (d Date) IsZero() bool {
	return d.Time.IsZero()
}

// Compare orders dates by instant
func (d Date) Compare(o Date) int {
	return d.Time.Compare(o.Time)
}

// DateOnly returns the date as YYYY-MM-DD
func (d Date) DateOnly() string {
	if d.IsZero() {
		return ""
	}
	return d.Time.Format(time.DateOnly)
}

// String formats the date, without an offset when naive
func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	if !d.HasZone {
		return d.Time.Format("2006-01-02T15:04:05")
	}
	return d.Time.Format(time.RFC3339)
}

// Package monthutil provides calendar-month arithmetic for the projection
// engine. A Month is a year plus a month of year, serialized as "YYYY-MM".
package monthutil

import (
	"fmt"
	"time"
)

// Layout is the wire format for calendar months, in both input files and
// rendered output.
const Layout = "2006-01"

// Month identifies a single calendar month.
type Month struct {
	Year int
	Mon  time.Month
}

// Parse parses a month in "YYYY-MM" form.
func Parse(s string) (Month, error) {
	t, err := time.Parse(Layout, s)
	if err != nil {
		return Month{}, fmt.Errorf("invalid month %q (want YYYY-MM): %w", s, err)
	}
	return Month{Year: t.Year(), Mon: t.Month()}, nil
}

// MustParse parses a month and panics on failure. Intended for tests and
// compile-time-known constants.
func MustParse(s string) Month {
	m, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return m
}

// FromTime truncates a timestamp to its calendar month.
func FromTime(t time.Time) Month {
	return Month{Year: t.Year(), Mon: t.Month()}
}

// IsZero reports whether m is the zero Month.
func (m Month) IsZero() bool {
	return m.Year == 0 && m.Mon == 0
}

func (m Month) String() string {
	return fmt.Sprintf("%04d-%02d", m.Year, int(m.Mon))
}

// index returns the absolute month ordinal, making comparisons and
// differences a single subtraction.
func (m Month) index() int {
	return m.Year*12 + int(m.Mon) - 1
}

// Compare returns -1, 0, or 1 as m is before, equal to, or after o.
func (m Month) Compare(o Month) int {
	switch {
	case m.index() < o.index():
		return -1
	case m.index() > o.index():
		return 1
	default:
		return 0
	}
}

// Before reports whether m is strictly earlier than o.
func (m Month) Before(o Month) bool { return m.Compare(o) < 0 }

// After reports whether m is strictly later than o.
func (m Month) After(o Month) bool { return m.Compare(o) > 0 }

// Equal reports whether m and o are the same calendar month.
func (m Month) Equal(o Month) bool { return m.Compare(o) == 0 }

// AddMonths returns the month n months after m (n may be negative).
func (m Month) AddMonths(n int) Month {
	idx := m.index() + n
	year := idx / 12
	mon := idx%12 + 1
	if mon <= 0 {
		mon += 12
		year--
	}
	return Month{Year: year, Mon: time.Month(mon)}
}

// Next returns the month immediately after m.
func (m Month) Next() Month { return m.AddMonths(1) }

// Time returns midnight UTC on the first day of the month.
func (m Month) Time() time.Time {
	return time.Date(m.Year, m.Mon, 1, 0, 0, 0, 0, time.UTC)
}

// MonthsBetween returns the signed number of months from a to b.
// MonthsBetween(a, a) == 0 and MonthsBetween(a, a.Next()) == 1.
func MonthsBetween(a, b Month) int {
	return b.index() - a.index()
}

// Span returns the inclusive number of months from a through b.
func Span(a, b Month) int {
	return MonthsBetween(a, b) + 1
}

// MarshalText implements encoding.TextMarshaler, so a Month round-trips
// through JSON, YAML, and TOML as its "YYYY-MM" string.
func (m Month) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Month) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

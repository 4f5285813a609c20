package monthutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		input   string
		want    Month
		wantErr bool
	}{
		{"2025-01", Month{Year: 2025, Mon: time.January}, false},
		{"1999-12", Month{Year: 1999, Mon: time.December}, false},
		{"2025-13", Month{}, true},
		{"2025-00", Month{}, true},
		{"2025", Month{}, true},
		{"01-2025", Month{}, true},
		{"", Month{}, true},
	}

	for _, tt := range tests {
		got, err := Parse(tt.input)
		if tt.wantErr {
			assert.Error(t, err, "Parse(%q)", tt.input)
			continue
		}
		require.NoError(t, err, "Parse(%q)", tt.input)
		assert.Equal(t, tt.want, got)
	}
}

func TestString(t *testing.T) {
	assert.Equal(t, "2025-03", MustParse("2025-03").String())
	assert.Equal(t, "0999-01", Month{Year: 999, Mon: time.January}.String())
}

func TestOrdering(t *testing.T) {
	jan := MustParse("2025-01")
	feb := MustParse("2025-02")

	assert.True(t, jan.Before(feb))
	assert.True(t, feb.After(jan))
	assert.True(t, jan.Equal(MustParse("2025-01")))
	assert.Equal(t, -1, jan.Compare(feb))
	assert.Equal(t, 1, feb.Compare(jan))
	assert.Equal(t, 0, jan.Compare(jan))
}

func TestAddMonths(t *testing.T) {
	tests := []struct {
		start string
		n     int
		want  string
	}{
		{"2025-01", 1, "2025-02"},
		{"2025-12", 1, "2026-01"},
		{"2025-06", 12, "2026-06"},
		{"2025-01", -1, "2024-12"},
		{"2025-03", -15, "2023-12"},
		{"2025-05", 0, "2025-05"},
	}

	for _, tt := range tests {
		got := MustParse(tt.start).AddMonths(tt.n)
		assert.Equal(t, tt.want, got.String(), "AddMonths(%s, %d)", tt.start, tt.n)
	}
}

func TestMonthsBetween(t *testing.T) {
	assert.Equal(t, 0, MonthsBetween(MustParse("2025-01"), MustParse("2025-01")))
	assert.Equal(t, 1, MonthsBetween(MustParse("2025-01"), MustParse("2025-02")))
	assert.Equal(t, 14, MonthsBetween(MustParse("2024-11"), MustParse("2026-01")))
	assert.Equal(t, -3, MonthsBetween(MustParse("2025-04"), MustParse("2025-01")))
}

func TestSpan(t *testing.T) {
	assert.Equal(t, 1, Span(MustParse("2025-01"), MustParse("2025-01")))
	assert.Equal(t, 3, Span(MustParse("2025-01"), MustParse("2025-03")))
}

func TestFromTime(t *testing.T) {
	ts := time.Date(2025, time.February, 15, 13, 45, 0, 0, time.UTC)
	assert.Equal(t, MustParse("2025-02"), FromTime(ts))
}

func TestTime(t *testing.T) {
	got := MustParse("2025-02").Time()
	assert.Equal(t, time.Date(2025, time.February, 1, 0, 0, 0, 0, time.UTC), got)
}

func TestTextRoundTrip(t *testing.T) {
	m := MustParse("2025-07")
	text, err := m.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "2025-07", string(text))

	var back Month
	require.NoError(t, back.UnmarshalText(text))
	assert.Equal(t, m, back)

	assert.Error(t, back.UnmarshalText([]byte("garbage")))
}

func TestIsZero(t *testing.T) {
	assert.True(t, Month{}.IsZero())
	assert.False(t, MustParse("2025-01").IsZero())
}

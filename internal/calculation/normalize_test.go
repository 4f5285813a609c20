package calculation

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jwtan/plancast/internal/domain"
	"github.com/jwtan/plancast/pkg/monthutil"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func datePtr(y int, m time.Month, d int) *time.Time {
	t := date(y, m, d)
	return &t
}

func TestNormalizeMonthly(t *testing.T) {
	item := &domain.RecurringItem{
		Kind:        domain.ItemExpense,
		GrossAmount: decimal.NewFromInt(3000),
		Frequency:   domain.FreqMonthly,
		StartDate:   date(2025, time.January, 1),
	}

	for _, month := range []string{"2025-01", "2025-06", "2026-12"} {
		got := NormalizeMonthly(item, monthutil.MustParse(month), item.GrossAmount)
		assert.True(t, got.Equal(decimal.NewFromInt(3000)), "month %s, got %s", month, got)
	}
}

func TestNormalizeYearlyAppliesInStartMonthOnly(t *testing.T) {
	item := &domain.RecurringItem{
		Kind:        domain.ItemExpense,
		GrossAmount: decimal.NewFromInt(1200),
		Frequency:   domain.FreqYearly,
		StartDate:   date(2024, time.April, 10),
	}

	assert.True(t, NormalizeMonthly(item, monthutil.MustParse("2025-04"), item.GrossAmount).Equal(decimal.NewFromInt(1200)),
		"full amount in the start month of each year")
	assert.True(t, NormalizeMonthly(item, monthutil.MustParse("2025-05"), item.GrossAmount).IsZero())
	assert.True(t, NormalizeMonthly(item, monthutil.MustParse("2025-03"), item.GrossAmount).IsZero())
}

func TestNormalizeWeeklyAndBiWeekly(t *testing.T) {
	weekly := &domain.RecurringItem{
		Frequency:   domain.FreqWeekly,
		GrossAmount: decimal.NewFromInt(100),
		StartDate:   date(2025, time.January, 1),
	}
	biweekly := &domain.RecurringItem{
		Frequency:   domain.FreqBiWeekly,
		GrossAmount: decimal.NewFromInt(100),
		StartDate:   date(2025, time.January, 1),
	}

	m := monthutil.MustParse("2025-02")
	assert.True(t, NormalizeMonthly(weekly, m, weekly.GrossAmount).Equal(decimal.NewFromInt(433)),
		"weekly x4.33")
	assert.True(t, NormalizeMonthly(biweekly, m, biweekly.GrossAmount).Equal(decimal.NewFromInt(217)),
		"bi-weekly x2.17")
}

func TestNormalizeQuarterly(t *testing.T) {
	item := &domain.RecurringItem{
		Frequency:   domain.FreqQuarterly,
		GrossAmount: decimal.NewFromInt(900),
		StartDate:   date(2025, time.February, 1),
	}

	tests := []struct {
		month string
		want  bool
	}{
		{"2025-02", true},
		{"2025-03", false},
		{"2025-04", false},
		{"2025-05", true},
		{"2025-08", true},
		{"2026-02", true},
	}
	for _, tt := range tests {
		got := NormalizeMonthly(item, monthutil.MustParse(tt.month), item.GrossAmount)
		if tt.want {
			assert.True(t, got.Equal(decimal.NewFromInt(900)), "month %s should carry the quarterly amount", tt.month)
		} else {
			assert.True(t, got.IsZero(), "month %s should be zero", tt.month)
		}
	}
}

// A custom-frequency expense with months [3,6,9,12] contributes only in
// March, June, September, and December buckets.
func TestNormalizeCustomMonths(t *testing.T) {
	item := &domain.RecurringItem{
		Kind:         domain.ItemExpense,
		Frequency:    domain.FreqCustom,
		GrossAmount:  decimal.NewFromInt(500),
		CustomMonths: []int{3, 6, 9, 12},
		StartDate:    date(2025, time.January, 1),
	}

	for monthIdx := 1; monthIdx <= 12; monthIdx++ {
		m := monthutil.Month{Year: 2025, Mon: time.Month(monthIdx)}
		got := NormalizeMonthly(item, m, item.GrossAmount)
		switch monthIdx {
		case 3, 6, 9, 12:
			assert.True(t, got.Equal(decimal.NewFromInt(500)), "month %d", monthIdx)
		default:
			assert.True(t, got.IsZero(), "month %d", monthIdx)
		}
	}
}

// A one-time income dated 2025-02-15 contributes its full amount only to
// bucket 2025-02 and zero everywhere else, end date or not.
func TestNormalizeOneTime(t *testing.T) {
	item := &domain.RecurringItem{
		Kind:        domain.ItemIncome,
		Frequency:   domain.FreqOneTime,
		GrossAmount: decimal.NewFromInt(8000),
		StartDate:   date(2025, time.February, 15),
		EndDate:     datePtr(2026, time.December, 31),
	}

	assert.True(t, NormalizeMonthly(item, monthutil.MustParse("2025-02"), item.GrossAmount).Equal(decimal.NewFromInt(8000)))
	for _, month := range []string{"2025-01", "2025-03", "2025-12", "2026-02"} {
		assert.True(t, NormalizeMonthly(item, monthutil.MustParse(month), item.GrossAmount).IsZero(), "month %s", month)
	}
}

func TestActiveInMonthWindow(t *testing.T) {
	item := &domain.RecurringItem{
		Frequency:   domain.FreqMonthly,
		GrossAmount: decimal.NewFromInt(100),
		StartDate:   date(2025, time.March, 1),
		EndDate:     datePtr(2025, time.June, 30),
	}

	assert.False(t, ActiveInMonth(item, monthutil.MustParse("2025-02")), "before start")
	assert.True(t, ActiveInMonth(item, monthutil.MustParse("2025-03")), "start month")
	assert.True(t, ActiveInMonth(item, monthutil.MustParse("2025-06")), "end month")
	assert.False(t, ActiveInMonth(item, monthutil.MustParse("2025-07")), "after end")
}

func TestActiveInMonthStaleEndDateWithMilestones(t *testing.T) {
	item := &domain.RecurringItem{
		Frequency:             domain.FreqMonthly,
		GrossAmount:           decimal.NewFromInt(100),
		StartDate:             date(2025, time.January, 1),
		EndDate:               datePtr(2025, time.March, 31),
		HonorFutureMilestones: true,
		FutureMilestones: []domain.FutureMilestone{
			{TargetMonth: monthutil.MustParse("2025-08"), Amount: decimal.NewFromInt(150)},
		},
	}

	// The milestone schedule extends past the end date, so the end date is
	// treated as absent.
	assert.True(t, ActiveInMonth(item, monthutil.MustParse("2025-05")))

	// Without the honor flag the end date stands.
	item.HonorFutureMilestones = false
	assert.False(t, ActiveInMonth(item, monthutil.MustParse("2025-05")))
}

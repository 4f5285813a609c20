package calculation

import (
	"github.com/jwtan/plancast/internal/domain"
	"github.com/jwtan/plancast/pkg/monthutil"
	"github.com/shopspring/decimal"
)

// Average weeks per month used to normalize sub-monthly frequencies.
var (
	weeksPerMonth   = decimal.NewFromFloat(4.33)
	biWeeksPerMonth = decimal.NewFromFloat(2.17)
)

const quarterlyStride = 3

// ActiveInMonth reports whether an item can contribute anything to month m.
// Items whose start month is after m, or whose end month is before m, are
// inactive. An end date is ignored when the item honors future milestones
// that extend past it: the milestone schedule supersedes a stale end date.
func ActiveInMonth(item *domain.RecurringItem, m monthutil.Month) bool {
	if m.Before(item.StartMonth()) {
		return false
	}
	if end, ok := item.EndMonth(); ok && m.After(end) {
		return item.HonorFutureMilestones && item.HasMilestonesPastEnd()
	}
	return true
}

// NormalizeMonthly converts a recurring item plus its effective per-period
// amount into the item's contribution to month m. The amount has already
// been through override resolution and, for contribution-subject income,
// net conversion.
//
// Yearly items allocate the full amount in the item's start month of each
// year rather than spreading it across twelve months; the engine reports
// this as an assumption.
func NormalizeMonthly(item *domain.RecurringItem, m monthutil.Month, amount decimal.Decimal) decimal.Decimal {
	if !ActiveInMonth(item, m) {
		return decimal.Zero
	}

	switch item.Frequency {
	case domain.FreqMonthly:
		return amount
	case domain.FreqYearly:
		if m.Mon == item.StartMonth().Mon {
			return amount
		}
	case domain.FreqWeekly:
		return amount.Mul(weeksPerMonth)
	case domain.FreqBiWeekly:
		return amount.Mul(biWeeksPerMonth)
	case domain.FreqQuarterly:
		if monthutil.MonthsBetween(item.StartMonth(), m)%quarterlyStride == 0 {
			return amount
		}
	case domain.FreqCustom:
		if item.HasCustomMonth(int(m.Mon)) {
			return amount
		}
	case domain.FreqOneTime:
		// Full amount only in the exact start month; excluded everywhere
		// else regardless of end date.
		if m.Equal(item.StartMonth()) {
			return amount
		}
	}
	return decimal.Zero
}

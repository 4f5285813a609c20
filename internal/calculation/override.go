package calculation

import (
	"github.com/jwtan/plancast/internal/domain"
	"github.com/jwtan/plancast/pkg/monthutil"
	"github.com/shopspring/decimal"
)

// AmountSource records which of the three sources supplied an income item's
// effective gross amount for a month.
type AmountSource string

const (
	SourceBase       AmountSource = "base"
	SourceHistorical AmountSource = "historical"
	SourceMilestone  AmountSource = "milestone"
)

// ResolveGross chooses the effective gross amount for an income item in
// month m. Priority: recorded historical amount (only for months before
// now), then the most recent scheduled milestone at or before m, then the
// base recurring amount.
func ResolveGross(item *domain.RecurringItem, m, now monthutil.Month) (decimal.Decimal, AmountSource) {
	if m.Before(now) {
		for _, h := range item.HistoricalOverrides {
			if h.Matches(m) {
				return h.MonthlyAmount(), SourceHistorical
			}
		}
	}

	if item.HonorFutureMilestones {
		var best *domain.FutureMilestone
		for i := range item.FutureMilestones {
			ms := &item.FutureMilestones[i]
			if ms.TargetMonth.After(m) {
				continue
			}
			if best == nil || ms.TargetMonth.After(best.TargetMonth) {
				best = ms
			}
		}
		if best != nil {
			return best.Amount, SourceMilestone
		}
	}

	return item.GrossAmount, SourceBase
}

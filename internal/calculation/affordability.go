package calculation

import (
	"github.com/jwtan/plancast/internal/domain"
	"github.com/jwtan/plancast/pkg/monthutil"
	"github.com/shopspring/decimal"
)

// Floor sources reported in the affordability analysis.
const (
	FloorSourceRequest = "request"
	FloorSourceDefault = "default-6x-net-income"
)

// MaxAffordableExpense finds the largest one-time expense addable at
// targetMonth without any month from the target through the end of the
// range dropping below floor. An expense added at the target reduces every
// subsequent cumulative balance by the same amount, so the tightest later
// month is always the binding constraint: the answer is simply the minimum
// baseline cumulative balance from the target onward, minus the floor,
// clamped at zero.
//
// The buckets must come from a baseline (no-hypotheticals) run.
func MaxAffordableExpense(baseline []domain.MonthBucket, targetMonth monthutil.Month, floor decimal.Decimal, floorSource string) *domain.AffordabilityAnalysis {
	analysis := &domain.AffordabilityAnalysis{
		TargetMonth: targetMonth,
		Floor:       floor,
		FloorSource: floorSource,
	}

	first := true
	for _, b := range baseline {
		if b.Month.Before(targetMonth) {
			continue
		}
		if first || b.CumulativeBalance.LessThan(analysis.MinBalanceFromTarget) {
			analysis.MinBalanceFromTarget = b.CumulativeBalance
			analysis.BindingMonth = b.Month
			first = false
		}
	}

	headroom := analysis.MinBalanceFromTarget.Sub(floor)
	if headroom.LessThan(decimal.Zero) {
		headroom = decimal.Zero
	}
	analysis.MaxAffordableOneTimeExpense = headroom
	return analysis
}

package calculation

import (
	"fmt"

	"github.com/jwtan/plancast/internal/domain"
	"github.com/shopspring/decimal"
)

// EvaluateConstraints checks caller-supplied minimum-balance constraints
// against the projected buckets (with hypotheticals applied). Breaches are
// reported as warnings, never as errors.
func EvaluateConstraints(buckets []domain.MonthBucket, minEndBalance, minMonthlyBalance *decimal.Decimal) *domain.ConstraintsEvaluation {
	eval := &domain.ConstraintsEvaluation{
		MinEndBalance:     minEndBalance,
		MinMonthlyBalance: minMonthlyBalance,
	}

	if minEndBalance != nil && len(buckets) > 0 {
		final := buckets[len(buckets)-1].CumulativeBalance
		if final.LessThan(*minEndBalance) {
			eval.MinEndBalanceBreached = true
			eval.Warnings = append(eval.Warnings, fmt.Sprintf(
				"final balance %s falls short of the requested end balance %s",
				final.StringFixed(2), minEndBalance.StringFixed(2)))
		}
	}

	if minMonthlyBalance != nil {
		for _, b := range buckets {
			if b.CumulativeBalance.LessThan(*minMonthlyBalance) {
				month := b.Month
				eval.MinMonthlyBalanceBreached = true
				eval.FirstBreachMonth = &month
				eval.Warnings = append(eval.Warnings, fmt.Sprintf(
					"balance drops below the monthly floor %s in %s (%s)",
					minMonthlyBalance.StringFixed(2), month, b.CumulativeBalance.StringFixed(2)))
				break
			}
		}
	}

	return eval
}

package calculation

import (
	"fmt"

	"github.com/jwtan/plancast/internal/domain"
	"github.com/shopspring/decimal"
)

// FindSafePurchaseMonth scans the baseline months chronologically and
// returns the earliest month where spending the fixed amount still leaves
// at least the safety threshold (six months of baseline net income). When
// no month in range qualifies, RecommendedMonth is nil and the note
// explains why.
func FindSafePurchaseMonth(baseline []domain.MonthBucket, amount, monthlyNetIncome decimal.Decimal) *domain.SafePurchaseRecommendation {
	threshold := monthlyNetIncome.Mul(yellowMultiple)
	rec := &domain.SafePurchaseRecommendation{
		ExpenseAmount: amount,
		Threshold:     threshold,
	}

	for i, b := range baseline {
		remaining := b.CumulativeBalance.Sub(amount)
		if remaining.GreaterThanOrEqual(threshold) {
			month := b.Month
			rec.RecommendedMonth = &month
			rec.MonthsToWait = i
			rec.IsSafeNow = i == 0
			rec.BalanceAfterPurchase = remaining
			if monthlyNetIncome.GreaterThan(decimal.Zero) {
				rec.EmergencyFundMonthsAfter = remaining.Div(monthlyNetIncome)
			}
			if rec.IsSafeNow {
				rec.Note = fmt.Sprintf("Spending %s now still leaves %s, above the emergency-fund threshold.",
					amount.StringFixed(2), remaining.StringFixed(2))
			} else {
				rec.Note = fmt.Sprintf("Waiting %d month(s) until %s keeps the emergency fund intact after the purchase.",
					i, month)
			}
			return rec
		}
	}

	rec.Note = fmt.Sprintf("No month in the projected range leaves at least %s after spending %s; extend the range or reduce the amount.",
		threshold.StringFixed(2), amount.StringFixed(2))
	return rec
}

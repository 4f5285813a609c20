package calculation

import (
	"fmt"

	"github.com/jwtan/plancast/internal/domain"
	"github.com/shopspring/decimal"
)

// Emergency-fund multiples that separate the three risk tiers.
var (
	yellowMultiple = decimal.NewFromInt(6)
	greenMultiple  = decimal.NewFromInt(9)
)

// ClassifySafety assigns the three-tier risk label. Reference-point
// selection is asymmetric: when the request carries at least one
// hypothetical expense, the classification answers "can I afford this
// specific thing" and uses the post-overlay balance at the month of the
// first such expense; otherwise it measures general risk against the
// minimum cumulative balance across the whole range.
//
// The returned note is non-empty when the classifier had to fall back
// because the first hypothetical expense lands outside the projected range.
func ClassifySafety(buckets []domain.MonthBucket, hypotheticals []domain.HypotheticalEvent, monthlyNetIncome decimal.Decimal) (domain.SafetyAssessment, string) {
	assessment := domain.SafetyAssessment{
		MonthlyNetIncome: monthlyNetIncome,
		YellowThreshold:  monthlyNetIncome.Mul(yellowMultiple),
		GreenThreshold:   monthlyNetIncome.Mul(greenMultiple),
	}

	var firstExpense *domain.HypotheticalEvent
	for i := range hypotheticals {
		if hypotheticals[i].Type == domain.ItemExpense {
			firstExpense = &hypotheticals[i]
			break
		}
	}

	var note string
	reference := decimal.Zero
	if len(buckets) > 0 {
		reference = buckets[0].CumulativeBalance
		refMonth := buckets[0].Month
		if firstExpense != nil {
			found := false
			for _, b := range buckets {
				if b.Month.Equal(firstExpense.Month) {
					reference = b.CumulativeBalance
					refMonth = b.Month
					found = true
					break
				}
			}
			if !found {
				firstExpense = nil
				note = "hypothetical expense falls outside the projected range; safety reflects the lowest projected balance instead"
			}
		}
		if firstExpense == nil {
			for _, b := range buckets {
				if b.CumulativeBalance.LessThan(reference) {
					reference = b.CumulativeBalance
					refMonth = b.Month
				}
			}
		}
		assessment.ReferenceMonth = &refMonth
	}
	assessment.ReferenceBalance = reference

	if monthlyNetIncome.LessThanOrEqual(decimal.Zero) {
		// No income data: risk cannot be measured in income multiples.
		assessment.Status = domain.SafetyYellow
		assessment.Label = "Unknown"
		assessment.Recommendation = "No baseline income found in this range, so the emergency-fund position cannot be assessed. Add income records for a meaningful classification."
		return assessment, note
	}

	assessment.EmergencyFundMonths = reference.Div(monthlyNetIncome)

	switch {
	case reference.GreaterThanOrEqual(assessment.GreenThreshold):
		assessment.Status = domain.SafetyGreen
		assessment.Label = "Safe"
	case reference.GreaterThanOrEqual(assessment.YellowThreshold):
		assessment.Status = domain.SafetyYellow
		assessment.Label = "Caution"
	default:
		assessment.Status = domain.SafetyRed
		assessment.Label = "At Risk"
	}

	assessment.Recommendation = buildRecommendation(assessment, firstExpense)
	return assessment, note
}

func buildRecommendation(a domain.SafetyAssessment, expense *domain.HypotheticalEvent) string {
	months := a.EmergencyFundMonths.StringFixed(1)

	subject := "your projected balance"
	if expense != nil {
		label := expense.Label
		if label == "" {
			label = "the planned expense"
		}
		subject = fmt.Sprintf("your balance after %s in %s", label, expense.Month)
	}

	switch a.Status {
	case domain.SafetyGreen:
		return fmt.Sprintf("%s covers about %s months of net income, comfortably above the 9-month mark. You have room to spend or invest.", capitalize(subject), months)
	case domain.SafetyYellow:
		return fmt.Sprintf("%s covers about %s months of net income. That clears the 6-month emergency floor but not the 9-month comfort mark; larger commitments deserve a second look.", capitalize(subject), months)
	default:
		return fmt.Sprintf("%s covers only about %s months of net income, below the 6-month emergency floor. Consider deferring discretionary spending and rebuilding the buffer.", capitalize(subject), months)
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	if s[0] >= 'a' && s[0] <= 'z' {
		return string(s[0]-'a'+'A') + s[1:]
	}
	return s
}

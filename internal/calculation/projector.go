package calculation

import (
	"github.com/jwtan/plancast/internal/domain"
	"github.com/jwtan/plancast/pkg/monthutil"
	"github.com/shopspring/decimal"
)

// Projector builds the ordered month-bucket sequence for a ledger snapshot.
// Balances accumulate at full precision; rounding happens only when the
// engine assembles the result.
type Projector struct {
	Contrib *ContributionCalculator
	Logger  Logger
}

// NewProjector creates a projector using the given contribution calculator.
func NewProjector(contrib *ContributionCalculator) *Projector {
	return &Projector{Contrib: contrib, Logger: NopLogger{}}
}

// Project walks every month from fromMonth through toMonth (inclusive,
// chronological), summing normalized net income and normalized expenses per
// bucket and carrying the running cumulative balance from the starting
// holdings. Hypothetical events, if any, are overlaid onto their matching
// buckets before each bucket's net balance is computed; which events were
// applied is recorded per bucket.
func (p *Projector) Project(ledger *domain.Ledger, fromMonth, toMonth, now monthutil.Month, hypotheticals []domain.HypotheticalEvent) ([]domain.MonthBucket, error) {
	if toMonth.Before(fromMonth) {
		return nil, domain.NewRangeError("toMonth", "toMonth must not be before fromMonth")
	}

	eventsByMonth := make(map[monthutil.Month][]domain.HypotheticalEvent)
	for _, ev := range hypotheticals {
		eventsByMonth[ev.Month] = append(eventsByMonth[ev.Month], ev)
	}

	buckets := make([]domain.MonthBucket, 0, monthutil.Span(fromMonth, toMonth))
	cumulative := ledger.StartingHoldings

	for m := fromMonth; !m.After(toMonth); m = m.Next() {
		var income, expenses decimal.Decimal

		for i := range ledger.Incomes {
			income = income.Add(p.monthlyNetIncome(&ledger.Incomes[i], m, now, ledger.OwnerAge))
		}
		for i := range ledger.Expenses {
			item := &ledger.Expenses[i]
			expenses = expenses.Add(NormalizeMonthly(item, m, item.GrossAmount))
		}

		applied := eventsByMonth[m]
		for _, ev := range applied {
			if ev.Type == domain.ItemIncome {
				income = income.Add(ev.Amount)
			} else {
				expenses = expenses.Add(ev.Amount)
			}
		}

		net := income.Sub(expenses)
		cumulative = cumulative.Add(net)

		buckets = append(buckets, domain.MonthBucket{
			Month:                m,
			Income:               income,
			Expenses:             expenses,
			NetBalance:           net,
			CumulativeBalance:    cumulative,
			AppliedHypotheticals: applied,
		})
	}

	return buckets, nil
}

// monthlyNetIncome resolves an income item's effective gross for the month,
// converts it to net take-home when the item is contribution-subject, and
// normalizes the result by frequency. The cached contribution snapshot is
// only valid for the base amount; overridden amounts always go through a
// fresh policy computation.
func (p *Projector) monthlyNetIncome(item *domain.RecurringItem, m, now monthutil.Month, ownerAge int) decimal.Decimal {
	gross, source := ResolveGross(item, m, now)

	amount := gross
	if item.SubjectToContribution {
		if source == SourceBase && item.Contribution != nil {
			amount = item.Contribution.NetTakeHome
		} else {
			amount = p.Contrib.Compute(gross, ownerAge).NetTakeHome
		}
	}

	return NormalizeMonthly(item, m, amount)
}

package calculation

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwtan/plancast/internal/domain"
	"github.com/jwtan/plancast/pkg/monthutil"
)

func simpleLedger() *domain.Ledger {
	return &domain.Ledger{
		OwnerID:          "owner-1",
		OwnerAge:         35,
		StartingHoldings: decimal.NewFromInt(10000),
		Incomes: []domain.RecurringItem{
			{
				ID:          "salary",
				Name:        "Salary",
				Kind:        domain.ItemIncome,
				GrossAmount: decimal.NewFromInt(5000),
				Frequency:   domain.FreqMonthly,
				StartDate:   date(2024, time.January, 1),
			},
		},
		Expenses: []domain.RecurringItem{
			{
				ID:          "living",
				Name:        "Living costs",
				Kind:        domain.ItemExpense,
				GrossAmount: decimal.NewFromInt(3000),
				Frequency:   domain.FreqMonthly,
				StartDate:   date(2024, time.January, 1),
			},
		},
	}
}

func TestProjectRunningBalance(t *testing.T) {
	projector := NewProjector(NewContributionCalculator())

	buckets, err := projector.Project(simpleLedger(),
		monthutil.MustParse("2025-01"), monthutil.MustParse("2025-03"), monthutil.MustParse("2024-12"), nil)
	require.NoError(t, err)
	require.Len(t, buckets, 3)

	wantCums := []int64{12000, 14000, 16000}
	for i, b := range buckets {
		assert.True(t, b.Income.Equal(decimal.NewFromInt(5000)), "month %s income", b.Month)
		assert.True(t, b.Expenses.Equal(decimal.NewFromInt(3000)), "month %s expenses", b.Month)
		assert.True(t, b.NetBalance.Equal(decimal.NewFromInt(2000)), "month %s net", b.Month)
		assert.True(t, b.CumulativeBalance.Equal(decimal.NewFromInt(wantCums[i])),
			"month %s cumulative, got %s", b.Month, b.CumulativeBalance)
	}
	assert.Equal(t, "2025-01", buckets[0].Month.String())
	assert.Equal(t, "2025-03", buckets[2].Month.String())
}

func TestProjectHypotheticalExpenseOverlay(t *testing.T) {
	projector := NewProjector(NewContributionCalculator())
	events := []domain.HypotheticalEvent{
		{Type: domain.ItemExpense, Amount: decimal.NewFromInt(5000), Month: monthutil.MustParse("2025-02"), Label: "renovation"},
	}

	buckets, err := projector.Project(simpleLedger(),
		monthutil.MustParse("2025-01"), monthutil.MustParse("2025-03"), monthutil.MustParse("2024-12"), events)
	require.NoError(t, err)
	require.Len(t, buckets, 3)

	assert.True(t, buckets[1].NetBalance.Equal(decimal.NewFromInt(-3000)), "overlay month net, got %s", buckets[1].NetBalance)
	assert.True(t, buckets[0].CumulativeBalance.Equal(decimal.NewFromInt(12000)))
	assert.True(t, buckets[1].CumulativeBalance.Equal(decimal.NewFromInt(11000)))
	assert.True(t, buckets[2].CumulativeBalance.Equal(decimal.NewFromInt(13000)))

	assert.Empty(t, buckets[0].AppliedHypotheticals)
	require.Len(t, buckets[1].AppliedHypotheticals, 1)
	assert.Equal(t, "renovation", buckets[1].AppliedHypotheticals[0].Label)
}

func TestProjectCumulativeInvariant(t *testing.T) {
	ledger := simpleLedger()
	ledger.Incomes = append(ledger.Incomes, domain.RecurringItem{
		ID:          "bonus",
		Kind:        domain.ItemIncome,
		GrossAmount: decimal.NewFromInt(8000),
		Frequency:   domain.FreqYearly,
		StartDate:   date(2024, time.June, 1),
	})
	ledger.Expenses = append(ledger.Expenses, domain.RecurringItem{
		ID:           "insurance",
		Kind:         domain.ItemExpense,
		GrossAmount:  decimal.NewFromInt(400),
		Frequency:    domain.FreqCustom,
		CustomMonths: []int{3, 9},
		StartDate:    date(2024, time.January, 1),
	})
	projector := NewProjector(NewContributionCalculator())

	buckets, err := projector.Project(ledger,
		monthutil.MustParse("2025-01"), monthutil.MustParse("2025-12"), monthutil.MustParse("2024-12"), nil)
	require.NoError(t, err)
	require.Len(t, buckets, 12)

	prev := ledger.StartingHoldings
	for _, b := range buckets {
		assert.True(t, b.NetBalance.Equal(b.Income.Sub(b.Expenses)), "month %s net identity", b.Month)
		assert.True(t, b.CumulativeBalance.Equal(prev.Add(b.NetBalance)), "month %s running balance", b.Month)
		prev = b.CumulativeBalance
	}
}

func TestProjectSingleMonthRange(t *testing.T) {
	projector := NewProjector(NewContributionCalculator())
	m := monthutil.MustParse("2025-05")

	buckets, err := projector.Project(simpleLedger(), m, m, monthutil.MustParse("2024-12"), nil)
	require.NoError(t, err)
	require.Len(t, buckets, 1)
	assert.True(t, buckets[0].CumulativeBalance.Equal(decimal.NewFromInt(12000)))
}

func TestProjectInvertedRange(t *testing.T) {
	projector := NewProjector(NewContributionCalculator())

	_, err := projector.Project(simpleLedger(),
		monthutil.MustParse("2025-03"), monthutil.MustParse("2025-01"), monthutil.MustParse("2024-12"), nil)

	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, domain.KindRange, verr.Kind)
}

func TestProjectContributionCachedSnapshot(t *testing.T) {
	cached := NewContributionCalculator().Compute(decimal.NewFromInt(5000), 35)
	ledger := &domain.Ledger{
		OwnerID:          "owner-1",
		OwnerAge:         35,
		StartingHoldings: decimal.Zero,
		Incomes: []domain.RecurringItem{
			{
				ID:                    "salary",
				Kind:                  domain.ItemIncome,
				GrossAmount:           decimal.NewFromInt(5000),
				Frequency:             domain.FreqMonthly,
				StartDate:             date(2024, time.January, 1),
				SubjectToContribution: true,
				Contribution:          &cached,
			},
		},
	}
	projector := NewProjector(NewContributionCalculator())

	buckets, err := projector.Project(ledger,
		monthutil.MustParse("2025-01"), monthutil.MustParse("2025-01"), monthutil.MustParse("2024-12"), nil)
	require.NoError(t, err)

	// Base amount, snapshot valid: the cached net take-home (20% employee
	// share at age 35) flows straight into the bucket.
	assert.True(t, buckets[0].Income.Equal(decimal.NewFromInt(4000)),
		"cached net take-home, got %s", buckets[0].Income)
}

func TestProjectContributionRecomputedForMilestone(t *testing.T) {
	cached := NewContributionCalculator().Compute(decimal.NewFromInt(5000), 35)
	ledger := &domain.Ledger{
		OwnerID:          "owner-1",
		OwnerAge:         35,
		StartingHoldings: decimal.Zero,
		Incomes: []domain.RecurringItem{
			{
				ID:                    "salary",
				Kind:                  domain.ItemIncome,
				GrossAmount:           decimal.NewFromInt(5000),
				Frequency:             domain.FreqMonthly,
				StartDate:             date(2024, time.January, 1),
				SubjectToContribution: true,
				Contribution:          &cached,
				HonorFutureMilestones: true,
				FutureMilestones: []domain.FutureMilestone{
					{TargetMonth: monthutil.MustParse("2025-01"), Amount: decimal.NewFromInt(6000), Reason: "raise"},
				},
			},
		},
	}
	projector := NewProjector(NewContributionCalculator())

	buckets, err := projector.Project(ledger,
		monthutil.MustParse("2025-01"), monthutil.MustParse("2025-01"), monthutil.MustParse("2024-12"), nil)
	require.NoError(t, err)

	// The milestone supersedes the base amount, so the stale snapshot is
	// bypassed and the policy runs on the new gross: 6000 less 20%.
	assert.True(t, buckets[0].Income.Equal(decimal.NewFromInt(4800)),
		"recomputed net take-home, got %s", buckets[0].Income)
}

func TestProjectEmptyLedgerCarriesStartingBalance(t *testing.T) {
	ledger := &domain.Ledger{OwnerID: "owner-1", OwnerAge: 40, StartingHoldings: decimal.NewFromInt(2500)}
	projector := NewProjector(NewContributionCalculator())

	buckets, err := projector.Project(ledger,
		monthutil.MustParse("2025-01"), monthutil.MustParse("2025-04"), monthutil.MustParse("2024-12"), nil)
	require.NoError(t, err)
	require.Len(t, buckets, 4)

	for _, b := range buckets {
		assert.True(t, b.NetBalance.IsZero(), "month %s", b.Month)
		assert.True(t, b.CumulativeBalance.Equal(decimal.NewFromInt(2500)), "month %s", b.Month)
	}
}

package domain

import (
	"strconv"
	"time"

	"github.com/jwtan/plancast/pkg/monthutil"
	"github.com/shopspring/decimal"
)

// ItemKind distinguishes income records from expense records.
type ItemKind string

const (
	ItemIncome  ItemKind = "income"
	ItemExpense ItemKind = "expense"
)

// Frequency describes how often a recurring item applies.
type Frequency string

const (
	FreqMonthly   Frequency = "monthly"
	FreqYearly    Frequency = "yearly"
	FreqWeekly    Frequency = "weekly"
	FreqBiWeekly  Frequency = "bi-weekly"
	FreqQuarterly Frequency = "quarterly"
	FreqCustom    Frequency = "custom"
	FreqOneTime   Frequency = "one-time"
)

// Valid reports whether f is one of the supported frequencies.
func (f Frequency) Valid() bool {
	switch f {
	case FreqMonthly, FreqYearly, FreqWeekly, FreqBiWeekly, FreqQuarterly, FreqCustom, FreqOneTime:
		return true
	}
	return false
}

// Granularity is the period granularity of a historical override.
type Granularity string

const (
	GranMonthly Granularity = "monthly"
	GranYearly  Granularity = "yearly"
)

// HistoricalOverride records the actual amount received for a past period,
// superseding the base recurring amount when the projected month is
// historical. Period is "YYYY-MM" for monthly granularity and "YYYY" for
// yearly granularity; the loader validates it at the repository boundary.
type HistoricalOverride struct {
	Period      string          `yaml:"period" json:"period"`
	Granularity Granularity     `yaml:"granularity" json:"granularity"`
	Amount      decimal.Decimal `yaml:"amount" json:"amount"`
}

// Matches reports whether the override covers month m.
func (h HistoricalOverride) Matches(m monthutil.Month) bool {
	switch h.Granularity {
	case GranMonthly:
		parsed, err := monthutil.Parse(h.Period)
		return err == nil && parsed.Equal(m)
	case GranYearly:
		year, err := strconv.Atoi(h.Period)
		return err == nil && year == m.Year
	}
	return false
}

// MonthlyAmount returns the override amount normalized to one month.
// Yearly-granularity overrides are spread evenly across the year.
func (h HistoricalOverride) MonthlyAmount() decimal.Decimal {
	if h.Granularity == GranYearly {
		return h.Amount.Div(decimal.NewFromInt(12))
	}
	return h.Amount
}

// FutureMilestone schedules a change to an income item's amount, effective
// from TargetMonth onward.
type FutureMilestone struct {
	TargetMonth monthutil.Month `yaml:"target_month" json:"targetMonth"`
	Amount      decimal.Decimal `yaml:"amount" json:"amount"`
	Reason      string          `yaml:"reason,omitempty" json:"reason,omitempty"`
}

// RecurringItem is one income or expense record. The engine treats items as
// a read-only snapshot for the duration of a projection call.
type RecurringItem struct {
	ID                    string               `yaml:"id" json:"id"`
	OwnerID               string               `yaml:"owner_id" json:"ownerId"`
	Name                  string               `yaml:"name,omitempty" json:"name,omitempty"`
	Kind                  ItemKind             `yaml:"kind" json:"kind"`
	GrossAmount           decimal.Decimal      `yaml:"gross_amount" json:"grossAmount"`
	Frequency             Frequency            `yaml:"frequency" json:"frequency"`
	CustomMonths          []int                `yaml:"custom_months,omitempty" json:"customMonths,omitempty"`
	StartDate             time.Time            `yaml:"start_date" json:"startDate"`
	EndDate               *time.Time           `yaml:"end_date,omitempty" json:"endDate,omitempty"`
	SubjectToContribution bool                 `yaml:"subject_to_contribution" json:"subjectToContribution"`
	HistoricalOverrides   []HistoricalOverride `yaml:"historical_overrides,omitempty" json:"historicalOverrides,omitempty"`
	FutureMilestones      []FutureMilestone    `yaml:"future_milestones,omitempty" json:"futureMilestones,omitempty"`
	HonorFutureMilestones bool                 `yaml:"honor_future_milestones" json:"honorFutureMilestones"`

	// Contribution is the cached statutory breakdown for the base gross
	// amount. Valid only as a fast path when no override applies.
	Contribution *ContributionBreakdown `yaml:"contribution,omitempty" json:"contribution,omitempty"`
}

// StartMonth returns the calendar month of the item's start date.
func (r *RecurringItem) StartMonth() monthutil.Month {
	return monthutil.FromTime(r.StartDate)
}

// EndMonth returns the calendar month of the item's end date, if any.
func (r *RecurringItem) EndMonth() (monthutil.Month, bool) {
	if r.EndDate == nil {
		return monthutil.Month{}, false
	}
	return monthutil.FromTime(*r.EndDate), true
}

// HasMilestonesPastEnd reports whether any scheduled milestone targets a
// month after the item's end date. Such a milestone marks the end date as
// stale: the schedule supersedes it.
func (r *RecurringItem) HasMilestonesPastEnd() bool {
	end, ok := r.EndMonth()
	if !ok {
		return false
	}
	for _, ms := range r.FutureMilestones {
		if ms.TargetMonth.After(end) {
			return true
		}
	}
	return false
}

// HasCustomMonth reports whether the numeric month (1-12) is in the item's
// custom schedule.
func (r *RecurringItem) HasCustomMonth(month int) bool {
	for _, cm := range r.CustomMonths {
		if cm == month {
			return true
		}
	}
	return false
}

// Ledger is the resolved in-memory snapshot the engine computes over: the
// owner's recurring records plus liquid holdings at the instant the
// projection begins. The external record repository assembles it; the
// engine only reads it.
type Ledger struct {
	OwnerID          string          `yaml:"owner_id" json:"ownerId"`
	OwnerAge         int             `yaml:"owner_age" json:"ownerAge"`
	StartingHoldings decimal.Decimal `yaml:"starting_holdings" json:"startingHoldings"`
	Incomes          []RecurringItem `yaml:"incomes" json:"incomes"`
	Expenses         []RecurringItem `yaml:"expenses" json:"expenses"`
}

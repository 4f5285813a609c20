package domain

import (
	"github.com/jwtan/plancast/pkg/monthutil"
	"github.com/shopspring/decimal"
)

// HypotheticalEvent is a caller-supplied one-off income or expense overlaid
// on a single month bucket. It never mutates a RecurringItem.
type HypotheticalEvent struct {
	Type   ItemKind        `yaml:"type" toml:"type" json:"type"`
	Amount decimal.Decimal `yaml:"amount" toml:"amount" json:"amount"`
	Month  monthutil.Month `yaml:"month" toml:"month" json:"month"`
	Label  string          `yaml:"label,omitempty" toml:"label,omitempty" json:"label,omitempty"`
}

// ProjectionRequest describes one projection call: the month range, the
// hypothetical overlays, and the optional constraint and solver triggers.
type ProjectionRequest struct {
	FromMonth     monthutil.Month     `yaml:"from_month" toml:"from_month" json:"fromMonth"`
	ToMonth       monthutil.Month     `yaml:"to_month" toml:"to_month" json:"toMonth"`
	Hypotheticals []HypotheticalEvent `yaml:"hypotheticals,omitempty" toml:"hypotheticals,omitempty" json:"hypotheticals,omitempty"`

	MinEndBalance     *decimal.Decimal `yaml:"min_end_balance,omitempty" toml:"min_end_balance,omitempty" json:"minEndBalance,omitempty"`
	MinMonthlyBalance *decimal.Decimal `yaml:"min_monthly_balance,omitempty" toml:"min_monthly_balance,omitempty" json:"minMonthlyBalance,omitempty"`

	// MaxAffordableExpenseMonth triggers the affordability solver.
	MaxAffordableExpenseMonth *monthutil.Month `yaml:"max_affordable_expense_month,omitempty" toml:"max_affordable_expense_month,omitempty" json:"computeMaxAffordableExpenseMonth,omitempty"`
	// SafePurchaseAmount triggers the safe-purchase-timing solver.
	SafePurchaseAmount *decimal.Decimal `yaml:"safe_purchase_amount,omitempty" toml:"safe_purchase_amount,omitempty" json:"findSafeMonthForExpense,omitempty"`

	// Legacy single-event shape. Folded into Hypotheticals by Normalized
	// before any processing; never handled as a separate code path.
	OneOffIncome       *decimal.Decimal `yaml:"one_off_income,omitempty" toml:"one_off_income,omitempty" json:"oneOffIncome,omitempty"`
	OneOffIncomeMonth  *monthutil.Month `yaml:"one_off_income_month,omitempty" toml:"one_off_income_month,omitempty" json:"oneOffIncomeMonth,omitempty"`
	OneOffExpense      *decimal.Decimal `yaml:"one_off_expense,omitempty" toml:"one_off_expense,omitempty" json:"oneOffExpense,omitempty"`
	OneOffExpenseMonth *monthutil.Month `yaml:"one_off_expense_month,omitempty" toml:"one_off_expense_month,omitempty" json:"oneOffExpenseMonth,omitempty"`
}

// Normalized returns a copy of the request with any legacy single-event
// fields appended to the hypotheticals list and cleared.
func (r ProjectionRequest) Normalized() ProjectionRequest {
	out := r
	out.Hypotheticals = append([]HypotheticalEvent(nil), r.Hypotheticals...)
	if r.OneOffIncome != nil && r.OneOffIncomeMonth != nil {
		out.Hypotheticals = append(out.Hypotheticals, HypotheticalEvent{
			Type:   ItemIncome,
			Amount: *r.OneOffIncome,
			Month:  *r.OneOffIncomeMonth,
		})
	}
	if r.OneOffExpense != nil && r.OneOffExpenseMonth != nil {
		out.Hypotheticals = append(out.Hypotheticals, HypotheticalEvent{
			Type:   ItemExpense,
			Amount: *r.OneOffExpense,
			Month:  *r.OneOffExpenseMonth,
		})
	}
	out.OneOffIncome, out.OneOffIncomeMonth = nil, nil
	out.OneOffExpense, out.OneOffExpenseMonth = nil, nil
	return out
}

// MonthBucket is one month of the projected ledger.
// Invariant: CumulativeBalance[i] = CumulativeBalance[i-1] + NetBalance[i],
// with the starting holdings standing in for bucket -1.
type MonthBucket struct {
	Month                monthutil.Month     `yaml:"month" json:"month"`
	Income               decimal.Decimal     `yaml:"income" json:"income"`
	Expenses             decimal.Decimal     `yaml:"expenses" json:"expenses"`
	NetBalance           decimal.Decimal     `yaml:"net_balance" json:"netBalance"`
	CumulativeBalance    decimal.Decimal     `yaml:"cumulative_balance" json:"cumulativeBalance"`
	AppliedHypotheticals []HypotheticalEvent `yaml:"applied_hypotheticals,omitempty" json:"appliedHypotheticals,omitempty"`
}

// SafetyStatus is the three-tier risk label.
type SafetyStatus string

const (
	SafetyGreen  SafetyStatus = "green"
	SafetyYellow SafetyStatus = "yellow"
	SafetyRed    SafetyStatus = "red"
)

// SafetyAssessment classifies the projection's risk by comparing a reference
// balance to multiples of baseline monthly net income.
type SafetyAssessment struct {
	Status              SafetyStatus     `json:"status"`
	Label               string           `json:"label"`
	ReferenceBalance    decimal.Decimal  `json:"referenceBalance"`
	ReferenceMonth      *monthutil.Month `json:"referenceMonth,omitempty"`
	MonthlyNetIncome    decimal.Decimal  `json:"monthlyNetIncome"`
	EmergencyFundMonths decimal.Decimal  `json:"emergencyFundMonths"`
	YellowThreshold     decimal.Decimal  `json:"yellowThreshold"`
	GreenThreshold      decimal.Decimal  `json:"greenThreshold"`
	Recommendation      string           `json:"recommendation"`
}

// AffordabilityAnalysis is the affordability solver's answer: the largest
// one-time expense addable at TargetMonth without pushing any month from
// the target onward below the floor.
type AffordabilityAnalysis struct {
	TargetMonth                 monthutil.Month `json:"targetMonth"`
	Floor                       decimal.Decimal `json:"floor"`
	FloorSource                 string          `json:"floorSource"`
	MinBalanceFromTarget        decimal.Decimal `json:"minBalanceFromTarget"`
	BindingMonth                monthutil.Month `json:"bindingMonth"`
	MaxAffordableOneTimeExpense decimal.Decimal `json:"maxAffordableOneTimeExpense"`
}

// SafePurchaseRecommendation is the safe-purchase-timing solver's answer:
// the earliest month where spending a fixed amount still leaves the
// emergency-fund buffer intact. RecommendedMonth is nil when no month in
// range qualifies.
type SafePurchaseRecommendation struct {
	ExpenseAmount            decimal.Decimal  `json:"expenseAmount"`
	RecommendedMonth         *monthutil.Month `json:"recommendedMonth"`
	MonthsToWait             int              `json:"monthsToWait"`
	IsSafeNow                bool             `json:"isSafeNow"`
	BalanceAfterPurchase     decimal.Decimal  `json:"balanceAfterPurchase"`
	EmergencyFundMonthsAfter decimal.Decimal  `json:"emergencyFundMonthsAfter"`
	Threshold                decimal.Decimal  `json:"threshold"`
	Note                     string           `json:"note,omitempty"`
}

// ConstraintsEvaluation reports caller-supplied minimum-balance constraint
// checks. Breaches are warnings, never fatal.
type ConstraintsEvaluation struct {
	MinEndBalance             *decimal.Decimal `json:"minEndBalance,omitempty"`
	MinEndBalanceBreached     bool             `json:"minEndBalanceBreached"`
	MinMonthlyBalance         *decimal.Decimal `json:"minMonthlyBalance,omitempty"`
	MinMonthlyBalanceBreached bool             `json:"minMonthlyBalanceBreached"`
	FirstBreachMonth          *monthutil.Month `json:"firstBreachMonth,omitempty"`
	Warnings                  []string         `json:"warnings,omitempty"`
}

// ScenarioSummary compares the hypothetical-overlay run against the
// baseline run.
type ScenarioSummary struct {
	EventsApplied        int             `json:"eventsApplied"`
	HypotheticalIncome   decimal.Decimal `json:"hypotheticalIncome"`
	HypotheticalExpenses decimal.Decimal `json:"hypotheticalExpenses"`
	BaselineFinalBalance decimal.Decimal `json:"baselineFinalBalance"`
	FinalBalanceDelta    decimal.Decimal `json:"finalBalanceDelta"`
}

// ProjectionResult is the complete answer to one projection request.
type ProjectionResult struct {
	FromMonth       monthutil.Month `json:"fromMonth"`
	ToMonth         monthutil.Month `json:"toMonth"`
	StartingBalance decimal.Decimal `json:"startingBalance"`
	MonthBuckets    []MonthBucket   `json:"monthBuckets"`
	TotalIncome     decimal.Decimal `json:"totalIncome"`
	TotalExpenses   decimal.Decimal `json:"totalExpenses"`
	FinalBalance    decimal.Decimal `json:"finalBalance"`

	Safety        SafetyAssessment            `json:"safetyAssessment"`
	Affordability *AffordabilityAnalysis      `json:"affordabilityAnalysis,omitempty"`
	Constraints   *ConstraintsEvaluation      `json:"constraintsEvaluation,omitempty"`
	Scenario      *ScenarioSummary            `json:"scenarioSummary,omitempty"`
	SafePurchase  *SafePurchaseRecommendation `json:"safePurchaseRecommendation,omitempty"`

	Assumptions []string `json:"assumptions"`
	Notes       []string `json:"notes"`
}

package calculation

import (
	"fmt"
	"time"

	"github.com/jwtan/plancast/internal/domain"
	"github.com/jwtan/plancast/pkg/monthutil"
	"github.com/shopspring/decimal"
)

// ProjectionEngine orchestrates a full projection call: validation, the
// baseline and scenario projector runs, the solvers, the safety classifier,
// and the constraint evaluator. The engine is stateless across calls;
// "now" is always passed in explicitly so identical inputs always produce
// identical results.
type ProjectionEngine struct {
	Contrib *ContributionCalculator
	Logger  Logger
}

// NewProjectionEngine creates an engine with the default contribution
// policy and a no-op logger.
func NewProjectionEngine() *ProjectionEngine {
	return &ProjectionEngine{
		Contrib: NewContributionCalculator(),
		Logger:  NopLogger{},
	}
}

// NewProjectionEngineWithPolicy creates an engine with an injected
// contribution policy table.
func NewProjectionEngineWithPolicy(policy ContributionPolicy) *ProjectionEngine {
	return &ProjectionEngine{
		Contrib: NewContributionCalculatorWithPolicy(policy),
		Logger:  NopLogger{},
	}
}

// SetLogger installs a logger. Passing nil restores the no-op logger.
func (e *ProjectionEngine) SetLogger(l Logger) {
	if l == nil {
		e.Logger = NopLogger{}
		return
	}
	e.Logger = l
}

// ComputeContribution applies the engine's statutory policy table to a
// gross monthly income.
func (e *ProjectionEngine) ComputeContribution(grossMonthly decimal.Decimal, ageBracket int) domain.ContributionBreakdown {
	return e.Contrib.Compute(grossMonthly, ageBracket)
}

// ComputeBalanceProjection is the engine's primary entry point. It never
// mutates its inputs. Validation failures return a structured
// *domain.ValidationError; every other outcome is a complete result that
// degrades gracefully through notes.
func (e *ProjectionEngine) ComputeBalanceProjection(req domain.ProjectionRequest, ledger *domain.Ledger, now time.Time) (*domain.ProjectionResult, error) {
	req = req.Normalized()
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	nowMonth := monthutil.FromTime(now)
	projector := &Projector{Contrib: e.Contrib, Logger: e.Logger}

	// Baseline run: no hypotheticals. Solver searches always run against
	// this, so a hypothetical overlay cannot distort its own feasibility
	// analysis.
	baseline, err := projector.Project(ledger, req.FromMonth, req.ToMonth, nowMonth, nil)
	if err != nil {
		return nil, err
	}

	scenario := baseline
	if len(req.Hypotheticals) > 0 {
		scenario, err = projector.Project(ledger, req.FromMonth, req.ToMonth, nowMonth, req.Hypotheticals)
		if err != nil {
			return nil, err
		}
	}

	monthCount := monthutil.Span(req.FromMonth, req.ToMonth)
	var baselineIncome decimal.Decimal
	for _, b := range baseline {
		baselineIncome = baselineIncome.Add(b.Income)
	}
	monthlyNetIncome := baselineIncome.Div(decimal.NewFromInt(int64(monthCount)))

	e.Logger.Debugf("projection %s..%s: %d months, baseline monthly net income %s",
		req.FromMonth, req.ToMonth, monthCount, monthlyNetIncome.StringFixed(2))

	result := &domain.ProjectionResult{
		FromMonth:       req.FromMonth,
		ToMonth:         req.ToMonth,
		StartingBalance: ledger.StartingHoldings.Round(2),
	}

	var totalIncome, totalExpenses decimal.Decimal
	result.MonthBuckets = make([]domain.MonthBucket, len(scenario))
	for i, b := range scenario {
		totalIncome = totalIncome.Add(b.Income)
		totalExpenses = totalExpenses.Add(b.Expenses)
		result.MonthBuckets[i] = roundBucket(b)
	}
	result.TotalIncome = totalIncome.Round(2)
	result.TotalExpenses = totalExpenses.Round(2)
	result.FinalBalance = scenario[len(scenario)-1].CumulativeBalance.Round(2)

	safety, safetyNote := ClassifySafety(scenario, req.Hypotheticals, monthlyNetIncome)
	result.Safety = roundSafety(safety)
	if safetyNote != "" {
		result.Notes = append(result.Notes, safetyNote)
	}

	if req.MaxAffordableExpenseMonth != nil {
		floor, floorSource := affordabilityFloor(req, monthlyNetIncome)
		analysis := MaxAffordableExpense(baseline, *req.MaxAffordableExpenseMonth, floor, floorSource)
		result.Affordability = roundAffordability(analysis)
	}

	if req.SafePurchaseAmount != nil {
		rec := FindSafePurchaseMonth(baseline, *req.SafePurchaseAmount, monthlyNetIncome)
		result.SafePurchase = roundSafePurchase(rec)
		if rec.RecommendedMonth == nil {
			result.Notes = append(result.Notes, rec.Note)
		}
	}

	if req.MinEndBalance != nil || req.MinMonthlyBalance != nil {
		result.Constraints = EvaluateConstraints(scenario, req.MinEndBalance, req.MinMonthlyBalance)
	}

	if len(req.Hypotheticals) > 0 {
		result.Scenario = summarizeScenario(req.Hypotheticals, baseline, scenario)
	}

	if len(ledger.Incomes) == 0 && len(ledger.Expenses) == 0 {
		result.Notes = append(result.Notes, "no recurring records found; the projection only carries the starting balance forward")
	}

	result.Assumptions = e.assumptions(req)
	return result, nil
}

func validateRequest(req domain.ProjectionRequest) error {
	if req.FromMonth.IsZero() {
		return domain.NewValidationError("fromMonth", "month is required in YYYY-MM form")
	}
	if req.ToMonth.IsZero() {
		return domain.NewValidationError("toMonth", "month is required in YYYY-MM form")
	}
	if req.ToMonth.Before(req.FromMonth) {
		return domain.NewRangeError("toMonth", fmt.Sprintf("toMonth %s is before fromMonth %s", req.ToMonth, req.FromMonth))
	}
	for i, ev := range req.Hypotheticals {
		if ev.Amount.LessThanOrEqual(decimal.Zero) {
			return domain.NewValidationError(fmt.Sprintf("hypotheticals[%d].amount", i), "amount must be positive")
		}
		if ev.Month.IsZero() {
			return domain.NewValidationError(fmt.Sprintf("hypotheticals[%d].month", i), "month is required in YYYY-MM form")
		}
		if ev.Type != domain.ItemIncome && ev.Type != domain.ItemExpense {
			return domain.NewValidationError(fmt.Sprintf("hypotheticals[%d].type", i), "type must be income or expense")
		}
	}
	if m := req.MaxAffordableExpenseMonth; m != nil {
		if m.Before(req.FromMonth) || m.After(req.ToMonth) {
			return domain.NewValidationError("computeMaxAffordableExpenseMonth", "target month must fall within the projection range")
		}
	}
	if a := req.SafePurchaseAmount; a != nil && a.LessThanOrEqual(decimal.Zero) {
		return domain.NewValidationError("findSafeMonthForExpense", "expense amount must be positive")
	}
	return nil
}

func affordabilityFloor(req domain.ProjectionRequest, monthlyNetIncome decimal.Decimal) (decimal.Decimal, string) {
	if req.MinMonthlyBalance != nil {
		return *req.MinMonthlyBalance, FloorSourceRequest
	}
	return monthlyNetIncome.Mul(yellowMultiple), FloorSourceDefault
}

func summarizeScenario(events []domain.HypotheticalEvent, baseline, scenario []domain.MonthBucket) *domain.ScenarioSummary {
	summary := &domain.ScenarioSummary{EventsApplied: len(events)}
	for _, ev := range events {
		if ev.Type == domain.ItemIncome {
			summary.HypotheticalIncome = summary.HypotheticalIncome.Add(ev.Amount)
		} else {
			summary.HypotheticalExpenses = summary.HypotheticalExpenses.Add(ev.Amount)
		}
	}
	baselineFinal := baseline[len(baseline)-1].CumulativeBalance
	scenarioFinal := scenario[len(scenario)-1].CumulativeBalance
	summary.BaselineFinalBalance = baselineFinal.Round(2)
	summary.FinalBalanceDelta = scenarioFinal.Sub(baselineFinal).Round(2)
	summary.HypotheticalIncome = summary.HypotheticalIncome.Round(2)
	summary.HypotheticalExpenses = summary.HypotheticalExpenses.Round(2)
	return summary
}

func (e *ProjectionEngine) assumptions(req domain.ProjectionRequest) []string {
	assumptions := []string{
		fmt.Sprintf("statutory contributions follow policy table %s", e.Contrib.Policy.Version),
		"weekly amounts normalize at 4.33 weeks per month, bi-weekly at 2.17",
		"yearly amounts apply in full in the item's start month, not spread across the year",
	}
	if req.MaxAffordableExpenseMonth != nil && req.MinMonthlyBalance == nil {
		assumptions = append(assumptions, "affordability floor defaults to 6 months of baseline net income")
	}
	if req.SafePurchaseAmount != nil {
		assumptions = append(assumptions, "a purchase is considered safe when 6 months of baseline net income remain afterwards")
	}
	return assumptions
}

// Output-boundary rounding. Internal computation runs at full precision;
// only the values handed back to callers are rounded to cents.

func roundBucket(b domain.MonthBucket) domain.MonthBucket {
	b.Income = b.Income.Round(2)
	b.Expenses = b.Expenses.Round(2)
	b.NetBalance = b.NetBalance.Round(2)
	b.CumulativeBalance = b.CumulativeBalance.Round(2)
	return b
}

func roundSafety(a domain.SafetyAssessment) domain.SafetyAssessment {
	a.ReferenceBalance = a.ReferenceBalance.Round(2)
	a.MonthlyNetIncome = a.MonthlyNetIncome.Round(2)
	a.EmergencyFundMonths = a.EmergencyFundMonths.Round(1)
	a.YellowThreshold = a.YellowThreshold.Round(2)
	a.GreenThreshold = a.GreenThreshold.Round(2)
	return a
}

func roundAffordability(a *domain.AffordabilityAnalysis) *domain.AffordabilityAnalysis {
	out := *a
	out.Floor = out.Floor.Round(2)
	out.MinBalanceFromTarget = out.MinBalanceFromTarget.Round(2)
	out.MaxAffordableOneTimeExpense = out.MaxAffordableOneTimeExpense.Round(2)
	return &out
}

func roundSafePurchase(r *domain.SafePurchaseRecommendation) *domain.SafePurchaseRecommendation {
	out := *r
	out.ExpenseAmount = out.ExpenseAmount.Round(2)
	out.BalanceAfterPurchase = out.BalanceAfterPurchase.Round(2)
	out.EmergencyFundMonthsAfter = out.EmergencyFundMonthsAfter.Round(1)
	out.Threshold = out.Threshold.Round(2)
	return &out
}

package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jwtan/plancast/internal/domain"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true)
	sectionStyle = lipgloss.NewStyle().Bold(true).Underline(true)
	dimStyle     = lipgloss.NewStyle().Faint(true)

	statusStyles = map[domain.SafetyStatus]lipgloss.Style{
		domain.SafetyGreen:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42")),
		domain.SafetyYellow: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("220")),
		domain.SafetyRed:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196")),
	}
)

// GenerateConsole writes a human-readable projection report.
func (rg *ReportGenerator) GenerateConsole(result *domain.ProjectionResult, w io.Writer) error {
	fmt.Fprintln(w, titleStyle.Render(fmt.Sprintf("CASHFLOW PROJECTION %s .. %s", result.FromMonth, result.ToMonth)))
	fmt.Fprintf(w, "Starting balance: %s\n\n", FormatCurrency(result.StartingBalance))

	fmt.Fprintln(w, sectionStyle.Render("MONTHLY LEDGER"))
	fmt.Fprintf(w, "%-9s %14s %14s %14s %16s\n", "Month", "Income", "Expenses", "Net", "Balance")
	for _, b := range result.MonthBuckets {
		fmt.Fprintf(w, "%-9s %14s %14s %14s %16s\n",
			b.Month,
			FormatCurrency(b.Income),
			FormatCurrency(b.Expenses),
			FormatCurrency(b.NetBalance),
			FormatCurrency(b.CumulativeBalance))
		for _, ev := range b.AppliedHypotheticals {
			label := ev.Label
			if label == "" {
				label = "what-if " + string(ev.Type)
			}
			fmt.Fprintln(w, dimStyle.Render(fmt.Sprintf("          + %s: %s %s", label, ev.Type, FormatCurrency(ev.Amount))))
		}
	}
	fmt.Fprintf(w, "\nTotal income:   %s\n", FormatCurrency(result.TotalIncome))
	fmt.Fprintf(w, "Total expenses: %s\n", FormatCurrency(result.TotalExpenses))
	fmt.Fprintf(w, "Final balance:  %s\n\n", FormatCurrency(result.FinalBalance))

	rg.writeSafety(w, result.Safety)

	if result.Affordability != nil {
		a := result.Affordability
		fmt.Fprintln(w, sectionStyle.Render("AFFORDABILITY"))
		fmt.Fprintf(w, "Max one-time expense in %s: %s\n", a.TargetMonth, FormatCurrency(a.MaxAffordableOneTimeExpense))
		fmt.Fprintf(w, "Binding month: %s (baseline balance %s, floor %s)\n\n",
			a.BindingMonth, FormatCurrency(a.MinBalanceFromTarget), FormatCurrency(a.Floor))
	}

	if result.SafePurchase != nil {
		sp := result.SafePurchase
		fmt.Fprintln(w, sectionStyle.Render("SAFE PURCHASE TIMING"))
		if sp.RecommendedMonth != nil {
			fmt.Fprintf(w, "Spend %s in %s (wait %d month(s))\n", FormatCurrency(sp.ExpenseAmount), sp.RecommendedMonth, sp.MonthsToWait)
			fmt.Fprintf(w, "Balance after purchase: %s (%s of net income)\n\n",
				FormatCurrency(sp.BalanceAfterPurchase), FormatMonths(sp.EmergencyFundMonthsAfter))
		} else {
			fmt.Fprintf(w, "%s\n\n", sp.Note)
		}
	}

	if result.Constraints != nil {
		c := result.Constraints
		fmt.Fprintln(w, sectionStyle.Render("CONSTRAINTS"))
		if len(c.Warnings) == 0 {
			fmt.Fprintln(w, "All requested balance constraints hold.")
		}
		for _, warning := range c.Warnings {
			fmt.Fprintf(w, "WARNING: %s\n", warning)
		}
		fmt.Fprintln(w)
	}

	if result.Scenario != nil {
		s := result.Scenario
		fmt.Fprintln(w, sectionStyle.Render("SCENARIO VS BASELINE"))
		fmt.Fprintf(w, "Events applied: %d (income %s, expenses %s)\n",
			s.EventsApplied, FormatCurrency(s.HypotheticalIncome), FormatCurrency(s.HypotheticalExpenses))
		fmt.Fprintf(w, "Final balance delta vs baseline %s: %s\n\n",
			FormatCurrency(s.BaselineFinalBalance), FormatCurrency(s.FinalBalanceDelta))
	}

	if len(result.Assumptions) > 0 {
		fmt.Fprintln(w, sectionStyle.Render("ASSUMPTIONS"))
		for _, a := range result.Assumptions {
			fmt.Fprintf(w, "- %s\n", a)
		}
		fmt.Fprintln(w)
	}
	if len(result.Notes) > 0 {
		fmt.Fprintln(w, sectionStyle.Render("NOTES"))
		for _, n := range result.Notes {
			fmt.Fprintf(w, "- %s\n", n)
		}
	}

	return nil
}

func (rg *ReportGenerator) writeSafety(w io.Writer, safety domain.SafetyAssessment) {
	fmt.Fprintln(w, sectionStyle.Render("SAFETY"))
	style, ok := statusStyles[safety.Status]
	if !ok {
		style = lipgloss.NewStyle()
	}
	fmt.Fprintf(w, "Status: %s\n", style.Render(strings.ToUpper(safety.Label)))
	if safety.ReferenceMonth != nil {
		fmt.Fprintf(w, "Reference balance: %s (%s)\n", FormatCurrency(safety.ReferenceBalance), safety.ReferenceMonth)
	} else {
		fmt.Fprintf(w, "Reference balance: %s\n", FormatCurrency(safety.ReferenceBalance))
	}
	fmt.Fprintf(w, "Emergency fund: %s (thresholds: caution below %s, safe above %s)\n",
		FormatMonths(safety.EmergencyFundMonths),
		FormatCurrency(safety.YellowThreshold),
		FormatCurrency(safety.GreenThreshold))
	fmt.Fprintf(w, "%s\n\n", safety.Recommendation)
}

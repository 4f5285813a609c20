package output

import (
	"fmt"
	"io"

	"github.com/go-pdf/fpdf"

	"github.com/jwtan/plancast/internal/domain"
)

// GeneratePDF renders the projection as a one-or-more-page PDF report.
func (rg *ReportGenerator) GeneratePDF(result *domain.ProjectionResult, w io.Writer) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, fmt.Sprintf("Cashflow Projection %s - %s", result.FromMonth, result.ToMonth))
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Starting balance: %s", FormatCurrency(result.StartingBalance)))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Total income: %s    Total expenses: %s    Final balance: %s",
		FormatCurrency(result.TotalIncome), FormatCurrency(result.TotalExpenses), FormatCurrency(result.FinalBalance)))
	pdf.Ln(10)

	// Month table
	pdf.SetFont("Helvetica", "B", 9)
	widths := []float64{25, 35, 35, 35, 40}
	headers := []string{"Month", "Income", "Expenses", "Net", "Balance"}
	for i, h := range headers {
		pdf.CellFormat(widths[i], 7, h, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 9)
	for _, b := range result.MonthBuckets {
		cells := []string{
			b.Month.String(),
			FormatCurrency(b.Income),
			FormatCurrency(b.Expenses),
			FormatCurrency(b.NetBalance),
			FormatCurrency(b.CumulativeBalance),
		}
		for i, c := range cells {
			align := "R"
			if i == 0 {
				align = "L"
			}
			pdf.CellFormat(widths[i], 6, c, "1", 0, align, false, 0, "")
		}
		pdf.Ln(-1)
	}
	pdf.Ln(6)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.Cell(0, 7, fmt.Sprintf("Safety: %s", result.Safety.Label))
	pdf.Ln(7)
	pdf.SetFont("Helvetica", "", 9)
	pdf.MultiCell(0, 5, result.Safety.Recommendation, "", "L", false)
	pdf.Ln(4)

	if result.Affordability != nil {
		a := result.Affordability
		pdf.SetFont("Helvetica", "B", 11)
		pdf.Cell(0, 7, "Affordability")
		pdf.Ln(7)
		pdf.SetFont("Helvetica", "", 9)
		pdf.MultiCell(0, 5, fmt.Sprintf("Max one-time expense in %s: %s (binding month %s, floor %s)",
			a.TargetMonth, FormatCurrency(a.MaxAffordableOneTimeExpense), a.BindingMonth, FormatCurrency(a.Floor)),
			"", "L", false)
		pdf.Ln(4)
	}

	if result.SafePurchase != nil && result.SafePurchase.RecommendedMonth != nil {
		sp := result.SafePurchase
		pdf.SetFont("Helvetica", "B", 11)
		pdf.Cell(0, 7, "Safe purchase timing")
		pdf.Ln(7)
		pdf.SetFont("Helvetica", "", 9)
		pdf.MultiCell(0, 5, fmt.Sprintf("Spend %s in %s; balance afterwards %s.",
			FormatCurrency(sp.ExpenseAmount), sp.RecommendedMonth, FormatCurrency(sp.BalanceAfterPurchase)),
			"", "L", false)
		pdf.Ln(4)
	}

	if len(result.Assumptions) > 0 {
		pdf.SetFont("Helvetica", "B", 11)
		pdf.Cell(0, 7, "Assumptions")
		pdf.Ln(7)
		pdf.SetFont("Helvetica", "", 9)
		for _, a := range result.Assumptions {
			pdf.MultiCell(0, 5, "- "+a, "", "L", false)
		}
	}

	return pdf.Output(w)
}

package output

import (
	"encoding/csv"
	"io"
	"strings"

	"github.com/jwtan/plancast/internal/domain"
)

// GenerateCSV writes one row per projected month.
func (rg *ReportGenerator) GenerateCSV(result *domain.ProjectionResult, w io.Writer) error {
	cw := csv.NewWriter(w)
	header := []string{"Month", "Income", "Expenses", "NetBalance", "CumulativeBalance", "Hypotheticals"}
	if err := cw.Write(header); err != nil {
		return err
	}

	for _, b := range result.MonthBuckets {
		var labels []string
		for _, ev := range b.AppliedHypotheticals {
			label := ev.Label
			if label == "" {
				label = string(ev.Type)
			}
			labels = append(labels, label+":"+ev.Amount.StringFixed(2))
		}
		row := []string{
			b.Month.String(),
			b.Income.StringFixed(2),
			b.Expenses.StringFixed(2),
			b.NetBalance.StringFixed(2),
			b.CumulativeBalance.StringFixed(2),
			strings.Join(labels, "; "),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

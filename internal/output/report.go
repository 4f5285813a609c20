// Package output renders projection results as console text, JSON, CSV, or
// PDF reports.
package output

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/jwtan/plancast/internal/domain"
)

// Supported report formats.
const (
	FormatConsole = "console"
	FormatJSON    = "json"
	FormatCSV     = "csv"
	FormatPDF     = "pdf"
)

// ReportGenerator renders a ProjectionResult in the requested format.
type ReportGenerator struct{}

// NewReportGenerator creates a new report generator.
func NewReportGenerator() *ReportGenerator {
	return &ReportGenerator{}
}

// Generate writes the result to w in the given format.
func (rg *ReportGenerator) Generate(result *domain.ProjectionResult, format string, w io.Writer) error {
	switch format {
	case FormatConsole:
		return rg.GenerateConsole(result, w)
	case FormatJSON:
		return rg.GenerateJSON(result, w)
	case FormatCSV:
		return rg.GenerateCSV(result, w)
	case FormatPDF:
		return rg.GeneratePDF(result, w)
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}

// GenerateJSON writes the result as indented JSON.
func (rg *ReportGenerator) GenerateJSON(result *domain.ProjectionResult, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

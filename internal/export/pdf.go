package export

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/julianstephens/dayfit/internal/constants"
	"github.com/julianstephens/dayfit/internal/duration"
	"github.com/julianstephens/dayfit/internal/models"
	"github.com/julianstephens/dayfit/internal/utils"
)

// PDFName is plan_<YYYY-MM-DD>.pdf
func PDFName(now time.Time) string {
	return fmt.Sprintf("plan_%s.pdf", now.Format(constants.DateFormat))
}

// PDF writes the computed schedule and its summary to path. Rows are
// labelled in the given number format.
func PDF(report models.ScheduleReport, path, numberFormat string, now time.Time) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle("Daily plan "+now.Format(constants.DateFormat), false)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(0, 10, fmt.Sprintf("Daily plan: %s", now.Format(constants.DateFormat)))
	pdf.Ln(14)

	widths := []float64{14, 86, 45, 35}
	pdf.SetFont("Arial", "B", 11)
	pdf.SetFillColor(0x00, 0x34, 0x94)
	pdf.SetTextColor(0xFF, 0xFF, 0xFF)
	for i, h := range []string{"#", "Activity", "Work blocks", "Total"} {
		pdf.CellFormat(widths[i], 8, h, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 11)
	pdf.SetTextColor(0, 0, 0)
	for i, row := range report.Rows {
		blocks := strings.ReplaceAll(row.WorkText(), "\n", ", ")
		name := row.Name
		if row.RestEligible {
			name += " *"
		}
		cells := []string{utils.RowLabel(i+1, numberFormat), tr(name), blocks, duration.Format(row.Total)}
		for j, c := range cells {
			align := "C"
			if j == 1 {
				align = "L"
			}
			pdf.CellFormat(widths[j], 7, c, "1", 0, align, false, 0, "")
		}
		pdf.Ln(-1)
	}

	pdf.Ln(4)
	pdf.SetFont("Arial", "I", 9)
	pdf.Cell(0, 5, "* breaks included in total")
	pdf.Ln(10)

	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(0, 8, "Summary")
	pdf.Ln(9)
	pdf.SetFont("Arial", "", 11)
	for _, line := range report.Summary() {
		pdf.CellFormat(70, 7, line.Label, "1", 0, "L", false, 0, "")
		pdf.CellFormat(30, 7, line.Value, "1", 1, "C", false, 0, "")
	}

	if len(report.Skipped) > 0 {
		pdf.Ln(6)
		pdf.SetFont("Arial", "B", 11)
		pdf.Cell(0, 7, "Skipped rows")
		pdf.Ln(8)
		pdf.SetFont("Arial", "", 10)
		for _, s := range report.Skipped {
			pdf.MultiCell(0, 6, tr(fmt.Sprintf("%s (%q): %v", s.Name, s.Duration, s.Err)), "", "", false)
		}
	}

	return pdf.OutputFileAndClose(path)
}

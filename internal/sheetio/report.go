package sheetio

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/julianstephens/dayfit/internal/duration"
	"github.com/julianstephens/dayfit/internal/models"
)

const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

type reportRow struct {
	Name         string   `json:"name" yaml:"name"`
	RestEligible bool     `json:"rest_eligible" yaml:"rest_eligible"`
	Work         []string `json:"work" yaml:"work"`
	Total        string   `json:"total" yaml:"total"`
}

type summaryLine struct {
	Label string `json:"label" yaml:"label"`
	Value string `json:"value" yaml:"value"`
}

type skippedRow struct {
	List     string `json:"list" yaml:"list"`
	Name     string `json:"name" yaml:"name"`
	Duration string `json:"duration" yaml:"duration"`
	Error    string `json:"error" yaml:"error"`
}

// ReportDoc is the serialized form of a schedule report. Durations are
// rendered as HH:MM.
type ReportDoc struct {
	Rows    []reportRow   `json:"rows" yaml:"rows"`
	Summary []summaryLine `json:"summary" yaml:"summary"`
	Fits    bool          `json:"fits_in_day" yaml:"fits_in_day"`
	Skipped []skippedRow  `json:"skipped,omitempty" yaml:"skipped,omitempty"`
}

// NewReportDoc converts a report for encoding.
func NewReportDoc(report models.ScheduleReport) ReportDoc {
	doc := ReportDoc{
		Rows:    make([]reportRow, 0, len(report.Rows)),
		Summary: make([]summaryLine, 0, 5),
		Fits:    report.FitsInDay,
	}
	for _, r := range report.Rows {
		work := make([]string, len(r.Work))
		for i, d := range r.Work {
			work[i] = duration.Format(d)
		}
		doc.Rows = append(doc.Rows, reportRow{
			Name:         r.Name,
			RestEligible: r.RestEligible,
			Work:         work,
			Total:        duration.Format(r.Total),
		})
	}
	for _, line := range report.Summary() {
		doc.Summary = append(doc.Summary, summaryLine{Label: line.Label, Value: line.Value})
	}
	for _, s := range report.Skipped {
		doc.Skipped = append(doc.Skipped, skippedRow{
			List:     string(s.List),
			Name:     s.Name,
			Duration: s.Duration,
			Error:    s.Err.Error(),
		})
	}
	return doc
}

// EncodeReport writes the report as json or yaml.
func EncodeReport(w io.Writer, report models.ScheduleReport, format string) error {
	doc := NewReportDoc(report)
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unsupported report format: %s", format)
	}
}

package plans

import (
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"golang.org/x/term"

	"github.com/julianstephens/dayfit/internal/cli"
	"github.com/julianstephens/dayfit/internal/constants"
	"github.com/julianstephens/dayfit/internal/duration"
	"github.com/julianstephens/dayfit/internal/models"
	"github.com/julianstephens/dayfit/internal/utils"
)

var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFFFFF")).Background(lipgloss.Color("#003494")).Padding(0, 1)
	cellStyle    = lipgloss.NewStyle().Padding(0, 1)
	labelStyle   = lipgloss.NewStyle().Bold(true)
	fitsStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#2E8B57"))
	overrunStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#F50206"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#E0A800"))
)

// styledOutput reports whether output goes to an interactive terminal.
func styledOutput(ctx *cli.Context) bool {
	if ctx.Out != nil {
		return false
	}
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// renderText writes the per-task table and the summary lines.
func renderText(w io.Writer, report models.ScheduleReport, numberFormat string, styled bool) {
	rows := make([][]string, 0, len(report.Rows))
	for i, r := range report.Rows {
		work := make([]string, len(r.Work))
		for j, d := range r.Work {
			work[j] = duration.Format(d)
		}
		rest := "no"
		if r.RestEligible {
			rest = "yes"
		}
		rows = append(rows, []string{
			utils.RowLabel(i+1, numberFormat), r.Name, rest, strings.Join(work, " + "), duration.Format(r.Total),
		})
	}

	t := table.New().
		Headers("#", "Activity", "Rest", "Work", "Total").
		Rows(rows...)
	if styled {
		t = t.Border(lipgloss.RoundedBorder()).
			StyleFunc(func(row, col int) lipgloss.Style {
				if row == table.HeaderRow {
					return headerStyle
				}
				return cellStyle
			})
	} else {
		t = t.Border(lipgloss.ASCIIBorder()).
			StyleFunc(func(row, col int) lipgloss.Style { return cellStyle })
	}
	io.WriteString(w, t.Render()+"\n\n")

	for _, line := range report.Summary() {
		label, value := line.Label+":", line.Value
		if styled {
			label = labelStyle.Render(label)
			if line.Label == constants.LabelStatus {
				if report.FitsInDay {
					value = fitsStyle.Render(value)
				} else {
					value = overrunStyle.Render(value)
				}
			}
		}
		io.WriteString(w, padRight(label, line.Label, 25)+value+"\n")
	}

	for _, s := range report.Skipped {
		msg := "Skipped: " + s.Error()
		if styled {
			msg = warnStyle.Render(msg)
		}
		io.WriteString(w, msg+"\n")
	}
}

// padRight pads a possibly styled label by the width of its plain text.
func padRight(rendered, plain string, width int) string {
	n := width - len(plain) - 1
	if n < 1 {
		n = 1
	}
	return rendered + strings.Repeat(" ", n)
}

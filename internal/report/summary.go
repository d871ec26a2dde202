package report

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/Sumatoshi-tech/downstats/internal/feed"
	"github.com/Sumatoshi-tech/downstats/internal/stats"
)

// Console summary labels.
const (
	summaryTitle       = "DOWNLOAD VALIDATION"
	statusOK           = "ok"
	statusInconsistent = "INCONSISTENT"
)

// SummaryOptions configures the console summary output.
type SummaryOptions struct {
	NoColor bool
}

// WriteSummary renders the validator's per-year cross-check as a console
// table, followed by the row-audit line. The output is for humans, not a
// machine contract.
func WriteSummary(w io.Writer, checks []stats.YearCheck, audit feed.RowAudit, opt SummaryOptions) {
	green := color.New(color.FgGreen).SprintFunc()
	red := color.New(color.FgRed).SprintFunc()

	if opt.NoColor {
		green = fmt.Sprint
		red = fmt.Sprint
	}

	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.SetTitle(summaryTitle)
	tw.AppendHeader(table.Row{"Year", "Downloads", "Override (versions)", "Override (OS)", "API-only", "Status"})

	for _, check := range checks {
		status := green(statusOK)
		if !check.Consistent() {
			status = red(statusInconsistent)
		}

		tw.AppendRow(table.Row{
			check.Year,
			humanize.Comma(check.AggregateTotal),
			humanize.Comma(check.MasterTotal),
			humanize.Comma(check.ReferenceTotal),
			humanize.Comma(check.Delta),
			status,
		})
	}

	tw.Render()

	fmt.Fprintf(w, "rows: %d accepted, %d short, %d bad-date, %d coerced\n",
		audit.Accepted, audit.SkippedShort, audit.SkippedDate, audit.Coerced)
}

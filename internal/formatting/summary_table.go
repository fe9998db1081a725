// Package formatting renders run results for terminal output.
package formatting

import (
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// Summary holds the per-action counts of one generation run.
type Summary struct {
	Generated int
	Skipped   int
	Failed    int
	NoTests   int
	Removed   int
	Duration  time.Duration
}

// Total returns the number of specs processed.
func (s Summary) Total() int {
	return s.Generated + s.Skipped + s.Failed + s.NoTests
}

// SummaryTable renders the end-of-run summary as a rounded table.
func SummaryTable(s Summary) string {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)

	t.AppendHeader(table.Row{
		text.FgHiCyan.Sprint("RESULT"),
		text.FgHiCyan.Sprint("COUNT"),
	})

	t.AppendRow(table.Row{text.FgGreen.Sprint("generated"), s.Generated})
	t.AppendRow(table.Row{"skipped (unchanged)", s.Skipped})
	t.AppendRow(table.Row{"no test cases", s.NoTests})
	if s.Removed > 0 {
		t.AppendRow(table.Row{"removed (stale)", s.Removed})
	}
	if s.Failed > 0 {
		t.AppendRow(table.Row{text.FgRed.Sprint("failed"), text.FgRed.Sprint(s.Failed)})
	} else {
		t.AppendRow(table.Row{"failed", 0})
	}

	t.AppendFooter(table.Row{"specs processed", s.Total()})

	return t.Render() + "\n⏱️  " + s.Duration.Round(time.Millisecond).String()
}

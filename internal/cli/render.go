package cli

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"github.com/vibetimer/vibetimer/internal/domain/ledger"
	"github.com/vibetimer/vibetimer/internal/domain/summary"
	"github.com/vibetimer/vibetimer/internal/timeutil"
)

var (
	bold    = color.New(color.Bold)
	faint   = color.New(color.Faint)
	running = color.New(color.FgHiGreen)
)

// renderEntries prints a date's ledger as a table. Running entries show
// their live total, not the banked figure.
func renderEntries(date string, entries []ledger.Entry, now time.Time) {
	_, _ = bold.Fprintln(color.Output, date)

	if len(entries) == 0 {
		_, _ = faint.Fprintln(color.Output, "  no vibes")
		return
	}

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow("", "VIBE", "TOTAL", "SESSION", "ID")
	for i := range entries {
		e := &entries[i]
		marker := ""
		name := e.Name
		if e.IsRunning {
			marker = running.Sprint("●")
			name = running.Sprint(e.Name)
		}
		tbl.AddRow(marker, name,
			timeutil.FormatDuration(e.LiveTotal(now)),
			timeutil.FormatDuration(e.SessionSeconds(now)),
			faint.Sprint(e.VibeID))
	}
	_, _ = fmt.Fprintln(color.Output, tbl)
}

// renderReport prints the distribution table with percentage bars.
func renderReport(report *summary.Report) {
	_, _ = bold.Fprintf(color.Output, "%s  total %s\n", report.Date,
		timeutil.FormatDuration(report.TotalSeconds))

	if len(report.Slices) == 0 {
		_, _ = faint.Fprintln(color.Output, "  no time tracked")
		return
	}

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow("VIBE", "TIME", "SHARE", "")
	for _, s := range report.Slices {
		tbl.AddRow(s.Name,
			timeutil.FormatDuration(s.Seconds),
			fmt.Sprintf("%5.1f%%", s.Percentage),
			bar(s.Percentage))
	}
	_, _ = fmt.Fprintln(color.Output, tbl)
}

func renderRunning(entry *ledger.Entry, now time.Time) {
	if entry == nil {
		_, _ = faint.Fprintln(color.Output, "no timer running")
		return
	}
	_, _ = running.Fprintf(color.Output, "● %s", entry.Name)
	_, _ = fmt.Fprintf(color.Output, "  session %s  total %s  (%s)\n",
		timeutil.FormatDuration(entry.SessionSeconds(now)),
		timeutil.FormatDuration(entry.LiveTotal(now)),
		entry.Date)
}

// bar renders a share as a fixed-width block gauge.
func bar(pct float64) string {
	const width = 20
	filled := int(pct / 100 * width)
	if filled > width {
		filled = width
	}
	out := make([]rune, width)
	for i := range out {
		if i < filled {
			out[i] = '█'
		} else {
			out[i] = '░'
		}
	}
	return string(out)
}

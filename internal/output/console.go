package output

import (
	"bytes"
	"fmt"

	"github.com/nwgo/networth-simulator/internal/simulation"
	"github.com/nwgo/networth-simulator/pkg/money"
)

// ConsoleFormatter renders a plain-text run summary with a net-worth
// percentile table at five-year milestones.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console" }

func (c ConsoleFormatter) Format(report *Report) ([]byte, error) {
	var buf bytes.Buffer
	s := report.Summary
	cur := report.Results.Currency

	fmt.Fprintln(&buf, "NET WORTH SIMULATION SUMMARY")
	fmt.Fprintln(&buf, "============================")
	fmt.Fprintf(&buf, "Paths: %d   Horizon: %d years   Seed: %d\n", s.NumSimulations, s.HorizonYears, s.Seed)
	fmt.Fprintln(&buf)
	fmt.Fprintf(&buf, "Final net worth (nominal): median %s   [P10 %s .. P90 %s]\n",
		cur.Format(s.FinalNetWorth.P50), cur.Format(s.FinalNetWorth.P10), cur.Format(s.FinalNetWorth.P90))
	fmt.Fprintf(&buf, "Final net worth (real):    median %s   [P10 %s .. P90 %s]\n",
		cur.Format(s.FinalNetWorthReal.P50), cur.Format(s.FinalNetWorthReal.P10), cur.Format(s.FinalNetWorthReal.P90))
	fmt.Fprintf(&buf, "Insolvency rate: %.1f%% of paths saw negative liquid wealth\n", s.InsolvencyRate*100)
	fmt.Fprintln(&buf)

	c.writeMilestones(&buf, report)
	c.writeMessages(&buf, report)

	return buf.Bytes(), nil
}

// writeMilestones prints the selected view's net-worth bands every five
// years.
func (c ConsoleFormatter) writeMilestones(buf *bytes.Buffer, report *Report) {
	bands := report.DisplayBands()
	p10 := bandAt(bands, 10)
	p25 := bandAt(bands, 25)
	p50 := bandAt(bands, 50)
	p75 := bandAt(bands, 75)
	p90 := bandAt(bands, 90)
	if p10 == nil || p25 == nil || p50 == nil || p75 == nil || p90 == nil {
		return
	}

	view := "nominal"
	if report.View == simulation.ViewReal {
		view = "real, today's money"
	}
	cur := report.Results.Currency
	fmt.Fprintf(buf, "Net worth by year (%s)\n", view)
	fmt.Fprintf(buf, "%-6s %14s %14s %14s %14s %14s\n", "Year", "P10", "P25", "P50", "P75", "P90")
	horizon := report.Summary.HorizonYears
	for year := 0; year <= horizon; year += 5 {
		c.writeMilestoneRow(buf, cur, year, p10, p25, p50, p75, p90)
	}
	if horizon%5 != 0 {
		c.writeMilestoneRow(buf, cur, horizon, p10, p25, p50, p75, p90)
	}
}

func (c ConsoleFormatter) writeMilestoneRow(buf *bytes.Buffer, cur money.Currency, year int, bands ...*simulation.Band) {
	fmt.Fprintf(buf, "%-6d", year)
	for _, b := range bands {
		fmt.Fprintf(buf, " %14s", cur.Format(b.Values[year]))
	}
	fmt.Fprintln(buf)
}

// writeMessages lists run diagnostics, if any.
func (c ConsoleFormatter) writeMessages(buf *bytes.Buffer, report *Report) {
	msgs := report.Results.Messages
	if len(msgs) == 0 {
		return
	}
	fmt.Fprintln(buf)
	fmt.Fprintf(buf, "Messages (%d)\n", len(msgs))
	for _, m := range msgs {
		fmt.Fprintf(buf, "  [%s] year %d: %s\n", m.Level, m.Year, m.Text)
	}
}

package report

import (
	"fmt"
	"strings"

	"ChartArcade/internal/calculator"
	"ChartArcade/internal/model"
)

const rule = "============================================================"

// FormatSummary renders the download summary for the records fetched and
// saved in the current run.
func FormatSummary(records []*model.StockRecord, gapThresholdDays int) string {
	var b strings.Builder

	b.WriteString("\n" + rule + "\n")
	b.WriteString("DOWNLOAD SUMMARY\n")
	b.WriteString(rule + "\n")

	for _, rec := range records {
		bars := rec.Bars
		b.WriteString(fmt.Sprintf("\n%s (%s)\n", rec.Ticker, rec.Name))
		b.WriteString(fmt.Sprintf("  Sector: %s\n", rec.Sector))
		if len(bars) == 0 {
			b.WriteString("  No bars\n")
			continue
		}
		b.WriteString(fmt.Sprintf("  Date Range: %s to %s\n", bars[0].Time, bars[len(bars)-1].Time))
		b.WriteString(fmt.Sprintf("  Total Bars: %d\n", len(bars)))

		if low, high, err := calculator.CloseRange(bars); err == nil {
			b.WriteString(fmt.Sprintf("  Price Range: $%.2f - $%.2f\n", low, high))
		}

		if gaps := calculator.CountGaps(bars, gapThresholdDays); gaps > 0 {
			b.WriteString(fmt.Sprintf("  Significant Gaps: %d\n", gaps))
		}
	}

	b.WriteString("\n" + rule + "\n")
	return b.String()
}

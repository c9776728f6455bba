package report

import (
	"strings"
	"testing"

	"ChartArcade/internal/model"
)

func TestFormatSummary(t *testing.T) {
	records := []*model.StockRecord{
		{
			Ticker: "AAPL",
			Name:   "Apple Inc.",
			Sector: "Technology",
			Bars: []model.Bar{
				{Time: "2024-01-02", Close: 185.64},
				{Time: "2024-01-03", Close: 184.25},
				{Time: "2024-01-12", Close: 190.10},
			},
		},
	}

	out := FormatSummary(records, 5)

	for _, want := range []string{
		"DOWNLOAD SUMMARY",
		"AAPL (Apple Inc.)",
		"Sector: Technology",
		"Date Range: 2024-01-02 to 2024-01-12",
		"Total Bars: 3",
		"Price Range: $184.25 - $190.10",
		"Significant Gaps: 1",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("summary missing %q:\n%s", want, out)
		}
	}
}

func TestFormatSummary_NoGapsLineWhenContiguous(t *testing.T) {
	records := []*model.StockRecord{
		{
			Ticker: "T",
			Name:   "AT&T Inc.",
			Sector: "Consumer Cyclical",
			Bars: []model.Bar{
				{Time: "2024-01-02", Close: 17.10},
				{Time: "2024-01-03", Close: 17.25},
			},
		},
	}

	out := FormatSummary(records, 5)
	if strings.Contains(out, "Significant Gaps") {
		t.Errorf("gap line should be omitted for contiguous bars:\n%s", out)
	}
}

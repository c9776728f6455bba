package collector

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"ChartArcade/internal/model"
)

// ErrNoData reports that the provider answered with zero rows for a symbol.
// It is a soft failure: the caller warns and skips, the batch continues.
var ErrNoData = errors.New("no data returned")

// Collector fetches and normalizes one stock record per symbol.
type Collector struct {
	Fetcher Fetcher
	Names   map[string]string
	Sectors map[string]string
}

// NewCollector creates a new Collector.
func NewCollector(fetcher Fetcher, names, sectors map[string]string) *Collector {
	return &Collector{Fetcher: fetcher, Names: names, Sectors: sectors}
}

// FetchStock fetches daily bars covering the last years*365 days for symbol
// and normalizes them into a StockRecord: prices rounded to 2 decimals,
// volume cast to a whole count, bars sorted ascending by date. Provider order
// is not trusted.
func (c *Collector) FetchStock(ctx context.Context, symbol string, years int) (*model.StockRecord, error) {
	end := time.Now()
	start := end.AddDate(0, 0, -years*365)

	raw, err := c.Fetcher.FetchDailyBars(ctx, symbol, start, end)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", symbol, err)
	}
	if len(raw) == 0 {
		return nil, ErrNoData
	}

	bars := make([]model.Bar, 0, len(raw))
	for _, b := range raw {
		bars = append(bars, model.Bar{
			Time:   b.Time.Format(model.DateLayout),
			Open:   round2(b.Open),
			High:   round2(b.High),
			Low:    round2(b.Low),
			Close:  round2(b.Close),
			Volume: int64(b.Volume),
		})
	}
	sort.Slice(bars, func(i, j int) bool { return bars[i].Time < bars[j].Time })

	ticker := strings.ToUpper(symbol)
	name := ticker
	if n, ok := c.Names[ticker]; ok {
		name = n
	}
	sector := "Unknown"
	if s, ok := c.Sectors[ticker]; ok {
		sector = s
	}

	return &model.StockRecord{
		Ticker: ticker,
		Name:   name,
		Sector: sector,
		Bars:   bars,
	}, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

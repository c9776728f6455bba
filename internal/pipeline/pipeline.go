package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"ChartArcade/internal/collector"
	"ChartArcade/internal/model"
	"ChartArcade/internal/recorder"
	"ChartArcade/internal/report"
	"ChartArcade/internal/store"
)

// Pipeline wires the collector, store, journal, and summary report into the
// sequential fetch run. Symbols are processed one at a time in list order; a
// single symbol's failure never aborts the batch.
type Pipeline struct {
	Collector        *collector.Collector
	Store            *store.Store
	Recorder         recorder.Recorder
	Symbols          []string
	Years            int
	MetadataFile     string
	GapThresholdDays int
	Out              io.Writer
	Log              *logrus.Logger
}

// Run executes the default fetch mode: fetch and save every configured
// symbol, rebuild the metadata index from the stocks directory, and print the
// download summary. It returns an error only when zero symbols were saved.
func (p *Pipeline) Run(ctx context.Context) error {
	p.Log.Infof("symbols: %s", strings.Join(p.Symbols, ", "))
	p.Log.Infof("years of data: %d", p.Years)
	p.Log.Infof("output directory: %s", p.Store.Dir)

	saved := make([]*model.StockRecord, 0, len(p.Symbols))
	for _, symbol := range p.Symbols {
		p.Log.Infof("fetching %s", symbol)
		started := time.Now()

		rec, err := p.Collector.FetchStock(ctx, symbol, p.Years)
		if err != nil {
			status := "fetch_error"
			if errors.Is(err, collector.ErrNoData) {
				status = "empty"
				p.Log.Warnf("no data returned for %s", symbol)
			} else {
				p.Log.Warnf("fetching %s failed: %v", symbol, err)
			}
			p.journalFetch(&recorder.FetchEvent{
				Symbol:   symbol,
				Status:   status,
				Duration: time.Since(started),
				Detail:   err.Error(),
			})
			continue
		}

		path, err := p.Store.SaveRecord(rec)
		if err != nil {
			p.Log.Warnf("saving %s failed: %v", rec.Ticker, err)
			p.journalFetch(&recorder.FetchEvent{
				Symbol:   symbol,
				Status:   "save_error",
				BarCount: len(rec.Bars),
				Duration: time.Since(started),
				Detail:   err.Error(),
			})
			continue
		}

		p.Log.Infof("downloaded %d bars from %s to %s, saved to %s",
			len(rec.Bars), rec.Bars[0].Time, rec.Bars[len(rec.Bars)-1].Time, path)
		p.journalFetch(&recorder.FetchEvent{
			Symbol:   symbol,
			Status:   "ok",
			BarCount: len(rec.Bars),
			Duration: time.Since(started),
		})
		saved = append(saved, rec)
	}

	if len(saved) == 0 {
		p.journalRun(&recorder.RunEvent{Mode: "fetch", Attempted: len(p.Symbols)})
		return fmt.Errorf("no data was downloaded for any of %d symbols", len(p.Symbols))
	}

	indexed, err := p.rebuildMetadata()
	if err != nil {
		return err
	}

	fmt.Fprint(p.Out, report.FormatSummary(saved, p.GapThresholdDays))
	p.Log.Infof("downloaded data for %d/%d symbols", len(saved), len(p.Symbols))

	p.journalRun(&recorder.RunEvent{
		Mode:      "fetch",
		Attempted: len(p.Symbols),
		Saved:     len(saved),
		Indexed:   indexed,
	})
	return nil
}

// RefreshMetadata rescans the stocks directory and rewrites the index without
// fetching anything.
func (p *Pipeline) RefreshMetadata() error {
	p.Log.Infof("scanning stocks directory: %s", p.Store.Dir)

	indexed, err := p.rebuildMetadata()
	if err != nil {
		return err
	}

	p.journalRun(&recorder.RunEvent{Mode: "refresh-metadata", Indexed: indexed})
	return nil
}

func (p *Pipeline) rebuildMetadata() (int, error) {
	entries, err := p.Store.Rebuild()
	if err != nil {
		return 0, fmt.Errorf("rebuild metadata: %w", err)
	}
	if err := p.Store.WriteMetadata(p.MetadataFile, entries); err != nil {
		return 0, fmt.Errorf("save metadata: %w", err)
	}
	p.Log.Infof("metadata saved to %s, %d stocks indexed", p.MetadataFile, len(entries))
	return len(entries), nil
}

func (p *Pipeline) journalFetch(evt *recorder.FetchEvent) {
	if err := p.Recorder.RecordFetch(evt); err != nil {
		p.Log.Warnf("journal fetch event: %v", err)
	}
}

func (p *Pipeline) journalRun(evt *recorder.RunEvent) {
	if err := p.Recorder.RecordRun(evt); err != nil {
		p.Log.Warnf("journal run event: %v", err)
	}
}

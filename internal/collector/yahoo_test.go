package collector

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func chartBody(timestamps []int64, closes []float64) string {
	ts := ""
	quotes := ""
	for i, t := range timestamps {
		if i > 0 {
			ts += ","
			quotes += ","
		}
		ts += fmt.Sprintf("%d", t)
		quotes += fmt.Sprintf("%g", closes[i])
	}
	return fmt.Sprintf(`{"chart":{"result":[{"timestamp":[%s],
		"indicators":{"quote":[{"open":[%s],"high":[%s],"low":[%s],"close":[%s],"volume":[%s]}]}}],
		"error":null}}`, ts, quotes, quotes, quotes, quotes, quotes)
}

func newTestFetcher(srv *httptest.Server) *YahooFetcher {
	f := NewYahooFetcher("")
	f.BaseURL = srv.URL
	return f
}

func TestYahooFetchDailyBars(t *testing.T) {
	day1 := time.Date(2024, 1, 2, 14, 30, 0, 0, time.UTC).Unix()
	day2 := time.Date(2024, 1, 3, 14, 30, 0, 0, time.UTC).Unix()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("interval"); got != "1d" {
			t.Errorf("expected interval=1d, got %q", got)
		}
		if r.URL.Query().Get("period1") == "" || r.URL.Query().Get("period2") == "" {
			t.Error("expected period1/period2 query parameters")
		}
		fmt.Fprint(w, chartBody([]int64{day1, day2}, []float64{185.64, 184.25}))
	}))
	defer srv.Close()

	f := newTestFetcher(srv)
	bars, err := f.FetchDailyBars(context.Background(), "AAPL", time.Now().AddDate(-3, 0, 0), time.Now())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(bars) != 2 {
		t.Fatalf("expected 2 bars, got %d", len(bars))
	}
	if bars[0].Close != 185.64 {
		t.Errorf("expected close 185.64, got %v", bars[0].Close)
	}
	if !bars[0].Time.Before(bars[1].Time) {
		t.Error("bars not sorted ascending")
	}
}

func TestYahooFetchDailyBars_SkipsNullBars(t *testing.T) {
	day1 := time.Date(2024, 1, 2, 14, 30, 0, 0, time.UTC).Unix()
	day2 := time.Date(2024, 1, 3, 14, 30, 0, 0, time.UTC).Unix()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `{"chart":{"result":[{"timestamp":[%d,%d],
			"indicators":{"quote":[{"open":[null,185.0],"high":[null,187.0],
			"low":[null,184.0],"close":[null,185.64],"volume":[null,400]}]}}],
			"error":null}}`, day1, day2)
	}))
	defer srv.Close()

	f := newTestFetcher(srv)
	bars, err := f.FetchDailyBars(context.Background(), "AAPL", time.Now().AddDate(-1, 0, 0), time.Now())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(bars) != 1 {
		t.Fatalf("expected the null bar to be skipped, got %d bars", len(bars))
	}
	if bars[0].Volume != 400 {
		t.Errorf("expected volume 400, got %v", bars[0].Volume)
	}
}

func TestYahooFetchDailyBars_ShortQuoteArrays(t *testing.T) {
	day1 := time.Date(2024, 1, 2, 14, 30, 0, 0, time.UTC).Unix()
	day2 := time.Date(2024, 1, 3, 14, 30, 0, 0, time.UTC).Unix()

	// Two timestamps but single-element quote columns: the extra timestamp
	// must be dropped, not indexed.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `{"chart":{"result":[{"timestamp":[%d,%d],
			"indicators":{"quote":[{"open":[185.0],"high":[187.0],
			"low":[184.0],"close":[185.64],"volume":[400]}]}}],
			"error":null}}`, day1, day2)
	}))
	defer srv.Close()

	f := newTestFetcher(srv)
	bars, err := f.FetchDailyBars(context.Background(), "AAPL", time.Now().AddDate(-1, 0, 0), time.Now())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(bars) != 1 {
		t.Fatalf("expected 1 bar from truncated quote arrays, got %d", len(bars))
	}
	if bars[0].Close != 185.64 {
		t.Errorf("expected close 185.64, got %v", bars[0].Close)
	}
}

func TestYahooFetchDailyBars_EmptyResult(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"chart":{"result":[],"error":null}}`)
	}))
	defer srv.Close()

	f := newTestFetcher(srv)
	bars, err := f.FetchDailyBars(context.Background(), "NOPE", time.Now().AddDate(-1, 0, 0), time.Now())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(bars) != 0 {
		t.Fatalf("expected zero bars, got %d", len(bars))
	}
}

func TestYahooFetchDailyBars_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"chart":{"result":[],"error":{"code":"Not Found","description":"No data found, symbol may be delisted"}}}`)
	}))
	defer srv.Close()

	f := newTestFetcher(srv)
	_, err := f.FetchDailyBars(context.Background(), "NOPE", time.Now().AddDate(-1, 0, 0), time.Now())
	if err == nil {
		t.Fatal("expected an error for an API error payload")
	}
}

func TestYahooFetchDailyBars_BadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "too many requests", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	f := newTestFetcher(srv)
	_, err := f.FetchDailyBars(context.Background(), "AAPL", time.Now().AddDate(-1, 0, 0), time.Now())
	if err == nil {
		t.Fatal("expected an error for a non-OK status")
	}
}

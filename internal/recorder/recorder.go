package recorder

import "time"

// FetchEvent records the outcome of one symbol fetch attempt.
type FetchEvent struct {
	Symbol   string
	Status   string // "ok", "empty", "fetch_error", "save_error"
	BarCount int
	Duration time.Duration
	Detail   string
}

// RunEvent records one completed pipeline run.
type RunEvent struct {
	Mode      string // "fetch" or "refresh-metadata"
	Attempted int
	Saved     int
	Indexed   int
}

// Recorder persists a journal of fetch runs for later inspection. Journal
// failures are observational only and must never abort a run.
type Recorder interface {
	RecordFetch(evt *FetchEvent) error
	RecordRun(evt *RunEvent) error
	Close() error
}

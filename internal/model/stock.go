package model

// DateLayout is the calendar-date format used for bar times on disk.
const DateLayout = "2006-01-02"

// Bar is one normalized daily price bar in the on-disk record format.
// Prices are rounded to 2 decimals, volume is a whole share count.
type Bar struct {
	Time   string  `json:"time"`
	Open   float64 `json:"open"`
	High   float64 `json:"high"`
	Low    float64 `json:"low"`
	Close  float64 `json:"close"`
	Volume int64   `json:"volume"`
}

// StockRecord is the per-ticker JSON document consumed by the charting app.
// Bars are ordered ascending by date.
type StockRecord struct {
	Ticker string `json:"ticker"`
	Name   string `json:"name"`
	Sector string `json:"sector"`
	Bars   []Bar  `json:"bars"`
}

// MetadataEntry summarizes one stored stock record. It is a derived view:
// startDate, endDate and barCount are projections of the record's bars and
// are always regenerated by rescanning the stocks directory.
type MetadataEntry struct {
	Ticker    string `json:"ticker"`
	Name      string `json:"name"`
	Sector    string `json:"sector"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
	BarCount  int    `json:"barCount"`
}

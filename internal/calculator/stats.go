package calculator

import (
	"errors"
	"math"
	"time"

	"ChartArcade/internal/model"
)

// CloseRange scans the bars and returns the lowest and highest close.
func CloseRange(bars []model.Bar) (low, high float64, err error) {
	if len(bars) == 0 {
		return 0, 0, errors.New("no bars provided")
	}
	low = math.Inf(1)
	high = math.Inf(-1)
	for _, b := range bars {
		if b.Close < low {
			low = b.Close
		}
		if b.Close > high {
			high = b.Close
		}
	}
	return low, high, nil
}

// CountGaps counts consecutive bar pairs whose calendar-date difference
// exceeds thresholdDays. Anything above a normal weekend-plus-holiday span
// is a candidate trading halt or data hole; the threshold is a heuristic,
// not a hard classification.
func CountGaps(bars []model.Bar, thresholdDays int) int {
	gaps := 0
	for i := 1; i < len(bars); i++ {
		prev, err := time.Parse(model.DateLayout, bars[i-1].Time)
		if err != nil {
			continue
		}
		curr, err := time.Parse(model.DateLayout, bars[i].Time)
		if err != nil {
			continue
		}
		if int(curr.Sub(prev).Hours()/24) > thresholdDays {
			gaps++
		}
	}
	return gaps
}

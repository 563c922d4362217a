package analysis

import (
	"github.com/qrislens/qrislens-cli/internal/dataset"
)

// MetricSummary is the descriptive profile of one metric across the dataset.
type MetricSummary struct {
	Metric string  `json:"metric"`
	Count  int     `json:"count"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
}

// Summarize computes descriptive statistics for every metric in ds, in
// schema order. Metrics with no values are skipped.
func Summarize(ds *dataset.Dataset) []MetricSummary {
	var out []MetricSummary
	for _, name := range ds.MetricNames() {
		vals := ds.Values(name)
		if len(vals) == 0 {
			continue
		}
		s := MetricSummary{
			Metric: name,
			Count:  len(vals),
			Min:    vals[0],
			Max:    vals[0],
			Median: Quantile(vals, 0.5),
		}
		var sum float64
		for _, v := range vals {
			if v < s.Min {
				s.Min = v
			}
			if v > s.Max {
				s.Max = v
			}
			sum += v
		}
		s.Mean = sum / float64(len(vals))
		out = append(out, s)
	}
	return out
}

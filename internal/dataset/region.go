package dataset

import (
	"fmt"
	"sort"
)

// Canonical metric names used by the analysis defaults. Datasets may carry
// any additional numeric columns; these two are the paired variables for
// correlation and quadrant classification.
const (
	MetricDensity = "qris_merchant_density"
	MetricGrowth  = "pdrb_growth_pct"
)

// Region is one province's record: a unique identifier plus named numeric
// metrics. A metric that is absent from the map counts as missing, never as
// zero.
type Region struct {
	Name    string             `json:"province"`
	Group   string             `json:"bi_region,omitempty"`
	Metrics map[string]float64 `json:"metrics"`
}

// Metric returns the named value and whether it is present.
func (r Region) Metric(name string) (float64, bool) {
	v, ok := r.Metrics[name]
	return v, ok
}

// Dataset is an ordered, read-only collection of region records. Build it
// once with New and do not mutate the records afterwards.
type Dataset struct {
	regions []Region
	source  string
}

// DuplicateRegionError reports a region identifier that appears more than
// once in the input.
type DuplicateRegionError struct {
	Name string
}

func (e *DuplicateRegionError) Error() string {
	return fmt.Sprintf("duplicate region identifier: %q", e.Name)
}

// MissingMetricError reports a metric name that no record in the dataset
// carries at all. Per-record gaps are handled by exclusion, not by this error.
type MissingMetricError struct {
	Metric string
}

func (e *MissingMetricError) Error() string {
	return fmt.Sprintf("metric %q is not present on any record", e.Metric)
}

// New validates region identifiers for uniqueness and returns a Dataset.
// The source string is informational provenance for reports.
func New(regions []Region, source string) (*Dataset, error) {
	seen := make(map[string]struct{}, len(regions))
	for _, r := range regions {
		if r.Name == "" {
			return nil, fmt.Errorf("region with empty identifier")
		}
		if _, dup := seen[r.Name]; dup {
			return nil, &DuplicateRegionError{Name: r.Name}
		}
		seen[r.Name] = struct{}{}
	}
	return &Dataset{regions: regions, source: source}, nil
}

// Len reports the total number of records, qualifying or not.
func (d *Dataset) Len() int { return len(d.regions) }

// Source reports where the dataset came from (file path or "synthetic").
func (d *Dataset) Source() string { return d.source }

// Regions returns the records in load order.
func (d *Dataset) Regions() []Region { return d.regions }

// MetricNames returns the sorted union of metric names across all records.
func (d *Dataset) MetricNames() []string {
	set := map[string]struct{}{}
	for _, r := range d.regions {
		for k := range r.Metrics {
			set[k] = struct{}{}
		}
	}
	names := make([]string, 0, len(set))
	for k := range set {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// RequireMetrics fails fast with MissingMetricError if any of the given
// metric names is absent from the whole dataset schema.
func (d *Dataset) RequireMetrics(names ...string) error {
	for _, name := range names {
		found := false
		for _, r := range d.regions {
			if _, ok := r.Metrics[name]; ok {
				found = true
				break
			}
		}
		if !found {
			return &MissingMetricError{Metric: name}
		}
	}
	return nil
}

// Pairs returns the qualifying records for the two metrics: regions carrying
// non-missing values for both, in load order, with the paired values aligned
// by index. Records missing either value are excluded, not zero-filled.
func (d *Dataset) Pairs(x, y string) (xs, ys []float64, regions []Region) {
	for _, r := range d.regions {
		xv, okx := r.Metrics[x]
		yv, oky := r.Metrics[y]
		if !okx || !oky {
			continue
		}
		xs = append(xs, xv)
		ys = append(ys, yv)
		regions = append(regions, r)
	}
	return xs, ys, regions
}

// Values returns all non-missing values of one metric in load order.
func (d *Dataset) Values(name string) []float64 {
	var out []float64
	for _, r := range d.regions {
		if v, ok := r.Metrics[name]; ok {
			out = append(out, v)
		}
	}
	return out
}

package dataset

import (
	"errors"
	"reflect"
	"testing"
)

func TestNewRejectsDuplicates(t *testing.T) {
	regions := []Region{
		{Name: "Bali", Metrics: map[string]float64{MetricDensity: 1}},
		{Name: "Bali", Metrics: map[string]float64{MetricDensity: 2}},
	}
	_, err := New(regions, "test")
	var dre *DuplicateRegionError
	if !errors.As(err, &dre) {
		t.Fatalf("expected DuplicateRegionError, got %v", err)
	}
}

func TestPairsExcludesMissing(t *testing.T) {
	regions := []Region{
		{Name: "A", Metrics: map[string]float64{MetricDensity: 1, MetricGrowth: 10}},
		{Name: "B", Metrics: map[string]float64{MetricDensity: 2}},
		{Name: "C", Metrics: map[string]float64{MetricGrowth: 30}},
		{Name: "D", Metrics: map[string]float64{MetricDensity: 4, MetricGrowth: 40}},
	}
	ds, err := New(regions, "test")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	xs, ys, regs := ds.Pairs(MetricDensity, MetricGrowth)
	if len(xs) != 2 || len(ys) != 2 || len(regs) != 2 {
		t.Fatalf("got %d qualifying pairs, want 2", len(xs))
	}
	if regs[0].Name != "A" || regs[1].Name != "D" {
		t.Fatalf("qualifying order wrong: %s, %s", regs[0].Name, regs[1].Name)
	}
	if xs[1] != 4 || ys[1] != 40 {
		t.Fatalf("pair values misaligned: (%v, %v)", xs[1], ys[1])
	}
}

func TestRequireMetrics(t *testing.T) {
	regions := []Region{
		{Name: "A", Metrics: map[string]float64{MetricDensity: 1}},
	}
	ds, err := New(regions, "test")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := ds.RequireMetrics(MetricDensity); err != nil {
		t.Fatalf("present metric reported missing: %v", err)
	}
	err = ds.RequireMetrics(MetricDensity, MetricGrowth)
	var mme *MissingMetricError
	if !errors.As(err, &mme) {
		t.Fatalf("expected MissingMetricError, got %v", err)
	}
	if mme.Metric != MetricGrowth {
		t.Fatalf("wrong metric reported: %s", mme.Metric)
	}
}

func TestMetricNamesSortedUnion(t *testing.T) {
	regions := []Region{
		{Name: "A", Metrics: map[string]float64{"b_metric": 1}},
		{Name: "B", Metrics: map[string]float64{"a_metric": 2, "c_metric": 3}},
	}
	ds, err := New(regions, "test")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	want := []string{"a_metric", "b_metric", "c_metric"}
	if got := ds.MetricNames(); !reflect.DeepEqual(got, want) {
		t.Fatalf("MetricNames = %v, want %v", got, want)
	}
}

func TestSyntheticDeterministic(t *testing.T) {
	a := Synthetic()
	b := Synthetic()
	if !reflect.DeepEqual(a.Regions(), b.Regions()) {
		t.Fatalf("synthetic dataset differs between runs")
	}
	if a.Len() != 7 {
		t.Fatalf("synthetic dataset has %d provinces, want 7", a.Len())
	}
	if a.Source() != "synthetic" {
		t.Fatalf("source = %q", a.Source())
	}
	for _, r := range a.Regions() {
		d, ok := r.Metric(MetricDensity)
		if !ok {
			t.Fatalf("%s missing density", r.Name)
		}
		if d < 0.5 || d > 8.0 {
			t.Fatalf("%s density %v out of range", r.Name, d)
		}
		g, ok := r.Metric(MetricGrowth)
		if !ok {
			t.Fatalf("%s missing growth", r.Name)
		}
		if g < 4.5 || g > 6.5 {
			t.Fatalf("%s growth %v out of range", r.Name, g)
		}
	}
}

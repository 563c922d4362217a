package analysis

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestQuantileLinearInterpolation(t *testing.T) {
	vals := []float64{4, 2, 1, 3} // unsorted on purpose
	if q := Quantile(vals, 0.25); !almostEqual(q, 1.75) {
		t.Fatalf("Q1 of 1..4 = %v, want 1.75", q)
	}
	if q := Quantile(vals, 0.75); !almostEqual(q, 3.25) {
		t.Fatalf("Q3 of 1..4 = %v, want 3.25", q)
	}
	if q := Quantile(vals, 0.5); !almostEqual(q, 2.5) {
		t.Fatalf("median of 1..4 = %v, want 2.5", q)
	}
}

func TestQuantileExactRanks(t *testing.T) {
	vals := []float64{1, 2, 3, 4, 5}
	if q := Quantile(vals, 0.25); !almostEqual(q, 2) {
		t.Fatalf("Q1 of 1..5 = %v, want 2", q)
	}
	if q := Quantile(vals, 0.75); !almostEqual(q, 4) {
		t.Fatalf("Q3 of 1..5 = %v, want 4", q)
	}
	if q := Quantile(vals, 0.5); !almostEqual(q, 3) {
		t.Fatalf("median of 1..5 = %v, want 3", q)
	}
}

func TestQuantileEdges(t *testing.T) {
	if q := Quantile(nil, 0.5); q != 0 {
		t.Fatalf("empty input = %v, want 0", q)
	}
	vals := []float64{7, 3, 9}
	if q := Quantile(vals, 0); q != 3 {
		t.Fatalf("q=0 = %v, want min", q)
	}
	if q := Quantile(vals, 1); q != 9 {
		t.Fatalf("q=1 = %v, want max", q)
	}
}

func TestQuantileDoesNotMutateInput(t *testing.T) {
	vals := []float64{3, 1, 2}
	_ = Quantile(vals, 0.5)
	if vals[0] != 3 || vals[1] != 1 || vals[2] != 2 {
		t.Fatalf("input slice was reordered: %v", vals)
	}
}

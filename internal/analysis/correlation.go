package analysis

import (
	"math"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/qrislens/qrislens-cli/internal/dataset"
)

// Correlation is the summarizer's output: Pearson r, its two-tailed
// significance probability, the qualifying sample size, and the advisory
// interpretation band. Computed fresh from the dataset on every call.
type Correlation struct {
	X              string  `json:"x_metric"`
	Y              string  `json:"y_metric"`
	R              float64 `json:"pearson_r"`
	P              float64 `json:"p_value"`
	N              int     `json:"sample_size"`
	Significant    bool    `json:"significant"`
	Interpretation string  `json:"interpretation"`
	Power          string  `json:"statistical_power"`
}

// Correlate computes the Pearson correlation between two named metrics over
// the qualifying records of ds. Records missing either metric are excluded.
// Returns MissingMetricError if a metric is absent from the whole schema and
// InsufficientDataError when fewer than 2 qualifying records remain.
func Correlate(ds *dataset.Dataset, x, y string) (*Correlation, error) {
	if err := ds.RequireMetrics(x, y); err != nil {
		return nil, err
	}
	xs, ys, _ := ds.Pairs(x, y)
	n := len(xs)
	if n < 2 {
		return nil, &InsufficientDataError{Op: "correlation", Need: 2, Got: n}
	}

	r := stat.Correlation(xs, ys, nil)
	// Zero-variance inputs make r undefined; report no relationship rather
	// than propagating NaN into the report.
	if math.IsNaN(r) || math.IsInf(r, 0) {
		r = 0
	}
	if r > 1 {
		r = 1
	} else if r < -1 {
		r = -1
	}
	p := pValue(r, n)

	return &Correlation{
		X:              x,
		Y:              y,
		R:              r,
		P:              p,
		N:              n,
		Significant:    p < 0.05,
		Interpretation: interpret(r, p, n),
		Power:          PowerRating(n),
	}, nil
}

// pValue is the two-tailed significance probability of r under the null
// hypothesis of no correlation, via the Student's t transform with n-2
// degrees of freedom.
func pValue(r float64, n int) float64 {
	if n < 3 {
		// With two points the line is exact and the test has no degrees of
		// freedom; nothing can be significant.
		return 1
	}
	if math.Abs(r) >= 1 {
		return 0
	}
	df := float64(n - 2)
	t := r * math.Sqrt(df/(1-r*r))
	dist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df}
	p := 2 * dist.CDF(-math.Abs(t))
	if p > 1 {
		p = 1
	} else if p < 0 {
		p = 0
	}
	return p
}

// interpret maps (r, p, n) to the advisory band. The n<10 override comes
// first: tiny samples are labeled preliminary regardless of how strong the
// measured coefficient is.
func interpret(r, p float64, n int) string {
	if n < 10 {
		return "PRELIMINARY — insufficient sample"
	}
	if p >= 0.05 {
		return "NOT SIGNIFICANT"
	}
	switch {
	case r > 0.7:
		return "strong positive"
	case r > 0.3:
		return "moderate positive"
	case r >= -0.3:
		return "weak/none"
	case r >= -0.7:
		return "moderate negative"
	default:
		return "strong negative"
	}
}

// PowerRating grades statistical power from sample size alone.
func PowerRating(n int) string {
	switch {
	case n >= 30:
		return "EXCELLENT"
	case n >= 20:
		return "GOOD"
	case n >= 10:
		return "MODERATE"
	case n >= 5:
		return "LIMITED"
	default:
		return "INSUFFICIENT"
	}
}

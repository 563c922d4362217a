package analysis

import (
	"github.com/qrislens/qrislens-cli/internal/dataset"
)

// Bucket is a strategic quadrant label. The set is closed.
type Bucket string

const (
	BucketStars        Bucket = "HIGH_PRIORITY_STARS"
	BucketSaturated    Bucket = "SATURATED_MARKETS"
	BucketGaps         Bucket = "OPPORTUNITY_GAPS"
	BucketFoundational Bucket = "FOUNDATIONAL_DEVELOPMENT"
	BucketTransitional Bucket = "TRANSITIONAL"
)

// Buckets lists all buckets in evaluation order.
var Buckets = []Bucket{
	BucketStars, BucketSaturated, BucketGaps, BucketFoundational, BucketTransitional,
}

var strategies = map[Bucket]string{
	BucketStars:        "Deepen transaction value, showcase as success case",
	BucketSaturated:    "Focus on efficiency, reduce MDR if applicable",
	BucketGaps:         "Target with acquisition campaign, investigate barriers",
	BucketFoundational: "Basic digital infrastructure, financial literacy",
	BucketTransitional: "Monitor trends, provide standard support",
}

// Strategy returns the recommended strategy text for a bucket.
func Strategy(b Bucket) string { return strategies[b] }

// Assignment is one region's quadrant placement with the metric values that
// determined it.
type Assignment struct {
	Region   string  `json:"province"`
	Bucket   Bucket  `json:"quadrant"`
	Strategy string  `json:"strategy"`
	Density  float64 `json:"density"`
	Growth   float64 `json:"growth"`
}

// QuadrantResult holds every qualifying region's assignment plus aggregate
// counts. Counts always sum to the number of qualifying records.
type QuadrantResult struct {
	XMetric     string         `json:"x_metric"`
	YMetric     string         `json:"y_metric"`
	XQ1         float64        `json:"x_q1"`
	XQ3         float64        `json:"x_q3"`
	YQ1         float64        `json:"y_q1"`
	YQ3         float64        `json:"y_q3"`
	Assignments []Assignment   `json:"assignments"`
	Counts      map[Bucket]int `json:"counts"`
}

// Classify partitions the qualifying records of ds into strategic buckets
// using quartile thresholds on the two metrics. Quartiles are computed with
// the pinned linear-interpolation method, so re-running on the same dataset
// yields identical assignments.
//
// Conditions are evaluated in a fixed order (stars, saturated, gaps,
// foundational, transitional) and the first match wins. On degenerate
// datasets where Q1 == Q3 this order is the tie-break: an all-equal dataset
// places every region in HIGH_PRIORITY_STARS.
func Classify(ds *dataset.Dataset, x, y string) (*QuadrantResult, error) {
	if err := ds.RequireMetrics(x, y); err != nil {
		return nil, err
	}
	xs, ys, regions := ds.Pairs(x, y)
	n := len(regions)
	if n < 4 {
		return nil, &InsufficientDataError{Op: "quadrant classification", Need: 4, Got: n}
	}

	res := &QuadrantResult{
		XMetric: x,
		YMetric: y,
		XQ1:     Quantile(xs, 0.25),
		XQ3:     Quantile(xs, 0.75),
		YQ1:     Quantile(ys, 0.25),
		YQ3:     Quantile(ys, 0.75),
		Counts:  make(map[Bucket]int, len(Buckets)),
	}
	res.Assignments = make([]Assignment, 0, n)

	for i, reg := range regions {
		xv, yv := xs[i], ys[i]
		var b Bucket
		switch {
		case xv >= res.XQ3 && yv >= res.YQ3:
			b = BucketStars
		case xv >= res.XQ3 && yv <= res.YQ1:
			b = BucketSaturated
		case xv <= res.XQ1 && yv >= res.YQ3:
			b = BucketGaps
		case xv <= res.XQ1 && yv <= res.YQ1:
			b = BucketFoundational
		default:
			b = BucketTransitional
		}
		res.Assignments = append(res.Assignments, Assignment{
			Region:   reg.Name,
			Bucket:   b,
			Strategy: strategies[b],
			Density:  xv,
			Growth:   yv,
		})
		res.Counts[b]++
	}
	return res, nil
}

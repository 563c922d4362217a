package report

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/qrislens/qrislens-cli/internal/analysis"
	"github.com/qrislens/qrislens-cli/internal/dataset"
	"github.com/qrislens/qrislens-cli/internal/sentiment"
)

// Opportunity calls out a region the classifier placed in OPPORTUNITY_GAPS:
// high growth paired with low adoption.
type Opportunity struct {
	Region    string `json:"province"`
	Rationale string `json:"rationale"`
}

// Report is the assembled output of one run: descriptive summary,
// correlation, quadrant assignments, and sentiment findings. Sections that
// could not be computed carry their error text instead of fabricated values.
type Report struct {
	RunID       string    `json:"run_id"`
	GeneratedAt time.Time `json:"generated_at"`
	DataSource  string    `json:"data_source"`
	Provinces   int       `json:"provinces_analyzed"`
	Power       string    `json:"statistical_power"`

	Summary []analysis.MetricSummary `json:"data_summary,omitempty"`

	Correlation      *analysis.Correlation `json:"correlation,omitempty"`
	CorrelationError string                `json:"correlation_error,omitempty"`

	Quadrants     *analysis.QuadrantResult `json:"quadrant_analysis,omitempty"`
	QuadrantError string                   `json:"quadrant_error,omitempty"`

	Sentiment []sentiment.PillarResult `json:"sentiment,omitempty"`

	Opportunities []Opportunity `json:"opportunities,omitempty"`
	Caveats       []string      `json:"caveats,omitempty"`
}

// Build assembles a Report from the dataset and whatever analysis outputs are
// available. corrErr and quadErr carry the failure reason when the matching
// result is nil; either way the report is still produced.
func Build(ds *dataset.Dataset, corr *analysis.Correlation, corrErr error,
	quad *analysis.QuadrantResult, quadErr error, pillars []sentiment.PillarResult) *Report {

	r := &Report{
		RunID:       uuid.NewString(),
		GeneratedAt: time.Now().UTC(),
		DataSource:  ds.Source(),
		Provinces:   ds.Len(),
		Power:       analysis.PowerRating(ds.Len()),
		Summary:     analysis.Summarize(ds),
		Correlation: corr,
		Quadrants:   quad,
		Sentiment:   pillars,
	}
	if corrErr != nil {
		r.CorrelationError = corrErr.Error()
	}
	if quadErr != nil {
		r.QuadrantError = quadErr.Error()
	}
	if quad != nil {
		for _, a := range quad.Assignments {
			if a.Bucket != analysis.BucketGaps {
				continue
			}
			r.Opportunities = append(r.Opportunities, Opportunity{
				Region: a.Region,
				Rationale: fmt.Sprintf("High economic growth (%.1f%%) with low QRIS density (%.2f)",
					a.Growth, a.Density),
			})
		}
	}
	r.Caveats = caveats(ds.Len())
	return r
}

func caveats(n int) []string {
	out := []string{
		fmt.Sprintf("Analysis based on %d data points", n),
		"Pearson correlation assumes a linear relationship",
		"Adoption metrics represent merchant density, not transaction value",
	}
	if n < 20 {
		out = append(out, "STATISTICAL POWER WARNING: results indicative only, not definitive")
	}
	return out
}

// Markdown renders the report for the console in compact bracket sections.
func (r *Report) Markdown() string {
	var b strings.Builder
	b.WriteString("[DATASET SUMMARY]\n")
	b.WriteString(fmt.Sprintf("Source: %s\n", r.DataSource))
	b.WriteString(fmt.Sprintf("Provinces: %d\n", r.Provinces))
	b.WriteString(fmt.Sprintf("Statistical power: %s\n", r.Power))
	for _, s := range r.Summary {
		b.WriteString(fmt.Sprintf("- %s: n=%d, min %.4g, max %.4g, mean %.4g, median %.4g\n",
			s.Metric, s.Count, s.Min, s.Max, s.Mean, s.Median))
	}

	b.WriteString("\n[CORRELATION]\n")
	if r.Correlation != nil {
		c := r.Correlation
		b.WriteString(fmt.Sprintf("%s ~ %s: r=%.4f, p=%.4f (n=%d)\n", c.X, c.Y, c.R, c.P, c.N))
		b.WriteString(fmt.Sprintf("Interpretation: %s\n", c.Interpretation))
	} else {
		b.WriteString(fmt.Sprintf("Unavailable: %s\n", r.CorrelationError))
	}

	b.WriteString("\n[QUADRANT ANALYSIS]\n")
	if r.Quadrants != nil {
		qd := r.Quadrants
		b.WriteString(fmt.Sprintf("Thresholds: %s Q1=%.4g Q3=%.4g | %s Q1=%.4g Q3=%.4g\n",
			qd.XMetric, qd.XQ1, qd.XQ3, qd.YMetric, qd.YQ1, qd.YQ3))
		for _, bucket := range analysis.Buckets {
			if n := qd.Counts[bucket]; n > 0 {
				b.WriteString(fmt.Sprintf("- %s: %d\n", bucket, n))
			}
		}
		for _, a := range qd.Assignments {
			b.WriteString(fmt.Sprintf("  • %s → %s (%s)\n", a.Region, a.Bucket, a.Strategy))
		}
	} else {
		b.WriteString(fmt.Sprintf("Unavailable: %s\n", r.QuadrantError))
	}

	if len(r.Sentiment) > 0 {
		b.WriteString("\n[SENTIMENT MONITOR]\n")
		for _, p := range r.Sentiment {
			if p.Err != "" {
				b.WriteString(fmt.Sprintf("- %s: error (%s) | risk %s | %s\n",
					p.Pillar, p.Err, p.RiskLevel, p.Advice))
				continue
			}
			b.WriteString(fmt.Sprintf("- %s: %d articles | risk %s | %s\n",
				p.Pillar, p.ArticleCount, p.RiskLevel, p.Advice))
			for _, h := range sampleHeadlines(p.Headlines, 2) {
				b.WriteString(fmt.Sprintf("    %s\n", h))
			}
		}
	}

	if len(r.Opportunities) > 0 {
		b.WriteString("\n[OPPORTUNITIES]\n")
		ops := make([]Opportunity, len(r.Opportunities))
		copy(ops, r.Opportunities)
		sort.Slice(ops, func(i, j int) bool { return ops[i].Region < ops[j].Region })
		for _, o := range ops {
			b.WriteString(fmt.Sprintf("- %s: %s\n", o.Region, o.Rationale))
		}
	}

	if len(r.Caveats) > 0 {
		b.WriteString("\n[NOTES]\n")
		for _, c := range r.Caveats {
			b.WriteString("- " + c + "\n")
		}
	}
	return b.String()
}

func sampleHeadlines(headlines []string, n int) []string {
	if len(headlines) < n {
		n = len(headlines)
	}
	out := make([]string, 0, n)
	for _, h := range headlines[:n] {
		if len(h) > 80 {
			h = h[:80]
		}
		out = append(out, h)
	}
	return out
}

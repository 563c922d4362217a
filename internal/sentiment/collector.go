package sentiment

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const defaultBaseURL = "https://api.gdeltproject.org/api/v2/doc/doc"

// Options configures a Collector explicitly; there is no ambient state.
type Options struct {
	// BaseURL of the news-search endpoint. Defaults to the GDELT doc API.
	BaseURL string
	// Timeout per pillar request.
	Timeout time.Duration
	// SourceCountry filters articles by publisher country code.
	SourceCountry string
	// MaxRecords caps articles returned per pillar.
	MaxRecords int
	// TimespanDays is the lookback window.
	TimespanDays int
	// RequestDelay is the fixed pause between consecutive pillar requests.
	RequestDelay time.Duration
}

func (o *Options) fillDefaults() {
	if o.BaseURL == "" {
		o.BaseURL = defaultBaseURL
	}
	if o.Timeout <= 0 {
		o.Timeout = 15 * time.Second
	}
	if o.SourceCountry == "" {
		o.SourceCountry = "ID"
	}
	if o.MaxRecords <= 0 {
		o.MaxRecords = 5
	}
	if o.TimespanDays <= 0 {
		o.TimespanDays = 30
	}
}

// Collector polls a news-search endpoint once per pillar, sequentially.
// Transport failures and non-200 responses are captured per pillar in the
// result's Err field and never escape as Go errors.
type Collector struct {
	httpClient *http.Client
	opts       Options
	logger     zerolog.Logger
}

// PillarResult is the tagged outcome for one pillar. On error, ArticleCount
// is zero and Headlines is empty so the risk and tier functions fall through
// to LOW / no action.
type PillarResult struct {
	Pillar       string   `json:"pillar"`
	ArticleCount int      `json:"article_count"`
	Headlines    []string `json:"headlines,omitempty"`
	RiskLevel    string   `json:"risk_level"`
	ResponseTier string   `json:"response_tier"`
	ActionTeam   string   `json:"action_team,omitempty"`
	Advice       string   `json:"recommended_response"`
	Err          string   `json:"error,omitempty"`
}

// NewCollector builds a Collector with defaults filled in.
func NewCollector(opts Options) *Collector {
	opts.fillDefaults()
	return &Collector{
		httpClient: &http.Client{Timeout: opts.Timeout},
		opts:       opts,
		logger:     log.With().Str("component", "sentiment").Logger(),
	}
}

// Poll queries each pillar in order with the configured delay between
// requests. It always returns one result per pillar; ctx cancellation marks
// the remaining pillars as errored rather than aborting.
func (c *Collector) Poll(ctx context.Context, pillars []Pillar) []PillarResult {
	results := make([]PillarResult, 0, len(pillars))
	for i, p := range pillars {
		if i > 0 && c.opts.RequestDelay > 0 {
			if err := sleepCtx(ctx, c.opts.RequestDelay); err != nil {
				results = append(results, c.failed(p, err))
				continue
			}
		}
		res := c.fetch(ctx, p)
		c.finish(&res, p)
		results = append(results, res)
	}
	return results
}

func (c *Collector) failed(p Pillar, err error) PillarResult {
	res := PillarResult{Pillar: p.Name, Err: err.Error()}
	c.finish(&res, p)
	return res
}

// finish derives the risk level, tier, and advice; it works the same whether
// the fetch succeeded or degraded to zero articles.
func (c *Collector) finish(res *PillarResult, p Pillar) {
	res.RiskLevel = RiskLevel(p, res.Headlines)
	res.ResponseTier = ResponseTier(res.ArticleCount)
	res.ActionTeam = p.ActionTeam
	res.Advice = Advice(p, res.ArticleCount)
	ev := c.logger.Info()
	if res.Err != "" {
		ev = c.logger.Warn().Str("error", res.Err)
	}
	ev.Str("pillar", p.Name).
		Int("articles", res.ArticleCount).
		Str("risk", res.RiskLevel).
		Msg("pillar polled")
}

func (c *Collector) fetch(ctx context.Context, p Pillar) PillarResult {
	res := PillarResult{Pillar: p.Name}

	q := url.Values{}
	q.Set("query", fmt.Sprintf("%s sourcecountry:%s", p.Query, c.opts.SourceCountry))
	q.Set("mode", "artlist")
	q.Set("format", "json")
	q.Set("maxrecords", strconv.Itoa(c.opts.MaxRecords))
	q.Set("timespan", fmt.Sprintf("%ddays", c.opts.TimespanDays))
	q.Set("sort", "date")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.opts.BaseURL+"?"+q.Encode(), nil)
	if err != nil {
		res.Err = err.Error()
		return res
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		res.Err = err.Error()
		return res
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		res.Err = fmt.Sprintf("endpoint returned status %d", resp.StatusCode)
		return res
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		res.Err = fmt.Sprintf("read response: %v", err)
		return res
	}
	var doc struct {
		Articles []struct {
			Title string `json:"title"`
		} `json:"articles"`
	}
	if err := json.Unmarshal(body, &doc); err != nil {
		res.Err = fmt.Sprintf("parse response: %v", err)
		return res
	}
	res.ArticleCount = len(doc.Articles)
	for _, a := range doc.Articles {
		if a.Title != "" {
			res.Headlines = append(res.Headlines, a.Title)
		}
	}
	return res
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

package dataset

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
)

// benchmarkDoc is the on-disk shape of a benchmarks file: optional metadata
// plus a flat matrix of region rows.
type benchmarkDoc struct {
	Metadata       map[string]any   `json:"metadata"`
	RegionalMatrix []map[string]any `json:"regional_matrix"`
}

// defaultProbePaths are the conventional locations checked when no dataset
// path is given on the command line.
var defaultProbePaths = []string{
	filepath.Join("data", "benchmarks.json"),
	"benchmarks.json",
}

// Discover returns the first conventional benchmarks path that exists, or
// "" when none does.
func Discover() string {
	for _, p := range defaultProbePaths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// Load reads a dataset from path, choosing the decoder by extension
// (.json benchmarks document, .csv/.tsv table).
func Load(path string) (*Dataset, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return LoadJSON(path)
	case ".csv", ".tsv":
		return LoadCSV(path)
	default:
		return nil, fmt.Errorf("unsupported dataset format: %s", filepath.Ext(path))
	}
}

// LoadJSON reads a benchmarks document. Each row must carry a "province"
// string; "bi_region" is an optional label; every other numeric field becomes
// a named metric. Non-numeric extras are ignored.
func LoadJSON(path string) (*Dataset, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read dataset: %w", err)
	}
	var doc benchmarkDoc
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, fmt.Errorf("parse dataset %s: %w", path, err)
	}
	if len(doc.RegionalMatrix) == 0 {
		return nil, fmt.Errorf("dataset %s has no regional_matrix entries", path)
	}
	regions := make([]Region, 0, len(doc.RegionalMatrix))
	for i, row := range doc.RegionalMatrix {
		name, _ := row["province"].(string)
		if name == "" {
			return nil, fmt.Errorf("regional_matrix[%d]: missing province identifier", i)
		}
		r := Region{Name: name, Metrics: map[string]float64{}}
		if g, ok := row["bi_region"].(string); ok {
			r.Group = g
		}
		for k, v := range row {
			if k == "province" || k == "bi_region" {
				continue
			}
			if f, ok := toFloat(v); ok {
				r.Metrics[k] = f
			}
		}
		regions = append(regions, r)
	}
	log.Debug().Str("path", path).Int("regions", len(regions)).Msg("loaded benchmarks dataset")
	return New(regions, path)
}

// LoadCSV reads a delimited table. The header must contain a "province"
// column (case-insensitive); "bi_region" is optional; remaining columns are
// parsed as numeric metrics. Cells that are empty or fail to parse leave the
// metric missing for that record.
func LoadCSV(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.TrimLeadingSpace = true
	r.FieldsPerRecord = -1
	r.Comma = sniffDelimiter(path)

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	nameIdx, groupIdx := -1, -1
	for i, h := range header {
		switch strings.ToLower(strings.TrimSpace(h)) {
		case "province", "region":
			nameIdx = i
		case "bi_region":
			groupIdx = i
		}
	}
	if nameIdx < 0 {
		return nil, fmt.Errorf("dataset %s: no province column in header", path)
	}

	var regions []Region
	for line := 2; ; line++ {
		rec, err := r.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("read row %d: %w", line, err)
		}
		if nameIdx >= len(rec) || strings.TrimSpace(rec[nameIdx]) == "" {
			continue
		}
		reg := Region{Name: strings.TrimSpace(rec[nameIdx]), Metrics: map[string]float64{}}
		if groupIdx >= 0 && groupIdx < len(rec) {
			reg.Group = strings.TrimSpace(rec[groupIdx])
		}
		for i, cell := range rec {
			if i == nameIdx || i == groupIdx || i >= len(header) {
				continue
			}
			if v, ok := parseNumeric(cell); ok {
				reg.Metrics[strings.TrimSpace(header[i])] = v
			}
		}
		regions = append(regions, reg)
	}
	if len(regions) == 0 {
		return nil, fmt.Errorf("dataset %s has no data rows", path)
	}
	log.Debug().Str("path", path).Int("regions", len(regions)).Msg("loaded csv dataset")
	return New(regions, path)
}

func sniffDelimiter(path string) rune {
	if strings.HasSuffix(strings.ToLower(path), ".tsv") {
		return '\t'
	}
	return ','
}

// parseNumeric accepts plain and percent-suffixed numbers with either '.' or
// ',' decimal separators.
func parseNumeric(s string) (float64, bool) {
	raw := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "%"))
	if raw == "" {
		return 0, false
	}
	if strings.Contains(raw, ",") && !strings.Contains(raw, ".") {
		raw = strings.ReplaceAll(raw, ",", ".")
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

func toFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case json.Number:
		f, err := x.Float64()
		return f, err == nil
	case string:
		return parseNumeric(x)
	default:
		return 0, false
	}
}

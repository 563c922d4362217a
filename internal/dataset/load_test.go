package dataset

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

func TestLoadJSONBenchmarks(t *testing.T) {
	doc := `{
  "metadata": {"source": "unit test"},
  "regional_matrix": [
    {"province": "Bali", "bi_region": "Region IV", "qris_merchant_density": 3.2, "pdrb_growth_pct": 5.5, "note": "ignored"},
    {"province": "Jawa Barat", "qris_merchant_density": 1.1, "pdrb_growth_pct": 4.9}
  ]
}`
	path := writeTemp(t, "benchmarks.json", doc)
	ds, err := LoadJSON(path)
	if err != nil {
		t.Fatalf("LoadJSON: %v", err)
	}
	if ds.Len() != 2 {
		t.Fatalf("len = %d, want 2", ds.Len())
	}
	bali := ds.Regions()[0]
	if bali.Name != "Bali" || bali.Group != "Region IV" {
		t.Fatalf("unexpected first region: %+v", bali)
	}
	if v, ok := bali.Metric(MetricDensity); !ok || v != 3.2 {
		t.Fatalf("density = %v (%v)", v, ok)
	}
	if _, ok := bali.Metric("note"); ok {
		t.Fatalf("non-numeric field parsed as metric")
	}
}

func TestLoadJSONMissingProvince(t *testing.T) {
	doc := `{"regional_matrix": [{"qris_merchant_density": 3.2}]}`
	path := writeTemp(t, "bad.json", doc)
	if _, err := LoadJSON(path); err == nil {
		t.Fatalf("expected error for row without province")
	}
}

func TestLoadJSONEmptyMatrix(t *testing.T) {
	path := writeTemp(t, "empty.json", `{"regional_matrix": []}`)
	if _, err := LoadJSON(path); err == nil {
		t.Fatalf("expected error for empty regional_matrix")
	}
}

func TestLoadCSV(t *testing.T) {
	rows := strings.Join([]string{
		"province,bi_region,qris_merchant_density,pdrb_growth_pct",
		"DKI Jakarta,Region I,7.9,5.1",
		"Jawa Timur,Region III,2.4,",
		"Bali,Region IV,\"3,6\",6.0",
	}, "\n")
	path := writeTemp(t, "regions.csv", rows)
	ds, err := LoadCSV(path)
	if err != nil {
		t.Fatalf("LoadCSV: %v", err)
	}
	if ds.Len() != 3 {
		t.Fatalf("len = %d, want 3", ds.Len())
	}
	// Empty cell leaves the metric missing, not zero.
	jatim := ds.Regions()[1]
	if _, ok := jatim.Metric(MetricGrowth); ok {
		t.Fatalf("empty cell parsed as a value")
	}
	// Decimal comma is accepted.
	bali := ds.Regions()[2]
	if v, ok := bali.Metric(MetricDensity); !ok || v != 3.6 {
		t.Fatalf("decimal-comma density = %v (%v)", v, ok)
	}
}

func TestLoadCSVRequiresProvinceColumn(t *testing.T) {
	path := writeTemp(t, "noheader.csv", "a,b\n1,2\n")
	if _, err := LoadCSV(path); err == nil {
		t.Fatalf("expected error without province column")
	}
}

func TestLoadUnsupportedExtension(t *testing.T) {
	if _, err := Load("data.xml"); err == nil {
		t.Fatalf("expected error for unsupported format")
	}
}

func TestParseNumeric(t *testing.T) {
	cases := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"5.1", 5.1, true},
		{"5,1", 5.1, true},
		{"42%", 42, true},
		{" 7.0 ", 7, true},
		{"", 0, false},
		{"n/a", 0, false},
	}
	for _, tc := range cases {
		got, ok := parseNumeric(tc.in)
		if ok != tc.ok || (ok && got != tc.want) {
			t.Fatalf("parseNumeric(%q) = (%v, %v), want (%v, %v)", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}

package sentiment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"syscall"
	"testing"
	"time"
)

type ipv4Server struct {
	URL string
	srv *http.Server
	ln  net.Listener
}

func newIPv4Server(t *testing.T, handler http.Handler) *ipv4Server {
	t.Helper()
	ln, err := net.Listen("tcp4", "127.0.0.1:0")
	if err != nil {
		if errors.Is(err, syscall.EACCES) || errors.Is(err, syscall.EPERM) {
			t.Skipf("skipping test: cannot open local listener (%v)", err)
		}
		t.Fatalf("listen tcp4: %v", err)
	}
	srv := &http.Server{Handler: handler}
	s := &ipv4Server{
		URL: "http://" + ln.Addr().String(),
		srv: srv,
		ln:  ln,
	}
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			panic(fmt.Sprintf("test server serve: %v", err))
		}
	}()
	return s
}

func (s *ipv4Server) Close() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	_ = s.srv.Shutdown(ctx)
}

func articlesHandler(t *testing.T, titles []string) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("mode") != "artlist" || q.Get("format") != "json" {
			t.Errorf("unexpected query: %s", r.URL.RawQuery)
		}
		arts := make([]map[string]string, 0, len(titles))
		for _, title := range titles {
			arts = append(arts, map[string]string{"title": title})
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"articles": arts})
	})
}

func TestPollSuccess(t *testing.T) {
	titles := []string{
		"Waspada Penipuan QRIS marak",
		"Korban lapor ke polisi",
		"Modus scam baru",
	}
	srv := newIPv4Server(t, articlesHandler(t, titles))
	defer srv.Close()

	c := NewCollector(Options{BaseURL: srv.URL, Timeout: 5 * time.Second})
	results := c.Poll(context.Background(), []Pillar{fraudPillar()})
	if len(results) != 1 {
		t.Fatalf("got %d results, want 1", len(results))
	}
	res := results[0]
	if res.Err != "" {
		t.Fatalf("unexpected error: %s", res.Err)
	}
	if res.ArticleCount != 3 || len(res.Headlines) != 3 {
		t.Fatalf("count=%d headlines=%d, want 3/3", res.ArticleCount, len(res.Headlines))
	}
	if res.RiskLevel != RiskHigh {
		t.Fatalf("risk = %s, want %s", res.RiskLevel, RiskHigh)
	}
	if res.ResponseTier != TierEnhanced {
		t.Fatalf("tier = %s, want %s", res.ResponseTier, TierEnhanced)
	}
}

func TestPollSendsSourceCountryFilter(t *testing.T) {
	var gotQuery string
	srv := newIPv4Server(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("query")
		_ = json.NewEncoder(w).Encode(map[string]any{"articles": []any{}})
	}))
	defer srv.Close()

	c := NewCollector(Options{BaseURL: srv.URL, SourceCountry: "ID", MaxRecords: 5})
	_ = c.Poll(context.Background(), []Pillar{{Name: "P", Query: "QRIS"}})
	if gotQuery != "QRIS sourcecountry:ID" {
		t.Fatalf("query = %q", gotQuery)
	}
}

func TestPollNon200DegradesToNoSignal(t *testing.T) {
	srv := newIPv4Server(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := NewCollector(Options{BaseURL: srv.URL})
	results := c.Poll(context.Background(), []Pillar{fraudPillar()})
	res := results[0]
	if res.Err == "" {
		t.Fatalf("expected error to be recorded")
	}
	if res.ArticleCount != 0 {
		t.Fatalf("count = %d, want 0", res.ArticleCount)
	}
	if res.RiskLevel != RiskLow {
		t.Fatalf("risk = %s, want %s", res.RiskLevel, RiskLow)
	}
	if res.ResponseTier != TierNoAction {
		t.Fatalf("tier = %s, want %q", res.ResponseTier, TierNoAction)
	}
}

func TestPollUnreachableEndpoint(t *testing.T) {
	// Reserve a port and close it so the request fails fast.
	ln, err := net.Listen("tcp4", "127.0.0.1:0")
	if err != nil {
		if errors.Is(err, syscall.EACCES) || errors.Is(err, syscall.EPERM) {
			t.Skipf("skipping test: cannot open local listener (%v)", err)
		}
		t.Fatalf("listen tcp4: %v", err)
	}
	addr := ln.Addr().String()
	_ = ln.Close()

	c := NewCollector(Options{BaseURL: "http://" + addr, Timeout: 2 * time.Second})
	results := c.Poll(context.Background(), []Pillar{fraudPillar()})
	res := results[0]
	if res.Err == "" {
		t.Fatalf("expected transport error to be recorded")
	}
	if res.RiskLevel != RiskLow || res.ResponseTier != TierNoAction {
		t.Fatalf("degraded result wrong: risk=%s tier=%s", res.RiskLevel, res.ResponseTier)
	}
}

func TestPollOneResultPerPillar(t *testing.T) {
	srv := newIPv4Server(t, articlesHandler(t, []string{"headline"}))
	defer srv.Close()

	pillars := DefaultCatalog()
	c := NewCollector(Options{BaseURL: srv.URL})
	results := c.Poll(context.Background(), pillars)
	if len(results) != len(pillars) {
		t.Fatalf("got %d results, want %d", len(results), len(pillars))
	}
	for i, res := range results {
		if res.Pillar != pillars[i].Name {
			t.Fatalf("result %d is for %s, want %s", i, res.Pillar, pillars[i].Name)
		}
	}
}

func TestLoadCatalogYAML(t *testing.T) {
	doc := `pillars:
  - name: CUSTOM
    query: QRIS AND Merchant
    weight: 1.0
    action_team: Regional Office
    risk_keywords: [keluhan, gagal]
`
	path := filepath.Join(t.TempDir(), "pillars.yaml")
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	pillars, err := LoadCatalog(path)
	if err != nil {
		t.Fatalf("LoadCatalog: %v", err)
	}
	if len(pillars) != 1 || pillars[0].Name != "CUSTOM" {
		t.Fatalf("unexpected catalog: %+v", pillars)
	}
	if len(pillars[0].RiskKeywords) != 2 {
		t.Fatalf("keywords = %v", pillars[0].RiskKeywords)
	}
}

func TestLoadCatalogRejectsIncomplete(t *testing.T) {
	doc := "pillars:\n  - name: NO_QUERY\n"
	path := filepath.Join(t.TempDir(), "pillars.yaml")
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	if _, err := LoadCatalog(path); err == nil {
		t.Fatalf("expected error for pillar without query")
	}
}

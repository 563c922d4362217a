package sentiment

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Pillar is a named monitoring topic: a news-search query, a strategic
// weight, the team that acts on findings, and the keyword set used for
// headline risk grading. Pillars with an empty keyword set always grade LOW.
type Pillar struct {
	Name         string   `json:"name" yaml:"name"`
	Query        string   `json:"query" yaml:"query"`
	Weight       float64  `json:"weight" yaml:"weight"`
	ActionTeam   string   `json:"action_team" yaml:"action_team"`
	RiskKeywords []string `json:"risk_keywords,omitempty" yaml:"risk_keywords,omitempty"`
}

// DefaultCatalog returns the built-in monitoring pillars covering fraud,
// stability, adoption, sentiment, and the competitive landscape.
func DefaultCatalog() []Pillar {
	return []Pillar{
		{
			Name:         "RISK_FRAUD",
			Query:        `QRIS AND (Penipuan OR Scam OR Phishing OR "Saldo Hilang")`,
			Weight:       0.3,
			ActionTeam:   "Supervision & Consumer Protection",
			RiskKeywords: []string{"penipuan", "scam", "korban", "polisi", "lapor"},
		},
		{
			Name:         "SYSTEM_STABILITY",
			Query:        `QRIS AND (Gangguan OR Error OR Down OR Maintenance)`,
			Weight:       0.25,
			ActionTeam:   "Payment System Operations",
			RiskKeywords: []string{"down", "error", "gagal", "gangguan", "komplain"},
		},
		{
			Name:       "MERCHANT_ADOPTION",
			Query:      `(UMKM OR Pedagang OR Warung) AND (QRIS OR "Pembayaran Digital")`,
			Weight:     0.2,
			ActionTeam: "Financial Inclusion Division",
		},
		{
			Name:       "CONSUMER_SENTIMENT",
			Query:      `(QRIS OR "QR Payment") AND (Mudah OR Praktis OR Ribet OR Mahal)`,
			Weight:     0.15,
			ActionTeam: "Communications Department",
		},
		{
			Name:       "COMPETITIVE_LANDSCAPE",
			Query:      `(GoPay OR OVO OR DANA OR LinkAja) AND (QRIS OR "QR Code")`,
			Weight:     0.1,
			ActionTeam: "Market Intelligence",
		},
	}
}

// LoadCatalog reads a pillar catalog from a YAML file. The file replaces the
// default catalog entirely.
func LoadCatalog(path string) ([]Pillar, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read pillar catalog: %w", err)
	}
	var doc struct {
		Pillars []Pillar `yaml:"pillars"`
	}
	if err := yaml.Unmarshal(b, &doc); err != nil {
		return nil, fmt.Errorf("parse pillar catalog %s: %w", path, err)
	}
	if len(doc.Pillars) == 0 {
		return nil, fmt.Errorf("pillar catalog %s defines no pillars", path)
	}
	for i, p := range doc.Pillars {
		if p.Name == "" || p.Query == "" {
			return nil, fmt.Errorf("pillar catalog %s: entry %d needs name and query", path, i)
		}
	}
	return doc.Pillars, nil
}

// Find returns the named pillar from the catalog.
func Find(pillars []Pillar, name string) (Pillar, bool) {
	for _, p := range pillars {
		if p.Name == name {
			return p, true
		}
	}
	return Pillar{}, false
}

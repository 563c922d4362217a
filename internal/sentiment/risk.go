package sentiment

import "strings"

// Risk levels produced by RiskLevel.
const (
	RiskHigh   = "HIGH"
	RiskMedium = "MEDIUM"
	RiskLow    = "LOW"
)

// Response tiers produced by ResponseTier.
const (
	TierNoAction  = "no action"
	TierStandard  = "standard monitoring"
	TierEnhanced  = "enhanced monitoring"
	TierImmediate = "immediate attention"
)

// RiskLevel grades a pillar's headlines by counting how many of its risk
// keywords appear (case-insensitive substring match) across the concatenated
// titles: 3 or more is HIGH, 1-2 is MEDIUM, else LOW. An empty headline list
// or a pillar without keywords grades LOW, so collector failures degrade to
// "no signal" instead of crashing the report.
func RiskLevel(p Pillar, headlines []string) string {
	if len(headlines) == 0 || len(p.RiskKeywords) == 0 {
		return RiskLow
	}
	joined := strings.ToLower(strings.Join(headlines, " "))
	matches := 0
	for _, kw := range p.RiskKeywords {
		if strings.Contains(joined, strings.ToLower(kw)) {
			matches++
		}
	}
	switch {
	case matches >= 3:
		return RiskHigh
	case matches >= 1:
		return RiskMedium
	default:
		return RiskLow
	}
}

// ResponseTier maps an article count to a monitoring response tier.
func ResponseTier(articleCount int) string {
	switch {
	case articleCount <= 0:
		return TierNoAction
	case articleCount <= 2:
		return TierStandard
	case articleCount <= 5:
		return TierEnhanced
	default:
		return TierImmediate
	}
}

// Advice renders the tier as an instruction for the pillar's action team.
func Advice(p Pillar, articleCount int) string {
	switch ResponseTier(articleCount) {
	case TierNoAction:
		return "No action required - continue monitoring"
	case TierStandard:
		return "Standard monitoring by " + p.ActionTeam
	case TierEnhanced:
		return "Enhanced monitoring recommended - " + p.ActionTeam + " should review"
	default:
		return "Immediate attention required - " + p.ActionTeam + " should prepare response"
	}
}

package model

import "fmt"

type Recommendation string

const (
	RecommendStrongMatch Recommendation = "Strong Match"
	RecommendGoodFit     Recommendation = "Good Fit"
	RecommendConsider    Recommendation = "Consider"
	RecommendSkip        Recommendation = "Skip"
)

func ParseRecommendation(s string) (Recommendation, error) {
	switch Recommendation(s) {
	case RecommendStrongMatch, RecommendGoodFit, RecommendConsider, RecommendSkip:
		return Recommendation(s), nil
	}
	return "", fmt.Errorf("unknown recommendation: %q", s)
}

// RecommendationForScore derives the tier from the clamped score alone.
// Thresholds are inclusive on the lower bound.
func RecommendationForScore(score float64) Recommendation {
	switch {
	case score >= 80:
		return RecommendStrongMatch
	case score >= 65:
		return RecommendGoodFit
	case score >= 50:
		return RecommendConsider
	default:
		return RecommendSkip
	}
}

type RankedMatch struct {
	Job            JobPosting     `json:"job"`
	Insight        CompanyInsight `json:"company_insight"`
	Score          float64        `json:"match_score"`
	SkillOverlap   []string       `json:"skill_overlap"`
	SkillGaps      []string       `json:"skill_gaps"`
	Recommendation Recommendation `json:"recommendation"`
	Reasoning      []string       `json:"reasoning"`
}

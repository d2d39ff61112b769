package match

import (
	"fmt"
	"strings"

	"github.com/jobscout-ai/jobscout/internal/core/model"
)

// Fixed design weights for the composite score.
const (
	skillBonusMax   = 20.0
	gapPenaltyPer   = 2.0
	gapPenaltyMax   = 10.0
	positiveAdjust  = 5.0
	negativeAdjust  = -10.0
	reasoningSkills = 5
	reasoningGaps   = 3
)

// Engine combines the semantic, skill and sentiment signals into one
// composite score and tier.
type Engine struct {
	skills *SkillMatcher
}

func NewEngine(skills *SkillMatcher) *Engine {
	return &Engine{skills: skills}
}

// Score ranks one job against the candidate. The inputs are all
// precomputed; scoring never calls back into a provider.
func (e *Engine) Score(profile *model.CandidateProfile, job model.JobPosting, insight model.CompanyInsight, cvVec, jobVec []float32) model.RankedMatch {
	overlap, gaps := e.skills.Compare(profile.Skills, job.Description)

	base := BaseScore(Similarity(cvVec, jobVec))

	bonus := 0.0
	if n := len(profile.Skills); n > 0 {
		bonus = float64(len(overlap)) / float64(n) * skillBonusMax
	}

	penalty := clamp(float64(len(gaps))*gapPenaltyPer, 0, gapPenaltyMax)

	adjust := 0.0
	switch insight.Sentiment {
	case model.SentimentPositive:
		adjust = positiveAdjust
	case model.SentimentNegative:
		adjust = negativeAdjust
	}

	final := clamp(base+bonus-penalty+adjust, 0, 100)

	return model.RankedMatch{
		Job:            job,
		Insight:        insight,
		Score:          final,
		SkillOverlap:   overlap,
		SkillGaps:      gaps,
		Recommendation: model.RecommendationForScore(final),
		Reasoning:      reasoning(final, overlap, gaps, insight),
	}
}

// reasoning derives the short explanation list from the already-computed
// numbers only.
func reasoning(score float64, overlap, gaps []string, insight model.CompanyInsight) []string {
	var out []string

	switch {
	case score >= 80:
		out = append(out, fmt.Sprintf("Excellent match with %.0f%% compatibility", score))
	case score >= 65:
		out = append(out, fmt.Sprintf("Good fit with %.0f%% compatibility", score))
	default:
		out = append(out, fmt.Sprintf("Moderate fit with %.0f%% compatibility", score))
	}

	if len(overlap) > 0 {
		out = append(out, "Strong skill alignment: "+strings.Join(head(overlap, reasoningSkills), ", "))
	}
	if len(gaps) > 0 {
		out = append(out, "Missing skills: "+strings.Join(head(gaps, reasoningGaps), ", "))
	}

	switch insight.Sentiment {
	case model.SentimentPositive:
		out = append(out, "Company has positive reviews and culture")
	case model.SentimentNegative:
		out = append(out, "Company has some negative reviews")
	}

	return out
}

func head(items []string, n int) []string {
	if len(items) <= n {
		return items
	}
	return items[:n]
}

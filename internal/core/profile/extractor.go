package profile

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/jobscout-ai/jobscout/internal/core/common"
	"github.com/jobscout-ai/jobscout/internal/core/model"
	"github.com/jobscout-ai/jobscout/internal/llm"
)

// ErrExtraction marks the one failure class that is fatal to a pipeline
// run: without a candidate profile there is nothing to match.
var ErrExtraction = errors.New("candidate profile extraction failed")

const extractionPrompt = `You are an expert CV/Resume analyzer.
Analyze the provided CV and extract structured information.

Return a JSON object with these fields:
{
    "skills": ["skill1", "skill2", ...],
    "experience_level": "Junior" | "Mid" | "Senior" | "Lead",
    "years_of_experience": <number>,
    "preferred_locations": ["location1", "location2", ...],
    "key_achievements": ["achievement1", "achievement2", ...]
}

Guidelines:
- skills: Extract all technical skills, tools, technologies mentioned
- experience_level: Determine based on years and role seniority
- years_of_experience: Total professional experience in years
- preferred_locations: Any locations mentioned or "Remote" if indicated
- key_achievements: Top 3-5 notable achievements or projects

Return ONLY valid JSON, no additional text.

Analyze this CV:

%s`

// Extractor turns raw CV text into a structured candidate profile via
// the text-generation provider.
type Extractor struct {
	llm     llm.LLMClient
	timeout time.Duration
	log     *zap.Logger
}

func NewExtractor(llmClient llm.LLMClient, timeout time.Duration, log *zap.Logger) *Extractor {
	return &Extractor{
		llm:     llmClient,
		timeout: timeout,
		log:     log,
	}
}

type rawProfile struct {
	Skills             []string `json:"skills"`
	ExperienceLevel    string   `json:"experience_level"`
	YearsOfExperience  int      `json:"years_of_experience"`
	PreferredLocations []string `json:"preferred_locations"`
	KeyAchievements    []string `json:"key_achievements"`
}

// Extract analyzes the CV text. All failures wrap ErrExtraction.
func (e *Extractor) Extract(ctx context.Context, cvText string) (*model.CandidateProfile, error) {
	cvText = common.CleanText(cvText)
	if cvText == "" {
		return nil, fmt.Errorf("%w: empty CV text", ErrExtraction)
	}

	cctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	response, err := e.llm.Generate(cctx, fmt.Sprintf(extractionPrompt, cvText))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExtraction, err)
	}

	raw, err := common.ParseJSON[rawProfile](response)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExtraction, err)
	}

	level, err := model.ParseExperienceLevel(raw.ExperienceLevel)
	if err != nil {
		e.log.Warn("unrecognized experience level, defaulting to Mid",
			zap.String("level", raw.ExperienceLevel))
		level = model.LevelMid
	}

	profile := &model.CandidateProfile{
		Skills:             uniqueFold(raw.Skills),
		ExperienceLevel:    level,
		YearsOfExperience:  raw.YearsOfExperience,
		PreferredLocations: raw.PreferredLocations,
		KeyAchievements:    raw.KeyAchievements,
	}

	if err := profile.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExtraction, err)
	}

	e.log.Info("candidate profile extracted",
		zap.Int("skills", len(profile.Skills)),
		zap.String("level", string(profile.ExperienceLevel)))

	return profile, nil
}

// uniqueFold removes case-insensitive duplicates, keeping first-seen
// casing and order.
func uniqueFold(in []string) []string {
	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		key := strings.ToLower(s)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, s)
	}
	return out
}

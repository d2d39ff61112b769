package model

import "fmt"

type ExperienceLevel string

const (
	LevelJunior ExperienceLevel = "Junior"
	LevelMid    ExperienceLevel = "Mid"
	LevelSenior ExperienceLevel = "Senior"
	LevelLead   ExperienceLevel = "Lead"
)

func ParseExperienceLevel(s string) (ExperienceLevel, error) {
	switch ExperienceLevel(s) {
	case LevelJunior, LevelMid, LevelSenior, LevelLead:
		return ExperienceLevel(s), nil
	}
	return "", fmt.Errorf("unknown experience level: %q", s)
}

// CandidateProfile is the structured output of profile extraction.
// It is built once per pipeline run and never mutated afterwards.
type CandidateProfile struct {
	Skills             []string        `json:"skills"`
	ExperienceLevel    ExperienceLevel `json:"experience_level"`
	YearsOfExperience  int             `json:"years_of_experience"`
	PreferredLocations []string        `json:"preferred_locations"`
	KeyAchievements    []string        `json:"key_achievements"`
}

func (p *CandidateProfile) Validate() error {
	if _, err := ParseExperienceLevel(string(p.ExperienceLevel)); err != nil {
		return err
	}
	if p.YearsOfExperience < 0 || p.YearsOfExperience > 50 {
		return fmt.Errorf("years of experience out of range: %d", p.YearsOfExperience)
	}
	return nil
}

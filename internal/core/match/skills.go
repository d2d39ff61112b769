package match

import (
	"regexp"
	"strings"
	"sync"
)

// SkillMatcher compares candidate skills against job descriptions. The
// reference vocabulary used for gap detection is injected so tests can
// run with alternates.
type SkillMatcher struct {
	vocabulary []string

	// Compiled whole-word patterns, keyed by lowercased skill. One
	// matcher scores every job in a run, so each skill compiles once.
	mu       sync.Mutex
	patterns map[string]*regexp.Regexp
}

func NewSkillMatcher(vocabulary []string) *SkillMatcher {
	return &SkillMatcher{
		vocabulary: vocabulary,
		patterns:   make(map[string]*regexp.Regexp),
	}
}

func (m *SkillMatcher) pattern(key string) *regexp.Regexp {
	m.mu.Lock()
	defer m.mu.Unlock()

	if re, ok := m.patterns[key]; ok {
		return re
	}
	// QuoteMeta guarantees the pattern compiles.
	re := regexp.MustCompile(`\b` + regexp.QuoteMeta(key) + `\b`)
	m.patterns[key] = re
	return re
}

// Compare returns the candidate skills that appear in the description
// (overlap) and the vocabulary skills the description mentions but the
// candidate lacks (gaps). Both keep insertion order and drop duplicates.
func (m *SkillMatcher) Compare(candidateSkills []string, jobDescription string) (overlap, gaps []string) {
	descLower := strings.ToLower(jobDescription)

	overlap = []string{}
	seen := make(map[string]bool)
	for _, skill := range candidateSkills {
		key := strings.ToLower(skill)
		if seen[key] {
			continue
		}
		// Whole-word match so "Java" does not fire on "JavaScript".
		if m.pattern(key).MatchString(descLower) {
			overlap = append(overlap, skill)
			seen[key] = true
		}
	}

	have := make(map[string]bool, len(candidateSkills))
	for _, skill := range candidateSkills {
		have[strings.ToLower(skill)] = true
	}

	gaps = []string{}
	seenGap := make(map[string]bool)
	for _, skill := range m.vocabulary {
		key := strings.ToLower(skill)
		if seenGap[key] || have[key] {
			continue
		}
		if strings.Contains(descLower, key) {
			gaps = append(gaps, skill)
			seenGap[key] = true
		}
	}

	return overlap, gaps
}

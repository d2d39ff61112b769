package model

import (
	"fmt"
	"strings"
)

type Source string

const (
	SourceJSearch   Source = "jsearch"
	SourceBrave     Source = "brave_search"
	SourceAdzuna    Source = "adzuna"
	SourceLinkedIn  Source = "linkedin"
	SourceIndeed    Source = "indeed"
	SourceFirecrawl Source = "firecrawl"
	SourceDirect    Source = "direct"
)

func ParseSource(s string) (Source, error) {
	switch Source(s) {
	case SourceJSearch, SourceBrave, SourceAdzuna, SourceLinkedIn,
		SourceIndeed, SourceFirecrawl, SourceDirect:
		return Source(s), nil
	}
	return "", fmt.Errorf("unknown job source: %q", s)
}

type JobPosting struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	Location    string `json:"location"`
	Description string `json:"description"`
	URL         string `json:"url"`
	PostedDate  string `json:"posted_date,omitempty"`
	Source      Source `json:"source"`
}

// Identity is the deduplication key: the canonical URL when present,
// otherwise the normalized (title, company) pair.
func (j *JobPosting) Identity() string {
	if u := strings.TrimSpace(j.URL); u != "" {
		return strings.ToLower(u)
	}
	title := strings.Join(strings.Fields(strings.ToLower(j.Title)), " ")
	company := strings.Join(strings.Fields(strings.ToLower(j.Company)), " ")
	return title + "|" + company
}

package provider

import (
	"context"

	"github.com/jobscout-ai/jobscout/internal/core/model"
)

// JobQuery is one concrete provider call. The aggregator issues several
// of these per run when it walks its fallback chain.
type JobQuery struct {
	Title      string
	Location   string
	RemoteOnly bool
	Count      int
}

type JobSource interface {
	Name() string
	Source() model.Source
	SearchJobs(ctx context.Context, q JobQuery) ([]model.JobPosting, error)
}

// RawPost is an unprocessed community post about a company.
type RawPost struct {
	Title string
	Text  string
}

type SentimentSource interface {
	SearchPosts(ctx context.Context, company string) ([]RawPost, error)
}

type WebResult struct {
	Title       string
	URL         string
	Description string
}

type WebSearcher interface {
	SearchWeb(ctx context.Context, query string, count int) ([]WebResult, error)
}

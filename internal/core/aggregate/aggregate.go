package aggregate

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jobscout-ai/jobscout/internal/core/model"
	"github.com/jobscout-ai/jobscout/internal/provider"
)

// Strategy names which fallback step of the primary provider's chain
// produced results.
type Strategy string

const (
	StrategyLocation Strategy = "location"
	StrategyRemote   Strategy = "remote"
	StrategyGlobal   Strategy = "global"
	StrategyNone     Strategy = "none"
)

// SourceReport records what each provider contributed to a search.
type SourceReport struct {
	Provider string   `json:"provider"`
	Strategy Strategy `json:"strategy"`
	Jobs     int      `json:"jobs"`
	Failed   bool     `json:"failed"`
}

// Aggregator fans a query out to every configured job source, then
// deduplicates and balances the merged results. The first source is the
// primary and gets the full fallback chain; the rest are queried once.
type Aggregator struct {
	sources []provider.JobSource
	timeout time.Duration
	log     *zap.Logger
}

func New(sources []provider.JobSource, timeout time.Duration, log *zap.Logger) *Aggregator {
	return &Aggregator{
		sources: sources,
		timeout: timeout,
		log:     log,
	}
}

// Search runs the fan-out. A source that errors or times out contributes
// zero results; Search itself never fails, and an empty result means
// "no matches", not an error.
func (a *Aggregator) Search(ctx context.Context, query, location string, target int) ([]model.JobPosting, []SourceReport) {
	if target <= 0 || len(a.sources) == 0 {
		return []model.JobPosting{}, nil
	}

	perSource := make([][]model.JobPosting, len(a.sources))
	reports := make([]SourceReport, len(a.sources))

	var g errgroup.Group
	for i, src := range a.sources {
		i, src := i, src

		g.Go(func() error {
			sctx, cancel := context.WithTimeout(ctx, a.timeout)
			defer cancel()

			var jobs []model.JobPosting
			var strategy Strategy
			var err error

			if i == 0 {
				jobs, strategy, err = a.searchWithFallback(sctx, src, query, location, target)
			} else {
				strategy = StrategyLocation
				if location == "" {
					strategy = StrategyGlobal
				}
				jobs, err = src.SearchJobs(sctx, provider.JobQuery{
					Title:    query,
					Location: location,
					Count:    target,
				})
			}

			if err != nil {
				// Best effort: a failed source never sinks the run.
				a.log.Warn("job source failed",
					zap.String("source", src.Name()),
					zap.Error(err))
				reports[i] = SourceReport{Provider: src.Name(), Strategy: StrategyNone, Failed: true}
				return nil
			}

			perSource[i] = jobs
			reports[i] = SourceReport{Provider: src.Name(), Strategy: strategy, Jobs: len(jobs)}
			return nil
		})
	}
	_ = g.Wait()

	balanced := a.balance(a.dedupe(perSource), target)
	return balanced, reports
}

// searchWithFallback walks the primary provider's ordered chain: the
// explicit location first, then a remote-only query, then a global one.
// Each step is a full provider call so callers can see which strategy
// yielded results.
func (a *Aggregator) searchWithFallback(ctx context.Context, src provider.JobSource, query, location string, target int) ([]model.JobPosting, Strategy, error) {
	if location != "" {
		jobs, err := src.SearchJobs(ctx, provider.JobQuery{
			Title:    query,
			Location: location,
			Count:    target,
		})
		if err != nil {
			return nil, StrategyNone, err
		}
		if len(jobs) > 0 {
			return jobs, StrategyLocation, nil
		}

		a.log.Info("no results with location, retrying remote-only",
			zap.String("source", src.Name()),
			zap.String("location", location))

		jobs, err = src.SearchJobs(ctx, provider.JobQuery{
			Title:      query,
			RemoteOnly: true,
			Count:      target,
		})
		if err != nil {
			return nil, StrategyNone, err
		}
		if len(jobs) > 0 {
			return jobs, StrategyRemote, nil
		}

		a.log.Info("no remote results, retrying globally",
			zap.String("source", src.Name()))
	}

	jobs, err := src.SearchJobs(ctx, provider.JobQuery{
		Title: query,
		Count: target,
	})
	if err != nil {
		return nil, StrategyNone, err
	}
	return jobs, StrategyGlobal, nil
}

// dedupe removes postings with an already-seen identity, processing
// sources in configuration order and keeping arrival order within each.
// The first-seen copy wins.
func (a *Aggregator) dedupe(perSource [][]model.JobPosting) [][]model.JobPosting {
	seen := make(map[string]bool)
	out := make([][]model.JobPosting, len(perSource))

	for i, jobs := range perSource {
		for _, job := range jobs {
			id := job.Identity()
			if seen[id] {
				continue
			}
			seen[id] = true
			out[i] = append(out[i], job)
		}
	}
	return out
}

// balance gives each source an equal share of the target; when one
// under-delivers the shortfall is filled from sources with surplus.
func (a *Aggregator) balance(perSource [][]model.JobPosting, target int) []model.JobPosting {
	quota := target / len(perSource)
	if quota == 0 {
		quota = 1
	}

	out := make([]model.JobPosting, 0, target)
	taken := make([]int, len(perSource))

	for i, jobs := range perSource {
		n := min(quota, len(jobs))
		if len(out)+n > target {
			n = target - len(out)
		}
		out = append(out, jobs[:n]...)
		taken[i] = n
	}

	for i, jobs := range perSource {
		for len(out) < target && taken[i] < len(jobs) {
			out = append(out, jobs[taken[i]])
			taken[i]++
		}
	}

	return out
}

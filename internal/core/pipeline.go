package core

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jobscout-ai/jobscout/internal/core/aggregate"
	"github.com/jobscout-ai/jobscout/internal/core/common"
	"github.com/jobscout-ai/jobscout/internal/core/insight"
	"github.com/jobscout-ai/jobscout/internal/core/match"
	"github.com/jobscout-ai/jobscout/internal/core/model"
	"github.com/jobscout-ai/jobscout/internal/core/profile"
	"github.com/jobscout-ai/jobscout/internal/llm"
)

// embedInputLimit caps text sent to the embedding provider.
const embedInputLimit = 8000

type RunRequest struct {
	// RunID tags every log line and the response; generated when empty.
	RunID    string
	CVText   string
	JobTitle string
	Location string
	Count    int
}

// Pipeline sequences the three stages of a matching run: profile
// extraction alongside job search, per-company insight gathering, and
// scoring. It owns every entity for the duration of one run.
type Pipeline struct {
	Profiles *profile.Extractor
	Sources  *aggregate.Aggregator
	Insights *insight.Aggregator
	Embedder llm.EmbedderClient
	Engine   *match.Engine

	log *zap.Logger
}

func NewPipeline(profiles *profile.Extractor, sources *aggregate.Aggregator, insights *insight.Aggregator, embedder llm.EmbedderClient, engine *match.Engine, log *zap.Logger) *Pipeline {
	return &Pipeline{
		Profiles: profiles,
		Sources:  sources,
		Insights: insights,
		Embedder: embedder,
		Engine:   engine,
		log:      log,
	}
}

// Run executes a full matching run. The only error it returns is a
// fatal profile-extraction failure; every other problem degrades into a
// shorter (possibly empty) ranked list.
func (p *Pipeline) Run(ctx context.Context, req RunRequest) ([]model.RankedMatch, error) {
	if req.RunID == "" {
		req.RunID = uuid.New().String()
	}
	log := p.log.With(zap.String("run_id", req.RunID))

	log.Info("pipeline start",
		zap.String("job_title", req.JobTitle),
		zap.String("location", req.Location),
		zap.Int("count", req.Count))

	// Stage 1: profile extraction and job search run concurrently; the
	// stage completes when both finish.
	var candidate *model.CandidateProfile
	var profileErr error
	var jobs []model.JobPosting

	var g1 errgroup.Group
	g1.Go(func() error {
		candidate, profileErr = p.Profiles.Extract(ctx, req.CVText)
		return nil
	})
	g1.Go(func() error {
		var reports []aggregate.SourceReport
		jobs, reports = p.Sources.Search(ctx, req.JobTitle, req.Location, req.Count)
		for _, r := range reports {
			log.Info("source report",
				zap.String("provider", r.Provider),
				zap.String("strategy", string(r.Strategy)),
				zap.Int("jobs", r.Jobs),
				zap.Bool("failed", r.Failed))
		}
		return nil
	})
	_ = g1.Wait()

	if profileErr != nil {
		return nil, profileErr
	}

	log.Info("stage 1 complete",
		zap.Int("skills", len(candidate.Skills)),
		zap.Int("jobs", len(jobs)))

	if len(jobs) == 0 {
		return []model.RankedMatch{}, nil
	}

	// Stage 2: one insight lookup per distinct company, all concurrent.
	// Each lookup is bounded by its own timeout and never errors.
	insights := p.gatherInsights(ctx, jobs, req.JobTitle)

	log.Info("stage 2 complete", zap.Int("companies", len(insights)))

	// Stage 3: embed the candidate once, then score each job. A per-job
	// failure drops that job only.
	matches := p.scoreJobs(ctx, log, candidate, jobs, insights, req)

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})

	log.Info("pipeline complete", zap.Int("matches", len(matches)))
	return matches, nil
}

func (p *Pipeline) gatherInsights(ctx context.Context, jobs []model.JobPosting, role string) map[string]model.CompanyInsight {
	var companies []string
	seen := make(map[string]bool)
	for _, j := range jobs {
		if !seen[j.Company] {
			seen[j.Company] = true
			companies = append(companies, j.Company)
		}
	}

	results := make([]model.CompanyInsight, len(companies))

	var g errgroup.Group
	for i, company := range companies {
		i, company := i, company
		g.Go(func() error {
			results[i] = p.Insights.GetInsights(ctx, company, role)
			return nil
		})
	}
	_ = g.Wait()

	byCompany := make(map[string]model.CompanyInsight, len(results))
	for _, ci := range results {
		byCompany[ci.CompanyName] = ci
	}
	return byCompany
}

func (p *Pipeline) scoreJobs(ctx context.Context, log *zap.Logger, candidate *model.CandidateProfile, jobs []model.JobPosting, insights map[string]model.CompanyInsight, req RunRequest) []model.RankedMatch {
	cvVec, err := p.Embedder.Embed(ctx, buildCandidateText(candidate, req.JobTitle, req.Location))
	if err != nil {
		// Without the candidate embedding no job can be scored; the run
		// degrades to an empty list rather than an error.
		log.Error("candidate embedding failed, no jobs can be scored", zap.Error(err))
		return []model.RankedMatch{}
	}

	jobVecs := p.embedJobs(ctx, log, jobs)

	matches := make([]model.RankedMatch, 0, len(jobs))
	for i, job := range jobs {
		if jobVecs[i] == nil {
			log.Warn("dropping job after embedding failure",
				zap.String("title", job.Title),
				zap.String("company", job.Company))
			continue
		}

		ci, ok := insights[job.Company]
		if !ok {
			ci = model.PlaceholderInsight(job.Company, model.ProvenanceUnavailable)
		}

		matches = append(matches, p.Engine.Score(candidate, job, ci, cvVec, jobVecs[i]))
	}
	return matches
}

// embedJobs embeds all job texts in one batch call when possible,
// falling back to per-job calls so a single bad input only drops that
// job. A nil slot marks a failed embedding.
func (p *Pipeline) embedJobs(ctx context.Context, log *zap.Logger, jobs []model.JobPosting) [][]float32 {
	texts := make([]string, len(jobs))
	for i, j := range jobs {
		texts[i] = common.TruncateRunes(common.CleanText(j.Title+" "+j.Description), embedInputLimit)
	}

	vecs, err := p.Embedder.EmbedBatch(ctx, texts)
	if err == nil && len(vecs) == len(jobs) {
		return vecs
	}
	if err != nil {
		log.Warn("batch embedding failed, retrying per job", zap.Error(err))
	}

	out := make([][]float32, len(jobs))
	for i, text := range texts {
		vec, err := p.Embedder.Embed(ctx, text)
		if err != nil {
			log.Warn("job embedding failed", zap.Error(err))
			continue
		}
		out[i] = vec
	}
	return out
}

// buildCandidateText assembles the rich profile description that gets
// embedded once and compared against every job. Skills are repeated
// with context to boost their weight in the vector.
func buildCandidateText(c *model.CandidateProfile, role, location string) string {
	var b strings.Builder

	if role == "" {
		role = "Developer"
	}
	fmt.Fprintf(&b, "Professional %s with %d years of experience. %s level professional.\n",
		role, c.YearsOfExperience, c.ExperienceLevel)

	b.WriteString("Core technical skills: ")
	for _, skill := range c.Skills {
		fmt.Fprintf(&b, "Expert in %s. Professional %s experience. ", skill, skill)
		if c.YearsOfExperience >= 3 {
			fmt.Fprintf(&b, "Advanced %s skills. ", skill)
		}
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "Technical expertise: %s\n", strings.Join(c.Skills, ", "))

	if len(c.KeyAchievements) > 0 {
		fmt.Fprintf(&b, "Key achievements: %s\n", strings.Join(c.KeyAchievements, " "))
	}

	fmt.Fprintf(&b, "Looking for: %s\n", role)
	if location != "" {
		fmt.Fprintf(&b, "Preferred location: %s\n", location)
	}
	if len(c.PreferredLocations) > 0 {
		fmt.Fprintf(&b, "Location preferences: %s\n", strings.Join(c.PreferredLocations, ", "))
	}

	return common.TruncateRunes(b.String(), embedInputLimit)
}

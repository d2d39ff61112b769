package insight

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/jobscout-ai/jobscout/internal/config"
	"github.com/jobscout-ai/jobscout/internal/core/common"
	"github.com/jobscout-ai/jobscout/internal/core/model"
	"github.com/jobscout-ai/jobscout/internal/llm"
	"github.com/jobscout-ai/jobscout/internal/provider"
)

const (
	highlightLimit = 5
	cultureLimit   = 3
	highlightLen   = 200
	cultureLen     = 150
	minPostLen     = 20

	// Thresholds on the normalized sentiment score.
	positiveThreshold = 0.2
	negativeThreshold = -0.2
)

// Aggregator gathers community insight for one company at a time. Every
// call completes: failures and timeouts substitute a neutral placeholder
// instead of surfacing an error.
type Aggregator struct {
	sentiment provider.SentimentSource
	web       provider.WebSearcher
	llm       llm.LLMClient
	keywords  config.KeywordsConfig
	timeout   time.Duration
	log       *zap.Logger
}

// New builds an Aggregator. web and llmClient are optional; when either
// is nil the narrative enrichment step is skipped.
func New(sentiment provider.SentimentSource, web provider.WebSearcher, llmClient llm.LLMClient, keywords config.KeywordsConfig, timeout time.Duration, log *zap.Logger) *Aggregator {
	return &Aggregator{
		sentiment: sentiment,
		web:       web,
		llm:       llmClient,
		keywords:  keywords,
		timeout:   timeout,
		log:       log,
	}
}

type fetchResult struct {
	posts []provider.RawPost
	err   error
}

// GetInsights researches a company within the configured hard timeout.
// A timeout yields a {neutral, timeout} placeholder; a provider error
// yields {neutral, unavailable}. When role is set the insight is
// enriched with an AI narrative, and any enrichment failure only omits
// that field.
func (a *Aggregator) GetInsights(ctx context.Context, company, role string) model.CompanyInsight {
	cctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	ch := make(chan fetchResult, 1)
	go func() {
		posts, err := a.sentiment.SearchPosts(cctx, company)
		ch <- fetchResult{posts: posts, err: err}
	}()

	var res fetchResult
	select {
	case res = <-ch:
	case <-cctx.Done():
		// The in-flight call is abandoned, not silently forgotten.
		a.log.Warn("insight lookup timed out, substituting placeholder",
			zap.String("company", company),
			zap.Duration("timeout", a.timeout))
		return model.PlaceholderInsight(company, model.ProvenanceTimeout)
	}

	if res.err != nil {
		a.log.Warn("sentiment source unavailable",
			zap.String("company", company),
			zap.Error(res.err))
		return model.PlaceholderInsight(company, model.ProvenanceUnavailable)
	}

	ci := a.analyze(company, res.posts)

	if role != "" {
		a.enrich(cctx, &ci, role)
	}

	return ci
}

// analyze runs the deterministic keyword heuristic over the raw posts.
func (a *Aggregator) analyze(company string, posts []provider.RawPost) model.CompanyInsight {
	companyLower := strings.ToLower(company)

	var validated []string
	for _, p := range posts {
		text := p.Title
		if body := common.CleanText(p.Text); body != "" {
			text = p.Title + " - " + common.TruncateRunes(body, 100)
		}
		if len(text) < minPostLen {
			continue
		}
		// A post only counts when the company name literally appears;
		// this guards against provider false positives on ambiguous names.
		if !strings.Contains(strings.ToLower(text), companyLower) {
			continue
		}
		validated = append(validated, text)
	}

	if len(validated) == 0 {
		return model.CompanyInsight{
			CompanyName: company,
			Sentiment:   model.SentimentNeutral,
			Highlights:  []string{fmt.Sprintf("No community discussions found for %s", company)},
			Provenance:  model.ProvenanceLive,
		}
	}

	var positive, negative int
	var highlights, culture []string

	for _, text := range validated {
		textLower := strings.ToLower(text)

		for _, w := range a.keywords.Positive {
			if strings.Contains(textLower, w) {
				positive++
			}
		}
		for _, w := range a.keywords.Negative {
			if strings.Contains(textLower, w) {
				negative++
			}
		}

		if len(highlights) < highlightLimit {
			highlights = append(highlights, common.TruncateRunes(text, highlightLen))
		}

		if len(culture) < cultureLimit {
			for _, w := range a.keywords.Culture {
				if strings.Contains(textLower, w) {
					culture = append(culture, common.TruncateRunes(text, cultureLen))
					break
				}
			}
		}
	}

	score := float64(positive-negative) / float64(max(1, len(validated)))

	sentiment := model.SentimentNeutral
	switch {
	case score > positiveThreshold:
		sentiment = model.SentimentPositive
	case score < negativeThreshold:
		sentiment = model.SentimentNegative
	}

	return model.CompanyInsight{
		CompanyName:  company,
		Sentiment:    sentiment,
		Highlights:   highlights,
		RecentNews:   []string{fmt.Sprintf("Active community discussions about %s", company)},
		CultureNotes: culture,
		Provenance:   model.ProvenanceLive,
	}
}

// enrich adds an AI narrative via web research. Any failure here leaves
// the heuristic data untouched and only omits the summary.
func (a *Aggregator) enrich(ctx context.Context, ci *model.CompanyInsight, role string) {
	if a.web == nil || a.llm == nil {
		return
	}

	query := fmt.Sprintf("%q (about OR products OR services)", ci.CompanyName)
	results, err := a.web.SearchWeb(ctx, query, 5)
	if err != nil {
		a.log.Debug("web research failed, skipping narrative",
			zap.String("company", ci.CompanyName),
			zap.Error(err))
		return
	}

	var research strings.Builder
	for _, r := range results {
		fmt.Fprintf(&research, "- %s: %s\n", r.Title, r.Description)
	}

	prompt := fmt.Sprintf(`You are preparing a candidate for an interview.
Company: %s
Role: %s

Web research:
%s
Community sentiment: %s

Write a short paragraph (3-4 sentences) summarizing what this company does
and what a candidate for this role should know going in. Plain text only.`,
		ci.CompanyName, role, research.String(), ci.Sentiment)

	summary, err := a.llm.Generate(ctx, prompt)
	if err != nil {
		a.log.Debug("narrative generation failed, skipping",
			zap.String("company", ci.CompanyName),
			zap.Error(err))
		return
	}

	ci.AISummary = strings.TrimSpace(summary)
}

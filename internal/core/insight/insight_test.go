package insight

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/jobscout-ai/jobscout/internal/config"
	"github.com/jobscout-ai/jobscout/internal/core/model"
	"github.com/jobscout-ai/jobscout/internal/provider"
)

type mockSentiment struct {
	posts []provider.RawPost
	err   error
	delay time.Duration
}

func (m *mockSentiment) SearchPosts(ctx context.Context, company string) ([]provider.RawPost, error) {
	if m.delay > 0 {
		select {
		case <-time.After(m.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return m.posts, m.err
}

type mockWeb struct {
	results []provider.WebResult
	err     error
}

func (m *mockWeb) SearchWeb(ctx context.Context, query string, count int) ([]provider.WebResult, error) {
	return m.results, m.err
}

type mockLLM struct {
	response string
	err      error
	prompts  []string
}

func (m *mockLLM) Generate(ctx context.Context, prompt string) (string, error) {
	m.prompts = append(m.prompts, prompt)
	return m.response, m.err
}

func testKeywords() config.KeywordsConfig {
	cfg := config.Default()
	return cfg.Keywords
}

func TestGetInsightsTimeout(t *testing.T) {
	slow := &mockSentiment{delay: time.Second}
	a := New(slow, nil, nil, testKeywords(), 20*time.Millisecond, zap.NewNop())

	start := time.Now()
	ci := a.GetInsights(context.Background(), "Acme", "")

	assert.Less(t, time.Since(start), 500*time.Millisecond)
	assert.Equal(t, model.SentimentNeutral, ci.Sentiment)
	assert.Equal(t, model.ProvenanceTimeout, ci.Provenance)
	assert.Equal(t, "Acme", ci.CompanyName)
}

func TestGetInsightsProviderError(t *testing.T) {
	a := New(&mockSentiment{err: errors.New("401")}, nil, nil, testKeywords(), time.Second, zap.NewNop())

	ci := a.GetInsights(context.Background(), "Acme", "")

	assert.Equal(t, model.SentimentNeutral, ci.Sentiment)
	assert.Equal(t, model.ProvenanceUnavailable, ci.Provenance)
}

func TestGetInsightsPositiveSentiment(t *testing.T) {
	posts := []provider.RawPost{
		{Title: "Working at Acme is great", Text: "I love the team, excellent culture"},
		{Title: "Acme has amazing work-life balance", Text: "best benefits I have had"},
	}
	a := New(&mockSentiment{posts: posts}, nil, nil, testKeywords(), time.Second, zap.NewNop())

	ci := a.GetInsights(context.Background(), "Acme", "")

	assert.Equal(t, model.SentimentPositive, ci.Sentiment)
	assert.Equal(t, model.ProvenanceLive, ci.Provenance)
	assert.NotEmpty(t, ci.Highlights)
	assert.NotEmpty(t, ci.CultureNotes)
}

func TestGetInsightsNegativeSentiment(t *testing.T) {
	posts := []provider.RawPost{
		{Title: "Acme was a terrible place to work", Text: "toxic management, avoid"},
		{Title: "Why I quit Acme after a bad year", Text: "worst job I ever had at Acme"},
	}
	a := New(&mockSentiment{posts: posts}, nil, nil, testKeywords(), time.Second, zap.NewNop())

	ci := a.GetInsights(context.Background(), "Acme", "")

	assert.Equal(t, model.SentimentNegative, ci.Sentiment)
}

func TestGetInsightsValidationFilter(t *testing.T) {
	posts := []provider.RawPost{
		// Mentions a different company entirely.
		{Title: "Globex is a great employer", Text: "I love everything about Globex"},
		// Too short to count.
		{Title: "Acme ok"},
	}
	a := New(&mockSentiment{posts: posts}, nil, nil, testKeywords(), time.Second, zap.NewNop())

	ci := a.GetInsights(context.Background(), "Acme", "")

	assert.Equal(t, model.SentimentNeutral, ci.Sentiment)
	assert.Equal(t, model.ProvenanceLive, ci.Provenance)
	assert.Len(t, ci.Highlights, 1)
	assert.Contains(t, ci.Highlights[0], "No community discussions found")
}

func TestGetInsightsDeterministic(t *testing.T) {
	posts := []provider.RawPost{
		{Title: "Acme reviews thread", Text: "good place overall, happy team"},
	}
	a := New(&mockSentiment{posts: posts}, nil, nil, testKeywords(), time.Second, zap.NewNop())

	first := a.GetInsights(context.Background(), "Acme", "")
	second := a.GetInsights(context.Background(), "Acme", "")
	assert.Equal(t, first, second)
}

func TestEnrichAddsSummary(t *testing.T) {
	posts := []provider.RawPost{
		{Title: "Acme engineering culture is great", Text: "love the autonomy at Acme"},
	}
	web := &mockWeb{results: []provider.WebResult{{Title: "Acme", Description: "Rocket supplies"}}}
	gen := &mockLLM{response: "  Acme builds rocket supplies.  "}

	a := New(&mockSentiment{posts: posts}, web, gen, testKeywords(), time.Second, zap.NewNop())

	ci := a.GetInsights(context.Background(), "Acme", "Backend Engineer")

	assert.Equal(t, "Acme builds rocket supplies.", ci.AISummary)
	if assert.Len(t, gen.prompts, 1) {
		assert.True(t, strings.Contains(gen.prompts[0], "Backend Engineer"))
	}
}

func TestEnrichFailureKeepsHeuristicData(t *testing.T) {
	posts := []provider.RawPost{
		{Title: "Acme engineering culture is great", Text: "love the autonomy at Acme"},
	}
	web := &mockWeb{err: errors.New("quota exceeded")}

	a := New(&mockSentiment{posts: posts}, web, &mockLLM{}, testKeywords(), time.Second, zap.NewNop())

	ci := a.GetInsights(context.Background(), "Acme", "Backend Engineer")

	assert.Empty(t, ci.AISummary)
	assert.Equal(t, model.SentimentPositive, ci.Sentiment)
	assert.NotEmpty(t, ci.Highlights)
}

func TestEnrichSkippedWithoutRole(t *testing.T) {
	posts := []provider.RawPost{
		{Title: "Acme engineering culture is great", Text: "love the autonomy at Acme"},
	}
	web := &mockWeb{results: []provider.WebResult{{Title: "Acme"}}}
	gen := &mockLLM{response: "should not be called"}

	a := New(&mockSentiment{posts: posts}, web, gen, testKeywords(), time.Second, zap.NewNop())

	ci := a.GetInsights(context.Background(), "Acme", "")

	assert.Empty(t, ci.AISummary)
	assert.Empty(t, gen.prompts)
}

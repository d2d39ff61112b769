package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jobscout-ai/jobscout/internal/config"
	"github.com/jobscout-ai/jobscout/internal/core"
	"github.com/jobscout-ai/jobscout/internal/core/aggregate"
	"github.com/jobscout-ai/jobscout/internal/core/insight"
	"github.com/jobscout-ai/jobscout/internal/core/match"
	"github.com/jobscout-ai/jobscout/internal/core/model"
	"github.com/jobscout-ai/jobscout/internal/core/profile"
	"github.com/jobscout-ai/jobscout/internal/provider"
)

type mockLLM struct {
	response string
	err      error
}

func (m *mockLLM) Generate(ctx context.Context, prompt string) (string, error) {
	return m.response, m.err
}

type mockEmbedder struct{}

func (mockEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	return []float32{1, 0}, nil
}

func (m mockEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i := range texts {
		out[i] = []float32{1, 0}
	}
	return out, nil
}

type mockJobSource struct {
	jobs []model.JobPosting
}

func (m *mockJobSource) Name() string         { return "mock" }
func (m *mockJobSource) Source() model.Source { return model.SourceDirect }

func (m *mockJobSource) SearchJobs(ctx context.Context, q provider.JobQuery) ([]model.JobPosting, error) {
	return m.jobs, nil
}

const profileResponse = `{"skills": ["Go"], "experience_level": "Senior", "years_of_experience": 7}`

func newTestServer(t *testing.T, llmClient *mockLLM) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	log := zap.NewNop()
	cfg := config.Default()

	src := &mockJobSource{jobs: []model.JobPosting{{
		Title:       "Backend Engineer",
		Company:     "Acme",
		Description: "Go services",
		URL:         "https://example.com/jobs/1",
		Source:      model.SourceDirect,
	}}}

	pipeline := core.NewPipeline(
		profile.NewExtractor(llmClient, time.Second, log),
		aggregate.New([]provider.JobSource{src}, time.Second, log),
		insight.New(unavailableSentiment{}, nil, nil, cfg.Keywords, time.Second, log),
		mockEmbedder{},
		match.NewEngine(match.NewSkillMatcher(cfg.Keywords.Skills)),
		log,
	)

	return &Server{Pipeline: pipeline, Config: cfg, log: log}
}

func TestHealth(t *testing.T) {
	s := newTestServer(t, &mockLLM{response: profileResponse})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)

	s.SetupRouter().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status": "ok"}`, w.Body.String())
}

func TestMatch(t *testing.T) {
	s := newTestServer(t, &mockLLM{response: profileResponse})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/match",
		strings.NewReader(`{"cv_text": "senior engineer cv", "job_title": "Backend Engineer", "count": 1}`))
	req.Header.Set("Content-Type", "application/json")

	s.SetupRouter().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp MatchResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.RunID)
	require.Len(t, resp.Matches, 1)
	assert.Equal(t, "Backend Engineer", resp.Matches[0].Job.Title)
	assert.Equal(t, model.ProvenanceUnavailable, resp.Matches[0].Insight.Provenance)
}

func TestMatchMissingFields(t *testing.T) {
	s := newTestServer(t, &mockLLM{response: profileResponse})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/match", strings.NewReader(`{"cv_text": "only cv"}`))
	req.Header.Set("Content-Type", "application/json")

	s.SetupRouter().ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMatchExtractionFailure(t *testing.T) {
	s := newTestServer(t, &mockLLM{err: errors.New("provider down")})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/match",
		strings.NewReader(`{"cv_text": "cv", "job_title": "Dev"}`))
	req.Header.Set("Content-Type", "application/json")

	s.SetupRouter().ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadGateway, w.Code)
}

package server

import (
	"context"
	"errors"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jobscout-ai/jobscout/internal/config"
	"github.com/jobscout-ai/jobscout/internal/core"
	"github.com/jobscout-ai/jobscout/internal/core/aggregate"
	"github.com/jobscout-ai/jobscout/internal/core/insight"
	"github.com/jobscout-ai/jobscout/internal/core/match"
	"github.com/jobscout-ai/jobscout/internal/core/model"
	"github.com/jobscout-ai/jobscout/internal/core/profile"
	"github.com/jobscout-ai/jobscout/internal/llm"
	"github.com/jobscout-ai/jobscout/internal/provider"
	"github.com/jobscout-ai/jobscout/internal/provider/adzuna"
	"github.com/jobscout-ai/jobscout/internal/provider/brave"
	"github.com/jobscout-ai/jobscout/internal/provider/jsearch"
	"github.com/jobscout-ai/jobscout/internal/provider/reddit"
)

type Server struct {
	Pipeline *core.Pipeline
	Config   *config.Config
	log      *zap.Logger
}

func NewServer(log *zap.Logger) *Server {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config/config.toml"
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Warn("could not load config file, using defaults", zap.String("path", cfgPath), zap.Error(err))
		cfg = config.Default()
	}

	applyEnvOverrides(cfg)

	llmClient, embedder, err := llm.NewClient(context.Background(), cfg.LLM)
	if err != nil {
		log.Fatal("failed to initialize LLM client", zap.Error(err))
	}
	if embedder == nil {
		log.Fatal("configured LLM provider has no embedding support; matching requires embeddings",
			zap.String("provider", cfg.LLM.Provider))
	}

	httpClient := provider.NewHTTPClient(
		cfg.Pipeline.RequestsPerSecond,
		cfg.Pipeline.RequestBurst,
		cfg.Pipeline.ProviderTimeout(),
	)

	var sources []provider.JobSource
	if cfg.Providers.JSearchAPIKey != "" {
		sources = append(sources, jsearch.New(httpClient, cfg.Providers.JSearchAPIKey, cfg.Providers.JSearchHost))
	}
	if cfg.Providers.AdzunaAppID != "" {
		sources = append(sources, adzuna.New(httpClient, cfg.Providers.AdzunaAppID, cfg.Providers.AdzunaAppKey, cfg.Providers.AdzunaCountry))
	}
	if len(sources) == 0 {
		log.Fatal("no job source configured; set at least a JSearch or Adzuna key")
	}

	var sentiment provider.SentimentSource
	if cfg.Providers.RedditClientID != "" {
		sentiment = reddit.New(httpClient, cfg.Providers.RedditClientID, cfg.Providers.RedditSecret, cfg.Providers.RedditAgent, cfg.Keywords.Subreddits)
	} else {
		log.Warn("no sentiment source configured; insights will be placeholders")
		sentiment = unavailableSentiment{}
	}

	var web provider.WebSearcher
	if cfg.Providers.BraveAPIKey != "" {
		web = brave.New(httpClient, cfg.Providers.BraveAPIKey)
	}

	pipeline := core.NewPipeline(
		profile.NewExtractor(llmClient, cfg.Pipeline.ProfileTimeout(), log),
		aggregate.New(sources, cfg.Pipeline.ProviderTimeout(), log),
		insight.New(sentiment, web, llmClient, cfg.Keywords, cfg.Pipeline.InsightTimeout(), log),
		embedder,
		match.NewEngine(match.NewSkillMatcher(cfg.Keywords.Skills)),
		log,
	)

	return &Server{
		Pipeline: pipeline,
		Config:   cfg,
		log:      log,
	}
}

func applyEnvOverrides(cfg *config.Config) {
	if v := os.Getenv("LLM_PROVIDER"); v != "" {
		cfg.LLM.Provider = v
	}
	if v := os.Getenv("LLM_MODEL"); v != "" {
		cfg.LLM.Model = v
	}
	if v := os.Getenv("LLM_EMBEDDING_MODEL"); v != "" {
		cfg.LLM.EmbeddingModel = v
	}
	if v := os.Getenv("LLM_API_KEY"); v != "" {
		cfg.LLM.APIKey = v
	}
	if v := os.Getenv("LLM_BASE_URL"); v != "" {
		cfg.LLM.BaseURL = v
	}
	if v := os.Getenv("JSEARCH_API_KEY"); v != "" {
		cfg.Providers.JSearchAPIKey = v
	}
	if v := os.Getenv("ADZUNA_APP_ID"); v != "" {
		cfg.Providers.AdzunaAppID = v
	}
	if v := os.Getenv("ADZUNA_APP_KEY"); v != "" {
		cfg.Providers.AdzunaAppKey = v
	}
	if v := os.Getenv("BRAVE_SEARCH_API_KEY"); v != "" {
		cfg.Providers.BraveAPIKey = v
	}
	if v := os.Getenv("REDDIT_CLIENT_ID"); v != "" {
		cfg.Providers.RedditClientID = v
	}
	if v := os.Getenv("REDDIT_CLIENT_SECRET"); v != "" {
		cfg.Providers.RedditSecret = v
	}
	if v := os.Getenv("REDDIT_USER_AGENT"); v != "" {
		cfg.Providers.RedditAgent = v
	}
}

// unavailableSentiment stands in when no sentiment source is
// configured; the insight aggregator turns its error into a placeholder.
type unavailableSentiment struct{}

func (unavailableSentiment) SearchPosts(ctx context.Context, company string) ([]provider.RawPost, error) {
	return nil, errors.New("sentiment source not configured")
}

func (s *Server) SetupRouter() *gin.Engine {
	r := gin.Default()

	r.GET("/healthz", s.Health)
	r.POST("/match", s.Match)

	return r
}

func (s *Server) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

type MatchRequest struct {
	CVText   string `json:"cv_text" binding:"required"`
	JobTitle string `json:"job_title" binding:"required"`
	Location string `json:"location"`
	Count    int    `json:"count"`
}

type MatchResponse struct {
	RunID   string              `json:"run_id"`
	Matches []model.RankedMatch `json:"matches"`
}

func (s *Server) Match(c *gin.Context) {
	var req MatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	count := req.Count
	if count <= 0 {
		count = s.Config.Pipeline.TargetJobs
	}

	runID := uuid.New().String()
	matches, err := s.Pipeline.Run(c.Request.Context(), core.RunRequest{
		RunID:    runID,
		CVText:   req.CVText,
		JobTitle: req.JobTitle,
		Location: req.Location,
		Count:    count,
	})
	if err != nil {
		if errors.Is(err, profile.ErrExtraction) {
			// The profile extraction provider is an upstream dependency.
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error(), "run_id": runID})
			return
		}
		s.log.Error("pipeline run failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to run matching pipeline", "run_id": runID})
		return
	}

	c.JSON(http.StatusOK, MatchResponse{RunID: runID, Matches: matches})
}

package config

import (
	"fmt"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"
)

type LLMConfig struct {
	Provider       string `toml:"provider"`
	Model          string `toml:"model"`
	EmbeddingModel string `toml:"embedding_model"`
	APIKey         string `toml:"api_key"`
	BaseURL        string `toml:"base_url"`
}

type ProvidersConfig struct {
	JSearchAPIKey  string `toml:"jsearch_api_key"`
	JSearchHost    string `toml:"jsearch_host"`
	AdzunaAppID    string `toml:"adzuna_app_id"`
	AdzunaAppKey   string `toml:"adzuna_app_key"`
	AdzunaCountry  string `toml:"adzuna_country"`
	BraveAPIKey    string `toml:"brave_api_key"`
	RedditClientID string `toml:"reddit_client_id"`
	RedditSecret   string `toml:"reddit_client_secret"`
	RedditAgent    string `toml:"reddit_user_agent"`
}

type PipelineConfig struct {
	TargetJobs          int     `toml:"target_jobs"`
	InsightTimeoutSecs  int     `toml:"insight_timeout_secs"`
	ProfileTimeoutSecs  int     `toml:"profile_timeout_secs"`
	ProviderTimeoutSecs int     `toml:"provider_timeout_secs"`
	RequestsPerSecond   float64 `toml:"requests_per_second"`
	RequestBurst        int     `toml:"request_burst"`
}

func (p PipelineConfig) InsightTimeout() time.Duration {
	return time.Duration(p.InsightTimeoutSecs) * time.Second
}

func (p PipelineConfig) ProfileTimeout() time.Duration {
	return time.Duration(p.ProfileTimeoutSecs) * time.Second
}

func (p PipelineConfig) ProviderTimeout() time.Duration {
	return time.Duration(p.ProviderTimeoutSecs) * time.Second
}

// KeywordsConfig carries the heuristic vocabularies. They are injected
// into the components that use them so tests can swap in alternates.
type KeywordsConfig struct {
	Positive   []string `toml:"positive"`
	Negative   []string `toml:"negative"`
	Culture    []string `toml:"culture"`
	Skills     []string `toml:"skills"`
	Subreddits []string `toml:"subreddits"`
}

type Config struct {
	LLM       LLMConfig       `toml:"llm"`
	Providers ProvidersConfig `toml:"providers"`
	Pipeline  PipelineConfig  `toml:"pipeline"`
	Keywords  KeywordsConfig  `toml:"keywords"`
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file '%s': %w", path, err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse TOML: %w", err)
	}

	cfg.ApplyDefaults()
	return &cfg, nil
}

// Default returns a config with every omitted value filled in.
func Default() *Config {
	cfg := &Config{}
	cfg.ApplyDefaults()
	return cfg
}

func (c *Config) ApplyDefaults() {
	if c.Providers.JSearchHost == "" {
		c.Providers.JSearchHost = "jsearch.p.rapidapi.com"
	}
	if c.Providers.AdzunaCountry == "" {
		c.Providers.AdzunaCountry = "us"
	}
	if c.Pipeline.TargetJobs <= 0 {
		c.Pipeline.TargetJobs = 20
	}
	if c.Pipeline.InsightTimeoutSecs <= 0 {
		c.Pipeline.InsightTimeoutSecs = 30
	}
	if c.Pipeline.ProfileTimeoutSecs <= 0 {
		c.Pipeline.ProfileTimeoutSecs = 120
	}
	if c.Pipeline.ProviderTimeoutSecs <= 0 {
		c.Pipeline.ProviderTimeoutSecs = 30
	}
	if c.Pipeline.RequestsPerSecond <= 0 {
		c.Pipeline.RequestsPerSecond = 2
	}
	if c.Pipeline.RequestBurst <= 0 {
		c.Pipeline.RequestBurst = 4
	}
	if len(c.Keywords.Positive) == 0 {
		c.Keywords.Positive = []string{"great", "love", "amazing", "best", "excellent", "good", "happy", "enjoy"}
	}
	if len(c.Keywords.Negative) == 0 {
		c.Keywords.Negative = []string{"bad", "terrible", "worst", "avoid", "horrible", "toxic", "hate", "quit"}
	}
	if len(c.Keywords.Culture) == 0 {
		c.Keywords.Culture = []string{"culture", "work-life", "remote", "benefits"}
	}
	if len(c.Keywords.Skills) == 0 {
		c.Keywords.Skills = []string{
			"Python", "Java", "JavaScript", "TypeScript", "Go", "Rust", "C++",
			"Docker", "Kubernetes", "AWS", "Azure", "GCP",
			"React", "Vue", "Angular", "Node.js",
			"PostgreSQL", "MongoDB", "Redis",
			"Kafka", "RabbitMQ", "GraphQL", "REST",
			"CI/CD", "Jenkins", "GitLab", "GitHub Actions",
			"Terraform", "Ansible", "Linux",
		}
	}
	if len(c.Keywords.Subreddits) == 0 {
		c.Keywords.Subreddits = []string{"cscareerquestions", "experienceddevs", "programming", "jobs"}
	}
}

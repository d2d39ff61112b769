package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	content := `
[llm]
provider = "openai"
model = "gpt-4o-mini"
embedding_model = "text-embedding-3-small"

[providers]
jsearch_api_key = "key123"

[pipeline]
target_jobs = 10
insight_timeout_secs = 5

[keywords]
positive = ["stellar"]
`
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "openai", cfg.LLM.Provider)
	assert.Equal(t, "key123", cfg.Providers.JSearchAPIKey)
	assert.Equal(t, 10, cfg.Pipeline.TargetJobs)
	assert.Equal(t, []string{"stellar"}, cfg.Keywords.Positive)

	// Omitted values are filled from defaults.
	assert.Equal(t, 120, cfg.Pipeline.ProfileTimeoutSecs)
	assert.Equal(t, "jsearch.p.rapidapi.com", cfg.Providers.JSearchHost)
	assert.NotEmpty(t, cfg.Keywords.Negative)
	assert.NotEmpty(t, cfg.Keywords.Skills)
	assert.NotEmpty(t, cfg.Keywords.Subreddits)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}

func TestLoadInvalidTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	require.NoError(t, os.WriteFile(path, []byte("[llm\nprovider="), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, 20, cfg.Pipeline.TargetJobs)
	assert.Equal(t, 30, cfg.Pipeline.InsightTimeoutSecs)
	assert.Equal(t, 2.0, cfg.Pipeline.RequestsPerSecond)
	assert.Equal(t, 4, cfg.Pipeline.RequestBurst)
	assert.Len(t, cfg.Keywords.Skills, 30)
	assert.Contains(t, cfg.Keywords.Subreddits, "cscareerquestions")
}

func TestTimeoutHelpers(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "30s", cfg.Pipeline.InsightTimeout().String())
	assert.Equal(t, "2m0s", cfg.Pipeline.ProfileTimeout().String())
	assert.Equal(t, "30s", cfg.Pipeline.ProviderTimeout().String())
}

package adzuna

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jobscout-ai/jobscout/internal/core/model"
	"github.com/jobscout-ai/jobscout/internal/provider"
)

func TestSearchJobs(t *testing.T) {
	var got map[string]string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		got = map[string]string{
			"app_id":           q.Get("app_id"),
			"app_key":          q.Get("app_key"),
			"what":             q.Get("what"),
			"where":            q.Get("where"),
			"results_per_page": q.Get("results_per_page"),
		}
		w.Write([]byte(`{
			"results": [
				{
					"title": "Platform Engineer",
					"description": "Kubernetes platform team",
					"redirect_url": "https://adzuna.example/j/1",
					"created": "2025-11-02T10:00:00Z",
					"company": {"display_name": "Globex"},
					"location": {"display_name": "London, UK"}
				},
				{"title": "Mystery Role", "company": {}, "location": {}}
			]
		}`))
	}))
	t.Cleanup(srv.Close)

	c := New(provider.NewHTTPClient(100, 100, time.Second), "id1", "key1", "gb")
	c.SetBaseURL(srv.URL)

	jobs, err := c.SearchJobs(context.Background(), provider.JobQuery{
		Title:    "Platform Engineer",
		Location: "London",
		Count:    5,
	})
	require.NoError(t, err)

	assert.Equal(t, "id1", got["app_id"])
	assert.Equal(t, "key1", got["app_key"])
	assert.Equal(t, "Platform Engineer", got["what"])
	assert.Equal(t, "London", got["where"])
	assert.Equal(t, "5", got["results_per_page"])

	require.Len(t, jobs, 2)
	assert.Equal(t, "Globex", jobs[0].Company)
	assert.Equal(t, "London, UK", jobs[0].Location)
	assert.Equal(t, model.SourceAdzuna, jobs[0].Source)

	assert.Equal(t, "Unknown", jobs[1].Company)
	assert.Equal(t, "Not specified", jobs[1].Location)
}

func TestSearchJobsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad app id", http.StatusUnauthorized)
	}))
	t.Cleanup(srv.Close)

	c := New(provider.NewHTTPClient(100, 100, time.Second), "id", "key", "")
	c.SetBaseURL(srv.URL)

	_, err := c.SearchJobs(context.Background(), provider.JobQuery{Title: "dev"})
	assert.Error(t, err)
}

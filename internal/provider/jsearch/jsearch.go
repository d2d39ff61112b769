package jsearch

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/jobscout-ai/jobscout/internal/core/model"
	"github.com/jobscout-ai/jobscout/internal/provider"
)

// Client talks to the JSearch API on RapidAPI.
type Client struct {
	http    *provider.HTTPClient
	apiKey  string
	host    string
	baseURL string
}

func New(httpClient *provider.HTTPClient, apiKey, host string) *Client {
	if host == "" {
		host = "jsearch.p.rapidapi.com"
	}
	return &Client{
		http:    httpClient,
		apiKey:  apiKey,
		host:    host,
		baseURL: fmt.Sprintf("https://%s/search", host),
	}
}

// SetBaseURL overrides the endpoint, used by tests.
func (c *Client) SetBaseURL(u string) { c.baseURL = u }

func (c *Client) Name() string         { return "jsearch" }
func (c *Client) Source() model.Source { return model.SourceJSearch }

type searchResponse struct {
	Data []jobEntry `json:"data"`
}

type jobEntry struct {
	Title       string `json:"job_title"`
	Employer    string `json:"employer_name"`
	City        string `json:"job_city"`
	State       string `json:"job_state"`
	Country     string `json:"job_country"`
	IsRemote    bool   `json:"job_is_remote"`
	Description string `json:"job_description"`
	ApplyLink   string `json:"job_apply_link"`
	PostedAt    string `json:"job_posted_at_datetime_utc"`
}

func (c *Client) SearchJobs(ctx context.Context, q provider.JobQuery) ([]model.JobPosting, error) {
	query := q.Title
	if q.RemoteOnly {
		query = q.Title + " remote"
	} else if q.Location != "" {
		query = fmt.Sprintf("%s in %s", q.Title, q.Location)
	}

	params := url.Values{}
	params.Set("query", query)
	params.Set("page", "1")
	params.Set("num_pages", "1")
	params.Set("date_posted", "all")
	if q.RemoteOnly {
		params.Set("remote_jobs_only", "true")
	}

	header := http.Header{}
	header.Set("X-RapidAPI-Key", c.apiKey)
	header.Set("X-RapidAPI-Host", c.host)

	var resp searchResponse
	if err := c.http.GetJSON(ctx, c.baseURL+"?"+params.Encode(), header, &resp); err != nil {
		return nil, fmt.Errorf("jsearch: %w", err)
	}

	return c.convert(resp.Data, q.Count), nil
}

func (c *Client) convert(entries []jobEntry, limit int) []model.JobPosting {
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}

	jobs := make([]model.JobPosting, 0, len(entries))
	for _, e := range entries {
		jobs = append(jobs, model.JobPosting{
			Title:       orDefault(e.Title, "Unknown"),
			Company:     orDefault(e.Employer, "Unknown"),
			Location:    buildLocation(e),
			Description: orDefault(e.Description, "No description available"),
			URL:         e.ApplyLink,
			PostedDate:  e.PostedAt,
			Source:      model.SourceJSearch,
		})
	}
	return jobs
}

func buildLocation(e jobEntry) string {
	switch {
	case e.City != "" && e.Country != "":
		return fmt.Sprintf("%s, %s", e.City, e.Country)
	case e.City != "" && e.State != "":
		return fmt.Sprintf("%s, %s", e.City, e.State)
	case e.Country != "":
		return e.Country
	case e.IsRemote:
		return "Remote"
	default:
		return "Not specified"
	}
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

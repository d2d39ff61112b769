package adzuna

import (
	"context"
	"fmt"
	"net/url"

	"github.com/jobscout-ai/jobscout/internal/core/model"
	"github.com/jobscout-ai/jobscout/internal/provider"
)

// Client talks to the Adzuna job search API.
type Client struct {
	http    *provider.HTTPClient
	appID   string
	appKey  string
	country string
	baseURL string
}

func New(httpClient *provider.HTTPClient, appID, appKey, country string) *Client {
	if country == "" {
		country = "us"
	}
	return &Client{
		http:    httpClient,
		appID:   appID,
		appKey:  appKey,
		country: country,
		baseURL: fmt.Sprintf("https://api.adzuna.com/v1/api/jobs/%s/search/1", country),
	}
}

func (c *Client) SetBaseURL(u string) { c.baseURL = u }

func (c *Client) Name() string         { return "adzuna" }
func (c *Client) Source() model.Source { return model.SourceAdzuna }

type searchResponse struct {
	Results []result `json:"results"`
}

type result struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"redirect_url"`
	Created     string `json:"created"`
	Company     struct {
		DisplayName string `json:"display_name"`
	} `json:"company"`
	Location struct {
		DisplayName string `json:"display_name"`
	} `json:"location"`
}

func (c *Client) SearchJobs(ctx context.Context, q provider.JobQuery) ([]model.JobPosting, error) {
	params := url.Values{}
	params.Set("app_id", c.appID)
	params.Set("app_key", c.appKey)
	params.Set("what", q.Title)
	if q.RemoteOnly {
		params.Set("what_or", "remote")
	} else if q.Location != "" {
		params.Set("where", q.Location)
	}
	if q.Count > 0 {
		params.Set("results_per_page", fmt.Sprintf("%d", q.Count))
	}
	params.Set("content-type", "application/json")

	var resp searchResponse
	if err := c.http.GetJSON(ctx, c.baseURL+"?"+params.Encode(), nil, &resp); err != nil {
		return nil, fmt.Errorf("adzuna: %w", err)
	}

	jobs := make([]model.JobPosting, 0, len(resp.Results))
	for _, r := range resp.Results {
		company := r.Company.DisplayName
		if company == "" {
			company = "Unknown"
		}
		location := r.Location.DisplayName
		if location == "" {
			location = "Not specified"
		}
		jobs = append(jobs, model.JobPosting{
			Title:       r.Title,
			Company:     company,
			Location:    location,
			Description: r.Description,
			URL:         r.URL,
			PostedDate:  r.Created,
			Source:      model.SourceAdzuna,
		})
	}
	return jobs, nil
}

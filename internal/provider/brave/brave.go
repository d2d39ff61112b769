package brave

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/jobscout-ai/jobscout/internal/provider"
)

const defaultBaseURL = "https://api.search.brave.com/res/v1/web/search"

// Client talks to the Brave Search web API. It is used for company
// research enrichment only.
type Client struct {
	http    *provider.HTTPClient
	apiKey  string
	baseURL string
}

func New(httpClient *provider.HTTPClient, apiKey string) *Client {
	return &Client{
		http:    httpClient,
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
	}
}

func (c *Client) SetBaseURL(u string) { c.baseURL = u }

type searchResponse struct {
	Web struct {
		Results []struct {
			Title       string `json:"title"`
			URL         string `json:"url"`
			Description string `json:"description"`
		} `json:"results"`
	} `json:"web"`
}

func (c *Client) SearchWeb(ctx context.Context, query string, count int) ([]provider.WebResult, error) {
	if count <= 0 || count > 10 {
		count = 10
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("count", fmt.Sprintf("%d", count))
	params.Set("search_lang", "en")
	params.Set("text_decorations", "false")
	params.Set("spellcheck", "true")

	// Accept-Encoding is left to the transport so gzip responses are
	// decompressed transparently.
	header := http.Header{}
	header.Set("X-Subscription-Token", c.apiKey)

	var resp searchResponse
	if err := c.http.GetJSON(ctx, c.baseURL+"?"+params.Encode(), header, &resp); err != nil {
		return nil, fmt.Errorf("brave search: %w", err)
	}

	results := make([]provider.WebResult, 0, len(resp.Web.Results))
	for _, r := range resp.Web.Results {
		results = append(results, provider.WebResult{
			Title:       r.Title,
			URL:         r.URL,
			Description: r.Description,
		})
	}
	return results, nil
}

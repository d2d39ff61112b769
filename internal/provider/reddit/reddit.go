package reddit

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/jobscout-ai/jobscout/internal/provider"
)

const (
	tokenURL   = "https://www.reddit.com/api/v1/access_token"
	apiBaseURL = "https://oauth.reddit.com"

	postsPerSubreddit = 5
)

// Client searches a fixed subreddit list for posts about a company
// using Reddit's app-only OAuth flow.
type Client struct {
	http       *provider.HTTPClient
	clientID   string
	secret     string
	userAgent  string
	subreddits []string

	tokenBase string
	apiBase   string

	mu          sync.Mutex
	accessToken string
	tokenExpiry time.Time
}

func New(httpClient *provider.HTTPClient, clientID, secret, userAgent string, subreddits []string) *Client {
	return &Client{
		http:       httpClient,
		clientID:   clientID,
		secret:     secret,
		userAgent:  userAgent,
		subreddits: subreddits,
		tokenBase:  tokenURL,
		apiBase:    apiBaseURL,
	}
}

// SetBaseURLs overrides the OAuth and API endpoints, used by tests.
func (c *Client) SetBaseURLs(token, api string) {
	c.tokenBase = token
	c.apiBase = api
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
}

func (c *Client) token(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.accessToken != "" && time.Now().Before(c.tokenExpiry) {
		return c.accessToken, nil
	}

	header := http.Header{}
	basic := base64.StdEncoding.EncodeToString([]byte(c.clientID + ":" + c.secret))
	header.Set("Authorization", "Basic "+basic)
	header.Set("User-Agent", c.userAgent)

	form := url.Values{}
	form.Set("grant_type", "client_credentials")

	var resp tokenResponse
	if err := c.http.PostForm(ctx, c.tokenBase, header, form, &resp); err != nil {
		return "", fmt.Errorf("reddit token: %w", err)
	}
	if resp.AccessToken == "" {
		return "", fmt.Errorf("reddit token: empty access token")
	}

	c.accessToken = resp.AccessToken
	// Renew a minute early to avoid racing the expiry.
	c.tokenExpiry = time.Now().Add(time.Duration(resp.ExpiresIn)*time.Second - time.Minute)
	return c.accessToken, nil
}

type listing struct {
	Data struct {
		Children []struct {
			Data struct {
				Title    string `json:"title"`
				Selftext string `json:"selftext"`
			} `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

func (c *Client) SearchPosts(ctx context.Context, company string) ([]provider.RawPost, error) {
	token, err := c.token(ctx)
	if err != nil {
		return nil, err
	}

	header := http.Header{}
	header.Set("Authorization", "Bearer "+token)
	header.Set("User-Agent", c.userAgent)

	var posts []provider.RawPost
	var lastErr error

	for _, sub := range c.subreddits {
		params := url.Values{}
		params.Set("q", company)
		params.Set("limit", fmt.Sprintf("%d", postsPerSubreddit))
		params.Set("t", "year")
		params.Set("restrict_sr", "1")

		endpoint := fmt.Sprintf("%s/r/%s/search?%s", c.apiBase, sub, params.Encode())

		var l listing
		if err := c.http.GetJSON(ctx, endpoint, header, &l); err != nil {
			// One subreddit failing should not sink the rest.
			lastErr = err
			continue
		}

		for _, child := range l.Data.Children {
			posts = append(posts, provider.RawPost{
				Title: child.Data.Title,
				Text:  child.Data.Selftext,
			})
		}
	}

	if posts == nil && lastErr != nil {
		return nil, fmt.Errorf("reddit search: %w", lastErr)
	}
	return posts, nil
}

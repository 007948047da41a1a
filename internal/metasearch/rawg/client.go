// Package rawg implements the RAWG Video Games Database search provider.
package rawg

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"cellar/internal/metasearch"
)

// Source is the provider identifier recorded on results.
const Source = "rawg"

const defaultPageSize = 10

// game models one entry of the RAWG paginated search response.
type game struct {
	ID              int64  `json:"id"`
	Slug            string `json:"slug"`
	Name            string `json:"name"`
	BackgroundImage string `json:"background_image"`
}

type searchResponse struct {
	Count   int    `json:"count"`
	Results []game `json:"results"`
}

// Client queries the RAWG games API.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

var _ metasearch.Provider = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// New creates a RAWG client.
func New(apiKey, baseURL string, timeout time.Duration, opts ...Option) (*Client, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("rawg api key required")
	}
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, errors.New("rawg base url required")
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	client := &Client{
		apiKey:     apiKey,
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// Name identifies the provider.
func (c *Client) Name() string {
	return Source
}

// Search queries RAWG for the supplied keyword.
func (c *Client) Search(ctx context.Context, keyword string) ([]metasearch.Result, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return nil, errors.New("keyword must not be empty")
	}
	endpoint, err := url.Parse(c.baseURL + "/games")
	if err != nil {
		return nil, fmt.Errorf("parse rawg url: %w", err)
	}
	params := url.Values{}
	params.Set("key", c.apiKey)
	params.Set("search", keyword)
	params.Set("page_size", strconv.Itoa(defaultPageSize))
	endpoint.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("rawg search returned %d", resp.StatusCode)
	}

	var payload searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode rawg response: %w", err)
	}

	results := make([]metasearch.Result, 0, len(payload.Results))
	for _, entry := range payload.Results {
		results = append(results, metasearch.Result{
			ID:     strconv.FormatInt(entry.ID, 10),
			Title:  entry.Name,
			Cover:  entry.BackgroundImage,
			Source: Source,
			URL:    "https://rawg.io/games/" + entry.Slug,
		})
	}
	return results, nil
}

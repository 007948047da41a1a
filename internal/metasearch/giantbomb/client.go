// Package giantbomb implements the Giant Bomb search provider.
package giantbomb

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
const Source = "giantbomb"

const defaultLimit = 10

// Giant Bomb rejects requests carrying the default Go user agent.
const userAgent = "cellar/1.0"

type image struct {
	SmallURL  string `json:"small_url"`
	MediumURL string `json:"medium_url"`
}

// game models one entry of the Giant Bomb search response.
type game struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	Image         image  `json:"image"`
	SiteDetailURL string `json:"site_detail_url"`
}

type searchResponse struct {
	StatusCode int    `json:"status_code"`
	Error      string `json:"error"`
	Results    []game `json:"results"`
}

// Client queries the Giant Bomb API.
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

// New creates a Giant Bomb client.
func New(apiKey, baseURL string, timeout time.Duration, opts ...Option) (*Client, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("giantbomb api key required")
	}
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, errors.New("giantbomb base url required")
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

// Search queries Giant Bomb for the supplied keyword.
func (c *Client) Search(ctx context.Context, keyword string) ([]metasearch.Result, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return nil, errors.New("keyword must not be empty")
	}
	endpoint, err := url.Parse(c.baseURL + "/search/")
	if err != nil {
		return nil, fmt.Errorf("parse giantbomb url: %w", err)
	}
	params := url.Values{}
	params.Set("api_key", c.apiKey)
	params.Set("format", "json")
	params.Set("query", keyword)
	params.Set("resources", "game")
	params.Set("limit", strconv.Itoa(defaultLimit))
	endpoint.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("giantbomb search returned %d", resp.StatusCode)
	}

	var payload searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode giantbomb response: %w", err)
	}
	if payload.StatusCode != 1 {
		return nil, fmt.Errorf("giantbomb search rejected: %s", payload.Error)
	}

	results := make([]metasearch.Result, 0, len(payload.Results))
	for _, entry := range payload.Results {
		cover := entry.Image.MediumURL
		if cover == "" {
			cover = entry.Image.SmallURL
		}
		results = append(results, metasearch.Result{
			ID:     strconv.FormatInt(entry.ID, 10),
			Title:  entry.Name,
			Cover:  cover,
			Source: Source,
			URL:    entry.SiteDetailURL,
		})
	}
	return results, nil
}

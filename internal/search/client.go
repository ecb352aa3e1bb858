// Package search queries a remote publication search API. Client satisfies
// match.Lookup, so the resolver can run against the remote index instead of
// the local store.
package search

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/BIBSYSDEV/nva-publication-api-sub014/internal/publication"
	"golang.org/x/time/rate"
)

const (
	// DefaultTimeout is the default HTTP request timeout.
	DefaultTimeout = 30 * time.Second

	// DefaultRateLimit is requests per second when none is configured.
	DefaultRateLimit = 5.0

	// maxErrorBody caps how much of an error response is kept in APIError.
	maxErrorBody = 512
)

// Client is a rate-limited HTTP client for the publication search API.
type Client struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	apiKey     string
	baseURL    string
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithAPIKey sets the API key for authenticated requests.
func WithAPIKey(key string) ClientOption {
	return func(c *Client) {
		c.apiKey = key
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithBaseURL sets the API base URL.
func WithBaseURL(u string) ClientOption {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(u, "/")
	}
}

// WithRateLimit sets the request rate in requests per second. Values <= 0
// disable throttling.
func WithRateLimit(perSecond float64) ClientOption {
	return func(c *Client) {
		if perSecond <= 0 {
			c.limiter = rate.NewLimiter(rate.Inf, 1)
			return
		}
		c.limiter = rate.NewLimiter(rate.Limit(perSecond), 1)
	}
}

// NewClient creates a new search API client.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: DefaultTimeout},
		limiter:    rate.NewLimiter(rate.Limit(DefaultRateLimit), 1),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// searchResponse is the body of a successful search.
type searchResponse struct {
	Hits []publication.Publication `json:"hits"`
}

// checkHTTPErrors returns an error if the HTTP response indicates a problem.
func checkHTTPErrors(resp *http.Response, query string) error {
	if resp.StatusCode == 401 || resp.StatusCode == 403 {
		return fmt.Errorf("%w: status %d", ErrAuthError, resp.StatusCode)
	}
	if resp.StatusCode == 429 {
		return fmt.Errorf("%w: status %d", ErrRateLimited, resp.StatusCode)
	}
	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		msg := strings.TrimSpace(string(body))
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return &APIError{
			StatusCode: resp.StatusCode,
			Message:    msg,
			Query:      query,
		}
	}
	return nil
}

// find runs one search and returns its hits.
func (c *Client) find(ctx context.Context, params url.Values) ([]publication.Publication, error) {
	if c.baseURL == "" {
		return nil, fmt.Errorf("search: no base URL configured")
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	query := params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/publications?"+query, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNetworkError, err)
	}
	defer resp.Body.Close()

	if err := checkHTTPErrors(resp, query); err != nil {
		return nil, err
	}

	var out searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("%w: parsing hits: %v", ErrInvalidResponse, err)
	}
	return out.Hits, nil
}

// FindByIdentifier searches by additional identifier ("source:value").
func (c *Client) FindByIdentifier(ctx context.Context, id publication.AdditionalIdentifier) ([]publication.Publication, error) {
	return c.find(ctx, url.Values{"identifier": {id.String()}})
}

// FindByDOI searches by normalized DOI.
func (c *Client) FindByDOI(ctx context.Context, doi string) ([]publication.Publication, error) {
	return c.find(ctx, url.Values{"doi": {publication.NormalizeDOI(doi)}})
}

// FindByISBN searches by normalized ISBN.
func (c *Client) FindByISBN(ctx context.Context, isbn string) ([]publication.Publication, error) {
	return c.find(ctx, url.Values{"isbn": {publication.NormalizeISBN(isbn)}})
}

// FindByTitleAndType searches by title and instance kind.
func (c *Client) FindByTitleAndType(ctx context.Context, title string, kind publication.Kind) ([]publication.Publication, error) {
	return c.find(ctx, url.Values{"title": {title}, "type": {string(kind)}})
}

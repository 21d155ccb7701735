package pokeapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// Fetcher defines the interface for fetching PokeAPI resources.
// This interface is implemented by *Client and can be used for testing.
type Fetcher interface {
	FetchList(ctx context.Context, search string) (ListResult, error)
	FetchPokemon(ctx context.Context, name string) (Pokemon, error)
}

// Ensure Client implements Fetcher at compile time.
var _ Fetcher = (*Client)(nil)

// Client talks to the PokeAPI HTTP API.
type Client struct {
	baseURL   string
	http      *http.Client
	userAgent string
}

const (
	// DefaultBaseURL is the public PokeAPI v2 endpoint.
	DefaultBaseURL = "https://pokeapi.co/api/v2"

	// PageLimit is the fixed page size of list requests.
	PageLimit = 10

	defaultUserAgent = "pokedex/0.1"
)

var (
	errNilClient    = errors.New("client is nil")
	errNameRequired = errors.New("pokemon name required")
)

// Option customises a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua = strings.TrimSpace(ua); ua != "" {
			c.userAgent = ua
		}
	}
}

// NewClient builds a Client rooted at baseURL. An empty baseURL selects
// DefaultBaseURL.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	base, err := parseBaseURL(baseURL)
	if err != nil {
		return nil, err
	}
	c := &Client{
		baseURL:   base,
		http:      &http.Client{},
		userAgent: defaultUserAgent,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the normalized base URL without a trailing slash.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// ListURL returns the collection URL for the given search term.
func (c *Client) ListURL(search string) string {
	values := url.Values{}
	values.Set("limit", strconv.Itoa(PageLimit))
	values.Set("offset", "0")
	values.Set("search", search)
	return c.baseURL + "/pokemon?" + values.Encode()
}

// DetailURL returns the detail URL for the named entity.
func (c *Client) DetailURL(name string) string {
	return c.baseURL + "/pokemon/" + url.PathEscape(name)
}

// FetchList retrieves the first page of entities.
func (c *Client) FetchList(ctx context.Context, search string) (ListResult, error) {
	if c == nil {
		return ListResult{}, &NetworkError{Err: errNilClient}
	}
	var payload ListResult
	if err := c.Get(ctx, c.ListURL(search), &payload); err != nil {
		return ListResult{}, err
	}
	return payload, nil
}

// FetchPokemon retrieves details for a single entity.
func (c *Client) FetchPokemon(ctx context.Context, name string) (Pokemon, error) {
	if c == nil {
		return Pokemon{}, &NetworkError{Err: errNilClient}
	}
	if strings.TrimSpace(name) == "" {
		return Pokemon{}, &NetworkError{URL: c.DetailURL(name), Err: errNameRequired}
	}
	var payload Pokemon
	if err := c.Get(ctx, c.DetailURL(name), &payload); err != nil {
		return Pokemon{}, err
	}
	return payload, nil
}

// Get issues one GET request for rawURL and decodes a 2xx JSON body into
// dest. Every failure is reported as a *NetworkError.
func (c *Client) Get(ctx context.Context, rawURL string, dest any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return &NetworkError{URL: rawURL, Err: fmt.Errorf("create request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return &NetworkError{URL: rawURL, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return &NetworkError{URL: rawURL, StatusCode: resp.StatusCode}
	}
	if dest == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return &NetworkError{URL: rawURL, StatusCode: resp.StatusCode, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

func parseBaseURL(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		trimmed = DefaultBaseURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "https://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return "", fmt.Errorf("parse base url %q: %w", raw, err)
	}
	if u.Host == "" {
		return "", fmt.Errorf("parse base url %q: missing host", raw)
	}
	u.RawQuery = ""
	u.Fragment = ""
	return strings.TrimRight(u.String(), "/"), nil
}

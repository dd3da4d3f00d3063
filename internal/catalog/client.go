package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"binderbuilder/internal/config"
)

const (
	// Outbound politeness: stay well under the catalog API's documented limits
	rateLimit = 5
	rateBurst = 10
)

var (
	// ErrUpstream covers transport failures and non-2xx responses from the
	// catalog service.
	ErrUpstream = errors.New("catalog service unavailable")
	// ErrCardNotFound is returned when a card lookup by id fails for any reason.
	ErrCardNotFound = errors.New("card not found")
)

// QueryMode selects how a user search string is turned into a catalog query.
type QueryMode string

const (
	// QueryModeRaw forwards the search string untouched.
	QueryModeRaw QueryMode = "raw"
	// QueryModeName wraps the search string as a name prefix match,
	// e.g. "pika" becomes `name:pika*`.
	QueryModeName QueryMode = "name"
)

// Client issues lookups against the external card catalog API. Responses
// are passed through unmodified; there is no caching and no retrying.
type Client struct {
	baseURL     string
	apiKey      string
	queryMode   QueryMode
	httpClient  *http.Client
	rateLimiter *rate.Limiter
}

// NewClient creates a catalog API client from the loaded configuration.
func NewClient(cfg *config.Config) *Client {
	return &Client{
		baseURL:     cfg.CatalogAPIURL,
		apiKey:      cfg.CatalogAPIKey,
		queryMode:   QueryMode(cfg.CatalogQueryMode),
		rateLimiter: rate.NewLimiter(rate.Limit(rateLimit), rateBurst),
		httpClient: &http.Client{
			Timeout: cfg.CatalogTimeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
}

// Search forwards a card search to the catalog service. The response body
// comes back as-is.
func (c *Client) Search(ctx context.Context, query string, page, pageSize int) (json.RawMessage, error) {
	params := url.Values{}
	params.Set("q", c.buildQuery(query))
	params.Set("page", strconv.Itoa(page))
	params.Set("pageSize", strconv.Itoa(pageSize))

	body, err := c.doRequest(ctx, "/cards", params)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch cards: %w", err)
	}
	return body, nil
}

// GetByID fetches a single card by its catalog id. Not-found and transport
// failures both surface as ErrCardNotFound.
func (c *Client) GetByID(ctx context.Context, cardID string) (json.RawMessage, error) {
	endpoint := "/cards/" + url.PathEscape(cardID)

	body, err := c.doRequest(ctx, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrCardNotFound, cardID)
	}
	return body, nil
}

func (c *Client) buildQuery(query string) string {
	if c.queryMode == QueryModeName {
		return fmt.Sprintf("name:%s*", query)
	}
	return query
}

// doRequest performs a single GET against the catalog API. No retries: a
// failed upstream call fails the whole request.
func (c *Client) doRequest(ctx context.Context, endpoint string, params url.Values) (json.RawMessage, error) {
	fullURL := c.baseURL + endpoint
	if len(params) > 0 {
		fullURL += "?" + params.Encode()
	}

	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter error: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", "BinderBuilder/1.0")
	if c.apiKey != "" {
		req.Header.Set("X-Api-Key", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: HTTP %d", ErrUpstream, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	return json.RawMessage(body), nil
}

package navapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/mfplan/fund-planner/internal/domain"
)

// DefaultBaseURL is the public mutual fund NAV history API.
const DefaultBaseURL = "https://api.mfapi.in"

const defaultTimeout = 15 * time.Second

// SchemeMeta describes a mutual fund scheme as reported by the API.
type SchemeMeta struct {
	FundHouse      string `json:"fund_house"`
	SchemeType     string `json:"scheme_type"`
	SchemeCategory string `json:"scheme_category"`
	SchemeCode     int    `json:"scheme_code"`
	SchemeName     string `json:"scheme_name"`
}

// SchemeData is the full payload for one scheme: metadata plus its raw
// NAV history, newest first as the API serves it.
type SchemeData struct {
	Meta   SchemeMeta           `json:"meta"`
	Data   []domain.RawNAVPoint `json:"data"`
	Status string               `json:"status"`
}

// SchemeMatch is one row from a scheme name search.
type SchemeMatch struct {
	SchemeCode int    `json:"schemeCode"`
	SchemeName string `json:"schemeName"`
}

// Client fetches NAV histories over HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL points the client at a different API host, used by tests.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) { c.baseURL = baseURL }
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// NewClient creates a NAV API client.
func NewClient(opts ...Option) *Client {
	c := &Client{
		baseURL:    DefaultBaseURL,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FetchScheme retrieves the metadata and NAV history for a scheme code.
func (c *Client) FetchScheme(ctx context.Context, schemeCode int) (*SchemeData, error) {
	endpoint := fmt.Sprintf("%s/mf/%d", c.baseURL, schemeCode)

	var payload SchemeData
	if err := c.getJSON(ctx, endpoint, &payload); err != nil {
		return nil, fmt.Errorf("failed to fetch scheme %d: %w", schemeCode, err)
	}
	if len(payload.Data) == 0 {
		return nil, fmt.Errorf("scheme %d has no NAV history", schemeCode)
	}
	return &payload, nil
}

// FetchSeries retrieves a scheme's history and normalizes it into a
// chronologically sorted NAV series. The second return is the number of
// records whose dates could not be parsed.
func (c *Client) FetchSeries(ctx context.Context, schemeCode int) (domain.NAVSeries, int, error) {
	payload, err := c.FetchScheme(ctx, schemeCode)
	if err != nil {
		return nil, 0, err
	}
	series, fallbacks := domain.ParseNAVSeries(payload.Data)
	return series, fallbacks, nil
}

// Search looks up schemes by name fragment.
func (c *Client) Search(ctx context.Context, query string) ([]SchemeMatch, error) {
	endpoint := fmt.Sprintf("%s/mf/search?q=%s", c.baseURL, url.QueryEscape(query))

	var matches []SchemeMatch
	if err := c.getJSON(ctx, endpoint, &matches); err != nil {
		return nil, fmt.Errorf("scheme search %q failed: %w", query, err)
	}
	return matches, nil
}

func (c *Client) getJSON(ctx context.Context, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

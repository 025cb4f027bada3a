// Package scrapeworker is the HTTP client for the external browser
// automation worker that collects product listings from shopping sites.
// The worker owns its own scraping schedule, CAPTCHA handling and retry
// policy; this client only pulls fully-resolved listing batches.
package scrapeworker

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/trendia-ai/trendia/internal/domain/entities"
)

// Client is the scrape-worker API surface used by the collector.
type Client interface {
	GetListings(ctx context.Context, req ListingsRequest) (*ListingsResponse, error)
	GetWorkerHealth(ctx context.Context) (*HealthResponse, error)
}

// HTTPClient talks to the worker over HTTP.
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
}

// ListingsRequest selects which collected batch to fetch.
type ListingsRequest struct {
	Keyword string
	Site    string
	Limit   int
}

// ListingsResponse is one batch of collected listings.
type ListingsResponse struct {
	Listings  []ListingRecord `json:"listings"`
	Timestamp time.Time       `json:"timestamp"`
	Site      string          `json:"site,omitempty"`
	Keyword   string          `json:"keyword,omitempty"`
}

// ListingRecord is a single scraped product listing.
type ListingRecord struct {
	ProductURL  string  `json:"productUrl"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	PriceBRL    float64 `json:"priceBrl"`
	ImageURL    string  `json:"imageUrl"`
	Site        string  `json:"site"`
}

// HealthResponse reports worker liveness.
type HealthResponse struct {
	Healthy   bool      `json:"healthy"`
	LastCycle time.Time `json:"lastCycle,omitempty"`
	Message   string    `json:"message,omitempty"`
}

// NewClient creates a scrape-worker client.
func NewClient(baseURL string) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// GetListings fetches the latest collected batch for a keyword.
func (c *HTTPClient) GetListings(ctx context.Context, req ListingsRequest) (*ListingsResponse, error) {
	parsed, err := url.Parse(c.baseURL + "/listings")
	if err != nil {
		return nil, err
	}

	query := parsed.Query()
	if req.Keyword != "" {
		query.Set("keyword", req.Keyword)
	}
	if req.Site != "" {
		query.Set("site", req.Site)
	}
	if req.Limit > 0 {
		query.Set("limit", fmt.Sprintf("%d", req.Limit))
	}
	parsed.RawQuery = query.Encode()

	var response ListingsResponse
	if err := c.getJSON(ctx, parsed.String(), &response); err != nil {
		return nil, err
	}
	return &response, nil
}

// GetWorkerHealth checks the worker's health endpoint.
func (c *HTTPClient) GetWorkerHealth(ctx context.Context) (*HealthResponse, error) {
	var response HealthResponse
	if err := c.getJSON(ctx, c.baseURL+"/health", &response); err != nil {
		return nil, err
	}
	return &response, nil
}

// Product converts a listing record into a corpus product.
func (r ListingRecord) Product() *entities.Product {
	source := r.Site
	if source == "" {
		source = entities.SourceMercadoLivre
	}
	return &entities.Product{
		URL:         r.ProductURL,
		Title:       r.Title,
		Description: r.Description,
		PriceBRL:    r.PriceBRL,
		ImageURL:    r.ImageURL,
		Source:      source,
		CreatedAt:   time.Now().UTC(),
	}
}

func (c *HTTPClient) getJSON(ctx context.Context, rawURL string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("scrape worker returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	return json.NewDecoder(resp.Body).Decode(out)
}

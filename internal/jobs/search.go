package jobs

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const (
	searchPageSize = 50
	httpTimeout    = 15 * time.Second
)

// AdzunaClient queries the Adzuna public job search API.
type AdzunaClient struct {
	BaseURL string
	Country string // "in", "gb", "us", ...
	AppID   string
	AppKey  string
	client  *http.Client
}

// NewAdzunaClient constructs a client with a shared HTTP transport.
func NewAdzunaClient(baseURL, country, appID, appKey string) *AdzunaClient {
	return &AdzunaClient{
		BaseURL: strings.TrimSuffix(strings.TrimSpace(baseURL), "/"),
		Country: country,
		AppID:   appID,
		AppKey:  appKey,
		client:  &http.Client{Timeout: httpTimeout},
	}
}

// adzunaResponse mirrors the top-level Adzuna JSON response.
type adzunaResponse struct {
	Results []adzunaResult `json:"results"`
	Count   int            `json:"count"`
}

// adzunaResult mirrors a single Adzuna job listing.
type adzunaResult struct {
	ID          string         `json:"id"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Company     adzunaCompany  `json:"company"`
	Location    adzunaLocation `json:"location"`
	SalaryMin   float64        `json:"salary_min"`
	SalaryMax   float64        `json:"salary_max"`
	RedirectURL string         `json:"redirect_url"`
	Created     string         `json:"created"`
}

type adzunaCompany struct {
	DisplayName string `json:"display_name"`
}

type adzunaLocation struct {
	DisplayName string `json:"display_name"`
}

// Search fetches one page of up to 50 listings matching any query term.
func (c *AdzunaClient) Search(ctx context.Context, query string) ([]Listing, error) {
	if c.AppID == "" || c.AppKey == "" {
		return nil, fmt.Errorf("%w: ADZUNA_APP_ID / ADZUNA_API_KEY not set", ErrNotConfigured)
	}

	endpoint := fmt.Sprintf("%s/%s/search/1", c.BaseURL, c.Country)

	params := url.Values{}
	params.Set("app_id", c.AppID)
	params.Set("app_key", c.AppKey)
	params.Set("results_per_page", strconv.Itoa(searchPageSize))
	params.Set("what_or", query)
	params.Set("content-type", "application/json")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build search request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", ErrUpstream, err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d: %s", ErrUpstream, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var apiResp adzunaResponse
	if err := json.Unmarshal(body, &apiResp); err != nil {
		return nil, fmt.Errorf("%w: unmarshal: %v", ErrUpstream, err)
	}

	listings := make([]Listing, 0, len(apiResp.Results))
	for _, r := range apiResp.Results {
		listings = append(listings, Listing{
			ID:          r.ID,
			Title:       r.Title,
			Company:     r.Company.DisplayName,
			Location:    r.Location.DisplayName,
			Description: r.Description,
			RedirectURL: r.RedirectURL,
			Created:     r.Created,
			SalaryMin:   r.SalaryMin,
			SalaryMax:   r.SalaryMax,
		})
	}
	return listings, nil
}

var _ Searcher = (*AdzunaClient)(nil)

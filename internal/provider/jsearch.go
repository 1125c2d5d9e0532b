// Package provider implements the external job-search API client.
package provider

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
)

const (
	defaultBaseURL = "https://jsearch.p.rapidapi.com"
	apiHost        = "jsearch.p.rapidapi.com"
	httpTimeout    = 30 * time.Second
)

// ErrUnavailable marks provider failures (network error, non-2xx, missing
// credentials). Handlers map it to 502; an ingestion cycle treats it as a
// hard failure for that request and does not retry.
var ErrUnavailable = errors.New("search provider unavailable")

// Posting is one raw job posting as returned by the provider, before any
// lifecycle processing.
type Posting struct {
	ExternalID     string   `json:"external_id"`
	Title          string   `json:"title"`
	Company        string   `json:"company"`
	Location       string   `json:"location"`
	EmploymentType string   `json:"employment_type"`
	Description    string   `json:"description"`
	ApplyLink      string   `json:"apply_link"`
	IsRemote       bool     `json:"is_remote"`
	PostedAt       string   `json:"posted_at"`
	SalaryMin      *float64 `json:"salary_min"`
	SalaryMax      *float64 `json:"salary_max"`
}

// Client queries a JSearch-style job search API.
type Client struct {
	apiKey  string
	country string
	baseURL string
	client  *http.Client
}

// NewClient constructs a Client with a shared HTTP client. country is the
// default used when a query does not specify one.
func NewClient(apiKey, country string) *Client {
	return &Client{
		apiKey:  apiKey,
		country: country,
		baseURL: defaultBaseURL,
		client:  &http.Client{Timeout: httpTimeout},
	}
}

// HasCredentials reports whether an API key is configured. The scheduler
// skips ingestion rounds when it is false instead of erroring every tick.
func (c *Client) HasCredentials() bool { return c.apiKey != "" }

// searchResponse mirrors the provider's top-level JSON response.
type searchResponse struct {
	Status string         `json:"status"`
	Data   []searchResult `json:"data"`
}

// searchResult mirrors a single provider job entry.
type searchResult struct {
	JobID          string   `json:"job_id"`
	Title          string   `json:"job_title"`
	Employer       string   `json:"employer_name"`
	City           string   `json:"job_city"`
	Country        string   `json:"job_country"`
	EmploymentType string   `json:"job_employment_type"`
	Description    string   `json:"job_description"`
	ApplyLink      string   `json:"job_apply_link"`
	IsRemote       bool     `json:"job_is_remote"`
	PostedAt       string   `json:"job_posted_at_datetime_utc"`
	MinSalary      *float64 `json:"job_min_salary"`
	MaxSalary      *float64 `json:"job_max_salary"`
}

// Query fetches one page of postings for a search text. country and
// datePosted ("day", "3days", "week", "month") are optional; empty values
// fall back to the client default and "all".
func (c *Client) Query(ctx context.Context, text string, page int, country, datePosted string) ([]Posting, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("%w: no API key configured", ErrUnavailable)
	}
	if country == "" {
		country = c.country
	}
	if datePosted == "" {
		datePosted = "all"
	}
	if page < 1 {
		page = 1
	}

	params := url.Values{}
	params.Set("query", text)
	params.Set("page", strconv.Itoa(page))
	params.Set("country", country)
	params.Set("date_posted", datePosted)

	reqURL := c.baseURL + "/search?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-RapidAPI-Key", c.apiKey)
	req.Header.Set("X-RapidAPI-Host", apiHost)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: http GET: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", ErrUnavailable, err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: provider returned %d: %s", ErrUnavailable, resp.StatusCode, truncate(body, 200))
	}

	var apiResp searchResponse
	if err := json.Unmarshal(body, &apiResp); err != nil {
		return nil, fmt.Errorf("%w: json unmarshal: %v", ErrUnavailable, err)
	}

	postings := make([]Posting, 0, len(apiResp.Data))
	for _, r := range apiResp.Data {
		location := r.City
		if location == "" {
			location = r.Country
		} else if r.Country != "" {
			location = r.City + ", " + r.Country
		}
		postings = append(postings, Posting{
			ExternalID:     r.JobID,
			Title:          r.Title,
			Company:        r.Employer,
			Location:       location,
			EmploymentType: r.EmploymentType,
			Description:    r.Description,
			ApplyLink:      r.ApplyLink,
			IsRemote:       r.IsRemote,
			PostedAt:       r.PostedAt,
			SalaryMin:      r.MinSalary,
			SalaryMax:      r.MaxSalary,
		})
	}

	return postings, nil
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "…"
}

// Package eventapi is the HTTP client for the conference registration API.
// It hides envelope-shape differences behind ParsePage and exposes typed
// listing calls for registrations and organizations.
package eventapi

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// Client talks to the remote registration backend.
type Client struct {
	baseURL string
	token   string
	httpc   *http.Client
}

// RegistrationParams are the query parameters for a registrations page.
// Category may be empty for an unfiltered request.
type RegistrationParams struct {
	Category string
	PerPage  int
	Page     int
}

// ListParams are the query parameters for a generic paginated listing.
type ListParams struct {
	PerPage int
	Page    int
}

// NewClient creates a Client for the given base URL. The token, when
// non-empty, is sent as a bearer token on every request.
func NewClient(baseURL, token string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		token:   token,
		httpc:   &http.Client{Timeout: timeout},
	}
}

// GetRegistrations fetches one page of registrations, optionally filtered by
// category, and parses whatever envelope shape the backend answered with.
func (c *Client) GetRegistrations(ctx context.Context, p RegistrationParams) (Page, error) {
	q := url.Values{}
	if p.Category != "" {
		q.Set("category", p.Category)
	}
	if p.PerPage > 0 {
		q.Set("per_page", strconv.Itoa(p.PerPage))
	}
	if p.Page > 0 {
		q.Set("page", strconv.Itoa(p.Page))
	}
	return c.getPage(ctx, "/registrations", q)
}

// GetOrganizations fetches one page of organizations.
func (c *Client) GetOrganizations(ctx context.Context, p ListParams) (Page, error) {
	q := url.Values{}
	if p.PerPage > 0 {
		q.Set("per_page", strconv.Itoa(p.PerPage))
	}
	if p.Page > 0 {
		q.Set("page", strconv.Itoa(p.Page))
	}
	return c.getPage(ctx, "/organizations", q)
}

func (c *Client) getPage(ctx context.Context, path string, q url.Values) (Page, error) {
	endpoint := c.baseURL + path
	if len(q) > 0 {
		endpoint += "?" + q.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return Page{}, fmt.Errorf("build request %s: %w", path, err)
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return Page{}, fmt.Errorf("fetch %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// Drain so the connection can be reused.
		io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return Page{}, fmt.Errorf("fetch %s: unexpected status %d", path, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Page{}, fmt.Errorf("read %s response: %w", path, err)
	}

	page, err := ParsePage(body)
	if err != nil {
		return Page{}, fmt.Errorf("fetch %s: %w", path, err)
	}
	return page, nil
}

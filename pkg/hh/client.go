package hh

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strconv"
	"strings"
	"time"
)

const (
	defaultBaseURL   = "https://api.hh.ru"
	defaultUserAgent = "vacancy-etl/0.1 (+https://github.com/honeycarbs/vacancy-etl)"
	defaultPageSize  = 20
	defaultDelay     = 200 * time.Millisecond
)

// NewClient instantiates an hh.ru API client.
// A zero Delay means the default 200ms; a negative Delay disables the pause.
func NewClient(cfg Config) (*Client, error) {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	baseURL = strings.TrimSuffix(baseURL, "/")
	if _, err := url.Parse(baseURL); err != nil {
		return nil, fmt.Errorf("hh: parse base url: %w", err)
	}

	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = defaultUserAgent
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}

	pageSize := cfg.PageSize
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}

	delay := cfg.Delay
	switch {
	case delay == 0:
		delay = defaultDelay
	case delay < 0:
		delay = 0
	}

	return &Client{
		baseURL:    baseURL,
		userAgent:  userAgent,
		httpClient: httpClient,
		pageSize:   pageSize,
		delay:      delay,
		pause:      sleepWithContext,
	}, nil
}

// Employer loads a single employer by its hh.ru id
func (c *Client) Employer(ctx context.Context, id string) (*Employer, error) {
	if id == "" {
		return nil, fmt.Errorf("hh: employer id is required")
	}

	u, err := c.buildURL(url.Values{}, "employers", id)
	if err != nil {
		return nil, err
	}

	var employer Employer
	if err := c.getJSON(ctx, u, &employer); err != nil {
		return nil, err
	}
	return &employer, nil
}

// SearchEmployer returns the best match for name, or nil when the search finds nothing
func (c *Client) SearchEmployer(ctx context.Context, name string) (*Employer, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("hh: employer name is required")
	}

	values := url.Values{}
	values.Set("text", name)
	values.Set("per_page", "1")

	u, err := c.buildURL(values, "employers")
	if err != nil {
		return nil, err
	}

	var payload employerSearchResponse
	if err := c.getJSON(ctx, u, &payload); err != nil {
		return nil, err
	}
	if len(payload.Items) == 0 {
		return nil, nil
	}
	return &payload.Items[0], nil
}

// EmployerVacancies walks every listing page for an employer starting at page 0.
// When a page fails it returns the items gathered so far together with the error.
func (c *Client) EmployerVacancies(ctx context.Context, employerID string) ([]Vacancy, error) {
	if employerID == "" {
		return nil, fmt.Errorf("hh: employer id is required")
	}

	var vacancies []Vacancy
	for page := 0; ; page++ {
		values := url.Values{}
		values.Set("employer_id", employerID)
		values.Set("per_page", strconv.Itoa(c.pageSize))
		values.Set("page", strconv.Itoa(page))

		u, err := c.buildURL(values, "vacancies")
		if err != nil {
			return vacancies, err
		}

		var payload vacancyPage
		if err := c.getJSON(ctx, u, &payload); err != nil {
			return vacancies, fmt.Errorf("hh: vacancies page %d: %w", page, err)
		}
		vacancies = append(vacancies, payload.Items...)

		if payload.Pages <= page+1 {
			return vacancies, nil
		}
	}
}

// PageSize reports the per_page value used for listings
func (c *Client) PageSize() int {
	return c.pageSize
}

func (c *Client) buildURL(values url.Values, elems ...string) (string, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return "", fmt.Errorf("hh: parse base url: %w", err)
	}

	u.Path = path.Join(append([]string{"/", u.Path}, elems...)...)
	if len(values) > 0 {
		u.RawQuery = values.Encode()
	}
	return u.String(), nil
}

// getJSON performs a GET and decodes a 200 response into out.
// The client pauses after the call whatever its outcome.
func (c *Client) getJSON(ctx context.Context, rawURL string, out any) error {
	defer c.pause(ctx, c.delay)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("hh: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("hh: request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &StatusError{
			Method:     req.Method,
			URL:        rawURL,
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(body)),
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &DecodeError{URL: rawURL, Err: err}
	}
	return nil
}

func sleepWithContext(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}

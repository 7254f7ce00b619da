package hh

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

// Config defines hh.ru API client settings
type Config struct {
	BaseURL    string
	UserAgent  string
	HTTPClient *http.Client
	PageSize   int
	// Delay is the pause taken after every API call. Zero means the
	// default, a negative value disables it.
	Delay time.Duration
}

// Client queries the hh.ru employers and vacancies API
type Client struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
	pageSize   int
	delay      time.Duration
	pause      func(ctx context.Context, d time.Duration)
}

// Employer is the employer object returned by /employers and /employers/{id}
type Employer struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	URL           string `json:"url"`
	AlternateURL  string `json:"alternate_url"`
	OpenVacancies int    `json:"open_vacancies"`
}

// Salary is a possibly open-ended salary range
type Salary struct {
	From     *float64 `json:"from"`
	To       *float64 `json:"to"`
	Currency string   `json:"currency"`
	Gross    *bool    `json:"gross"`
}

// EmployerRef is the short employer object embedded in a vacancy
type EmployerRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Vacancy is a single item of the /vacancies listing
type Vacancy struct {
	ID           string      `json:"id"`
	Name         string      `json:"name"`
	URL          string      `json:"url"`
	AlternateURL string      `json:"alternate_url"`
	Salary       *Salary     `json:"salary"`
	Employer     EmployerRef `json:"employer"`
}

type employerSearchResponse struct {
	Items []Employer `json:"items"`
	Found int        `json:"found"`
	Pages int        `json:"pages"`
}

type vacancyPage struct {
	Items   []Vacancy `json:"items"`
	Found   int       `json:"found"`
	Pages   int       `json:"pages"`
	Page    int       `json:"page"`
	PerPage int       `json:"per_page"`
}

// StatusError reports a non-200 API response
type StatusError struct {
	Method     string
	URL        string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("hh: %s %s: status %d", e.Method, e.URL, e.StatusCode)
	}
	return fmt.Sprintf("hh: %s %s: status %d: %s", e.Method, e.URL, e.StatusCode, e.Body)
}

// DecodeError reports a response body that is not the expected JSON
type DecodeError struct {
	URL string
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("hh: decode %s: %v", e.URL, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// Package intangles is a minimal client for the Intangles fleet telemetry
// API, limited to the paged fuel_consumed endpoint the kiosk aggregates.
package intangles

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rotisserie/eris"
	"golang.org/x/time/rate"
)

const (
	defaultBaseURL   = "https://apis.intangles.com"
	fuelConsumedPath = "/vehicle/fuel_consumed"

	// Header contract with the remote service; values must match what the
	// fleet dashboard sends or the API rejects the session token.
	headerReferer     = "https://bemblueedge.intangles.com/"
	headerOrigin      = "https://bemblueedge.intangles.com"
	headerSessionType = "web"
	headerUserLang    = "en"
	headerUserTZ      = "Asia/Calcutta"

	defaultUserAgent = "carbonclock/1.0"
	defaultTimeout   = 45 * time.Second
)

// Query holds the fuel_consumed query parameters. All values are passed
// through verbatim; booleans are encoded as "true"/"false".
type Query struct {
	AccountID       string
	SpecIDs         string
	PageSize        int
	Lang            string
	NoDefaultFields bool
	Projection      string
	Groups          string
	LastLocation    bool
}

// StatusError reports a non-2xx response from the telemetry API.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("intangles: unexpected status %d: %s", e.StatusCode, e.Body)
}

// Client fetches pages from the fuel_consumed endpoint. The payload is
// returned as decoded JSON with no schema applied; row extraction and field
// detection happen downstream.
type Client interface {
	FuelConsumedPage(ctx context.Context, q Query, page int) (any, error)
}

// Option configures the client.
type Option func(*httpClient)

// WithBaseURL overrides the default API base URL.
func WithBaseURL(u string) Option {
	return func(c *httpClient) {
		c.baseURL = u
	}
}

// WithHTTPClient overrides the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *httpClient) {
		c.http = hc
	}
}

// WithTimeout sets the per-request timeout. Applied after all options so
// it holds regardless of ordering relative to WithHTTPClient.
func WithTimeout(d time.Duration) Option {
	return func(c *httpClient) {
		c.timeout = d
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *httpClient) {
		c.userAgent = ua
	}
}

// WithRateLimit replaces the default request limiter.
func WithRateLimit(l *rate.Limiter) Option {
	return func(c *httpClient) {
		c.limiter = l
	}
}

type httpClient struct {
	token     string
	baseURL   string
	userAgent string
	timeout   time.Duration
	http      *http.Client
	limiter   *rate.Limiter
}

// NewClient creates a telemetry API client authenticated with the given
// session token.
func NewClient(token string, opts ...Option) Client {
	c := &httpClient{
		token:     token,
		baseURL:   defaultBaseURL,
		userAgent: defaultUserAgent,
		http: &http.Client{
			Timeout: defaultTimeout,
			Transport: &http.Transport{
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		limiter: rate.NewLimiter(5, 5),
	}
	for _, o := range opts {
		o(c)
	}
	if c.timeout > 0 {
		c.http.Timeout = c.timeout
	}
	return c
}

func (c *httpClient) FuelConsumedPage(ctx context.Context, q Query, page int) (any, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, eris.Wrap(err, "intangles: rate limiter wait")
	}

	params := url.Values{}
	params.Set("pnum", strconv.Itoa(page))
	params.Set("psize", strconv.Itoa(q.PageSize))
	params.Set("no_default_fields", strconv.FormatBool(q.NoDefaultFields))
	params.Set("proj", q.Projection)
	params.Set("spec_ids", q.SpecIDs)
	params.Set("groups", q.Groups)
	params.Set("lastloc", strconv.FormatBool(q.LastLocation))
	params.Set("acc_id", q.AccountID)
	params.Set("lang", q.Lang)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+fuelConsumedPath+"?"+params.Encode(), nil)
	if err != nil {
		return nil, eris.Wrap(err, "intangles: create request")
	}
	req.Header.Set("Accept", "application/json, text/plain, */*")
	req.Header.Set("intangles-session-type", headerSessionType)
	req.Header.Set("intangles-user-lang", headerUserLang)
	req.Header.Set("intangles-user-token", c.token)
	req.Header.Set("intangles-user-tz", headerUserTZ)
	req.Header.Set("Referer", headerReferer)
	req.Header.Set("Origin", headerOrigin)
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, eris.Wrap(err, "intangles: send request")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, eris.Wrap(err, "intangles: read response")
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	var payload any
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, eris.Wrap(err, "intangles: unmarshal response")
	}
	return payload, nil
}

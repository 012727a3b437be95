package ebay

import (
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/ktnkk/crosslist/internal/metrics"
)

const tradingPath = "/ws/api.dll"

// TradingClient implements Caller against the eBay legacy XML Trading
// API. One client is built per seller, carrying their credentials.
type TradingClient struct {
	creds       *Credentials
	tokens      TokenProvider
	baseURL     string
	siteID      string
	compatLevel string
	client      *http.Client
	rateLimiter *RateLimiter
}

// TradingOption configures the TradingClient.
type TradingOption func(*TradingClient)

// WithSiteID overrides the default site ID ("0", US).
func WithSiteID(id string) TradingOption {
	return func(c *TradingClient) {
		c.siteID = id
	}
}

// WithCompatibilityLevel overrides the default compatibility level.
func WithCompatibilityLevel(level string) TradingOption {
	return func(c *TradingClient) {
		c.compatLevel = level
	}
}

// WithTradingHTTPClient overrides the default HTTP client.
func WithTradingHTTPClient(hc *http.Client) TradingOption {
	return func(c *TradingClient) {
		c.client = hc
	}
}

// WithRateLimiter injects a rate limiter that controls per-second and
// daily API call limits. When set, every Call() goes through Wait()
// first.
func WithRateLimiter(r *RateLimiter) TradingOption {
	return func(c *TradingClient) {
		c.rateLimiter = r
	}
}

// NewTradingClient creates a Trading API client for the given seller
// credentials. baseURL is the marketplace API root for the selected
// sandbox/production mode.
func NewTradingClient(
	creds *Credentials,
	tokens TokenProvider,
	baseURL string,
	opts ...TradingOption,
) *TradingClient {
	c := &TradingClient{
		creds:       creds,
		tokens:      tokens,
		baseURL:     strings.TrimRight(baseURL, "/"),
		siteID:      "0",
		compatLevel: "967",
		client:      &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Call implements Caller. It renders req as an XML document, posts it
// with the Trading API headers, verifies the HTTP status, surfaces
// marketplace-reported Errors as an *APIError, and unmarshals the
// response into resp when resp is non-nil.
func (c *TradingClient) Call(ctx context.Context, callName string, req, resp any) error {
	if c.rateLimiter != nil {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			if errors.Is(err, ErrDailyLimitReached) {
				metrics.EbayDailyLimitHits.Inc()
			}
			return &RequestError{CallName: callName, Err: fmt.Errorf("rate limit: %w", err)}
		}
		metrics.EbayDailyUsage.Set(float64(c.rateLimiter.DailyCount()))
	}

	token, err := c.tokens.Token(ctx)
	if err != nil {
		return err
	}

	body, err := xml.Marshal(req)
	if err != nil {
		return &RequestError{CallName: callName, Err: fmt.Errorf("marshaling request: %w", err)}
	}
	body = append([]byte(xml.Header), body...)

	headers, err := c.buildHeaders(callName, token)
	if err != nil {
		return &RequestError{CallName: callName, Err: err}
	}

	httpReq, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		c.baseURL+tradingPath,
		bytes.NewReader(body),
	)
	if err != nil {
		return &RequestError{CallName: callName, Err: fmt.Errorf("creating request: %w", err)}
	}
	for k, v := range headers {
		httpReq.Header.Set(k, v)
	}

	metrics.EbayAPICallsTotal.WithLabelValues(callName).Inc()

	httpResp, err := c.client.Do(httpReq)
	if err != nil {
		metrics.EbayAPIErrorsTotal.WithLabelValues("transport").Inc()
		return &RequestError{CallName: callName, Err: fmt.Errorf("executing request: %w", err)}
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		metrics.EbayAPIErrorsTotal.WithLabelValues("transport").Inc()
		return &RequestError{CallName: callName, Err: fmt.Errorf("reading response body: %w", err)}
	}

	if httpResp.StatusCode < 200 || httpResp.StatusCode > 299 {
		metrics.EbayAPIErrorsTotal.WithLabelValues("transport").Inc()
		return &RequestError{
			CallName: callName,
			Status:   httpResp.StatusCode,
			Err:      fmt.Errorf("%s", strings.TrimSpace(string(respBody))),
		}
	}

	// The Trading API reports business failures inside a 200 envelope;
	// scan for Errors elements before extracting anything else.
	var envelope errorEnvelope
	if err := xml.Unmarshal(respBody, &envelope); err != nil {
		metrics.EbayAPIErrorsTotal.WithLabelValues("transport").Inc()
		return &RequestError{CallName: callName, Err: fmt.Errorf("parsing response XML: %w", err)}
	}

	if details := envelope.details(); len(details) > 0 {
		metrics.EbayAPIErrorsTotal.WithLabelValues("business").Inc()
		return &APIError{CallName: callName, Details: details}
	}

	if resp != nil {
		if err := xml.Unmarshal(respBody, resp); err != nil {
			return &RequestError{CallName: callName, Err: fmt.Errorf("parsing response XML: %w", err)}
		}
	}

	return nil
}

// buildHeaders assembles the required Trading API headers and fails
// when any required value is empty.
func (c *TradingClient) buildHeaders(callName, token string) (map[string]string, error) {
	headers := map[string]string{
		"X-EBAY-API-CALL-NAME":           callName,
		"X-EBAY-API-SITEID":              c.siteID,
		"X-EBAY-API-COMPATIBILITY-LEVEL": c.compatLevel,
		"X-EBAY-API-APP-NAME":            c.creds.ClientID,
		"X-EBAY-API-DEV-NAME":            c.creds.DevID,
		"X-EBAY-API-CERT-NAME":           c.creds.ClientSecret,
		"X-EBAY-API-IAF-TOKEN":           token,
		"Content-Type":                   "application/xml",
	}

	var empty []string
	for _, name := range []string{
		"X-EBAY-API-CALL-NAME",
		"X-EBAY-API-SITEID",
		"X-EBAY-API-COMPATIBILITY-LEVEL",
		"X-EBAY-API-APP-NAME",
		"X-EBAY-API-DEV-NAME",
		"X-EBAY-API-CERT-NAME",
	} {
		if headers[name] == "" {
			empty = append(empty, name)
		}
	}
	if len(empty) > 0 {
		return nil, fmt.Errorf("invalid API headers: %s empty", strings.Join(empty, ", "))
	}

	return headers, nil
}

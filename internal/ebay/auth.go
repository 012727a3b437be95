package ebay

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ktnkk/crosslist/internal/cache"
	"github.com/ktnkk/crosslist/internal/metrics"
)

const (
	tokenPath = "/identity/v1/oauth2/token" //nolint:gosec // not a credential

	// Access tokens are cached for their reported lifetime minus this
	// margin, so a token is never served within five minutes of expiry.
	tokenExpiryMargin = 300 * time.Second

	defaultExpiresIn = 7200 // seconds, when the token endpoint omits expires_in
)

// RefreshTokenProvider implements TokenProvider using the eBay OAuth2
// refresh_token grant. Tokens are cached per client ID in the injected
// cache; a cache hit never issues a network call.
type RefreshTokenProvider struct {
	creds    *Credentials
	tokenURL string
	scopes   string
	client   *http.Client
	cache    cache.Cache
}

// TokenOption configures the RefreshTokenProvider.
type TokenOption func(*RefreshTokenProvider)

// WithTokenHTTPClient overrides the default HTTP client.
func WithTokenHTTPClient(c *http.Client) TokenOption {
	return func(p *RefreshTokenProvider) {
		p.client = c
	}
}

// WithScopes overrides the requested OAuth scopes.
func WithScopes(scopes string) TokenOption {
	return func(p *RefreshTokenProvider) {
		p.scopes = scopes
	}
}

// NewRefreshTokenProvider creates a token provider for the given
// credentials. baseURL is the marketplace API root; the token endpoint
// path is appended to it.
func NewRefreshTokenProvider(
	creds *Credentials,
	baseURL string,
	tokenCache cache.Cache,
	opts ...TokenOption,
) *RefreshTokenProvider {
	p := &RefreshTokenProvider{
		creds:    creds,
		tokenURL: strings.TrimRight(baseURL, "/") + tokenPath,
		scopes:   "https://api.ebay.com/oauth/api_scope",
		client:   &http.Client{Timeout: 10 * time.Second},
		cache:    tokenCache,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
	TokenType   string `json:"token_type"`
}

type tokenErrorResponse struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
}

// Token returns a valid OAuth2 access token, serving from the cache
// when possible and performing a refresh_token grant otherwise.
func (p *RefreshTokenProvider) Token(ctx context.Context) (string, error) {
	key := p.creds.TokenCacheKey()
	if token, ok := p.cache.Get(key); ok {
		return token, nil
	}

	token, expiresIn, err := p.fetch(ctx)
	if err != nil {
		return "", &TokenError{Err: err}
	}

	ttl := time.Duration(expiresIn)*time.Second - tokenExpiryMargin
	if ttl < 0 {
		ttl = 0
	}
	p.cache.Set(key, token, ttl)
	metrics.EbayTokenRefreshesTotal.Inc()

	return token, nil
}

func (p *RefreshTokenProvider) fetch(ctx context.Context) (string, int, error) {
	form := url.Values{
		"grant_type":    {"refresh_token"},
		"refresh_token": {p.creds.AuthToken},
		"scope":         {p.scopes},
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		p.tokenURL,
		strings.NewReader(form.Encode()),
	)
	if err != nil {
		return "", 0, fmt.Errorf("creating token request: %w", err)
	}

	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.SetBasicAuth(p.creds.ClientID, p.creds.ClientSecret)

	resp, err := p.client.Do(req)
	if err != nil {
		return "", 0, fmt.Errorf("executing token request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", 0, fmt.Errorf("reading token response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var errResp tokenErrorResponse
		_ = json.Unmarshal(body, &errResp) //nolint:errcheck // best-effort error parsing
		return "", 0, fmt.Errorf(
			"token request failed (status %d): %s - %s",
			resp.StatusCode,
			errResp.Error,
			errResp.ErrorDescription,
		)
	}

	var tokenResp tokenResponse
	if err := json.Unmarshal(body, &tokenResp); err != nil {
		return "", 0, fmt.Errorf("parsing token response: %w", err)
	}

	if tokenResp.AccessToken == "" {
		return "", 0, fmt.Errorf("token response has no access_token")
	}

	expiresIn := tokenResp.ExpiresIn
	if expiresIn == 0 {
		expiresIn = defaultExpiresIn
	}

	return tokenResp.AccessToken, expiresIn, nil
}

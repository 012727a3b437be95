package ebay

import (
	domain "github.com/ktnkk/crosslist/pkg/types"
)

// Credentials holds the per-seller eBay API identity: the OAuth client
// pair, the Trading API dev ID, and the long-lived refresh token.
type Credentials struct {
	ClientID     string
	ClientSecret string
	DevID        string
	AuthToken    string
}

// CredentialsFromSetting builds Credentials from a settings record.
// It fails with a CredentialError naming exactly the fields that are
// empty.
func CredentialsFromSetting(s *domain.Setting) (*Credentials, error) {
	var missing []string
	if s.EbayClientID == "" {
		missing = append(missing, "Client ID")
	}
	if s.EbayClientSecret == "" {
		missing = append(missing, "Client Secret")
	}
	if s.EbayDevID == "" {
		missing = append(missing, "Dev ID")
	}
	if s.EbayAuthToken == "" {
		missing = append(missing, "Auth Token")
	}
	if len(missing) > 0 {
		return nil, &CredentialError{MissingFields: missing}
	}

	return &Credentials{
		ClientID:     s.EbayClientID,
		ClientSecret: s.EbayClientSecret,
		DevID:        s.EbayDevID,
		AuthToken:    s.EbayAuthToken,
	}, nil
}

// TokenCacheKey returns the cache key under which this client's access
// token is stored.
func (c *Credentials) TokenCacheKey() string {
	return "ebay_access_token_" + c.ClientID
}

package ebay_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ktnkk/crosslist/internal/ebay"
	domain "github.com/ktnkk/crosslist/pkg/types"
)

func TestCredentialsFromSetting(t *testing.T) {
	t.Parallel()

	complete := func() *domain.Setting {
		return &domain.Setting{
			EbayClientID:     "client-id",
			EbayClientSecret: "client-secret",
			EbayDevID:        "dev-id",
			EbayAuthToken:    "refresh-token",
		}
	}

	tests := []struct {
		name        string
		mutate      func(*domain.Setting)
		wantMissing []string
	}{
		{
			name:   "all fields present",
			mutate: func(*domain.Setting) {},
		},
		{
			name:        "missing client id",
			mutate:      func(s *domain.Setting) { s.EbayClientID = "" },
			wantMissing: []string{"Client ID"},
		},
		{
			name:        "missing client secret",
			mutate:      func(s *domain.Setting) { s.EbayClientSecret = "" },
			wantMissing: []string{"Client Secret"},
		},
		{
			name:        "missing dev id",
			mutate:      func(s *domain.Setting) { s.EbayDevID = "" },
			wantMissing: []string{"Dev ID"},
		},
		{
			name:        "missing auth token",
			mutate:      func(s *domain.Setting) { s.EbayAuthToken = "" },
			wantMissing: []string{"Auth Token"},
		},
		{
			name: "multiple fields missing in order",
			mutate: func(s *domain.Setting) {
				s.EbayClientSecret = ""
				s.EbayAuthToken = ""
			},
			wantMissing: []string{"Client Secret", "Auth Token"},
		},
		{
			name:        "everything missing",
			mutate:      func(s *domain.Setting) { *s = domain.Setting{} },
			wantMissing: []string{"Client ID", "Client Secret", "Dev ID", "Auth Token"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			s := complete()
			tt.mutate(s)

			creds, err := ebay.CredentialsFromSetting(s)
			if len(tt.wantMissing) > 0 {
				require.Error(t, err)

				var credErr *ebay.CredentialError
				require.ErrorAs(t, err, &credErr)
				assert.Equal(t, tt.wantMissing, credErr.MissingFields)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, "client-id", creds.ClientID)
			assert.Equal(t, "refresh-token", creds.AuthToken)
		})
	}
}

func TestCredentials_TokenCacheKey(t *testing.T) {
	t.Parallel()

	creds := &ebay.Credentials{ClientID: "abc123"}
	assert.Equal(t, "ebay_access_token_abc123", creds.TokenCacheKey())
}

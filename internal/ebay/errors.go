package ebay

import (
	"fmt"
	"strings"
)

// ErrorDetail is a single marketplace-reported error from a Trading API
// response envelope.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// APIError reports protocol-level business errors: the HTTP exchange
// succeeded but the marketplace rejected the call inside its 200
// envelope. Callers branch on this type to distinguish business
// failures from transport failures.
type APIError struct {
	CallName string
	Details  []ErrorDetail
}

func (e *APIError) Error() string {
	msgs := make([]string, 0, len(e.Details))
	for _, d := range e.Details {
		msgs = append(msgs, fmt.Sprintf("Error %s: %s", d.Code, d.Message))
	}
	return fmt.Sprintf("%s rejected by eBay: %s", e.CallName, strings.Join(msgs, "; "))
}

// RequestError reports a transport-level failure: non-2xx HTTP status,
// a network error, or an unparseable response body.
type RequestError struct {
	CallName string
	Status   int // zero when the request never completed
	Err      error
}

func (e *RequestError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s request failed (status %d): %v", e.CallName, e.Status, e.Err)
	}
	return fmt.Sprintf("%s request failed: %v", e.CallName, e.Err)
}

func (e *RequestError) Unwrap() error { return e.Err }

// TokenError reports a failed OAuth access token acquisition.
type TokenError struct {
	Err error
}

func (e *TokenError) Error() string {
	return fmt.Sprintf("acquiring access token: %v", e.Err)
}

func (e *TokenError) Unwrap() error { return e.Err }

// CredentialError reports missing eBay credential fields on a user's
// settings record. MissingFields holds the human-readable field names.
type CredentialError struct {
	MissingFields []string
}

func (e *CredentialError) Error() string {
	return "eBay credentials are not configured: missing " +
		strings.Join(e.MissingFields, ", ")
}

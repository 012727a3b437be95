package main

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTradingRequest(call, body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/ws/api.dll", strings.NewReader(body))
	req.Header.Set("X-EBAY-API-CALL-NAME", call)
	req.Header.Set("X-EBAY-API-SITEID", "0")
	req.Header.Set("X-EBAY-API-COMPATIBILITY-LEVEL", "967")
	req.Header.Set("X-EBAY-API-APP-NAME", "app")
	req.Header.Set("X-EBAY-API-DEV-NAME", "dev")
	req.Header.Set("X-EBAY-API-CERT-NAME", "cert")
	req.Header.Set("X-EBAY-API-IAF-TOKEN", "token")
	return req
}

func TestTokenHandler(t *testing.T) {
	t.Parallel()

	h := tokenHandler(testLogger())

	form := url.Values{"grant_type": {"refresh_token"}, "refresh_token": {"v1.2"}}
	req := httptest.NewRequest(http.MethodPost, "/identity/v1/oauth2/token",
		strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.SetBasicAuth("client", "secret")
	rec := httptest.NewRecorder()

	h(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "access_token") {
		t.Fatalf("missing access_token in %s", rec.Body.String())
	}
}

func TestTokenHandler_BadGrant(t *testing.T) {
	t.Parallel()

	h := tokenHandler(testLogger())

	req := httptest.NewRequest(http.MethodPost, "/identity/v1/oauth2/token",
		strings.NewReader("grant_type=client_credentials"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.SetBasicAuth("client", "secret")
	rec := httptest.NewRecorder()

	h(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestTradingHandler_AddFixedPriceItem(t *testing.T) {
	t.Parallel()

	h := tradingHandler(testLogger())

	body := `<?xml version="1.0"?>
<AddFixedPriceItemRequest xmlns="urn:ebay:apis:eBLBaseComponents">
  <Item><Title>Vintage Camera</Title><StartPrice>201.00</StartPrice></Item>
</AddFixedPriceItemRequest>`
	rec := httptest.NewRecorder()
	h(rec, newTradingRequest("AddFixedPriceItem", body))

	got := rec.Body.String()
	if !strings.Contains(got, "<Ack>Success</Ack>") {
		t.Fatalf("expected success, got %s", got)
	}
	if !strings.Contains(got, "<ItemID>") {
		t.Fatalf("missing ItemID in %s", got)
	}
	if !strings.Contains(got, "InsertionFee") {
		t.Fatalf("missing fees in %s", got)
	}
}

func TestTradingHandler_MissingTitle(t *testing.T) {
	t.Parallel()

	h := tradingHandler(testLogger())

	body := `<AddFixedPriceItemRequest xmlns="urn:ebay:apis:eBLBaseComponents"><Item/></AddFixedPriceItemRequest>`
	rec := httptest.NewRecorder()
	h(rec, newTradingRequest("AddFixedPriceItem", body))

	got := rec.Body.String()
	if !strings.Contains(got, "<Ack>Failure</Ack>") || !strings.Contains(got, "<ErrorCode>37</ErrorCode>") {
		t.Fatalf("expected failure 37, got %s", got)
	}
}

func TestTradingHandler_MissingHeader(t *testing.T) {
	t.Parallel()

	h := tradingHandler(testLogger())

	req := newTradingRequest("GetItem", "<GetItemRequest/>")
	req.Header.Del("X-EBAY-API-IAF-TOKEN")
	rec := httptest.NewRecorder()
	h(rec, req)

	if !strings.Contains(rec.Body.String(), "X-EBAY-API-IAF-TOKEN is missing") {
		t.Fatalf("expected missing header failure, got %s", rec.Body.String())
	}
}

func TestTradingHandler_GetItem(t *testing.T) {
	t.Parallel()

	h := tradingHandler(testLogger())

	body := `<GetItemRequest xmlns="urn:ebay:apis:eBLBaseComponents"><ItemID>110000000001</ItemID></GetItemRequest>`
	rec := httptest.NewRecorder()
	h(rec, newTradingRequest("GetItem", body))

	got := rec.Body.String()
	if !strings.Contains(got, "<ItemID>110000000001</ItemID>") {
		t.Fatalf("missing item in %s", got)
	}
	if !strings.Contains(got, "<ListingStatus>Active</ListingStatus>") {
		t.Fatalf("missing status in %s", got)
	}
}

func TestTradingHandler_GetItemNotFound(t *testing.T) {
	t.Parallel()

	h := tradingHandler(testLogger())

	body := `<GetItemRequest xmlns="urn:ebay:apis:eBLBaseComponents"><ItemID>404</ItemID></GetItemRequest>`
	rec := httptest.NewRecorder()
	h(rec, newTradingRequest("GetItem", body))

	if !strings.Contains(rec.Body.String(), "<ErrorCode>17</ErrorCode>") {
		t.Fatalf("expected error 17, got %s", rec.Body.String())
	}
}

// Package main implements a mock eBay API server for local development.
// It serves canned responses to simulate the legacy XML Trading API and
// the OAuth token endpoint without requiring real eBay credentials.
package main

import (
	"encoding/json"
	"encoding/xml"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"sync/atomic"
	"time"
)

const apiNamespace = "urn:ebay:apis:eBLBaseComponents"

var itemCounter atomic.Int64

func main() {
	port := flag.Int("port", 8089, "port to listen on")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	mux := http.NewServeMux()
	mux.HandleFunc("POST /identity/v1/oauth2/token", tokenHandler(logger))
	mux.HandleFunc("POST /ws/api.dll", tradingHandler(logger))

	addr := fmt.Sprintf(":%d", *port)
	logger.Info("starting mock eBay server", "addr", addr)

	srv := &http.Server{
		Addr:         addr,
		Handler:      requestLogger(logger, mux),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	if err := srv.ListenAndServe(); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func requestLogger(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"call", r.Header.Get("X-EBAY-API-CALL-NAME"),
		)
		next.ServeHTTP(w, r)
	})
}

func tokenHandler(logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "bad form", http.StatusBadRequest)
			return
		}
		if r.PostForm.Get("grant_type") != "refresh_token" {
			http.Error(w, `{"error":"unsupported_grant_type"}`, http.StatusBadRequest)
			return
		}
		if _, _, ok := r.BasicAuth(); !ok {
			http.Error(w, `{"error":"invalid_client"}`, http.StatusUnauthorized)
			return
		}

		logger.Info("issuing mock access token")
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"access_token": fmt.Sprintf("mock-token-%d", time.Now().Unix()),
			"expires_in":   7200,
			"token_type":   "User Access Token",
		})
	}
}

// requiredHeaders are the Trading API headers every call must carry.
var requiredHeaders = []string{
	"X-EBAY-API-CALL-NAME",
	"X-EBAY-API-SITEID",
	"X-EBAY-API-COMPATIBILITY-LEVEL",
	"X-EBAY-API-APP-NAME",
	"X-EBAY-API-DEV-NAME",
	"X-EBAY-API-CERT-NAME",
	"X-EBAY-API-IAF-TOKEN",
}

func tradingHandler(logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		for _, h := range requiredHeaders {
			if r.Header.Get(h) == "" {
				writeFailure(w, r.Header.Get("X-EBAY-API-CALL-NAME"),
					"10012", fmt.Sprintf("Header %s is missing.", h))
				return
			}
		}

		call := r.Header.Get("X-EBAY-API-CALL-NAME")
		body, err := io.ReadAll(r.Body)
		if err != nil {
			writeFailure(w, call, "10007", "Internal error reading request.")
			return
		}

		switch call {
		case "AddFixedPriceItem":
			handleAddFixedPriceItem(logger, w, body)
		case "GetItem":
			handleGetItem(logger, w, body)
		default:
			writeFailure(w, call, "2", fmt.Sprintf("Unsupported API call %q.", call))
		}
	}
}

type addItemRequest struct {
	Item struct {
		Title      string `xml:"Title"`
		StartPrice string `xml:"StartPrice"`
	} `xml:"Item"`
}

func handleAddFixedPriceItem(logger *slog.Logger, w http.ResponseWriter, body []byte) {
	var req addItemRequest
	if err := xml.Unmarshal(body, &req); err != nil {
		writeFailure(w, "AddFixedPriceItem", "10007", "Malformed request XML.")
		return
	}
	if req.Item.Title == "" {
		writeFailure(w, "AddFixedPriceItem", "37", "Input data is invalid: Title missing.")
		return
	}

	itemID := fmt.Sprintf("11%010d", itemCounter.Add(1))
	logger.Info("registered mock item", "item_id", itemID, "title", req.Item.Title)

	writeXML(w, fmt.Sprintf(`<?xml version="1.0" encoding="utf-8"?>
<AddFixedPriceItemResponse xmlns=%q>
  <Ack>Success</Ack>
  <ItemID>%s</ItemID>
  <Fees>
    <Fee><Name>InsertionFee</Name><Amount currencyID="USD">0.35</Amount></Fee>
    <Fee><Name>ListingFee</Name><Amount currencyID="USD">0.00</Amount></Fee>
  </Fees>
</AddFixedPriceItemResponse>`, apiNamespace, itemID))
}

type getItemRequest struct {
	ItemID string `xml:"ItemID"`
}

func handleGetItem(logger *slog.Logger, w http.ResponseWriter, body []byte) {
	var req getItemRequest
	if err := xml.Unmarshal(body, &req); err != nil {
		writeFailure(w, "GetItem", "10007", "Malformed request XML.")
		return
	}
	if req.ItemID == "" || req.ItemID == "404" {
		writeFailure(w, "GetItem", "17", "The item cannot be accessed.")
		return
	}

	logger.Info("serving mock item", "item_id", req.ItemID)

	writeXML(w, fmt.Sprintf(`<?xml version="1.0" encoding="utf-8"?>
<GetItemResponse xmlns=%q>
  <Ack>Success</Ack>
  <Item>
    <ItemID>%s</ItemID>
    <Title>Mock Listing</Title>
    <Description>Mock listing served from fixtures.</Description>
    <SellingStatus>
      <CurrentPrice currencyID="USD">201.00</CurrentPrice>
      <ListingStatus>Active</ListingStatus>
    </SellingStatus>
    <ListingDetails>
      <ViewItemURL>https://www.ebay.com/itm/%s</ViewItemURL>
    </ListingDetails>
  </Item>
</GetItemResponse>`, apiNamespace, req.ItemID, req.ItemID))
}

func writeFailure(w http.ResponseWriter, call, code, message string) {
	if call == "" {
		call = "Unknown"
	}
	writeXML(w, fmt.Sprintf(`<?xml version="1.0" encoding="utf-8"?>
<%sResponse xmlns=%q>
  <Ack>Failure</Ack>
  <Errors>
    <ShortMessage>%s</ShortMessage>
    <LongMessage>%s</LongMessage>
    <ErrorCode>%s</ErrorCode>
    <SeverityCode>Error</SeverityCode>
  </Errors>
</%sResponse>`, call, apiNamespace, message, message, code, call))
}

func writeXML(w http.ResponseWriter, body string) {
	w.Header().Set("Content-Type", "text/xml")
	_, _ = w.Write([]byte(body))
}

package ebay_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ktnkk/crosslist/internal/ebay"
)

type staticTokenProvider struct {
	token string
	err   error
}

func (p *staticTokenProvider) Token(context.Context) (string, error) {
	return p.token, p.err
}

func listingFixture() *ebay.ListingRequest {
	cost := ebay.Money{Value: 25.00, CurrencyID: "USD"}
	return &ebay.ListingRequest{
		Title:             "Vintage Camera",
		Description:       "A vintage film camera in working condition.",
		PrimaryCategoryID: "625",
		StartPrice:        ebay.Money{Value: 199.99, CurrencyID: "USD"},
		Currency:          "USD",
		Quantity:          1,
		ConditionID:       3000,
		Country:           "JP",
		Location:          "Tokyo",
		DispatchTimeMax:   3,
		ShippingDetails: ebay.ShippingDetails{
			ShippingType: "Flat",
			ShippingServiceOptions: []ebay.ShippingServiceOption{
				{ShippingService: "JP_EMS", ShippingServiceCost: &cost, Priority: 1},
			},
		},
	}
}

func TestTradingClient_Call_Headers(t *testing.T) {
	t.Parallel()

	var got http.Header
	var gotBody []byte

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		gotBody, _ = io.ReadAll(r.Body)
		assert.Equal(t, "/ws/api.dll", r.URL.Path)
		_, _ = w.Write([]byte(`<GetItemResponse><Ack>Success</Ack></GetItemResponse>`))
	}))
	defer server.Close()

	client := ebay.NewTradingClient(
		testCredentials(),
		&staticTokenProvider{token: "access-token"},
		server.URL,
	)

	err := client.Call(context.Background(), "GetItem", struct {
		XMLName struct{} `xml:"GetItemRequest"`
		ItemID  string   `xml:"ItemID"`
	}{ItemID: "12345"}, nil)
	require.NoError(t, err)

	assert.Equal(t, "GetItem", got.Get("X-EBAY-API-CALL-NAME"))
	assert.Equal(t, "0", got.Get("X-EBAY-API-SITEID"))
	assert.Equal(t, "967", got.Get("X-EBAY-API-COMPATIBILITY-LEVEL"))
	assert.Equal(t, "client-id", got.Get("X-EBAY-API-APP-NAME"))
	assert.Equal(t, "dev-id", got.Get("X-EBAY-API-DEV-NAME"))
	assert.Equal(t, "client-secret", got.Get("X-EBAY-API-CERT-NAME"))
	assert.Equal(t, "access-token", got.Get("X-EBAY-API-IAF-TOKEN"))
	assert.Equal(t, "application/xml", got.Get("Content-Type"))

	assert.Contains(t, string(gotBody), `<?xml`)
	assert.Contains(t, string(gotBody), "<ItemID>12345</ItemID>")
}

func TestTradingClient_Call_HeaderOverrides(t *testing.T) {
	t.Parallel()

	var got http.Header

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		_, _ = w.Write([]byte(`<GetItemResponse/>`))
	}))
	defer server.Close()

	client := ebay.NewTradingClient(
		testCredentials(),
		&staticTokenProvider{token: "access-token"},
		server.URL,
		ebay.WithSiteID("15"),
		ebay.WithCompatibilityLevel("1193"),
	)

	err := client.Call(context.Background(), "GetItem", struct {
		XMLName struct{} `xml:"GetItemRequest"`
	}{}, nil)
	require.NoError(t, err)

	assert.Equal(t, "15", got.Get("X-EBAY-API-SITEID"))
	assert.Equal(t, "1193", got.Get("X-EBAY-API-COMPATIBILITY-LEVEL"))
}

func TestTradingClient_Call_MissingCredentialHeader(t *testing.T) {
	t.Parallel()

	creds := testCredentials()
	creds.DevID = ""

	client := ebay.NewTradingClient(
		creds,
		&staticTokenProvider{token: "access-token"},
		"http://localhost:1",
	)

	err := client.Call(context.Background(), "GetItem", struct {
		XMLName struct{} `xml:"GetItemRequest"`
	}{}, nil)
	require.Error(t, err)

	var reqErr *ebay.RequestError
	require.ErrorAs(t, err, &reqErr)
	assert.Contains(t, err.Error(), "invalid API headers")
	assert.Contains(t, err.Error(), "X-EBAY-API-DEV-NAME")
}

func TestTradingClient_Call_BusinessError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`<AddFixedPriceItemResponse xmlns="urn:ebay:apis:eBLBaseComponents">
			<Ack>Failure</Ack>
			<Errors>
				<ShortMessage>Invalid token.</ShortMessage>
				<LongMessage>Invalid token. Please specify a valid token as HTTP header.</LongMessage>
				<ErrorCode>21916984</ErrorCode>
				<SeverityCode>Error</SeverityCode>
			</Errors>
			<Errors>
				<ShortMessage>Warning only.</ShortMessage>
				<LongMessage></LongMessage>
				<ErrorCode>12345</ErrorCode>
				<SeverityCode>Warning</SeverityCode>
			</Errors>
		</AddFixedPriceItemResponse>`))
	}))
	defer server.Close()

	client := ebay.NewTradingClient(
		testCredentials(),
		&staticTokenProvider{token: "access-token"},
		server.URL,
	)

	err := client.Call(context.Background(), "AddFixedPriceItem", struct {
		XMLName struct{} `xml:"AddFixedPriceItemRequest"`
	}{}, nil)
	require.Error(t, err)

	var apiErr *ebay.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "AddFixedPriceItem", apiErr.CallName)
	require.Len(t, apiErr.Details, 1, "errors without a long message are dropped")
	assert.Equal(t, "21916984", apiErr.Details[0].Code)
	assert.Contains(t, err.Error(), "Invalid token. Please specify a valid token")
}

func TestTradingClient_Call_HTTPError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("upstream unavailable"))
	}))
	defer server.Close()

	client := ebay.NewTradingClient(
		testCredentials(),
		&staticTokenProvider{token: "access-token"},
		server.URL,
	)

	err := client.Call(context.Background(), "GetItem", struct {
		XMLName struct{} `xml:"GetItemRequest"`
	}{}, nil)
	require.Error(t, err)

	var reqErr *ebay.RequestError
	require.ErrorAs(t, err, &reqErr)
	assert.Equal(t, http.StatusBadGateway, reqErr.Status)
	assert.Contains(t, err.Error(), "upstream unavailable")
}

func TestTradingClient_Call_MalformedXML(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`<AddFixedPriceItemResponse><Ack>`))
	}))
	defer server.Close()

	client := ebay.NewTradingClient(
		testCredentials(),
		&staticTokenProvider{token: "access-token"},
		server.URL,
	)

	err := client.Call(context.Background(), "AddFixedPriceItem", struct {
		XMLName struct{} `xml:"AddFixedPriceItemRequest"`
	}{}, nil)
	require.Error(t, err)

	var reqErr *ebay.RequestError
	require.ErrorAs(t, err, &reqErr)
	assert.Contains(t, err.Error(), "parsing response XML")
}

func TestTradingClient_Call_TokenFailure(t *testing.T) {
	t.Parallel()

	client := ebay.NewTradingClient(
		testCredentials(),
		&staticTokenProvider{err: &ebay.TokenError{Err: context.DeadlineExceeded}},
		"http://localhost:1",
	)

	err := client.Call(context.Background(), "GetItem", struct {
		XMLName struct{} `xml:"GetItemRequest"`
	}{}, nil)
	require.Error(t, err)

	var tokenErr *ebay.TokenError
	assert.ErrorAs(t, err, &tokenErr)
}

func TestTradingClient_Call_DailyLimit(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`<GetItemResponse/>`))
	}))
	defer server.Close()

	client := ebay.NewTradingClient(
		testCredentials(),
		&staticTokenProvider{token: "access-token"},
		server.URL,
		ebay.WithRateLimiter(ebay.NewRateLimiter(100, 10, 1)),
	)

	req := struct {
		XMLName struct{} `xml:"GetItemRequest"`
	}{}

	require.NoError(t, client.Call(context.Background(), "GetItem", req, nil))

	err := client.Call(context.Background(), "GetItem", req, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ebay.ErrDailyLimitReached)
}

func TestTradingClient_RegisterItem(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		s := string(body)
		assert.Contains(t, s, "<eBayAuthToken>refresh-token</eBayAuthToken>")
		assert.Contains(t, s, "<Title>Vintage Camera</Title>")
		assert.Contains(t, s, "<CategoryID>625</CategoryID>")
		assert.Contains(t, s, `<StartPrice currencyID="USD">199.99</StartPrice>`)
		assert.Contains(t, s, "<ListingType>FixedPriceItem</ListingType>")
		assert.Contains(t, s, "<ListingDuration>GTC</ListingDuration>")
		assert.Contains(t, s, "<ShippingService>JP_EMS</ShippingService>")

		_, _ = w.Write([]byte(`<AddFixedPriceItemResponse xmlns="urn:ebay:apis:eBLBaseComponents">
			<Ack>Success</Ack>
			<ItemID>110123456789</ItemID>
			<Fees>
				<Fee><Name>InsertionFee</Name><Amount currencyID="USD">0.35</Amount></Fee>
				<Fee><Name>ListingFee</Name><Amount>0.35</Amount></Fee>
			</Fees>
		</AddFixedPriceItemResponse>`))
	}))
	defer server.Close()

	client := ebay.NewTradingClient(
		testCredentials(),
		&staticTokenProvider{token: "access-token"},
		server.URL,
	)

	result, err := client.RegisterItem(context.Background(), listingFixture())
	require.NoError(t, err)
	assert.Equal(t, "110123456789", result.ItemID)
	require.Len(t, result.Fees.Fee, 2)
	assert.Equal(t, "InsertionFee", result.Fees.Fee[0].Name)
	assert.Equal(t, "USD", result.Fees.Fee[0].Amount.CurrencyID)
	assert.Equal(t, "USD", result.Fees.Fee[1].Amount.CurrencyID, "missing currency defaults to USD")
}

func TestTradingClient_RegisterItem_NoItemID(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`<AddFixedPriceItemResponse><Ack>Success</Ack></AddFixedPriceItemResponse>`))
	}))
	defer server.Close()

	client := ebay.NewTradingClient(
		testCredentials(),
		&staticTokenProvider{token: "access-token"},
		server.URL,
	)

	_, err := client.RegisterItem(context.Background(), listingFixture())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ItemID not found")
}

func TestTradingClient_GetItem(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		assert.Contains(t, string(body), "<ItemID>110123456789</ItemID>")
		assert.Contains(t, string(body), "<DetailLevel>ReturnAll</DetailLevel>")

		_, _ = w.Write([]byte(`<GetItemResponse xmlns="urn:ebay:apis:eBLBaseComponents">
			<Ack>Success</Ack>
			<Item>
				<ItemID>110123456789</ItemID>
				<Title>Vintage Camera</Title>
				<Description>A vintage film camera.</Description>
				<SellingStatus>
					<CurrentPrice currencyID="USD">199.99</CurrentPrice>
					<ListingStatus>Active</ListingStatus>
				</SellingStatus>
				<ListingDetails>
					<ViewItemURL>https://www.ebay.com/itm/110123456789</ViewItemURL>
				</ListingDetails>
			</Item>
		</GetItemResponse>`))
	}))
	defer server.Close()

	client := ebay.NewTradingClient(
		testCredentials(),
		&staticTokenProvider{token: "access-token"},
		server.URL,
	)

	item, err := client.GetItem(context.Background(), "110123456789")
	require.NoError(t, err)
	assert.Equal(t, "110123456789", item.ItemID)
	assert.Equal(t, "Vintage Camera", item.Title)
	assert.Equal(t, "199.99", item.CurrentPrice.Value)
	assert.Equal(t, "USD", item.CurrentPrice.CurrencyID)
	assert.Equal(t, "Active", item.ListingStatus)
	assert.Equal(t, "https://www.ebay.com/itm/110123456789", item.ViewItemURL)
}

func TestTradingClient_GetItem_NotFound(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`<GetItemResponse xmlns="urn:ebay:apis:eBLBaseComponents"><Ack>Success</Ack></GetItemResponse>`))
	}))
	defer server.Close()

	client := ebay.NewTradingClient(
		testCredentials(),
		&staticTokenProvider{token: "access-token"},
		server.URL,
	)

	_, err := client.GetItem(context.Background(), "999")
	require.Error(t, err)
	assert.ErrorIs(t, err, ebay.ErrItemNotFound)
}

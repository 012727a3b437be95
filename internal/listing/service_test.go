package listing_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ktnkk/crosslist/internal/currency"
	"github.com/ktnkk/crosslist/internal/ebay"
	"github.com/ktnkk/crosslist/internal/listing"
	"github.com/ktnkk/crosslist/internal/notify"
)

type fakeMarketplace struct {
	registerFunc func(ctx context.Context, r *ebay.ListingRequest) (*ebay.RegisterResult, error)
	getItemFunc  func(ctx context.Context, itemID string) (*ebay.ItemSummary, error)

	lastRegister *ebay.ListingRequest
}

func (f *fakeMarketplace) RegisterItem(
	ctx context.Context,
	r *ebay.ListingRequest,
) (*ebay.RegisterResult, error) {
	f.lastRegister = r
	if f.registerFunc == nil {
		return &ebay.RegisterResult{ItemID: "110000000001"}, nil
	}
	return f.registerFunc(ctx, r)
}

func (f *fakeMarketplace) GetItem(ctx context.Context, itemID string) (*ebay.ItemSummary, error) {
	if f.getItemFunc == nil {
		return &ebay.ItemSummary{ItemID: itemID}, nil
	}
	return f.getItemFunc(ctx, itemID)
}

func testConverter() currency.Converter {
	return currency.NewFixed(map[string]float64{"JPY/USD": 0.0067})
}

func validRequest() *ebay.ListingRequest {
	cost := ebay.Money{Value: 3000, CurrencyID: "JPY"}
	return &ebay.ListingRequest{
		Title:             "Seiko Mechanical Watch",
		Description:       "Automatic movement, excellent condition.",
		PrimaryCategoryID: "31387",
		StartPrice:        ebay.Money{Value: 30000, CurrencyID: "JPY"},
		Currency:          "JPY",
		Quantity:          1,
		ConditionID:       3000,
		Country:           "JP",
		Location:          "Osaka",
		DispatchTimeMax:   3,
		ShippingDetails: ebay.ShippingDetails{
			ShippingType: "Flat",
			ShippingServiceOptions: []ebay.ShippingServiceOption{
				{ShippingService: "JP_EMS", ShippingServiceCost: &cost, Priority: 1},
			},
		},
	}
}

func TestService_RegisterProduct_ConvertsJPY(t *testing.T) {
	t.Parallel()

	market := &fakeMarketplace{}
	svc := listing.NewService(market, testConverter())

	result, err := svc.RegisterProduct(context.Background(), validRequest())
	require.NoError(t, err)
	assert.Equal(t, "110000000001", result.ItemID)

	sent := market.lastRegister
	require.NotNil(t, sent)

	// 30000 JPY at 0.0067 is 201 USD.
	assert.InDelta(t, 201.00, sent.StartPrice.Value, 0.001)
	assert.Equal(t, "USD", sent.StartPrice.CurrencyID)
	assert.Equal(t, "USD", sent.Currency)

	cost := sent.ShippingDetails.ShippingServiceOptions[0].ShippingServiceCost
	require.NotNil(t, cost)
	assert.InDelta(t, 20.10, cost.Value, 0.001)
	assert.Equal(t, "USD", cost.CurrencyID)
}

func TestService_RegisterProduct_NonJPYUntouched(t *testing.T) {
	t.Parallel()

	market := &fakeMarketplace{}
	svc := listing.NewService(market, testConverter())

	req := validRequest()
	req.Currency = "USD"
	req.StartPrice = ebay.Money{Value: 199.99, CurrencyID: "USD"}
	req.ShippingDetails.ShippingServiceOptions[0].ShippingServiceCost = &ebay.Money{
		Value:      25.00,
		CurrencyID: "USD",
	}

	_, err := svc.RegisterProduct(context.Background(), req)
	require.NoError(t, err)

	assert.InDelta(t, 199.99, market.lastRegister.StartPrice.Value, 0.001)
	assert.Equal(t, "USD", market.lastRegister.Currency)
}

func TestService_RegisterProduct_Validation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		mutate    func(*ebay.ListingRequest)
		wantField string
	}{
		{
			name:      "missing title",
			mutate:    func(r *ebay.ListingRequest) { r.Title = "" },
			wantField: "Title is required",
		},
		{
			name:      "zero start price",
			mutate:    func(r *ebay.ListingRequest) { r.StartPrice.Value = 0 },
			wantField: "StartPrice.Value is required",
		},
		{
			name:      "zero quantity",
			mutate:    func(r *ebay.ListingRequest) { r.Quantity = 0 },
			wantField: "Quantity is required",
		},
		{
			name:      "bad country code",
			mutate:    func(r *ebay.ListingRequest) { r.Country = "JPN" },
			wantField: "Country must be exactly 2 characters",
		},
		{
			name: "no shipping options",
			mutate: func(r *ebay.ListingRequest) {
				r.ShippingDetails.ShippingServiceOptions = nil
			},
			wantField: "ShippingDetails.ShippingServiceOptions must have at least 1 entries",
		},
		{
			name: "shipping option without service",
			mutate: func(r *ebay.ListingRequest) {
				r.ShippingDetails.ShippingServiceOptions[0].ShippingService = ""
			},
			wantField: "ShippingServiceOptions[0].ShippingService is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			market := &fakeMarketplace{}
			svc := listing.NewService(market, testConverter())

			req := validRequest()
			tt.mutate(req)

			_, err := svc.RegisterProduct(context.Background(), req)
			require.Error(t, err)

			var verr *listing.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Contains(t, err.Error(), tt.wantField)
			assert.Nil(t, market.lastRegister, "invalid payloads must not reach the marketplace")
		})
	}
}

func TestService_RegisterProduct_MarketplaceError(t *testing.T) {
	t.Parallel()

	apiErr := &ebay.APIError{
		CallName: "AddFixedPriceItem",
		Details: []ebay.ErrorDetail{
			{Code: "21919169", Message: "Duplicate listing detected"},
		},
	}

	market := &fakeMarketplace{
		registerFunc: func(context.Context, *ebay.ListingRequest) (*ebay.RegisterResult, error) {
			return nil, apiErr
		},
	}
	svc := listing.NewService(market, testConverter())

	_, err := svc.RegisterProduct(context.Background(), validRequest())
	require.Error(t, err)

	var got *ebay.APIError
	require.ErrorAs(t, err, &got)
	assert.Contains(t, err.Error(), "21919169")
}

func TestService_GetItem(t *testing.T) {
	t.Parallel()

	market := &fakeMarketplace{
		getItemFunc: func(_ context.Context, itemID string) (*ebay.ItemSummary, error) {
			return &ebay.ItemSummary{
				ItemID:        itemID,
				Title:         "Seiko Mechanical Watch",
				ListingStatus: "Active",
			}, nil
		},
	}
	svc := listing.NewService(market, testConverter())

	item, err := svc.GetItem(context.Background(), "110000000001")
	require.NoError(t, err)
	assert.Equal(t, "Active", item.ListingStatus)
}

func TestService_GetItem_EmptyID(t *testing.T) {
	t.Parallel()

	svc := listing.NewService(&fakeMarketplace{}, testConverter())

	_, err := svc.GetItem(context.Background(), "")
	require.Error(t, err)

	var verr *listing.ValidationError
	assert.ErrorAs(t, err, &verr)
}

type captureNotifier struct {
	last *notify.ListingEvent
}

func (c *captureNotifier) ListingRegistered(_ context.Context, ev *notify.ListingEvent) error {
	c.last = ev
	return nil
}

func TestService_RegisterProduct_Announces(t *testing.T) {
	t.Parallel()

	market := &fakeMarketplace{
		registerFunc: func(_ context.Context, _ *ebay.ListingRequest) (*ebay.RegisterResult, error) {
			return &ebay.RegisterResult{
				ItemID: "110000000002",
				Fees: ebay.FeeList{Fee: []ebay.Fee{
					{Name: "InsertionFee", Amount: ebay.Amount{Value: "0.35", CurrencyID: "USD"}},
				}},
			}, nil
		},
	}
	notifier := &captureNotifier{}
	svc := listing.NewService(market, testConverter(), listing.WithNotifier(notifier))

	_, err := svc.RegisterProduct(context.Background(), validRequest())
	require.NoError(t, err)

	require.NotNil(t, notifier.last)
	assert.Equal(t, "110000000002", notifier.last.ItemID)
	assert.Equal(t, "Seiko Mechanical Watch", notifier.last.Title)
	// The announced price reflects the converted amount.
	assert.Equal(t, "201.00", notifier.last.Price)
	assert.Equal(t, "USD", notifier.last.Currency)
	require.Len(t, notifier.last.Fees, 1)
	assert.Equal(t, "InsertionFee", notifier.last.Fees[0].Name)
}

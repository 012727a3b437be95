package handlers_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ktnkk/crosslist/internal/api/handlers"
	"github.com/ktnkk/crosslist/internal/shipping"
	"github.com/ktnkk/crosslist/internal/store"
	"github.com/ktnkk/crosslist/internal/store/storetest"
	domain "github.com/ktnkk/crosslist/pkg/types"
)

// shippingStore returns a fake seeded with an EMS tariff for the US.
func shippingStore() *storetest.Fake {
	return &storetest.Fake{
		ListServicesFunc: func(_ context.Context) ([]domain.ShippingService, error) {
			return []domain.ShippingService{{ID: 1, Name: "EMS"}}, nil
		},
		GetCountryFunc: func(_ context.Context, serviceID int, code string) (*domain.Country, error) {
			if serviceID == 1 && code == "US" {
				return &domain.Country{Code: "US", Zone: "4", ServiceID: 1}, nil
			}
			return nil, store.ErrNotFound
		},
		GetShippingRateFunc: func(_ context.Context, serviceID int, zone string, weightGrams int) (*domain.ShippingRate, error) {
			if zone == "4" && weightGrams <= 1000 {
				return &domain.ShippingRate{Zone: "4", WeightGrams: 1000, BasicPrice: 2900, ServiceID: 1}, nil
			}
			return nil, store.ErrNotFound
		},
		ListActiveSurchargesFunc: func(_ context.Context, _ int, _ time.Time) ([]domain.ShippingSurcharge, error) {
			return []domain.ShippingSurcharge{
				{ServiceID: 1, Type: domain.SurchargeFuel, Rate: 10},
			}, nil
		},
	}
}

func TestShippingHandler_Quote(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantBody   string
	}{
		{
			name:       "quote with fuel surcharge",
			body:       `{"service_id": 1, "country_code": "US", "weight": 700}`,
			wantStatus: http.StatusOK,
			wantBody:   `"total":3190`,
		},
		{
			name:       "unknown country",
			body:       `{"service_id": 1, "country_code": "XX", "weight": 700}`,
			wantStatus: http.StatusNotFound,
			wantBody:   "resolving zone",
		},
		{
			name:       "weight over heaviest bracket",
			body:       `{"service_id": 1, "country_code": "US", "weight": 5000}`,
			wantStatus: http.StatusNotFound,
			wantBody:   "resolving rate",
		},
		{
			name:       "missing parameters",
			body:       `{"service_id": 1}`,
			wantStatus: http.StatusBadRequest,
			wantBody:   "service_id, country_code and weight are required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			st := shippingStore()
			h := handlers.NewShippingHandler(st, shipping.NewCalculator(st))

			rec := postJSON(t, h.Quote, "/api/v1/shipping-calculator", tt.body)
			require.Equal(t, tt.wantStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantBody)
		})
	}
}

func TestShippingHandler_Services(t *testing.T) {
	t.Parallel()

	st := shippingStore()
	h := handlers.NewShippingHandler(st, shipping.NewCalculator(st))

	c, rec := authedContext(t, http.MethodGet, "/api/v1/shipping-services", "", "u1")
	require.NoError(t, h.Services(c))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"EMS"`)
}

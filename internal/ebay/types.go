// Package ebay provides the eBay legacy XML Trading API client:
// credential handling, OAuth token acquisition with caching, request
// dispatch, and response parsing.
package ebay

import (
	"context"
)

// Money is a monetary amount with an ISO currency code.
type Money struct {
	Value      float64 `json:"value"                validate:"required,gt=0"`
	CurrencyID string  `json:"currencyId,omitempty"`
}

// ShippingServiceOption is one shipping service offered on a listing.
type ShippingServiceOption struct {
	ShippingService     string `json:"shippingService" validate:"required"`
	ShippingServiceCost *Money `json:"shippingServiceCost,omitempty"`
	Priority            int    `json:"priority"`
}

// ShippingDetails configures shipping for a listing.
type ShippingDetails struct {
	ShippingType           string                  `json:"shippingType,omitempty"`
	ShippingServiceOptions []ShippingServiceOption `json:"shippingServiceOptions" validate:"min=1,dive"`
}

// ListingRequest is the fixed-price listing payload accepted by the
// product-register endpoint. Currency amounts may arrive in JPY; they
// are converted to USD before the XML request is rendered.
type ListingRequest struct {
	Title             string          `json:"title"           validate:"required"`
	Description       string          `json:"description"     validate:"required"`
	PrimaryCategoryID string          `json:"categoryId"      validate:"required"`
	StartPrice        Money           `json:"startPrice"      validate:"required"`
	Currency          string          `json:"currency"        validate:"required,len=3"`
	Quantity          int             `json:"quantity"        validate:"required,gt=0"`
	ConditionID       int             `json:"conditionId"     validate:"required"`
	Country           string          `json:"country"         validate:"required,len=2"`
	Location          string          `json:"location"        validate:"required"`
	PostalCode        string          `json:"postalCode,omitempty"`
	DispatchTimeMax   int             `json:"dispatchTimeMax" validate:"required,gt=0"`
	ListingDuration   string          `json:"listingDuration,omitempty"`
	PictureURLs       []string        `json:"pictureURLs,omitempty"`
	ShippingDetails   ShippingDetails `json:"shippingDetails" validate:"required"`
}

// Amount is a parsed monetary amount from a Trading API response.
// CurrencyID defaults to USD when the attribute is absent.
type Amount struct {
	Value      string `json:"value"      xml:",chardata"`
	CurrencyID string `json:"currencyID" xml:"currencyID,attr"`
}

// Fee is one listing fee reported by AddFixedPriceItem.
type Fee struct {
	Name   string `json:"Name"   xml:"Name"`
	Amount Amount `json:"Amount" xml:"Amount"`
}

// FeeList wraps the ordered fee sequence, matching the marketplace's
// response shape.
type FeeList struct {
	Fee []Fee `json:"Fee"`
}

// RegisterResult is the outcome of a successful listing registration.
type RegisterResult struct {
	ItemID string  `json:"ItemID"`
	Fees   FeeList `json:"Fees"`
}

// ItemSummary is the subset of GetItem fields the tool surfaces.
type ItemSummary struct {
	ItemID        string `json:"ItemID"`
	Title         string `json:"Title"`
	Description   string `json:"Description"`
	CurrentPrice  Amount `json:"CurrentPrice"`
	ListingStatus string `json:"ListingStatus"`
	ViewItemURL   string `json:"ViewItemURL"`
}

// Caller dispatches a named Trading API call, marshaling req to XML and
// unmarshaling the response body into resp.
type Caller interface {
	Call(ctx context.Context, callName string, req, resp any) error
}

// TokenProvider defines the interface for obtaining OAuth2 access tokens.
type TokenProvider interface {
	Token(ctx context.Context) (string, error)
}

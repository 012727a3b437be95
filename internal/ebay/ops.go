package ebay

import (
	"context"
	"errors"
	"fmt"
)

const (
	callAddFixedPriceItem = "AddFixedPriceItem"
	callGetItem           = "GetItem"
)

// ErrItemNotFound is returned by GetItem when the marketplace response
// carries no Item element.
var ErrItemNotFound = errors.New("item not found")

// RegisterItem lists an item via AddFixedPriceItem and returns the new
// item ID along with the fees the marketplace charged for it. Fee
// amounts without an explicit currency default to USD.
func (c *TradingClient) RegisterItem(ctx context.Context, r *ListingRequest) (*RegisterResult, error) {
	req := newAddFixedPriceItemRequest(c.creds.AuthToken, r)

	var resp addFixedPriceItemResponse
	if err := c.Call(ctx, callAddFixedPriceItem, req, &resp); err != nil {
		return nil, err
	}

	if resp.ItemID == "" {
		return nil, fmt.Errorf("ItemID not found in %s response", callAddFixedPriceItem)
	}

	result := &RegisterResult{ItemID: resp.ItemID}
	for _, fee := range resp.Fees.Fee {
		if fee.Amount.CurrencyID == "" {
			fee.Amount.CurrencyID = "USD"
		}
		result.Fees.Fee = append(result.Fees.Fee, fee)
	}

	return result, nil
}

// GetItem fetches a listed item and returns the summary fields the
// tool surfaces. ErrItemNotFound is returned when the marketplace
// answers without an Item element.
func (c *TradingClient) GetItem(ctx context.Context, itemID string) (*ItemSummary, error) {
	req := newGetItemRequest(c.creds.AuthToken, itemID)

	var resp getItemResponse
	if err := c.Call(ctx, callGetItem, req, &resp); err != nil {
		return nil, err
	}

	if resp.Item == nil {
		return nil, fmt.Errorf("%w: %s", ErrItemNotFound, itemID)
	}

	return &ItemSummary{
		ItemID:        resp.Item.ItemID,
		Title:         resp.Item.Title,
		Description:   resp.Item.Description,
		CurrentPrice:  resp.Item.SellingStatus.CurrentPrice,
		ListingStatus: resp.Item.SellingStatus.ListingStatus,
		ViewItemURL:   resp.Item.ListingDetails.ViewItemURL,
	}, nil
}
